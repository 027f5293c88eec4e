package book_slot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-TrainingService/internal/domain"
	slotRepo "github.com/m04kA/SMC-TrainingService/internal/infra/storage/slot"
	"github.com/m04kA/SMC-TrainingService/internal/integrations/notifier"
	"github.com/m04kA/SMC-TrainingService/pkg/ptr"
)

// UseCase use case для бронирования слота тренировки
type UseCase struct {
	slotRepo     SlotRepository
	notifier     NotifierClient
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	slotRepo SlotRepository,
	notifierClient NotifierClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		slotRepo:     slotRepo,
		notifier:     notifierClient,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case бронирования слота
// Проверка конфликтов и вставка выполняются в одной сериализуемой транзакции
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("BookSlot: member=%d, trainer=%d, date=%s, time=%s",
		req.MemberID, req.TrainerID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("BookSlot: validation failed: %v", err)
		return nil, err
	}

	// 2. Материализуем интервал
	duration := req.DurationMinutes
	if duration == 0 {
		duration = domain.DefaultSessionDurationMinutes
	}

	start, err := req.StartTime.OnDate(req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid startTime: %v", ErrInvalidInput, err)
	}
	end := start.Add(time.Duration(duration) * time.Minute)

	if err := validateNotInPast(start, uc.timeProvider.Now()); err != nil {
		uc.logger.Warn("BookSlot: slot start %s is in the past", start.Format(time.RFC3339))
		return nil, err
	}

	var result *domain.BookedSlot

	// 3. Проверка конфликтов + вставка в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. Забираем занятые слоты тренера вокруг интервала с блокировкой (FOR UPDATE).
		// Окно расширено влево на максимальную длительность, чтобы поймать длинные слоты,
		// начавшиеся раньше запрошенного интервала.
		windowFrom := start.Add(-time.Duration(domain.MaxSessionDurationMinutes) * time.Minute)
		filter := domain.TrainerSlotsFilter{
			TrainerID:     req.TrainerID,
			From:          ptr.Ptr(windowFrom),
			To:            ptr.Ptr(end),
			OnlyCommitted: true,
		}

		existing, err := uc.slotRepo.GetByTrainerWithFilter(txCtx, filter)
		if err != nil {
			uc.logger.Error("BookSlot: failed to get trainer slots: %v", err)
			return fmt.Errorf("%w: failed to get trainer slots: %w", ErrInternal, err)
		}

		// 3.2. Проверяем пересечение полуоткрытых интервалов [start, end)
		if conflict := domain.FindConflict(start, end, existing, 0); conflict != nil {
			uc.logger.Warn("BookSlot: interval conflicts with slot id=%d", conflict.ID)
			return fmt.Errorf("%w: conflicts with slot id=%d", ErrSlotConflict, conflict.ID)
		}

		// 3.3. Создаем слот
		slot := &domain.BookedSlot{
			MemberID:        req.MemberID,
			TrainerID:       req.TrainerID,
			ProgramID:       req.ProgramID,
			StartTime:       start,
			EndTime:         end,
			DurationMinutes: duration,
			Status:          domain.SlotStatusScheduled,
			Notes:           req.Notes,
		}

		created, err := uc.slotRepo.Create(txCtx, slot)
		if err != nil {
			// Exclusion constraint в БД страхует проверку выше
			if errors.Is(err, slotRepo.ErrIntervalTaken) {
				uc.logger.Warn("BookSlot: interval taken (constraint): trainer=%d", req.TrainerID)
				return ErrSlotConflict
			}
			uc.logger.Error("BookSlot: failed to create slot: %v", err)
			return fmt.Errorf("%w: failed to create slot: %w", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("BookSlot: successfully created slot id=%d", result.ID)

	// 4. Уведомление не критично для операции
	uc.notifier.Publish(ctx, notifier.Event{
		Type:       notifier.EventSlotBooked,
		SlotID:     result.ID,
		MemberID:   result.MemberID,
		TrainerID:  result.TrainerID,
		StartTime:  result.StartTime,
		EndTime:    result.EndTime,
		OccurredAt: uc.timeProvider.Now(),
	})

	return toResponse(result), nil
}
