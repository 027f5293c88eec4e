package reschedule_slot

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

// UseCase use case для переноса слота на новый интервал
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

// Execute выполняет use case переноса слота
// Проверка конфликтов по новому интервалу и обновление выполняются в одной
// сериализуемой транзакции; собственный ID слота исключается из проверки
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RescheduleSlot: slot=%d, actor=%d, date=%s, time=%s",
		req.SlotID, req.ActorID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RescheduleSlot: validation failed: %v", err)
		return nil, err
	}

	var result *domain.BookedSlot

	// 2. Операции с БД в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2.1. Получаем слот с блокировкой
		slot, err := uc.slotRepo.GetByID(txCtx, req.SlotID)
		if err != nil {
			if errors.Is(err, slotRepo.ErrSlotNotFound) {
				uc.logger.Warn("RescheduleSlot: slot id=%d not found", req.SlotID)
				return ErrSlotNotFound
			}
			uc.logger.Error("RescheduleSlot: failed to get slot id=%d: %v", req.SlotID, err)
			return fmt.Errorf("%w: failed to get slot: %w", ErrInternal, err)
		}

		// 2.2. Проверяем права актора
		if err := validateActor(slot, req.ActorID, req.ActorRole); err != nil {
			uc.logger.Warn("RescheduleSlot: actor=%d role=%s denied for slot id=%d",
				req.ActorID, req.ActorRole, req.SlotID)
			return err
		}

		// 2.3. Проверяем, что слот можно переносить
		if !slot.CanBeRescheduled() {
			uc.logger.Warn("RescheduleSlot: slot id=%d cannot be rescheduled, status=%s", req.SlotID, slot.Status)
			return ErrCannotReschedule
		}

		// 2.4. Материализуем новый интервал
		duration := req.DurationMinutes
		if duration == 0 {
			duration = slot.DurationMinutes
		}

		start, err := req.StartTime.OnDate(req.Date)
		if err != nil {
			return fmt.Errorf("%w: invalid startTime: %v", ErrInvalidInput, err)
		}
		end := start.Add(time.Duration(duration) * time.Minute)

		if start.Before(uc.timeProvider.Now()) {
			uc.logger.Warn("RescheduleSlot: new start %s is in the past", start.Format(time.RFC3339))
			return ErrSlotInPast
		}

		// 2.5. Занятые слоты тренера вокруг нового интервала с блокировкой
		windowFrom := start.Add(-time.Duration(domain.MaxSessionDurationMinutes) * time.Minute)
		filter := domain.TrainerSlotsFilter{
			TrainerID:     slot.TrainerID,
			From:          ptr.Ptr(windowFrom),
			To:            ptr.Ptr(end),
			OnlyCommitted: true,
		}

		existing, err := uc.slotRepo.GetByTrainerWithFilter(txCtx, filter)
		if err != nil {
			uc.logger.Error("RescheduleSlot: failed to get trainer slots: %v", err)
			return fmt.Errorf("%w: failed to get trainer slots: %w", ErrInternal, err)
		}

		// 2.6. Проверка пересечений, сам переносимый слот исключается
		if conflict := domain.FindConflict(start, end, existing, slot.ID); conflict != nil {
			uc.logger.Warn("RescheduleSlot: new interval conflicts with slot id=%d", conflict.ID)
			return fmt.Errorf("%w: conflicts with slot id=%d", ErrSlotConflict, conflict.ID)
		}

		// 2.7. Обновляем интервал, статус становится rescheduled
		if err := uc.slotRepo.UpdateInterval(txCtx, slot.ID, start, end, duration); err != nil {
			if errors.Is(err, slotRepo.ErrIntervalTaken) {
				uc.logger.Warn("RescheduleSlot: interval taken (constraint): trainer=%d", slot.TrainerID)
				return ErrSlotConflict
			}
			uc.logger.Error("RescheduleSlot: failed to update interval for slot id=%d: %v", slot.ID, err)
			return fmt.Errorf("%w: failed to update interval: %w", ErrInternal, err)
		}

		slot.StartTime = start
		slot.EndTime = end
		slot.DurationMinutes = duration
		slot.Status = domain.SlotStatusRescheduled

		result = slot
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("RescheduleSlot: successfully rescheduled slot id=%d", result.ID)

	// 3. Уведомление не критично для операции
	uc.notifier.Publish(ctx, notifier.Event{
		Type:       notifier.EventSlotRescheduled,
		SlotID:     result.ID,
		MemberID:   result.MemberID,
		TrainerID:  result.TrainerID,
		StartTime:  result.StartTime,
		EndTime:    result.EndTime,
		OccurredAt: uc.timeProvider.Now(),
	})

	return toResponse(result), nil
}
