package bulk_schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-TrainingService/internal/domain"
	entitlementRepo "github.com/m04kA/SMC-TrainingService/internal/infra/storage/entitlement"
	slotRepo "github.com/m04kA/SMC-TrainingService/internal/infra/storage/slot"
	"github.com/m04kA/SMC-TrainingService/internal/integrations/notifier"
	"github.com/m04kA/SMC-TrainingService/pkg/ptr"
)

// UseCase use case для пакетного планирования тренировок по абонементу
type UseCase struct {
	slotRepo        SlotRepository
	entitlementRepo EntitlementRepository
	notifier        NotifierClient
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	slotRepo SlotRepository,
	entitlementRepo EntitlementRepository,
	notifierClient NotifierClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		slotRepo:        slotRepo,
		entitlementRepo: entitlementRepo,
		notifier:        notifierClient,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case пакетного планирования
//
// Генерирует даты по частоте (потолок - конец действия абонемента), проверяет
// каждого кандидата на пересечение с расписанием тренера и вставляет
// прошедших одним батчем. Вся работа с БД - одна сериализуемая транзакция:
// либо все прошедшие кандидаты созданы, либо ни один
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("BulkSchedule: entitlement=%d, trainer=%d, count=%d, frequency=%s, start=%s",
		req.EntitlementID, req.TrainerID, req.Count, req.Frequency, req.StartDate.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("BulkSchedule: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	var (
		result  *Response
		created []*domain.BookedSlot
	)

	// 2. Планирование в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		res, slots, err := uc.scheduleInTx(txCtx, req, now)
		if err != nil {
			return err
		}
		result = res
		created = slots
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("BulkSchedule: entitlement=%d scheduled %d of %d, %d conflicts",
		req.EntitlementID, result.ScheduledCount, result.Requested, len(result.Conflicts))

	// 3. Уведомления не критичны для операции
	for _, slot := range created {
		uc.notifier.Publish(ctx, notifier.Event{
			Type:       notifier.EventSlotBooked,
			SlotID:     slot.ID,
			MemberID:   slot.MemberID,
			TrainerID:  slot.TrainerID,
			StartTime:  slot.StartTime,
			EndTime:    slot.EndTime,
			OccurredAt: now,
		})
	}

	return result, nil
}

// scheduleInTx ядро планирования, выполняется внутри открытой транзакции.
// Используется также при полном перепланировании расписания клиента
func (uc *UseCase) scheduleInTx(txCtx context.Context, req *Request, now time.Time) (*Response, []*domain.BookedSlot, error) {
	// 1. Получаем абонемент с блокировкой
	ent, err := uc.entitlementRepo.GetByID(txCtx, req.EntitlementID)
	if err != nil {
		if errors.Is(err, entitlementRepo.ErrEntitlementNotFound) {
			uc.logger.Warn("BulkSchedule: entitlement id=%d not found", req.EntitlementID)
			return nil, nil, ErrEntitlementNotFound
		}
		uc.logger.Error("BulkSchedule: failed to get entitlement id=%d: %v", req.EntitlementID, err)
		return nil, nil, fmt.Errorf("%w: failed to get entitlement: %w", ErrInternal, err)
	}

	// 2. Прогоняем деривацию статуса перед проверками
	if ent.ApplyDerivedStatus(now) {
		if err := uc.entitlementRepo.Update(txCtx, ent); err != nil {
			uc.logger.Error("BulkSchedule: failed to persist derived status for entitlement id=%d: %v", ent.ID, err)
			return nil, nil, fmt.Errorf("%w: failed to update entitlement: %w", ErrInternal, err)
		}
	}

	if !ent.IsActive() {
		uc.logger.Warn("BulkSchedule: entitlement id=%d is not active, status=%s", ent.ID, ent.Status)
		return nil, nil, ErrNoActiveEntitlement
	}

	if ent.SessionsRemaining == 0 {
		uc.logger.Warn("BulkSchedule: entitlement id=%d has no sessions remaining", ent.ID)
		return nil, nil, ErrNoSessionsRemaining
	}

	// 3. Сколько сессий планируем: не больше остатка на абонементе
	target := ent.SessionsRemaining
	if req.Count > 0 && req.Count < target {
		target = req.Count
	}

	// 4. Генерируем даты, потолок - конец действия абонемента
	spec := domain.ScheduleSpec{
		Frequency:   domain.RecurrenceFrequency(req.Frequency),
		Weekdays:    req.Weekdays,
		CustomDates: req.CustomDates,
	}

	dates := domain.GenerateDates(spec, req.StartDate, ent.ValidityEnd, target)
	if len(dates) == 0 {
		uc.logger.Warn("BulkSchedule: no candidate dates generated for entitlement id=%d", ent.ID)
		return &Response{
			Created:              []CreatedSlot{},
			Conflicts:            []Conflict{},
			Requested:            target,
			RemainingUnscheduled: target,
			SessionsRemaining:    ent.SessionsRemaining,
		}, nil, nil
	}

	duration := req.DurationMinutes
	if duration == 0 {
		duration = domain.DefaultSessionDurationMinutes
	}

	// 5. Материализуем интервалы кандидатов
	starts := make([]time.Time, len(dates))
	ends := make([]time.Time, len(dates))
	for i, d := range dates {
		start, err := req.StartTime.OnDate(d)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: invalid startTime: %v", ErrInvalidInput, err)
		}
		starts[i] = start
		ends[i] = start.Add(time.Duration(duration) * time.Minute)
	}

	// 6. Один диапазонный запрос занятых слотов тренера на весь батч с блокировкой.
	// Окно расширено влево на максимальную длительность ради длинных слотов,
	// начавшихся раньше первого кандидата
	windowFrom := starts[0].Add(-time.Duration(domain.MaxSessionDurationMinutes) * time.Minute)
	windowTo := ends[len(ends)-1]

	existing, err := uc.slotRepo.GetByTrainerWithFilter(txCtx, domain.TrainerSlotsFilter{
		TrainerID:     req.TrainerID,
		From:          ptr.Ptr(windowFrom),
		To:            ptr.Ptr(windowTo),
		OnlyCommitted: true,
	})
	if err != nil {
		uc.logger.Error("BulkSchedule: failed to get trainer slots: %v", err)
		return nil, nil, fmt.Errorf("%w: failed to get trainer slots: %w", ErrInternal, err)
	}

	// 7. Проверяем каждого кандидата: против существующих слотов и против
	// уже принятых кандидатов этого же батча
	staged := make([]*domain.BookedSlot, 0, len(dates))
	conflicts := make([]Conflict, 0)

	rule := &domain.RecurrenceRule{
		Enabled:   true,
		Frequency: spec.Frequency,
		Interval:  1,
		Weekdays:  req.Weekdays,
		Until:     ptr.Ptr(domain.DateOnly(ent.ValidityEnd)),
	}

	for i := range dates {
		conflict := domain.FindConflict(starts[i], ends[i], existing, 0)
		if conflict == nil {
			conflict = domain.FindConflict(starts[i], ends[i], staged, 0)
		}

		if conflict != nil {
			uc.logger.Warn("BulkSchedule: candidate %s conflicts with slot id=%d",
				dates[i].Format(domain.DateFormat), conflict.ID)
			conflicts = append(conflicts, Conflict{
				Date:              dates[i],
				RequestedStart:    starts[i],
				RequestedEnd:      ends[i],
				ConflictingSlotID: conflict.ID,
			})
			continue
		}

		staged = append(staged, &domain.BookedSlot{
			MemberID:            ent.MemberID,
			TrainerID:           req.TrainerID,
			ProgramID:           req.ProgramID,
			StartTime:           starts[i],
			EndTime:             ends[i],
			DurationMinutes:     duration,
			Status:              domain.SlotStatusScheduled,
			Recurrence:          rule,
			IsRecurringInstance: true,
			Notes:               req.Notes,
		})
	}

	// 8. Вставляем прошедших кандидатов одним батчем
	var inserted []*domain.BookedSlot
	if len(staged) > 0 {
		inserted, err = uc.slotRepo.CreateBatch(txCtx, staged)
		if err != nil {
			if errors.Is(err, slotRepo.ErrIntervalTaken) {
				uc.logger.Warn("BulkSchedule: batch insert hit exclusion constraint, trainer=%d", req.TrainerID)
				return nil, nil, ErrSlotConflict
			}
			uc.logger.Error("BulkSchedule: failed to create slots: %v", err)
			return nil, nil, fmt.Errorf("%w: failed to create slots: %w", ErrInternal, err)
		}
	}

	return &Response{
		Created:              toCreatedSlots(inserted),
		Conflicts:            conflicts,
		Requested:            target,
		ScheduledCount:       len(inserted),
		RemainingUnscheduled: target - len(inserted),
		SessionsRemaining:    ent.SessionsRemaining,
	}, inserted, nil
}
