package reschedule_all

import (
	"context"
	"errors"
	"fmt"

	entitlementRepo "github.com/m04kA/SMC-TrainingService/internal/infra/storage/entitlement"
	"github.com/m04kA/SMC-TrainingService/internal/usecase/bulk_schedule"
)

// UseCase use case для полного перепланирования расписания клиента
//
// Все запланированные слоты клиента удаляются, затем строится новое расписание
// пакетным планировщиком. Обе фазы выполняются в одной сериализуемой
// транзакции: при конфликте планирования удаление тоже откатывается
type UseCase struct {
	entitlementRepo EntitlementRepository
	slotRepo        SlotRepository
	bulkScheduler   BulkScheduler
	txManager       TransactionManager
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	entitlementRepo EntitlementRepository,
	slotRepo SlotRepository,
	bulkScheduler BulkScheduler,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		entitlementRepo: entitlementRepo,
		slotRepo:        slotRepo,
		bulkScheduler:   bulkScheduler,
		txManager:       txManager,
		logger:          logger,
	}
}

// Execute выполняет use case перепланирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RescheduleAll: entitlement=%d, trainer=%d, frequency=%s",
		req.EntitlementID, req.TrainerID, req.Frequency)

	if req.EntitlementID <= 0 {
		return nil, fmt.Errorf("%w: entitlementID must be positive", ErrInvalidInput)
	}

	var result *Response

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 1. Получаем абонемент с блокировкой, чтобы узнать клиента
		ent, err := uc.entitlementRepo.GetByID(txCtx, req.EntitlementID)
		if err != nil {
			if errors.Is(err, entitlementRepo.ErrEntitlementNotFound) {
				uc.logger.Warn("RescheduleAll: entitlement id=%d not found", req.EntitlementID)
				return ErrEntitlementNotFound
			}
			uc.logger.Error("RescheduleAll: failed to get entitlement id=%d: %v", req.EntitlementID, err)
			return fmt.Errorf("%w: failed to get entitlement: %w", ErrInternal, err)
		}

		// 2. Удаляем все запланированные слоты клиента
		removed, err := uc.slotRepo.DeletePendingByMember(txCtx, ent.MemberID)
		if err != nil {
			uc.logger.Error("RescheduleAll: failed to delete pending slots for member=%d: %v", ent.MemberID, err)
			return fmt.Errorf("%w: failed to delete pending slots: %w", ErrInternal, err)
		}

		uc.logger.Info("RescheduleAll: removed %d pending slots for member=%d", removed, ent.MemberID)

		// 3. Строим новое расписание; планировщик переиспользует открытую транзакцию
		schedule, err := uc.bulkScheduler.Execute(txCtx, &bulk_schedule.Request{
			EntitlementID:   req.EntitlementID,
			TrainerID:       req.TrainerID,
			ProgramID:       req.ProgramID,
			Count:           req.Count,
			StartDate:       req.StartDate,
			StartTime:       req.StartTime,
			DurationMinutes: req.DurationMinutes,
			Frequency:       req.Frequency,
			Weekdays:        req.Weekdays,
			CustomDates:     req.CustomDates,
			Notes:           req.Notes,
		})
		if err != nil {
			// Ошибки планировщика отдаем наружу как есть
			return err
		}

		result = &Response{
			RemovedCount:         removed,
			Created:              schedule.Created,
			Conflicts:            schedule.Conflicts,
			Requested:            schedule.Requested,
			ScheduledCount:       schedule.ScheduledCount,
			RemainingUnscheduled: schedule.RemainingUnscheduled,
			SessionsRemaining:    schedule.SessionsRemaining,
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("RescheduleAll: entitlement=%d removed=%d scheduled=%d",
		req.EntitlementID, result.RemovedCount, result.ScheduledCount)

	return result, nil
}
