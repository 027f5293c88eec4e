package complete_slot

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-TrainingService/internal/domain"
	entitlementRepo "github.com/m04kA/SMC-TrainingService/internal/infra/storage/entitlement"
	slotRepo "github.com/m04kA/SMC-TrainingService/internal/infra/storage/slot"
	"github.com/m04kA/SMC-TrainingService/internal/integrations/notifier"
	"github.com/m04kA/SMC-TrainingService/pkg/ptr"
)

// UseCase use case для отметки проведенной тренировки со списанием сессии
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

// Execute выполняет use case завершения слота
//
// Слот помечается проведенным, затем с активного абонемента клиента списывается
// одна сессия. Отсутствие абонемента или сессий не блокирует завершение:
// операция завершается успешно с предупреждением в ответе
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CompleteSlot: slot=%d, actor=%d, role=%s", req.SlotID, req.ActorID, req.ActorRole)

	// 1. Валидация входных данных и прав
	if req.SlotID <= 0 {
		return nil, fmt.Errorf("%w: slotID must be positive", ErrInvalidInput)
	}
	if req.ActorID <= 0 {
		return nil, fmt.Errorf("%w: actorID must be positive", ErrInvalidInput)
	}
	if req.ActorRole == domain.RoleMember {
		uc.logger.Warn("CompleteSlot: member=%d tried to complete slot id=%d", req.ActorID, req.SlotID)
		return nil, ErrAccessDenied
	}

	var (
		result *Response
		slot   *domain.BookedSlot
	)

	// 2. Завершение слота и списание сессии в одной транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2.1. Получаем слот с блокировкой
		loaded, err := uc.slotRepo.GetByID(txCtx, req.SlotID)
		if err != nil {
			if errors.Is(err, slotRepo.ErrSlotNotFound) {
				uc.logger.Warn("CompleteSlot: slot id=%d not found", req.SlotID)
				return ErrSlotNotFound
			}
			uc.logger.Error("CompleteSlot: failed to get slot id=%d: %v", req.SlotID, err)
			return fmt.Errorf("%w: failed to get slot: %w", ErrInternal, err)
		}
		slot = loaded

		// 2.2. Завершить можно только запланированный слот
		if !slot.CanBeCompleted() {
			uc.logger.Warn("CompleteSlot: slot id=%d cannot be completed, status=%s", req.SlotID, slot.Status)
			return ErrInvalidState
		}

		// 2.3. Ищем активный абонемент клиента с блокировкой
		ent, err := uc.entitlementRepo.GetActiveByMember(txCtx, slot.MemberID)
		if err != nil {
			if errors.Is(err, entitlementRepo.ErrEntitlementNotFound) {
				// Нет абонемента - завершаем слот без списания
				uc.logger.Warn("CompleteSlot: member=%d has no active entitlement, completing without consumption",
					slot.MemberID)
				if err := uc.slotRepo.Complete(txCtx, slot.ID, nil); err != nil {
					return fmt.Errorf("%w: failed to complete slot: %w", ErrInternal, err)
				}
				result = &Response{
					SlotID:  slot.ID,
					Status:  string(domain.SlotStatusCompleted),
					Warning: ptr.Ptr(WarningNoEntitlement),
				}
				return nil
			}
			uc.logger.Error("CompleteSlot: failed to get entitlement for member=%d: %v", slot.MemberID, err)
			return fmt.Errorf("%w: failed to get entitlement: %w", ErrInternal, err)
		}

		// 2.4. Прогоняем derivation pass: абонемент мог истечь, оставаясь
		// в БД со статусом active. Переход фиксируем в той же транзакции
		// и завершаем слот без списания
		if ent.ApplyDerivedStatus(uc.timeProvider.Now()) {
			uc.logger.Warn("CompleteSlot: entitlement id=%d derived to %s, completing without consumption",
				ent.ID, ent.Status)
			if err := uc.entitlementRepo.Update(txCtx, ent); err != nil {
				return fmt.Errorf("%w: failed to persist derived entitlement status: %w", ErrInternal, err)
			}
			if err := uc.slotRepo.Complete(txCtx, slot.ID, nil); err != nil {
				return fmt.Errorf("%w: failed to complete slot: %w", ErrInternal, err)
			}
			warning := WarningNoEntitlement
			if ent.Status == domain.EntitlementCompleted {
				warning = WarningNoSessions
			}
			result = &Response{
				SlotID:  slot.ID,
				Status:  string(domain.SlotStatusCompleted),
				Warning: ptr.Ptr(warning),
			}
			return nil
		}

		// 2.5. Списываем сессию условным UPDATE: отказ - не ошибка
		consumed, err := uc.entitlementRepo.ConsumeSession(txCtx, ent.ID)
		if err != nil {
			uc.logger.Error("CompleteSlot: failed to consume session from entitlement id=%d: %v", ent.ID, err)
			return fmt.Errorf("%w: failed to consume session: %w", ErrInternal, err)
		}

		if !consumed {
			uc.logger.Warn("CompleteSlot: entitlement id=%d has no sessions remaining, completing without consumption",
				ent.ID)
			if err := uc.slotRepo.Complete(txCtx, slot.ID, nil); err != nil {
				return fmt.Errorf("%w: failed to complete slot: %w", ErrInternal, err)
			}
			result = &Response{
				SlotID:  slot.ID,
				Status:  string(domain.SlotStatusCompleted),
				Warning: ptr.Ptr(WarningNoSessions),
			}
			return nil
		}

		// 2.6. Сессия списана - связываем слот с абонементом
		if err := uc.slotRepo.Complete(txCtx, slot.ID, ptr.Ptr(ent.ID)); err != nil {
			return fmt.Errorf("%w: failed to complete slot: %w", ErrInternal, err)
		}

		// 2.7. Перечитываем абонемент ради актуального остатка и статуса
		updated, err := uc.entitlementRepo.GetByID(txCtx, ent.ID)
		if err != nil {
			uc.logger.Error("CompleteSlot: failed to reload entitlement id=%d: %v", ent.ID, err)
			return fmt.Errorf("%w: failed to reload entitlement: %w", ErrInternal, err)
		}

		result = &Response{
			SlotID:            slot.ID,
			Status:            string(domain.SlotStatusCompleted),
			SessionConsumed:   true,
			EntitlementID:     ptr.Ptr(updated.ID),
			SessionsRemaining: ptr.Ptr(updated.SessionsRemaining),
			EntitlementStatus: ptr.Ptr(string(updated.Status)),
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CompleteSlot: slot id=%d completed, sessionConsumed=%v", req.SlotID, result.SessionConsumed)

	// 3. Уведомление не критично для операции
	uc.notifier.Publish(ctx, notifier.Event{
		Type:          notifier.EventSlotCompleted,
		SlotID:        slot.ID,
		MemberID:      slot.MemberID,
		TrainerID:     slot.TrainerID,
		StartTime:     slot.StartTime,
		EndTime:       slot.EndTime,
		EntitlementID: result.EntitlementID,
		OccurredAt:    uc.timeProvider.Now(),
	})

	return result, nil
}
