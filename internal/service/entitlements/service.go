package entitlements

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-TrainingService/internal/domain"
	entitlementRepo "github.com/m04kA/SMC-TrainingService/internal/infra/storage/entitlement"
	catalogClient "github.com/m04kA/SMC-TrainingService/internal/integrations/packagecatalog"
	"github.com/m04kA/SMC-TrainingService/internal/service/entitlements/models"
)

// Service сервис жизненного цикла абонементов
//
// Операции чтения и мутации прогоняют derivation pass
// (domain.ApplyDerivedStatus): автоматические переходы active->expired и
// active->completed выполняются явно при обращении к абонементу,
// а не скрытым хуком при записи.
type Service struct {
	entitlementRepo EntitlementRepository
	catalogClient   PackageCatalogClient
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewService создает новый экземпляр сервиса абонементов
func NewService(
	entitlementRepo EntitlementRepository,
	catalogClient PackageCatalogClient,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		entitlementRepo: entitlementRepo,
		catalogClient:   catalogClient,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Assign назначает тарифный пакет клиенту и создает активный абонемент
// Счётчики берутся из пакета, окно действия = now + validity_months
func (s *Service) Assign(ctx context.Context, req *models.AssignRequest) (*models.EntitlementResponse, error) {
	s.logger.Info("Assign: member=%d, package=%d", req.MemberID, req.PackageID)

	if req.MemberID <= 0 || req.PackageID <= 0 {
		return nil, fmt.Errorf("%w: memberId and packageId must be positive", ErrInvalidInput)
	}
	if req.AmountPaid < 0 {
		return nil, fmt.Errorf("%w: amountPaid must not be negative", ErrInvalidInput)
	}

	// Получаем пакет из каталога (read-only lookup на момент назначения)
	pkg, err := s.catalogClient.GetPackage(ctx, req.PackageID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrPackageNotFound) {
			s.logger.Warn("Assign: package id=%d not found", req.PackageID)
			return nil, ErrPackageNotFound
		}
		s.logger.Error("Assign: failed to get package id=%d: %v", req.PackageID, err)
		return nil, fmt.Errorf("%w: Assign - failed to get package: %v", ErrInternal, err)
	}

	if !pkg.IsActive {
		s.logger.Warn("Assign: package id=%d is inactive", req.PackageID)
		return nil, ErrPackageInactive
	}

	now := s.timeProvider.Now()

	e := &domain.EntitlementInstance{
		MemberID:          req.MemberID,
		PackageID:         pkg.ID,
		TrainerID:         req.TrainerID,
		SessionsTotal:     pkg.SessionsTotal,
		SessionsUsed:      0,
		SessionsRemaining: pkg.SessionsTotal,
		ValidityStart:     now,
		ValidityEnd:       now.AddDate(0, pkg.ValidityMonths, 0),
		Status:            domain.EntitlementActive,
		PackageName:       pkg.Name,
		AmountPaid:        req.AmountPaid,
		PurchasedAt:       now,
	}

	created, err := s.entitlementRepo.Create(ctx, e)
	if err != nil {
		s.logger.Error("Assign: failed to create entitlement for member=%d: %v", req.MemberID, err)
		return nil, fmt.Errorf("%w: Assign - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Assign: successfully created entitlement id=%d for member=%d (%d sessions until %s)",
		created.ID, created.MemberID, created.SessionsTotal, created.ValidityEnd.Format(domain.DateFormat))
	return models.FromDomainEntitlement(created), nil
}

// GetByID получает абонемент по ID
//
// Перед отдачей прогоняется derivation pass: если окно действия истекло,
// а строка в БД всё ещё active, переход фиксируется прямо здесь
func (s *Service) GetByID(ctx context.Context, id int64) (*models.EntitlementResponse, error) {
	e, err := s.entitlementRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, entitlementRepo.ErrEntitlementNotFound) {
			s.logger.Warn("GetByID: entitlement id=%d not found", id)
			return nil, ErrEntitlementNotFound
		}
		s.logger.Error("GetByID: repository error for entitlement id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if err := s.deriveAndPersist(ctx, e); err != nil {
		return nil, fmt.Errorf("%w: GetByID - %v", ErrInternal, err)
	}

	return models.FromDomainEntitlement(e), nil
}

// GetByMember получает все абонементы клиента
//
// Каждый абонемент проходит derivation pass, накопившиеся переходы
// active->expired/completed фиксируются в БД
func (s *Service) GetByMember(ctx context.Context, memberID int64) (*models.EntitlementListResponse, error) {
	entitlements, err := s.entitlementRepo.GetByMember(ctx, memberID)
	if err != nil {
		s.logger.Error("GetByMember: repository error for member=%d: %v", memberID, err)
		return nil, fmt.Errorf("%w: GetByMember - repository error: %v", ErrInternal, err)
	}

	for _, e := range entitlements {
		if err := s.deriveAndPersist(ctx, e); err != nil {
			return nil, fmt.Errorf("%w: GetByMember - %v", ErrInternal, err)
		}
	}

	return models.FromDomainEntitlementList(entitlements), nil
}

// deriveAndPersist применяет производный статус и сохраняет переход в БД.
// Без изменений - без записи
func (s *Service) deriveAndPersist(ctx context.Context, e *domain.EntitlementInstance) error {
	if !e.ApplyDerivedStatus(s.timeProvider.Now()) {
		return nil
	}

	s.logger.Info("entitlement id=%d derived to %s, persisting transition", e.ID, e.Status)
	if err := s.entitlementRepo.Update(ctx, e); err != nil {
		s.logger.Error("failed to persist derived status for entitlement id=%d: %v", e.ID, err)
		return fmt.Errorf("persist derived status: %v", err)
	}
	return nil
}

// UseSession списывает одну сессию с абонемента
//
// Списание атомарно на уровне БД (условный UPDATE с проверкой остатка),
// поэтому два одновременных завершения тренировок не спишут лишнего.
// Consumed=false в результате означает отказ в списании, а не сбой.
func (s *Service) UseSession(ctx context.Context, id int64) (*models.UseSessionResult, error) {
	s.logger.Info("UseSession: entitlement id=%d", id)

	// Derivation pass перед списанием: истекший абонемент сначала
	// переводится в expired, и условный UPDATE штатно откажет
	current, err := s.entitlementRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, entitlementRepo.ErrEntitlementNotFound) {
			s.logger.Warn("UseSession: entitlement id=%d not found", id)
			return nil, ErrEntitlementNotFound
		}
		s.logger.Error("UseSession: repository error for entitlement id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: UseSession - repository error: %v", ErrInternal, err)
	}
	if err := s.deriveAndPersist(ctx, current); err != nil {
		return nil, fmt.Errorf("%w: UseSession - %v", ErrInternal, err)
	}

	consumed, err := s.entitlementRepo.ConsumeSession(ctx, id)
	if err != nil {
		s.logger.Error("UseSession: repository error for entitlement id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: UseSession - repository error: %v", ErrInternal, err)
	}

	e, err := s.entitlementRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, entitlementRepo.ErrEntitlementNotFound) {
			return nil, ErrEntitlementNotFound
		}
		s.logger.Error("UseSession: failed to reload entitlement id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: UseSession - repository error: %v", ErrInternal, err)
	}

	if consumed {
		s.logger.Info("UseSession: consumed session from entitlement id=%d, %d remaining, status=%s",
			id, e.SessionsRemaining, e.Status)
	} else {
		s.logger.Warn("UseSession: consumption denied for entitlement id=%d (status=%s, remaining=%d)",
			id, e.Status, e.SessionsRemaining)
	}

	return &models.UseSessionResult{
		Consumed:          consumed,
		SessionsRemaining: e.SessionsRemaining,
		Status:            string(e.Status),
	}, nil
}

// Freeze замораживает абонемент на указанное число дней
// Окно действия сдвигается на days вперёд, заморозка допустима только
// для активного абонемента
func (s *Service) Freeze(ctx context.Context, id int64, req *models.FreezeRequest) (*models.EntitlementResponse, error) {
	s.logger.Info("Freeze: entitlement id=%d, days=%d", id, req.Days)

	if req.Days < domain.MinFreezeDays || req.Days > domain.MaxFreezeDays {
		return nil, fmt.Errorf("%w: days must be between %d and %d",
			ErrInvalidInput, domain.MinFreezeDays, domain.MaxFreezeDays)
	}

	var result *domain.EntitlementInstance

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		e, err := s.entitlementRepo.GetByID(txCtx, id)
		if err != nil {
			if errors.Is(err, entitlementRepo.ErrEntitlementNotFound) {
				return ErrEntitlementNotFound
			}
			return fmt.Errorf("%w: Freeze - repository error: %v", ErrInternal, err)
		}

		now := s.timeProvider.Now()

		// Сначала derivation pass: абонемент мог истечь с момента последней записи
		e.ApplyDerivedStatus(now)

		if !e.CanBeFrozen() {
			s.logger.Warn("Freeze: entitlement id=%d is not active (status=%s)", id, e.Status)
			return ErrInvalidState
		}

		freeze := &domain.FreezeRecord{
			EntitlementID: e.ID,
			StartDate:     now,
			EndDate:       now.AddDate(0, 0, req.Days),
			Days:          req.Days,
			Reason:        req.Reason,
		}

		if _, err := s.entitlementRepo.AddFreeze(txCtx, freeze); err != nil {
			return fmt.Errorf("%w: Freeze - failed to add freeze record: %v", ErrInternal, err)
		}

		e.ValidityEnd = e.ValidityEnd.AddDate(0, 0, req.Days)
		e.TotalFrozenDays += req.Days
		e.Freezes = append(e.Freezes, *freeze)

		e.ApplyDerivedStatus(now)

		if err := s.entitlementRepo.Update(txCtx, e); err != nil {
			return fmt.Errorf("%w: Freeze - failed to update entitlement: %v", ErrInternal, err)
		}

		result = e
		return nil
	})

	if err != nil {
		return nil, err
	}

	s.logger.Info("Freeze: entitlement id=%d frozen for %d days, validity until %s, total frozen=%d",
		id, req.Days, result.ValidityEnd.Format(domain.DateFormat), result.TotalFrozenDays)
	return models.FromDomainEntitlement(result), nil
}

// Extend продлевает абонемент: добавляет дни к окну действия и/или сессии
// к счётчикам. Завершённый абонемент при добавлении сессий снова становится
// активным. Отменённый абонемент продлить нельзя.
func (s *Service) Extend(ctx context.Context, id int64, req *models.ExtendRequest) (*models.EntitlementResponse, error) {
	s.logger.Info("Extend: entitlement id=%d, days=%d, sessions=%d, actor=%d",
		id, req.AdditionalDays, req.AdditionalSessions, req.ActorID)

	if err := validateExtendRequest(req); err != nil {
		return nil, err
	}

	var result *domain.EntitlementInstance

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		e, err := s.entitlementRepo.GetByID(txCtx, id)
		if err != nil {
			if errors.Is(err, entitlementRepo.ErrEntitlementNotFound) {
				return ErrEntitlementNotFound
			}
			return fmt.Errorf("%w: Extend - repository error: %v", ErrInternal, err)
		}

		if e.IsTerminal() {
			s.logger.Warn("Extend: entitlement id=%d is cancelled", id)
			return ErrInvalidState
		}

		ext := &domain.ExtensionRecord{
			EntitlementID:      e.ID,
			AdditionalDays:     req.AdditionalDays,
			AdditionalSessions: req.AdditionalSessions,
			AmountPaid:         req.AmountPaid,
			CreatedBy:          req.ActorID,
			Reason:             req.Reason,
		}

		if _, err := s.entitlementRepo.AddExtension(txCtx, ext); err != nil {
			return fmt.Errorf("%w: Extend - failed to add extension record: %v", ErrInternal, err)
		}

		if req.AdditionalDays > 0 {
			e.ValidityEnd = e.ValidityEnd.AddDate(0, 0, req.AdditionalDays)
		}

		if req.AdditionalSessions > 0 {
			e.SessionsTotal += req.AdditionalSessions
			e.SessionsRemaining += req.AdditionalSessions

			// Исчерпанный абонемент с новыми сессиями снова активен
			if e.Status == domain.EntitlementCompleted {
				e.Status = domain.EntitlementActive
			}
		}

		e.Extensions = append(e.Extensions, *ext)

		e.ApplyDerivedStatus(s.timeProvider.Now())

		if err := s.entitlementRepo.Update(txCtx, e); err != nil {
			return fmt.Errorf("%w: Extend - failed to update entitlement: %v", ErrInternal, err)
		}

		result = e
		return nil
	})

	if err != nil {
		return nil, err
	}

	s.logger.Info("Extend: entitlement id=%d extended, validity until %s, %d sessions remaining, status=%s",
		id, result.ValidityEnd.Format(domain.DateFormat), result.SessionsRemaining, result.Status)
	return models.FromDomainEntitlement(result), nil
}

// Cancel отменяет абонемент
// Отмена терминальна и применяется из любого статуса
func (s *Service) Cancel(ctx context.Context, id int64, req *models.CancelRequest) error {
	s.logger.Info("Cancel: entitlement id=%d by actor=%d", id, req.ActorID)

	if req.ActorID <= 0 {
		return fmt.Errorf("%w: actorId must be positive", ErrInvalidInput)
	}

	if err := s.entitlementRepo.Cancel(ctx, id, req.ActorID, req.Reason); err != nil {
		if errors.Is(err, entitlementRepo.ErrEntitlementNotFound) {
			s.logger.Warn("Cancel: entitlement id=%d not found", id)
			return ErrEntitlementNotFound
		}
		s.logger.Error("Cancel: repository error for entitlement id=%d: %v", id, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: entitlement id=%d cancelled", id)
	return nil
}

// validateExtendRequest валидирует запрос на продление
func validateExtendRequest(req *models.ExtendRequest) error {
	if req.AdditionalDays < 0 || req.AdditionalDays > domain.MaxExtensionDays {
		return fmt.Errorf("%w: additionalDays must be between 0 and %d", ErrInvalidInput, domain.MaxExtensionDays)
	}
	if req.AdditionalSessions < 0 || req.AdditionalSessions > domain.MaxExtensionSessions {
		return fmt.Errorf("%w: additionalSessions must be between 0 and %d", ErrInvalidInput, domain.MaxExtensionSessions)
	}
	if req.AdditionalDays == 0 && req.AdditionalSessions == 0 {
		return fmt.Errorf("%w: extension must add days or sessions", ErrInvalidInput)
	}
	if req.ActorID <= 0 {
		return fmt.Errorf("%w: actorId must be positive", ErrInvalidInput)
	}
	if req.AmountPaid < 0 {
		return fmt.Errorf("%w: amountPaid must not be negative", ErrInvalidInput)
	}
	return nil
}
