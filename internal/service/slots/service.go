package slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-TrainingService/internal/domain"
	slotRepo "github.com/m04kA/SMC-TrainingService/internal/infra/storage/slot"
	"github.com/m04kA/SMC-TrainingService/internal/integrations/notifier"
	"github.com/m04kA/SMC-TrainingService/internal/service/slots/models"
)

// Service сервис чтения и отмены слотов
type Service struct {
	slotRepo     SlotRepository
	notifier     NotifierClient
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса слотов
func NewService(
	slotRepo SlotRepository,
	notifierClient NotifierClient,
	logger Logger,
) *Service {
	return &Service{
		slotRepo:     slotRepo,
		notifier:     notifierClient,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// GetByID получает слот по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.SlotResponse, error) {
	slot, err := s.slotRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, slotRepo.ErrSlotNotFound) {
			s.logger.Warn("GetByID: slot id=%d not found", id)
			return nil, ErrSlotNotFound
		}
		s.logger.Error("GetByID: repository error for slot id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainSlot(slot), nil
}

// GetMemberSlots получает слоты клиента с фильтрацией по периоду и статусу
func (s *Service) GetMemberSlots(ctx context.Context, req *models.GetMemberSlotsRequest) (*models.SlotListResponse, error) {
	filter := domain.MemberSlotsFilter{
		MemberID: req.MemberID,
		From:     req.From,
		To:       req.To,
	}

	if req.Status != nil {
		status, ok := models.ToDomainSlotStatus(*req.Status)
		if !ok {
			s.logger.Warn("GetMemberSlots: invalid status=%s for member=%d", *req.Status, req.MemberID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		filter.Status = &status
	}

	found, err := s.slotRepo.GetByMemberWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetMemberSlots: repository error for member=%d: %v", req.MemberID, err)
		return nil, fmt.Errorf("%w: GetMemberSlots - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetMemberSlots: fetched %d slots for member=%d", len(found), req.MemberID)
	return models.FromDomainSlotList(found), nil
}

// GetTrainerSlots получает расписание тренера с фильтрацией по периоду и статусу
func (s *Service) GetTrainerSlots(ctx context.Context, req *models.GetTrainerSlotsRequest) (*models.SlotListResponse, error) {
	filter := domain.TrainerSlotsFilter{
		TrainerID: req.TrainerID,
		From:      req.From,
		To:        req.To,
	}

	if req.Status != nil {
		status, ok := models.ToDomainSlotStatus(*req.Status)
		if !ok {
			s.logger.Warn("GetTrainerSlots: invalid status=%s for trainer=%d", *req.Status, req.TrainerID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		filter.Status = &status
	}

	found, err := s.slotRepo.GetByTrainerWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetTrainerSlots: repository error for trainer=%d: %v", req.TrainerID, err)
		return nil, fmt.Errorf("%w: GetTrainerSlots - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetTrainerSlots: fetched %d slots for trainer=%d", len(found), req.TrainerID)
	return models.FromDomainSlotList(found), nil
}

// Cancel отменяет слот
//
// Клиент может отменить только свой слот и только заранее: отмена позже, чем за
// domain.DefaultCancellationNoticeHours до начала, запрещена (ErrCancellationNotice).
// Для клиента причина отмены обязательна. Тренер и администратор отменяют
// без ограничений по сроку.
func (s *Service) Cancel(ctx context.Context, slotID int64, req *models.CancelSlotRequest) error {
	s.logger.Info("Cancel: slot id=%d by actor=%d role=%s", slotID, req.ActorID, req.ActorRole)

	if req.ActorID <= 0 {
		return fmt.Errorf("%w: actorId must be positive", ErrInvalidInput)
	}
	if len(req.Reason) > domain.MaxCancellationReasonLength {
		return fmt.Errorf("%w: reason is too long", ErrInvalidInput)
	}

	slot, err := s.slotRepo.GetByID(ctx, slotID)
	if err != nil {
		if errors.Is(err, slotRepo.ErrSlotNotFound) {
			s.logger.Warn("Cancel: slot id=%d not found", slotID)
			return ErrSlotNotFound
		}
		s.logger.Error("Cancel: repository error for slot id=%d: %v", slotID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	if !slot.CanBeCancelled() {
		s.logger.Warn("Cancel: slot id=%d cannot be cancelled, status=%s", slotID, slot.Status)
		return ErrCannotCancel
	}

	if req.ActorRole == models.RoleMember {
		if slot.MemberID != req.ActorID {
			s.logger.Warn("Cancel: member=%d is not the owner of slot id=%d", req.ActorID, slotID)
			return ErrAccessDenied
		}

		if req.Reason == "" {
			s.logger.Warn("Cancel: member=%d did not provide a reason for slot id=%d", req.ActorID, slotID)
			return ErrReasonRequired
		}

		// Notice window: отмена клиентом слишком близко к началу запрещена
		notice := time.Duration(domain.DefaultCancellationNoticeHours) * time.Hour
		if slot.StartsWithin(s.timeProvider.Now(), notice) {
			s.logger.Warn("Cancel: slot id=%d starts within %d hours, member cancellation blocked",
				slotID, domain.DefaultCancellationNoticeHours)
			return ErrCancellationNotice
		}
	}

	if err := s.slotRepo.Cancel(ctx, slotID, req.ActorID, req.Reason); err != nil {
		if errors.Is(err, slotRepo.ErrSlotNotFound) {
			return ErrSlotNotFound
		}
		s.logger.Error("Cancel: repository error for slot id=%d: %v", slotID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	// Уведомление не критично для операции
	s.notifier.Publish(ctx, notifier.Event{
		Type:       notifier.EventSlotCancelled,
		SlotID:     slot.ID,
		MemberID:   slot.MemberID,
		TrainerID:  slot.TrainerID,
		StartTime:  slot.StartTime,
		EndTime:    slot.EndTime,
		OccurredAt: s.timeProvider.Now(),
	})

	s.logger.Info("Cancel: slot id=%d cancelled by actor=%d", slotID, req.ActorID)
	return nil
}

// MarkNoShow помечает слот как неявку клиента
// Доступно тренеру и администратору
func (s *Service) MarkNoShow(ctx context.Context, slotID int64, actorRole string) error {
	s.logger.Info("MarkNoShow: slot id=%d", slotID)

	if actorRole == models.RoleMember {
		return ErrAccessDenied
	}

	slot, err := s.slotRepo.GetByID(ctx, slotID)
	if err != nil {
		if errors.Is(err, slotRepo.ErrSlotNotFound) {
			return ErrSlotNotFound
		}
		return fmt.Errorf("%w: MarkNoShow - repository error: %v", ErrInternal, err)
	}

	if !slot.IsCommitted() {
		s.logger.Warn("MarkNoShow: slot id=%d is not committed, status=%s", slotID, slot.Status)
		return ErrInvalidState
	}

	if err := s.slotRepo.MarkNoShow(ctx, slotID); err != nil {
		if errors.Is(err, slotRepo.ErrSlotNotFound) {
			return ErrSlotNotFound
		}
		return fmt.Errorf("%w: MarkNoShow - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("MarkNoShow: slot id=%d marked as no-show", slotID)
	return nil
}
