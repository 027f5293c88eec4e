package models

import (
	"time"

	"github.com/m04kA/SMC-TrainingService/internal/domain"
)

// Роли акторов, приходящие от identity-сервиса
const (
	RoleMember  = domain.RoleMember
	RoleTrainer = domain.RoleTrainer
	RoleAdmin   = domain.RoleAdmin
)

// Request модели

// CancelSlotRequest запрос на отмену слота
type CancelSlotRequest struct {
	ActorID   int64  `json:"actorId"`
	ActorRole string `json:"actorRole"`
	Reason    string `json:"reason"`
}

// GetMemberSlotsRequest запрос на получение слотов клиента
type GetMemberSlotsRequest struct {
	MemberID int64      `json:"memberId"`
	From     *time.Time `json:"from,omitempty"`
	To       *time.Time `json:"to,omitempty"`
	Status   *string    `json:"status,omitempty"`
}

// GetTrainerSlotsRequest запрос на получение расписания тренера
type GetTrainerSlotsRequest struct {
	TrainerID int64      `json:"trainerId"`
	From      *time.Time `json:"from,omitempty"`
	To        *time.Time `json:"to,omitempty"`
	Status    *string    `json:"status,omitempty"`
}

// Response модели

// RecurrenceResponse описание повторяющейся серии
type RecurrenceResponse struct {
	Frequency string  `json:"frequency"`
	Interval  int     `json:"interval"`
	Weekdays  []int   `json:"weekdays,omitempty"`
	Until     *string `json:"until,omitempty"` // "2025-10-15"
	Count     *int    `json:"count,omitempty"`
}

// SlotResponse ответ с данными слота
type SlotResponse struct {
	ID        int64  `json:"id"`
	MemberID  int64  `json:"memberId"`
	TrainerID int64  `json:"trainerId"`
	ProgramID *int64 `json:"programId,omitempty"`

	StartTime       time.Time `json:"startTime"`
	EndTime         time.Time `json:"endTime"`
	DurationMinutes int       `json:"durationMinutes"`

	Status string `json:"status"`

	Recurrence          *RecurrenceResponse `json:"recurrence,omitempty"`
	ParentSlotID        *int64              `json:"parentSlotId,omitempty"`
	IsRecurringInstance bool                `json:"isRecurringInstance"`

	EntitlementID *int64 `json:"entitlementId,omitempty"`

	Notes *string `json:"notes,omitempty"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// SlotListResponse ответ со списком слотов
type SlotListResponse struct {
	Slots []SlotResponse `json:"slots"`
}

// Методы конвертации

// FromDomainSlot конвертирует domain модель в DTO
func FromDomainSlot(s *domain.BookedSlot) *SlotResponse {
	if s == nil {
		return nil
	}

	resp := &SlotResponse{
		ID:                  s.ID,
		MemberID:            s.MemberID,
		TrainerID:           s.TrainerID,
		ProgramID:           s.ProgramID,
		StartTime:           s.StartTime,
		EndTime:             s.EndTime,
		DurationMinutes:     s.DurationMinutes,
		Status:              string(s.Status),
		ParentSlotID:        s.ParentSlotID,
		IsRecurringInstance: s.IsRecurringInstance,
		EntitlementID:       s.EntitlementID,
		Notes:               s.Notes,
		CancellationReason:  s.CancellationReason,
		CreatedAt:           s.CreatedAt,
		UpdatedAt:           s.UpdatedAt,
	}

	if s.CancelledAt != nil {
		cancelledStr := s.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	if s.Recurrence != nil && s.Recurrence.Enabled {
		rec := &RecurrenceResponse{
			Frequency: string(s.Recurrence.Frequency),
			Interval:  s.Recurrence.Interval,
			Count:     s.Recurrence.Count,
		}
		for _, w := range s.Recurrence.Weekdays {
			rec.Weekdays = append(rec.Weekdays, int(w))
		}
		if s.Recurrence.Until != nil {
			untilStr := s.Recurrence.Until.Format(domain.DateFormat)
			rec.Until = &untilStr
		}
		resp.Recurrence = rec
	}

	return resp
}

// FromDomainSlotList конвертирует список domain моделей в DTO
func FromDomainSlotList(slots []*domain.BookedSlot) *SlotListResponse {
	resp := &SlotListResponse{
		Slots: make([]SlotResponse, 0, len(slots)),
	}

	for _, s := range slots {
		if r := FromDomainSlot(s); r != nil {
			resp.Slots = append(resp.Slots, *r)
		}
	}

	return resp
}

// ToDomainSlotStatus конвертирует строку в domain.SlotStatus с валидацией
func ToDomainSlotStatus(status string) (domain.SlotStatus, bool) {
	s := domain.SlotStatus(status)

	switch s {
	case domain.SlotStatusScheduled,
		domain.SlotStatusCompleted,
		domain.SlotStatusCancelled,
		domain.SlotStatusNoShow,
		domain.SlotStatusRescheduled:
		return s, true
	}

	return "", false
}
