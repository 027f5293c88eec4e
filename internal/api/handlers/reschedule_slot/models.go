package reschedule_slot

import (
	"time"

	"github.com/m04kA/SMC-TrainingService/internal/domain"
	rescheduleSlot "github.com/m04kA/SMC-TrainingService/internal/usecase/reschedule_slot"
	"github.com/m04kA/SMC-TrainingService/pkg/types"
)

// RescheduleSlotRequest HTTP request model
type RescheduleSlotRequest struct {
	ActorID         int64  `json:"actorId"`
	ActorRole       string `json:"actorRole"`
	Date            string `json:"date"`      // "2025-10-15"
	StartTime       string `json:"startTime"` // "10:00"
	DurationMinutes int    `json:"durationMinutes,omitempty"`
}

// SlotResponse HTTP response model
type SlotResponse struct {
	ID              int64  `json:"id"`
	MemberID        int64  `json:"memberId"`
	TrainerID       int64  `json:"trainerId"`
	StartTime       string `json:"startTime"` // ISO 8601
	EndTime         string `json:"endTime"`
	DurationMinutes int    `json:"durationMinutes"`
	Status          string `json:"status"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *RescheduleSlotRequest) ToUseCaseRequest(slotID int64) (*rescheduleSlot.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &rescheduleSlot.Request{
		SlotID:          slotID,
		ActorID:         r.ActorID,
		ActorRole:       r.ActorRole,
		Date:            date,
		StartTime:       startTime,
		DurationMinutes: r.DurationMinutes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *rescheduleSlot.Response) *SlotResponse {
	return &SlotResponse{
		ID:              resp.ID,
		MemberID:        resp.MemberID,
		TrainerID:       resp.TrainerID,
		StartTime:       resp.StartTime.Format(time.RFC3339),
		EndTime:         resp.EndTime.Format(time.RFC3339),
		DurationMinutes: resp.DurationMinutes,
		Status:          resp.Status,
	}
}
