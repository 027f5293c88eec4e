package book_slot

import (
	"time"

	"github.com/m04kA/SMC-TrainingService/internal/domain"
	bookSlot "github.com/m04kA/SMC-TrainingService/internal/usecase/book_slot"
	"github.com/m04kA/SMC-TrainingService/pkg/types"
)

// BookSlotRequest HTTP request model
type BookSlotRequest struct {
	MemberID        int64   `json:"memberId"`
	TrainerID       int64   `json:"trainerId"`
	ProgramID       *int64  `json:"programId,omitempty"`
	Date            string  `json:"date"`      // "2025-10-15"
	StartTime       string  `json:"startTime"` // "10:00"
	DurationMinutes int     `json:"durationMinutes,omitempty"`
	Notes           *string `json:"notes,omitempty"`
}

// SlotResponse HTTP response model
type SlotResponse struct {
	ID              int64   `json:"id"`
	MemberID        int64   `json:"memberId"`
	TrainerID       int64   `json:"trainerId"`
	ProgramID       *int64  `json:"programId,omitempty"`
	StartTime       string  `json:"startTime"` // ISO 8601
	EndTime         string  `json:"endTime"`
	DurationMinutes int     `json:"durationMinutes"`
	Status          string  `json:"status"`
	Notes           *string `json:"notes,omitempty"`
	CreatedAt       string  `json:"createdAt"`
	UpdatedAt       string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *BookSlotRequest) ToUseCaseRequest() (*bookSlot.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &bookSlot.Request{
		MemberID:        r.MemberID,
		TrainerID:       r.TrainerID,
		ProgramID:       r.ProgramID,
		Date:            date,
		StartTime:       startTime,
		DurationMinutes: r.DurationMinutes,
		Notes:           r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *bookSlot.Response) *SlotResponse {
	return &SlotResponse{
		ID:              resp.ID,
		MemberID:        resp.MemberID,
		TrainerID:       resp.TrainerID,
		ProgramID:       resp.ProgramID,
		StartTime:       resp.StartTime.Format(time.RFC3339),
		EndTime:         resp.EndTime.Format(time.RFC3339),
		DurationMinutes: resp.DurationMinutes,
		Status:          resp.Status,
		Notes:           resp.Notes,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}
