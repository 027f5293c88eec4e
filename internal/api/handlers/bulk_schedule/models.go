package bulk_schedule

import (
	"time"

	"github.com/m04kA/SMC-TrainingService/internal/domain"
	bulkSchedule "github.com/m04kA/SMC-TrainingService/internal/usecase/bulk_schedule"
	"github.com/m04kA/SMC-TrainingService/pkg/types"
)

// BulkScheduleRequest HTTP request model
type BulkScheduleRequest struct {
	TrainerID       int64    `json:"trainerId"`
	ProgramID       *int64   `json:"programId,omitempty"`
	Count           int      `json:"count,omitempty"`
	StartDate       string   `json:"startDate"` // "2025-10-15"
	StartTime       string   `json:"startTime"` // "10:00"
	DurationMinutes int      `json:"durationMinutes,omitempty"`
	Frequency       string   `json:"frequency"` // daily / weekly / biweekly / custom
	Weekdays        []int    `json:"weekdays,omitempty"`
	CustomDates     []string `json:"customDates,omitempty"`
	Notes           *string  `json:"notes,omitempty"`
}

// CreatedSlotResponse созданный слот в ответе
type CreatedSlotResponse struct {
	ID        int64  `json:"id"`
	StartTime string `json:"startTime"` // ISO 8601
	EndTime   string `json:"endTime"`
	Status    string `json:"status"`
}

// ConflictResponse отклоненный кандидат в ответе
type ConflictResponse struct {
	Date              string `json:"date"` // "2025-10-15"
	RequestedStart    string `json:"requestedStart"`
	RequestedEnd      string `json:"requestedEnd"`
	ConflictingSlotID int64  `json:"conflictingSlotId"`
}

// BulkScheduleResponse HTTP response model
type BulkScheduleResponse struct {
	Created              []CreatedSlotResponse `json:"created"`
	Conflicts            []ConflictResponse    `json:"conflicts"`
	Requested            int                   `json:"requested"`
	ScheduledCount       int                   `json:"scheduledCount"`
	RemainingUnscheduled int                   `json:"remainingUnscheduled"`
	SessionsRemaining    int                   `json:"sessionsRemaining"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *BulkScheduleRequest) ToUseCaseRequest(entitlementID int64) (*bulkSchedule.Request, error) {
	startDate, err := time.Parse(domain.DateFormat, r.StartDate)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	weekdays := make([]time.Weekday, 0, len(r.Weekdays))
	for _, wd := range r.Weekdays {
		weekdays = append(weekdays, time.Weekday(wd))
	}

	customDates := make([]time.Time, 0, len(r.CustomDates))
	for _, d := range r.CustomDates {
		parsed, err := time.Parse(domain.DateFormat, d)
		if err != nil {
			return nil, err
		}
		customDates = append(customDates, parsed)
	}

	return &bulkSchedule.Request{
		EntitlementID:   entitlementID,
		TrainerID:       r.TrainerID,
		ProgramID:       r.ProgramID,
		Count:           r.Count,
		StartDate:       startDate,
		StartTime:       startTime,
		DurationMinutes: r.DurationMinutes,
		Frequency:       r.Frequency,
		Weekdays:        weekdays,
		CustomDates:     customDates,
		Notes:           r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *bulkSchedule.Response) *BulkScheduleResponse {
	created := make([]CreatedSlotResponse, 0, len(resp.Created))
	for _, s := range resp.Created {
		created = append(created, CreatedSlotResponse{
			ID:        s.ID,
			StartTime: s.StartTime.Format(time.RFC3339),
			EndTime:   s.EndTime.Format(time.RFC3339),
			Status:    s.Status,
		})
	}

	conflicts := make([]ConflictResponse, 0, len(resp.Conflicts))
	for _, c := range resp.Conflicts {
		conflicts = append(conflicts, ConflictResponse{
			Date:              c.Date.Format(domain.DateFormat),
			RequestedStart:    c.RequestedStart.Format(time.RFC3339),
			RequestedEnd:      c.RequestedEnd.Format(time.RFC3339),
			ConflictingSlotID: c.ConflictingSlotID,
		})
	}

	return &BulkScheduleResponse{
		Created:              created,
		Conflicts:            conflicts,
		Requested:            resp.Requested,
		ScheduledCount:       resp.ScheduledCount,
		RemainingUnscheduled: resp.RemainingUnscheduled,
		SessionsRemaining:    resp.SessionsRemaining,
	}
}
