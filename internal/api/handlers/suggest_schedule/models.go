package suggest_schedule

import (
	"github.com/m04kA/SMC-TrainingService/internal/domain"
	suggestSchedule "github.com/m04kA/SMC-TrainingService/internal/usecase/suggest_schedule"
)

// SuggestScheduleResponse HTTP response model
type SuggestScheduleResponse struct {
	EntitlementID     int64    `json:"entitlementId"`
	SessionsRemaining int      `json:"sessionsRemaining"`
	DaysRemaining     int      `json:"daysRemaining"`
	Density           float64  `json:"density"`
	Frequency         string   `json:"frequency"`
	Weekdays          []int    `json:"weekdays,omitempty"`
	PreviewDates      []string `json:"previewDates"` // "2025-10-15"
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *suggestSchedule.Response) *SuggestScheduleResponse {
	weekdays := make([]int, 0, len(resp.Weekdays))
	for _, wd := range resp.Weekdays {
		weekdays = append(weekdays, int(wd))
	}

	previewDates := make([]string, 0, len(resp.PreviewDates))
	for _, d := range resp.PreviewDates {
		previewDates = append(previewDates, d.Format(domain.DateFormat))
	}

	return &SuggestScheduleResponse{
		EntitlementID:     resp.EntitlementID,
		SessionsRemaining: resp.SessionsRemaining,
		DaysRemaining:     resp.DaysRemaining,
		Density:           resp.Density,
		Frequency:         resp.Frequency,
		Weekdays:          weekdays,
		PreviewDates:      previewDates,
	}
}
