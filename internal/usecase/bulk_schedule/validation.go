package bulk_schedule

import (
	"fmt"

	"github.com/m04kA/SMC-TrainingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.EntitlementID <= 0 {
		return fmt.Errorf("%w: entitlementID must be positive", ErrInvalidInput)
	}

	if req.TrainerID <= 0 {
		return fmt.Errorf("%w: trainerID must be positive", ErrInvalidInput)
	}

	if req.Count < 0 {
		return fmt.Errorf("%w: count must not be negative", ErrInvalidInput)
	}

	if req.Count > domain.MaxBulkScheduleSessions {
		return fmt.Errorf("%w: count must not exceed %d", ErrInvalidInput, domain.MaxBulkScheduleSessions)
	}

	if req.StartDate.IsZero() {
		return fmt.Errorf("%w: startDate is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	if req.DurationMinutes != 0 {
		if req.DurationMinutes < domain.MinSessionDurationMinutes || req.DurationMinutes > domain.MaxSessionDurationMinutes {
			return fmt.Errorf("%w: durationMinutes must be between %d and %d",
				ErrInvalidInput, domain.MinSessionDurationMinutes, domain.MaxSessionDurationMinutes)
		}
	}

	return validateFrequency(req)
}

// validateFrequency проверяет частоту и ее параметры
func validateFrequency(req *Request) error {
	switch domain.RecurrenceFrequency(req.Frequency) {
	case domain.FrequencyDaily:
		return nil
	case domain.FrequencyWeekly, domain.FrequencyBiweekly:
		if len(req.Weekdays) == 0 {
			return fmt.Errorf("%w: weekdays are required for %s frequency", ErrInvalidInput, req.Frequency)
		}
		return nil
	case domain.FrequencyCustom:
		if len(req.CustomDates) == 0 {
			return fmt.Errorf("%w: customDates are required for custom frequency", ErrInvalidInput)
		}
		return nil
	default:
		return fmt.Errorf("%w: unsupported frequency %q", ErrInvalidInput, req.Frequency)
	}
}
