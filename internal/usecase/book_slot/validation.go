package book_slot

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-TrainingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.MemberID <= 0 {
		return fmt.Errorf("%w: memberID must be positive", ErrInvalidInput)
	}

	if req.TrainerID <= 0 {
		return fmt.Errorf("%w: trainerID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
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

	return nil
}

// validateNotInPast проверяет, что начало слота не в прошлом
func validateNotInPast(start, now time.Time) error {
	if start.Before(now) {
		return ErrSlotInPast
	}
	return nil
}
