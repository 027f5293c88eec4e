package reschedule_slot

import (
	"fmt"

	"github.com/m04kA/SMC-TrainingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.SlotID <= 0 {
		return fmt.Errorf("%w: slotID must be positive", ErrInvalidInput)
	}

	if req.ActorID <= 0 {
		return fmt.Errorf("%w: actorID must be positive", ErrInvalidInput)
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

// validateActor проверяет, что актор вправе переносить слот
// Клиент может переносить только свои слоты
func validateActor(slot *domain.BookedSlot, actorID int64, actorRole string) error {
	if actorRole == domain.RoleMember && slot.MemberID != actorID {
		return ErrAccessDenied
	}
	return nil
}
