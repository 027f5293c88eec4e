package reschedule_slot

import (
	"time"

	"github.com/m04kA/SMC-TrainingService/internal/domain"
	"github.com/m04kA/SMC-TrainingService/pkg/types"
)

// Request модель запроса на перенос слота
type Request struct {
	SlotID          int64            // ID переносимого слота
	ActorID         int64            // ID инициатора
	ActorRole       string           // Роль инициатора: member / trainer / admin
	Date            time.Time        // Новая дата
	StartTime       types.TimeString // Новое время начала
	DurationMinutes int              // Новая длительность (0 = оставить прежнюю)
}

// Response модель ответа с перенесенным слотом
type Response struct {
	ID              int64     // ID слота
	MemberID        int64     // ID клиента
	TrainerID       int64     // ID тренера
	StartTime       time.Time // Новое начало интервала
	EndTime         time.Time // Новый конец интервала
	DurationMinutes int       // Длительность
	Status          string    // Статус слота (rescheduled)
}

// toResponse конвертирует доменную модель в response
func toResponse(s *domain.BookedSlot) *Response {
	return &Response{
		ID:              s.ID,
		MemberID:        s.MemberID,
		TrainerID:       s.TrainerID,
		StartTime:       s.StartTime,
		EndTime:         s.EndTime,
		DurationMinutes: s.DurationMinutes,
		Status:          string(s.Status),
	}
}
