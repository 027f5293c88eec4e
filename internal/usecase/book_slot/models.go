package book_slot

import (
	"time"

	"github.com/m04kA/SMC-TrainingService/internal/domain"
	"github.com/m04kA/SMC-TrainingService/pkg/types"
)

// Request модель запроса на бронирование слота
type Request struct {
	MemberID        int64            // ID клиента
	TrainerID       int64            // ID тренера
	ProgramID       *int64           // ID тренировочной программы (опционально)
	Date            time.Time        // Дата тренировки (без времени)
	StartTime       types.TimeString // Время начала (например, "10:00")
	DurationMinutes int              // Длительность в минутах (0 = по умолчанию)
	Notes           *string          // Заметки (опционально)
}

// Response модель ответа с созданным слотом
type Response struct {
	ID              int64     // ID созданного слота
	MemberID        int64     // ID клиента
	TrainerID       int64     // ID тренера
	ProgramID       *int64    // ID программы
	StartTime       time.Time // Начало интервала
	EndTime         time.Time // Конец интервала
	DurationMinutes int       // Длительность
	Status          string    // Статус слота
	Notes           *string   // Заметки

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}

// toResponse конвертирует доменную модель в response
func toResponse(s *domain.BookedSlot) *Response {
	return &Response{
		ID:              s.ID,
		MemberID:        s.MemberID,
		TrainerID:       s.TrainerID,
		ProgramID:       s.ProgramID,
		StartTime:       s.StartTime,
		EndTime:         s.EndTime,
		DurationMinutes: s.DurationMinutes,
		Status:          string(s.Status),
		Notes:           s.Notes,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}
