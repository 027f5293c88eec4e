package bulk_schedule

import (
	"time"

	"github.com/m04kA/SMC-TrainingService/internal/domain"
	"github.com/m04kA/SMC-TrainingService/pkg/types"
)

// Request модель запроса на пакетное планирование тренировок
type Request struct {
	EntitlementID   int64            // ID абонемента
	TrainerID       int64            // ID тренера
	ProgramID       *int64           // ID тренировочной программы (опционально)
	Count           int              // Сколько сессий запланировать (0 = весь остаток)
	StartDate       time.Time        // Дата начала расписания
	StartTime       types.TimeString // Время тренировок (одно на всю серию)
	DurationMinutes int              // Длительность тренировки (0 = по умолчанию)
	Frequency       string           // daily / weekly / biweekly / custom
	Weekdays        []time.Weekday   // Дни недели для weekly/biweekly
	CustomDates     []time.Time      // Явный список дат для custom
	Notes           *string          // Заметки (опционально)
}

// CreatedSlot созданный слот в ответе
type CreatedSlot struct {
	ID        int64     // ID слота
	StartTime time.Time // Начало интервала
	EndTime   time.Time // Конец интервала
	Status    string    // Статус слота
}

// Conflict кандидат, отклоненный из-за пересечения с расписанием тренера
type Conflict struct {
	Date              time.Time // Дата кандидата
	RequestedStart    time.Time // Запрошенное начало
	RequestedEnd      time.Time // Запрошенный конец
	ConflictingSlotID int64     // Слот, с которым обнаружено пересечение
}

// Response модель ответа пакетного планирования
type Response struct {
	Created              []CreatedSlot // Созданные слоты в порядке дат
	Conflicts            []Conflict    // Отклоненные кандидаты
	Requested            int           // Сколько сессий хотели запланировать
	ScheduledCount       int           // Сколько слотов создано
	RemainingUnscheduled int           // Сколько сессий осталось незапланированными
	SessionsRemaining    int           // Остаток сессий на абонементе (не меняется при планировании)
}

// toCreatedSlots конвертирует созданные слоты в ответ
func toCreatedSlots(slots []*domain.BookedSlot) []CreatedSlot {
	created := make([]CreatedSlot, 0, len(slots))
	for _, s := range slots {
		created = append(created, CreatedSlot{
			ID:        s.ID,
			StartTime: s.StartTime,
			EndTime:   s.EndTime,
			Status:    string(s.Status),
		})
	}
	return created
}
