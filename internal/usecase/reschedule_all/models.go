package reschedule_all

import (
	"time"

	"github.com/m04kA/SMC-TrainingService/internal/usecase/bulk_schedule"
	"github.com/m04kA/SMC-TrainingService/pkg/types"
)

// Request модель запроса на полное перепланирование расписания клиента
type Request struct {
	EntitlementID   int64            // ID абонемента
	TrainerID       int64            // ID тренера
	ProgramID       *int64           // ID тренировочной программы (опционально)
	Count           int              // Сколько сессий запланировать (0 = весь остаток)
	StartDate       time.Time        // Дата начала нового расписания
	StartTime       types.TimeString // Время тренировок
	DurationMinutes int              // Длительность тренировки (0 = по умолчанию)
	Frequency       string           // daily / weekly / biweekly / custom
	Weekdays        []time.Weekday   // Дни недели для weekly/biweekly
	CustomDates     []time.Time      // Явный список дат для custom
	Notes           *string          // Заметки (опционально)
}

// Response модель ответа перепланирования
type Response struct {
	RemovedCount         int64                       // Сколько запланированных слотов удалено
	Created              []bulk_schedule.CreatedSlot // Созданные слоты нового расписания
	Conflicts            []bulk_schedule.Conflict    // Отклоненные кандидаты
	Requested            int                         // Сколько сессий хотели запланировать
	ScheduledCount       int                         // Сколько слотов создано
	RemainingUnscheduled int                         // Сколько сессий осталось незапланированными
	SessionsRemaining    int                         // Остаток сессий на абонементе
}
