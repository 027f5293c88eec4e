package suggest_schedule

import "time"

// Request модель запроса рекомендации расписания
type Request struct {
	EntitlementID int64 // ID абонемента
}

// Response модель ответа с рекомендованной схемой расписания
// Рекомендация носит консультативный характер, слоты не создаются
type Response struct {
	EntitlementID     int64          // ID абонемента
	SessionsRemaining int            // Остаток сессий
	DaysRemaining     int            // Дней до конца действия абонемента
	Density           float64        // Сессий на оставшийся день
	Frequency         string         // Рекомендованная частота
	Weekdays          []time.Weekday // Рекомендованные дни недели
	PreviewDates      []time.Time    // Даты, которые получатся при такой схеме
}
