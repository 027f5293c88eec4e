package complete_slot

// Request модель запроса на отметку проведенной тренировки
type Request struct {
	SlotID    int64  // ID слота
	ActorID   int64  // ID инициатора (тренер или администратор)
	ActorRole string // Роль инициатора
}

// Response модель ответа о проведенной тренировке
type Response struct {
	SlotID            int64   // ID слота
	Status            string  // Новый статус слота (completed)
	SessionConsumed   bool    // Была ли списана сессия с абонемента
	EntitlementID     *int64  // Абонемент, с которого списали сессию
	SessionsRemaining *int    // Остаток сессий после списания
	EntitlementStatus *string // Статус абонемента после списания
	Warning           *string // Предупреждение, если сессия не списана
}
