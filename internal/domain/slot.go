package domain

import "time"

// SlotStatus represents the status of a booked slot
type SlotStatus string

const (
	SlotStatusScheduled   SlotStatus = "scheduled"
	SlotStatusCompleted   SlotStatus = "completed"
	SlotStatusCancelled   SlotStatus = "cancelled"
	SlotStatusNoShow      SlotStatus = "no_show"
	SlotStatusRescheduled SlotStatus = "rescheduled"
)

// RecurrenceFrequency represents how a recurring series repeats
type RecurrenceFrequency string

const (
	FrequencyDaily    RecurrenceFrequency = "daily"
	FrequencyWeekly   RecurrenceFrequency = "weekly"
	FrequencyBiweekly RecurrenceFrequency = "biweekly"
	FrequencyMonthly  RecurrenceFrequency = "monthly"
	FrequencyCustom   RecurrenceFrequency = "custom"
)

// RecurrenceRule describes how a batch of slot instances was generated.
// Present only on the series parent; generated instances are independent
// after creation (no cascading updates).
type RecurrenceRule struct {
	Enabled   bool
	Frequency RecurrenceFrequency
	Interval  int // multiplier, e.g. every 2nd week
	Weekdays  []time.Weekday
	Until     *time.Time // end date of the series
	Count     *int       // or occurrence cap
}

// BookedSlot represents one concrete calendar appointment between a member
// and a trainer. EntitlementID is linked at completion time, not at booking.
type BookedSlot struct {
	ID        int64
	MemberID  int64
	TrainerID int64
	ProgramID *int64 // training program, optional

	StartTime       time.Time
	EndTime         time.Time // StartTime + DurationMinutes
	DurationMinutes int

	Status SlotStatus

	Recurrence          *RecurrenceRule
	ParentSlotID        *int64
	IsRecurringInstance bool

	EntitlementID *int64 // entitlement consumed at completion

	Notes *string

	CancelledBy        *int64
	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsCommitted returns true if the slot occupies the trainer's calendar
func (s *BookedSlot) IsCommitted() bool {
	return s.Status == SlotStatusScheduled || s.Status == SlotStatusRescheduled
}

// IsTerminal returns true if the slot reached a final state
func (s *BookedSlot) IsTerminal() bool {
	return s.Status == SlotStatusCompleted ||
		s.Status == SlotStatusCancelled ||
		s.Status == SlotStatusNoShow
}

// CanBeCompleted returns true if the slot can transition to completed
func (s *BookedSlot) CanBeCompleted() bool {
	return s.IsCommitted()
}

// CanBeCancelled returns true if the slot can be cancelled
func (s *BookedSlot) CanBeCancelled() bool {
	return s.IsCommitted()
}

// CanBeRescheduled returns true if the slot can be moved to a new interval
func (s *BookedSlot) CanBeRescheduled() bool {
	return s.IsCommitted()
}

// StartsWithin returns true if the slot starts inside the notice window
// counted from now. Used for the client cancellation policy.
func (s *BookedSlot) StartsWithin(now time.Time, notice time.Duration) bool {
	return s.StartTime.Before(now.Add(notice))
}

// TrainerSlotsFilter фильтр для выборки слотов тренера
type TrainerSlotsFilter struct {
	TrainerID     int64       // Обязательный параметр
	From          *time.Time  // Начало периода (опционально)
	To            *time.Time  // Конец периода (опционально)
	OnlyCommitted bool        // Только scheduled/rescheduled слоты
	Status        *SlotStatus // Фильтр по конкретному статусу (опционально)
}

// MemberSlotsFilter фильтр для выборки слотов клиента
type MemberSlotsFilter struct {
	MemberID      int64
	From          *time.Time
	To            *time.Time
	OnlyCommitted bool
	Status        *SlotStatus
}
