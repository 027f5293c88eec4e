package notifier

import "time"

// EventType тип события жизненного цикла
type EventType string

const (
	EventSlotBooked      EventType = "slot.booked"
	EventSlotRescheduled EventType = "slot.rescheduled"
	EventSlotCancelled   EventType = "slot.cancelled"
	EventSlotCompleted   EventType = "slot.completed"
)

// Event событие жизненного цикла слота, отправляемое в сервис уведомлений
type Event struct {
	Type          EventType  `json:"type"`
	SlotID        int64      `json:"slot_id"`
	MemberID      int64      `json:"member_id"`
	TrainerID     int64      `json:"trainer_id"`
	StartTime     time.Time  `json:"start_time"`
	EndTime       time.Time  `json:"end_time"`
	EntitlementID *int64     `json:"entitlement_id,omitempty"`
	OccurredAt    time.Time  `json:"occurred_at"`
}
