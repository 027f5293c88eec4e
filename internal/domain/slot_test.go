package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func slotWithStatus(status SlotStatus) *BookedSlot {
	start := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)
	return &BookedSlot{
		ID:              1,
		MemberID:        10,
		TrainerID:       20,
		StartTime:       start,
		EndTime:         start.Add(time.Hour),
		DurationMinutes: 60,
		Status:          status,
	}
}

func TestIsCommitted(t *testing.T) {
	assert.True(t, slotWithStatus(SlotStatusScheduled).IsCommitted())
	assert.True(t, slotWithStatus(SlotStatusRescheduled).IsCommitted())
	assert.False(t, slotWithStatus(SlotStatusCompleted).IsCommitted())
	assert.False(t, slotWithStatus(SlotStatusCancelled).IsCommitted())
	assert.False(t, slotWithStatus(SlotStatusNoShow).IsCommitted())
}

func TestIsTerminal(t *testing.T) {
	assert.True(t, slotWithStatus(SlotStatusCompleted).IsTerminal())
	assert.True(t, slotWithStatus(SlotStatusCancelled).IsTerminal())
	assert.True(t, slotWithStatus(SlotStatusNoShow).IsTerminal())
	assert.False(t, slotWithStatus(SlotStatusScheduled).IsTerminal())
	assert.False(t, slotWithStatus(SlotStatusRescheduled).IsTerminal())
}

func TestTransitionPredicates_FollowCommittedStatuses(t *testing.T) {
	for _, status := range []SlotStatus{SlotStatusScheduled, SlotStatusRescheduled} {
		s := slotWithStatus(status)
		assert.True(t, s.CanBeCompleted(), "status %s", status)
		assert.True(t, s.CanBeCancelled(), "status %s", status)
		assert.True(t, s.CanBeRescheduled(), "status %s", status)
	}

	for _, status := range []SlotStatus{SlotStatusCompleted, SlotStatusCancelled, SlotStatusNoShow} {
		s := slotWithStatus(status)
		assert.False(t, s.CanBeCompleted(), "status %s", status)
		assert.False(t, s.CanBeCancelled(), "status %s", status)
		assert.False(t, s.CanBeRescheduled(), "status %s", status)
	}
}

func TestStartsWithin(t *testing.T) {
	s := slotWithStatus(SlotStatusScheduled)

	// Старт через 2 часа - внутри суточного окна
	now := s.StartTime.Add(-2 * time.Hour)
	assert.True(t, s.StartsWithin(now, 24*time.Hour))

	// Старт через 48 часов - вне окна
	now = s.StartTime.Add(-48 * time.Hour)
	assert.False(t, s.StartsWithin(now, 24*time.Hour))

	// Ровно на границе окна - не внутри (строгое Before)
	now = s.StartTime.Add(-24 * time.Hour)
	assert.False(t, s.StartsWithin(now, 24*time.Hour))
}
