package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func slotAt(id int64, status SlotStatus, start time.Time, minutes int) *BookedSlot {
	return &BookedSlot{
		ID:              id,
		TrainerID:       1,
		MemberID:        2,
		StartTime:       start,
		EndTime:         start.Add(time.Duration(minutes) * time.Minute),
		DurationMinutes: minutes,
		Status:          status,
	}
}

func TestOverlaps_Boundaries(t *testing.T) {
	base := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)

	// Частичное пересечение
	assert.True(t, Overlaps(base, base.Add(time.Hour), base.Add(30*time.Minute), base.Add(90*time.Minute)))

	// Одинаковое начало - пересечение
	assert.True(t, Overlaps(base, base.Add(time.Hour), base, base.Add(30*time.Minute)))

	// Встык: один заканчивается ровно там, где начинается другой - НЕ пересечение
	assert.False(t, Overlaps(base, base.Add(time.Hour), base.Add(time.Hour), base.Add(2*time.Hour)))
	assert.False(t, Overlaps(base.Add(time.Hour), base.Add(2*time.Hour), base, base.Add(time.Hour)))

	// Полностью внутри
	assert.True(t, Overlaps(base, base.Add(time.Hour), base.Add(15*time.Minute), base.Add(45*time.Minute)))
}

func TestFindConflict_OnlyCommittedStatuses(t *testing.T) {
	start := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)

	slots := []*BookedSlot{
		slotAt(1, SlotStatusCancelled, start, 60),
		slotAt(2, SlotStatusCompleted, start, 60),
		slotAt(3, SlotStatusNoShow, start, 60),
	}

	assert.Nil(t, FindConflict(start, end, slots, 0))

	slots = append(slots, slotAt(4, SlotStatusRescheduled, start, 60))
	conflict := FindConflict(start, end, slots, 0)
	assert.NotNil(t, conflict)
	assert.Equal(t, int64(4), conflict.ID)
}

func TestFindConflict_ExcludesOwnSlot(t *testing.T) {
	start := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)

	slots := []*BookedSlot{
		slotAt(7, SlotStatusScheduled, start, 60),
	}

	// Перенос слота на своё же время не конфликтует сам с собой
	assert.Nil(t, FindConflict(start, end, slots, 7))
	assert.NotNil(t, FindConflict(start, end, slots, 0))
}

func TestHasConflict_BackToBackBookings(t *testing.T) {
	start := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)

	slots := []*BookedSlot{
		slotAt(1, SlotStatusScheduled, start, 60), // 10:00 - 11:00
	}

	// Кандидат начинается ровно в конце существующего слота
	assert.False(t, HasConflict(start.Add(time.Hour), start.Add(2*time.Hour), slots, 0))

	// Кандидат начинается в то же время
	assert.True(t, HasConflict(start, start.Add(30*time.Minute), slots, 0))
}
