package domain

import "time"

// Overlaps reports whether two time intervals overlap.
// Intervals are half-open [start, end): back-to-back slots, where one ends
// exactly when the other starts, do NOT overlap.
//
// Examples:
//   - [10:00, 11:00) and [10:30, 11:30) -> overlap
//   - [10:00, 11:00) and [11:00, 12:00) -> no overlap (back-to-back)
//   - [10:00, 11:00) and [10:00, 10:30) -> overlap (same start)
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

// FindConflict returns the first committed slot whose interval overlaps the
// candidate [start, end) interval, or nil if there is none.
//
// Only scheduled and rescheduled slots participate: completed, cancelled and
// no-show slots release the trainer's time. excludeSlotID lets an in-place
// reschedule ignore the slot's own prior interval (pass 0 to exclude nothing).
//
// The check is per trainer: the caller supplies the slot set of a single
// trainer, overlapping commitments with different trainers are legitimate.
func FindConflict(start, end time.Time, slots []*BookedSlot, excludeSlotID int64) *BookedSlot {
	for _, slot := range slots {
		if excludeSlotID != 0 && slot.ID == excludeSlotID {
			continue
		}
		if !slot.IsCommitted() {
			continue
		}
		if Overlaps(start, end, slot.StartTime, slot.EndTime) {
			return slot
		}
	}
	return nil
}

// HasConflict reports whether the candidate interval overlaps any committed
// slot in the set
func HasConflict(start, end time.Time, slots []*BookedSlot, excludeSlotID int64) bool {
	return FindConflict(start, end, slots, excludeSlotID) != nil
}
