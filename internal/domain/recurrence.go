package domain

import (
	"sort"
	"time"
)

// ScheduleSpec describes the cadence used to generate a batch of candidate
// session dates
type ScheduleSpec struct {
	Frequency   RecurrenceFrequency
	Weekdays    []time.Weekday // for weekly and biweekly
	CustomDates []time.Time    // for custom: explicit caller-supplied list
}

// GenerateDates produces a bounded, ordered sequence of calendar dates from
// a frequency spec. The walk starts at startDate and moves day by day:
//
//   - daily: weekdays only (Saturday and Sunday are skipped)
//   - weekly: only days whose weekday is in the supplied set
//   - biweekly: same as weekly, plus only even weeks counted from startDate
//   - custom: the explicit date list is used instead of walking
//
// Generation stops once target dates are collected or the walk passes
// ceilingDate, whichever comes first. The ceiling is the hard iteration cap:
// when target is unreachable inside the window, fewer dates are returned
// rather than looping forever. Dates are normalized to midnight in the
// startDate's location.
func GenerateDates(spec ScheduleSpec, startDate, ceilingDate time.Time, target int) []time.Time {
	if target <= 0 {
		return []time.Time{}
	}

	start := DateOnly(startDate)
	ceiling := DateOnly(ceilingDate)

	if spec.Frequency == FrequencyCustom {
		return customDates(spec.CustomDates, start, ceiling, target)
	}

	dates := make([]time.Time, 0, target)

	for day := start; !day.After(ceiling) && len(dates) < target; day = day.AddDate(0, 0, 1) {
		switch spec.Frequency {
		case FrequencyDaily:
			if isWeekday(day) {
				dates = append(dates, day)
			}
		case FrequencyWeekly:
			if weekdayIn(day.Weekday(), spec.Weekdays) {
				dates = append(dates, day)
			}
		case FrequencyBiweekly:
			daysSinceStart := int(day.Sub(start).Hours() / 24)
			if weekdayIn(day.Weekday(), spec.Weekdays) && (daysSinceStart/7)%2 == 0 {
				dates = append(dates, day)
			}
		default:
			// Неизвестная частота - ни одной даты не генерируем
			return dates
		}
	}

	return dates
}

// customDates фильтрует явный список дат по окну и ограничению количества
func customDates(supplied []time.Time, start, ceiling time.Time, target int) []time.Time {
	dates := make([]time.Time, 0, len(supplied))
	for _, d := range supplied {
		day := DateOnly(d)
		if day.Before(start) || day.After(ceiling) {
			continue
		}
		dates = append(dates, day)
	}

	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	if len(dates) > target {
		dates = dates[:target]
	}
	return dates
}

// DateOnly truncates a timestamp to midnight in its own location
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// isWeekday returns true for Monday through Friday
func isWeekday(t time.Time) bool {
	wd := t.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}

// weekdayIn проверяет, входит ли день недели в набор
func weekdayIn(wd time.Weekday, set []time.Weekday) bool {
	for _, w := range set {
		if w == wd {
			return true
		}
	}
	return false
}
