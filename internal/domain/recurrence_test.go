package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Понедельник
var monday = time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

func TestGenerateDates_WeeklyMonWedFri(t *testing.T) {
	spec := ScheduleSpec{
		Frequency: FrequencyWeekly,
		Weekdays:  []time.Weekday{time.Monday, time.Wednesday, time.Friday},
	}

	dates := GenerateDates(spec, monday, monday.AddDate(0, 0, 60), 10)

	require.Len(t, dates, 10)
	assert.Equal(t, monday, dates[0])
	for i, d := range dates {
		wd := d.Weekday()
		assert.True(t, wd == time.Monday || wd == time.Wednesday || wd == time.Friday,
			"date %d has unexpected weekday %s", i, wd)
		if i > 0 {
			assert.True(t, dates[i-1].Before(d), "dates must be ordered")
		}
	}
	// 10 сессий по 3 в неделю укладываются в 22 дня
	assert.Equal(t, monday.AddDate(0, 0, 21), dates[9])
}

func TestGenerateDates_DailySkipsWeekends(t *testing.T) {
	spec := ScheduleSpec{Frequency: FrequencyDaily}

	dates := GenerateDates(spec, monday, monday.AddDate(0, 0, 14), 7)

	require.Len(t, dates, 7)
	for _, d := range dates {
		assert.NotEqual(t, time.Saturday, d.Weekday())
		assert.NotEqual(t, time.Sunday, d.Weekday())
	}
	// Пн-Пт первой недели, затем Пн-Вт второй
	assert.Equal(t, monday.AddDate(0, 0, 7), dates[5])
	assert.Equal(t, monday.AddDate(0, 0, 8), dates[6])
}

func TestGenerateDates_BiweeklySkipsOddWeeks(t *testing.T) {
	spec := ScheduleSpec{
		Frequency: FrequencyBiweekly,
		Weekdays:  []time.Weekday{time.Monday},
	}

	dates := GenerateDates(spec, monday, monday.AddDate(0, 0, 56), 4)

	require.Len(t, dates, 4)
	assert.Equal(t, monday, dates[0])
	assert.Equal(t, monday.AddDate(0, 0, 14), dates[1])
	assert.Equal(t, monday.AddDate(0, 0, 28), dates[2])
	assert.Equal(t, monday.AddDate(0, 0, 42), dates[3])
}

func TestGenerateDates_CeilingTruncates(t *testing.T) {
	spec := ScheduleSpec{
		Frequency: FrequencyWeekly,
		Weekdays:  []time.Weekday{time.Monday},
	}

	// Запрошено 10, но в окно из трёх недель помещаются только 3 понедельника
	dates := GenerateDates(spec, monday, monday.AddDate(0, 0, 20), 10)

	assert.Len(t, dates, 3)
}

func TestGenerateDates_CustomList(t *testing.T) {
	supplied := []time.Time{
		monday.AddDate(0, 0, 9),
		monday.AddDate(0, 0, 2),
		monday.AddDate(0, 0, 200), // за пределом окна
		monday.AddDate(0, 0, -3),  // раньше старта
	}
	spec := ScheduleSpec{Frequency: FrequencyCustom, CustomDates: supplied}

	dates := GenerateDates(spec, monday, monday.AddDate(0, 0, 30), 10)

	require.Len(t, dates, 2)
	assert.Equal(t, monday.AddDate(0, 0, 2), dates[0])
	assert.Equal(t, monday.AddDate(0, 0, 9), dates[1])
}

func TestGenerateDates_ZeroTarget(t *testing.T) {
	spec := ScheduleSpec{Frequency: FrequencyDaily}

	assert.Empty(t, GenerateDates(spec, monday, monday.AddDate(0, 1, 0), 0))
}

func TestGenerateDates_EmptyWeekdaySetProducesNothing(t *testing.T) {
	spec := ScheduleSpec{Frequency: FrequencyWeekly}

	assert.Empty(t, GenerateDates(spec, monday, monday.AddDate(0, 0, 30), 5))
}
