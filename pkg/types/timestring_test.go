package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeString_Validate(t *testing.T) {
	valid := []string{"00:00", "09:30", "23:59", "10:00"}
	for _, s := range valid {
		assert.NoError(t, TimeString(s).Validate(), "%q must be valid", s)
	}

	invalid := []string{"", "24:00", "10:60", "10-00", "10:00:00", "abc"}
	for _, s := range invalid {
		assert.Error(t, TimeString(s).Validate(), "%q must be invalid", s)
	}
}

func TestTimeString_Minutes(t *testing.T) {
	m, err := TimeString("10:30").Minutes()
	require.NoError(t, err)
	assert.Equal(t, 630, m)

	m, err = TimeString("00:00").Minutes()
	require.NoError(t, err)
	assert.Equal(t, 0, m)
}

func TestTimeString_AddMinutes(t *testing.T) {
	sum, err := TimeString("10:00").AddMinutes(90)
	require.NoError(t, err)
	assert.Equal(t, TimeString("11:30"), sum)

	// Выход за полночь не поддерживается
	_, err = TimeString("23:30").AddMinutes(60)
	assert.Error(t, err)
}

func TestTimeString_Ordering(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore("10:00"))
	assert.True(t, TimeString("10:30").IsAfter("10:00"))
	assert.False(t, TimeString("10:00").IsBefore("10:00"))
}

func TestTimeString_OnDate(t *testing.T) {
	date := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	got, err := TimeString("10:30").OnDate(date)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 6, 2, 10, 30, 0, 0, time.UTC), got)

	// Время дня комбинируется с датой в ее локации
	loc, err := time.LoadLocation("Europe/Moscow")
	require.NoError(t, err)
	local := time.Date(2025, 6, 2, 0, 0, 0, 0, loc)

	got, err = TimeString("08:00").OnDate(local)
	require.NoError(t, err)
	assert.Equal(t, loc, got.Location())
	assert.Equal(t, 8, got.Hour())
}

func TestNewTimeString(t *testing.T) {
	ts := NewTimeString(time.Date(2025, 6, 2, 7, 5, 0, 0, time.UTC))
	assert.Equal(t, TimeString("07:05"), ts)
}
