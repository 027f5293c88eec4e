package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func activeEntitlement(now time.Time) *EntitlementInstance {
	return &EntitlementInstance{
		ID:                1,
		MemberID:          10,
		PackageID:         100,
		SessionsTotal:     10,
		SessionsUsed:      3,
		SessionsRemaining: 7,
		ValidityStart:     now.AddDate(0, -1, 0),
		ValidityEnd:       now.AddDate(0, 2, 0),
		Status:            EntitlementActive,
	}
}

func TestDeriveStatus_ActiveStaysActive(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	e := activeEntitlement(now)

	assert.Equal(t, EntitlementActive, e.DeriveStatus(now))
}

func TestDeriveStatus_ExpiresPastValidity(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	e := activeEntitlement(now)
	e.ValidityEnd = now.AddDate(0, 0, -1)

	assert.Equal(t, EntitlementExpired, e.DeriveStatus(now))
}

func TestDeriveStatus_CompletesWhenExhausted(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	e := activeEntitlement(now)
	e.SessionsUsed = 10
	e.SessionsRemaining = 0

	assert.Equal(t, EntitlementCompleted, e.DeriveStatus(now))
}

func TestDeriveStatus_DoesNotTouchTerminalStatuses(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	for _, status := range []EntitlementStatus{EntitlementCancelled, EntitlementSuspended, EntitlementExpired} {
		e := activeEntitlement(now)
		e.Status = status
		e.SessionsRemaining = 0
		e.ValidityEnd = now.AddDate(0, 0, -10)

		assert.Equal(t, status, e.DeriveStatus(now), "status %s must not be rederived", status)
	}
}

func TestApplyDerivedStatus_Idempotent(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	e := activeEntitlement(now)
	e.ValidityEnd = now.AddDate(0, 0, -1)

	changed := e.ApplyDerivedStatus(now)
	assert.True(t, changed)
	assert.Equal(t, EntitlementExpired, e.Status)

	// Повторный прогон ничего не меняет
	changed = e.ApplyDerivedStatus(now)
	assert.False(t, changed)
	assert.Equal(t, EntitlementExpired, e.Status)
}

func TestCountersConsistent(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	e := activeEntitlement(now)

	assert.True(t, e.CountersConsistent())

	e.SessionsUsed++
	assert.False(t, e.CountersConsistent())

	e.SessionsRemaining--
	assert.True(t, e.CountersConsistent())
}

func TestDaysRemaining(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	e := activeEntitlement(now)
	e.ValidityEnd = now.AddDate(0, 0, 30)

	assert.Equal(t, 30, e.DaysRemaining(now))

	e.ValidityEnd = now.AddDate(0, 0, -5)
	assert.Equal(t, 0, e.DaysRemaining(now))

	// Окно заканчивается сегодня - остаётся минимум один день
	e.ValidityEnd = now.Add(2 * time.Hour)
	assert.Equal(t, 1, e.DaysRemaining(now))
}
