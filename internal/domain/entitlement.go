package domain

import "time"

// EntitlementStatus represents the status of an entitlement instance
type EntitlementStatus string

const (
	EntitlementActive    EntitlementStatus = "active"
	EntitlementExpired   EntitlementStatus = "expired"
	EntitlementCompleted EntitlementStatus = "completed"
	EntitlementCancelled EntitlementStatus = "cancelled"
	EntitlementSuspended EntitlementStatus = "suspended"
)

// EntitlementInstance represents a member's purchased block of training sessions:
// how many sessions are left, within what validity window, with the full
// freeze and extension history. Instances are never deleted; cancellation
// is a terminal status.
type EntitlementInstance struct {
	ID        int64
	MemberID  int64
	PackageID int64
	TrainerID *int64 // assigned trainer, optional

	// Counters; SessionsUsed + SessionsRemaining == SessionsTotal
	// at all times except mid-extension
	SessionsTotal     int
	SessionsUsed      int
	SessionsRemaining int

	// Validity window, both ends inclusive
	ValidityStart time.Time
	ValidityEnd   time.Time

	Status          EntitlementStatus
	TotalFrozenDays int

	// Denormalized data for history
	PackageName string
	AmountPaid  float64
	PurchasedAt time.Time

	CancelledBy        *int64
	CancellationReason *string
	CancelledAt        *time.Time

	Freezes    []FreezeRecord
	Extensions []ExtensionRecord

	CreatedAt time.Time
	UpdatedAt time.Time
}

// FreezeRecord represents one freeze period applied to an entitlement
type FreezeRecord struct {
	ID            int64
	EntitlementID int64
	StartDate     time.Time
	EndDate       time.Time // StartDate + Days
	Days          int
	Reason        string
	CreatedAt     time.Time
}

// ExtensionRecord represents one paid extension of an entitlement
type ExtensionRecord struct {
	ID                 int64
	EntitlementID      int64
	AdditionalDays     int
	AdditionalSessions int
	AmountPaid         float64
	CreatedBy          int64
	Reason             string
	CreatedAt          time.Time
}

// IsActive returns true if sessions can still be consumed from the entitlement
func (e *EntitlementInstance) IsActive() bool {
	return e.Status == EntitlementActive
}

// IsTerminal returns true if the entitlement reached a final state
func (e *EntitlementInstance) IsTerminal() bool {
	return e.Status == EntitlementCancelled
}

// CanBeFrozen returns true if a freeze can be applied
func (e *EntitlementInstance) CanBeFrozen() bool {
	return e.Status == EntitlementActive
}

// CountersConsistent reports whether the session counters satisfy the
// used + remaining == total invariant
func (e *EntitlementInstance) CountersConsistent() bool {
	return e.SessionsUsed+e.SessionsRemaining == e.SessionsTotal
}

// DaysRemaining returns the number of whole days left in the validity window.
// Returns 0 when the window has already ended.
func (e *EntitlementInstance) DaysRemaining(now time.Time) int {
	if now.After(e.ValidityEnd) {
		return 0
	}
	days := int(e.ValidityEnd.Sub(now).Hours() / 24)
	if days < 1 {
		return 1
	}
	return days
}

// DeriveStatus computes the status the entitlement should have at the given
// moment. Explicit operations (freeze, extend, cancel) set their own statuses;
// this pass only handles the two automatic transitions:
//   - active -> expired when the validity window has passed
//   - active -> completed when all sessions are consumed
//
// The function is idempotent and has no side effects; callers apply the
// result before persisting.
func (e *EntitlementInstance) DeriveStatus(now time.Time) EntitlementStatus {
	if e.Status != EntitlementActive {
		return e.Status
	}
	if now.After(e.ValidityEnd) {
		return EntitlementExpired
	}
	if e.SessionsRemaining <= 0 {
		return EntitlementCompleted
	}
	return EntitlementActive
}

// ApplyDerivedStatus runs DeriveStatus and stores the result.
// Returns true if the status changed.
func (e *EntitlementInstance) ApplyDerivedStatus(now time.Time) bool {
	derived := e.DeriveStatus(now)
	if derived == e.Status {
		return false
	}
	e.Status = derived
	return true
}
