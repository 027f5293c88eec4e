package domain

// Default configuration values
const (
	DefaultSessionDurationMinutes  = 60
	DefaultCancellationNoticeHours = 24
)

// Business validation constants
const (
	MinSessionDurationMinutes = 15
	MaxSessionDurationMinutes = 240 // 4 hours

	MinFreezeDays = 1
	MaxFreezeDays = 90

	MaxExtensionDays     = 365
	MaxExtensionSessions = 100

	MaxBulkScheduleSessions     = 100
	MaxCancellationReasonLength = 500
)

// Schedule suggestion thresholds: sessions remaining per validity day remaining.
// Above dense - daily weekday cadence; below sparse - two days a week.
const (
	DenseLoadThreshold  = 0.5
	SparseLoadThreshold = 0.15
)

// Actor roles carried in request bodies
const (
	RoleMember  = "member"
	RoleTrainer = "trainer"
	RoleAdmin   = "admin"
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// CommittedSlotStatuses статусы, занимающие время тренера
// Используются при проверке пересечений интервалов
var CommittedSlotStatuses = []SlotStatus{
	SlotStatusScheduled,
	SlotStatusRescheduled,
}

// TerminalSlotStatuses статусы, после которых слот больше не меняется
var TerminalSlotStatuses = []SlotStatus{
	SlotStatusCompleted,
	SlotStatusCancelled,
	SlotStatusNoShow,
}
