package complete_slot

import "errors"

var (
	// ErrSlotNotFound возвращается, когда слот не найден
	ErrSlotNotFound = errors.New("complete_slot: slot not found")

	// ErrInvalidState возвращается, когда слот не в статусе scheduled/rescheduled
	ErrInvalidState = errors.New("complete_slot: slot cannot be completed")

	// ErrAccessDenied возвращается, когда отметить проведение пытается клиент
	ErrAccessDenied = errors.New("complete_slot: access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("complete_slot: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("complete_slot: internal error")
)

// Предупреждения, возвращаемые вместе с успешным завершением слота.
// Слот помечается проведенным в любом случае, списание сессии - по возможности.
const (
	WarningNoEntitlement = "member has no active entitlement, session was not consumed"
	WarningNoSessions    = "entitlement has no sessions remaining, session was not consumed"
)
