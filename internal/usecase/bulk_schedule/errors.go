package bulk_schedule

import "errors"

var (
	// ErrEntitlementNotFound возвращается, когда абонемент не найден
	ErrEntitlementNotFound = errors.New("bulk_schedule: entitlement not found")

	// ErrNoActiveEntitlement возвращается, когда абонемент не активен
	ErrNoActiveEntitlement = errors.New("bulk_schedule: entitlement is not active")

	// ErrNoSessionsRemaining возвращается, когда на абонементе не осталось сессий
	ErrNoSessionsRemaining = errors.New("bulk_schedule: no sessions remaining")

	// ErrSlotConflict возвращается, когда пакетная вставка нарушила ограничение пересечений
	ErrSlotConflict = errors.New("bulk_schedule: trainer schedule conflict")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("bulk_schedule: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("bulk_schedule: internal error")
)
