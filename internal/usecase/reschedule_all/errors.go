package reschedule_all

import "errors"

var (
	// ErrEntitlementNotFound возвращается, когда абонемент не найден
	ErrEntitlementNotFound = errors.New("reschedule_all: entitlement not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reschedule_all: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("reschedule_all: internal error")
)
