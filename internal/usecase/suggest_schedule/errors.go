package suggest_schedule

import "errors"

var (
	// ErrEntitlementNotFound возвращается, когда абонемент не найден
	ErrEntitlementNotFound = errors.New("suggest_schedule: entitlement not found")

	// ErrNoActiveEntitlement возвращается, когда абонемент не активен
	ErrNoActiveEntitlement = errors.New("suggest_schedule: entitlement is not active")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("suggest_schedule: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("suggest_schedule: internal error")
)
