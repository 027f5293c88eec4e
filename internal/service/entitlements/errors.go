package entitlements

import "errors"

var (
	// ErrEntitlementNotFound возвращается, когда абонемент не найден
	ErrEntitlementNotFound = errors.New("entitlement not found")

	// ErrPackageNotFound возвращается, когда пакет не найден в каталоге
	ErrPackageNotFound = errors.New("training package not found")

	// ErrPackageInactive возвращается при попытке назначить неактивный пакет
	ErrPackageInactive = errors.New("training package is not active")

	// ErrInvalidState возвращается, когда операция недопустима в текущем статусе
	// абонемента (например, заморозка отменённого абонемента)
	ErrInvalidState = errors.New("operation not permitted in current entitlement status")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("entitlements service: internal error")
)
