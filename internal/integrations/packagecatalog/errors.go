package packagecatalog

import "errors"

var (
	// ErrPackageNotFound возвращается, когда пакет не найден в каталоге
	ErrPackageNotFound = errors.New("training package not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("packagecatalog client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от каталога
	ErrInvalidResponse = errors.New("packagecatalog client: invalid response")
)
