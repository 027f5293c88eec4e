package slots

import "errors"

var (
	// ErrSlotNotFound возвращается, когда слот не найден
	ErrSlotNotFound = errors.New("slot not found")

	// ErrCannotCancel возвращается, когда слот уже в терминальном статусе
	ErrCannotCancel = errors.New("slot cannot be cancelled")

	// ErrCancellationNotice возвращается, когда клиент пытается отменить слот
	// позже допустимого срока (нарушение notice window)
	ErrCancellationNotice = errors.New("cancellation is too close to slot start time")

	// ErrReasonRequired возвращается, когда клиент не указал причину отмены
	ErrReasonRequired = errors.New("cancellation reason is required")

	// ErrAccessDenied возвращается, когда у актора нет прав на операцию
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidState возвращается, когда операция недопустима в текущем статусе слота
	ErrInvalidState = errors.New("operation not permitted in current slot status")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("slots service: internal error")
)
