package reschedule_slot

import "errors"

var (
	// ErrSlotNotFound возвращается, когда слот не найден
	ErrSlotNotFound = errors.New("reschedule_slot: slot not found")

	// ErrCannotReschedule возвращается, когда слот в финальном статусе
	ErrCannotReschedule = errors.New("reschedule_slot: slot cannot be rescheduled")

	// ErrSlotConflict возвращается, когда новый интервал пересекается с другим слотом тренера
	ErrSlotConflict = errors.New("reschedule_slot: trainer already has a slot in this interval")

	// ErrAccessDenied возвращается, когда актор не имеет права переносить этот слот
	ErrAccessDenied = errors.New("reschedule_slot: access denied")

	// ErrSlotInPast возвращается при попытке перенести слот в прошлое
	ErrSlotInPast = errors.New("reschedule_slot: new start time is in the past")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reschedule_slot: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("reschedule_slot: internal error")
)
