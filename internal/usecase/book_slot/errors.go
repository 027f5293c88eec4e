package book_slot

import "errors"

var (
	// ErrSlotConflict возвращается, когда интервал пересекается с другим слотом тренера
	ErrSlotConflict = errors.New("book_slot: trainer already has a slot in this interval")

	// ErrSlotInPast возвращается при попытке забронировать слот в прошлом
	ErrSlotInPast = errors.New("book_slot: slot start time is in the past")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("book_slot: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("book_slot: internal error")
)
