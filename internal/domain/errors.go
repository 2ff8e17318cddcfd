package domain

import "errors"

// Общие ошибки домена. Слои хранения и интеграций оборачивают их,
// чтобы бизнес-логика могла проверять errors.Is независимо от источника данных
var (
	ErrBookingNotFound = errors.New("booking not found")
	ErrTrainerNotFound = errors.New("trainer not found")

	// ErrSlotTaken время у тренера уже занято активным бронированием
	ErrSlotTaken = errors.New("time slot already booked")

	// ErrExternalCall сбой внешнего API (таймаут, 5xx, некорректный ответ)
	ErrExternalCall = errors.New("external call failed")

	ErrInvalidTemplate = errors.New("invalid working hours template")
	ErrInvalidWeekDay  = errors.New("invalid day of week")
	ErrInvalidStatus   = errors.New("invalid booking status")
	ErrInvalidRole     = errors.New("invalid actor role")
)
