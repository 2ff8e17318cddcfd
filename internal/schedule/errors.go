package schedule

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-TrainerBooking/internal/domain"
)

// Reason причина отказа в операции с бронированием
type Reason string

const (
	ReasonNone                Reason = ""
	ReasonPastDatetime        Reason = "PAST_DATETIME"
	ReasonSlotTaken           Reason = "SLOT_TAKEN"
	ReasonMissingReason       Reason = "MISSING_REASON"
	ReasonOutsideWorkingHours Reason = "OUTSIDE_WORKING_HOURS"
	ReasonInvalidTransition   Reason = "INVALID_TRANSITION"
)

var (
	ErrPastDatetime        = errors.New("booking time must be in the future")
	ErrMissingReason       = errors.New("cancellation reason is required")
	ErrOutsideWorkingHours = errors.New("booking time is outside working hours")
	ErrInvalidTransition   = errors.New("booking status transition is not allowed")
)

// ValidationError ошибка для причины отказа. Разворачивается в соответствующую sentinel-ошибку,
// для SLOT_TAKEN это domain.ErrSlotTaken
type ValidationError struct {
	Reason Reason
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("booking validation failed: %s", e.Reason)
}

func (e *ValidationError) Unwrap() error {
	switch e.Reason {
	case ReasonPastDatetime:
		return ErrPastDatetime
	case ReasonSlotTaken:
		return domain.ErrSlotTaken
	case ReasonMissingReason:
		return ErrMissingReason
	case ReasonOutsideWorkingHours:
		return ErrOutsideWorkingHours
	case ReasonInvalidTransition:
		return ErrInvalidTransition
	}
	return nil
}

// ReasonOf достает причину отказа из ошибки (в т.ч. обернутой)
// domain.ErrSlotTaken от хранилища тоже дает SLOT_TAKEN
func ReasonOf(err error) (Reason, bool) {
	var vErr *ValidationError
	if errors.As(err, &vErr) {
		return vErr.Reason, true
	}
	if errors.Is(err, domain.ErrSlotTaken) {
		return ReasonSlotTaken, true
	}
	return ReasonNone, false
}
