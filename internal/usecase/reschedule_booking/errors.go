package reschedule_booking

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-TrainerBooking/internal/domain"
)

var (
	ErrInvalidInput = errors.New("reschedule_booking: invalid input data")

	// ErrBookingNotFound бронирование не найдено
	ErrBookingNotFound = fmt.Errorf("reschedule_booking: %w", domain.ErrBookingNotFound)

	// ErrForbidden пользователь не участник бронирования
	ErrForbidden = errors.New("reschedule_booking: access denied")

	ErrInternal = errors.New("reschedule_booking: internal error")
)

// SlotTakenError новое время занято. Alternatives содержит свободные слоты на тот же день
type SlotTakenError struct {
	Alternatives []domain.Slot
}

func (e *SlotTakenError) Error() string {
	return fmt.Sprintf("reschedule_booking: %v (%d alternatives)", domain.ErrSlotTaken, len(e.Alternatives))
}

func (e *SlotTakenError) Unwrap() error {
	return domain.ErrSlotTaken
}
