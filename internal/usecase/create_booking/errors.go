package create_booking

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-TrainerBooking/internal/domain"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrForbidden возвращается, когда пользователь не является ни тренером, ни клиентом бронирования
	ErrForbidden = errors.New("create_booking: actor is neither trainer nor client")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)

// SlotTakenError время уже занято. Alternatives содержит свободные слоты на тот же день
type SlotTakenError struct {
	Alternatives []domain.Slot
}

func (e *SlotTakenError) Error() string {
	return fmt.Sprintf("create_booking: %v (%d alternatives)", domain.ErrSlotTaken, len(e.Alternatives))
}

func (e *SlotTakenError) Unwrap() error {
	return domain.ErrSlotTaken
}
