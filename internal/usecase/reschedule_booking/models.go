package reschedule_booking

import (
	"time"

	"github.com/m04kA/SMC-TrainerBooking/internal/domain"
)

// Request модель запроса на перенос
type Request struct {
	BookingID int64
	ActorID   int64     // Telegram ID тренера или клиента
	Datetime  time.Time // Новое время начала
}

// Response перенесенное бронирование
type Response struct {
	ID               int64
	TrainerID        int64
	ClientID         int64
	Datetime         time.Time
	PreviousDatetime time.Time
	DurationMinutes  int
	Status           domain.BookingStatus
	Notes            *string
	UpdatedAt        time.Time
}
