package create_booking

import (
	"time"

	"github.com/m04kA/SMC-TrainerBooking/internal/domain"
)

// Request модель запроса на создание бронирования
type Request struct {
	ActorID         int64     // Telegram ID того, кто создает запись
	TrainerID       int64     // Telegram ID тренера
	ClientID        int64     // Telegram ID клиента
	Datetime        time.Time // Начало занятия
	DurationMinutes int       // 0 = длительность занятия тренера
	Notes           *string
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID              int64
	TrainerID       int64
	ClientID        int64
	Datetime        time.Time
	DurationMinutes int
	Status          domain.BookingStatus
	CreatedBy       domain.ActorRole
	Notes           *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func toResponse(b *domain.Booking) *Response {
	return &Response{
		ID:              b.ID,
		TrainerID:       b.TrainerID,
		ClientID:        b.ClientID,
		Datetime:        b.Datetime,
		DurationMinutes: b.DurationMinutes,
		Status:          b.Status,
		CreatedBy:       b.CreatedBy,
		Notes:           b.Notes,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}
