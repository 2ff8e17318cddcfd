package cancel_booking

import (
	"context"

	"github.com/m04kA/SMC-TrainerBooking/internal/service/bookings/models"
)

// BookingCanceller отменяет бронирование от имени участника
type BookingCanceller interface {
	Cancel(ctx context.Context, bookingID int64, req *models.CancelBookingRequest) (*models.CancelBookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
