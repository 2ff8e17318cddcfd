package get_booking

import (
	"context"

	"github.com/m04kA/SMC-TrainerBooking/internal/service/bookings/models"
)

// BookingReader отдает бронирование участнику
type BookingReader interface {
	GetByID(ctx context.Context, id int64, userID int64) (*models.BookingResponse, error)
}

type Logger interface {
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
