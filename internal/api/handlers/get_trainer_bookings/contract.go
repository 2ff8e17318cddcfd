package get_trainer_bookings

import (
	"context"

	"github.com/m04kA/SMC-TrainerBooking/internal/service/bookings/models"
)

type BookingService interface {
	GetTrainerBookings(ctx context.Context, req *models.GetTrainerBookingsRequest) (*models.BookingListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
