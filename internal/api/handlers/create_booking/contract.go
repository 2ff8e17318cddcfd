package create_booking

import (
	"context"

	createBooking "github.com/m04kA/SMC-TrainerBooking/internal/usecase/create_booking"
)

// BookingCreator создает бронирование с проверкой занятости
type BookingCreator interface {
	Execute(ctx context.Context, req *createBooking.Request) (*createBooking.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
