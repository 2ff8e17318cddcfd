package bookings

import (
	"context"
	"time"

	"github.com/m04kA/SMC-TrainerBooking/internal/domain"
)

// BookingRepository интерфейс хранилища бронирований (PostgreSQL или внешний API)
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	ListByTrainer(ctx context.Context, filter domain.TrainerBookingsFilter) ([]*domain.Booking, error)
	ListByClient(ctx context.Context, filter domain.ClientBookingsFilter) ([]*domain.Booking, error)
	Update(ctx context.Context, id int64, upd domain.BookingUpdate) (*domain.Booking, error)
	Cancel(ctx context.Context, id int64, c domain.Cancellation) (*domain.Booking, error)
}

// TrainerRepository интерфейс источника настроек тренера
type TrainerRepository interface {
	GetTrainer(ctx context.Context, trainerID int64) (*domain.Trainer, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics метрики отказов
type Metrics interface {
	ObserveRejection(operation, reason string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

type realTimeProvider struct{}

func (realTimeProvider) Now() time.Time {
	return time.Now()
}
