package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-TrainerBooking/internal/domain"
)

// BookingRepository интерфейс хранилища бронирований (PostgreSQL или внешний API)
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	ListByTrainer(ctx context.Context, filter domain.TrainerBookingsFilter) ([]*domain.Booking, error)
}

// ScheduleRepository интерфейс источника рабочих часов и настроек тренера
type ScheduleRepository interface {
	GetTrainer(ctx context.Context, trainerID int64) (*domain.Trainer, error)
	GetWeeklySchedule(ctx context.Context, trainerID int64) ([]domain.WorkingHoursTemplate, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
