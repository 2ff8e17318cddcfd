package get_trainer_schedule

import (
	"context"
	"time"

	"github.com/m04kA/SMC-TrainerBooking/internal/domain"
)

// BookingRepository интерфейс хранилища бронирований
type BookingRepository interface {
	ListByTrainer(ctx context.Context, filter domain.TrainerBookingsFilter) ([]*domain.Booking, error)
}

// ScheduleRepository интерфейс источника рабочих часов и настроек тренера
type ScheduleRepository interface {
	GetTrainer(ctx context.Context, trainerID int64) (*domain.Trainer, error)
	GetWeeklySchedule(ctx context.Context, trainerID int64) ([]domain.WorkingHoursTemplate, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}

type realTimeProvider struct{}

func (realTimeProvider) Now() time.Time {
	return time.Now()
}
