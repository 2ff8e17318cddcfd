package workinghours

import (
	"context"

	"github.com/m04kA/SMC-TrainerBooking/internal/domain"
)

// ScheduleRepository интерфейс хранилища рабочих часов и настроек тренера
type ScheduleRepository interface {
	GetTrainer(ctx context.Context, trainerID int64) (*domain.Trainer, error)
	UpsertTrainer(ctx context.Context, trainer *domain.Trainer) error
	GetWeeklySchedule(ctx context.Context, trainerID int64) ([]domain.WorkingHoursTemplate, error)
	ReplaceWeeklySchedule(ctx context.Context, trainerID int64, entries []domain.WorkingHoursTemplate) error
}

// CacheInvalidator сбрасывает кэш шаблона после фиксации транзакции
type CacheInvalidator interface {
	Invalidate(ctx context.Context, trainerID int64)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

type noopInvalidator struct{}

func (noopInvalidator) Invalidate(context.Context, int64) {}
