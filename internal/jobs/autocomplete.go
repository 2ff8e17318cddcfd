package jobs

import (
	"context"
	"fmt"
	"time"
)

// BookingCompleter хранилище, умеющее завершать прошедшие занятия
type BookingCompleter interface {
	CompleteEndedBefore(ctx context.Context, before time.Time) (int64, error)
}

// AutoCompleteJob переводит подтвержденные занятия, которые уже закончились, в completed
type AutoCompleteJob struct {
	repo   BookingCompleter
	now    func() time.Time
	logger Logger
}

func NewAutoCompleteJob(repo BookingCompleter, logger Logger) *AutoCompleteJob {
	return &AutoCompleteJob{repo: repo, now: time.Now, logger: logger}
}

// Run выполняет один проход
func (j *AutoCompleteJob) Run(ctx context.Context) error {
	completed, err := j.repo.CompleteEndedBefore(ctx, j.now())
	if err != nil {
		return fmt.Errorf("auto-complete: %w", err)
	}
	if completed > 0 {
		j.logger.Info("AutoComplete: %d bookings marked as completed", completed)
	}
	return nil
}
