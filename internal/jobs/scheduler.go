package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Scheduler запускает фоновые задачи по cron-расписанию
// Задача не запускается повторно, пока предыдущий запуск не закончился
type Scheduler struct {
	cron    *cron.Cron
	timeout time.Duration
	logger  Logger
}

// NewScheduler создает планировщик. timeout ограничивает один запуск задачи
func NewScheduler(loc *time.Location, timeout time.Duration, logger Logger) *Scheduler {
	if loc == nil {
		loc = time.Local
	}
	cl := cronLogger{logger: logger}
	return &Scheduler{
		cron: cron.New(
			cron.WithLocation(loc),
			cron.WithLogger(cl),
			cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
		),
		timeout: timeout,
		logger:  logger,
	}
}

// Register добавляет задачу. spec в формате cron ("*/5 * * * *") или "@every 1m"
func (s *Scheduler) Register(name, spec string, fn func(ctx context.Context) error) error {
	_, err := s.cron.AddFunc(spec, func() {
		ctx := context.Background()
		if s.timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, s.timeout)
			defer cancel()
		}

		started := time.Now()
		if err := fn(ctx); err != nil {
			s.logger.Error("Job %s failed after %s: %v", name, time.Since(started), err)
			return
		}
		s.logger.Info("Job %s finished in %s", name, time.Since(started))
	})
	if err != nil {
		return fmt.Errorf("jobs: invalid schedule %q for %s: %w", spec, name, err)
	}

	s.logger.Info("Job %s registered with schedule %q", name, spec)
	return nil
}

// Start запускает планировщик в отдельной горутине
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop останавливает планировщик и ждет завершения запущенных задач или отмены ctx
func (s *Scheduler) Stop(ctx context.Context) error {
	done := s.cron.Stop()
	select {
	case <-done.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// cronLogger адаптер логгера для robfig/cron
type cronLogger struct {
	logger Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Info("cron: %s %v", msg, keysAndValues)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Error("cron: %s: %v %v", msg, err, keysAndValues)
}
