package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-TrainerBooking/internal/config"
	"github.com/m04kA/SMC-TrainerBooking/internal/domain"
	"github.com/m04kA/SMC-TrainerBooking/internal/infra/cache"
	bookingRepo "github.com/m04kA/SMC-TrainerBooking/internal/infra/storage/booking"
	scheduleRepo "github.com/m04kA/SMC-TrainerBooking/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-TrainerBooking/internal/integrations/trainerapi"
	"github.com/m04kA/SMC-TrainerBooking/migrations"
	"github.com/m04kA/SMC-TrainerBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-TrainerBooking/pkg/logger"
	"github.com/m04kA/SMC-TrainerBooking/pkg/metrics"
	"github.com/m04kA/SMC-TrainerBooking/pkg/migrator"
	"github.com/m04kA/SMC-TrainerBooking/pkg/txmanager"
)

// bookingStore хранилище бронирований: PostgreSQL или внешний API
type bookingStore interface {
	Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error)
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	ListByTrainer(ctx context.Context, filter domain.TrainerBookingsFilter) ([]*domain.Booking, error)
	ListByClient(ctx context.Context, filter domain.ClientBookingsFilter) ([]*domain.Booking, error)
	Update(ctx context.Context, id int64, upd domain.BookingUpdate) (*domain.Booking, error)
	Cancel(ctx context.Context, id int64, c domain.Cancellation) (*domain.Booking, error)
}

// scheduleStore настройки и рабочие часы тренеров
type scheduleStore interface {
	GetTrainer(ctx context.Context, trainerID int64) (*domain.Trainer, error)
	UpsertTrainer(ctx context.Context, t *domain.Trainer) error
	GetWeeklySchedule(ctx context.Context, trainerID int64) ([]domain.WorkingHoursTemplate, error)
	ReplaceWeeklySchedule(ctx context.Context, trainerID int64, entries []domain.WorkingHoursTemplate) error
}

type txManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// gateway источники данных, выбранные конфигурацией
type gateway struct {
	bookings  bookingStore
	schedules scheduleStore
	tx        txManager

	// Только в режиме postgres
	completer *bookingRepo.Repository

	closers []func() error
}

func (g *gateway) Close() {
	for i := len(g.closers) - 1; i >= 0; i-- {
		_ = g.closers[i]()
	}
}

// newGateway собирает хранилище по gateway.mode
func newGateway(
	ctx context.Context,
	cfg *config.Config,
	defaultBreak domain.BreakWindow,
	m *metrics.Metrics,
	stopMetrics <-chan struct{},
	log *logger.Logger,
) (*gateway, error) {
	switch cfg.Gateway.Mode {
	case config.GatewayRemote:
		client := trainerapi.NewClient(
			cfg.TrainerAPI.URL,
			time.Duration(cfg.TrainerAPI.Timeout)*time.Second,
			defaultBreak,
			m,
			log,
		)
		log.Info("Gateway: remote trainer API (url=%s, timeout=%ds)", cfg.TrainerAPI.URL, cfg.TrainerAPI.Timeout)
		return &gateway{
			bookings:  client,
			schedules: client,
			tx:        txmanager.NoopManager{},
		}, nil

	default:
		return newPostgresGateway(ctx, cfg, m, stopMetrics, log)
	}
}

func newPostgresGateway(
	ctx context.Context,
	cfg *config.Config,
	m *metrics.Metrics,
	stopMetrics <-chan struct{},
	log *logger.Logger,
) (*gateway, error) {
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	if cfg.Database.AutoMigrate {
		mig, err := migrator.New(db, migrations.FS, log)
		if err != nil {
			_ = db.Close()
			return nil, err
		}
		if err := mig.Up(ctx); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply migrations: %w", err)
		}
	}

	var wrapped *dbmetrics.DB
	if m != nil {
		wrapped = dbmetrics.WrapWithDefault(db, m, stopMetrics)
		log.Info("Database metrics collection started")
	} else {
		wrapped = dbmetrics.Wrap(db, nil)
	}

	bookings := bookingRepo.NewRepository(wrapped)
	return &gateway{
		bookings:  bookings,
		schedules: scheduleRepo.NewRepository(wrapped),
		tx:        txmanager.NewTransactionManager(wrapped),
		completer: bookings,
		closers:   []func() error{db.Close},
	}, nil
}

// withCache оборачивает рабочие часы в Redis-кеш, если он настроен
// Недоступный Redis не мешает старту: сервис работает без кеша
func withCache(ctx context.Context, g *gateway, cfg config.RedisConfig, log *logger.Logger) *cache.ScheduleCache {
	if !cfg.Enabled() {
		return nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		log.Warn("Redis is unavailable at %s, working hours cache disabled: %v", cfg.Addr, err)
		_ = rdb.Close()
		return nil
	}

	scheduleCache := cache.NewScheduleCache(
		g.schedules,
		cache.NewRedisStore(rdb),
		time.Duration(cfg.TTLSeconds)*time.Second,
		cfg.KeyPrefix,
		log,
	)
	g.schedules = scheduleCache
	g.closers = append(g.closers, rdb.Close)
	log.Info("Working hours cache enabled (redis=%s, ttl=%ds)", cfg.Addr, cfg.TTLSeconds)
	return scheduleCache
}
