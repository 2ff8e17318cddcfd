package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-TrainerBooking/internal/domain"
	"github.com/m04kA/SMC-TrainerBooking/internal/schedule"
)

const operation = "create_booking"

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	scheduleRepo ScheduleRepository
	resolver     *schedule.Resolver
	validator    *schedule.Validator
	txManager    TransactionManager
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	scheduleRepo ScheduleRepository,
	resolver *schedule.Resolver,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		scheduleRepo: scheduleRepo,
		resolver:     resolver,
		validator:    schedule.NewValidator(resolver),
		txManager:    txManager,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования
//
// Проверка и вставка идут в одной сериализуемой транзакции (в режиме PostgreSQL).
// Окончательно конфликт времени определяет хранилище: при ErrSlotTaken
// возвращается *SlotTakenError со свободными слотами на тот же день.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: actor=%d, trainer=%d, client=%d, datetime=%s",
		req.ActorID, req.TrainerID, req.ClientID, req.Datetime.Format(time.RFC3339))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	role, err := actorRole(req)
	if err != nil {
		uc.logger.Warn("CreateBooking: actor=%d is not a participant", req.ActorID)
		return nil, err
	}

	now := uc.timeProvider.Now()

	// 2. Длительность занятия
	duration := req.DurationMinutes
	if duration == 0 {
		duration, err = uc.sessionDuration(ctx, req.TrainerID)
		if err != nil {
			return nil, err
		}
	}

	var result *domain.Booking

	// 3. Проверка и создание в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		weekly, index, err := uc.loadDay(txCtx, req.TrainerID, req.Datetime)
		if err != nil {
			return err
		}

		check := uc.validator.ValidateCreate(schedule.Proposal{
			Actor:           role,
			Datetime:        req.Datetime,
			DurationMinutes: duration,
			Schedule:        weekly,
			Index:           index,
			Now:             now,
		})
		if !check.OK() {
			return check.Err()
		}

		created, err := uc.bookingRepo.Create(txCtx, &domain.Booking{
			TrainerID:       req.TrainerID,
			ClientID:        req.ClientID,
			Datetime:        req.Datetime,
			DurationMinutes: duration,
			Status:          domain.StatusPending,
			Notes:           normalizeNotes(req.Notes),
			CreatedBy:       role,
		})
		if err != nil {
			if errors.Is(err, domain.ErrSlotTaken) {
				return err
			}
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %w", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		if reason, ok := schedule.ReasonOf(err); ok {
			uc.metrics.ObserveRejection(operation, string(reason))
			uc.logger.Warn("CreateBooking: rejected trainer=%d datetime=%s: %s",
				req.TrainerID, req.Datetime.Format(time.RFC3339), reason)

			if reason == schedule.ReasonSlotTaken {
				return nil, &SlotTakenError{Alternatives: uc.alternatives(ctx, req.TrainerID, duration, req.Datetime, now)}
			}
		}
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d", result.ID)

	return toResponse(result), nil
}

// loadDay загружает шаблон и активные бронирования тренера на день datetime
func (uc *UseCase) loadDay(ctx context.Context, trainerID int64, datetime time.Time) (domain.WeeklySchedule, *schedule.BookingIndex, error) {
	entries, err := uc.scheduleRepo.GetWeeklySchedule(ctx, trainerID)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to get working hours for trainer=%d: %v", trainerID, err)
		return domain.WeeklySchedule{}, nil, fmt.Errorf("%w: failed to get working hours: %w", ErrInternal, err)
	}

	from := uc.resolver.DateOf(datetime)
	to := from.AddDate(0, 0, 1)
	bookings, err := uc.bookingRepo.ListByTrainer(ctx, domain.TrainerBookingsFilter{
		TrainerID: trainerID,
		From:      &from,
		To:        &to,
	})
	if err != nil {
		uc.logger.Error("CreateBooking: failed to get bookings for trainer=%d: %v", trainerID, err)
		return domain.WeeklySchedule{}, nil, fmt.Errorf("%w: failed to get bookings: %w", ErrInternal, err)
	}

	return domain.NewWeeklySchedule(entries), schedule.NewBookingIndex(bookings, uc.resolver.Location()), nil
}

// alternatives свободные слоты на тот же день после отказа
// Ошибка загрузки не мешает вернуть SLOT_TAKEN, просто без вариантов
func (uc *UseCase) alternatives(ctx context.Context, trainerID int64, duration int, datetime, now time.Time) []domain.Slot {
	weekly, index, err := uc.loadDay(ctx, trainerID, datetime)
	if err != nil {
		uc.logger.Warn("CreateBooking: failed to resolve alternatives: %v", err)
		return []domain.Slot{}
	}
	return uc.resolver.AvailableSlotsForBooking(weekly, duration, index, datetime, now)
}

func (uc *UseCase) sessionDuration(ctx context.Context, trainerID int64) (int, error) {
	trainer, err := uc.scheduleRepo.GetTrainer(ctx, trainerID)
	if err != nil {
		if errors.Is(err, domain.ErrTrainerNotFound) {
			return domain.DefaultSessionDurationMinutes, nil
		}
		uc.logger.Error("CreateBooking: failed to get trainer=%d: %v", trainerID, err)
		return 0, fmt.Errorf("%w: failed to get trainer: %w", ErrInternal, err)
	}
	return trainer.SessionDuration(), nil
}
