package reschedule_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-TrainerBooking/internal/domain"
	"github.com/m04kA/SMC-TrainerBooking/internal/schedule"
)

const operation = "reschedule_booking"

// UseCase перенос бронирования на другое время
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

// Execute переносит бронирование
//
// Переносить можно только pending и confirmed бронирования, статус сохраняется.
// Собственное текущее время бронирования не считается конфликтом.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RescheduleBooking: booking=%d, actor=%d, datetime=%s",
		req.BookingID, req.ActorID, req.Datetime.Format(time.RFC3339))

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RescheduleBooking: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	var (
		original *domain.Booking
		result   *domain.Booking
	)

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		booking, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, domain.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			uc.logger.Error("RescheduleBooking: failed to get booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to get booking: %w", ErrInternal, err)
		}
		original = booking

		role, ok := booking.RoleOf(req.ActorID)
		if !ok {
			uc.logger.Warn("RescheduleBooking: user=%d has no access to booking id=%d", req.ActorID, req.BookingID)
			return ErrForbidden
		}

		weekly, index, err := uc.loadDay(txCtx, booking.TrainerID, req.Datetime)
		if err != nil {
			return err
		}

		check := uc.validator.ValidateReschedule(booking, schedule.Proposal{
			Actor:           role,
			Datetime:        req.Datetime,
			DurationMinutes: booking.DurationMinutes,
			Schedule:        weekly,
			Index:           index,
			Now:             now,
		})
		if !check.OK() {
			return check.Err()
		}

		updated, err := uc.bookingRepo.Update(txCtx, booking.ID, domain.BookingUpdate{
			ActorID:   req.ActorID,
			ActorRole: role,
			Datetime:  &req.Datetime,
		})
		if err != nil {
			if errors.Is(err, domain.ErrSlotTaken) {
				return err
			}
			uc.logger.Error("RescheduleBooking: failed to update booking id=%d: %v", booking.ID, err)
			return fmt.Errorf("%w: failed to update booking: %w", ErrInternal, err)
		}

		result = updated
		return nil
	})

	if err != nil {
		if reason, ok := schedule.ReasonOf(err); ok {
			uc.metrics.ObserveRejection(operation, string(reason))
			uc.logger.Warn("RescheduleBooking: rejected booking=%d: %s", req.BookingID, reason)

			if reason == schedule.ReasonSlotTaken && original != nil {
				return nil, &SlotTakenError{Alternatives: uc.alternatives(ctx, original, req.Datetime, now)}
			}
		}
		return nil, err
	}

	uc.logger.Info("RescheduleBooking: booking id=%d moved from %s to %s",
		result.ID, original.Datetime.Format(time.RFC3339), result.Datetime.Format(time.RFC3339))

	return &Response{
		ID:               result.ID,
		TrainerID:        result.TrainerID,
		ClientID:         result.ClientID,
		Datetime:         result.Datetime,
		PreviousDatetime: original.Datetime,
		DurationMinutes:  result.DurationMinutes,
		Status:           result.Status,
		Notes:            result.Notes,
		UpdatedAt:        result.UpdatedAt,
	}, nil
}

func (uc *UseCase) loadDay(ctx context.Context, trainerID int64, datetime time.Time) (domain.WeeklySchedule, *schedule.BookingIndex, error) {
	entries, err := uc.scheduleRepo.GetWeeklySchedule(ctx, trainerID)
	if err != nil {
		uc.logger.Error("RescheduleBooking: failed to get working hours for trainer=%d: %v", trainerID, err)
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
		uc.logger.Error("RescheduleBooking: failed to get bookings for trainer=%d: %v", trainerID, err)
		return domain.WeeklySchedule{}, nil, fmt.Errorf("%w: failed to get bookings: %w", ErrInternal, err)
	}

	return domain.NewWeeklySchedule(entries), schedule.NewBookingIndex(bookings, uc.resolver.Location()), nil
}

// alternatives свободные слоты на новый день, свое текущее время считается свободным
func (uc *UseCase) alternatives(ctx context.Context, booking *domain.Booking, datetime, now time.Time) []domain.Slot {
	weekly, index, err := uc.loadDay(ctx, booking.TrainerID, datetime)
	if err != nil {
		uc.logger.Warn("RescheduleBooking: failed to resolve alternatives: %v", err)
		return []domain.Slot{}
	}
	return uc.resolver.AvailableSlotsForBooking(weekly, booking.DurationMinutes, index.Without(booking.ID), datetime, now)
}
