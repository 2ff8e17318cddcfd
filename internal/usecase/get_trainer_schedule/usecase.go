package get_trainer_schedule

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-TrainerBooking/internal/domain"
	"github.com/m04kA/SMC-TrainerBooking/internal/schedule"
)

// UseCase расписание дня для экрана тренера: все рабочие слоты и бронирования поверх них
type UseCase struct {
	bookingRepo  BookingRepository
	scheduleRepo ScheduleRepository
	resolver     *schedule.Resolver
	timeProvider TimeProvider
	logger       Logger
}

func NewUseCase(
	bookingRepo BookingRepository,
	scheduleRepo ScheduleRepository,
	resolver *schedule.Resolver,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		scheduleRepo: scheduleRepo,
		resolver:     resolver,
		timeProvider: realTimeProvider{},
		logger:       logger,
	}
}

func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req.TrainerID <= 0 {
		return nil, fmt.Errorf("%w: trainerID must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	day := uc.resolver.DateOf(req.Date)

	duration := domain.DefaultSessionDurationMinutes
	trainer, err := uc.scheduleRepo.GetTrainer(ctx, req.TrainerID)
	switch {
	case err == nil:
		duration = trainer.SessionDuration()
	case !errors.Is(err, domain.ErrTrainerNotFound):
		uc.logger.Error("GetTrainerSchedule: failed to get trainer=%d: %v", req.TrainerID, err)
		return nil, fmt.Errorf("%w: failed to get trainer: %w", ErrInternal, err)
	}

	entries, err := uc.scheduleRepo.GetWeeklySchedule(ctx, req.TrainerID)
	if err != nil {
		uc.logger.Error("GetTrainerSchedule: failed to get working hours for trainer=%d: %v", req.TrainerID, err)
		return nil, fmt.Errorf("%w: failed to get working hours: %w", ErrInternal, err)
	}
	weekly := domain.NewWeeklySchedule(entries)

	// Бронирования запрашиваются и для выходного: тренер мог записать клиента вручную
	from, to := day, day.AddDate(0, 0, 1)
	bookings, err := uc.bookingRepo.ListByTrainer(ctx, domain.TrainerBookingsFilter{
		TrainerID: req.TrainerID,
		From:      &from,
		To:        &to,
	})
	if err != nil {
		uc.logger.Error("GetTrainerSchedule: failed to get bookings for trainer=%d: %v", req.TrainerID, err)
		return nil, fmt.Errorf("%w: failed to get bookings: %w", ErrInternal, err)
	}

	index := schedule.NewBookingIndex(bookings, uc.resolver.Location())
	slots := uc.resolver.ScheduleSlotsForDisplay(weekly, duration, index, day, uc.timeProvider.Now())

	resp := &Response{
		Date:            day,
		TrainerID:       req.TrainerID,
		DurationMinutes: duration,
		IsWorkingDay:    weekly.IsWorkingDay(domain.WeekDayOf(day)),
		Slots:           make([]Slot, 0, len(slots)),
	}
	for _, s := range slots {
		resp.Slots = append(resp.Slots, Slot{
			StartTime:     s.StartTime,
			EndTime:       s.EndTime,
			Kind:          s.Kind,
			BookingID:     s.BookingID,
			OutOfTemplate: s.OutOfTemplate,
		})
	}

	uc.logger.Info("GetTrainerSchedule: trainer=%d, date=%s, slots=%d, bookings=%d",
		req.TrainerID, day.Format(domain.DateFormat), len(resp.Slots), index.Len())

	return resp, nil
}
