package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-TrainerBooking/internal/domain"
	"github.com/m04kA/SMC-TrainerBooking/internal/schedule"
)

// UseCase use case получения слотов, на которые клиент может записаться
type UseCase struct {
	bookingRepo  BookingRepository
	scheduleRepo ScheduleRepository
	resolver     *schedule.Resolver
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	scheduleRepo ScheduleRepository,
	resolver *schedule.Resolver,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		scheduleRepo: scheduleRepo,
		resolver:     resolver,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute возвращает свободные слоты тренера на дату
// Для прошедших дат и выходных список пустой
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()
	day := uc.resolver.DateOf(req.Date)

	uc.logger.Info("GetAvailableSlots: trainer=%d, date=%s", req.TrainerID, day.Format(domain.DateFormat))

	duration, err := uc.sessionDuration(ctx, req.TrainerID)
	if err != nil {
		return nil, err
	}

	entries, err := uc.scheduleRepo.GetWeeklySchedule(ctx, req.TrainerID)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get working hours for trainer=%d: %v", req.TrainerID, err)
		return nil, fmt.Errorf("%w: failed to get working hours: %w", ErrInternal, err)
	}
	weekly := domain.NewWeeklySchedule(entries)

	response := &Response{
		Date:            day,
		TrainerID:       req.TrainerID,
		DurationMinutes: duration,
		Slots:           []Slot{},
	}

	// Выходной или прошедший день: бронирования можно не запрашивать
	if !weekly.IsWorkingDay(domain.WeekDayOf(day)) || day.Before(uc.resolver.Today(now)) {
		uc.metrics.ObserveSlots(0)
		return response, nil
	}

	from, to := day, day.AddDate(0, 0, 1)
	bookings, err := uc.bookingRepo.ListByTrainer(ctx, domain.TrainerBookingsFilter{
		TrainerID: req.TrainerID,
		From:      &from,
		To:        &to,
	})
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings for trainer=%d: %v", req.TrainerID, err)
		return nil, fmt.Errorf("%w: failed to get bookings: %w", ErrInternal, err)
	}

	index := schedule.NewBookingIndex(bookings, uc.resolver.Location())
	slots := uc.resolver.AvailableSlotsForBooking(weekly, duration, index, day, now)

	for _, s := range slots {
		response.Slots = append(response.Slots, Slot{
			StartTime: s.StartTime,
			EndTime:   s.EndTime,
			StartsAt:  s.StartsAt(uc.resolver.Location()),
		})
	}

	uc.metrics.ObserveSlots(len(response.Slots))
	uc.logger.Info("GetAvailableSlots: %d free slots for trainer=%d on %s (%d active bookings)",
		len(response.Slots), req.TrainerID, day.Format(domain.DateFormat), index.Len())

	return response, nil
}

// sessionDuration длительность занятия тренера
// Тренер без сохраненных настроек получает значение по умолчанию
func (uc *UseCase) sessionDuration(ctx context.Context, trainerID int64) (int, error) {
	trainer, err := uc.scheduleRepo.GetTrainer(ctx, trainerID)
	if err != nil {
		if errors.Is(err, domain.ErrTrainerNotFound) {
			return domain.DefaultSessionDurationMinutes, nil
		}
		uc.logger.Error("GetAvailableSlots: failed to get trainer=%d: %v", trainerID, err)
		return 0, fmt.Errorf("%w: failed to get trainer: %w", ErrInternal, err)
	}
	return trainer.SessionDuration(), nil
}
