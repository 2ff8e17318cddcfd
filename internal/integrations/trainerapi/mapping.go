package trainerapi

import (
	"fmt"
	"strconv"

	"github.com/m04kA/SMC-TrainerBooking/internal/domain"
	"github.com/m04kA/SMC-TrainerBooking/pkg/types"
)

// statusNoShow статус API без аналога в домене: занятие завершено без клиента
const statusNoShow = "no_show"

func toDomainSchedule(entries []ScheduleEntry) ([]domain.WorkingHoursTemplate, error) {
	byDay := make(map[domain.WeekDay]*domain.WorkingHoursTemplate)
	breaks := make(map[domain.WeekDay]*domain.BreakWindow)
	order := make([]domain.WeekDay, 0, len(entries))

	for _, e := range entries {
		day, err := domain.ParseWeekDay(e.DayOfWeek)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
		}

		start, err := types.NewTimeStringFromString(e.StartTime)
		if err != nil && e.IsActive {
			return nil, fmt.Errorf("%w: %s start_time %q", ErrInvalidResponse, day, e.StartTime)
		}
		end, err := types.NewTimeStringFromString(e.EndTime)
		if err != nil && e.IsActive {
			return nil, fmt.Errorf("%w: %s end_time %q", ErrInvalidResponse, day, e.EndTime)
		}

		if e.IsBreak {
			if e.IsActive {
				breaks[day] = &domain.BreakWindow{Start: start, End: end}
			}
			continue
		}

		if _, seen := byDay[day]; !seen {
			order = append(order, day)
		}
		// Более поздняя запись на тот же день заменяет предыдущую
		byDay[day] = &domain.WorkingHoursTemplate{
			DayOfWeek: day,
			IsActive:  e.IsActive,
			StartTime: start,
			EndTime:   end,
		}
	}

	result := make([]domain.WorkingHoursTemplate, 0, len(order))
	for _, day := range order {
		tpl := byDay[day]
		if brk, ok := breaks[day]; ok {
			tpl.HasBreak = true
			tpl.Break = brk
		}
		result = append(result, *tpl)
	}
	return result, nil
}

func fromDomainSchedule(entries []domain.WorkingHoursTemplate, defaultBreak domain.BreakWindow) []ScheduleEntry {
	result := make([]ScheduleEntry, 0, len(entries)*2)
	for _, e := range entries {
		start, end := e.StartTime.String(), e.EndTime.String()
		if !e.IsActive {
			start, end = "00:00", "00:00"
		}
		result = append(result, ScheduleEntry{
			DayOfWeek: e.DayOfWeek.Name(),
			StartTime: start,
			EndTime:   end,
			IsActive:  e.IsActive,
		})

		if brk := e.BreakOrDefault(defaultBreak); brk != nil && e.IsActive {
			result = append(result, ScheduleEntry{
				DayOfWeek: e.DayOfWeek.Name(),
				StartTime: brk.Start.String(),
				EndTime:   brk.End.String(),
				IsActive:  true,
				IsBreak:   true,
			})
		}
	}
	return result
}

func toDomainBooking(b *Booking, createdBy domain.ActorRole) (*domain.Booking, error) {
	trainerID, err := parseTelegramID(b.TrainerTelegramID)
	if err != nil {
		return nil, err
	}
	clientID, err := parseTelegramID(b.ClientTelegramID)
	if err != nil {
		return nil, err
	}

	status, err := parseStatus(b.Status)
	if err != nil {
		return nil, err
	}

	return &domain.Booking{
		ID:                 b.ID,
		TrainerID:          trainerID,
		ClientID:           clientID,
		Datetime:           b.Datetime,
		DurationMinutes:    b.Duration,
		Status:             status,
		Notes:              b.Notes,
		CreatedBy:          createdBy,
		CancellationReason: b.CancellationReason,
		CancelledAt:        b.CancelledAt,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.CreatedAt,
	}, nil
}

func parseStatus(s string) (domain.BookingStatus, error) {
	status, err := domain.ParseBookingStatus(s)
	if err == nil {
		return status, nil
	}
	if statusNoShow == normalize(s) {
		return domain.StatusCompleted, nil
	}
	return "", fmt.Errorf("%w: %v", ErrInvalidResponse, err)
}

func parseTelegramID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: telegram id %q", ErrInvalidResponse, s)
	}
	return id, nil
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}
