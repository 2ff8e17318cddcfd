package schedule

import (
	"sort"
	"time"

	"github.com/m04kA/SMC-TrainerBooking/internal/domain"
	"github.com/m04kA/SMC-TrainerBooking/pkg/ptr"
	"github.com/m04kA/SMC-TrainerBooking/pkg/types"
)

// Resolver вычисляет слоты на дату из шаблона рабочих часов, индекса бронирований и текущего времени
// Не хранит состояния между вызовами: одинаковые входные данные дают одинаковый результат
type Resolver struct {
	loc          *time.Location
	defaultBreak domain.BreakWindow
}

// NewResolver создает резолвер для часового пояса loc
func NewResolver(loc *time.Location, defaultBreak domain.BreakWindow) *Resolver {
	if loc == nil {
		loc = time.Local
	}
	if defaultBreak.Validate() != nil {
		defaultBreak = domain.DefaultBreak
	}
	return &Resolver{loc: loc, defaultBreak: defaultBreak}
}

// Location часовой пояс, в котором считаются даты
func (r *Resolver) Location() *time.Location {
	return r.loc
}

// Today возвращает полночь текущего дня
func (r *Resolver) Today(now time.Time) time.Time {
	return dayStart(now.In(r.loc))
}

// DateOf возвращает полночь дня, к которому относится t
func (r *Resolver) DateOf(t time.Time) time.Time {
	return dayStart(t.In(r.loc))
}

// WorkingSlots возвращает все рабочие слоты дня без учета бронирований и текущего времени
// Выходной и некорректная запись шаблона дают пустой список
func (r *Resolver) WorkingSlots(schedule domain.WeeklySchedule, durationMinutes int, date time.Time) []domain.Slot {
	day := r.DateOf(date)
	weekDay := domain.WeekDayOf(day)
	if !schedule.IsWorkingDay(weekDay) {
		return []domain.Slot{}
	}

	tpl, _ := schedule.Template(weekDay)
	return Generate(day, tpl.StartTime, tpl.EndTime, durationMinutes, tpl.BreakOrDefault(r.defaultBreak))
}

// AvailableSlotsForBooking слоты, доступные для новой записи:
// рабочие слоты без занятых и без тех, что начинаются не позже now
func (r *Resolver) AvailableSlotsForBooking(
	schedule domain.WeeklySchedule,
	durationMinutes int,
	index *BookingIndex,
	date time.Time,
	now time.Time,
) []domain.Slot {
	working := r.WorkingSlots(schedule, durationMinutes, date)

	result := make([]domain.Slot, 0, len(working))
	for _, slot := range working {
		if index != nil && index.IsOccupied(slot.Date, slot.StartTime) {
			continue
		}
		if !slot.StartsAt(r.loc).After(now) {
			continue
		}
		result = append(result, slot)
	}

	return result
}

// ScheduleSlotsForDisplay расписание дня для тренера
//
// Все рабочие слоты помечаются как свободные, занятые или прошедшие.
// Бронирования, не совпадающие с рабочим слотом (ручная запись вне часов работы
// или в выходной), добавляются отдельными занятыми слотами.
func (r *Resolver) ScheduleSlotsForDisplay(
	schedule domain.WeeklySchedule,
	durationMinutes int,
	index *BookingIndex,
	date time.Time,
	now time.Time,
) []domain.Slot {
	working := r.WorkingSlots(schedule, durationMinutes, date)
	day := r.DateOf(date)

	result := make([]domain.Slot, 0, len(working))
	covered := make(map[int64]struct{})

	for _, slot := range working {
		var booking *domain.Booking
		if index != nil {
			booking = index.BookingAt(slot.Date, slot.StartTime)
		}

		switch {
		case booking != nil:
			slot.Kind = domain.SlotBooked
			slot.BookingID = ptr.Ptr(booking.ID)
			covered[booking.ID] = struct{}{}
		case !slot.StartsAt(r.loc).After(now):
			slot.Kind = domain.SlotPast
		default:
			slot.Kind = domain.SlotAvailable
		}
		result = append(result, slot)
	}

	if index != nil {
		for _, b := range index.OnDate(day) {
			if _, ok := covered[b.ID]; ok {
				continue
			}
			result = append(result, r.bookedSlot(day, b))
		}
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].StartTime.Minutes() < result[j].StartTime.Minutes()
	})

	return result
}

// IsWorkingSlot проверяет, что момент at совпадает с началом одного из рабочих слотов
func (r *Resolver) IsWorkingSlot(schedule domain.WeeklySchedule, durationMinutes int, at time.Time) bool {
	at = at.In(r.loc)
	start := types.NewTimeString(at)
	for _, slot := range r.WorkingSlots(schedule, durationMinutes, at) {
		if slot.StartTime.Equal(start) {
			return true
		}
	}
	return false
}

func (r *Resolver) bookedSlot(day time.Time, b *domain.Booking) domain.Slot {
	start := types.NewTimeString(b.Datetime.In(r.loc))

	endMinutes := start.Minutes() + b.DurationMinutes
	if endMinutes > 24*60 {
		endMinutes = 24 * 60
	}

	return domain.Slot{
		Date:          day,
		StartTime:     start,
		EndTime:       minutesToTime(endMinutes),
		Kind:          domain.SlotBooked,
		BookingID:     ptr.Ptr(b.ID),
		OutOfTemplate: true,
	}
}
