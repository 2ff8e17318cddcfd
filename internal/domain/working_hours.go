package domain

import (
	"fmt"

	"github.com/m04kA/SMC-TrainerBooking/pkg/types"
)

// DefaultBreak перерыв по умолчанию, если у записи включен перерыв, но окно не задано
var DefaultBreak = BreakWindow{
	Start: types.MustTimeString("12:00"),
	End:   types.MustTimeString("13:00"),
}

// BreakWindow перерыв [Start, End), в который запись невозможна
type BreakWindow struct {
	Start types.TimeString
	End   types.TimeString
}

// Validate проверяет, что начало перерыва раньше окончания
func (b BreakWindow) Validate() error {
	if err := b.Start.Validate(); err != nil {
		return fmt.Errorf("%w: break start: %v", ErrInvalidTemplate, err)
	}
	if err := b.End.Validate(); err != nil {
		return fmt.Errorf("%w: break end: %v", ErrInvalidTemplate, err)
	}
	if !b.Start.IsBefore(b.End) {
		return fmt.Errorf("%w: break start %s must be before end %s", ErrInvalidTemplate, b.Start, b.End)
	}
	return nil
}

// Overlaps возвращает true, если интервал [start, end) в минутах пересекает перерыв
func (b BreakWindow) Overlaps(startMinutes, endMinutes int) bool {
	return startMinutes < b.End.Minutes() && endMinutes > b.Start.Minutes()
}

// WorkingHoursTemplate рабочие часы тренера на один день недели
type WorkingHoursTemplate struct {
	DayOfWeek WeekDay
	IsActive  bool
	StartTime types.TimeString
	EndTime   types.TimeString
	HasBreak  bool
	Break     *BreakWindow // nil при HasBreak = окно по умолчанию
}

// BreakOrDefault возвращает окно перерыва или nil, если перерыва нет
func (t WorkingHoursTemplate) BreakOrDefault(def BreakWindow) *BreakWindow {
	if !t.HasBreak {
		return nil
	}
	if t.Break != nil {
		b := *t.Break
		return &b
	}
	return &def
}

// Validate проверяет запись. Неактивный день валиден без времени
func (t WorkingHoursTemplate) Validate() error {
	if !t.DayOfWeek.IsValid() {
		return fmt.Errorf("%w: %v", ErrInvalidTemplate, ErrInvalidWeekDay)
	}
	if !t.IsActive {
		return nil
	}
	if err := t.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: start time %q", ErrInvalidTemplate, t.StartTime)
	}
	if err := t.EndTime.Validate(); err != nil {
		return fmt.Errorf("%w: end time %q", ErrInvalidTemplate, t.EndTime)
	}
	if !t.StartTime.IsBefore(t.EndTime) {
		return fmt.Errorf("%w: %s start %s must be before end %s", ErrInvalidTemplate, t.DayOfWeek, t.StartTime, t.EndTime)
	}
	if t.HasBreak && t.Break != nil {
		if err := t.Break.Validate(); err != nil {
			return err
		}
		if t.Break.Start.IsBefore(t.StartTime) || t.Break.End.IsAfter(t.EndTime) {
			return fmt.Errorf("%w: %s break %s-%s is outside working hours", ErrInvalidTemplate, t.DayOfWeek, t.Break.Start, t.Break.End)
		}
	}
	return nil
}

// WeeklySchedule недельный шаблон тренера: не больше одной записи на день
type WeeklySchedule struct {
	days [daysInWeek]*WorkingHoursTemplate
}

// NewWeeklySchedule собирает шаблон из записей
// Более поздняя запись на тот же день заменяет предыдущую, дни без записи считаются выходными
func NewWeeklySchedule(entries []WorkingHoursTemplate) WeeklySchedule {
	var s WeeklySchedule
	for i := range entries {
		e := entries[i]
		if !e.DayOfWeek.IsValid() {
			continue
		}
		s.days[e.DayOfWeek] = &e
	}
	return s
}

// Template возвращает запись на день. ok = false, если записи нет
func (s WeeklySchedule) Template(day WeekDay) (WorkingHoursTemplate, bool) {
	if !day.IsValid() || s.days[day] == nil {
		return WorkingHoursTemplate{DayOfWeek: day}, false
	}
	return *s.days[day], true
}

// IsWorkingDay возвращает true, если запись есть, активна и корректна
// Некорректная запись трактуется как выходной
func (s WeeklySchedule) IsWorkingDay(day WeekDay) bool {
	t, ok := s.Template(day)
	return ok && t.IsActive && t.Validate() == nil
}

// RangeFor возвращает рабочий интервал дня. ok = false для выходного
func (s WeeklySchedule) RangeFor(day WeekDay) (start, end types.TimeString, ok bool) {
	if !s.IsWorkingDay(day) {
		return "", "", false
	}
	t := s.days[day]
	return t.StartTime, t.EndTime, true
}

// Entries возвращает все семь дней по порядку, выходные с IsActive = false
func (s WeeklySchedule) Entries() []WorkingHoursTemplate {
	result := make([]WorkingHoursTemplate, 0, daysInWeek)
	for _, day := range AllWeekDays() {
		t, _ := s.Template(day)
		result = append(result, t)
	}
	return result
}

// Validate проверяет все записи шаблона
func (s WeeklySchedule) Validate() error {
	for _, t := range s.days {
		if t == nil {
			continue
		}
		if err := t.Validate(); err != nil {
			return err
		}
	}
	return nil
}
