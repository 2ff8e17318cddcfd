package domain

import (
	"fmt"
	"strings"
	"time"
)

// WeekDay день недели. Каноническая нумерация: понедельник = 0 ... воскресенье = 6
// Все остальные представления (time.Weekday, getDay() в JS, названия в API)
// конвертируются явно через функции ниже
type WeekDay int

const (
	Monday WeekDay = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

const daysInWeek = 7

var weekDayNames = [daysInWeek]string{
	"monday",
	"tuesday",
	"wednesday",
	"thursday",
	"friday",
	"saturday",
	"sunday",
}

// AllWeekDays возвращает дни недели по порядку, начиная с понедельника
func AllWeekDays() []WeekDay {
	return []WeekDay{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}
}

// IsValid возвращает true для значений 0..6
func (d WeekDay) IsValid() bool {
	return d >= Monday && d <= Sunday
}

// Name возвращает название дня в нижнем регистре ("monday")
func (d WeekDay) Name() string {
	if !d.IsValid() {
		return fmt.Sprintf("weekday(%d)", int(d))
	}
	return weekDayNames[d]
}

func (d WeekDay) String() string {
	return d.Name()
}

// ParseWeekDay парсит название дня без учета регистра
func ParseWeekDay(s string) (WeekDay, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range weekDayNames {
		if n == name {
			return WeekDay(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidWeekDay, s)
}

// FromTimeWeekday конвертирует time.Weekday (воскресенье = 0)
func FromTimeWeekday(w time.Weekday) WeekDay {
	return WeekDay((int(w) + 6) % daysInWeek)
}

// ToTimeWeekday конвертирует в time.Weekday (воскресенье = 0)
func (d WeekDay) ToTimeWeekday() time.Weekday {
	return time.Weekday((int(d) + 1) % daysInWeek)
}

// FromSundayFirstIndex конвертирует индекс, где воскресенье = 0 (Date.getDay() в JS)
func FromSundayFirstIndex(i int) (WeekDay, error) {
	if i < 0 || i >= daysInWeek {
		return 0, fmt.Errorf("%w: sunday-first index %d", ErrInvalidWeekDay, i)
	}
	return FromTimeWeekday(time.Weekday(i)), nil
}

// SundayFirstIndex возвращает индекс, где воскресенье = 0
func (d WeekDay) SundayFirstIndex() int {
	return int(d.ToTimeWeekday())
}

// FromMondayFirstIndex конвертирует индекс, где понедельник = 0
func FromMondayFirstIndex(i int) (WeekDay, error) {
	d := WeekDay(i)
	if !d.IsValid() {
		return 0, fmt.Errorf("%w: monday-first index %d", ErrInvalidWeekDay, i)
	}
	return d, nil
}

// MondayFirstIndex возвращает индекс, где понедельник = 0
func (d WeekDay) MondayFirstIndex() int {
	return int(d)
}

// WeekDayOf возвращает день недели даты (в локации самой даты)
func WeekDayOf(date time.Time) WeekDay {
	return FromTimeWeekday(date.Weekday())
}
