package domain

import (
	"time"

	"github.com/m04kA/SMC-TrainerBooking/pkg/types"
)

// SlotKind вид слота в расписании
type SlotKind string

const (
	SlotAvailable SlotKind = "available"
	SlotBooked    SlotKind = "booked"
	SlotPast      SlotKind = "past"
)

// Slot производный интервал времени, не хранится
type Slot struct {
	Date      time.Time // Полночь дня в локации сервиса
	StartTime types.TimeString
	EndTime   types.TimeString
	Kind      SlotKind

	// Заполняются для занятых слотов
	BookingID     *int64
	OutOfTemplate bool // Бронирование вне рабочих часов (ручная запись тренером)
}

// StartsAt возвращает момент начала слота
func (s Slot) StartsAt(loc *time.Location) time.Time {
	return s.StartTime.On(s.Date, loc)
}

// DurationMinutes длительность слота
func (s Slot) DurationMinutes() int {
	return s.EndTime.Minutes() - s.StartTime.Minutes()
}
