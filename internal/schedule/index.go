package schedule

import (
	"sort"
	"time"

	"github.com/m04kA/SMC-TrainerBooking/internal/domain"
	"github.com/m04kA/SMC-TrainerBooking/pkg/types"
)

const minuteKeyFormat = "2006-01-02 15:04"

// BookingIndex снимок активных бронирований тренера для проверки занятости
// Совпадение ищется точно до минуты по времени начала бронирования
type BookingIndex struct {
	loc      *time.Location
	bookings []*domain.Booking
	byMinute map[string]*domain.Booking
}

// NewBookingIndex строит индекс. Отмененные и завершенные бронирования не учитываются
func NewBookingIndex(bookings []*domain.Booking, loc *time.Location) *BookingIndex {
	if loc == nil {
		loc = time.Local
	}

	idx := &BookingIndex{
		loc:      loc,
		bookings: make([]*domain.Booking, 0, len(bookings)),
		byMinute: make(map[string]*domain.Booking, len(bookings)),
	}

	for _, b := range bookings {
		if b == nil || !b.IsActive() {
			continue
		}
		idx.bookings = append(idx.bookings, b)
		key := idx.key(b.Datetime)
		if _, exists := idx.byMinute[key]; !exists {
			idx.byMinute[key] = b
		}
	}

	sort.SliceStable(idx.bookings, func(i, j int) bool {
		return idx.bookings[i].Datetime.Before(idx.bookings[j].Datetime)
	})

	return idx
}

func (idx *BookingIndex) key(t time.Time) string {
	return t.In(idx.loc).Format(minuteKeyFormat)
}

// Len количество активных бронирований в индексе
func (idx *BookingIndex) Len() int {
	return len(idx.bookings)
}

// OnDate возвращает активные бронирования на дату, по возрастанию времени
func (idx *BookingIndex) OnDate(date time.Time) []*domain.Booking {
	y, m, d := date.In(idx.loc).Date()
	result := make([]*domain.Booking, 0)
	for _, b := range idx.bookings {
		by, bm, bd := b.Datetime.In(idx.loc).Date()
		if by == y && bm == m && bd == d {
			result = append(result, b)
		}
	}
	return result
}

// IsOccupied возвращает true, если на дату и время есть активное бронирование
func (idx *BookingIndex) IsOccupied(date time.Time, at types.TimeString) bool {
	return idx.BookingAt(date, at) != nil
}

// BookingAt возвращает бронирование, начинающееся в указанную минуту, или nil
func (idx *BookingIndex) BookingAt(date time.Time, at types.TimeString) *domain.Booking {
	if at.Minutes() < 0 {
		return nil
	}
	return idx.byMinute[idx.key(at.On(date, idx.loc))]
}

// IsOccupiedAt то же, что IsOccupied, для абсолютного момента времени
func (idx *BookingIndex) IsOccupiedAt(t time.Time) bool {
	_, ok := idx.byMinute[idx.key(t)]
	return ok
}

// Without возвращает копию индекса без бронирования с указанным id (перенос)
func (idx *BookingIndex) Without(bookingID int64) *BookingIndex {
	rest := make([]*domain.Booking, 0, len(idx.bookings))
	for _, b := range idx.bookings {
		if b.ID != bookingID {
			rest = append(rest, b)
		}
	}
	return NewBookingIndex(rest, idx.loc)
}
