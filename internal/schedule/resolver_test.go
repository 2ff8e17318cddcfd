package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TrainerBooking/internal/domain"
	"github.com/m04kA/SMC-TrainerBooking/pkg/types"
)

func mondaySchedule(start, end string, hasBreak bool) domain.WeeklySchedule {
	return domain.NewWeeklySchedule([]domain.WorkingHoursTemplate{{
		DayOfWeek: domain.Monday,
		IsActive:  true,
		StartTime: types.MustTimeString(start),
		EndTime:   types.MustTimeString(end),
		HasBreak:  hasBreak,
	}})
}

func newTestResolver() *Resolver {
	return NewResolver(time.UTC, domain.DefaultBreak)
}

func TestAvailableSlots_PastSlotsOnToday(t *testing.T) {
	r := newTestResolver()
	now := monday.Add(10*time.Hour + 5*time.Minute)

	slots := r.AvailableSlotsForBooking(mondaySchedule("09:00", "20:00", false), 30, NewBookingIndex(nil, time.UTC), monday, now)

	require.NotEmpty(t, slots)
	assert.Equal(t, types.TimeString("10:30"), slots[0].StartTime)
	for _, s := range slots {
		assert.True(t, s.StartsAt(time.UTC).After(now))
	}
}

func TestAvailableSlots_SlotStartingExactlyNowExcluded(t *testing.T) {
	r := newTestResolver()
	now := monday.Add(10 * time.Hour)

	slots := r.AvailableSlotsForBooking(mondaySchedule("09:00", "12:00", false), 60, nil, monday, now)

	assert.Equal(t, []string{"11:00"}, starts(slots))
}

func TestAvailableSlots_BreakAtClosingTime(t *testing.T) {
	r := newTestResolver()
	now := monday.AddDate(0, 0, -1)

	slots := r.AvailableSlotsForBooking(mondaySchedule("09:00", "13:00", true), 60, nil, monday, now)

	assert.Equal(t, []string{"09:00", "10:00", "11:00"}, starts(slots))
}

func TestAvailableSlots_OccupiedSlotExcluded(t *testing.T) {
	r := newTestResolver()
	now := monday.AddDate(0, 0, -1)
	idx := NewBookingIndex([]*domain.Booking{
		booking(1, monday.Add(14*time.Hour), domain.StatusConfirmed),
	}, time.UTC)

	slots := r.AvailableSlotsForBooking(mondaySchedule("09:00", "20:00", false), 60, idx, monday, now)

	got := starts(slots)
	assert.NotContains(t, got, "14:00")
	assert.Equal(t, []string{
		"09:00", "10:00", "11:00", "12:00", "13:00",
		"15:00", "16:00", "17:00", "18:00", "19:00",
	}, got)
}

func TestAvailableSlots_CancelledBookingDoesNotBlock(t *testing.T) {
	r := newTestResolver()
	now := monday.AddDate(0, 0, -1)
	idx := NewBookingIndex([]*domain.Booking{
		booking(1, monday.Add(10*time.Hour), domain.StatusCancelled),
	}, time.UTC)

	slots := r.AvailableSlotsForBooking(mondaySchedule("09:00", "12:00", false), 60, idx, monday, now)

	assert.Contains(t, starts(slots), "10:00")
}

func TestAvailableSlots_DayOffIsEmpty(t *testing.T) {
	r := newTestResolver()
	schedule := mondaySchedule("09:00", "20:00", false)
	now := monday.AddDate(0, 0, -30)

	// Каждый вторник за несколько недель
	for week := 0; week < 4; week++ {
		tuesday := monday.AddDate(0, 0, 1+7*week)
		assert.Empty(t, r.AvailableSlotsForBooking(schedule, 60, nil, tuesday, now))
	}
}

func TestAvailableSlots_InvalidTemplateIsDayOff(t *testing.T) {
	r := newTestResolver()
	schedule := mondaySchedule("20:00", "09:00", false)

	assert.Empty(t, r.AvailableSlotsForBooking(schedule, 60, nil, monday, monday.AddDate(0, 0, -1)))
}

func TestAvailableSlots_PastDateIsEmpty(t *testing.T) {
	r := newTestResolver()
	now := monday.AddDate(0, 0, 7)

	assert.Empty(t, r.AvailableSlotsForBooking(mondaySchedule("09:00", "20:00", false), 60, nil, monday, now))
}

func TestAvailableSlots_Idempotent(t *testing.T) {
	r := newTestResolver()
	schedule := mondaySchedule("09:00", "20:00", true)
	idx := NewBookingIndex([]*domain.Booking{
		booking(1, monday.Add(9*time.Hour), domain.StatusPending),
		booking(2, monday.Add(15*time.Hour), domain.StatusConfirmed),
	}, time.UTC)
	now := monday.Add(11*time.Hour + 20*time.Minute)

	first := r.AvailableSlotsForBooking(schedule, 45, idx, monday, now)
	second := r.AvailableSlotsForBooking(schedule, 45, idx, monday, now)

	assert.Equal(t, first, second)
	assert.Equal(t, 2, idx.Len())
}

func TestAvailableSlots_OccupiedNeverReturned(t *testing.T) {
	r := newTestResolver()
	schedule := mondaySchedule("08:00", "21:00", true)
	bookings := []*domain.Booking{
		booking(1, monday.Add(8*time.Hour), domain.StatusPending),
		booking(2, monday.Add(10*time.Hour), domain.StatusConfirmed),
		booking(3, monday.Add(17*time.Hour), domain.StatusConfirmed),
	}
	idx := NewBookingIndex(bookings, time.UTC)

	for _, duration := range []int{30, 60, 120} {
		slots := r.AvailableSlotsForBooking(schedule, duration, idx, monday, monday.AddDate(0, 0, -1))
		for _, b := range bookings {
			assert.NotContains(t, starts(slots), types.NewTimeString(b.Datetime).String())
		}
	}
}

func TestAvailableSlots_PerEntryBreak(t *testing.T) {
	r := newTestResolver()
	schedule := domain.NewWeeklySchedule([]domain.WorkingHoursTemplate{{
		DayOfWeek: domain.Monday,
		IsActive:  true,
		StartTime: "09:00",
		EndTime:   "13:00",
		HasBreak:  true,
		Break:     &domain.BreakWindow{Start: "10:00", End: "10:30"},
	}})

	slots := r.AvailableSlotsForBooking(schedule, 60, nil, monday, monday.AddDate(0, 0, -1))

	assert.Equal(t, []string{"09:00", "10:30", "11:30"}, starts(slots))
}

func TestScheduleSlotsForDisplay(t *testing.T) {
	r := newTestResolver()
	schedule := mondaySchedule("09:00", "13:00", false)
	idx := NewBookingIndex([]*domain.Booking{
		booking(1, monday.Add(11*time.Hour), domain.StatusConfirmed),
		// ручная запись вне рабочих часов
		booking(2, monday.Add(19*time.Hour), domain.StatusPending),
	}, time.UTC)
	now := monday.Add(10*time.Hour + 15*time.Minute)

	slots := r.ScheduleSlotsForDisplay(schedule, 60, idx, monday, now)

	require.Len(t, slots, 5)
	assert.Equal(t, []string{"09:00", "10:00", "11:00", "12:00", "19:00"}, starts(slots))
	assert.Equal(t, domain.SlotPast, slots[0].Kind)
	assert.Equal(t, domain.SlotPast, slots[1].Kind)
	assert.Equal(t, domain.SlotBooked, slots[2].Kind)
	assert.Equal(t, int64(1), *slots[2].BookingID)
	assert.False(t, slots[2].OutOfTemplate)
	assert.Equal(t, domain.SlotAvailable, slots[3].Kind)
	assert.Equal(t, domain.SlotBooked, slots[4].Kind)
	assert.True(t, slots[4].OutOfTemplate)
	assert.Equal(t, types.TimeString("20:00"), slots[4].EndTime)
}

func TestScheduleSlotsForDisplay_DayOffShowsBookings(t *testing.T) {
	r := newTestResolver()
	tuesday := monday.AddDate(0, 0, 1)
	idx := NewBookingIndex([]*domain.Booking{
		booking(7, tuesday.Add(18*time.Hour), domain.StatusConfirmed),
	}, time.UTC)

	slots := r.ScheduleSlotsForDisplay(mondaySchedule("09:00", "20:00", false), 60, idx, tuesday, monday)
	require.Len(t, slots, 1)
	assert.Equal(t, types.TimeString("18:00"), slots[0].StartTime)
	assert.True(t, slots[0].OutOfTemplate)

	// для записи день остается выходным
	assert.Empty(t, r.AvailableSlotsForBooking(mondaySchedule("09:00", "20:00", false), 60, idx, tuesday, monday))
}

func TestIsWorkingSlot(t *testing.T) {
	r := newTestResolver()
	schedule := mondaySchedule("09:00", "13:00", true)

	assert.True(t, r.IsWorkingSlot(schedule, 60, monday.Add(9*time.Hour)))
	assert.False(t, r.IsWorkingSlot(schedule, 60, monday.Add(12*time.Hour)))
	assert.False(t, r.IsWorkingSlot(schedule, 60, monday.Add(9*time.Hour+30*time.Minute)))
	assert.False(t, r.IsWorkingSlot(schedule, 60, monday.AddDate(0, 0, 1).Add(9*time.Hour)))
}
