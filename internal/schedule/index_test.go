package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TrainerBooking/internal/domain"
)

func booking(id int64, at time.Time, status domain.BookingStatus) *domain.Booking {
	return &domain.Booking{
		ID:              id,
		TrainerID:       1,
		ClientID:        100 + id,
		Datetime:        at,
		DurationMinutes: 60,
		Status:          status,
	}
}

func TestBookingIndex_OnlyActiveBookings(t *testing.T) {
	idx := NewBookingIndex([]*domain.Booking{
		booking(1, monday.Add(10*time.Hour), domain.StatusPending),
		booking(2, monday.Add(11*time.Hour), domain.StatusConfirmed),
		booking(3, monday.Add(12*time.Hour), domain.StatusCancelled),
		booking(4, monday.Add(13*time.Hour), domain.StatusCompleted),
	}, time.UTC)

	assert.Equal(t, 2, idx.Len())
	assert.True(t, idx.IsOccupied(monday, "10:00"))
	assert.True(t, idx.IsOccupied(monday, "11:00"))
	assert.False(t, idx.IsOccupied(monday, "12:00"))
	assert.False(t, idx.IsOccupied(monday, "13:00"))
}

func TestBookingIndex_MinuteExactMatch(t *testing.T) {
	idx := NewBookingIndex([]*domain.Booking{
		booking(1, monday.Add(10*time.Hour+30*time.Second), domain.StatusPending),
	}, time.UTC)

	b := idx.BookingAt(monday, "10:00")
	require.NotNil(t, b)
	assert.Equal(t, int64(1), b.ID)

	assert.Nil(t, idx.BookingAt(monday, "10:01"))
	assert.Nil(t, idx.BookingAt(monday.AddDate(0, 0, 1), "10:00"))
	assert.True(t, idx.IsOccupiedAt(monday.Add(10*time.Hour)))
}

func TestBookingIndex_UsesLocation(t *testing.T) {
	moscow := time.FixedZone("MSK", 3*60*60)
	// 07:00 UTC = 10:00 MSK
	idx := NewBookingIndex([]*domain.Booking{
		booking(1, time.Date(2024, 1, 1, 7, 0, 0, 0, time.UTC), domain.StatusConfirmed),
	}, moscow)

	day := time.Date(2024, 1, 1, 0, 0, 0, 0, moscow)
	assert.True(t, idx.IsOccupied(day, "10:00"))
	assert.False(t, idx.IsOccupied(day, "07:00"))
	assert.Len(t, idx.OnDate(day), 1)
}

func TestBookingIndex_OnDateSorted(t *testing.T) {
	idx := NewBookingIndex([]*domain.Booking{
		booking(2, monday.Add(15*time.Hour), domain.StatusPending),
		booking(1, monday.Add(9*time.Hour), domain.StatusPending),
		booking(3, monday.AddDate(0, 0, 1).Add(9*time.Hour), domain.StatusPending),
	}, time.UTC)

	got := idx.OnDate(monday)
	require.Len(t, got, 2)
	assert.Equal(t, int64(1), got[0].ID)
	assert.Equal(t, int64(2), got[1].ID)
}

func TestBookingIndex_Without(t *testing.T) {
	idx := NewBookingIndex([]*domain.Booking{
		booking(1, monday.Add(10*time.Hour), domain.StatusPending),
		booking(2, monday.Add(11*time.Hour), domain.StatusPending),
	}, time.UTC)

	rest := idx.Without(1)
	assert.False(t, rest.IsOccupied(monday, "10:00"))
	assert.True(t, rest.IsOccupied(monday, "11:00"))
	// исходный индекс не меняется
	assert.True(t, idx.IsOccupied(monday, "10:00"))
}
