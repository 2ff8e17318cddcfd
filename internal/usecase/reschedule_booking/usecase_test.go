package reschedule_booking

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TrainerBooking/internal/domain"
	"github.com/m04kA/SMC-TrainerBooking/internal/schedule"
	"github.com/m04kA/SMC-TrainerBooking/pkg/logger"
	"github.com/m04kA/SMC-TrainerBooking/pkg/txmanager"
	"github.com/m04kA/SMC-TrainerBooking/pkg/types"
)

const (
	trainerID int64 = 100
	clientID  int64 = 200
)

var monday = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type fakeBookings struct {
	byID    map[int64]*domain.Booking
	updates []domain.BookingUpdate
	err     error
}

func newFakeBookings(bookings ...*domain.Booking) *fakeBookings {
	f := &fakeBookings{byID: make(map[int64]*domain.Booking)}
	for _, b := range bookings {
		f.byID[b.ID] = b
	}
	return f
}

func (f *fakeBookings) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	if f.err != nil {
		return nil, f.err
	}
	b, ok := f.byID[id]
	if !ok {
		return nil, fmt.Errorf("booking.repository: %w", domain.ErrBookingNotFound)
	}
	cp := *b
	return &cp, nil
}

func (f *fakeBookings) ListByTrainer(context.Context, domain.TrainerBookingsFilter) ([]*domain.Booking, error) {
	out := make([]*domain.Booking, 0, len(f.byID))
	for _, b := range f.byID {
		out = append(out, b)
	}
	return out, nil
}

func (f *fakeBookings) Update(_ context.Context, id int64, upd domain.BookingUpdate) (*domain.Booking, error) {
	f.updates = append(f.updates, upd)
	b := *f.byID[id]
	if upd.Datetime != nil {
		b.Datetime = *upd.Datetime
	}
	return &b, nil
}

type fakeSchedule struct{}

func (fakeSchedule) GetWeeklySchedule(context.Context, int64) ([]domain.WorkingHoursTemplate, error) {
	return []domain.WorkingHoursTemplate{{
		DayOfWeek: domain.Monday,
		IsActive:  true,
		StartTime: types.MustTimeString("09:00"),
		EndTime:   types.MustTimeString("13:00"),
	}}, nil
}

type rejections struct{ reasons []string }

func (r *rejections) ObserveRejection(_, reason string) { r.reasons = append(r.reasons, reason) }

func newUseCase(bookings *fakeBookings) (*UseCase, *rejections) {
	rej := &rejections{}
	uc := NewUseCase(bookings, fakeSchedule{}, schedule.NewResolver(time.UTC, domain.DefaultBreak), txmanager.NoopManager{}, rej, logger.NewNop())
	uc.timeProvider = fixedTime{now: monday.Add(8 * time.Hour)}
	return uc, rej
}

func booking(id int64, at time.Time, status domain.BookingStatus) *domain.Booking {
	return &domain.Booking{ID: id, TrainerID: trainerID, ClientID: clientID, Datetime: at, DurationMinutes: 60, Status: status}
}

func TestExecute_MovesBookingKeepingStatus(t *testing.T) {
	bookings := newFakeBookings(booking(1, monday.Add(10*time.Hour), domain.StatusConfirmed))
	uc, _ := newUseCase(bookings)

	resp, err := uc.Execute(context.Background(), &Request{BookingID: 1, ActorID: clientID, Datetime: monday.Add(12 * time.Hour)})

	require.NoError(t, err)
	assert.Equal(t, monday.Add(12*time.Hour), resp.Datetime)
	assert.Equal(t, monday.Add(10*time.Hour), resp.PreviousDatetime)
	assert.Equal(t, domain.StatusConfirmed, resp.Status)
	require.Len(t, bookings.updates, 1)
	assert.Equal(t, domain.RoleClient, bookings.updates[0].ActorRole)
	assert.Nil(t, bookings.updates[0].Status)
}

func TestExecute_OwnSlotIsNotConflict(t *testing.T) {
	bookings := newFakeBookings(booking(1, monday.Add(10*time.Hour), domain.StatusPending))
	uc, _ := newUseCase(bookings)

	_, err := uc.Execute(context.Background(), &Request{BookingID: 1, ActorID: trainerID, Datetime: monday.Add(10 * time.Hour)})

	require.NoError(t, err)
}

func TestExecute_TargetTaken(t *testing.T) {
	bookings := newFakeBookings(
		booking(1, monday.Add(10*time.Hour), domain.StatusPending),
		&domain.Booking{ID: 2, TrainerID: trainerID, ClientID: 300, Datetime: monday.Add(11 * time.Hour), DurationMinutes: 60, Status: domain.StatusConfirmed},
	)
	uc, rej := newUseCase(bookings)

	_, err := uc.Execute(context.Background(), &Request{BookingID: 1, ActorID: clientID, Datetime: monday.Add(11 * time.Hour)})

	var slotErr *SlotTakenError
	require.ErrorAs(t, err, &slotErr)
	assert.ErrorIs(t, err, domain.ErrSlotTaken)

	starts := make([]string, 0)
	for _, s := range slotErr.Alternatives {
		starts = append(starts, s.StartTime.String())
	}
	assert.Equal(t, []string{"09:00", "10:00", "12:00"}, starts)
	assert.Equal(t, []string{"SLOT_TAKEN"}, rej.reasons)
	assert.Empty(t, bookings.updates)
}

func TestExecute_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		status domain.BookingStatus
		actor  int64
		target time.Time
		reason schedule.Reason
	}{
		{name: "cancelled booking", status: domain.StatusCancelled, actor: clientID, target: monday.Add(12 * time.Hour), reason: schedule.ReasonInvalidTransition},
		{name: "completed booking", status: domain.StatusCompleted, actor: trainerID, target: monday.Add(12 * time.Hour), reason: schedule.ReasonInvalidTransition},
		{name: "past target", status: domain.StatusPending, actor: trainerID, target: monday.Add(7 * time.Hour), reason: schedule.ReasonPastDatetime},
		{name: "client outside hours", status: domain.StatusPending, actor: clientID, target: monday.Add(18 * time.Hour), reason: schedule.ReasonOutsideWorkingHours},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bookings := newFakeBookings(booking(1, monday.Add(10*time.Hour), tt.status))
			uc, _ := newUseCase(bookings)

			_, err := uc.Execute(context.Background(), &Request{BookingID: 1, ActorID: tt.actor, Datetime: tt.target})

			reason, ok := schedule.ReasonOf(err)
			require.True(t, ok, "unexpected error: %v", err)
			assert.Equal(t, tt.reason, reason)
		})
	}
}

func TestExecute_TrainerMayMoveOutsideHours(t *testing.T) {
	bookings := newFakeBookings(booking(1, monday.Add(10*time.Hour), domain.StatusPending))
	uc, _ := newUseCase(bookings)

	_, err := uc.Execute(context.Background(), &Request{BookingID: 1, ActorID: trainerID, Datetime: monday.Add(18 * time.Hour)})

	require.NoError(t, err)
}

func TestExecute_AccessErrors(t *testing.T) {
	bookings := newFakeBookings(booking(1, monday.Add(10*time.Hour), domain.StatusPending))
	uc, _ := newUseCase(bookings)

	_, err := uc.Execute(context.Background(), &Request{BookingID: 1, ActorID: 999, Datetime: monday.Add(12 * time.Hour)})
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = uc.Execute(context.Background(), &Request{BookingID: 42, ActorID: clientID, Datetime: monday.Add(12 * time.Hour)})
	assert.ErrorIs(t, err, ErrBookingNotFound)
	assert.ErrorIs(t, err, domain.ErrBookingNotFound)

	_, err = uc.Execute(context.Background(), &Request{BookingID: 1, ActorID: clientID})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
