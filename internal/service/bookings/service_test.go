package bookings

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TrainerBooking/internal/domain"
	"github.com/m04kA/SMC-TrainerBooking/internal/schedule"
	"github.com/m04kA/SMC-TrainerBooking/internal/service/bookings/models"
	"github.com/m04kA/SMC-TrainerBooking/pkg/logger"
	"github.com/m04kA/SMC-TrainerBooking/pkg/ptr"
	"github.com/m04kA/SMC-TrainerBooking/pkg/txmanager"
)

const (
	trainerID int64 = 100
	clientID  int64 = 200
)

var start = time.Date(2024, 1, 2, 10, 0, 0, 0, time.UTC)

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type fakeRepo struct {
	bookings      map[int64]*domain.Booking
	trainerFilter domain.TrainerBookingsFilter
	clientFilter  domain.ClientBookingsFilter
	cancellations []domain.Cancellation
	updates       []domain.BookingUpdate
	err           error
}

func newFakeRepo(bookings ...*domain.Booking) *fakeRepo {
	r := &fakeRepo{bookings: make(map[int64]*domain.Booking)}
	for _, b := range bookings {
		r.bookings[b.ID] = b
	}
	return r
}

func (r *fakeRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	if r.err != nil {
		return nil, r.err
	}
	b, ok := r.bookings[id]
	if !ok {
		return nil, fmt.Errorf("booking.repository: %w", domain.ErrBookingNotFound)
	}
	cp := *b
	return &cp, nil
}

func (r *fakeRepo) ListByTrainer(_ context.Context, filter domain.TrainerBookingsFilter) ([]*domain.Booking, error) {
	r.trainerFilter = filter
	return []*domain.Booking{r.bookings[1]}, r.err
}

func (r *fakeRepo) ListByClient(_ context.Context, filter domain.ClientBookingsFilter) ([]*domain.Booking, error) {
	r.clientFilter = filter
	return nil, r.err
}

func (r *fakeRepo) Update(_ context.Context, id int64, upd domain.BookingUpdate) (*domain.Booking, error) {
	r.updates = append(r.updates, upd)
	b := *r.bookings[id]
	if upd.Status != nil {
		b.Status = *upd.Status
	}
	return &b, nil
}

func (r *fakeRepo) Cancel(_ context.Context, id int64, c domain.Cancellation) (*domain.Booking, error) {
	r.cancellations = append(r.cancellations, c)
	b := *r.bookings[id]
	b.Status = domain.StatusCancelled
	b.CancelledBy = &c.ActorRole
	if c.Reason != "" {
		b.CancellationReason = ptr.Ptr(c.Reason)
	}
	return &b, nil
}

type fakeTrainers struct {
	trainer *domain.Trainer
	err     error
}

func (f fakeTrainers) GetTrainer(context.Context, int64) (*domain.Trainer, error) {
	if f.trainer == nil && f.err == nil {
		return nil, domain.ErrTrainerNotFound
	}
	return f.trainer, f.err
}

// brokenTrainers нарушает контракт: ни настроек, ни ошибки
type brokenTrainers struct{}

func (brokenTrainers) GetTrainer(context.Context, int64) (*domain.Trainer, error) {
	return nil, nil
}

type rejections struct{ reasons []string }

func (r *rejections) ObserveRejection(_, reason string) { r.reasons = append(r.reasons, reason) }

func newService(repo *fakeRepo, trainers fakeTrainers, now time.Time) (*Service, *rejections) {
	rej := &rejections{}
	s := NewService(repo, trainers, schedule.NewResolver(time.UTC, domain.DefaultBreak), txmanager.NoopManager{}, rej, logger.NewNop())
	s.timeProvider = fixedTime{now: now}
	return s, rej
}

func booking(status domain.BookingStatus) *domain.Booking {
	return &domain.Booking{ID: 1, TrainerID: trainerID, ClientID: clientID, Datetime: start, DurationMinutes: 60, Status: status}
}

func TestGetByID_Access(t *testing.T) {
	s, _ := newService(newFakeRepo(booking(domain.StatusPending)), fakeTrainers{}, start)

	resp, err := s.GetByID(context.Background(), 1, clientID)
	require.NoError(t, err)
	assert.Equal(t, "2024-01-02", resp.Date)
	assert.Equal(t, "10:00", resp.StartTime)

	_, err = s.GetByID(context.Background(), 1, 999)
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = s.GetByID(context.Background(), 2, clientID)
	assert.ErrorIs(t, err, ErrBookingNotFound)
	assert.ErrorIs(t, err, domain.ErrBookingNotFound)
}

func TestGetTrainerBookings(t *testing.T) {
	repo := newFakeRepo(booking(domain.StatusConfirmed))
	s, _ := newService(repo, fakeTrainers{}, start)
	from, to := start.Add(-24*time.Hour), start.Add(24*time.Hour)

	resp, err := s.GetTrainerBookings(context.Background(), &models.GetTrainerBookingsRequest{
		UserID: trainerID, TrainerID: trainerID, From: &from, To: &to, Status: ptr.Ptr("CONFIRMED"),
	})

	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 1)
	require.NotNil(t, repo.trainerFilter.Status)
	assert.Equal(t, domain.StatusConfirmed, *repo.trainerFilter.Status)

	_, err = s.GetTrainerBookings(context.Background(), &models.GetTrainerBookingsRequest{UserID: clientID, TrainerID: trainerID})
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = s.GetTrainerBookings(context.Background(), &models.GetTrainerBookingsRequest{UserID: trainerID, TrainerID: trainerID, From: &to, To: &from})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = s.GetTrainerBookings(context.Background(), &models.GetTrainerBookingsRequest{UserID: trainerID, TrainerID: trainerID, Status: ptr.Ptr("no_show")})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetClientBookings_Empty(t *testing.T) {
	repo := newFakeRepo()
	s, _ := newService(repo, fakeTrainers{}, start)

	resp, err := s.GetClientBookings(context.Background(), &models.GetClientBookingsRequest{UserID: clientID, ClientID: clientID})

	require.NoError(t, err)
	assert.NotNil(t, resp.Bookings)
	assert.Empty(t, resp.Bookings)
	assert.Equal(t, clientID, repo.clientFilter.ClientID)
}

func TestCancel(t *testing.T) {
	tests := []struct {
		name        string
		status      domain.BookingStatus
		userID      int64
		reason      string
		now         time.Time
		trainers    fakeTrainers
		wantErr     error
		wantReason  schedule.Reason
		wantPenalty bool
	}{
		{
			name:   "client early with reason",
			status: domain.StatusConfirmed, userID: clientID, reason: "заболел",
			now: start.Add(-48 * time.Hour),
		},
		{
			name:   "client late inside default window",
			status: domain.StatusConfirmed, userID: clientID, reason: "пробки",
			now: start.Add(-2 * time.Hour), trainers: fakeTrainers{err: domain.ErrTrainerNotFound},
			wantPenalty: true,
		},
		{
			name:   "client outside custom window",
			status: domain.StatusPending, userID: clientID, reason: "планы",
			now: start.Add(-5 * time.Hour), trainers: fakeTrainers{trainer: &domain.Trainer{CancellationHours: 4}},
		},
		{
			name:   "trainer late without reason has no penalty",
			status: domain.StatusConfirmed, userID: trainerID,
			now: start.Add(-1 * time.Hour),
		},
		{
			name:   "client without reason",
			status: domain.StatusPending, userID: clientID, reason: "   ",
			now: start.Add(-48 * time.Hour), wantReason: schedule.ReasonMissingReason,
		},
		{
			name:   "already cancelled",
			status: domain.StatusCancelled, userID: trainerID,
			now: start.Add(-48 * time.Hour), wantReason: schedule.ReasonInvalidTransition,
		},
		{
			name:   "stranger",
			status: domain.StatusPending, userID: 999, reason: "x",
			now: start.Add(-48 * time.Hour), wantErr: ErrAccessDenied,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeRepo(booking(tt.status))
			s, rej := newService(repo, tt.trainers, tt.now)

			resp, err := s.Cancel(context.Background(), 1, &models.CancelBookingRequest{UserID: tt.userID, CancellationReason: tt.reason})

			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, repo.cancellations)
			case tt.wantReason != schedule.ReasonNone:
				reason, ok := schedule.ReasonOf(err)
				require.True(t, ok, "unexpected error: %v", err)
				assert.Equal(t, tt.wantReason, reason)
				assert.Equal(t, []string{string(tt.wantReason)}, rej.reasons)
				assert.Empty(t, repo.cancellations)
			default:
				require.NoError(t, err)
				assert.Equal(t, tt.wantPenalty, resp.WithinPenaltyWindow)
				assert.Equal(t, string(domain.StatusCancelled), resp.Booking.Status)
				require.Len(t, repo.cancellations, 1)
			}
		})
	}
}

func TestCancel_LateClientWithoutTrainerSettings(t *testing.T) {
	repo := newFakeRepo(booking(domain.StatusConfirmed))
	rej := &rejections{}
	s := NewService(repo, brokenTrainers{}, schedule.NewResolver(time.UTC, domain.DefaultBreak), txmanager.NoopManager{}, rej, logger.NewNop())
	s.timeProvider = fixedTime{now: start.Add(-10 * time.Hour)}

	resp, err := s.Cancel(context.Background(), 1, &models.CancelBookingRequest{UserID: clientID, CancellationReason: "заболел"})

	require.NoError(t, err)
	assert.True(t, resp.WithinPenaltyWindow)
	assert.Equal(t, string(domain.StatusCancelled), resp.Booking.Status)
	require.Len(t, repo.cancellations, 1)
	assert.Empty(t, rej.reasons)
}

func TestCancel_ReasonTooLong(t *testing.T) {
	s, _ := newService(newFakeRepo(booking(domain.StatusPending)), fakeTrainers{}, start)
	long := make([]rune, domain.MaxCancellationReasonLength+1)
	for i := range long {
		long[i] = 'ж'
	}

	_, err := s.Cancel(context.Background(), 1, &models.CancelBookingRequest{UserID: clientID, CancellationReason: string(long)})

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdateStatus(t *testing.T) {
	tests := []struct {
		name       string
		current    domain.BookingStatus
		target     string
		userID     int64
		wantErr    error
		wantReason schedule.Reason
	}{
		{name: "client confirms pending", current: domain.StatusPending, target: "CONFIRMED", userID: clientID},
		{name: "trainer completes confirmed", current: domain.StatusConfirmed, target: "completed", userID: trainerID},
		{name: "trainer confirms pending", current: domain.StatusPending, target: "confirmed", userID: trainerID},
		{name: "stranger cannot confirm", current: domain.StatusPending, target: "confirmed", userID: 999, wantErr: ErrAccessDenied},
		{name: "client cannot complete", current: domain.StatusConfirmed, target: "completed", userID: clientID, wantErr: ErrAccessDenied},
		{name: "confirm twice", current: domain.StatusConfirmed, target: "confirmed", userID: clientID, wantReason: schedule.ReasonInvalidTransition},
		{name: "complete pending", current: domain.StatusPending, target: "completed", userID: trainerID, wantReason: schedule.ReasonInvalidTransition},
		{name: "cancel via status", current: domain.StatusPending, target: "cancelled", userID: clientID, wantErr: ErrInvalidInput},
		{name: "unknown status", current: domain.StatusPending, target: "done", userID: clientID, wantErr: ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeRepo(booking(tt.current))
			s, _ := newService(repo, fakeTrainers{}, start)

			resp, err := s.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{UserID: tt.userID, Status: tt.target})

			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.wantReason != schedule.ReasonNone:
				reason, ok := schedule.ReasonOf(err)
				require.True(t, ok)
				assert.Equal(t, tt.wantReason, reason)
			default:
				require.NoError(t, err)
				parsed, _ := domain.ParseBookingStatus(tt.target)
				assert.Equal(t, string(parsed), resp.Status)
				require.Len(t, repo.updates, 1)
			}
		})
	}
}

func TestRepositoryFailureIsInternal(t *testing.T) {
	repo := newFakeRepo()
	repo.err = fmt.Errorf("api: %w", domain.ErrExternalCall)
	s, _ := newService(repo, fakeTrainers{}, start)

	_, err := s.GetByID(context.Background(), 1, clientID)

	assert.ErrorIs(t, err, ErrInternal)
	assert.ErrorIs(t, err, domain.ErrExternalCall)
	assert.False(t, errors.Is(err, ErrBookingNotFound))
}
