package trainerapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TrainerBooking/internal/domain"
	"github.com/m04kA/SMC-TrainerBooking/pkg/logger"
	"github.com/m04kA/SMC-TrainerBooking/pkg/metrics"
	"github.com/m04kA/SMC-TrainerBooking/pkg/types"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *metrics.Metrics) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	m := metrics.NewWithRegistry("test", prometheus.NewRegistry())
	return NewClient(srv.URL+"/", 2*time.Second, domain.DefaultBreak, m, logger.NewNop()), m
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestGetWeeklySchedule_MergesBreakEntries(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/slots/trainer/42/schedule", r.URL.Path)
		writeJSON(w, http.StatusOK, []ScheduleEntry{
			{DayOfWeek: "monday", StartTime: "09:00", EndTime: "20:00", IsActive: true},
			{DayOfWeek: "monday", StartTime: "12:00", EndTime: "13:00", IsActive: true, IsBreak: true},
			{DayOfWeek: "Sunday", StartTime: "00:00", EndTime: "00:00", IsActive: false},
		})
	})

	entries, err := client.GetWeeklySchedule(context.Background(), 42)

	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, domain.Monday, entries[0].DayOfWeek)
	assert.True(t, entries[0].HasBreak)
	assert.Equal(t, types.TimeString("12:00"), entries[0].Break.Start)
	assert.Equal(t, domain.Sunday, entries[1].DayOfWeek)
	assert.False(t, entries[1].IsActive)
}

func TestGetWeeklySchedule_InvalidDay(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []ScheduleEntry{{DayOfWeek: "1", StartTime: "09:00", EndTime: "10:00", IsActive: true}})
	})

	_, err := client.GetWeeklySchedule(context.Background(), 42)

	assert.ErrorIs(t, err, domain.ErrExternalCall)
}

func TestGetWeeklySchedule_NotFoundIsEmpty(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, ErrorResponse{Detail: "Trainer not found"})
	})

	entries, err := client.GetWeeklySchedule(context.Background(), 42)

	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestReplaceWeeklySchedule_SendsBreakAsSeparateEntry(t *testing.T) {
	var got ScheduleUpdateRequest
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		writeJSON(w, http.StatusOK, map[string]string{"message": "ok"})
	})

	err := client.ReplaceWeeklySchedule(context.Background(), 42, []domain.WorkingHoursTemplate{
		{DayOfWeek: domain.Tuesday, IsActive: true, StartTime: "09:00", EndTime: "18:00", HasBreak: true},
		{DayOfWeek: domain.Wednesday},
	})

	require.NoError(t, err)
	assert.Equal(t, []ScheduleEntry{
		{DayOfWeek: "tuesday", StartTime: "09:00", EndTime: "18:00", IsActive: true},
		{DayOfWeek: "tuesday", StartTime: "12:00", EndTime: "13:00", IsActive: true, IsBreak: true},
		{DayOfWeek: "wednesday", StartTime: "00:00", EndTime: "00:00", IsActive: false},
	}, got.Schedules)
}

func TestCreate_SlotAlreadyBooked(t *testing.T) {
	client, m := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Detail: "Time slot already booked"})
	})

	_, err := client.Create(context.Background(), &domain.Booking{
		TrainerID:       1,
		ClientID:        2,
		Datetime:        time.Date(2024, 1, 1, 14, 0, 0, 0, time.UTC),
		DurationMinutes: 60,
		CreatedBy:       domain.RoleClient,
	})

	assert.ErrorIs(t, err, domain.ErrSlotTaken)
	assert.NotErrorIs(t, err, domain.ErrExternalCall)
	assert.Equal(t, float64(1), testutil.ToFloat64(m.ExternalCalls.WithLabelValues("create_booking", "ok")))
}

func TestCreate_Success(t *testing.T) {
	at := time.Date(2024, 1, 1, 14, 0, 0, 0, time.UTC)
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var req CreateBookingRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "1", req.TrainerTelegramID)
		assert.Equal(t, "client", req.CreatedBy)

		writeJSON(w, http.StatusOK, Booking{
			ID:                10,
			TrainerTelegramID: "1",
			ClientTelegramID:  "2",
			Datetime:          at,
			Duration:          60,
			Status:            "PENDING",
		})
	})

	b, err := client.Create(context.Background(), &domain.Booking{
		TrainerID: 1, ClientID: 2, Datetime: at, DurationMinutes: 60, CreatedBy: domain.RoleClient,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(10), b.ID)
	assert.Equal(t, domain.StatusPending, b.Status)
	assert.Equal(t, domain.RoleClient, b.CreatedBy)
}

func TestGetByID_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		wantErr error
	}{
		{name: "not found", status: http.StatusNotFound, wantErr: domain.ErrBookingNotFound},
		{name: "server error", status: http.StatusInternalServerError, wantErr: domain.ErrExternalCall},
		{name: "forbidden", status: http.StatusForbidden, wantErr: ErrForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, tt.status, ErrorResponse{Detail: "boom"})
			})

			_, err := client.GetByID(context.Background(), 1)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestGetByID_MalformedBody(t *testing.T) {
	client, m := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("{not json"))
	})

	_, err := client.GetByID(context.Background(), 1)

	assert.ErrorIs(t, err, domain.ErrExternalCall)
	assert.Equal(t, float64(1), testutil.ToFloat64(m.ExternalCalls.WithLabelValues("get_booking", "error")))
}

func TestListByTrainer_FiltersInactive(t *testing.T) {
	day := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/bookings/trainer/1", r.URL.Path)
		assert.NotEmpty(t, r.URL.Query().Get("from_date"))
		writeJSON(w, http.StatusOK, []Booking{
			{ID: 1, TrainerTelegramID: "1", ClientTelegramID: "2", Datetime: day.Add(10 * time.Hour), Duration: 60, Status: "Confirmed"},
			{ID: 2, TrainerTelegramID: "1", ClientTelegramID: "3", Datetime: day.Add(11 * time.Hour), Duration: 60, Status: "cancelled"},
			{ID: 3, TrainerTelegramID: "1", ClientTelegramID: "4", Datetime: day.Add(12 * time.Hour), Duration: 60, Status: "no_show"},
			{ID: 4, TrainerTelegramID: "1", ClientTelegramID: "5", Datetime: day.Add(30 * time.Hour), Duration: 60, Status: "pending"},
		})
	})

	to := day.AddDate(0, 0, 1)
	bookings, err := client.ListByTrainer(context.Background(), domain.TrainerBookingsFilter{
		TrainerID: 1,
		From:      &day,
		To:        &to,
	})

	require.NoError(t, err)
	require.Len(t, bookings, 1)
	assert.Equal(t, int64(1), bookings[0].ID)
	assert.Equal(t, domain.StatusConfirmed, bookings[0].Status)
}

func TestCancel_UsesStatusUpdate(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/bookings/5", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("telegram_id"))

		var req UpdateBookingRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.NotNil(t, req.Status)
		assert.Equal(t, "cancelled", *req.Status)
		require.NotNil(t, req.CancellationReason)
		assert.Equal(t, "болею", *req.CancellationReason)

		writeJSON(w, http.StatusOK, Booking{
			ID: 5, TrainerTelegramID: "1", ClientTelegramID: "2", Duration: 60, Status: "cancelled",
			CancellationReason: req.CancellationReason,
		})
	})

	b, err := client.Cancel(context.Background(), 5, domain.Cancellation{
		ActorID: 2, ActorRole: domain.RoleClient, Reason: "  болею ",
	})

	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, b.Status)
}

func TestGetTrainer(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		duration := 90
		writeJSON(w, http.StatusOK, Trainer{ID: 3, TelegramID: "42", Name: "Анна", SessionDuration: &duration})
	})

	tr, err := client.GetTrainer(context.Background(), 42)

	require.NoError(t, err)
	assert.Equal(t, int64(42), tr.ID)
	assert.Equal(t, 90, tr.SessionDuration())
	assert.Equal(t, 24*time.Hour, tr.PenaltyWindow())
}

func TestNetworkFailure(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", 200*time.Millisecond, domain.DefaultBreak, nil, logger.NewNop())

	_, err := client.GetTrainer(context.Background(), 1)

	assert.ErrorIs(t, err, domain.ErrExternalCall)
}
