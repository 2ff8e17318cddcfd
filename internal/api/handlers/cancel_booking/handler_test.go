package cancel_booking

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TrainerBooking/internal/api/handlers"
	"github.com/m04kA/SMC-TrainerBooking/internal/api/middleware"
	"github.com/m04kA/SMC-TrainerBooking/internal/schedule"
	"github.com/m04kA/SMC-TrainerBooking/internal/service/bookings"
	"github.com/m04kA/SMC-TrainerBooking/internal/service/bookings/models"
	"github.com/m04kA/SMC-TrainerBooking/pkg/logger"
)

type fakeService struct {
	bookingID int64
	req       *models.CancelBookingRequest
	resp      *models.CancelBookingResponse
	err       error
}

func (f *fakeService) Cancel(_ context.Context, bookingID int64, req *models.CancelBookingRequest) (*models.CancelBookingResponse, error) {
	f.bookingID = bookingID
	f.req = req
	return f.resp, f.err
}

func patch(svc *fakeService, target, body string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.Use(middleware.Auth)
	r.HandleFunc("/bookings/{bookingId}/cancel", NewHandler(svc, logger.NewNop()).Handle).Methods(http.MethodPatch)

	req := httptest.NewRequest(http.MethodPatch, target, strings.NewReader(body))
	req.Header.Set(middleware.UserIDHeader, "200")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandle_PenaltyFlag(t *testing.T) {
	svc := &fakeService{resp: &models.CancelBookingResponse{
		Booking:             models.BookingResponse{ID: 5, Status: "cancelled"},
		WithinPenaltyWindow: true,
	}}

	rec := patch(svc, "/bookings/5/cancel", `{"cancellationReason":"заболел"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(5), svc.bookingID)
	assert.Equal(t, int64(200), svc.req.UserID)
	assert.Equal(t, "заболел", svc.req.CancellationReason)

	var resp models.CancelBookingResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.True(t, resp.WithinPenaltyWindow)
}

func TestHandle_MissingReason(t *testing.T) {
	svc := &fakeService{err: &schedule.ValidationError{Reason: schedule.ReasonMissingReason}}

	rec := patch(svc, "/bookings/5/cancel", `{}`)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	var resp handlers.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "MISSING_REASON", resp.Reason)
	assert.Equal(t, "укажите причину отмены", resp.Error)
	assert.Equal(t, "", svc.req.CancellationReason)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name   string
		target string
		err    error
		status int
	}{
		{name: "bad id", target: "/bookings/x/cancel", status: http.StatusBadRequest},
		{name: "not found", target: "/bookings/5/cancel", err: bookings.ErrBookingNotFound, status: http.StatusNotFound},
		{name: "not participant", target: "/bookings/5/cancel", err: bookings.ErrAccessDenied, status: http.StatusForbidden},
		{name: "already cancelled", target: "/bookings/5/cancel", err: &schedule.ValidationError{Reason: schedule.ReasonInvalidTransition}, status: http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := patch(&fakeService{err: tt.err}, tt.target, `{}`)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestHandle_EmptyBody(t *testing.T) {
	svc := &fakeService{resp: &models.CancelBookingResponse{Booking: models.BookingResponse{ID: 5}}}

	rec := patch(svc, "/bookings/5/cancel", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "", svc.req.CancellationReason)
}
