package update_booking_status

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TrainerBooking/internal/api/handlers"
	"github.com/m04kA/SMC-TrainerBooking/internal/api/middleware"
	"github.com/m04kA/SMC-TrainerBooking/internal/domain"
	"github.com/m04kA/SMC-TrainerBooking/internal/schedule"
	"github.com/m04kA/SMC-TrainerBooking/internal/service/bookings"
	"github.com/m04kA/SMC-TrainerBooking/internal/service/bookings/models"
	"github.com/m04kA/SMC-TrainerBooking/pkg/logger"
)

type fakeService struct {
	bookingID int64
	req       *models.UpdateStatusRequest
	err       error
}

func (f *fakeService) UpdateStatus(_ context.Context, bookingID int64, req *models.UpdateStatusRequest) (*models.BookingResponse, error) {
	f.bookingID = bookingID
	f.req = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.BookingResponse{ID: bookingID, Status: strings.ToLower(req.Status)}, nil
}

func patch(svc *fakeService, target, body string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.Use(middleware.Auth)
	r.HandleFunc("/bookings/{bookingId}/status", NewHandler(svc, logger.NewNop()).Handle).Methods(http.MethodPatch)

	req := httptest.NewRequest(http.MethodPatch, target, strings.NewReader(body))
	req.Header.Set(middleware.UserIDHeader, "100")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandle_Confirm(t *testing.T) {
	svc := &fakeService{}

	rec := patch(svc, "/bookings/7/status", `{"status":"CONFIRMED"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(7), svc.bookingID)
	assert.Equal(t, int64(100), svc.req.UserID)
	assert.Equal(t, "CONFIRMED", svc.req.Status)

	var resp models.BookingResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "confirmed", resp.Status)
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		body       string
		err        error
		wantStatus int
		wantReason string
	}{
		{
			name:       "invalid transition",
			target:     "/bookings/7/status",
			body:       `{"status":"completed"}`,
			err:        &schedule.ValidationError{Reason: schedule.ReasonInvalidTransition},
			wantStatus: http.StatusConflict,
			wantReason: "INVALID_TRANSITION",
		},
		{
			name:       "not a participant",
			target:     "/bookings/7/status",
			body:       `{"status":"confirmed"}`,
			err:        bookings.ErrAccessDenied,
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "unknown status",
			target:     "/bookings/7/status",
			body:       `{"status":"done"}`,
			err:        fmt.Errorf("%w: invalid status", bookings.ErrInvalidInput),
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "not found",
			target:     "/bookings/7/status",
			body:       `{"status":"confirmed"}`,
			err:        bookings.ErrBookingNotFound,
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "backend unavailable",
			target:     "/bookings/7/status",
			body:       `{"status":"confirmed"}`,
			err:        fmt.Errorf("%w: %w", bookings.ErrInternal, domain.ErrExternalCall),
			wantStatus: http.StatusBadGateway,
		},
		{
			name:       "bad id",
			target:     "/bookings/abc/status",
			body:       `{"status":"confirmed"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "unknown field",
			target:     "/bookings/7/status",
			body:       `{"state":"confirmed"}`,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := patch(&fakeService{err: tt.err}, tt.target, tt.body)

			require.Equal(t, tt.wantStatus, rec.Code)
			var resp handlers.ErrorResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
			assert.NotEmpty(t, resp.Error)
			assert.Equal(t, tt.wantReason, resp.Reason)
		})
	}
}

func TestHandle_RequiresUser(t *testing.T) {
	r := mux.NewRouter()
	r.Use(middleware.Auth)
	r.HandleFunc("/bookings/{bookingId}/status", NewHandler(&fakeService{}, logger.NewNop()).Handle)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, "/bookings/7/status", strings.NewReader(`{"status":"confirmed"}`)))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
