package get_available_slots

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TrainerBooking/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-TrainerBooking/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-TrainerBooking/pkg/logger"
)

type fakeUseCase struct {
	req  *getAvailableSlots.Request
	resp *getAvailableSlots.Response
	err  error
}

func (f *fakeUseCase) Execute(_ context.Context, req *getAvailableSlots.Request) (*getAvailableSlots.Response, error) {
	f.req = req
	return f.resp, f.err
}

func serve(h *Handler, target string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/trainers/{trainerId}/available-slots", h.Handle).Methods(http.MethodGet)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHandle_Success(t *testing.T) {
	date := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	uc := &fakeUseCase{resp: &getAvailableSlots.Response{
		Date:            date,
		TrainerID:       7,
		DurationMinutes: 60,
		Slots: []getAvailableSlots.Slot{
			{StartTime: "09:00", EndTime: "10:00", StartsAt: date.Add(9 * time.Hour)},
		},
	}}
	h := NewHandler(uc, time.UTC, logger.NewNop())

	rec := serve(h, "/trainers/7/available-slots?date=2024-01-01")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(7), uc.req.TrainerID)
	assert.True(t, uc.req.Date.Equal(date))

	var resp AvailableSlotsResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "2024-01-01", resp.Date)
	require.Len(t, resp.Slots, 1)
	assert.Equal(t, "09:00", resp.Slots[0].StartTime)
	assert.Equal(t, "10:00", resp.Slots[0].EndTime)
}

func TestHandle_BadRequests(t *testing.T) {
	h := NewHandler(&fakeUseCase{}, time.UTC, logger.NewNop())

	for _, target := range []string{
		"/trainers/abc/available-slots?date=2024-01-01",
		"/trainers/7/available-slots",
		"/trainers/7/available-slots?date=01.01.2024",
	} {
		rec := serve(h, target)
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
	}
}

func TestHandle_ExternalFailure(t *testing.T) {
	uc := &fakeUseCase{err: fmt.Errorf("%w: %w", getAvailableSlots.ErrInternal, domain.ErrExternalCall)}
	h := NewHandler(uc, time.UTC, logger.NewNop())

	rec := serve(h, "/trainers/7/available-slots?date=2024-01-01")

	assert.Equal(t, http.StatusBadGateway, rec.Code)
}
