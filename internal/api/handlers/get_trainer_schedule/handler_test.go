package get_trainer_schedule

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TrainerBooking/internal/domain"
	getTrainerSchedule "github.com/m04kA/SMC-TrainerBooking/internal/usecase/get_trainer_schedule"
	"github.com/m04kA/SMC-TrainerBooking/pkg/logger"
)

type fakeUseCase struct {
	req  *getTrainerSchedule.Request
	resp *getTrainerSchedule.Response
}

func (f *fakeUseCase) Execute(_ context.Context, req *getTrainerSchedule.Request) (*getTrainerSchedule.Response, error) {
	f.req = req
	return f.resp, nil
}

func serve(h *Handler, target string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/trainers/{trainerId}/schedule", h.Handle).Methods(http.MethodGet)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHandle_BookedOverlay(t *testing.T) {
	bookingID := int64(55)
	uc := &fakeUseCase{resp: &getTrainerSchedule.Response{
		Date:            time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		TrainerID:       7,
		DurationMinutes: 60,
		IsWorkingDay:    true,
		Slots: []getTrainerSchedule.Slot{
			{StartTime: "09:00", EndTime: "10:00", Kind: domain.SlotAvailable},
			{StartTime: "10:00", EndTime: "11:00", Kind: domain.SlotBooked, BookingID: &bookingID},
		},
	}}

	rec := serve(NewHandler(uc, time.UTC, logger.NewNop()), "/trainers/7/schedule?date=2024-01-01")

	require.Equal(t, http.StatusOK, rec.Code)
	var resp ScheduleResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp.Slots, 2)
	assert.Equal(t, "booked", resp.Slots[1].Kind)
	assert.Equal(t, &bookingID, resp.Slots[1].BookingID)
	assert.Nil(t, resp.Slots[0].BookingID)
}

func TestHandle_DefaultsToToday(t *testing.T) {
	uc := &fakeUseCase{resp: &getTrainerSchedule.Response{}}

	rec := serve(NewHandler(uc, time.UTC, logger.NewNop()), "/trainers/7/schedule")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, time.Now().UTC().Format(domain.DateFormat), uc.req.Date.Format(domain.DateFormat))
}

func TestHandle_InvalidDate(t *testing.T) {
	rec := serve(NewHandler(&fakeUseCase{}, time.UTC, logger.NewNop()), "/trainers/7/schedule?date=tomorrow")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
