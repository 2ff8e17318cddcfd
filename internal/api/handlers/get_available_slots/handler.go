package get_available_slots

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-TrainerBooking/internal/api/handlers"
	getAvailableSlots "github.com/m04kA/SMC-TrainerBooking/internal/usecase/get_available_slots"
)

const (
	msgInvalidTrainerID = "некорректный ID тренера"
	msgMissingDate      = "дата обязательна"
	msgInvalidDate      = "некорректный формат даты, ожидается YYYY-MM-DD"
)

type Handler struct {
	useCase SlotFinder
	loc     *time.Location
	logger  Logger
}

func NewHandler(useCase SlotFinder, loc *time.Location, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		loc:     loc,
		logger:  logger,
	}
}

// Handle GET /api/v1/trainers/{trainerId}/available-slots
// Query params: date (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	trainerID, err := handlers.PathID(r, "trainerId")
	if err != nil {
		h.logger.Warn("GET /trainers/{id}/available-slots - Invalid trainer ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTrainerID)
		return
	}

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /trainers/{id}/available-slots - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	date, err := handlers.ParseDate(dateStr, h.loc)
	if err != nil {
		h.logger.Warn("GET /trainers/{id}/available-slots - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getAvailableSlots.Request{
		TrainerID: trainerID,
		Date:      date,
	})
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /trainers/{id}/available-slots - Invalid input: trainer_id=%d, error=%v", trainerID, err)
			handlers.RespondBadRequest(w, msgInvalidTrainerID)

		default:
			h.logger.Error("GET /trainers/{id}/available-slots - Failed to get slots: trainer_id=%d, error=%v", trainerID, err)
			handlers.RespondFailure(w, err)
		}
		return
	}

	h.logger.Info("GET /trainers/{id}/available-slots - Slots retrieved successfully: trainer_id=%d, date=%s, slots_count=%d",
		trainerID, dateStr, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
