package get_working_hours

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-TrainerBooking/internal/api/handlers"
	"github.com/m04kA/SMC-TrainerBooking/internal/service/workinghours"
)

const (
	msgInvalidTrainerID = "некорректный ID тренера"
)

type Handler struct {
	service WorkingHoursService
	logger  Logger
}

func NewHandler(service WorkingHoursService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/trainers/{trainerId}/working-hours
// Публичный endpoint - без авторизации
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	trainerID, err := handlers.PathID(r, "trainerId")
	if err != nil {
		h.logger.Warn("GET /trainers/{id}/working-hours - Invalid trainer ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTrainerID)
		return
	}

	// Тренер без настроек получает значения по умолчанию
	result, err := h.service.Get(r.Context(), trainerID)
	if err != nil {
		if errors.Is(err, workinghours.ErrInvalidInput) {
			handlers.RespondBadRequest(w, msgInvalidTrainerID)
			return
		}
		h.logger.Error("GET /trainers/{id}/working-hours - Failed to get working hours: trainer_id=%d, error=%v",
			trainerID, err)
		handlers.RespondFailure(w, err)
		return
	}

	h.logger.Info("GET /trainers/{id}/working-hours - Working hours retrieved: trainer_id=%d", trainerID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
