package save_working_hours

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-TrainerBooking/internal/api/handlers"
	"github.com/m04kA/SMC-TrainerBooking/internal/api/middleware"
	"github.com/m04kA/SMC-TrainerBooking/internal/service/workinghours"
)

const (
	msgInvalidTrainerID   = "некорректный ID тренера"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgForbidden          = "изменять расписание может только сам тренер"
	msgInvalidData        = "некорректные рабочие часы: проверьте время начала, окончания и перерыва"
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

// Handle PUT /api/v1/trainers/{trainerId}/working-hours
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	trainerID, err := handlers.PathID(r, "trainerId")
	if err != nil {
		h.logger.Warn("PUT /trainers/{id}/working-hours - Invalid trainer ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTrainerID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /trainers/{id}/working-hours - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req SaveWorkingHoursRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /trainers/{id}/working-hours - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Save(r.Context(), req.ToServiceRequest(userID, trainerID))
	if err != nil {
		switch {
		case errors.Is(err, workinghours.ErrAccessDenied):
			h.logger.Warn("PUT /trainers/{id}/working-hours - Access denied: trainer_id=%d, user_id=%d", trainerID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, workinghours.ErrInvalidInput):
			h.logger.Warn("PUT /trainers/{id}/working-hours - Invalid data: trainer_id=%d, error=%v", trainerID, err)
			handlers.RespondBadRequest(w, msgInvalidData)

		default:
			h.logger.Error("PUT /trainers/{id}/working-hours - Failed to save: trainer_id=%d, error=%v", trainerID, err)
			handlers.RespondFailure(w, err)
		}
		return
	}

	h.logger.Info("PUT /trainers/{id}/working-hours - Working hours saved: trainer_id=%d", trainerID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
