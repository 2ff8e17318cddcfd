package get_trainer_schedule

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-TrainerBooking/internal/api/handlers"
	getTrainerSchedule "github.com/m04kA/SMC-TrainerBooking/internal/usecase/get_trainer_schedule"
)

const (
	msgInvalidTrainerID = "некорректный ID тренера"
	msgInvalidDate      = "некорректный формат даты, ожидается YYYY-MM-DD"
)

type Handler struct {
	useCase GetTrainerScheduleUseCase
	loc     *time.Location
	logger  Logger
}

func NewHandler(useCase GetTrainerScheduleUseCase, loc *time.Location, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		loc:     loc,
		logger:  logger,
	}
}

// Handle GET /api/v1/trainers/{trainerId}/schedule
// Query params: date (YYYY-MM-DD, по умолчанию сегодня)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	trainerID, err := handlers.PathID(r, "trainerId")
	if err != nil {
		h.logger.Warn("GET /trainers/{id}/schedule - Invalid trainer ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTrainerID)
		return
	}

	date := time.Now().In(h.loc)
	if dateStr := r.URL.Query().Get("date"); dateStr != "" {
		date, err = handlers.ParseDate(dateStr, h.loc)
		if err != nil {
			h.logger.Warn("GET /trainers/{id}/schedule - Invalid date format: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
	}

	result, err := h.useCase.Execute(r.Context(), &getTrainerSchedule.Request{
		TrainerID: trainerID,
		Date:      date,
	})
	if err != nil {
		switch {
		case errors.Is(err, getTrainerSchedule.ErrInvalidInput):
			h.logger.Warn("GET /trainers/{id}/schedule - Invalid input: trainer_id=%d, error=%v", trainerID, err)
			handlers.RespondBadRequest(w, msgInvalidTrainerID)

		default:
			h.logger.Error("GET /trainers/{id}/schedule - Failed to get schedule: trainer_id=%d, error=%v", trainerID, err)
			handlers.RespondFailure(w, err)
		}
		return
	}

	h.logger.Info("GET /trainers/{id}/schedule - Schedule retrieved: trainer_id=%d, slots_count=%d", trainerID, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
