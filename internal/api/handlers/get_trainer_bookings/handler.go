package get_trainer_bookings

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-TrainerBooking/internal/api/handlers"
	"github.com/m04kA/SMC-TrainerBooking/internal/api/middleware"
	"github.com/m04kA/SMC-TrainerBooking/internal/service/bookings"
)

const (
	msgInvalidTrainerID = "некорректный ID тренера"
	msgMissingUserID    = "отсутствует ID пользователя"
	msgInvalidParams    = "некорректные параметры запроса"
	msgForbidden        = "доступ запрещен"
)

type Handler struct {
	service BookingService
	loc     *time.Location
	logger  Logger
}

func NewHandler(service BookingService, loc *time.Location, logger Logger) *Handler {
	return &Handler{
		service: service,
		loc:     loc,
		logger:  logger,
	}
}

// Handle GET /api/v1/trainers/{trainerId}/bookings
// Query params: date | from, to (YYYY-MM-DD), status, includeInactive (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	trainerID, err := handlers.PathID(r, "trainerId")
	if err != nil {
		h.logger.Warn("GET /trainers/{id}/bookings - Invalid trainer ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTrainerID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /trainers/{id}/bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	query := r.URL.Query()
	serviceReq, err := ToServiceRequest(trainerID, userID, Query{
		Date:            query.Get("date"),
		From:            query.Get("from"),
		To:              query.Get("to"),
		Status:          query.Get("status"),
		IncludeInactive: query.Get("includeInactive"),
	}, h.loc)
	if err != nil {
		h.logger.Warn("GET /trainers/{id}/bookings - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	// Сервис сам проверит, что запрашивает сам тренер
	result, err := h.service.GetTrainerBookings(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("GET /trainers/{id}/bookings - Access denied: trainer_id=%d, user_id=%d",
				trainerID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, bookings.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /trainers/{id}/bookings - Failed to get bookings: trainer_id=%d, error=%v",
				trainerID, err)
			handlers.RespondFailure(w, err)
		}
		return
	}

	h.logger.Info("GET /trainers/{id}/bookings - Bookings retrieved successfully: trainer_id=%d, count=%d",
		trainerID, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result.Bookings)
}
