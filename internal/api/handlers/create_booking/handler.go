package create_booking

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-TrainerBooking/internal/api/handlers"
	"github.com/m04kA/SMC-TrainerBooking/internal/api/middleware"
	createBooking "github.com/m04kA/SMC-TrainerBooking/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDatetime    = "некорректный формат времени занятия, ожидается RFC 3339"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidData        = "некорректные данные бронирования"
	msgForbidden          = "записывать может только тренер или сам клиент"
)

type Handler struct {
	useCase BookingCreator
	loc     *time.Location
	logger  Logger
}

func NewHandler(useCase BookingCreator, loc *time.Location, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		loc:     loc,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(userID, h.loc)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse datetime: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDatetime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		var slotTaken *createBooking.SlotTakenError
		switch {
		case errors.As(err, &slotTaken):
			h.logger.Warn("POST /bookings - Slot taken: trainer_id=%d, datetime=%s, alternatives=%d",
				req.TrainerID, req.Datetime, len(slotTaken.Alternatives))
			handlers.RespondSlotTaken(w, handlers.FromDomainSlots(slotTaken.Alternatives, h.loc))

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid data: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidData)

		case errors.Is(err, createBooking.ErrForbidden):
			h.logger.Warn("POST /bookings - Forbidden: user_id=%d, trainer_id=%d, client_id=%d", userID, req.TrainerID, req.ClientID)
			handlers.RespondForbidden(w, msgForbidden)

		case handlers.RespondRejection(w, err):
			h.logger.Warn("POST /bookings - Rejected: trainer_id=%d, datetime=%s, error=%v", req.TrainerID, req.Datetime, err)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: user_id=%d, trainer_id=%d, error=%v",
				userID, req.TrainerID, err)
			handlers.RespondFailure(w, err)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, trainer_id=%d, client_id=%d",
		result.ID, result.TrainerID, result.ClientID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result, h.loc))
}
