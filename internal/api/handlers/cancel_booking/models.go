package cancel_booking

import (
	"net/http"

	"github.com/m04kA/SMC-TrainerBooking/internal/api/handlers"
)

// CancelBookingRequest HTTP request model
// Тренер может отменить без причины и без тела запроса
type CancelBookingRequest struct {
	CancellationReason string `json:"cancellationReason"`
}

// decodeRequest читает тело, если оно есть
func decodeRequest(r *http.Request) (CancelBookingRequest, error) {
	var req CancelBookingRequest
	if r.ContentLength == 0 {
		return req, nil
	}
	err := handlers.DecodeJSON(r, &req)
	return req, err
}
