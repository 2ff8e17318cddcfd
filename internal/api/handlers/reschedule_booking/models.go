package reschedule_booking

import (
	"time"

	"github.com/m04kA/SMC-TrainerBooking/internal/domain"
	rescheduleBooking "github.com/m04kA/SMC-TrainerBooking/internal/usecase/reschedule_booking"
)

// RescheduleRequest HTTP request model
type RescheduleRequest struct {
	Datetime string `json:"datetime"` // новое время начала, RFC 3339
}

// RescheduleResponse HTTP response model
type RescheduleResponse struct {
	ID               int64     `json:"id"`
	TrainerID        int64     `json:"trainerId"`
	ClientID         int64     `json:"clientId"`
	Datetime         time.Time `json:"datetime"`
	Date             string    `json:"date"`
	StartTime        string    `json:"startTime"`
	PreviousDatetime time.Time `json:"previousDatetime"`
	DurationMinutes  int       `json:"durationMinutes"`
	Status           string    `json:"status"`
	Notes            *string   `json:"notes,omitempty"`
	UpdatedAt        string    `json:"updatedAt"`
}

func FromUseCaseResponse(resp *rescheduleBooking.Response, loc *time.Location) *RescheduleResponse {
	local := resp.Datetime.In(loc)
	return &RescheduleResponse{
		ID:               resp.ID,
		TrainerID:        resp.TrainerID,
		ClientID:         resp.ClientID,
		Datetime:         resp.Datetime,
		Date:             local.Format(domain.DateFormat),
		StartTime:        local.Format(domain.TimeFormat),
		PreviousDatetime: resp.PreviousDatetime,
		DurationMinutes:  resp.DurationMinutes,
		Status:           string(resp.Status),
		Notes:            resp.Notes,
		UpdatedAt:        resp.UpdatedAt.Format(time.RFC3339),
	}
}
