package create_booking

import (
	"time"

	"github.com/m04kA/SMC-TrainerBooking/internal/api/handlers"
	"github.com/m04kA/SMC-TrainerBooking/internal/domain"
	createBooking "github.com/m04kA/SMC-TrainerBooking/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	TrainerID       int64   `json:"trainerId"`
	ClientID        int64   `json:"clientId"`
	Datetime        string  `json:"datetime"`                  // "2025-10-15T10:00:00+03:00"
	DurationMinutes int     `json:"durationMinutes,omitempty"` // 0 = длительность занятия тренера
	Notes           *string `json:"notes,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID              int64     `json:"id"`
	TrainerID       int64     `json:"trainerId"`
	ClientID        int64     `json:"clientId"`
	Datetime        time.Time `json:"datetime"`
	Date            string    `json:"date"`
	StartTime       string    `json:"startTime"`
	DurationMinutes int       `json:"durationMinutes"`
	Status          string    `json:"status"`
	CreatedBy       string    `json:"createdBy"`
	Notes           *string   `json:"notes,omitempty"`
	CreatedAt       string    `json:"createdAt"`
	UpdatedAt       string    `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(actorID int64, loc *time.Location) (*createBooking.Request, error) {
	datetime, err := handlers.ParseDatetime(r.Datetime, loc)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		ActorID:         actorID,
		TrainerID:       r.TrainerID,
		ClientID:        r.ClientID,
		Datetime:        datetime,
		DurationMinutes: r.DurationMinutes,
		Notes:           r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response, loc *time.Location) *BookingResponse {
	local := resp.Datetime.In(loc)
	return &BookingResponse{
		ID:              resp.ID,
		TrainerID:       resp.TrainerID,
		ClientID:        resp.ClientID,
		Datetime:        resp.Datetime,
		Date:            local.Format(domain.DateFormat),
		StartTime:       local.Format(domain.TimeFormat),
		DurationMinutes: resp.DurationMinutes,
		Status:          string(resp.Status),
		CreatedBy:       string(resp.CreatedBy),
		Notes:           resp.Notes,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}
