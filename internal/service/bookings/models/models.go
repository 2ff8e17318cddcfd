package models

import (
	"time"

	"github.com/m04kA/SMC-TrainerBooking/internal/domain"
)

// Request модели

// CancelBookingRequest запрос на отмену бронирования
type CancelBookingRequest struct {
	UserID             int64  `json:"userId"`
	CancellationReason string `json:"cancellationReason"`
}

// UpdateStatusRequest запрос на подтверждение или завершение занятия
type UpdateStatusRequest struct {
	UserID int64  `json:"userId"`
	Status string `json:"status"`
}

// GetTrainerBookingsRequest запрос бронирований тренера
type GetTrainerBookingsRequest struct {
	UserID          int64      `json:"userId"`
	TrainerID       int64      `json:"trainerId"`
	From            *time.Time `json:"from,omitempty"`
	To              *time.Time `json:"to,omitempty"` // не включительно
	Status          *string    `json:"status,omitempty"`
	IncludeInactive bool       `json:"includeInactive,omitempty"`
}

// GetClientBookingsRequest запрос бронирований клиента
type GetClientBookingsRequest struct {
	UserID   int64   `json:"userId"`
	ClientID int64   `json:"clientId"`
	Status   *string `json:"status,omitempty"`
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID              int64     `json:"id"`
	TrainerID       int64     `json:"trainerId"`
	ClientID        int64     `json:"clientId"`
	Datetime        time.Time `json:"datetime"`
	Date            string    `json:"date"`      // "2025-10-15"
	StartTime       string    `json:"startTime"` // "10:00"
	DurationMinutes int       `json:"durationMinutes"`
	Status          string    `json:"status"`
	CreatedBy       string    `json:"createdBy,omitempty"`
	Notes           *string   `json:"notes,omitempty"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledBy        *string `json:"cancelledBy,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// CancelBookingResponse результат отмены
type CancelBookingResponse struct {
	Booking BookingResponse `json:"booking"`
	// WithinPenaltyWindow клиент отменил позже, чем за cancellation_hours до начала
	WithinPenaltyWindow bool `json:"withinPenaltyWindow"`
}

// FromDomainBooking конвертирует domain модель в DTO. Дата и время начала берутся в loc
func FromDomainBooking(b *domain.Booking, loc *time.Location) *BookingResponse {
	if b == nil {
		return nil
	}
	if loc == nil {
		loc = time.Local
	}

	start := b.Datetime.In(loc)
	resp := &BookingResponse{
		ID:                 b.ID,
		TrainerID:          b.TrainerID,
		ClientID:           b.ClientID,
		Datetime:           start,
		Date:               start.Format(domain.DateFormat),
		StartTime:          start.Format(domain.TimeFormat),
		DurationMinutes:    b.DurationMinutes,
		Status:             string(b.Status),
		CreatedBy:          string(b.CreatedBy),
		Notes:              b.Notes,
		CancellationReason: b.CancellationReason,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}

	if b.CancelledBy != nil {
		role := string(*b.CancelledBy)
		resp.CancelledBy = &role
	}
	if b.CancelledAt != nil {
		cancelledStr := b.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking, loc *time.Location) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking, loc); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}

// ParseStatusFilter разбирает необязательный фильтр по статусу
func ParseStatusFilter(status *string) (*domain.BookingStatus, error) {
	if status == nil || *status == "" {
		return nil, nil
	}
	s, err := domain.ParseBookingStatus(*status)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
