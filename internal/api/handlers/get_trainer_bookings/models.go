package get_trainer_bookings

import (
	"fmt"
	"strconv"
	"time"

	"github.com/m04kA/SMC-TrainerBooking/internal/api/handlers"
	"github.com/m04kA/SMC-TrainerBooking/internal/service/bookings/models"
)

// Query query параметры запроса
type Query struct {
	Date            string // один день
	From            string // первый день периода
	To              string // последний день периода, включительно
	Status          string
	IncludeInactive string
}

// ToServiceRequest формирует запрос к сервису из query параметров
func ToServiceRequest(trainerID, userID int64, q Query, loc *time.Location) (*models.GetTrainerBookingsRequest, error) {
	req := &models.GetTrainerBookingsRequest{
		UserID:    userID,
		TrainerID: trainerID,
	}

	if q.Date != "" {
		if q.From != "" || q.To != "" {
			return nil, fmt.Errorf("date cannot be combined with from/to")
		}
		q.From, q.To = q.Date, q.Date
	}

	if q.From != "" {
		from, err := handlers.ParseDate(q.From, loc)
		if err != nil {
			return nil, fmt.Errorf("invalid from: %w", err)
		}
		req.From = &from
	}

	if q.To != "" {
		to, err := handlers.ParseDate(q.To, loc)
		if err != nil {
			return nil, fmt.Errorf("invalid to: %w", err)
		}
		// Сервис ожидает правую границу не включительно
		end := to.AddDate(0, 0, 1)
		req.To = &end
	}

	if q.Status != "" {
		req.Status = &q.Status
	}

	if q.IncludeInactive != "" {
		includeInactive, err := strconv.ParseBool(q.IncludeInactive)
		if err != nil {
			return nil, fmt.Errorf("invalid includeInactive value: %w", err)
		}
		req.IncludeInactive = includeInactive
	}

	return req, nil
}
