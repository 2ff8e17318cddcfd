package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-TrainerBooking/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-TrainerBooking/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date            string          `json:"date"`
	TrainerID       int64           `json:"trainerId"`
	DurationMinutes int             `json:"durationMinutes"`
	Slots           []AvailableSlot `json:"slots"`
}

// AvailableSlot модель свободного слота
type AvailableSlot struct {
	StartTime string    `json:"startTime"`
	EndTime   string    `json:"endTime"`
	StartsAt  time.Time `json:"startsAt"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]AvailableSlot, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = AvailableSlot{
			StartTime: slot.StartTime.String(),
			EndTime:   slot.EndTime.String(),
			StartsAt:  slot.StartsAt,
		}
	}

	return &AvailableSlotsResponse{
		Date:            resp.Date.Format(domain.DateFormat),
		TrainerID:       resp.TrainerID,
		DurationMinutes: resp.DurationMinutes,
		Slots:           slots,
	}
}
