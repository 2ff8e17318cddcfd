package get_trainer_schedule

import (
	"github.com/m04kA/SMC-TrainerBooking/internal/domain"
	getTrainerSchedule "github.com/m04kA/SMC-TrainerBooking/internal/usecase/get_trainer_schedule"
)

// ScheduleResponse расписание тренера на день
type ScheduleResponse struct {
	Date            string         `json:"date"`
	TrainerID       int64          `json:"trainerId"`
	DurationMinutes int            `json:"durationMinutes"`
	IsWorkingDay    bool           `json:"isWorkingDay"`
	Slots           []ScheduleSlot `json:"slots"`
}

type ScheduleSlot struct {
	StartTime     string `json:"startTime"`
	EndTime       string `json:"endTime"`
	Kind          string `json:"kind"` // available | booked | past
	BookingID     *int64 `json:"bookingId,omitempty"`
	OutOfTemplate bool   `json:"outOfTemplate,omitempty"`
}

func FromUseCaseResponse(resp *getTrainerSchedule.Response) *ScheduleResponse {
	slots := make([]ScheduleSlot, len(resp.Slots))
	for i, s := range resp.Slots {
		slots[i] = ScheduleSlot{
			StartTime:     s.StartTime.String(),
			EndTime:       s.EndTime.String(),
			Kind:          string(s.Kind),
			BookingID:     s.BookingID,
			OutOfTemplate: s.OutOfTemplate,
		}
	}

	return &ScheduleResponse{
		Date:            resp.Date.Format(domain.DateFormat),
		TrainerID:       resp.TrainerID,
		DurationMinutes: resp.DurationMinutes,
		IsWorkingDay:    resp.IsWorkingDay,
		Slots:           slots,
	}
}
