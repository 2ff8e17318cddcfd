package get_trainer_schedule

import (
	"time"

	"github.com/m04kA/SMC-TrainerBooking/internal/domain"
	"github.com/m04kA/SMC-TrainerBooking/pkg/types"
)

type Request struct {
	TrainerID int64
	Date      time.Time
}

// Response расписание тренера на день
type Response struct {
	Date            time.Time
	TrainerID       int64
	DurationMinutes int
	IsWorkingDay    bool
	Slots           []Slot
}

// Slot слот расписания с отметкой занятости
type Slot struct {
	StartTime     types.TimeString
	EndTime       types.TimeString
	Kind          domain.SlotKind
	BookingID     *int64
	OutOfTemplate bool // Бронирование вне рабочих часов
}
