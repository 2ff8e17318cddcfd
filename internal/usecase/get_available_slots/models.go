package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-TrainerBooking/pkg/types"
)

// Request модель запроса на получение свободных слотов
type Request struct {
	TrainerID int64     // Telegram ID тренера
	Date      time.Time // Дата (время игнорируется)
}

// Response модель ответа со списком свободных слотов
type Response struct {
	Date            time.Time
	TrainerID       int64
	DurationMinutes int
	Slots           []Slot
}

// Slot свободный слот
type Slot struct {
	StartTime types.TimeString
	EndTime   types.TimeString
	StartsAt  time.Time
}
