package schedule

import (
	"time"

	"github.com/m04kA/SMC-TrainerBooking/internal/domain"
	"github.com/m04kA/SMC-TrainerBooking/pkg/types"
)

// Generate разбивает рабочий интервал [start, end) на слоты длительностью durationMinutes
//
// Слоты идут подряд с шагом в длительность, пока current + duration <= end.
// Хвост короче длительности отбрасывается.
// Если слот пересекает перерыв, он отбрасывается и генерация продолжается с конца перерыва.
// Для пустого интервала или неположительной длительности возвращается пустой список.
func Generate(date time.Time, start, end types.TimeString, durationMinutes int, brk *domain.BreakWindow) []domain.Slot {
	slots := make([]domain.Slot, 0)

	startMin, endMin := start.Minutes(), end.Minutes()
	if durationMinutes <= 0 || startMin < 0 || endMin < 0 || endMin-startMin < durationMinutes {
		return slots
	}

	// Некорректный перерыв игнорируется
	if brk != nil && brk.Validate() != nil {
		brk = nil
	}

	day := dayStart(date)
	current := startMin
	for current+durationMinutes <= endMin {
		slotEnd := current + durationMinutes

		if brk != nil && brk.Overlaps(current, slotEnd) {
			current = brk.End.Minutes()
			continue
		}

		slots = append(slots, domain.Slot{
			Date:      day,
			StartTime: minutesToTime(current),
			EndTime:   minutesToTime(slotEnd),
			Kind:      domain.SlotAvailable,
		})
		current = slotEnd
	}

	return slots
}

// minutesToTime вызывается только для значений в пределах суток
func minutesToTime(minutes int) types.TimeString {
	t, err := types.NewTimeStringFromMinutes(minutes)
	if err != nil {
		return ""
	}
	return t
}

// dayStart возвращает полночь дня date в его локации
func dayStart(date time.Time) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, date.Location())
}
