package domain

import "time"

// Trainer настройки тренера, влияющие на расписание
type Trainer struct {
	ID                     int64
	Name                   string
	SessionDurationMinutes int
	CancellationHours      int
}

// SessionDuration длительность занятия по умолчанию
func (t *Trainer) SessionDuration() int {
	if t.SessionDurationMinutes <= 0 {
		return DefaultSessionDurationMinutes
	}
	return t.SessionDurationMinutes
}

// PenaltyWindow окно перед началом занятия, в котором отмена клиентом может быть платной
func (t *Trainer) PenaltyWindow() time.Duration {
	if t.CancellationHours <= 0 {
		return DefaultCancellationHours * time.Hour
	}
	return time.Duration(t.CancellationHours) * time.Hour
}
