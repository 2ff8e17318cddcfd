package trainerapi

import "time"

// ScheduleEntry запись недельного расписания
// Перерыв передается отдельной записью с IsBreak = true
type ScheduleEntry struct {
	DayOfWeek string `json:"day_of_week"` // "monday" ... "sunday"
	StartTime string `json:"start_time"`  // "HH:MM"
	EndTime   string `json:"end_time"`
	IsActive  bool   `json:"is_active"`
	IsBreak   bool   `json:"is_break"`
}

// ScheduleUpdateRequest полная перезапись расписания
type ScheduleUpdateRequest struct {
	Schedules []ScheduleEntry `json:"schedules"`
}

// Trainer профиль тренера
type Trainer struct {
	ID                int64  `json:"id"`
	TelegramID        string `json:"telegram_id"`
	Name              string `json:"name"`
	SessionDuration   *int   `json:"session_duration"`
	CancellationHours *int   `json:"cancellation_hours"`
}

// TrainerSettingsRequest изменение настроек тренера
type TrainerSettingsRequest struct {
	SessionDuration   *int `json:"session_duration,omitempty"`
	CancellationHours *int `json:"cancellation_hours,omitempty"`
}

// Booking бронирование в формате API
type Booking struct {
	ID                 int64      `json:"id"`
	TrainerTelegramID  string     `json:"trainer_telegram_id"`
	ClientTelegramID   string     `json:"client_telegram_id"`
	Datetime           time.Time  `json:"datetime"`
	Duration           int        `json:"duration"`
	Status             string     `json:"status"` // регистр не гарантирован
	Notes              *string    `json:"notes"`
	CancellationReason *string    `json:"cancellation_reason"`
	CancelledAt        *time.Time `json:"cancelled_at"`
	CreatedAt          time.Time  `json:"created_at"`
}

// CreateBookingRequest запрос на создание бронирования
type CreateBookingRequest struct {
	TrainerTelegramID string    `json:"trainer_telegram_id"`
	ClientTelegramID  string    `json:"client_telegram_id"`
	Datetime          time.Time `json:"datetime"`
	Duration          int       `json:"duration"`
	Notes             *string   `json:"notes,omitempty"`
	CreatedBy         string    `json:"created_by"`
}

// UpdateBookingRequest частичное изменение бронирования
type UpdateBookingRequest struct {
	Datetime           *time.Time `json:"datetime,omitempty"`
	Status             *string    `json:"status,omitempty"`
	CancellationReason *string    `json:"cancellation_reason,omitempty"`
}

// ErrorResponse модель ошибки API
type ErrorResponse struct {
	Detail string `json:"detail"`
}
