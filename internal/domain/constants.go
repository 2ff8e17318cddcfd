package domain

// Значения по умолчанию
const (
	DefaultSessionDurationMinutes = 60
	DefaultCancellationHours      = 24
)

// Ограничения для валидации входных данных
const (
	MinSessionDurationMinutes   = 15
	MaxSessionDurationMinutes   = 480 // 8 часов
	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
)

// Форматы времени
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ActiveStatuses статусы, участвующие в проверке пересечений
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
}

// InactiveStatuses статусы, которые хранятся только для истории
var InactiveStatuses = []BookingStatus{
	StatusCancelled,
	StatusCompleted,
}
