package schedule

import (
	"strings"
	"time"

	"github.com/m04kA/SMC-TrainerBooking/internal/domain"
)

// Result результат проверки: успех или одна конкретная причина отказа
type Result struct {
	Reason Reason
}

// OK возвращает true, если проверка пройдена
func (r Result) OK() bool {
	return r.Reason == ReasonNone
}

// Err возвращает *ValidationError или nil
func (r Result) Err() error {
	if r.OK() {
		return nil
	}
	return &ValidationError{Reason: r.Reason}
}

func ok() Result {
	return Result{}
}

func reject(reason Reason) Result {
	return Result{Reason: reason}
}

// Proposal предлагаемое время занятия
type Proposal struct {
	Actor           domain.ActorRole
	Datetime        time.Time
	DurationMinutes int
	Schedule        domain.WeeklySchedule
	Index           *BookingIndex
	Now             time.Time
}

// Validator проверяет бронирование перед отправкой в хранилище
// Проверка предварительная: окончательно конфликт времени проверяет хранилище
type Validator struct {
	resolver *Resolver
}

// NewValidator создает валидатор
func NewValidator(resolver *Resolver) *Validator {
	return &Validator{resolver: resolver}
}

// ValidateCreate проверяет новое бронирование
//
// Время должно быть строго позже now и не занято активным бронированием.
// Клиент может записаться только на рабочий слот, тренер может записать клиента в любое время.
func (v *Validator) ValidateCreate(p Proposal) Result {
	if !p.Datetime.After(p.Now) {
		return reject(ReasonPastDatetime)
	}
	if p.Index != nil && p.Index.IsOccupiedAt(p.Datetime) {
		return reject(ReasonSlotTaken)
	}
	if p.Actor == domain.RoleClient && !v.resolver.IsWorkingSlot(p.Schedule, p.DurationMinutes, p.Datetime) {
		return reject(ReasonOutsideWorkingHours)
	}
	return ok()
}

// ValidateReschedule проверяет перенос бронирования на p.Datetime
// Собственное текущее время бронирования не считается конфликтом
func (v *Validator) ValidateReschedule(booking *domain.Booking, p Proposal) Result {
	if !booking.IsActive() {
		return reject(ReasonInvalidTransition)
	}
	if p.Index != nil {
		p.Index = p.Index.Without(booking.ID)
	}
	return v.ValidateCreate(p)
}

// ValidateCancel проверяет отмену
// Клиент обязан указать причину, тренер может отменить без причины
func (v *Validator) ValidateCancel(booking *domain.Booking, actor domain.ActorRole, reason string) Result {
	if !booking.Status.CanTransitionTo(domain.StatusCancelled) {
		return reject(ReasonInvalidTransition)
	}
	if actor == domain.RoleClient && strings.TrimSpace(reason) == "" {
		return reject(ReasonMissingReason)
	}
	return ok()
}

// ValidateTransition проверяет переход статуса по машине состояний
func (v *Validator) ValidateTransition(from, to domain.BookingStatus) Result {
	if !from.CanTransitionTo(to) {
		return reject(ReasonInvalidTransition)
	}
	return ok()
}

// WithinPenaltyWindow возвращает true, если до начала занятия осталось меньше window
// Отмену это не запрещает, флаг только сообщается пользователю
func WithinPenaltyWindow(datetime, now time.Time, window time.Duration) bool {
	if window <= 0 {
		window = domain.DefaultCancellationHours * time.Hour
	}
	return datetime.Sub(now) < window
}
