package domain

import (
	"fmt"
	"strings"
	"time"
)

// BookingStatus статус бронирования
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
	StatusCompleted BookingStatus = "completed"
)

// ParseBookingStatus парсит статус без учета регистра ("CONFIRMED", "Confirmed", "confirmed")
// Используется только на границе с внешними API
func ParseBookingStatus(s string) (BookingStatus, error) {
	status := BookingStatus(strings.ToLower(strings.TrimSpace(s)))
	if !status.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
	}
	return status, nil
}

// IsValid возвращает true для известных статусов
func (s BookingStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted:
		return true
	}
	return false
}

// IsActive возвращает true для статусов, которые занимают время тренера
func (s BookingStatus) IsActive() bool {
	return s == StatusPending || s == StatusConfirmed
}

// IsTerminal возвращает true для конечных статусов
func (s BookingStatus) IsTerminal() bool {
	return s == StatusCancelled || s == StatusCompleted
}

// CanTransitionTo проверяет переход по машине состояний:
// pending -> confirmed | cancelled, confirmed -> cancelled | completed
func (s BookingStatus) CanTransitionTo(to BookingStatus) bool {
	switch s {
	case StatusPending:
		return to == StatusConfirmed || to == StatusCancelled
	case StatusConfirmed:
		return to == StatusCancelled || to == StatusCompleted
	}
	return false
}

// ActorRole кто совершает действие с бронированием
type ActorRole string

const (
	RoleTrainer ActorRole = "trainer"
	RoleClient  ActorRole = "client"
)

// ParseActorRole парсит роль без учета регистра
func ParseActorRole(s string) (ActorRole, error) {
	role := ActorRole(strings.ToLower(strings.TrimSpace(s)))
	if role != RoleTrainer && role != RoleClient {
		return "", fmt.Errorf("%w: %q", ErrInvalidRole, s)
	}
	return role, nil
}

// Booking занятие тренера с клиентом
type Booking struct {
	ID              int64
	TrainerID       int64
	ClientID        int64
	Datetime        time.Time
	DurationMinutes int
	Status          BookingStatus
	Notes           *string

	CreatedBy          ActorRole
	CancellationReason *string
	CancelledBy        *ActorRole
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive возвращает true, если бронирование занимает время тренера
func (b *Booking) IsActive() bool {
	return b.Status.IsActive()
}

// EndsAt возвращает время окончания занятия
func (b *Booking) EndsAt() time.Time {
	return b.Datetime.Add(time.Duration(b.DurationMinutes) * time.Minute)
}

// RoleOf возвращает роль пользователя в бронировании
func (b *Booking) RoleOf(userID int64) (ActorRole, bool) {
	switch userID {
	case b.TrainerID:
		return RoleTrainer, true
	case b.ClientID:
		return RoleClient, true
	}
	return "", false
}

// BookingUpdate частичное изменение бронирования (подтверждение, перенос, отмена)
type BookingUpdate struct {
	ActorID            int64
	ActorRole          ActorRole
	Status             *BookingStatus
	Datetime           *time.Time
	CancellationReason *string
}

// Cancellation отмена бронирования участником
type Cancellation struct {
	ActorID   int64
	ActorRole ActorRole
	Reason    string
}

// TrainerBookingsFilter фильтр бронирований тренера
type TrainerBookingsFilter struct {
	TrainerID       int64          // Обязательный параметр
	From            *time.Time     // Начало периода включительно
	To              *time.Time     // Конец периода не включительно
	Status          *BookingStatus // Фильтр по статусу
	IncludeInactive bool           // Включать отмененные и завершенные
}

// ClientBookingsFilter фильтр бронирований клиента
type ClientBookingsFilter struct {
	ClientID int64
	Status   *BookingStatus
}
