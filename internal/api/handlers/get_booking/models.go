package get_booking

import (
	"github.com/m04kA/SMC-TrainerBooking/internal/domain"
	"github.com/m04kA/SMC-TrainerBooking/internal/service/bookings/models"
)

// BookingView бронирование глазами участника
// Actions подсказывает Mini-App, какие кнопки показать
type BookingView struct {
	*models.BookingResponse
	ViewerRole string  `json:"viewerRole"`
	Actions    Actions `json:"actions"`
}

type Actions struct {
	CanConfirm    bool `json:"canConfirm"`
	CanComplete   bool `json:"canComplete"`
	CanCancel     bool `json:"canCancel"`
	CanReschedule bool `json:"canReschedule"`
}

// NewBookingView собирает представление для пользователя userID
func NewBookingView(b *models.BookingResponse, userID int64) *BookingView {
	role := domain.RoleClient
	if userID == b.TrainerID {
		role = domain.RoleTrainer
	}

	status := domain.BookingStatus(b.Status)
	return &BookingView{
		BookingResponse: b,
		ViewerRole:      string(role),
		Actions: Actions{
			CanConfirm:    status.CanTransitionTo(domain.StatusConfirmed),
			CanComplete:   role == domain.RoleTrainer && status.CanTransitionTo(domain.StatusCompleted),
			CanCancel:     status.CanTransitionTo(domain.StatusCancelled),
			CanReschedule: status.IsActive(),
		},
	}
}
