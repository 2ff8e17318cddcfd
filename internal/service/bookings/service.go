package bookings

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/m04kA/SMC-TrainerBooking/internal/domain"
	"github.com/m04kA/SMC-TrainerBooking/internal/schedule"
	"github.com/m04kA/SMC-TrainerBooking/internal/service/bookings/models"
)

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo  BookingRepository
	trainerRepo  TrainerRepository
	validator    *schedule.Validator
	txManager    TransactionManager
	metrics      Metrics
	loc          *time.Location
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	trainerRepo TrainerRepository,
	resolver *schedule.Resolver,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		trainerRepo:  trainerRepo,
		validator:    schedule.NewValidator(resolver),
		txManager:    txManager,
		metrics:      metrics,
		loc:          resolver.Location(),
		timeProvider: realTimeProvider{},
		logger:       logger,
	}
}

// GetByID получает бронирование по ID
// Видеть бронирование могут только его тренер и клиент
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d", id, userID)

	booking, err := s.getBooking(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	if _, ok := booking.RoleOf(userID); !ok {
		s.logger.Warn("GetByID: access denied for user=%d to booking id=%d", userID, id)
		return nil, ErrAccessDenied
	}

	return models.FromDomainBooking(booking, s.loc), nil
}

// GetTrainerBookings бронирования тренера за период
// По умолчанию только активные, отмененные и завершенные по IncludeInactive или фильтру статуса
func (s *Service) GetTrainerBookings(ctx context.Context, req *models.GetTrainerBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetTrainerBookings: trainer=%d, user=%d, status=%v, includeInactive=%t",
		req.TrainerID, req.UserID, req.Status, req.IncludeInactive)

	if req.UserID != req.TrainerID {
		s.logger.Warn("GetTrainerBookings: user=%d is not trainer=%d", req.UserID, req.TrainerID)
		return nil, ErrAccessDenied
	}

	if req.From != nil && req.To != nil && !req.From.Before(*req.To) {
		return nil, fmt.Errorf("%w: from must be before to", ErrInvalidInput)
	}

	status, err := models.ParseStatusFilter(req.Status)
	if err != nil {
		s.logger.Warn("GetTrainerBookings: invalid status=%v: %v", req.Status, err)
		return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.ListByTrainer(ctx, domain.TrainerBookingsFilter{
		TrainerID:       req.TrainerID,
		From:            req.From,
		To:              req.To,
		Status:          status,
		IncludeInactive: req.IncludeInactive,
	})
	if err != nil {
		s.logger.Error("GetTrainerBookings: repository error for trainer=%d: %v", req.TrainerID, err)
		return nil, fmt.Errorf("%w: GetTrainerBookings - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("GetTrainerBookings: fetched %d bookings for trainer=%d", len(bookings), req.TrainerID)
	return models.FromDomainBookingList(bookings, s.loc), nil
}

// GetClientBookings история бронирований клиента
func (s *Service) GetClientBookings(ctx context.Context, req *models.GetClientBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetClientBookings: client=%d, user=%d, status=%v", req.ClientID, req.UserID, req.Status)

	if req.UserID != req.ClientID {
		s.logger.Warn("GetClientBookings: user=%d is not client=%d", req.UserID, req.ClientID)
		return nil, ErrAccessDenied
	}

	status, err := models.ParseStatusFilter(req.Status)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.ListByClient(ctx, domain.ClientBookingsFilter{ClientID: req.ClientID, Status: status})
	if err != nil {
		s.logger.Error("GetClientBookings: repository error for client=%d: %v", req.ClientID, err)
		return nil, fmt.Errorf("%w: GetClientBookings - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("GetClientBookings: fetched %d bookings for client=%d", len(bookings), req.ClientID)
	return models.FromDomainBookingList(bookings, s.loc), nil
}

// Cancel отменяет бронирование
//
// Клиент обязан указать причину, тренер может отменить без нее.
// Поздняя отмена клиентом разрешена, в ответе выставляется WithinPenaltyWindow.
func (s *Service) Cancel(ctx context.Context, bookingID int64, req *models.CancelBookingRequest) (*models.CancelBookingResponse, error) {
	s.logger.Info("Cancel: cancelling booking id=%d by user=%d", bookingID, req.UserID)

	if utf8.RuneCountInString(req.CancellationReason) > domain.MaxCancellationReasonLength {
		return nil, fmt.Errorf("%w: cancellation reason must not exceed %d characters",
			ErrInvalidInput, domain.MaxCancellationReasonLength)
	}

	now := s.timeProvider.Now()
	result := &models.CancelBookingResponse{}

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		booking, err := s.getBooking(txCtx, "Cancel", bookingID)
		if err != nil {
			return err
		}

		role, ok := booking.RoleOf(req.UserID)
		if !ok {
			s.logger.Warn("Cancel: access denied for user=%d to booking id=%d", req.UserID, bookingID)
			return ErrAccessDenied
		}

		if check := s.validator.ValidateCancel(booking, role, req.CancellationReason); !check.OK() {
			s.metrics.ObserveRejection("cancel_booking", string(check.Reason))
			s.logger.Warn("Cancel: rejected booking id=%d status=%s role=%s: %s", bookingID, booking.Status, role, check.Reason)
			return check.Err()
		}

		if role == domain.RoleClient {
			result.WithinPenaltyWindow = schedule.WithinPenaltyWindow(booking.Datetime, now, s.penaltyWindow(txCtx, booking.TrainerID))
		}

		cancelled, err := s.bookingRepo.Cancel(txCtx, bookingID, domain.Cancellation{
			ActorID:   req.UserID,
			ActorRole: role,
			Reason:    strings.TrimSpace(req.CancellationReason),
		})
		if err != nil {
			if errors.Is(err, domain.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			s.logger.Error("Cancel: repository error for booking id=%d: %v", bookingID, err)
			return fmt.Errorf("%w: Cancel - repository error: %w", ErrInternal, err)
		}

		result.Booking = *models.FromDomainBooking(cancelled, s.loc)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if result.WithinPenaltyWindow {
		s.logger.Warn("Cancel: booking id=%d cancelled by client inside penalty window", bookingID)
	}
	s.logger.Info("Cancel: successfully cancelled booking id=%d", bookingID)
	return result, nil
}

// UpdateStatus подтверждает или завершает занятие
//
// Подтвердить может любой участник (из pending), завершает тренер (из confirmed).
// Отмена идет через Cancel, чтобы проверить причину.
func (s *Service) UpdateStatus(ctx context.Context, bookingID int64, req *models.UpdateStatusRequest) (*models.BookingResponse, error) {
	s.logger.Info("UpdateStatus: updating booking id=%d to status=%s by user=%d", bookingID, req.Status, req.UserID)

	newStatus, err := domain.ParseBookingStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for booking id=%d", req.Status, bookingID)
		return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}
	if newStatus == domain.StatusCancelled {
		return nil, fmt.Errorf("%w: use cancel to cancel a booking", ErrInvalidInput)
	}

	var result *domain.Booking

	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		booking, err := s.getBooking(txCtx, "UpdateStatus", bookingID)
		if err != nil {
			return err
		}

		role, ok := booking.RoleOf(req.UserID)
		if !ok || !mayChangeStatus(role, newStatus) {
			s.logger.Warn("UpdateStatus: user=%d cannot set status=%s on booking id=%d", req.UserID, newStatus, bookingID)
			return ErrAccessDenied
		}

		if check := s.validator.ValidateTransition(booking.Status, newStatus); !check.OK() {
			s.metrics.ObserveRejection("update_status", string(check.Reason))
			s.logger.Warn("UpdateStatus: transition %s -> %s rejected for booking id=%d", booking.Status, newStatus, bookingID)
			return check.Err()
		}

		updated, err := s.bookingRepo.Update(txCtx, bookingID, domain.BookingUpdate{
			ActorID:   req.UserID,
			ActorRole: role,
			Status:    &newStatus,
		})
		if err != nil {
			if errors.Is(err, domain.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			s.logger.Error("UpdateStatus: repository error for booking id=%d: %v", bookingID, err)
			return fmt.Errorf("%w: UpdateStatus - repository error: %w", ErrInternal, err)
		}

		result = updated
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("UpdateStatus: successfully updated booking id=%d to status=%s", bookingID, newStatus)
	return models.FromDomainBooking(result, s.loc), nil
}

// Вспомогательные методы

func (s *Service) getBooking(ctx context.Context, op string, id int64) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%d not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %w", ErrInternal, op, err)
	}
	return booking, nil
}

// penaltyWindow окно платной отмены тренера. Ошибка чтения настроек не мешает отмене
func (s *Service) penaltyWindow(ctx context.Context, trainerID int64) time.Duration {
	trainer, err := s.trainerRepo.GetTrainer(ctx, trainerID)
	if err != nil {
		if !errors.Is(err, domain.ErrTrainerNotFound) {
			s.logger.Warn("Cancel: failed to get trainer=%d settings, using default window: %v", trainerID, err)
		}
		return domain.DefaultCancellationHours * time.Hour
	}
	if trainer == nil {
		s.logger.Warn("Cancel: repository returned no settings for trainer=%d, using default window", trainerID)
		return domain.DefaultCancellationHours * time.Hour
	}
	return trainer.PenaltyWindow()
}

// mayChangeStatus кто может выставлять статус
func mayChangeStatus(role domain.ActorRole, status domain.BookingStatus) bool {
	switch status {
	case domain.StatusConfirmed:
		return role == domain.RoleClient || role == domain.RoleTrainer
	case domain.StatusCompleted:
		return role == domain.RoleTrainer
	}
	return false
}
