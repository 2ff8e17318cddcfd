package trainerapi

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-TrainerBooking/internal/domain"
)

var (
	// ErrBookingNotFound возвращается при 404 на запросах бронирования
	ErrBookingNotFound = fmt.Errorf("trainerapi client: %w", domain.ErrBookingNotFound)

	// ErrTrainerNotFound возвращается при 404 на запросах тренера
	ErrTrainerNotFound = fmt.Errorf("trainerapi client: %w", domain.ErrTrainerNotFound)

	// ErrSlotTaken API отклонило запись: время уже занято
	ErrSlotTaken = fmt.Errorf("trainerapi client: %w", domain.ErrSlotTaken)

	// ErrInternal возвращается при сетевых ошибках и ошибках построения запроса
	ErrInternal = fmt.Errorf("trainerapi client: %w", domain.ErrExternalCall)

	// ErrInvalidResponse возвращается при неожиданном статусе или некорректном теле ответа
	ErrInvalidResponse = fmt.Errorf("trainerapi client: invalid response: %w", domain.ErrExternalCall)

	// ErrForbidden API запретило действие пользователю
	ErrForbidden = errors.New("trainerapi client: forbidden")

	// ErrRejected API отклонило запрос по бизнес-правилу (400 без конфликта времени)
	ErrRejected = errors.New("trainerapi client: request rejected")
)
