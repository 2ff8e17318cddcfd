package booking

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-TrainerBooking/internal/domain"
)

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = fmt.Errorf("booking.repository: %w", domain.ErrBookingNotFound)

	// ErrSlotTaken возвращается при нарушении уникальности активного бронирования на время тренера
	ErrSlotTaken = fmt.Errorf("booking.repository: %w", domain.ErrSlotTaken)

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("booking.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("booking.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("booking.repository: failed to scan row")

	// ErrEmptyUpdate возвращается, если в BookingUpdate нет ни одного поля
	ErrEmptyUpdate = errors.New("booking.repository: nothing to update")
)
