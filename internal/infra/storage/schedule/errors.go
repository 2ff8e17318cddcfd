package schedule

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-TrainerBooking/internal/domain"
)

var (
	// ErrTrainerNotFound возвращается, когда тренер не найден
	ErrTrainerNotFound = fmt.Errorf("schedule.repository: %w", domain.ErrTrainerNotFound)

	// ErrTransaction возвращается, если перезапись расписания вызвана вне транзакции
	ErrTransaction = errors.New("schedule.repository: transaction required")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("schedule.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("schedule.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("schedule.repository: failed to scan row")
)
