package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-TrainerBooking/internal/domain"
	"github.com/m04kA/SMC-TrainerBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-TrainerBooking/pkg/psqlbuilder"
)

const (
	table = "bookings"

	// uniqueViolation код ошибки PostgreSQL при нарушении уникального индекса
	uniqueViolation = "23505"

	activeSlotIndex = "bookings_trainer_slot_active_uidx"
)

var columns = []string{
	"id",
	"trainer_id",
	"client_id",
	"starts_at",
	"duration_minutes",
	"status",
	"notes",
	"created_by",
	"cancellation_reason",
	"cancelled_by",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
// Если в контексте есть транзакция (dbmetrics.WithTx), запросы выполняются в ней
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает бронирование
// Окончательная проверка конфликта времени: частичный уникальный индекс по (trainer_id, starts_at)
// для статусов pending и confirmed. Нарушение индекса возвращается как ErrSlotTaken
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"trainer_id",
			"client_id",
			"starts_at",
			"duration_minutes",
			"status",
			"notes",
			"created_by",
		).
		Values(
			booking.TrainerID,
			booking.ClientID,
			booking.Datetime,
			booking.DurationMinutes,
			string(domain.StatusPending),
			booking.Notes,
			string(booking.CreatedBy),
		).
		Suffix("RETURNING id, status, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	created := *booking
	var status string
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&created.ID,
		&status,
		&created.CreatedAt,
		&created.UpdatedAt,
	)
	if err != nil {
		if isSlotConflict(err) {
			return nil, ErrSlotTaken
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}
	created.Status = domain.BookingStatus(status)

	return &created, nil
}

// GetByID получает бронирование по ID
// Внутри транзакции строка блокируется (FOR UPDATE)
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// ListByTrainer получает бронирования тренера
//
// Без статуса и IncludeInactive возвращаются только pending и confirmed.
// Внутри транзакции выбранные строки блокируются (FOR UPDATE), чтобы параллельная
// запись на тот же день ждала завершения текущей.
func (r *Repository) ListByTrainer(ctx context.Context, filter domain.TrainerBookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"trainer_id": filter.TrainerID})

	if filter.From != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"starts_at": *filter.From})
	}
	if filter.To != nil {
		selectBuilder = selectBuilder.Where(squirrel.Lt{"starts_at": *filter.To})
	}

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": string(*filter.Status)})
	} else if !filter.IncludeInactive {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": statusStrings(domain.ActiveStatuses)})
	}

	selectBuilder = selectBuilder.OrderBy("starts_at ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByTrainer - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByTrainer - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// ListByClient получает историю бронирований клиента, сначала новые
func (r *Repository) ListByClient(ctx context.Context, filter domain.ClientBookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"client_id": filter.ClientID}).
		OrderBy("starts_at DESC")

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": string(*filter.Status)})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByClient - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByClient - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// Update частично обновляет бронирование (статус, время, причина отмены)
// Перенос на занятое время возвращает ErrSlotTaken
func (r *Repository) Update(ctx context.Context, id int64, upd domain.BookingUpdate) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update(table).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id})

	changed := false
	if upd.Datetime != nil {
		updateBuilder = updateBuilder.Set("starts_at", *upd.Datetime)
		changed = true
	}
	if upd.Status != nil {
		updateBuilder = updateBuilder.Set("status", string(*upd.Status))
		changed = true

		if *upd.Status == domain.StatusCancelled {
			updateBuilder = updateBuilder.
				Set("cancelled_at", squirrel.Expr("NOW()")).
				Set("cancelled_by", nullableRole(upd.ActorRole))
		}
	}
	if upd.CancellationReason != nil {
		updateBuilder = updateBuilder.Set("cancellation_reason", *upd.CancellationReason)
		changed = true
	}
	if !changed {
		return nil, ErrEmptyUpdate
	}

	query, args, err := updateBuilder.Suffix("RETURNING " + strings.Join(columns, ", ")).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		if isSlotConflict(err) {
			return nil, ErrSlotTaken
		}
		return nil, fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	return booking, nil
}

// Cancel отменяет бронирование с указанием причины
func (r *Repository) Cancel(ctx context.Context, id int64, c domain.Cancellation) (*domain.Booking, error) {
	status := domain.StatusCancelled
	upd := domain.BookingUpdate{
		ActorID:   c.ActorID,
		ActorRole: c.ActorRole,
		Status:    &status,
	}
	if reason := strings.TrimSpace(c.Reason); reason != "" {
		upd.CancellationReason = &reason
	}
	return r.Update(ctx, id, upd)
}

// CompleteEndedBefore переводит подтвержденные занятия, закончившиеся до before, в completed
// Возвращает количество обновленных бронирований
func (r *Repository) CompleteEndedBefore(ctx context.Context, before time.Time) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("status", string(domain.StatusCompleted)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"status": string(domain.StatusConfirmed)}).
		Where(squirrel.Expr("starts_at + make_interval(mins => duration_minutes) <= ?", before)).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CompleteEndedBefore - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: CompleteEndedBefore - execute update: %v", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: CompleteEndedBefore - get rows affected: %v", ErrExecQuery, err)
	}

	return affected, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var (
		b           domain.Booking
		status      string
		createdBy   string
		notes       sql.NullString
		reason      sql.NullString
		cancelledBy sql.NullString
		cancelledAt sql.NullTime
	)

	err := row.Scan(
		&b.ID,
		&b.TrainerID,
		&b.ClientID,
		&b.Datetime,
		&b.DurationMinutes,
		&status,
		&notes,
		&createdBy,
		&reason,
		&cancelledBy,
		&cancelledAt,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	b.Status = domain.BookingStatus(status)
	b.CreatedBy = domain.ActorRole(createdBy)
	if notes.Valid {
		b.Notes = &notes.String
	}
	if reason.Valid {
		b.CancellationReason = &reason.String
	}
	if cancelledBy.Valid {
		role := domain.ActorRole(cancelledBy.String)
		b.CancelledBy = &role
	}
	if cancelledAt.Valid {
		b.CancelledAt = &cancelledAt.Time
	}

	return &b, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}

func isSlotConflict(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == uniqueViolation && pqErr.Constraint == activeSlotIndex
	}
	return false
}

func statusStrings(statuses []domain.BookingStatus) []string {
	result := make([]string, len(statuses))
	for i, s := range statuses {
		result[i] = string(s)
	}
	return result
}

func nullableRole(role domain.ActorRole) interface{} {
	if role == "" {
		return nil
	}
	return string(role)
}
