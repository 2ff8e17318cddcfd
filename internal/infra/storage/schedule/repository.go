package schedule

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-TrainerBooking/internal/domain"
	"github.com/m04kA/SMC-TrainerBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-TrainerBooking/pkg/psqlbuilder"
	"github.com/m04kA/SMC-TrainerBooking/pkg/types"
)

const (
	trainersTable     = "trainers"
	workingHoursTable = "working_hours"
)

// Repository хранит настройки тренеров и их недельные рабочие часы
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetTrainer получает настройки тренера
func (r *Repository) GetTrainer(ctx context.Context, trainerID int64) (*domain.Trainer, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"name",
		"session_duration_minutes",
		"cancellation_hours",
	).
		From(trainersTable).
		Where(squirrel.Eq{"id": trainerID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetTrainer - build select query: %v", ErrBuildQuery, err)
	}

	var t domain.Trainer
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&t.ID,
		&t.Name,
		&t.SessionDurationMinutes,
		&t.CancellationHours,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTrainerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetTrainer - scan trainer: %v", ErrScanRow, err)
	}

	return &t, nil
}

// UpsertTrainer создает или обновляет настройки тренера
func (r *Repository) UpsertTrainer(ctx context.Context, t *domain.Trainer) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(trainersTable).
		Columns("id", "name", "session_duration_minutes", "cancellation_hours").
		Values(t.ID, t.Name, t.SessionDuration(), int(t.PenaltyWindow().Hours())).
		Suffix(`ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			session_duration_minutes = EXCLUDED.session_duration_minutes,
			cancellation_hours = EXCLUDED.cancellation_hours,
			updated_at = NOW()`).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpsertTrainer - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: UpsertTrainer - execute insert: %v", ErrExecQuery, err)
	}
	return nil
}

// GetWeeklySchedule получает рабочие часы тренера
// Тренер без записей получает пустой шаблон (все дни выходные)
func (r *Repository) GetWeeklySchedule(ctx context.Context, trainerID int64) ([]domain.WorkingHoursTemplate, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	// ::text, чтобы 24:00 не превращалось в 00:00 при сканировании
	query, args, err := psqlbuilder.Select(
		"day_of_week",
		"is_active",
		"start_time::text",
		"end_time::text",
		"has_break",
		"break_start::text",
		"break_end::text",
	).
		From(workingHoursTable).
		Where(squirrel.Eq{"trainer_id": trainerID}).
		OrderBy("day_of_week ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetWeeklySchedule - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetWeeklySchedule - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	entries := make([]domain.WorkingHoursTemplate, 0, 7)
	for rows.Next() {
		var (
			day                  int
			e                    domain.WorkingHoursTemplate
			breakStart, breakEnd types.TimeString
		)
		if err := rows.Scan(&day, &e.IsActive, &e.StartTime, &e.EndTime, &e.HasBreak, &breakStart, &breakEnd); err != nil {
			return nil, fmt.Errorf("%w: GetWeeklySchedule - scan row: %v", ErrScanRow, err)
		}

		e.DayOfWeek, err = domain.FromMondayFirstIndex(day)
		if err != nil {
			return nil, fmt.Errorf("%w: GetWeeklySchedule - day_of_week: %v", ErrScanRow, err)
		}
		if !breakStart.IsZero() && !breakEnd.IsZero() {
			e.Break = &domain.BreakWindow{Start: breakStart, End: breakEnd}
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetWeeklySchedule - rows error: %v", ErrScanRow, err)
	}

	return entries, nil
}

// ReplaceWeeklySchedule полностью перезаписывает рабочие часы тренера
// Должен вызываться внутри транзакции: удаление и вставка применяются вместе
func (r *Repository) ReplaceWeeklySchedule(ctx context.Context, trainerID int64, entries []domain.WorkingHoursTemplate) error {
	tx, ok := dbmetrics.TxFromContext(ctx)
	if !ok {
		return ErrTransaction
	}

	// Тренер создается при первом сохранении расписания
	query, args, err := psqlbuilder.Insert(trainersTable).
		Columns("id").
		Values(trainerID).
		Suffix("ON CONFLICT (id) DO NOTHING").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceWeeklySchedule - build trainer insert query: %v", ErrBuildQuery, err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: ReplaceWeeklySchedule - ensure trainer: %v", ErrExecQuery, err)
	}

	query, args, err = psqlbuilder.Delete(workingHoursTable).
		Where(squirrel.Eq{"trainer_id": trainerID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceWeeklySchedule - build delete query: %v", ErrBuildQuery, err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: ReplaceWeeklySchedule - execute delete: %v", ErrExecQuery, err)
	}

	if len(entries) == 0 {
		return nil
	}

	insertBuilder := psqlbuilder.Insert(workingHoursTable).
		Columns(
			"trainer_id",
			"day_of_week",
			"is_active",
			"start_time",
			"end_time",
			"has_break",
			"break_start",
			"break_end",
		)

	for _, e := range entries {
		var breakStart, breakEnd types.TimeString
		if e.HasBreak && e.Break != nil {
			breakStart, breakEnd = e.Break.Start, e.Break.End
		}
		insertBuilder = insertBuilder.Values(
			trainerID,
			e.DayOfWeek.MondayFirstIndex(),
			e.IsActive,
			e.StartTime,
			e.EndTime,
			e.HasBreak,
			breakStart,
			breakEnd,
		)
	}

	query, args, err = insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceWeeklySchedule - build insert query: %v", ErrBuildQuery, err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: ReplaceWeeklySchedule - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}
