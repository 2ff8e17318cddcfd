package workinghours

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-TrainerBooking/internal/domain"
	"github.com/m04kA/SMC-TrainerBooking/internal/service/workinghours/models"
)

// Service сервис рабочих часов и настроек тренера
type Service struct {
	repo         ScheduleRepository
	cache        CacheInvalidator
	txManager    TransactionManager
	defaultBreak domain.BreakWindow
	logger       Logger
}

// NewService создает сервис. cache может быть nil, если кэш выключен
func NewService(
	repo ScheduleRepository,
	cache CacheInvalidator,
	txManager TransactionManager,
	defaultBreak domain.BreakWindow,
	logger Logger,
) *Service {
	if cache == nil {
		cache = noopInvalidator{}
	}
	return &Service{
		repo:         repo,
		cache:        cache,
		txManager:    txManager,
		defaultBreak: defaultBreak,
		logger:       logger,
	}
}

// Get возвращает недельный шаблон тренера
// Тренер без сохраненных настроек получает значения по умолчанию и семь выходных
func (s *Service) Get(ctx context.Context, trainerID int64) (*models.WorkingHoursResponse, error) {
	s.logger.Info("Get: fetching working hours for trainer=%d", trainerID)

	if trainerID <= 0 {
		return nil, fmt.Errorf("%w: trainerID must be positive", ErrInvalidInput)
	}

	trainer, err := s.getTrainer(ctx, "Get", trainerID)
	if err != nil {
		return nil, err
	}

	entries, err := s.repo.GetWeeklySchedule(ctx, trainerID)
	if err != nil {
		s.logger.Error("Get: failed to get working hours for trainer=%d: %v", trainerID, err)
		return nil, fmt.Errorf("%w: Get - repository error: %w", ErrInternal, err)
	}

	return models.FromDomain(trainer, domain.NewWeeklySchedule(entries), s.defaultBreak), nil
}

// Save полностью перезаписывает недельный шаблон тренера
//
// Каждый день проверяется отдельно, при повторе дня побеждает последняя запись.
// Дни, которых нет в запросе, сохраняются как выходные.
func (s *Service) Save(ctx context.Context, req *models.SaveWorkingHoursRequest) (*models.WorkingHoursResponse, error) {
	s.logger.Info("Save: saving %d days for trainer=%d by user=%d", len(req.Days), req.TrainerID, req.UserID)

	if req.UserID != req.TrainerID {
		s.logger.Warn("Save: user=%d cannot edit schedule of trainer=%d", req.UserID, req.TrainerID)
		return nil, ErrAccessDenied
	}

	entries := make([]domain.WorkingHoursTemplate, 0, len(req.Days))
	for _, day := range req.Days {
		tpl, err := day.ToDomain()
		if err != nil {
			s.logger.Warn("Save: invalid day for trainer=%d: %v", req.TrainerID, err)
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		entries = append(entries, tpl)
	}
	weekly := domain.NewWeeklySchedule(entries)

	var trainer *domain.Trainer
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := s.repo.ReplaceWeeklySchedule(txCtx, req.TrainerID, weekly.Entries()); err != nil {
			s.logger.Error("Save: failed to replace working hours for trainer=%d: %v", req.TrainerID, err)
			return fmt.Errorf("%w: Save - repository error: %w", ErrInternal, err)
		}

		t, err := s.getTrainer(txCtx, "Save", req.TrainerID)
		if err != nil {
			return err
		}
		trainer = t
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx, req.TrainerID)

	s.logger.Info("Save: working hours saved for trainer=%d", req.TrainerID)
	return models.FromDomain(trainer, weekly, s.defaultBreak), nil
}

// UpdateSettings меняет длительность занятия и окно платной отмены
func (s *Service) UpdateSettings(ctx context.Context, req *models.UpdateSettingsRequest) (*models.WorkingHoursResponse, error) {
	s.logger.Info("UpdateSettings: trainer=%d by user=%d", req.TrainerID, req.UserID)

	if req.UserID != req.TrainerID {
		s.logger.Warn("UpdateSettings: user=%d cannot edit settings of trainer=%d", req.UserID, req.TrainerID)
		return nil, ErrAccessDenied
	}
	if err := validateSettings(req); err != nil {
		s.logger.Warn("UpdateSettings: validation failed: %v", err)
		return nil, err
	}

	trainer, err := s.getTrainer(ctx, "UpdateSettings", req.TrainerID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		trainer.Name = strings.TrimSpace(*req.Name)
	}
	if req.SessionDurationMinutes != nil {
		trainer.SessionDurationMinutes = *req.SessionDurationMinutes
	}
	if req.CancellationHours != nil {
		trainer.CancellationHours = *req.CancellationHours
	}

	if err := s.repo.UpsertTrainer(ctx, trainer); err != nil {
		s.logger.Error("UpdateSettings: failed to save trainer=%d: %v", req.TrainerID, err)
		return nil, fmt.Errorf("%w: UpdateSettings - repository error: %w", ErrInternal, err)
	}

	return s.Get(ctx, req.TrainerID)
}

// getTrainer возвращает настройки тренера или значения по умолчанию для нового тренера
func (s *Service) getTrainer(ctx context.Context, op string, trainerID int64) (*domain.Trainer, error) {
	trainer, err := s.repo.GetTrainer(ctx, trainerID)
	if err != nil {
		if errors.Is(err, domain.ErrTrainerNotFound) {
			return &domain.Trainer{
				ID:                     trainerID,
				SessionDurationMinutes: domain.DefaultSessionDurationMinutes,
				CancellationHours:      domain.DefaultCancellationHours,
			}, nil
		}
		s.logger.Error("%s: failed to get trainer=%d: %v", op, trainerID, err)
		return nil, fmt.Errorf("%w: %s - repository error: %w", ErrInternal, op, err)
	}
	return trainer, nil
}

func validateSettings(req *models.UpdateSettingsRequest) error {
	if d := req.SessionDurationMinutes; d != nil &&
		(*d < domain.MinSessionDurationMinutes || *d > domain.MaxSessionDurationMinutes) {
		return fmt.Errorf("%w: session duration must be between %d and %d minutes",
			ErrInvalidInput, domain.MinSessionDurationMinutes, domain.MaxSessionDurationMinutes)
	}
	if h := req.CancellationHours; h != nil && (*h < 1 || *h > 168) {
		return fmt.Errorf("%w: cancellation hours must be between 1 and 168", ErrInvalidInput)
	}
	return nil
}
