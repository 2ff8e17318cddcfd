package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-TrainerBooking/internal/domain"
	"github.com/m04kA/SMC-TrainerBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-TrainerBooking/pkg/types"
)

// DefaultTTL время жизни рабочих часов в кеше
const DefaultTTL = 30 * time.Second

// ScheduleSource источник рабочих часов и настроек тренера (БД или внешний API)
type ScheduleSource interface {
	GetTrainer(ctx context.Context, trainerID int64) (*domain.Trainer, error)
	UpsertTrainer(ctx context.Context, trainer *domain.Trainer) error
	GetWeeklySchedule(ctx context.Context, trainerID int64) ([]domain.WorkingHoursTemplate, error)
	ReplaceWeeklySchedule(ctx context.Context, trainerID int64, entries []domain.WorkingHoursTemplate) error
}

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
	Debug(format string, v ...interface{})
}

// ScheduleCache read-through кеш рабочих часов тренера
// Ошибки кеша не пробрасываются: запрос уходит в источник
type ScheduleCache struct {
	source ScheduleSource
	store  Store
	ttl    time.Duration
	prefix string
	logger Logger
}

// NewScheduleCache оборачивает источник кешем
func NewScheduleCache(source ScheduleSource, store Store, ttl time.Duration, prefix string, logger Logger) *ScheduleCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if prefix == "" {
		prefix = "trainer-booking"
	}
	return &ScheduleCache{
		source: source,
		store:  store,
		ttl:    ttl,
		prefix: prefix,
		logger: logger,
	}
}

type cachedEntry struct {
	DayOfWeek  int    `json:"day_of_week"`
	IsActive   bool   `json:"is_active"`
	StartTime  string `json:"start_time,omitempty"`
	EndTime    string `json:"end_time,omitempty"`
	HasBreak   bool   `json:"has_break"`
	BreakStart string `json:"break_start,omitempty"`
	BreakEnd   string `json:"break_end,omitempty"`
}

func (c *ScheduleCache) key(trainerID int64) string {
	return fmt.Sprintf("%s:working-hours:%d", c.prefix, trainerID)
}

// GetWeeklySchedule возвращает рабочие часы из кеша или из источника
func (c *ScheduleCache) GetWeeklySchedule(ctx context.Context, trainerID int64) ([]domain.WorkingHoursTemplate, error) {
	key := c.key(trainerID)

	data, err := c.store.Get(ctx, key)
	switch {
	case err == nil:
		entries, decodeErr := decodeEntries(data)
		if decodeErr == nil {
			c.logger.Debug("ScheduleCache: hit trainer=%d", trainerID)
			return entries, nil
		}
		c.logger.Warn("ScheduleCache: broken entry for trainer=%d: %v", trainerID, decodeErr)
	case !errors.Is(err, ErrMiss):
		c.logger.Warn("ScheduleCache: get trainer=%d failed: %v", trainerID, err)
	}

	entries, err := c.source.GetWeeklySchedule(ctx, trainerID)
	if err != nil {
		return nil, err
	}

	if encoded, err := encodeEntries(entries); err == nil {
		if err := c.store.Set(ctx, key, encoded, c.ttl); err != nil {
			c.logger.Warn("ScheduleCache: set trainer=%d failed: %v", trainerID, err)
		}
	}

	return entries, nil
}

// ReplaceWeeklySchedule перезаписывает рабочие часы в источнике и сбрасывает кеш
//
// Внутри транзакции кеш не трогается: до коммита чтение вернет старые часы и
// закеширует их снова. Сброс делает владелец транзакции через Invalidate после коммита.
func (c *ScheduleCache) ReplaceWeeklySchedule(ctx context.Context, trainerID int64, entries []domain.WorkingHoursTemplate) error {
	if err := c.source.ReplaceWeeklySchedule(ctx, trainerID, entries); err != nil {
		return err
	}
	if dbmetrics.IsInTransaction(ctx) {
		return nil
	}
	c.Invalidate(ctx, trainerID)
	return nil
}

// Invalidate удаляет рабочие часы тренера из кеша
func (c *ScheduleCache) Invalidate(ctx context.Context, trainerID int64) {
	if err := c.store.Del(ctx, c.key(trainerID)); err != nil {
		c.logger.Warn("ScheduleCache: invalidate trainer=%d failed: %v", trainerID, err)
	}
}

// GetTrainer не кешируется
func (c *ScheduleCache) GetTrainer(ctx context.Context, trainerID int64) (*domain.Trainer, error) {
	return c.source.GetTrainer(ctx, trainerID)
}

// UpsertTrainer не кешируется
func (c *ScheduleCache) UpsertTrainer(ctx context.Context, trainer *domain.Trainer) error {
	return c.source.UpsertTrainer(ctx, trainer)
}

func encodeEntries(entries []domain.WorkingHoursTemplate) ([]byte, error) {
	cached := make([]cachedEntry, 0, len(entries))
	for _, e := range entries {
		ce := cachedEntry{
			DayOfWeek: e.DayOfWeek.MondayFirstIndex(),
			IsActive:  e.IsActive,
			StartTime: e.StartTime.String(),
			EndTime:   e.EndTime.String(),
			HasBreak:  e.HasBreak,
		}
		if e.Break != nil {
			ce.BreakStart = e.Break.Start.String()
			ce.BreakEnd = e.Break.End.String()
		}
		cached = append(cached, ce)
	}
	return json.Marshal(cached)
}

func decodeEntries(data []byte) ([]domain.WorkingHoursTemplate, error) {
	var cached []cachedEntry
	if err := json.Unmarshal(data, &cached); err != nil {
		return nil, err
	}

	entries := make([]domain.WorkingHoursTemplate, 0, len(cached))
	for _, ce := range cached {
		day, err := domain.FromMondayFirstIndex(ce.DayOfWeek)
		if err != nil {
			return nil, err
		}
		e := domain.WorkingHoursTemplate{
			DayOfWeek: day,
			IsActive:  ce.IsActive,
			StartTime: types.TimeString(ce.StartTime),
			EndTime:   types.TimeString(ce.EndTime),
			HasBreak:  ce.HasBreak,
		}
		if ce.BreakStart != "" && ce.BreakEnd != "" {
			e.Break = &domain.BreakWindow{
				Start: types.TimeString(ce.BreakStart),
				End:   types.TimeString(ce.BreakEnd),
			}
		}
		entries = append(entries, e)
	}
	return entries, nil
}
