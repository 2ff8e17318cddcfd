package models

import (
	"fmt"

	"github.com/m04kA/SMC-TrainerBooking/internal/domain"
	"github.com/m04kA/SMC-TrainerBooking/pkg/types"
)

// Request модели

// DayRequest рабочие часы одного дня. DayOfWeek: понедельник = 0, воскресенье = 6
type DayRequest struct {
	DayOfWeek  int     `json:"dayOfWeek"`
	IsActive   bool    `json:"isActive"`
	StartTime  string  `json:"startTime"`
	EndTime    string  `json:"endTime"`
	HasBreak   bool    `json:"hasBreak"`
	BreakStart *string `json:"breakStart,omitempty"` // без окна используется перерыв по умолчанию
	BreakEnd   *string `json:"breakEnd,omitempty"`
}

// SaveWorkingHoursRequest полная перезапись недельного шаблона
type SaveWorkingHoursRequest struct {
	UserID    int64        `json:"userId"`
	TrainerID int64        `json:"trainerId"`
	Days      []DayRequest `json:"days"`
}

// UpdateSettingsRequest изменение настроек тренера, nil = без изменений
type UpdateSettingsRequest struct {
	UserID                 int64   `json:"userId"`
	TrainerID              int64   `json:"trainerId"`
	Name                   *string `json:"name,omitempty"`
	SessionDurationMinutes *int    `json:"sessionDurationMinutes,omitempty"`
	CancellationHours      *int    `json:"cancellationHours,omitempty"`
}

// Response модели

// DayResponse рабочие часы дня
type DayResponse struct {
	DayOfWeek  int     `json:"dayOfWeek"`
	DayName    string  `json:"dayName"`
	IsActive   bool    `json:"isActive"`
	StartTime  string  `json:"startTime,omitempty"`
	EndTime    string  `json:"endTime,omitempty"`
	HasBreak   bool    `json:"hasBreak"`
	BreakStart *string `json:"breakStart,omitempty"`
	BreakEnd   *string `json:"breakEnd,omitempty"`
}

// WorkingHoursResponse недельный шаблон и настройки тренера
type WorkingHoursResponse struct {
	TrainerID              int64         `json:"trainerId"`
	SessionDurationMinutes int           `json:"sessionDurationMinutes"`
	CancellationHours      int           `json:"cancellationHours"`
	Days                   []DayResponse `json:"days"`
}

// ToDomain конвертирует день в шаблон
func (d DayRequest) ToDomain() (domain.WorkingHoursTemplate, error) {
	day, err := domain.FromMondayFirstIndex(d.DayOfWeek)
	if err != nil {
		return domain.WorkingHoursTemplate{}, err
	}

	tpl := domain.WorkingHoursTemplate{
		DayOfWeek: day,
		IsActive:  d.IsActive,
		HasBreak:  d.HasBreak,
	}
	if !d.IsActive {
		return tpl, nil
	}

	if tpl.StartTime, err = types.NewTimeStringFromString(d.StartTime); err != nil {
		return tpl, fmt.Errorf("%s: start time: %w", day, err)
	}
	if tpl.EndTime, err = types.NewTimeStringFromString(d.EndTime); err != nil {
		return tpl, fmt.Errorf("%s: end time: %w", day, err)
	}

	if d.HasBreak && (d.BreakStart != nil || d.BreakEnd != nil) {
		if d.BreakStart == nil || d.BreakEnd == nil {
			return tpl, fmt.Errorf("%s: break needs both start and end", day)
		}
		var brk domain.BreakWindow
		if brk.Start, err = types.NewTimeStringFromString(*d.BreakStart); err != nil {
			return tpl, fmt.Errorf("%s: break start: %w", day, err)
		}
		if brk.End, err = types.NewTimeStringFromString(*d.BreakEnd); err != nil {
			return tpl, fmt.Errorf("%s: break end: %w", day, err)
		}
		tpl.Break = &brk
	}

	return tpl, tpl.Validate()
}

// FromDomain собирает ответ: всегда 7 дней, начиная с понедельника
func FromDomain(trainer *domain.Trainer, schedule domain.WeeklySchedule, defaultBreak domain.BreakWindow) *WorkingHoursResponse {
	resp := &WorkingHoursResponse{
		TrainerID:              trainer.ID,
		SessionDurationMinutes: trainer.SessionDuration(),
		CancellationHours:      int(trainer.PenaltyWindow().Hours()),
		Days:                   make([]DayResponse, 0, 7),
	}

	for _, tpl := range schedule.Entries() {
		day := DayResponse{
			DayOfWeek: tpl.DayOfWeek.MondayFirstIndex(),
			DayName:   tpl.DayOfWeek.Name(),
			IsActive:  tpl.IsActive,
			HasBreak:  tpl.HasBreak,
		}
		if tpl.IsActive {
			day.StartTime = tpl.StartTime.String()
			day.EndTime = tpl.EndTime.String()
		}
		if brk := tpl.BreakOrDefault(defaultBreak); brk != nil {
			start, end := brk.Start.String(), brk.End.String()
			day.BreakStart, day.BreakEnd = &start, &end
		}
		resp.Days = append(resp.Days, day)
	}

	return resp
}
