package update_trainer_settings

import (
	"context"

	"github.com/m04kA/SMC-TrainerBooking/internal/service/workinghours/models"
)

type WorkingHoursService interface {
	UpdateSettings(ctx context.Context, req *models.UpdateSettingsRequest) (*models.WorkingHoursResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
