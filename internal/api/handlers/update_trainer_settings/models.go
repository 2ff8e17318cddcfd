package update_trainer_settings

import (
	"github.com/m04kA/SMC-TrainerBooking/internal/service/workinghours/models"
)

// UpdateSettingsRequest HTTP request model. Незаданные поля не меняются
type UpdateSettingsRequest struct {
	Name                   *string `json:"name,omitempty"`
	SessionDurationMinutes *int    `json:"sessionDurationMinutes,omitempty"`
	CancellationHours      *int    `json:"cancellationHours,omitempty"`
}

func (r *UpdateSettingsRequest) ToServiceRequest(userID, trainerID int64) *models.UpdateSettingsRequest {
	return &models.UpdateSettingsRequest{
		UserID:                 userID,
		TrainerID:              trainerID,
		Name:                   r.Name,
		SessionDurationMinutes: r.SessionDurationMinutes,
		CancellationHours:      r.CancellationHours,
	}
}
