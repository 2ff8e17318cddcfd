package save_working_hours

import (
	"github.com/m04kA/SMC-TrainerBooking/internal/service/workinghours/models"
)

// SaveWorkingHoursRequest HTTP request model
// Дни, которых нет в запросе, сохраняются как выходные
type SaveWorkingHoursRequest struct {
	Days []models.DayRequest `json:"days"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *SaveWorkingHoursRequest) ToServiceRequest(userID, trainerID int64) *models.SaveWorkingHoursRequest {
	return &models.SaveWorkingHoursRequest{
		UserID:    userID,
		TrainerID: trainerID,
		Days:      r.Days,
	}
}
