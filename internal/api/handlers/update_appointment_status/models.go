package update_appointment_status

import "github.com/Trio-Ads/saloneo-deploy-sub005/internal/service/appointments/models"

// UpdateStatusRequest HTTP request model
type UpdateStatusRequest struct {
	Status          string `json:"status" validate:"required,oneof=confirmed completed cancelled no_show"`
	ExpectedVersion *int64 `json:"expectedVersion,omitempty" validate:"omitempty,gt=0"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpdateStatusRequest) ToServiceRequest(salonID int64) *models.UpdateStatusRequest {
	return &models.UpdateStatusRequest{
		SalonID:         salonID,
		Status:          r.Status,
		ExpectedVersion: r.ExpectedVersion,
	}
}
