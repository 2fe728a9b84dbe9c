package update_staff

import (
	"github.com/Trio-Ads/saloneo-deploy-sub005/internal/domain"
	"github.com/Trio-Ads/saloneo-deploy-sub005/internal/service/staff/models"
)

// UpdateStaffRequest HTTP request model; обновляются только переданные поля
type UpdateStaffRequest struct {
	Name         *string                `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Color        *string                `json:"color,omitempty" validate:"omitempty,hexcolor"`
	IsActive     *bool                  `json:"isActive,omitempty"`
	WorkingHours *domain.WeeklySchedule `json:"workingHours,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpdateStaffRequest) ToServiceRequest(salonID int64) *models.UpdateStaffRequest {
	return &models.UpdateStaffRequest{
		SalonID:  salonID,
		Name:     r.Name,
		Color:    r.Color,
		IsActive: r.IsActive,
		Schedule: r.WorkingHours,
	}
}
