package create_staff

import (
	"github.com/Trio-Ads/saloneo-deploy-sub005/internal/domain"
	"github.com/Trio-Ads/saloneo-deploy-sub005/internal/service/staff/models"
)

// CreateStaffRequest HTTP request model
type CreateStaffRequest struct {
	Name         string                `json:"name" validate:"required,max=100"`
	Color        string                `json:"color,omitempty" validate:"omitempty,hexcolor"`
	IsActive     *bool                 `json:"isActive,omitempty"`
	WorkingHours domain.WeeklySchedule `json:"workingHours"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *CreateStaffRequest) ToServiceRequest(salonID int64) *models.CreateStaffRequest {
	return &models.CreateStaffRequest{
		SalonID:  salonID,
		Name:     r.Name,
		Color:    r.Color,
		IsActive: r.IsActive,
		Schedule: r.WorkingHours,
	}
}
