package update_service

import "github.com/Trio-Ads/saloneo-deploy-sub005/internal/service/catalog/models"

// UpdateServiceRequest HTTP request model; обновляются только переданные поля
type UpdateServiceRequest struct {
	Name                 *string `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	DurationMinutes      *int    `json:"duration,omitempty" validate:"omitempty,gt=0,lte=720"`
	BufferTimeBefore     *int    `json:"bufferTimeBefore,omitempty" validate:"omitempty,gte=0,lte=240"`
	BufferTimeAfter      *int    `json:"bufferTimeAfter,omitempty" validate:"omitempty,gte=0,lte=240"`
	MinAdvanceBooking    *int    `json:"minAdvanceBooking,omitempty" validate:"omitempty,gte=0,lte=365"`
	MaxAdvanceBooking    *int    `json:"maxAdvanceBooking,omitempty" validate:"omitempty,gte=0,lte=365"`
	OnlineBookingEnabled *bool   `json:"onlineBookingEnabled,omitempty"`
	IsActive             *bool   `json:"isActive,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpdateServiceRequest) ToServiceRequest(salonID int64) *models.UpdateServiceRequest {
	return &models.UpdateServiceRequest{
		SalonID:              salonID,
		Name:                 r.Name,
		DurationMinutes:      r.DurationMinutes,
		BufferBeforeMinutes:  r.BufferTimeBefore,
		BufferAfterMinutes:   r.BufferTimeAfter,
		MinAdvanceDays:       r.MinAdvanceBooking,
		MaxAdvanceDays:       r.MaxAdvanceBooking,
		OnlineBookingEnabled: r.OnlineBookingEnabled,
		IsActive:             r.IsActive,
	}
}
