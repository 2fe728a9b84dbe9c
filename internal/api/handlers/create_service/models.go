package create_service

import "github.com/Trio-Ads/saloneo-deploy-sub005/internal/service/catalog/models"

// CreateServiceRequest HTTP request model
type CreateServiceRequest struct {
	Name                 string `json:"name" validate:"required,max=100"`
	DurationMinutes      int    `json:"duration" validate:"required,gt=0,lte=720"`
	BufferTimeBefore     int    `json:"bufferTimeBefore" validate:"gte=0,lte=240"`
	BufferTimeAfter      int    `json:"bufferTimeAfter" validate:"gte=0,lte=240"`
	MinAdvanceBooking    int    `json:"minAdvanceBooking" validate:"gte=0,lte=365"`
	MaxAdvanceBooking    int    `json:"maxAdvanceBooking" validate:"gte=0,lte=365"`
	OnlineBookingEnabled *bool  `json:"onlineBookingEnabled,omitempty"`
	IsActive             *bool  `json:"isActive,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *CreateServiceRequest) ToServiceRequest(salonID int64) *models.CreateServiceRequest {
	return &models.CreateServiceRequest{
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
