package models

import (
	"time"

	"github.com/Trio-Ads/saloneo-deploy-sub005/internal/domain"
)

// CreateServiceRequest запрос на создание услуги
type CreateServiceRequest struct {
	SalonID              int64
	Name                 string
	DurationMinutes      int
	BufferBeforeMinutes  int
	BufferAfterMinutes   int
	MinAdvanceDays       int
	MaxAdvanceDays       int
	OnlineBookingEnabled *bool // nil = включена
	IsActive             *bool // nil = активна
}

// UpdateServiceRequest запрос на обновление услуги.
// Изменение длительности и буферов не затрагивает уже созданные записи
type UpdateServiceRequest struct {
	SalonID              int64
	Name                 *string
	DurationMinutes      *int
	BufferBeforeMinutes  *int
	BufferAfterMinutes   *int
	MinAdvanceDays       *int
	MaxAdvanceDays       *int
	OnlineBookingEnabled *bool
	IsActive             *bool
}

// ServiceResponse ответ с данными услуги
type ServiceResponse struct {
	ID                   int64     `json:"id"`
	SalonID              int64     `json:"salonId"`
	Name                 string    `json:"name"`
	DurationMinutes      int       `json:"duration"`
	BufferBeforeMinutes  int       `json:"bufferTimeBefore"`
	BufferAfterMinutes   int       `json:"bufferTimeAfter"`
	MinAdvanceDays       int       `json:"minAdvanceBooking"`
	MaxAdvanceDays       int       `json:"maxAdvanceBooking"`
	OnlineBookingEnabled bool      `json:"onlineBookingEnabled"`
	IsActive             bool      `json:"isActive"`
	CreatedAt            time.Time `json:"createdAt"`
	UpdatedAt            time.Time `json:"updatedAt"`
}

// ToDomainService собирает domain модель из запроса на создание
func (r *CreateServiceRequest) ToDomainService() *domain.Service {
	return &domain.Service{
		SalonID:              r.SalonID,
		Name:                 r.Name,
		DurationMinutes:      r.DurationMinutes,
		BufferBeforeMinutes:  r.BufferBeforeMinutes,
		BufferAfterMinutes:   r.BufferAfterMinutes,
		MinAdvanceDays:       r.MinAdvanceDays,
		MaxAdvanceDays:       r.MaxAdvanceDays,
		OnlineBookingEnabled: r.OnlineBookingEnabled == nil || *r.OnlineBookingEnabled,
		IsActive:             r.IsActive == nil || *r.IsActive,
	}
}

// Apply переносит переданные поля в услугу
func (r *UpdateServiceRequest) Apply(s *domain.Service) {
	if r.Name != nil {
		s.Name = *r.Name
	}
	if r.DurationMinutes != nil {
		s.DurationMinutes = *r.DurationMinutes
	}
	if r.BufferBeforeMinutes != nil {
		s.BufferBeforeMinutes = *r.BufferBeforeMinutes
	}
	if r.BufferAfterMinutes != nil {
		s.BufferAfterMinutes = *r.BufferAfterMinutes
	}
	if r.MinAdvanceDays != nil {
		s.MinAdvanceDays = *r.MinAdvanceDays
	}
	if r.MaxAdvanceDays != nil {
		s.MaxAdvanceDays = *r.MaxAdvanceDays
	}
	if r.OnlineBookingEnabled != nil {
		s.OnlineBookingEnabled = *r.OnlineBookingEnabled
	}
	if r.IsActive != nil {
		s.IsActive = *r.IsActive
	}
}

// FromDomainService конвертирует domain модель в DTO
func FromDomainService(s *domain.Service) *ServiceResponse {
	if s == nil {
		return nil
	}

	return &ServiceResponse{
		ID:                   s.ID,
		SalonID:              s.SalonID,
		Name:                 s.Name,
		DurationMinutes:      s.DurationMinutes,
		BufferBeforeMinutes:  s.BufferBeforeMinutes,
		BufferAfterMinutes:   s.BufferAfterMinutes,
		MinAdvanceDays:       s.MinAdvanceDays,
		MaxAdvanceDays:       s.MaxAdvanceDays,
		OnlineBookingEnabled: s.OnlineBookingEnabled,
		IsActive:             s.IsActive,
		CreatedAt:            s.CreatedAt,
		UpdatedAt:            s.UpdatedAt,
	}
}
