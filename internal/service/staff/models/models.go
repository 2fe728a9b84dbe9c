package models

import (
	"time"

	"github.com/Trio-Ads/saloneo-deploy-sub005/internal/domain"
)

// Request модели

// CreateStaffRequest запрос на создание мастера
type CreateStaffRequest struct {
	SalonID  int64
	Name     string
	Color    string
	IsActive *bool // nil = активен
	Schedule domain.WeeklySchedule
}

// UpdateStaffRequest запрос на обновление мастера.
// Все поля опциональны - обновляются только переданные значения
type UpdateStaffRequest struct {
	SalonID  int64
	Name     *string
	Color    *string
	IsActive *bool
	Schedule *domain.WeeklySchedule
}

// Response модели

// StaffResponse ответ с данными мастера
type StaffResponse struct {
	ID        int64                 `json:"id"`
	SalonID   int64                 `json:"salonId"`
	Name      string                `json:"name"`
	Color     string                `json:"color,omitempty"`
	IsActive  bool                  `json:"isActive"`
	Schedule  domain.WeeklySchedule `json:"workingHours"`
	CreatedAt time.Time             `json:"createdAt"`
	UpdatedAt time.Time             `json:"updatedAt"`
}

// DeleteStaffResponse результат удаления мастера
type DeleteStaffResponse struct {
	ID                      int64   `json:"id"`
	CancelledAppointmentIDs []int64 `json:"cancelledAppointmentIds"`
}

// Методы конвертации

// FromDomainStaff конвертирует domain модель в DTO
func FromDomainStaff(s *domain.StaffMember) *StaffResponse {
	if s == nil {
		return nil
	}

	return &StaffResponse{
		ID:        s.ID,
		SalonID:   s.SalonID,
		Name:      s.Name,
		Color:     s.Color,
		IsActive:  s.IsActive,
		Schedule:  s.Schedule,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}
