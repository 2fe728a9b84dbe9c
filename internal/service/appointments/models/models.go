package models

import (
	"errors"
	"time"

	"github.com/Trio-Ads/saloneo-deploy-sub005/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid appointment status")
)

// Request модели

// UpdateStatusRequest запрос на смену статуса записи
type UpdateStatusRequest struct {
	SalonID         int64  `json:"-"`
	Status          string `json:"status"`
	ExpectedVersion *int64 `json:"expectedVersion,omitempty"`
}

// ListAppointmentsRequest запрос на получение записей салона
type ListAppointmentsRequest struct {
	SalonID       int64
	StaffMemberID *int64
	StartDate     *time.Time
	EndDate       *time.Time
	Statuses      []string
	Limit         int
	Offset        int
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListAppointmentsRequest) ToDomainFilter() (domain.AppointmentFilter, error) {
	filter := domain.AppointmentFilter{
		SalonID:       r.SalonID,
		StaffMemberID: r.StaffMemberID,
		StartDate:     r.StartDate,
		EndDate:       r.EndDate,
		Limit:         r.Limit,
		Offset:        r.Offset,
	}

	for _, s := range r.Statuses {
		status, err := ToDomainStatus(s)
		if err != nil {
			return filter, err
		}
		filter.Statuses = append(filter.Statuses, status)
	}

	return filter, nil
}

// Response модели

// AppointmentResponse ответ с данными записи
type AppointmentResponse struct {
	ID                  int64   `json:"id"`
	SalonID             int64   `json:"salonId"`
	ClientID            int64   `json:"clientId"`
	StaffMemberID       int64   `json:"staffId"`
	ServiceID           int64   `json:"serviceId"`
	Date                string  `json:"date"`      // "2025-06-02"
	StartTime           string  `json:"startTime"` // "10:00"
	EndTime             string  `json:"endTime"`   // "11:00"
	DurationMinutes     int     `json:"durationMinutes"`
	BufferBeforeMinutes int     `json:"bufferTimeBefore"`
	BufferAfterMinutes  int     `json:"bufferTimeAfter"`
	Status              string  `json:"status"`
	Notes               *string `json:"notes,omitempty"`

	RescheduledFromID *int64 `json:"rescheduledFromId,omitempty"`
	SupersededByID    *int64 `json:"supersededById,omitempty"`

	CancelledAt *string `json:"cancelledAt,omitempty"` // ISO 8601
	Version     int64   `json:"version"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AppointmentListResponse ответ со списком записей
type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
}

// Методы конвертации

// FromDomainAppointment конвертирует domain модель в DTO
func FromDomainAppointment(a *domain.Appointment) *AppointmentResponse {
	if a == nil {
		return nil
	}

	resp := &AppointmentResponse{
		ID:                  a.ID,
		SalonID:             a.SalonID,
		ClientID:            a.ClientID,
		StaffMemberID:       a.StaffMemberID,
		ServiceID:           a.ServiceID,
		Date:                a.Date.Format(domain.DateFormat),
		StartTime:           a.StartTime.String(),
		EndTime:             a.EndTime.String(),
		DurationMinutes:     a.DurationMinutes,
		BufferBeforeMinutes: a.BufferBeforeMinutes,
		BufferAfterMinutes:  a.BufferAfterMinutes,
		Status:              string(a.Status),
		Notes:               a.Notes,
		RescheduledFromID:   a.RescheduledFromID,
		SupersededByID:      a.SupersededByID,
		Version:             a.Version,
		CreatedAt:           a.CreatedAt,
		UpdatedAt:           a.UpdatedAt,
	}

	if a.CancelledAt != nil {
		cancelled := a.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelled
	}

	return resp
}

// FromDomainAppointmentList конвертирует список domain моделей в DTO
func FromDomainAppointmentList(appointments []*domain.Appointment) *AppointmentListResponse {
	resp := &AppointmentListResponse{
		Appointments: make([]AppointmentResponse, 0, len(appointments)),
	}

	for _, a := range appointments {
		if r := FromDomainAppointment(a); r != nil {
			resp.Appointments = append(resp.Appointments, *r)
		}
	}

	return resp
}

// ToDomainStatus конвертирует строку в domain.AppointmentStatus с валидацией
func ToDomainStatus(status string) (domain.AppointmentStatus, error) {
	s := domain.AppointmentStatus(status)
	if !s.IsValid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}
