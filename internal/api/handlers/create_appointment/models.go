package create_appointment

import (
	"errors"
	"time"

	"github.com/Trio-Ads/saloneo-deploy-sub005/internal/domain"
	createAppointment "github.com/Trio-Ads/saloneo-deploy-sub005/internal/usecase/create_appointment"
	"github.com/Trio-Ads/saloneo-deploy-sub005/pkg/types"
)

var (
	errInvalidDate = errors.New("invalid date")
	errInvalidTime = errors.New("invalid start time")
)

// CreateAppointmentRequest HTTP request model
type CreateAppointmentRequest struct {
	ClientID  int64   `json:"clientId" validate:"required,gt=0"`
	StaffID   int64   `json:"staffId" validate:"required,gt=0"`
	ServiceID int64   `json:"serviceId" validate:"required,gt=0"`
	Date      string  `json:"date" validate:"required"`      // "2025-06-02"
	StartTime string  `json:"startTime" validate:"required"` // "10:00"
	Notes     *string `json:"notes,omitempty" validate:"omitempty,max=500"`
	Source    string  `json:"source,omitempty" validate:"omitempty,oneof=online salon"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateAppointmentRequest) ToUseCaseRequest(salonID int64) (*createAppointment.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, errInvalidDate
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, errInvalidTime
	}

	origin := domain.OriginOnline
	if r.Source != "" {
		origin = domain.Origin(r.Source)
	}

	return &createAppointment.Request{
		SalonID:       salonID,
		ClientID:      r.ClientID,
		StaffMemberID: r.StaffID,
		ServiceID:     r.ServiceID,
		Date:          date,
		StartTime:     startTime,
		Notes:         r.Notes,
		Origin:        origin,
	}, nil
}
