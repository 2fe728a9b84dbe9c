package reschedule_appointment

import (
	"errors"
	"time"

	"github.com/Trio-Ads/saloneo-deploy-sub005/internal/domain"
	"github.com/Trio-Ads/saloneo-deploy-sub005/internal/service/appointments/models"
	rescheduleAppointment "github.com/Trio-Ads/saloneo-deploy-sub005/internal/usecase/reschedule_appointment"
	"github.com/Trio-Ads/saloneo-deploy-sub005/pkg/types"
)

var (
	errInvalidDate = errors.New("invalid date")
	errInvalidTime = errors.New("invalid start time")
)

// RescheduleRequest HTTP request model; staffId не указан - тот же мастер
type RescheduleRequest struct {
	StaffID         *int64 `json:"staffId,omitempty" validate:"omitempty,gt=0"`
	Date            string `json:"date" validate:"required"`
	StartTime       string `json:"startTime" validate:"required"`
	ExpectedVersion *int64 `json:"expectedVersion,omitempty" validate:"omitempty,gt=0"`
}

// RescheduleResponse новая запись и исходная, помеченная как перенесённая
type RescheduleResponse struct {
	Appointment *models.AppointmentResponse `json:"appointment"`
	Original    *models.AppointmentResponse `json:"original"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *RescheduleRequest) ToUseCaseRequest(salonID, appointmentID int64) (*rescheduleAppointment.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, errInvalidDate
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, errInvalidTime
	}

	return &rescheduleAppointment.Request{
		SalonID:         salonID,
		AppointmentID:   appointmentID,
		StaffMemberID:   r.StaffID,
		Date:            date,
		StartTime:       startTime,
		ExpectedVersion: r.ExpectedVersion,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *rescheduleAppointment.Response) *RescheduleResponse {
	return &RescheduleResponse{
		Appointment: models.FromDomainAppointment(resp.Appointment),
		Original:    models.FromDomainAppointment(resp.Original),
	}
}
