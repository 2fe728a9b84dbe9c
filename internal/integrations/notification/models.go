package notification

import (
	"time"

	"github.com/Trio-Ads/saloneo-deploy-sub005/internal/domain"
)

// EventType тип события записи
type EventType string

const (
	EventScheduled EventType = "appointment.scheduled"
	EventConfirmed EventType = "appointment.confirmed"
	EventCancelled EventType = "appointment.cancelled"
)

// eventTypes статусы, о которых уведомляется клиент
var eventTypes = map[domain.AppointmentStatus]EventType{
	domain.StatusScheduled: EventScheduled,
	domain.StatusConfirmed: EventConfirmed,
	domain.StatusCancelled: EventCancelled,
}

// Event сообщение для сервиса SMS/email уведомлений
type Event struct {
	ID                string    `json:"id"`
	Type              EventType `json:"type"`
	AppointmentID     int64     `json:"appointmentId"`
	SalonID           int64     `json:"salonId"`
	ClientID          int64     `json:"clientId"`
	StaffMemberID     int64     `json:"staffMemberId"`
	ServiceID         int64     `json:"serviceId"`
	Date              string    `json:"date"`
	StartTime         string    `json:"startTime"`
	EndTime           string    `json:"endTime"`
	Status            string    `json:"status"`
	RescheduledFromID *int64    `json:"rescheduledFromId,omitempty"`
	OccurredAt        time.Time `json:"occurredAt"`
}
