package domain

import (
	"time"

	"github.com/Trio-Ads/saloneo-deploy-sub005/pkg/types"
)

// Appointment запись клиента к мастеру.
// Хранит только идентификаторы мастера, услуги и клиента; длительность и
// буферы услуги фиксируются в момент записи, чтобы последующее изменение
// услуги не сдвигало уже занятые интервалы.
type Appointment struct {
	ID                  int64
	SalonID             int64
	ClientID            int64
	StaffMemberID       int64
	ServiceID           int64
	Date                time.Time // календарная дата в зоне салона
	StartTime           types.TimeString
	EndTime             types.TimeString // StartTime + DurationMinutes
	DurationMinutes     int
	BufferBeforeMinutes int
	BufferAfterMinutes  int
	Status              AppointmentStatus
	Notes               *string

	RescheduledFromID *int64 // исходная запись, если эта создана переносом
	SupersededByID    *int64 // новая запись, если эта перенесена

	CancelledAt *time.Time
	Version     int64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Interval видимый интервал записи
func (a *Appointment) Interval() Interval {
	return NewInterval(a.StartTime, a.DurationMinutes)
}

// BufferedInterval интервал записи с буферами до и после
func (a *Appointment) BufferedInterval() Interval {
	return a.Interval().Expand(a.BufferBeforeMinutes, a.BufferAfterMinutes)
}

// HoldsSlot true, если запись занимает интервал в календаре
func (a *Appointment) HoldsSlot() bool {
	return a.Status.HoldsSlot()
}

// StartAt момент начала в зоне loc
func (a *Appointment) StartAt(loc *time.Location) time.Time {
	return a.StartTime.On(a.Date, loc)
}

// EndAt момент окончания в зоне loc
func (a *Appointment) EndAt(loc *time.Location) time.Time {
	return a.StartAt(loc).Add(time.Duration(a.DurationMinutes) * time.Minute)
}

// AppointmentFilter фильтр для выборки записей салона
type AppointmentFilter struct {
	SalonID       int64
	StaffMemberID *int64
	StartDate     *time.Time
	EndDate       *time.Time
	Statuses      []AppointmentStatus
	Limit         int
	Offset        int
}
