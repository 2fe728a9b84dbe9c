package conflict

import (
	"context"
	"fmt"
	"time"

	"github.com/Trio-Ads/saloneo-deploy-sub005/internal/domain"
	"github.com/Trio-Ads/saloneo-deploy-sub005/pkg/types"
)

// Candidate проверяемая запись
type Candidate struct {
	StaffMemberID       int64
	Date                time.Time
	StartTime           types.TimeString
	DurationMinutes     int
	BufferBeforeMinutes int
	BufferAfterMinutes  int
	// ExcludeAppointmentID запись, которая не считается конфликтующей (перенос)
	ExcludeAppointmentID *int64
}

// CandidateFor строит кандидата для услуги
func CandidateFor(service *domain.Service, staffID int64, date time.Time, start types.TimeString) Candidate {
	return Candidate{
		StaffMemberID:       staffID,
		Date:                domain.DateOnly(date),
		StartTime:           start,
		DurationMinutes:     service.DurationMinutes,
		BufferBeforeMinutes: service.BufferBeforeMinutes,
		BufferAfterMinutes:  service.BufferAfterMinutes,
	}
}

// Interval видимый интервал кандидата
func (c Candidate) Interval() domain.Interval {
	return domain.NewInterval(c.StartTime, c.DurationMinutes)
}

// BufferedInterval интервал кандидата с буферами
func (c Candidate) BufferedInterval() domain.Interval {
	return c.Interval().Expand(c.BufferBeforeMinutes, c.BufferAfterMinutes)
}

// Evaluate проверяет кандидата без обращения к хранилищу.
// Порядок проверок: окно записи, рабочие часы, перерывы, другие записи.
// Возвращает nil или *domain.ConflictError.
func Evaluate(
	staff *domain.StaffMember,
	service *domain.Service,
	c Candidate,
	existing []*domain.Appointment,
	now time.Time,
	loc *time.Location,
) error {
	if !service.WithinBookingWindow(c.StartTime.On(c.Date, loc), now) {
		return &domain.ConflictError{Reason: domain.ConflictOutsideBookingWindow}
	}

	buffered := c.BufferedInterval()

	window, ok := domain.WorkingWindow(staff, c.Date)
	if !ok || !window.Contains(buffered) {
		return &domain.ConflictError{Reason: domain.ConflictOutsideWorkingHours}
	}

	for _, b := range domain.BreaksOn(staff, c.Date) {
		if b.Overlaps(buffered) {
			return &domain.ConflictError{Reason: domain.ConflictOverlapsBreak}
		}
	}

	for _, a := range existing {
		if !a.HoldsSlot() || a.StaffMemberID != c.StaffMemberID {
			continue
		}
		if c.ExcludeAppointmentID != nil && a.ID == *c.ExcludeAppointmentID {
			continue
		}
		if !domain.DateOnly(a.Date).Equal(c.Date) {
			continue
		}
		if a.BufferedInterval().Overlaps(buffered) {
			return &domain.ConflictError{Reason: domain.ConflictOverlapsAppointment, ConflictingID: a.ID}
		}
	}

	return nil
}

// Detector проверяет кандидата по актуальному календарю мастера
type Detector struct {
	appointmentRepo AppointmentRepository
	metrics         MetricsRecorder
	logger          Logger
}

// NewDetector создает детектор; metrics может быть nil
func NewDetector(appointmentRepo AppointmentRepository, metrics MetricsRecorder, logger Logger) *Detector {
	return &Detector{
		appointmentRepo: appointmentRepo,
		metrics:         metrics,
		logger:          logger,
	}
}

// Check загружает удерживающие записи мастера на дату кандидата и
// проверяет его. Вызывается внутри транзакции записи, чтобы проверка
// и вставка были атомарны.
func (d *Detector) Check(
	ctx context.Context,
	staff *domain.StaffMember,
	service *domain.Service,
	c Candidate,
	now time.Time,
	loc *time.Location,
) error {
	existing, err := d.appointmentRepo.ListHoldingByStaff(ctx, c.StaffMemberID, c.Date, c.Date)
	if err != nil {
		d.logger.Error("ConflictCheck: failed to load appointments staff=%d date=%s: %v",
			c.StaffMemberID, c.Date.Format(domain.DateFormat), err)
		return fmt.Errorf("%w: %v", ErrLoadAppointments, err)
	}

	if err := Evaluate(staff, service, c, existing, now, loc); err != nil {
		d.logger.Warn("ConflictCheck: staff=%d date=%s start=%s: %v",
			c.StaffMemberID, c.Date.Format(domain.DateFormat), c.StartTime, err)
		if ce, ok := err.(*domain.ConflictError); ok && d.metrics != nil {
			d.metrics.RecordConflict(string(ce.Reason))
		}
		return err
	}

	return nil
}
