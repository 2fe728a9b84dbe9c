package domain

import (
	"fmt"
	"strings"
	"time"
)

// Service услуга салона
type Service struct {
	ID                   int64
	SalonID              int64
	Name                 string
	DurationMinutes      int
	BufferBeforeMinutes  int
	BufferAfterMinutes   int
	MinAdvanceDays       int
	MaxAdvanceDays       int // 0 = без ограничения
	OnlineBookingEnabled bool
	IsActive             bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate проверяет услугу перед сохранением
func (s *Service) Validate() error {
	if s.SalonID <= 0 {
		return fmt.Errorf("%w: salonID must be positive", ErrValidation)
	}
	name := strings.TrimSpace(s.Name)
	if name == "" || len(name) > MaxNameLength {
		return fmt.Errorf("%w: name must be 1..%d characters", ErrValidation, MaxNameLength)
	}
	if s.DurationMinutes < MinServiceDurationMinutes || s.DurationMinutes > MaxServiceDurationMinutes {
		return fmt.Errorf("%w: duration must be between %d and %d minutes",
			ErrValidation, MinServiceDurationMinutes, MaxServiceDurationMinutes)
	}
	if s.BufferBeforeMinutes < 0 || s.BufferBeforeMinutes > MaxBufferMinutes {
		return fmt.Errorf("%w: bufferTimeBefore must be between 0 and %d", ErrValidation, MaxBufferMinutes)
	}
	if s.BufferAfterMinutes < 0 || s.BufferAfterMinutes > MaxBufferMinutes {
		return fmt.Errorf("%w: bufferTimeAfter must be between 0 and %d", ErrValidation, MaxBufferMinutes)
	}
	if s.MinAdvanceDays < 0 || s.MinAdvanceDays > MaxAdvanceBookingDays {
		return fmt.Errorf("%w: minAdvanceBooking must be between 0 and %d", ErrValidation, MaxAdvanceBookingDays)
	}
	if s.MaxAdvanceDays < 0 || s.MaxAdvanceDays > MaxAdvanceBookingDays {
		return fmt.Errorf("%w: maxAdvanceBooking must be between 0 and %d", ErrValidation, MaxAdvanceBookingDays)
	}
	if s.MaxAdvanceDays != 0 && s.MaxAdvanceDays < s.MinAdvanceDays {
		return fmt.Errorf("%w: maxAdvanceBooking must not be less than minAdvanceBooking", ErrValidation)
	}
	return nil
}

// WithinBookingWindow проверяет окно предварительной записи:
// начало строго позже now, а число календарных дней от now до даты
// записи в пределах [MinAdvanceDays, MaxAdvanceDays].
// start и now должны быть в зоне салона.
func (s *Service) WithinBookingWindow(start, now time.Time) bool {
	if !start.After(now) {
		return false
	}
	days := DaysBetween(now, start)
	if days < s.MinAdvanceDays {
		return false
	}
	return s.MaxAdvanceDays == 0 || days <= s.MaxAdvanceDays
}
