package domain

import (
	"fmt"
	"strings"
	"time"
)

// StaffMember мастер салона, ресурс для записи
type StaffMember struct {
	ID       int64
	SalonID  int64
	Name     string
	Color    string // только для UI
	IsActive bool
	Schedule WeeklySchedule

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate проверяет мастера перед сохранением
func (s *StaffMember) Validate() error {
	if s.SalonID <= 0 {
		return fmt.Errorf("%w: salonID must be positive", ErrValidation)
	}
	name := strings.TrimSpace(s.Name)
	if name == "" || len(name) > MaxNameLength {
		return fmt.Errorf("%w: name must be 1..%d characters", ErrValidation, MaxNameLength)
	}
	return s.Schedule.Validate()
}
