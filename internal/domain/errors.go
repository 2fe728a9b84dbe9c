package domain

import (
	"errors"
	"fmt"
)

// Виды ошибок ядра планирования. Пакеты оборачивают их своими
// sentinel-ошибками, обработчики HTTP выбирают код ответа по виду.
var (
	ErrValidation             = errors.New("validation error")
	ErrNotFound               = errors.New("not found")
	ErrConflict               = errors.New("conflict")
	ErrQuotaExceeded          = errors.New("quota exceeded")
	ErrInvalidStateTransition = errors.New("invalid state transition")
	ErrStaleWrite             = errors.New("stale write")
	ErrUnavailable            = errors.New("unavailable")
)

// ConflictReason причина, по которой слот не может быть занят
type ConflictReason string

const (
	ConflictOutsideWorkingHours  ConflictReason = "outside_working_hours"
	ConflictOverlapsBreak        ConflictReason = "overlaps_break"
	ConflictOverlapsAppointment  ConflictReason = "overlaps_appointment"
	ConflictOutsideBookingWindow ConflictReason = "outside_booking_window"
)

// ConflictError конфликт слота с календарём
type ConflictError struct {
	Reason        ConflictReason
	ConflictingID int64 // только для ConflictOverlapsAppointment
}

func (e *ConflictError) Error() string {
	if e.Reason == ConflictOverlapsAppointment {
		return fmt.Sprintf("conflict: %s (appointment id=%d)", e.Reason, e.ConflictingID)
	}
	return fmt.Sprintf("conflict: %s", e.Reason)
}

func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}

// QuotaLimit имя ограничения тарифа
type QuotaLimit string

const (
	LimitAppointments QuotaLimit = "appointments"
	LimitStaff        QuotaLimit = "staff"
	LimitServices     QuotaLimit = "services"
)

// QuotaError превышение лимита тарифа
type QuotaError struct {
	Limit   QuotaLimit
	Current int
	Max     int
}

func (e *QuotaError) Error() string {
	return fmt.Sprintf("quota exceeded: %s (current=%d, max=%d)", e.Limit, e.Current, e.Max)
}

func (e *QuotaError) Is(target error) bool {
	return target == ErrQuotaExceeded
}

// TransitionError недопустимый переход статуса записи
type TransitionError struct {
	From   AppointmentStatus
	To     AppointmentStatus
	Reason string
}

func (e *TransitionError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("invalid state transition %s -> %s: %s", e.From, e.To, e.Reason)
	}
	return fmt.Sprintf("invalid state transition %s -> %s", e.From, e.To)
}

func (e *TransitionError) Is(target error) bool {
	return target == ErrInvalidStateTransition
}

// Kind возвращает машиночитаемое имя вида ошибки
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrValidation):
		return "validation"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrConflict):
		return "conflict"
	case errors.Is(err, ErrQuotaExceeded):
		return "quota_exceeded"
	case errors.Is(err, ErrInvalidStateTransition):
		return "invalid_state_transition"
	case errors.Is(err, ErrStaleWrite):
		return "stale_write"
	case errors.Is(err, ErrUnavailable):
		return "unavailable"
	default:
		return "internal"
	}
}
