package domain

import (
	"slices"
	"time"
)

// AppointmentStatus статус записи
type AppointmentStatus string

const (
	StatusScheduled   AppointmentStatus = "scheduled"
	StatusConfirmed   AppointmentStatus = "confirmed"
	StatusCompleted   AppointmentStatus = "completed"
	StatusCancelled   AppointmentStatus = "cancelled"
	StatusNoShow      AppointmentStatus = "no_show"
	StatusRescheduled AppointmentStatus = "rescheduled"
)

// transitions допустимые переходы без учёта политики и времени
var transitions = map[AppointmentStatus][]AppointmentStatus{
	StatusScheduled: {StatusConfirmed, StatusCompleted, StatusCancelled, StatusNoShow, StatusRescheduled},
	StatusConfirmed: {StatusCompleted, StatusCancelled, StatusNoShow, StatusRescheduled},
}

// IsValid проверяет значение статуса
func (s AppointmentStatus) IsValid() bool {
	switch s {
	case StatusScheduled, StatusConfirmed, StatusCompleted, StatusCancelled, StatusNoShow, StatusRescheduled:
		return true
	}
	return false
}

// IsTerminal true для статусов без исходящих переходов
func (s AppointmentStatus) IsTerminal() bool {
	return len(transitions[s]) == 0
}

// HoldsSlot true для scheduled и confirmed
func (s AppointmentStatus) HoldsSlot() bool {
	return slices.Contains(HoldingStatuses, s)
}

// TransitionPolicy настройки салона, влияющие на переходы
type TransitionPolicy struct {
	AllowUnconfirmedCompletion bool
}

// CanTransition проверяет переход по таблице и политике, без учёта времени
func CanTransition(from, to AppointmentStatus, policy TransitionPolicy) error {
	if !to.IsValid() {
		return &TransitionError{From: from, To: to, Reason: "unknown target status"}
	}
	if !slices.Contains(transitions[from], to) {
		return &TransitionError{From: from, To: to}
	}
	if from == StatusScheduled && to == StatusCompleted && !policy.AllowUnconfirmedCompletion {
		return &TransitionError{From: from, To: to, Reason: "appointment must be confirmed first"}
	}
	return nil
}

// ValidateTransition полная проверка перехода записи на момент now:
// завершить можно не раньше окончания, отметить неявку не раньше начала.
func ValidateTransition(a *Appointment, to AppointmentStatus, now time.Time, loc *time.Location, policy TransitionPolicy) error {
	if err := CanTransition(a.Status, to, policy); err != nil {
		return err
	}

	switch to {
	case StatusCompleted:
		if now.Before(a.EndAt(loc)) {
			return &TransitionError{From: a.Status, To: to, Reason: "appointment has not ended yet"}
		}
	case StatusNoShow:
		if now.Before(a.StartAt(loc)) {
			return &TransitionError{From: a.Status, To: to, Reason: "appointment has not started yet"}
		}
	}
	return nil
}

// ApplyTransition переводит запись в статус to, заполняя служебные поля.
// Проверка перехода должна быть выполнена заранее.
func ApplyTransition(a *Appointment, to AppointmentStatus, now time.Time) {
	a.Status = to
	a.UpdatedAt = now
	if to == StatusCancelled {
		cancelledAt := now
		a.CancelledAt = &cancelledAt
	}
}
