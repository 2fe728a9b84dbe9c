package domain

import "time"

// Значения по умолчанию
const (
	DefaultSlotStepMinutes   = 15
	DefaultMaxRangeDays      = 31
	DefaultStaleWriteRetries = 1
)

// Ограничения бизнес-валидации
const (
	MinServiceDurationMinutes = 1
	MaxServiceDurationMinutes = 720 // 12 часов
	MaxBufferMinutes          = 240
	MaxAdvanceBookingDays     = 365
	MaxNotesLength            = 500
	MaxNameLength             = 100
	MaxBreaksPerDay           = 10
)

// Форматы даты и времени
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Origin источник запроса на запись
type Origin string

const (
	OriginOnline Origin = "online" // клиент сам через виджет
	OriginSalon  Origin = "salon"  // администратор салона
)

// IsValid проверяет значение источника
func (o Origin) IsValid() bool {
	return o == OriginOnline || o == OriginSalon
}

// HoldingStatuses статусы, удерживающие интервал в календаре мастера
var HoldingStatuses = []AppointmentStatus{
	StatusScheduled,
	StatusConfirmed,
}

// BillableStatuses статусы, учитываемые в квоте записей за период.
// Отменённые и перенесённые (заменённые новой записью) не считаются.
var BillableStatuses = []AppointmentStatus{
	StatusScheduled,
	StatusConfirmed,
	StatusCompleted,
	StatusNoShow,
}

// DateOnly обнуляет время, сохраняя календарную дату
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween количество календарных дней от from до to (может быть отрицательным)
func DaysBetween(from, to time.Time) int {
	return int(DateOnly(to).Sub(DateOnly(from)).Hours() / 24)
}
