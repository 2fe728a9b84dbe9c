package domain

import (
	"fmt"
	"time"
)

// Plan тариф подписки салона
type Plan string

const (
	PlanFree       Plan = "FREE"
	PlanStarter    Plan = "STARTER"
	PlanPro        Plan = "PRO"
	PlanEnterprise Plan = "ENTERPRISE"
)

// IsValid проверяет значение тарифа
func (p Plan) IsValid() bool {
	switch p {
	case PlanFree, PlanStarter, PlanPro, PlanEnterprise:
		return true
	}
	return false
}

// PlanLimits лимиты тарифа; 0 = без ограничения
type PlanLimits struct {
	MaxAppointmentsPerMonth int
	MaxStaff                int
	MaxServices             int
}

// DefaultPlanLimits лимиты тарифов, если сервис подписок не вернул своих
func DefaultPlanLimits(plan Plan) PlanLimits {
	switch plan {
	case PlanFree:
		return PlanLimits{MaxAppointmentsPerMonth: 50, MaxStaff: 2, MaxServices: 10}
	case PlanStarter:
		return PlanLimits{MaxAppointmentsPerMonth: 300, MaxStaff: 5, MaxServices: 30}
	case PlanPro:
		return PlanLimits{MaxAppointmentsPerMonth: 2000, MaxStaff: 20, MaxServices: 100}
	default:
		return PlanLimits{}
	}
}

// Salon салон: владелец мастеров, услуг и записей.
// Все даты и время записей хранятся в локальном времени салона (Timezone).
type Salon struct {
	ID                         int64
	Name                       string
	Timezone                   string // IANA, например "Africa/Algiers"
	Plan                       Plan
	Limits                     PlanLimits
	AllowUnconfirmedCompletion bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Location зона салона; пустая зона означает UTC
func (s *Salon) Location() (*time.Location, error) {
	if s.Timezone == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return nil, fmt.Errorf("%w: salon id=%d timezone %q: %v", ErrValidation, s.ID, s.Timezone, err)
	}
	return loc, nil
}

// Policy политика переходов статусов салона
func (s *Salon) Policy() TransitionPolicy {
	return TransitionPolicy{AllowUnconfirmedCompletion: s.AllowUnconfirmedCompletion}
}
