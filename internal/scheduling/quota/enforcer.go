// Package quota проверяет лимиты тарифа салона перед созданием записей,
// мастеров и услуг. Календарь и конфликты здесь не рассматриваются.
package quota

import (
	"context"
	"fmt"
	"time"

	"github.com/Trio-Ads/saloneo-deploy-sub005/internal/domain"
)

// Enforcer проверка лимитов тарифа
type Enforcer struct {
	appointments AppointmentCounter
	staff        ActiveCounter
	services     ActiveCounter
	limits       LimitsProvider
	metrics      MetricsRecorder
	logger       Logger
}

// NewEnforcer создает проверку лимитов; metrics может быть nil
func NewEnforcer(
	appointments AppointmentCounter,
	staff ActiveCounter,
	services ActiveCounter,
	limits LimitsProvider,
	metrics MetricsRecorder,
	logger Logger,
) *Enforcer {
	return &Enforcer{
		appointments: appointments,
		staff:        staff,
		services:     services,
		limits:       limits,
		metrics:      metrics,
		logger:       logger,
	}
}

// BillingPeriod календарный месяц, содержащий now, в зоне now: [from, to)
func BillingPeriod(now time.Time) (time.Time, time.Time) {
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	return from, from.AddDate(0, 1, 0)
}

// CheckAppointment проверяет, можно ли создать ещё одну запись.
// now в зоне салона. released: сколько записей текущего периода
// освобождается этой же операцией (перенос заменяет исходную запись).
// Также отклоняет запись, если активных мастеров или услуг больше,
// чем разрешает тариф (например, после понижения тарифа).
func (e *Enforcer) CheckAppointment(ctx context.Context, salon *domain.Salon, now time.Time, released int) error {
	limits, err := e.getLimits(ctx, salon)
	if err != nil {
		return err
	}

	if limits.MaxAppointmentsPerMonth > 0 {
		from, to := BillingPeriod(now)
		current, err := e.appointments.CountBillableCreated(ctx, salon.ID, from, to)
		if err != nil {
			e.logger.Error("QuotaCheck: failed to count appointments salon=%d: %v", salon.ID, err)
			return fmt.Errorf("%w: appointments: %v", ErrCountUsage, err)
		}
		if current-released >= limits.MaxAppointmentsPerMonth {
			return e.reject(salon.ID, domain.LimitAppointments, current, limits.MaxAppointmentsPerMonth)
		}
	}

	if limits.MaxStaff > 0 {
		current, err := e.staff.CountActive(ctx, salon.ID)
		if err != nil {
			e.logger.Error("QuotaCheck: failed to count staff salon=%d: %v", salon.ID, err)
			return fmt.Errorf("%w: staff: %v", ErrCountUsage, err)
		}
		if current > limits.MaxStaff {
			return e.reject(salon.ID, domain.LimitStaff, current, limits.MaxStaff)
		}
	}

	if limits.MaxServices > 0 {
		current, err := e.services.CountActive(ctx, salon.ID)
		if err != nil {
			e.logger.Error("QuotaCheck: failed to count services salon=%d: %v", salon.ID, err)
			return fmt.Errorf("%w: services: %v", ErrCountUsage, err)
		}
		if current > limits.MaxServices {
			return e.reject(salon.ID, domain.LimitServices, current, limits.MaxServices)
		}
	}

	return nil
}

// CheckNewStaff проверяет, можно ли добавить активного мастера
func (e *Enforcer) CheckNewStaff(ctx context.Context, salon *domain.Salon) error {
	limits, err := e.getLimits(ctx, salon)
	if err != nil {
		return err
	}
	if limits.MaxStaff == 0 {
		return nil
	}

	current, err := e.staff.CountActive(ctx, salon.ID)
	if err != nil {
		e.logger.Error("QuotaCheck: failed to count staff salon=%d: %v", salon.ID, err)
		return fmt.Errorf("%w: staff: %v", ErrCountUsage, err)
	}
	if current >= limits.MaxStaff {
		return e.reject(salon.ID, domain.LimitStaff, current, limits.MaxStaff)
	}
	return nil
}

// CheckNewService проверяет, можно ли добавить активную услугу
func (e *Enforcer) CheckNewService(ctx context.Context, salon *domain.Salon) error {
	limits, err := e.getLimits(ctx, salon)
	if err != nil {
		return err
	}
	if limits.MaxServices == 0 {
		return nil
	}

	current, err := e.services.CountActive(ctx, salon.ID)
	if err != nil {
		e.logger.Error("QuotaCheck: failed to count services salon=%d: %v", salon.ID, err)
		return fmt.Errorf("%w: services: %v", ErrCountUsage, err)
	}
	if current >= limits.MaxServices {
		return e.reject(salon.ID, domain.LimitServices, current, limits.MaxServices)
	}
	return nil
}

func (e *Enforcer) getLimits(ctx context.Context, salon *domain.Salon) (domain.PlanLimits, error) {
	limits, err := e.limits.GetPlanLimits(ctx, salon)
	if err != nil {
		e.logger.Error("QuotaCheck: failed to get plan limits salon=%d: %v", salon.ID, err)
		return domain.PlanLimits{}, fmt.Errorf("%w: %v", ErrLimitsUnavailable, err)
	}
	return limits, nil
}

func (e *Enforcer) reject(salonID int64, limit domain.QuotaLimit, current, maximum int) error {
	e.logger.Warn("QuotaCheck: salon=%d limit=%s current=%d max=%d", salonID, limit, current, maximum)
	if e.metrics != nil {
		e.metrics.RecordQuotaRejection(string(limit))
	}
	return &domain.QuotaError{Limit: limit, Current: current, Max: maximum}
}
