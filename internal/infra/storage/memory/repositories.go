package memory

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/Trio-Ads/saloneo-deploy-sub005/internal/domain"
)

// SalonRepository чтение салонов
type SalonRepository struct{ s *Store }

// Salons репозиторий салонов
func (s *Store) Salons() *SalonRepository { return &SalonRepository{s: s} }

func (r *SalonRepository) GetByID(ctx context.Context, id int64) (*domain.Salon, error) {
	defer r.s.lock(ctx)()

	salon, ok := r.s.data.salons[id]
	if !ok {
		return nil, ErrSalonNotFound
	}
	out := *salon
	return &out, nil
}

// ClientRepository чтение клиентов
type ClientRepository struct{ s *Store }

// Clients репозиторий клиентов
func (s *Store) Clients() *ClientRepository { return &ClientRepository{s: s} }

func (r *ClientRepository) GetByID(ctx context.Context, salonID, id int64) (*domain.Client, error) {
	defer r.s.lock(ctx)()

	c, ok := r.s.data.clients[id]
	if !ok || c.SalonID != salonID {
		return nil, ErrClientNotFound
	}
	return cloneClient(c), nil
}

// StaffRepository мастера
type StaffRepository struct{ s *Store }

// Staff репозиторий мастеров
func (s *Store) Staff() *StaffRepository { return &StaffRepository{s: s} }

func (r *StaffRepository) Create(ctx context.Context, staff *domain.StaffMember) (*domain.StaffMember, error) {
	defer r.s.lock(ctx)()

	c := cloneStaff(staff)
	c.ID = r.s.nextID("staff")
	now := r.s.clock.Now()
	c.CreatedAt, c.UpdatedAt = now, now
	r.s.data.staff[c.ID] = c
	return cloneStaff(c), nil
}

func (r *StaffRepository) GetByID(ctx context.Context, salonID, id int64) (*domain.StaffMember, error) {
	defer r.s.lock(ctx)()

	staff, ok := r.s.data.staff[id]
	if !ok || staff.SalonID != salonID {
		return nil, ErrStaffNotFound
	}
	return cloneStaff(staff), nil
}

// LockByID в памяти равносилен GetByID: транзакция и так держит общий мьютекс
func (r *StaffRepository) LockByID(ctx context.Context, salonID, id int64) (*domain.StaffMember, error) {
	return r.GetByID(ctx, salonID, id)
}

func (r *StaffRepository) Update(ctx context.Context, staff *domain.StaffMember) (*domain.StaffMember, error) {
	defer r.s.lock(ctx)()

	existing, ok := r.s.data.staff[staff.ID]
	if !ok || existing.SalonID != staff.SalonID {
		return nil, ErrStaffNotFound
	}
	c := cloneStaff(staff)
	c.CreatedAt = existing.CreatedAt
	c.UpdatedAt = r.s.clock.Now()
	r.s.data.staff[c.ID] = c
	return cloneStaff(c), nil
}

func (r *StaffRepository) Delete(ctx context.Context, salonID, id int64) error {
	defer r.s.lock(ctx)()

	existing, ok := r.s.data.staff[id]
	if !ok || existing.SalonID != salonID {
		return ErrStaffNotFound
	}
	delete(r.s.data.staff, id)
	return nil
}

func (r *StaffRepository) CountActive(ctx context.Context, salonID int64) (int, error) {
	defer r.s.lock(ctx)()

	count := 0
	for _, staff := range r.s.data.staff {
		if staff.SalonID == salonID && staff.IsActive {
			count++
		}
	}
	return count, nil
}

// ServiceRepository услуги
type ServiceRepository struct{ s *Store }

// Services репозиторий услуг
func (s *Store) Services() *ServiceRepository { return &ServiceRepository{s: s} }

func (r *ServiceRepository) Create(ctx context.Context, svc *domain.Service) (*domain.Service, error) {
	defer r.s.lock(ctx)()

	c := *svc
	c.ID = r.s.nextID("services")
	now := r.s.clock.Now()
	c.CreatedAt, c.UpdatedAt = now, now
	r.s.data.services[c.ID] = &c
	out := c
	return &out, nil
}

func (r *ServiceRepository) GetByID(ctx context.Context, salonID, id int64) (*domain.Service, error) {
	defer r.s.lock(ctx)()

	svc, ok := r.s.data.services[id]
	if !ok || svc.SalonID != salonID {
		return nil, ErrServiceNotFound
	}
	out := *svc
	return &out, nil
}

func (r *ServiceRepository) Update(ctx context.Context, svc *domain.Service) (*domain.Service, error) {
	defer r.s.lock(ctx)()

	existing, ok := r.s.data.services[svc.ID]
	if !ok || existing.SalonID != svc.SalonID {
		return nil, ErrServiceNotFound
	}
	c := *svc
	c.CreatedAt = existing.CreatedAt
	c.UpdatedAt = r.s.clock.Now()
	r.s.data.services[c.ID] = &c
	out := c
	return &out, nil
}

func (r *ServiceRepository) CountActive(ctx context.Context, salonID int64) (int, error) {
	defer r.s.lock(ctx)()

	count := 0
	for _, svc := range r.s.data.services {
		if svc.SalonID == salonID && svc.IsActive {
			count++
		}
	}
	return count, nil
}

// AppointmentRepository записи
type AppointmentRepository struct{ s *Store }

// Appointments репозиторий записей
func (s *Store) Appointments() *AppointmentRepository { return &AppointmentRepository{s: s} }

// Create сохраняет запись. Как и ограничение исключения в PostgreSQL,
// отклоняет пересечение с удерживающей записью того же мастера.
func (r *AppointmentRepository) Create(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	defer r.s.lock(ctx)()

	if a.HoldsSlot() {
		buffered := a.BufferedInterval()
		for _, other := range r.s.data.appointments {
			if other.StaffMemberID != a.StaffMemberID || !other.HoldsSlot() || !other.Date.Equal(domain.DateOnly(a.Date)) {
				continue
			}
			if other.BufferedInterval().Overlaps(buffered) {
				return nil, fmt.Errorf("memory: Create: %w",
					&domain.ConflictError{Reason: domain.ConflictOverlapsAppointment, ConflictingID: other.ID})
			}
		}
	}

	c := cloneAppointment(a)
	c.ID = r.s.nextID("appointments")
	c.Date = domain.DateOnly(c.Date)
	c.Version = 1
	now := r.s.clock.Now()
	c.CreatedAt, c.UpdatedAt = now, now
	r.s.data.appointments[c.ID] = c
	return cloneAppointment(c), nil
}

func (r *AppointmentRepository) GetByID(ctx context.Context, salonID, id int64) (*domain.Appointment, error) {
	defer r.s.lock(ctx)()

	a, ok := r.s.data.appointments[id]
	if !ok || a.SalonID != salonID {
		return nil, ErrAppointmentNotFound
	}
	return cloneAppointment(a), nil
}

// ListHoldingByStaff удерживающие записи мастера с from по to включительно;
// нулевой to означает без верхней границы
func (r *AppointmentRepository) ListHoldingByStaff(ctx context.Context, staffID int64, from, to time.Time) ([]*domain.Appointment, error) {
	defer r.s.lock(ctx)()

	from = domain.DateOnly(from)
	out := make([]*domain.Appointment, 0)
	for _, a := range r.s.data.appointments {
		if a.StaffMemberID != staffID || !a.HoldsSlot() || a.Date.Before(from) {
			continue
		}
		if !to.IsZero() && a.Date.After(domain.DateOnly(to)) {
			continue
		}
		out = append(out, cloneAppointment(a))
	}
	sortAppointments(out)
	return out, nil
}

func (r *AppointmentRepository) ListByFilter(ctx context.Context, filter domain.AppointmentFilter) ([]*domain.Appointment, error) {
	defer r.s.lock(ctx)()

	out := make([]*domain.Appointment, 0)
	for _, a := range r.s.data.appointments {
		if a.SalonID != filter.SalonID {
			continue
		}
		if filter.StaffMemberID != nil && a.StaffMemberID != *filter.StaffMemberID {
			continue
		}
		if filter.StartDate != nil && a.Date.Before(domain.DateOnly(*filter.StartDate)) {
			continue
		}
		if filter.EndDate != nil && a.Date.After(domain.DateOnly(*filter.EndDate)) {
			continue
		}
		if len(filter.Statuses) > 0 && !slices.Contains(filter.Statuses, a.Status) {
			continue
		}
		out = append(out, cloneAppointment(a))
	}
	sortAppointments(out)

	if filter.Offset > 0 {
		if filter.Offset >= len(out) {
			return []*domain.Appointment{}, nil
		}
		out = out[filter.Offset:]
	}
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

// Update сохраняет изменяемые поля, если версия совпадает с expectedVersion
func (r *AppointmentRepository) Update(ctx context.Context, a *domain.Appointment, expectedVersion int64) (*domain.Appointment, error) {
	defer r.s.lock(ctx)()

	existing, ok := r.s.data.appointments[a.ID]
	if !ok || existing.SalonID != a.SalonID {
		return nil, ErrAppointmentNotFound
	}
	if existing.Version != expectedVersion {
		return nil, fmt.Errorf("%w: id=%d expected version=%d, actual=%d",
			ErrVersionMismatch, a.ID, expectedVersion, existing.Version)
	}

	c := cloneAppointment(existing)
	c.Status = a.Status
	c.Notes = clonePtr(a.Notes)
	c.SupersededByID = clonePtr(a.SupersededByID)
	c.CancelledAt = clonePtr(a.CancelledAt)
	c.Version = existing.Version + 1
	c.UpdatedAt = r.s.clock.Now()
	r.s.data.appointments[c.ID] = c
	return cloneAppointment(c), nil
}

func (r *AppointmentRepository) CountBillableCreated(ctx context.Context, salonID int64, from, to time.Time) (int, error) {
	defer r.s.lock(ctx)()

	count := 0
	for _, a := range r.s.data.appointments {
		if a.SalonID != salonID || !slices.Contains(domain.BillableStatuses, a.Status) {
			continue
		}
		if a.CreatedAt.Before(from) || !a.CreatedAt.Before(to) {
			continue
		}
		count++
	}
	return count, nil
}

func sortAppointments(appts []*domain.Appointment) {
	slices.SortFunc(appts, func(a, b *domain.Appointment) int {
		return cmp.Or(
			a.Date.Compare(b.Date),
			cmp.Compare(a.StartTime.Minutes(), b.StartTime.Minutes()),
			cmp.Compare(a.ID, b.ID),
		)
	})
}
