package staff

import (
	"context"
	"time"

	"github.com/Trio-Ads/saloneo-deploy-sub005/internal/domain"
)

// StaffRepository интерфейс репозитория мастеров
type StaffRepository interface {
	Create(ctx context.Context, s *domain.StaffMember) (*domain.StaffMember, error)
	LockByID(ctx context.Context, salonID, id int64) (*domain.StaffMember, error)
	Update(ctx context.Context, s *domain.StaffMember) (*domain.StaffMember, error)
	Delete(ctx context.Context, salonID, id int64) error
}

// AppointmentRepository записи мастера, которые мешают удалению
type AppointmentRepository interface {
	ListHoldingByStaff(ctx context.Context, staffID int64, from, to time.Time) ([]*domain.Appointment, error)
	Update(ctx context.Context, a *domain.Appointment, expectedVersion int64) (*domain.Appointment, error)
}

// SalonRepository интерфейс репозитория салонов
type SalonRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Salon, error)
}

// QuotaEnforcer лимит мастеров по тарифу
type QuotaEnforcer interface {
	CheckNewStaff(ctx context.Context, salon *domain.Salon) error
}

// Notifier уведомление клиента об отмене записи
type Notifier interface {
	Publish(ctx context.Context, a *domain.Appointment) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider источник текущего времени
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

type realTime struct{}

func (realTime) Now() time.Time { return time.Now() }
