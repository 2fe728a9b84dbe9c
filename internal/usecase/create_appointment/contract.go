package create_appointment

import (
	"context"
	"time"

	"github.com/Trio-Ads/saloneo-deploy-sub005/internal/domain"
	"github.com/Trio-Ads/saloneo-deploy-sub005/internal/scheduling/conflict"
)

// SalonRepository интерфейс репозитория салонов
type SalonRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Salon, error)
}

// ClientRepository интерфейс репозитория клиентов
type ClientRepository interface {
	GetByID(ctx context.Context, salonID, id int64) (*domain.Client, error)
}

// StaffRepository интерфейс репозитория мастеров
type StaffRepository interface {
	// LockByID блокирует строку мастера до конца транзакции
	LockByID(ctx context.Context, salonID, id int64) (*domain.StaffMember, error)
}

// ServiceRepository интерфейс репозитория услуг
type ServiceRepository interface {
	GetByID(ctx context.Context, salonID, id int64) (*domain.Service, error)
}

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	Create(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error)
}

// ConflictDetector проверка слота по календарю мастера
type ConflictDetector interface {
	Check(ctx context.Context, staff *domain.StaffMember, service *domain.Service, c conflict.Candidate, now time.Time, loc *time.Location) error
}

// QuotaEnforcer проверка лимитов тарифа
type QuotaEnforcer interface {
	CheckAppointment(ctx context.Context, salon *domain.Salon, now time.Time, released int) error
}

// Notifier отправка уведомления о записи
type Notifier interface {
	Publish(ctx context.Context, a *domain.Appointment) error
}

// Metrics счётчики use case
type Metrics interface {
	RecordAppointmentCreated(origin string)
	RecordStaleWriteRetry()
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
