package catalog

import (
	"context"

	"github.com/Trio-Ads/saloneo-deploy-sub005/internal/domain"
)

// ServiceRepository интерфейс репозитория услуг
type ServiceRepository interface {
	Create(ctx context.Context, s *domain.Service) (*domain.Service, error)
	GetByID(ctx context.Context, salonID, id int64) (*domain.Service, error)
	Update(ctx context.Context, s *domain.Service) (*domain.Service, error)
}

// SalonRepository интерфейс репозитория салонов
type SalonRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Salon, error)
}

// QuotaEnforcer лимит услуг по тарифу
type QuotaEnforcer interface {
	CheckNewService(ctx context.Context, salon *domain.Salon) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
