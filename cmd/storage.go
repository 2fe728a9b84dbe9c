package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/Trio-Ads/saloneo-deploy-sub005/internal/config"
	"github.com/Trio-Ads/saloneo-deploy-sub005/internal/domain"
	appointmentRepo "github.com/Trio-Ads/saloneo-deploy-sub005/internal/infra/storage/appointment"
	clientRepo "github.com/Trio-Ads/saloneo-deploy-sub005/internal/infra/storage/client"
	"github.com/Trio-Ads/saloneo-deploy-sub005/internal/infra/storage/memory"
	salonRepo "github.com/Trio-Ads/saloneo-deploy-sub005/internal/infra/storage/salon"
	serviceRepo "github.com/Trio-Ads/saloneo-deploy-sub005/internal/infra/storage/service"
	staffRepo "github.com/Trio-Ads/saloneo-deploy-sub005/internal/infra/storage/staff"
	"github.com/Trio-Ads/saloneo-deploy-sub005/pkg/dbmetrics"
	"github.com/Trio-Ads/saloneo-deploy-sub005/pkg/logger"
	"github.com/Trio-Ads/saloneo-deploy-sub005/pkg/metrics"
	"github.com/Trio-Ads/saloneo-deploy-sub005/pkg/txmanager"
)

type clientRepository interface {
	GetByID(ctx context.Context, salonID, id int64) (*domain.Client, error)
}

type staffRepository interface {
	Create(ctx context.Context, s *domain.StaffMember) (*domain.StaffMember, error)
	GetByID(ctx context.Context, salonID, id int64) (*domain.StaffMember, error)
	LockByID(ctx context.Context, salonID, id int64) (*domain.StaffMember, error)
	Update(ctx context.Context, s *domain.StaffMember) (*domain.StaffMember, error)
	Delete(ctx context.Context, salonID, id int64) error
	CountActive(ctx context.Context, salonID int64) (int, error)
}

type serviceRepository interface {
	Create(ctx context.Context, s *domain.Service) (*domain.Service, error)
	GetByID(ctx context.Context, salonID, id int64) (*domain.Service, error)
	Update(ctx context.Context, s *domain.Service) (*domain.Service, error)
	CountActive(ctx context.Context, salonID int64) (int, error)
}

type appointmentRepository interface {
	Create(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error)
	GetByID(ctx context.Context, salonID, id int64) (*domain.Appointment, error)
	ListHoldingByStaff(ctx context.Context, staffID int64, from, to time.Time) ([]*domain.Appointment, error)
	ListByFilter(ctx context.Context, filter domain.AppointmentFilter) ([]*domain.Appointment, error)
	Update(ctx context.Context, a *domain.Appointment, expectedVersion int64) (*domain.Appointment, error)
	CountBillableCreated(ctx context.Context, salonID int64, from, to time.Time) (int, error)
}

type transactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// storage репозитории и менеджер транзакций выбранного драйвера
type storage struct {
	salons       salonRepo.Getter
	clients      clientRepository
	staff        staffRepository
	services     serviceRepository
	appointments appointmentRepository
	txManager    transactionManager
	close        func() error
}

func openStorage(cfg *config.Config, m *metrics.Metrics, stopCh <-chan struct{}, log *logger.Logger) (*storage, error) {
	var (
		st  *storage
		err error
	)
	switch cfg.Storage.Driver {
	case config.StorageMemory:
		st = openMemory(cfg, log)
	default:
		st, err = openPostgres(cfg, m, stopCh, log)
		if err != nil {
			return nil, err
		}
	}

	st.salons = salonRepo.WithCompletionPolicy(st.salons, cfg.Scheduling.AllowUnconfirmedCompletion)
	if cfg.Scheduling.AllowUnconfirmedCompletion {
		log.Info("Unconfirmed completion allowed for all salons")
	}
	return st, nil
}

func openMemory(cfg *config.Config, log *logger.Logger) *storage {
	store := memory.NewStore(nil)

	if cfg.Storage.MemorySeed {
		salon := store.PutSalon(&domain.Salon{ID: 1, Name: "Demo", Timezone: "UTC", Plan: domain.PlanFree})
		client := store.PutClient(&domain.Client{ID: 1, SalonID: salon.ID, Name: "Demo client"})
		log.Info("Memory storage seeded (salon_id=%d, client_id=%d)", salon.ID, client.ID)
	}

	log.Info("Using in-memory storage")
	return &storage{
		salons:       store.Salons(),
		clients:      store.Clients(),
		staff:        store.Staff(),
		services:     store.Services(),
		appointments: store.Appointments(),
		txManager:    memory.NewTxManager(store),
		close:        func() error { return nil },
	}
}

func openPostgres(cfg *config.Config, m *metrics.Metrics, stopCh <-chan struct{}, log *logger.Logger) (*storage, error) {
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	var wrappedDB *dbmetrics.DB
	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, m, stopCh)
		log.Info("Database metrics collection started")
	} else {
		wrappedDB = dbmetrics.Wrap(db, nil)
	}

	return &storage{
		salons:       salonRepo.NewRepository(wrappedDB),
		clients:      clientRepo.NewRepository(wrappedDB),
		staff:        staffRepo.NewRepository(wrappedDB),
		services:     serviceRepo.NewRepository(wrappedDB),
		appointments: appointmentRepo.NewRepository(wrappedDB),
		txManager:    txmanager.NewTransactionManager(wrappedDB),
		close:        db.Close,
	}, nil
}
