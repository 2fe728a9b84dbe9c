package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Trio-Ads/saloneo-deploy-sub005/internal/domain"
	"github.com/Trio-Ads/saloneo-deploy-sub005/internal/service/catalog/models"
)

// Service сервис каталога услуг салона
type Service struct {
	serviceRepo ServiceRepository
	salonRepo   SalonRepository
	quota       QuotaEnforcer
	txManager   TransactionManager
	logger      Logger
}

// NewService создает новый экземпляр сервиса каталога
func NewService(
	serviceRepo ServiceRepository,
	salonRepo SalonRepository,
	quota QuotaEnforcer,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		serviceRepo: serviceRepo,
		salonRepo:   salonRepo,
		quota:       quota,
		txManager:   txManager,
		logger:      logger,
	}
}

// Create создает услугу
func (s *Service) Create(ctx context.Context, req *models.CreateServiceRequest) (*models.ServiceResponse, error) {
	s.logger.Info("Create: creating service for salon=%d, name=%q", req.SalonID, req.Name)

	svc := req.ToDomainService()
	svc.Name = strings.TrimSpace(svc.Name)
	if err := svc.Validate(); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	salon, err := s.getSalon(ctx, "Create", req.SalonID)
	if err != nil {
		return nil, err
	}

	var result *domain.Service
	err = s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		if svc.IsActive {
			if err := s.quota.CheckNewService(txCtx, salon); err != nil {
				s.logger.Warn("Create: quota check failed salon=%d: %v", salon.ID, err)
				return err
			}
		}

		created, err := s.serviceRepo.Create(txCtx, svc)
		if err != nil {
			s.logger.Error("Create: repository error for salon=%d: %v", salon.ID, err)
			return fmt.Errorf("%w: Create - repository error: %v", ErrUnavailable, err)
		}
		result = created
		return nil
	})
	if err != nil {
		return nil, finalError(err)
	}

	s.logger.Info("Create: successfully created service id=%d", result.ID)
	return models.FromDomainService(result), nil
}

// Update обновляет услугу; повторная активация проверяет лимит услуг
func (s *Service) Update(ctx context.Context, id int64, req *models.UpdateServiceRequest) (*models.ServiceResponse, error) {
	s.logger.Info("Update: updating service id=%d salon=%d", id, req.SalonID)

	salon, err := s.getSalon(ctx, "Update", req.SalonID)
	if err != nil {
		return nil, err
	}

	var result *domain.Service
	err = s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		svc, err := s.serviceRepo.GetByID(txCtx, req.SalonID, id)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				s.logger.Warn("Update: service id=%d not found", id)
				return ErrServiceNotFound
			}
			s.logger.Error("Update: failed to get service id=%d: %v", id, err)
			return fmt.Errorf("%w: failed to get service: %v", ErrUnavailable, err)
		}
		wasActive := svc.IsActive

		req.Apply(svc)
		svc.Name = strings.TrimSpace(svc.Name)
		if err := svc.Validate(); err != nil {
			s.logger.Warn("Update: validation failed for service id=%d: %v", id, err)
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}

		if svc.IsActive && !wasActive {
			if err := s.quota.CheckNewService(txCtx, salon); err != nil {
				s.logger.Warn("Update: quota check failed salon=%d: %v", salon.ID, err)
				return err
			}
		}

		updated, err := s.serviceRepo.Update(txCtx, svc)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return ErrServiceNotFound
			}
			s.logger.Error("Update: repository error for service id=%d: %v", id, err)
			return fmt.Errorf("%w: Update - repository error: %v", ErrUnavailable, err)
		}
		result = updated
		return nil
	})
	if err != nil {
		return nil, finalError(err)
	}

	s.logger.Info("Update: successfully updated service id=%d", result.ID)
	return models.FromDomainService(result), nil
}

func (s *Service) getSalon(ctx context.Context, op string, salonID int64) (*domain.Salon, error) {
	salon, err := s.salonRepo.GetByID(ctx, salonID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.logger.Warn("%s: salon id=%d not found", op, salonID)
			return nil, ErrSalonNotFound
		}
		s.logger.Error("%s: failed to get salon id=%d: %v", op, salonID, err)
		return nil, fmt.Errorf("%w: failed to get salon: %v", ErrUnavailable, err)
	}
	return salon, nil
}

func finalError(err error) error {
	switch {
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrNotFound),
		errors.Is(err, domain.ErrQuotaExceeded),
		errors.Is(err, domain.ErrStaleWrite),
		errors.Is(err, domain.ErrUnavailable):
		return err
	default:
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
}
