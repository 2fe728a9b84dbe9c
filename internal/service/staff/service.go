package staff

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Trio-Ads/saloneo-deploy-sub005/internal/domain"
	"github.com/Trio-Ads/saloneo-deploy-sub005/internal/service/staff/models"
)

// Service сервис для работы с мастерами салона
type Service struct {
	staffRepo       StaffRepository
	appointmentRepo AppointmentRepository
	salonRepo       SalonRepository
	quota           QuotaEnforcer
	notifier        Notifier
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewService создает новый экземпляр сервиса мастеров
func NewService(
	staffRepo StaffRepository,
	appointmentRepo AppointmentRepository,
	salonRepo SalonRepository,
	quota QuotaEnforcer,
	notifier Notifier,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		staffRepo:       staffRepo,
		appointmentRepo: appointmentRepo,
		salonRepo:       salonRepo,
		quota:           quota,
		notifier:        notifier,
		txManager:       txManager,
		timeProvider:    realTime{},
		logger:          logger,
	}
}

// WithTimeProvider подменяет источник времени
func (s *Service) WithTimeProvider(tp TimeProvider) *Service {
	s.timeProvider = tp
	return s
}

// Create создает мастера
// Проверяет рабочие часы и лимит мастеров тарифа
func (s *Service) Create(ctx context.Context, req *models.CreateStaffRequest) (*models.StaffResponse, error) {
	s.logger.Info("Create: creating staff member for salon=%d, name=%q", req.SalonID, req.Name)

	// 1. Собираем и валидируем мастера
	member := &domain.StaffMember{
		SalonID:  req.SalonID,
		Name:     strings.TrimSpace(req.Name),
		Color:    req.Color,
		IsActive: req.IsActive == nil || *req.IsActive,
		Schedule: req.Schedule,
	}
	if err := member.Validate(); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// 2. Салон
	salon, err := s.getSalon(ctx, "Create", req.SalonID)
	if err != nil {
		return nil, err
	}

	// 3. Лимит и вставка в одной транзакции
	var result *domain.StaffMember
	err = s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		if member.IsActive {
			if err := s.quota.CheckNewStaff(txCtx, salon); err != nil {
				s.logger.Warn("Create: quota check failed salon=%d: %v", salon.ID, err)
				return err
			}
		}

		created, err := s.staffRepo.Create(txCtx, member)
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

	s.logger.Info("Create: successfully created staff member id=%d", result.ID)
	return models.FromDomainStaff(result), nil
}

// Update обновляет мастера
// Уже созданные записи не пересматриваются при смене рабочих часов;
// повторная активация проверяет лимит мастеров
func (s *Service) Update(ctx context.Context, id int64, req *models.UpdateStaffRequest) (*models.StaffResponse, error) {
	s.logger.Info("Update: updating staff member id=%d salon=%d", id, req.SalonID)

	salon, err := s.getSalon(ctx, "Update", req.SalonID)
	if err != nil {
		return nil, err
	}

	var result *domain.StaffMember
	err = s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		member, err := s.lock(txCtx, "Update", req.SalonID, id)
		if err != nil {
			return err
		}
		wasActive := member.IsActive

		if req.Name != nil {
			member.Name = strings.TrimSpace(*req.Name)
		}
		if req.Color != nil {
			member.Color = *req.Color
		}
		if req.IsActive != nil {
			member.IsActive = *req.IsActive
		}
		if req.Schedule != nil {
			member.Schedule = *req.Schedule
		}

		if err := member.Validate(); err != nil {
			s.logger.Warn("Update: validation failed for staff member id=%d: %v", id, err)
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}

		if member.IsActive && !wasActive {
			if err := s.quota.CheckNewStaff(txCtx, salon); err != nil {
				s.logger.Warn("Update: quota check failed salon=%d: %v", salon.ID, err)
				return err
			}
		}

		updated, err := s.staffRepo.Update(txCtx, member)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return ErrStaffNotFound
			}
			s.logger.Error("Update: repository error for staff member id=%d: %v", id, err)
			return fmt.Errorf("%w: Update - repository error: %v", ErrUnavailable, err)
		}
		result = updated
		return nil
	})
	if err != nil {
		return nil, finalError(err)
	}

	s.logger.Info("Update: successfully updated staff member id=%d", result.ID)
	return models.FromDomainStaff(result), nil
}

// Delete удаляет мастера.
// Если у мастера есть удерживающие слот записи, без force возвращается
// ErrStaffHasAppointments; с force записи отменяются в той же транзакции
// и клиенты получают уведомление
func (s *Service) Delete(ctx context.Context, salonID, id int64, force bool) (*models.DeleteStaffResponse, error) {
	s.logger.Info("Delete: deleting staff member id=%d salon=%d force=%t", id, salonID, force)

	salon, err := s.getSalon(ctx, "Delete", salonID)
	if err != nil {
		return nil, err
	}
	loc, err := salon.Location()
	if err != nil {
		s.logger.Error("Delete: salon id=%d has invalid timezone: %v", salonID, err)
		return nil, fmt.Errorf("%w: salon timezone: %v", ErrInternal, err)
	}
	now := s.timeProvider.Now().In(loc)

	var cancelled []*domain.Appointment
	err = s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		cancelled = nil

		if _, err := s.lock(txCtx, "Delete", salonID, id); err != nil {
			return err
		}

		holding, err := s.appointmentRepo.ListHoldingByStaff(txCtx, id, time.Time{}, time.Time{})
		if err != nil {
			s.logger.Error("Delete: failed to list appointments for staff member id=%d: %v", id, err)
			return fmt.Errorf("%w: failed to list appointments: %v", ErrUnavailable, err)
		}

		if len(holding) > 0 && !force {
			s.logger.Warn("Delete: staff member id=%d has %d upcoming appointments", id, len(holding))
			return fmt.Errorf("%w: %d appointments", ErrStaffHasAppointments, len(holding))
		}

		for _, a := range holding {
			if err := domain.ValidateTransition(a, domain.StatusCancelled, now, loc, salon.Policy()); err != nil {
				return err
			}
			version := a.Version
			domain.ApplyTransition(a, domain.StatusCancelled, now)
			updated, err := s.appointmentRepo.Update(txCtx, a, version)
			if err != nil {
				if errors.Is(err, domain.ErrStaleWrite) {
					return err
				}
				s.logger.Error("Delete: failed to cancel appointment id=%d: %v", a.ID, err)
				return fmt.Errorf("%w: failed to cancel appointment: %v", ErrUnavailable, err)
			}
			cancelled = append(cancelled, updated)
		}

		if err := s.staffRepo.Delete(txCtx, salonID, id); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return ErrStaffNotFound
			}
			s.logger.Error("Delete: repository error for staff member id=%d: %v", id, err)
			return fmt.Errorf("%w: Delete - repository error: %v", ErrUnavailable, err)
		}
		return nil
	})
	if err != nil {
		return nil, finalError(err)
	}

	resp := &models.DeleteStaffResponse{ID: id, CancelledAppointmentIDs: make([]int64, 0, len(cancelled))}
	for _, a := range cancelled {
		resp.CancelledAppointmentIDs = append(resp.CancelledAppointmentIDs, a.ID)
		if err := s.notifier.Publish(ctx, a); err != nil {
			s.logger.Warn("Delete: notification for appointment id=%d failed: %v", a.ID, err)
		}
	}

	s.logger.Info("Delete: successfully deleted staff member id=%d, cancelled %d appointments", id, len(cancelled))
	return resp, nil
}

// Вспомогательные методы

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

func (s *Service) lock(ctx context.Context, op string, salonID, id int64) (*domain.StaffMember, error) {
	member, err := s.staffRepo.LockByID(ctx, salonID, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.logger.Warn("%s: staff member id=%d not found", op, id)
			return nil, ErrStaffNotFound
		}
		s.logger.Error("%s: failed to get staff member id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: failed to get staff member: %v", ErrUnavailable, err)
	}
	return member, nil
}

func finalError(err error) error {
	switch {
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrNotFound),
		errors.Is(err, domain.ErrConflict),
		errors.Is(err, domain.ErrQuotaExceeded),
		errors.Is(err, domain.ErrInvalidStateTransition),
		errors.Is(err, domain.ErrStaleWrite),
		errors.Is(err, domain.ErrUnavailable):
		return err
	default:
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
}
