// Package appointments переходы записи по статусам и чтение записей салона.
// Перенос выполняется отдельным use case, так как создает новую запись.
package appointments

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Trio-Ads/saloneo-deploy-sub005/internal/domain"
	"github.com/Trio-Ads/saloneo-deploy-sub005/internal/service/appointments/models"
	"github.com/Trio-Ads/saloneo-deploy-sub005/pkg/txmanager"
)

// Service сервис для работы с записями
type Service struct {
	appointmentRepo AppointmentRepository
	salonRepo       SalonRepository
	notifier        Notifier
	metrics         Metrics
	txManager       TransactionManager
	timeProvider    TimeProvider
	staleRetries    int
	logger          Logger
}

// NewService создает новый экземпляр сервиса записей; metrics может быть nil
func NewService(
	appointmentRepo AppointmentRepository,
	salonRepo SalonRepository,
	notifier Notifier,
	metrics Metrics,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		salonRepo:       salonRepo,
		notifier:        notifier,
		metrics:         metrics,
		txManager:       txManager,
		timeProvider:    realTime{},
		staleRetries:    domain.DefaultStaleWriteRetries,
		logger:          logger,
	}
}

// WithTimeProvider подменяет источник времени
func (s *Service) WithTimeProvider(tp TimeProvider) *Service {
	s.timeProvider = tp
	return s
}

// WithStaleWriteRetries задает число повторов при конкурентной записи
func (s *Service) WithStaleWriteRetries(n int) *Service {
	if n >= 0 {
		s.staleRetries = n
	}
	return s
}

// GetByID получает запись салона по ID
func (s *Service) GetByID(ctx context.Context, salonID, id int64) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%d salon=%d", id, salonID)

	appointment, err := s.appointmentRepo.GetByID(ctx, salonID, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.logger.Warn("GetByID: appointment id=%d not found", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("GetByID: repository error for appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrUnavailable, err)
	}

	return models.FromDomainAppointment(appointment), nil
}

// List получает записи салона с фильтрацией по мастеру, периоду и статусам
func (s *Service) List(ctx context.Context, req *models.ListAppointmentsRequest) (*models.AppointmentListResponse, error) {
	logMsg := fmt.Sprintf("List: fetching appointments for salon=%d", req.SalonID)
	if req.StaffMemberID != nil {
		logMsg += fmt.Sprintf(", staff=%d", *req.StaffMemberID)
	}
	if req.StartDate != nil && req.EndDate != nil {
		logMsg += fmt.Sprintf(", period=%s to %s", req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat))
	}
	if len(req.Statuses) > 0 {
		logMsg += fmt.Sprintf(", status=%s", strings.Join(req.Statuses, ","))
	}
	s.logger.Info(logMsg)

	if req.StartDate != nil && req.EndDate != nil && req.EndDate.Before(*req.StartDate) {
		return nil, fmt.Errorf("%w: from must not be after to", ErrInvalidInput)
	}
	if req.Limit < 0 || req.Offset < 0 {
		return nil, fmt.Errorf("%w: limit and offset must not be negative", ErrInvalidInput)
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("List: invalid filter for salon=%d: %v", req.SalonID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidStatus, err)
	}

	appointments, err := s.appointmentRepo.ListByFilter(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error for salon=%d: %v", req.SalonID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrUnavailable, err)
	}

	s.logger.Info("List: fetched %d appointments for salon=%d", len(appointments), req.SalonID)
	return models.FromDomainAppointmentList(appointments), nil
}

// UpdateStatus переводит запись в статус из запроса.
// Допустимы confirmed, completed, cancelled и no_show; перенос выполняется
// отдельной операцией.
func (s *Service) UpdateStatus(ctx context.Context, id int64, req *models.UpdateStatusRequest) (*models.AppointmentResponse, error) {
	s.logger.Info("UpdateStatus: appointment id=%d salon=%d to status=%s", id, req.SalonID, req.Status)

	status, err := models.ToDomainStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for appointment id=%d", req.Status, id)
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, req.Status)
	}

	switch status {
	case domain.StatusConfirmed, domain.StatusCompleted, domain.StatusCancelled, domain.StatusNoShow:
	default:
		s.logger.Warn("UpdateStatus: status=%s cannot be set directly", status)
		return nil, fmt.Errorf("%w: status %s cannot be set directly", ErrInvalidStatus, status)
	}

	return s.transition(ctx, req.SalonID, id, status, req.ExpectedVersion)
}

// Confirm подтверждает запись; слот остается занятым
func (s *Service) Confirm(ctx context.Context, salonID, id int64, expectedVersion *int64) (*models.AppointmentResponse, error) {
	return s.transition(ctx, salonID, id, domain.StatusConfirmed, expectedVersion)
}

// Cancel отменяет запись и освобождает слот. Повторная отмена
// возвращает ошибку перехода.
func (s *Service) Cancel(ctx context.Context, salonID, id int64, expectedVersion *int64) (*models.AppointmentResponse, error) {
	return s.transition(ctx, salonID, id, domain.StatusCancelled, expectedVersion)
}

// Complete завершает запись не раньше ее окончания
func (s *Service) Complete(ctx context.Context, salonID, id int64, expectedVersion *int64) (*models.AppointmentResponse, error) {
	return s.transition(ctx, salonID, id, domain.StatusCompleted, expectedVersion)
}

// MarkNoShow отмечает неявку не раньше начала записи
func (s *Service) MarkNoShow(ctx context.Context, salonID, id int64, expectedVersion *int64) (*models.AppointmentResponse, error) {
	return s.transition(ctx, salonID, id, domain.StatusNoShow, expectedVersion)
}

// transition общий путь смены статуса: запись читается под блокировкой,
// переход проверяется по таблице, политике салона и текущему времени,
// обновление выполняется с проверкой версии
func (s *Service) transition(
	ctx context.Context,
	salonID, id int64,
	to domain.AppointmentStatus,
	expectedVersion *int64,
) (*models.AppointmentResponse, error) {
	if salonID <= 0 || id <= 0 {
		return nil, fmt.Errorf("%w: salon and appointment ids are required", ErrInvalidInput)
	}

	salon, err := s.salonRepo.GetByID(ctx, salonID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.logger.Warn("Transition: salon id=%d not found", salonID)
			return nil, ErrSalonNotFound
		}
		s.logger.Error("Transition: failed to get salon id=%d: %v", salonID, err)
		return nil, fmt.Errorf("%w: failed to get salon: %v", ErrUnavailable, err)
	}
	loc, err := salon.Location()
	if err != nil {
		s.logger.Error("Transition: salon id=%d has invalid timezone: %v", salonID, err)
		return nil, fmt.Errorf("%w: salon timezone: %v", ErrInternal, err)
	}

	var result *domain.Appointment

	retry := txmanager.RetryPolicy{
		Retries:   s.staleRetries,
		Retryable: retryable,
		OnRetry: func(attempt int, err error) {
			s.logger.Warn("Transition: stale write on appointment id=%d, retry %d: %v", id, attempt, err)
			if s.metrics != nil {
				s.metrics.RecordStaleWriteRetry()
			}
		},
	}
	err = retry.Run(ctx, func(ctx context.Context) error {
		return s.txManager.Do(ctx, func(txCtx context.Context) error {
			appointment, err := s.appointmentRepo.GetByID(txCtx, salonID, id)
			if err != nil {
				if errors.Is(err, domain.ErrNotFound) {
					s.logger.Warn("Transition: appointment id=%d not found", id)
					return ErrAppointmentNotFound
				}
				s.logger.Error("Transition: failed to get appointment id=%d: %v", id, err)
				return fmt.Errorf("%w: failed to get appointment: %v", ErrUnavailable, err)
			}

			if expectedVersion != nil && *expectedVersion != appointment.Version {
				s.logger.Warn("Transition: appointment id=%d version=%d, expected=%d",
					id, appointment.Version, *expectedVersion)
				return ErrVersionConflict
			}

			now := s.timeProvider.Now().In(loc)
			if err := domain.ValidateTransition(appointment, to, now, loc, salon.Policy()); err != nil {
				s.logger.Warn("Transition: appointment id=%d: %v", id, err)
				return err
			}

			version := appointment.Version
			domain.ApplyTransition(appointment, to, now)

			updated, err := s.appointmentRepo.Update(txCtx, appointment, version)
			if err != nil {
				if retryable(err) {
					return err
				}
				s.logger.Error("Transition: failed to update appointment id=%d: %v", id, err)
				return fmt.Errorf("%w: failed to update appointment: %v", ErrUnavailable, err)
			}

			result = updated
			return nil
		})
	})
	if err != nil {
		return nil, finalError(err)
	}

	s.logger.Info("Transition: appointment id=%d is now %s (version=%d)", result.ID, result.Status, result.Version)
	if s.metrics != nil {
		s.metrics.RecordTransition(string(result.Status))
	}

	if err := s.notifier.Publish(ctx, result); err != nil {
		s.logger.Warn("Transition: notification for appointment id=%d failed: %v", result.ID, err)
	}

	return models.FromDomainAppointment(result), nil
}

// retryable конкурентное изменение, которое имеет смысл повторить
func retryable(err error) bool {
	if errors.Is(err, ErrVersionConflict) {
		return false
	}
	return errors.Is(err, domain.ErrStaleWrite) || errors.Is(err, txmanager.ErrSerialization)
}

func finalError(err error) error {
	switch {
	case errors.Is(err, ErrVersionConflict):
		return err
	case retryable(err):
		return fmt.Errorf("%w: %v", ErrStaleWrite, err)
	case errors.Is(err, domain.ErrInvalidStateTransition),
		errors.Is(err, domain.ErrNotFound),
		errors.Is(err, domain.ErrUnavailable):
		return err
	case errors.Is(err, txmanager.ErrTransaction):
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	default:
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
}
