package reschedule_appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Trio-Ads/saloneo-deploy-sub005/internal/domain"
	"github.com/Trio-Ads/saloneo-deploy-sub005/internal/scheduling/conflict"
	"github.com/Trio-Ads/saloneo-deploy-sub005/internal/scheduling/quota"
	"github.com/Trio-Ads/saloneo-deploy-sub005/pkg/ptr"
	"github.com/Trio-Ads/saloneo-deploy-sub005/pkg/txmanager"
)

// UseCase use case переноса записи
type UseCase struct {
	salonRepo       SalonRepository
	staffRepo       StaffRepository
	serviceRepo     ServiceRepository
	appointmentRepo AppointmentRepository
	detector        ConflictDetector
	quota           QuotaEnforcer
	notifier        Notifier
	metrics         Metrics
	txManager       TransactionManager
	timeProvider    TimeProvider
	staleRetries    int
	logger          Logger
}

// NewUseCase создает новый экземпляр use case; metrics может быть nil
func NewUseCase(
	salonRepo SalonRepository,
	staffRepo StaffRepository,
	serviceRepo ServiceRepository,
	appointmentRepo AppointmentRepository,
	detector ConflictDetector,
	quota QuotaEnforcer,
	notifier Notifier,
	metrics Metrics,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		salonRepo:       salonRepo,
		staffRepo:       staffRepo,
		serviceRepo:     serviceRepo,
		appointmentRepo: appointmentRepo,
		detector:        detector,
		quota:           quota,
		notifier:        notifier,
		metrics:         metrics,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		staleRetries:    domain.DefaultStaleWriteRetries,
		logger:          logger,
	}
}

// WithTimeProvider подменяет источник времени
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// WithStaleWriteRetries задает число повторов при конкурентной записи
func (uc *UseCase) WithStaleWriteRetries(n int) *UseCase {
	if n >= 0 {
		uc.staleRetries = n
	}
	return uc
}

// Execute переносит запись на новый слот.
// Новый слот проходит полную проверку квоты и конфликтов; исходная запись
// переходит в rescheduled и создается новая в одной транзакции. При любой
// ошибке исходная запись остается нетронутой.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req != nil {
		uc.logger.Info("RescheduleAppointment: salon=%d, appointment=%d, date=%s, time=%s",
			req.SalonID, req.AppointmentID, req.Date.Format(domain.DateFormat), req.StartTime)
	}

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RescheduleAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Салон и его часовой пояс
	salon, err := uc.salonRepo.GetByID(ctx, req.SalonID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			uc.logger.Warn("RescheduleAppointment: salon id=%d not found", req.SalonID)
			return nil, ErrSalonNotFound
		}
		uc.logger.Error("RescheduleAppointment: failed to get salon id=%d: %v", req.SalonID, err)
		return nil, fmt.Errorf("%w: failed to get salon: %v", ErrUnavailable, err)
	}
	loc, err := salon.Location()
	if err != nil {
		uc.logger.Error("RescheduleAppointment: salon id=%d has invalid timezone: %v", salon.ID, err)
		return nil, fmt.Errorf("%w: salon timezone: %v", ErrInternal, err)
	}
	now := uc.timeProvider.Now().In(loc)

	var result *Response

	// 3. Перенос в сериализуемой транзакции с повтором при конкурентной записи
	retry := txmanager.RetryPolicy{
		Retries:   uc.staleRetries,
		Retryable: isStaleWrite,
		OnRetry: func(attempt int, err error) {
			uc.logger.Warn("RescheduleAppointment: stale write, retry %d: %v", attempt, err)
			if uc.metrics != nil {
				uc.metrics.RecordStaleWriteRetry()
			}
		},
	}
	err = retry.Run(ctx, func(ctx context.Context) error {
		return uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
			res, err := uc.reschedule(txCtx, req, salon, now, loc)
			if err != nil {
				return err
			}
			result = res
			return nil
		})
	})
	if err != nil {
		return nil, finalError(err)
	}

	uc.logger.Info("RescheduleAppointment: appointment id=%d moved to id=%d",
		result.Original.ID, result.Appointment.ID)
	if uc.metrics != nil {
		uc.metrics.RecordTransition(string(domain.StatusRescheduled))
	}

	// 4. Уведомление о новой записи после фиксации
	if err := uc.notifier.Publish(ctx, result.Appointment); err != nil {
		uc.logger.Warn("RescheduleAppointment: notification for appointment id=%d failed: %v",
			result.Appointment.ID, err)
	}

	return result, nil
}

func (uc *UseCase) reschedule(
	txCtx context.Context,
	req *Request,
	salon *domain.Salon,
	now time.Time,
	loc *time.Location,
) (*Response, error) {
	// 3.1. Исходная запись под блокировкой
	original, err := uc.appointmentRepo.GetByID(txCtx, req.SalonID, req.AppointmentID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			uc.logger.Warn("RescheduleAppointment: appointment id=%d not found", req.AppointmentID)
			return nil, ErrAppointmentNotFound
		}
		uc.logger.Error("RescheduleAppointment: failed to get appointment id=%d: %v", req.AppointmentID, err)
		return nil, fmt.Errorf("%w: failed to get appointment: %v", ErrUnavailable, err)
	}
	if req.ExpectedVersion != nil && *req.ExpectedVersion != original.Version {
		uc.logger.Warn("RescheduleAppointment: appointment id=%d version=%d, expected=%d",
			original.ID, original.Version, *req.ExpectedVersion)
		return nil, ErrVersionConflict
	}

	// 3.2. Переход в rescheduled допустим только из удерживающих статусов
	if err := domain.CanTransition(original.Status, domain.StatusRescheduled, salon.Policy()); err != nil {
		uc.logger.Warn("RescheduleAppointment: appointment id=%d: %v", original.ID, err)
		return nil, err
	}

	// 3.3. Услуга исходной записи
	service, err := uc.serviceRepo.GetByID(txCtx, req.SalonID, original.ServiceID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("RescheduleAppointment: failed to get service id=%d: %v", original.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrUnavailable, err)
	}
	if !service.IsActive {
		uc.logger.Warn("RescheduleAppointment: service id=%d is inactive", service.ID)
		return nil, ErrServiceNotFound
	}

	// 3.4. Новый мастер (или тот же) под блокировкой
	staffID := original.StaffMemberID
	if req.StaffMemberID != nil {
		staffID = *req.StaffMemberID
	}
	staff, err := uc.staffRepo.LockByID(txCtx, req.SalonID, staffID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			uc.logger.Warn("RescheduleAppointment: staff member id=%d not found", staffID)
			return nil, ErrStaffNotFound
		}
		uc.logger.Error("RescheduleAppointment: failed to lock staff member id=%d: %v", staffID, err)
		if isStaleWrite(err) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: failed to lock staff member: %v", ErrUnavailable, err)
	}
	if !staff.IsActive {
		uc.logger.Warn("RescheduleAppointment: staff member id=%d is inactive", staff.ID)
		return nil, ErrStaffNotFound
	}

	// 3.5. Квота: исходная запись текущего периода перестает учитываться
	released := 0
	if from, to := quota.BillingPeriod(now); !original.CreatedAt.Before(from) && original.CreatedAt.Before(to) {
		released = 1
	}
	if err := uc.quota.CheckAppointment(txCtx, salon, now, released); err != nil {
		uc.logger.Warn("RescheduleAppointment: quota check failed salon=%d: %v", salon.ID, err)
		return nil, err
	}

	// 3.6. Новый слот без учета самой переносимой записи
	date := domain.DateOnly(req.Date)
	candidate := conflict.CandidateFor(service, staff.ID, date, req.StartTime)
	candidate.ExcludeAppointmentID = ptr.Ptr(original.ID)
	if err := uc.detector.Check(txCtx, staff, service, candidate, now, loc); err != nil {
		return nil, err
	}

	endTime, err := req.StartTime.AddMinutes(service.DurationMinutes)
	if err != nil {
		return nil, &domain.ConflictError{Reason: domain.ConflictOutsideWorkingHours}
	}

	// 3.7. Исходная запись освобождает слот до вставки новой
	expected := original.Version
	domain.ApplyTransition(original, domain.StatusRescheduled, now)
	freed, err := uc.appointmentRepo.Update(txCtx, original, expected)
	if err != nil {
		return nil, uc.storageError("update original", err)
	}

	// 3.8. Новая запись
	created, err := uc.appointmentRepo.Create(txCtx, &domain.Appointment{
		SalonID:             original.SalonID,
		ClientID:            original.ClientID,
		StaffMemberID:       staff.ID,
		ServiceID:           service.ID,
		Date:                date,
		StartTime:           req.StartTime,
		EndTime:             endTime,
		DurationMinutes:     service.DurationMinutes,
		BufferBeforeMinutes: service.BufferBeforeMinutes,
		BufferAfterMinutes:  service.BufferAfterMinutes,
		Status:              domain.StatusScheduled,
		Notes:               original.Notes,
		RescheduledFromID:   ptr.Ptr(original.ID),
	})
	if err != nil {
		return nil, uc.storageError("create appointment", err)
	}

	// 3.9. Связываем исходную запись с новой
	freed.SupersededByID = ptr.Ptr(created.ID)
	superseded, err := uc.appointmentRepo.Update(txCtx, freed, freed.Version)
	if err != nil {
		return nil, uc.storageError("link original", err)
	}

	return &Response{Appointment: created, Original: superseded}, nil
}

// storageError сохраняет вид ошибки хранилища, остальное считает недоступностью
func (uc *UseCase) storageError(op string, err error) error {
	if errors.Is(err, domain.ErrConflict) || isStaleWrite(err) {
		uc.logger.Warn("RescheduleAppointment: %s rejected by storage: %v", op, err)
		return err
	}
	uc.logger.Error("RescheduleAppointment: failed to %s: %v", op, err)
	return fmt.Errorf("%w: failed to %s: %v", ErrUnavailable, op, err)
}
