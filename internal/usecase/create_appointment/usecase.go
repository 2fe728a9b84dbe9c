package create_appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Trio-Ads/saloneo-deploy-sub005/internal/domain"
	"github.com/Trio-Ads/saloneo-deploy-sub005/internal/scheduling/conflict"
	"github.com/Trio-Ads/saloneo-deploy-sub005/pkg/txmanager"
)

// UseCase use case создания записи
type UseCase struct {
	salonRepo       SalonRepository
	clientRepo      ClientRepository
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
	clientRepo ClientRepository,
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
		clientRepo:      clientRepo,
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

// Execute выполняет use case создания записи.
// Проверка квоты, проверка конфликтов и вставка выполняются в одной
// сериализуемой транзакции под блокировкой строки мастера.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*domain.Appointment, error) {
	if req != nil {
		uc.logger.Info("CreateAppointment: salon=%d, client=%d, staff=%d, service=%d, date=%s, time=%s",
			req.SalonID, req.ClientID, req.StaffMemberID, req.ServiceID, req.Date.Format(domain.DateFormat), req.StartTime)
	}

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}
	date := domain.DateOnly(req.Date)

	// 2. Получаем салон и его часовой пояс
	salon, err := uc.salonRepo.GetByID(ctx, req.SalonID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			uc.logger.Warn("CreateAppointment: salon id=%d not found", req.SalonID)
			return nil, ErrSalonNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get salon id=%d: %v", req.SalonID, err)
		return nil, fmt.Errorf("%w: failed to get salon: %v", ErrUnavailable, err)
	}
	loc, err := salon.Location()
	if err != nil {
		uc.logger.Error("CreateAppointment: salon id=%d has invalid timezone: %v", salon.ID, err)
		return nil, fmt.Errorf("%w: salon timezone: %v", ErrInternal, err)
	}

	// 3. Текущее время в зоне салона
	now := uc.timeProvider.Now().In(loc)

	// 4. Проверяем клиента
	if _, err := uc.clientRepo.GetByID(ctx, req.SalonID, req.ClientID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			uc.logger.Warn("CreateAppointment: client id=%d not found in salon id=%d", req.ClientID, req.SalonID)
			return nil, ErrClientNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get client id=%d: %v", req.ClientID, err)
		return nil, fmt.Errorf("%w: failed to get client: %v", ErrUnavailable, err)
	}

	// 5. Получаем услугу
	service, err := uc.serviceRepo.GetByID(ctx, req.SalonID, req.ServiceID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			uc.logger.Warn("CreateAppointment: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrUnavailable, err)
	}
	if !service.IsActive {
		uc.logger.Warn("CreateAppointment: service id=%d is inactive", service.ID)
		return nil, ErrServiceNotFound
	}
	if req.Origin == domain.OriginOnline && !service.OnlineBookingEnabled {
		uc.logger.Warn("CreateAppointment: service id=%d is not bookable online", service.ID)
		return nil, ErrServiceNotBookable
	}

	var result *domain.Appointment

	// 6. Квота, конфликты и вставка в сериализуемой транзакции;
	// конкурентная запись повторяется staleRetries раз
	retry := txmanager.RetryPolicy{
		Retries:   uc.staleRetries,
		Retryable: isStaleWrite,
		OnRetry: func(attempt int, err error) {
			uc.logger.Warn("CreateAppointment: stale write, retry %d: %v", attempt, err)
			if uc.metrics != nil {
				uc.metrics.RecordStaleWriteRetry()
			}
		},
	}
	err = retry.Run(ctx, func(ctx context.Context) error {
		return uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
			created, err := uc.create(txCtx, req, salon, service, date, now, loc)
			if err != nil {
				return err
			}
			result = created
			return nil
		})
	})
	if err != nil {
		return nil, finalError(err)
	}

	uc.logger.Info("CreateAppointment: successfully created appointment id=%d", result.ID)
	if uc.metrics != nil {
		uc.metrics.RecordAppointmentCreated(string(req.Origin))
	}

	// 7. Уведомление после фиксации; ошибка не отменяет запись
	if err := uc.notifier.Publish(ctx, result); err != nil {
		uc.logger.Warn("CreateAppointment: notification for appointment id=%d failed: %v", result.ID, err)
	}

	return result, nil
}

// create шаги внутри транзакции
func (uc *UseCase) create(
	txCtx context.Context,
	req *Request,
	salon *domain.Salon,
	service *domain.Service,
	date time.Time,
	now time.Time,
	loc *time.Location,
) (*domain.Appointment, error) {
	// 6.1. Лимиты тарифа проверяются до календаря
	if err := uc.quota.CheckAppointment(txCtx, salon, now, 0); err != nil {
		uc.logger.Warn("CreateAppointment: quota check failed salon=%d: %v", salon.ID, err)
		return nil, err
	}

	// 6.2. Блокируем мастера: конкурентные записи к нему выстраиваются в очередь
	staff, err := uc.staffRepo.LockByID(txCtx, req.SalonID, req.StaffMemberID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			uc.logger.Warn("CreateAppointment: staff member id=%d not found", req.StaffMemberID)
			return nil, ErrStaffNotFound
		}
		uc.logger.Error("CreateAppointment: failed to lock staff member id=%d: %v", req.StaffMemberID, err)
		if isStaleWrite(err) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: failed to lock staff member: %v", ErrUnavailable, err)
	}
	if !staff.IsActive {
		uc.logger.Warn("CreateAppointment: staff member id=%d is inactive", staff.ID)
		return nil, ErrStaffNotFound
	}

	// 6.3. Проверка слота
	candidate := conflict.CandidateFor(service, staff.ID, date, req.StartTime)
	if err := uc.detector.Check(txCtx, staff, service, candidate, now, loc); err != nil {
		return nil, err
	}

	endTime, err := req.StartTime.AddMinutes(service.DurationMinutes)
	if err != nil {
		return nil, &domain.ConflictError{Reason: domain.ConflictOutsideWorkingHours}
	}

	// 6.4. Сохраняем запись со снимком длительности и буферов услуги
	appointment := &domain.Appointment{
		SalonID:             req.SalonID,
		ClientID:            req.ClientID,
		StaffMemberID:       staff.ID,
		ServiceID:           service.ID,
		Date:                date,
		StartTime:           req.StartTime,
		EndTime:             endTime,
		DurationMinutes:     service.DurationMinutes,
		BufferBeforeMinutes: service.BufferBeforeMinutes,
		BufferAfterMinutes:  service.BufferAfterMinutes,
		Status:              domain.StatusScheduled,
		Notes:               req.Notes,
	}

	created, err := uc.appointmentRepo.Create(txCtx, appointment)
	if err != nil {
		if errors.Is(err, domain.ErrConflict) || isStaleWrite(err) {
			uc.logger.Warn("CreateAppointment: create rejected by storage: %v", err)
			return nil, err
		}
		uc.logger.Error("CreateAppointment: failed to create appointment: %v", err)
		return nil, fmt.Errorf("%w: failed to create appointment: %v", ErrUnavailable, err)
	}

	return created, nil
}
