package get_availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/Trio-Ads/saloneo-deploy-sub005/internal/domain"
	"github.com/Trio-Ads/saloneo-deploy-sub005/internal/scheduling/availability"
)

// UseCase use case получения доступных времен записи.
// Результат носит рекомендательный характер: окончательную проверку
// выполняет создание записи.
type UseCase struct {
	salonRepo       SalonRepository
	staffRepo       StaffRepository
	serviceRepo     ServiceRepository
	appointmentRepo AppointmentRepository
	calculator      Calculator
	maxRangeDays    int
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	salonRepo SalonRepository,
	staffRepo StaffRepository,
	serviceRepo ServiceRepository,
	appointmentRepo AppointmentRepository,
	calculator Calculator,
	maxRangeDays int,
	logger Logger,
) *UseCase {
	if maxRangeDays <= 0 {
		maxRangeDays = domain.DefaultMaxRangeDays
	}
	return &UseCase{
		salonRepo:       salonRepo,
		staffRepo:       staffRepo,
		serviceRepo:     serviceRepo,
		appointmentRepo: appointmentRepo,
		calculator:      calculator,
		maxRangeDays:    maxRangeDays,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// WithTimeProvider подменяет источник времени
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case получения доступных времен
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req, uc.maxRangeDays); err != nil {
		uc.logger.Warn("GetAvailability: validation failed: %v", err)
		return nil, err
	}
	from, to := domain.DateOnly(req.From), domain.DateOnly(req.To)

	uc.logger.Info("GetAvailability: salon=%d, staff=%d, service=%d, from=%s, to=%s",
		req.SalonID, req.StaffMemberID, req.ServiceID, from.Format(domain.DateFormat), to.Format(domain.DateFormat))

	// 2. Салон и текущее время в его зоне
	salon, err := uc.salonRepo.GetByID(ctx, req.SalonID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			uc.logger.Warn("GetAvailability: salon id=%d not found", req.SalonID)
			return nil, ErrSalonNotFound
		}
		uc.logger.Error("GetAvailability: failed to get salon id=%d: %v", req.SalonID, err)
		return nil, fmt.Errorf("%w: failed to get salon: %v", ErrUnavailable, err)
	}
	loc, err := salon.Location()
	if err != nil {
		uc.logger.Error("GetAvailability: salon id=%d has invalid timezone: %v", salon.ID, err)
		return nil, fmt.Errorf("%w: salon timezone: %v", ErrInternal, err)
	}
	now := uc.timeProvider.Now().In(loc)

	// 3. Мастер
	staff, err := uc.staffRepo.GetByID(ctx, req.SalonID, req.StaffMemberID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			uc.logger.Warn("GetAvailability: staff member id=%d not found", req.StaffMemberID)
			return nil, ErrStaffNotFound
		}
		uc.logger.Error("GetAvailability: failed to get staff member id=%d: %v", req.StaffMemberID, err)
		return nil, fmt.Errorf("%w: failed to get staff member: %v", ErrUnavailable, err)
	}
	if !staff.IsActive {
		uc.logger.Warn("GetAvailability: staff member id=%d is inactive", staff.ID)
		return nil, ErrStaffNotFound
	}

	// 4. Услуга
	service, err := uc.serviceRepo.GetByID(ctx, req.SalonID, req.ServiceID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			uc.logger.Warn("GetAvailability: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailability: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrUnavailable, err)
	}
	if !service.IsActive {
		uc.logger.Warn("GetAvailability: service id=%d is inactive", service.ID)
		return nil, ErrServiceNotFound
	}

	response := &Response{
		StaffMemberID:   staff.ID,
		ServiceID:       service.ID,
		DurationMinutes: service.DurationMinutes,
		StepMinutes:     uc.calculator.StepMinutes(),
		From:            from,
		To:              to,
		Days:            []domain.DayAvailability{},
	}

	// 5. Онлайн-запись отключена: клиенту слоты не предлагаются
	if req.Origin != domain.OriginSalon && !service.OnlineBookingEnabled {
		uc.logger.Info("GetAvailability: service id=%d is not bookable online", service.ID)
		return response, nil
	}

	// 6. Удерживающие записи мастера за диапазон, без блокировок
	appointments, err := uc.appointmentRepo.ListHoldingByStaff(ctx, staff.ID, from, to)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to list appointments staff=%d: %v", staff.ID, err)
		return nil, fmt.Errorf("%w: failed to list appointments: %v", ErrUnavailable, err)
	}

	// 7. Обходим диапазон
	days := availability.Collect(uc.calculator.Range(availability.RangeInput{
		Staff:        staff,
		Service:      service,
		From:         from,
		To:           to,
		Appointments: appointments,
		Now:          now,
		Location:     loc,
	}))
	if days != nil {
		response.Days = days
	}

	uc.logger.Info("GetAvailability: staff=%d, service=%d: %d days with free slots",
		staff.ID, service.ID, len(response.Days))

	return response, nil
}
