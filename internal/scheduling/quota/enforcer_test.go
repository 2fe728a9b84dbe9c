package quota

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Trio-Ads/saloneo-deploy-sub005/internal/domain"
	"github.com/Trio-Ads/saloneo-deploy-sub005/pkg/logger"
)

type usageRepoMock struct {
	mock.Mock
}

func (m *usageRepoMock) CountBillableCreated(ctx context.Context, salonID int64, from, to time.Time) (int, error) {
	args := m.Called(ctx, salonID, from, to)
	return args.Int(0), args.Error(1)
}

func (m *usageRepoMock) CountActiveStaff(ctx context.Context, salonID int64) (int, error) {
	args := m.Called(ctx, salonID)
	return args.Int(0), args.Error(1)
}

func (m *usageRepoMock) CountActiveServices(ctx context.Context, salonID int64) (int, error) {
	args := m.Called(ctx, salonID)
	return args.Int(0), args.Error(1)
}

// staffCounter и serviceCounter направляют CountActive в нужный метод мока
type staffCounter struct{ m *usageRepoMock }

func (c staffCounter) CountActive(ctx context.Context, salonID int64) (int, error) {
	return c.m.CountActiveStaff(ctx, salonID)
}

type serviceCounter struct{ m *usageRepoMock }

func (c serviceCounter) CountActive(ctx context.Context, salonID int64) (int, error) {
	return c.m.CountActiveServices(ctx, salonID)
}

func newEnforcer(repo *usageRepoMock, limits LimitsProvider) *Enforcer {
	return NewEnforcer(repo, staffCounter{repo}, serviceCounter{repo}, limits, nil, logger.Nop())
}

type staticLimits struct {
	limits domain.PlanLimits
	err    error
}

func (s staticLimits) GetPlanLimits(_ context.Context, _ *domain.Salon) (domain.PlanLimits, error) {
	return s.limits, s.err
}

var (
	salon = &domain.Salon{ID: 1, Plan: domain.PlanFree}
	now   = time.Date(2025, 6, 14, 10, 0, 0, 0, time.UTC)
	june  = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	july  = time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
)

func freeLimits() staticLimits {
	return staticLimits{limits: domain.PlanLimits{MaxAppointmentsPerMonth: 50, MaxStaff: 2, MaxServices: 10}}
}

func TestBillingPeriod(t *testing.T) {
	from, to := BillingPeriod(now)
	assert.Equal(t, june, from)
	assert.Equal(t, july, to)

	loc := time.FixedZone("CET", 3600)
	from, to = BillingPeriod(time.Date(2025, 12, 31, 23, 30, 0, 0, loc))
	assert.Equal(t, time.Date(2025, 12, 1, 0, 0, 0, 0, loc), from)
	assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, loc), to)
}

func TestCheckAppointment_QuotaReached(t *testing.T) {
	ctx := context.Background()
	repo := &usageRepoMock{}
	repo.On("CountBillableCreated", ctx, int64(1), june, july).Return(50, nil)

	e := newEnforcer(repo, freeLimits())
	err := e.CheckAppointment(ctx, salon, now, 0)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrQuotaExceeded)

	var qe *domain.QuotaError
	require.True(t, errors.As(err, &qe))
	assert.Equal(t, domain.LimitAppointments, qe.Limit)
	assert.Equal(t, 50, qe.Current)
	assert.Equal(t, 50, qe.Max)

	// staff/services не считаются, если записи уже отклонены
	repo.AssertNotCalled(t, "CountActiveStaff", mock.Anything, mock.Anything)
}

func TestCheckAppointment_Allowed(t *testing.T) {
	ctx := context.Background()
	repo := &usageRepoMock{}
	repo.On("CountBillableCreated", ctx, int64(1), june, july).Return(49, nil)
	repo.On("CountActiveStaff", ctx, int64(1)).Return(2, nil)
	repo.On("CountActiveServices", ctx, int64(1)).Return(10, nil)

	e := newEnforcer(repo, freeLimits())
	assert.NoError(t, e.CheckAppointment(ctx, salon, now, 0))
	repo.AssertExpectations(t)
}

func TestCheckAppointment_ReleasedByReschedule(t *testing.T) {
	ctx := context.Background()
	repo := &usageRepoMock{}
	repo.On("CountBillableCreated", ctx, int64(1), june, july).Return(50, nil)
	repo.On("CountActiveStaff", ctx, int64(1)).Return(1, nil)
	repo.On("CountActiveServices", ctx, int64(1)).Return(1, nil)

	e := newEnforcer(repo, freeLimits())
	assert.NoError(t, e.CheckAppointment(ctx, salon, now, 1))
}

func TestCheckAppointment_OverPlanAfterDowngrade(t *testing.T) {
	ctx := context.Background()
	repo := &usageRepoMock{}
	repo.On("CountBillableCreated", ctx, int64(1), june, july).Return(3, nil)
	repo.On("CountActiveStaff", ctx, int64(1)).Return(3, nil)

	e := newEnforcer(repo, freeLimits())
	err := e.CheckAppointment(ctx, salon, now, 0)

	var qe *domain.QuotaError
	require.True(t, errors.As(err, &qe))
	assert.Equal(t, domain.LimitStaff, qe.Limit)
	assert.Equal(t, 3, qe.Current)
	assert.Equal(t, 2, qe.Max)
}

func TestCheckAppointment_Unlimited(t *testing.T) {
	repo := &usageRepoMock{}
	e := newEnforcer(repo, staticLimits{})

	assert.NoError(t, e.CheckAppointment(context.Background(), salon, now, 0))
	repo.AssertNotCalled(t, "CountBillableCreated", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCheckAppointment_LimitsUnavailable(t *testing.T) {
	e := newEnforcer(&usageRepoMock{}, staticLimits{err: errors.New("timeout")})

	err := e.CheckAppointment(context.Background(), salon, now, 0)
	assert.ErrorIs(t, err, domain.ErrUnavailable)
}

func TestCheckNewStaffAndService(t *testing.T) {
	ctx := context.Background()
	repo := &usageRepoMock{}
	repo.On("CountActiveStaff", ctx, int64(1)).Return(2, nil)
	repo.On("CountActiveServices", ctx, int64(1)).Return(9, nil)

	e := newEnforcer(repo, freeLimits())

	err := e.CheckNewStaff(ctx, salon)
	var qe *domain.QuotaError
	require.True(t, errors.As(err, &qe))
	assert.Equal(t, domain.LimitStaff, qe.Limit)

	assert.NoError(t, e.CheckNewService(ctx, salon))
}
