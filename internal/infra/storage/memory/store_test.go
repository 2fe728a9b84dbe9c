package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Trio-Ads/saloneo-deploy-sub005/internal/domain"
	"github.com/Trio-Ads/saloneo-deploy-sub005/pkg/types"
)

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

var (
	created = time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	monday  = time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
)

func appointment(staffID int64, start string, status domain.AppointmentStatus) *domain.Appointment {
	return &domain.Appointment{
		SalonID:         1,
		ClientID:        1,
		StaffMemberID:   staffID,
		ServiceID:       1,
		Date:            monday,
		StartTime:       domainTime(start),
		DurationMinutes: 60,
		Status:          status,
	}
}

func domainTime(s string) types.TimeString { return types.TimeString(s) }

func TestTxManager_RollsBackOnError(t *testing.T) {
	ctx := context.Background()
	store := NewStore(fixedClock{created})
	tx := NewTxManager(store)
	repo := store.Appointments()

	errBoom := errors.New("boom")
	err := tx.DoSerializable(ctx, func(txCtx context.Context) error {
		_, err := repo.Create(txCtx, appointment(7, "10:00", domain.StatusScheduled))
		require.NoError(t, err)
		return errBoom
	})
	require.ErrorIs(t, err, errBoom)

	list, err := repo.ListHoldingByStaff(ctx, 7, monday, monday)
	require.NoError(t, err)
	assert.Empty(t, list)

	// последовательность id тоже откатывается
	a, err := repo.Create(ctx, appointment(7, "10:00", domain.StatusScheduled))
	require.NoError(t, err)
	assert.Equal(t, int64(1), a.ID)
}

func TestTxManager_NestedReusesOuter(t *testing.T) {
	ctx := context.Background()
	store := NewStore(fixedClock{created})
	tx := NewTxManager(store)

	err := tx.DoSerializable(ctx, func(txCtx context.Context) error {
		return tx.Do(txCtx, func(inner context.Context) error {
			_, err := store.Appointments().Create(inner, appointment(7, "10:00", domain.StatusScheduled))
			return err
		})
	})
	require.NoError(t, err)

	count, err := store.Appointments().CountBillableCreated(ctx, 1, created, created.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestAppointments_CreateRejectsOverlap(t *testing.T) {
	ctx := context.Background()
	repo := NewStore(fixedClock{created}).Appointments()

	first, err := repo.Create(ctx, appointment(7, "10:00", domain.StatusScheduled))
	require.NoError(t, err)

	_, err = repo.Create(ctx, appointment(7, "10:30", domain.StatusScheduled))
	var ce *domain.ConflictError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, first.ID, ce.ConflictingID)

	// другой мастер и стыковка допустимы
	_, err = repo.Create(ctx, appointment(8, "10:30", domain.StatusScheduled))
	assert.NoError(t, err)
	_, err = repo.Create(ctx, appointment(7, "11:00", domain.StatusScheduled))
	assert.NoError(t, err)
}

func TestAppointments_UpdateChecksVersion(t *testing.T) {
	ctx := context.Background()
	repo := NewStore(fixedClock{created}).Appointments()

	a, err := repo.Create(ctx, appointment(7, "10:00", domain.StatusScheduled))
	require.NoError(t, err)
	require.Equal(t, int64(1), a.Version)

	a.Status = domain.StatusConfirmed
	updated, err := repo.Update(ctx, a, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), updated.Version)

	a.Status = domain.StatusCancelled
	_, err = repo.Update(ctx, a, 1)
	assert.ErrorIs(t, err, domain.ErrStaleWrite)

	stored, err := repo.GetByID(ctx, 1, a.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmed, stored.Status)
}

func TestAppointments_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewStore(fixedClock{created}).Appointments()

	a, err := repo.Create(ctx, appointment(7, "10:00", domain.StatusScheduled))
	require.NoError(t, err)

	a.Status = domain.StatusCancelled
	stored, err := repo.GetByID(ctx, 1, a.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusScheduled, stored.Status)

	_, err = repo.GetByID(ctx, 2, a.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAppointments_ListByFilter(t *testing.T) {
	ctx := context.Background()
	repo := NewStore(fixedClock{created}).Appointments()

	for _, a := range []*domain.Appointment{
		appointment(7, "14:00", domain.StatusScheduled),
		appointment(7, "09:00", domain.StatusScheduled),
		appointment(8, "09:00", domain.StatusScheduled),
	} {
		_, err := repo.Create(ctx, a)
		require.NoError(t, err)
	}

	staffID := int64(7)
	list, err := repo.ListByFilter(ctx, domain.AppointmentFilter{SalonID: 1, StaffMemberID: &staffID})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, domainTime("09:00"), list[0].StartTime)
	assert.Equal(t, domainTime("14:00"), list[1].StartTime)

	list, err = repo.ListByFilter(ctx, domain.AppointmentFilter{SalonID: 1, Statuses: []domain.AppointmentStatus{domain.StatusCancelled}})
	require.NoError(t, err)
	assert.Empty(t, list)

	list, err = repo.ListByFilter(ctx, domain.AppointmentFilter{SalonID: 1, Limit: 1, Offset: 1})
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestAppointments_CountBillableCreated(t *testing.T) {
	ctx := context.Background()
	store := NewStore(fixedClock{created})
	repo := store.Appointments()

	statuses := []struct {
		start  string
		status domain.AppointmentStatus
	}{
		{"09:00", domain.StatusScheduled},
		{"10:00", domain.StatusConfirmed},
		{"11:00", domain.StatusCompleted},
		{"12:00", domain.StatusNoShow},
		{"13:00", domain.StatusCancelled},
		{"14:00", domain.StatusRescheduled},
	}
	for _, s := range statuses {
		_, err := repo.Create(ctx, appointment(7, s.start, s.status))
		require.NoError(t, err)
	}

	other := appointment(7, "16:00", domain.StatusScheduled)
	other.SalonID = 2
	_, err := repo.Create(ctx, other)
	require.NoError(t, err)

	count, err := repo.CountBillableCreated(ctx, 1, created, created.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 4, count)

	count, err = repo.CountBillableCreated(ctx, 1, created.Add(time.Hour), created.Add(2*time.Hour))
	require.NoError(t, err)
	assert.Zero(t, count)
}
