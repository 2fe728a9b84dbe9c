package conflict

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
	"github.com/Trio-Ads/saloneo-deploy-sub005/pkg/ptr"
	"github.com/Trio-Ads/saloneo-deploy-sub005/pkg/types"
)

var (
	monday   = time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	lastWeek = time.Date(2025, 5, 26, 8, 0, 0, 0, time.UTC)
)

func staffX() *domain.StaffMember {
	return &domain.StaffMember{
		ID:       7,
		SalonID:  1,
		Name:     "X",
		IsActive: true,
		Schedule: domain.WeeklySchedule{
			Monday: domain.DaySchedule{
				IsWorking: true,
				Start:     "09:00",
				End:       "18:00",
				Breaks:    []domain.Break{{Start: "12:00", End: "13:00"}},
			},
		},
	}
}

func bufferedAppointment() *domain.Appointment {
	return &domain.Appointment{
		ID:                  100,
		StaffMemberID:       7,
		Date:                monday,
		StartTime:           "10:00",
		EndTime:             "11:00",
		DurationMinutes:     60,
		BufferBeforeMinutes: 10,
		BufferAfterMinutes:  10,
		Status:              domain.StatusScheduled,
	}
}

func reasonOf(t *testing.T, err error) domain.ConflictReason {
	t.Helper()
	var ce *domain.ConflictError
	require.True(t, errors.As(err, &ce), "expected conflict, got %v", err)
	assert.ErrorIs(t, err, domain.ErrConflict)
	return ce.Reason
}

func TestEvaluate_BufferedNeighbour(t *testing.T) {
	svc := &domain.Service{DurationMinutes: 30}
	existing := []*domain.Appointment{bufferedAppointment()}

	tests := []struct {
		name  string
		start types.TimeString
		ok    bool
	}{
		{name: "ends at buffer start", start: "09:20", ok: true},
		{name: "ends inside buffer", start: "09:25", ok: false},
		{name: "inside appointment", start: "10:15", ok: false},
		{name: "starts inside trailing buffer", start: "11:05", ok: false},
		{name: "starts at buffer end", start: "11:10", ok: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Evaluate(staffX(), svc, CandidateFor(svc, 7, monday, tt.start), existing, lastWeek, time.UTC)
			if tt.ok {
				assert.NoError(t, err)
				return
			}
			assert.Equal(t, domain.ConflictOverlapsAppointment, reasonOf(t, err))
			var ce *domain.ConflictError
			require.True(t, errors.As(err, &ce))
			assert.Equal(t, int64(100), ce.ConflictingID)
		})
	}
}

func TestEvaluate_CandidateBufferCountsToo(t *testing.T) {
	existing := []*domain.Appointment{{
		ID: 1, StaffMemberID: 7, Date: monday, StartTime: "10:00", DurationMinutes: 60, Status: domain.StatusConfirmed,
	}}

	zero := &domain.Service{DurationMinutes: 60}
	assert.NoError(t, Evaluate(staffX(), zero, CandidateFor(zero, 7, monday, "11:00"), existing, lastWeek, time.UTC))

	buffered := &domain.Service{DurationMinutes: 60, BufferBeforeMinutes: 5}
	err := Evaluate(staffX(), buffered, CandidateFor(buffered, 7, monday, "11:00"), existing, lastWeek, time.UTC)
	assert.Equal(t, domain.ConflictOverlapsAppointment, reasonOf(t, err))
}

func TestEvaluate_Reasons(t *testing.T) {
	svc := &domain.Service{DurationMinutes: 60}

	tests := []struct {
		name  string
		date  time.Time
		start types.TimeString
		now   time.Time
		want  domain.ConflictReason
	}{
		{name: "past close", date: monday, start: "17:15", now: lastWeek, want: domain.ConflictOutsideWorkingHours},
		{name: "before open", date: monday, start: "08:30", now: lastWeek, want: domain.ConflictOutsideWorkingHours},
		{name: "day off", date: monday.AddDate(0, 0, 1), start: "10:00", now: lastWeek, want: domain.ConflictOutsideWorkingHours},
		{name: "crosses break", date: monday, start: "11:15", now: lastWeek, want: domain.ConflictOverlapsBreak},
		{name: "in the past", date: monday, start: "10:00", now: monday.Add(11 * time.Hour), want: domain.ConflictOutsideBookingWindow},
		// окно записи проверяется первым
		{name: "past and outside hours", date: monday, start: "07:00", now: monday.Add(11 * time.Hour), want: domain.ConflictOutsideBookingWindow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Evaluate(staffX(), svc, CandidateFor(svc, 7, tt.date, tt.start), nil, tt.now, time.UTC)
			assert.Equal(t, tt.want, reasonOf(t, err))
		})
	}
}

func TestEvaluate_ExcludeAndIgnore(t *testing.T) {
	svc := &domain.Service{DurationMinutes: 60}
	own := bufferedAppointment()
	other := &domain.Appointment{ID: 200, StaffMemberID: 8, Date: monday, StartTime: "14:00", DurationMinutes: 60, Status: domain.StatusScheduled}
	done := &domain.Appointment{ID: 300, StaffMemberID: 7, Date: monday, StartTime: "15:00", DurationMinutes: 60, Status: domain.StatusCompleted}
	existing := []*domain.Appointment{own, other, done}

	c := CandidateFor(svc, 7, monday, "10:00")
	c.ExcludeAppointmentID = ptr.Ptr(int64(100))
	assert.NoError(t, Evaluate(staffX(), svc, c, existing, lastWeek, time.UTC))

	assert.NoError(t, Evaluate(staffX(), svc, CandidateFor(svc, 7, monday, "14:00"), existing, lastWeek, time.UTC))
	assert.NoError(t, Evaluate(staffX(), svc, CandidateFor(svc, 7, monday, "15:00"), existing, lastWeek, time.UTC))
}

type appointmentRepoMock struct {
	mock.Mock
}

func (m *appointmentRepoMock) ListHoldingByStaff(ctx context.Context, staffID int64, from, to time.Time) ([]*domain.Appointment, error) {
	args := m.Called(ctx, staffID, from, to)
	appts, _ := args.Get(0).([]*domain.Appointment)
	return appts, args.Error(1)
}

type conflictCounter struct {
	reasons []string
}

func (c *conflictCounter) RecordConflict(reason string) {
	c.reasons = append(c.reasons, reason)
}

func TestDetector_Check(t *testing.T) {
	ctx := context.Background()
	svc := &domain.Service{DurationMinutes: 60}

	t.Run("conflict is recorded", func(t *testing.T) {
		repo := &appointmentRepoMock{}
		repo.On("ListHoldingByStaff", ctx, int64(7), monday, monday).
			Return([]*domain.Appointment{bufferedAppointment()}, nil).Once()
		counter := &conflictCounter{}

		d := NewDetector(repo, counter, logger.Nop())
		err := d.Check(ctx, staffX(), svc, CandidateFor(svc, 7, monday, "10:30"), lastWeek, time.UTC)

		assert.ErrorIs(t, err, domain.ErrConflict)
		assert.Equal(t, []string{string(domain.ConflictOverlapsAppointment)}, counter.reasons)
		repo.AssertExpectations(t)
	})

	t.Run("storage failure is unavailable", func(t *testing.T) {
		repo := &appointmentRepoMock{}
		repo.On("ListHoldingByStaff", ctx, int64(7), monday, monday).Return(nil, errors.New("connection reset")).Once()

		d := NewDetector(repo, nil, logger.Nop())
		err := d.Check(ctx, staffX(), svc, CandidateFor(svc, 7, monday, "10:30"), lastWeek, time.UTC)

		assert.ErrorIs(t, err, domain.ErrUnavailable)
		assert.ErrorIs(t, err, ErrLoadAppointments)
	})
}
