package availability

import (
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Trio-Ads/saloneo-deploy-sub005/internal/domain"
	"github.com/Trio-Ads/saloneo-deploy-sub005/internal/scheduling/conflict"
	"github.com/Trio-Ads/saloneo-deploy-sub005/pkg/types"
)

var (
	// 2025-06-02 понедельник
	monday = time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	// неделей раньше, чтобы окно записи не отсекало слоты
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

func service(duration, before, after int) *domain.Service {
	return &domain.Service{
		ID:                   3,
		SalonID:              1,
		Name:                 "Brushing",
		DurationMinutes:      duration,
		BufferBeforeMinutes:  before,
		BufferAfterMinutes:   after,
		OnlineBookingEnabled: true,
		IsActive:             true,
	}
}

func expectedRange(from, to string, step int) []types.TimeString {
	var out []types.TimeString
	for m := types.TimeString(from).Minutes(); m <= types.TimeString(to).Minutes(); m += step {
		out = append(out, types.MustFromMinutes(m))
	}
	return out
}

func TestStartTimes_WorkingDayWithBreak(t *testing.T) {
	calc := NewCalculator(15)

	got := slices.Collect(calc.StartTimes(DayInput{
		Staff:    staffX(),
		Service:  service(60, 0, 0),
		Date:     monday,
		Now:      lastWeek,
		Location: time.UTC,
	}))

	want := append(expectedRange("09:00", "11:00", 15), expectedRange("13:00", "17:00", 15)...)
	assert.Equal(t, want, got)
	assert.NotContains(t, got, types.TimeString("11:15"))
	assert.NotContains(t, got, types.TimeString("17:15"))
}

func TestStartTimes_BufferedAppointmentBlocksNeighbours(t *testing.T) {
	calc := NewCalculator(5)
	existing := &domain.Appointment{
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

	got := slices.Collect(calc.StartTimes(DayInput{
		Staff:        staffX(),
		Service:      service(30, 0, 0),
		Date:         monday,
		Appointments: []*domain.Appointment{existing},
		Now:          lastWeek,
		Location:     time.UTC,
	}))

	assert.Contains(t, got, types.TimeString("09:20")) // заканчивается ровно в 09:50
	assert.NotContains(t, got, types.TimeString("09:25"))
	assert.NotContains(t, got, types.TimeString("10:30"))
	assert.NotContains(t, got, types.TimeString("11:05"))
	assert.Contains(t, got, types.TimeString("11:10"))
}

func TestStartTimes_CancelledAppointmentReleasesSlot(t *testing.T) {
	calc := NewCalculator(15)
	cancelled := &domain.Appointment{
		ID:              100,
		StaffMemberID:   7,
		Date:            monday,
		StartTime:       "10:00",
		DurationMinutes: 60,
		Status:          domain.StatusCancelled,
	}

	got := slices.Collect(calc.StartTimes(DayInput{
		Staff:        staffX(),
		Service:      service(60, 0, 0),
		Date:         monday,
		Appointments: []*domain.Appointment{cancelled},
		Now:          lastWeek,
		Location:     time.UTC,
	}))

	assert.Contains(t, got, types.TimeString("10:00"))
}

func TestStartTimes_EmptyResults(t *testing.T) {
	calc := NewCalculator(15)

	t.Run("day off", func(t *testing.T) {
		got := slices.Collect(calc.StartTimes(DayInput{
			Staff: staffX(), Service: service(60, 0, 0), Date: monday.AddDate(0, 0, 1), Now: lastWeek, Location: time.UTC,
		}))
		assert.Empty(t, got)
	})

	t.Run("service longer than any sub-interval", func(t *testing.T) {
		got := slices.Collect(calc.StartTimes(DayInput{
			Staff: staffX(), Service: service(300, 0, 0), Date: monday, Now: lastWeek, Location: time.UTC,
		}))
		assert.Empty(t, got)
	})

	t.Run("fully booked", func(t *testing.T) {
		busy := []*domain.Appointment{
			{ID: 1, StaffMemberID: 7, Date: monday, StartTime: "09:00", DurationMinutes: 180, Status: domain.StatusConfirmed},
			{ID: 2, StaffMemberID: 7, Date: monday, StartTime: "13:00", DurationMinutes: 300, Status: domain.StatusScheduled},
		}
		got := slices.Collect(calc.StartTimes(DayInput{
			Staff: staffX(), Service: service(15, 0, 0), Date: monday, Appointments: busy, Now: lastWeek, Location: time.UTC,
		}))
		assert.Empty(t, got)
	})
}

func TestStartTimes_BookingWindow(t *testing.T) {
	calc := NewCalculator(15)
	now := time.Date(2025, 6, 2, 14, 5, 0, 0, time.UTC)

	got := slices.Collect(calc.StartTimes(DayInput{
		Staff: staffX(), Service: service(60, 0, 0), Date: monday, Now: now, Location: time.UTC,
	}))
	require.NotEmpty(t, got)
	assert.Equal(t, types.TimeString("14:15"), got[0])

	svc := service(60, 0, 0)
	svc.MinAdvanceDays = 1
	got = slices.Collect(calc.StartTimes(DayInput{
		Staff: staffX(), Service: svc, Date: monday, Now: now, Location: time.UTC,
	}))
	assert.Empty(t, got)
}

func TestStartTimes_Restartable(t *testing.T) {
	calc := NewCalculator(15)
	seq := calc.StartTimes(DayInput{
		Staff: staffX(), Service: service(60, 0, 0), Date: monday, Now: lastWeek, Location: time.UTC,
	})

	first := slices.Collect(seq)
	second := slices.Collect(seq)
	assert.Equal(t, first, second)

	// ранний выход не ломает повторный обход
	for range seq {
		break
	}
	assert.Equal(t, first, slices.Collect(seq))
}

func TestRange_WalksDates(t *testing.T) {
	calc := NewCalculator(15)
	busy := []*domain.Appointment{
		{ID: 1, StaffMemberID: 7, Date: monday.AddDate(0, 0, 7), StartTime: "09:00", DurationMinutes: 60, Status: domain.StatusScheduled},
	}

	days := Collect(calc.Range(RangeInput{
		Staff:        staffX(),
		Service:      service(60, 0, 0),
		From:         monday,
		To:           monday.AddDate(0, 0, 7),
		Appointments: busy,
		Now:          lastWeek,
		Location:     time.UTC,
	}))

	require.Len(t, days, 2)
	assert.True(t, days[0].Date.Equal(monday))
	assert.Equal(t, types.TimeString("09:00"), days[0].StartTimes[0])
	assert.True(t, days[1].Date.Equal(monday.AddDate(0, 0, 7)))
	assert.Equal(t, types.TimeString("10:00"), days[1].StartTimes[0])
}

// Каждое выданное время проходит проверку детектора конфликтов
func TestStartTimes_AgreeWithConflictDetector(t *testing.T) {
	existing := []*domain.Appointment{
		{ID: 1, StaffMemberID: 7, Date: monday, StartTime: "09:40", DurationMinutes: 45, BufferBeforeMinutes: 5, BufferAfterMinutes: 15, Status: domain.StatusScheduled},
		{ID: 2, StaffMemberID: 7, Date: monday, StartTime: "14:10", DurationMinutes: 30, BufferAfterMinutes: 10, Status: domain.StatusConfirmed},
		{ID: 3, StaffMemberID: 7, Date: monday, StartTime: "16:00", DurationMinutes: 60, Status: domain.StatusCancelled},
	}
	now := time.Date(2025, 6, 2, 9, 3, 0, 0, time.UTC)

	services := []*domain.Service{
		service(60, 0, 0),
		service(45, 10, 10),
		service(20, 0, 25),
		service(90, 15, 0),
	}

	for _, step := range []int{5, 10, 15, 30} {
		calc := NewCalculator(step)
		for _, svc := range services {
			for start := range calc.StartTimes(DayInput{
				Staff: staffX(), Service: svc, Date: monday, Appointments: existing, Now: now, Location: time.UTC,
			}) {
				c := conflict.CandidateFor(svc, 7, monday, start)
				err := conflict.Evaluate(staffX(), svc, c, existing, now, time.UTC)
				assert.NoError(t, err, "step=%d duration=%d start=%s", step, svc.DurationMinutes, start)
			}
		}
	}
}
