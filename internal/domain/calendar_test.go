package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Trio-Ads/saloneo-deploy-sub005/pkg/types"
)

// 2025-06-02 понедельник
var monday = time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

func mondayStaff() *StaffMember {
	return &StaffMember{
		ID:       1,
		SalonID:  1,
		Name:     "Amel",
		IsActive: true,
		Schedule: WeeklySchedule{
			Monday: DaySchedule{
				IsWorking: true,
				Start:     "09:00",
				End:       "18:00",
				Breaks:    []Break{{Start: "12:00", End: "13:00"}},
			},
		},
	}
}

func iv(start, end string) Interval {
	return Interval{Start: types.TimeString(start).Minutes(), End: types.TimeString(end).Minutes()}
}

func TestInterval_Overlaps(t *testing.T) {
	tests := []struct {
		name string
		a, b Interval
		want bool
	}{
		{name: "back to back", a: iv("10:00", "11:00"), b: iv("11:00", "12:00"), want: false},
		{name: "one minute overlap", a: iv("10:00", "11:01"), b: iv("11:00", "12:00"), want: true},
		{name: "contained", a: iv("10:00", "12:00"), b: iv("10:30", "11:00"), want: true},
		{name: "disjoint", a: iv("08:00", "09:00"), b: iv("10:00", "11:00"), want: false},
		{name: "identical", a: iv("10:00", "11:00"), b: iv("10:00", "11:00"), want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Overlaps(tt.b))
			assert.Equal(t, tt.want, tt.b.Overlaps(tt.a))
		})
	}
}

func TestWorkingWindow(t *testing.T) {
	staff := mondayStaff()

	window, ok := WorkingWindow(staff, monday)
	require.True(t, ok)
	assert.Equal(t, iv("09:00", "18:00"), window)

	_, ok = WorkingWindow(staff, monday.AddDate(0, 0, 1))
	assert.False(t, ok)
}

func TestIsWorkingInterval(t *testing.T) {
	staff := mondayStaff()

	tests := []struct {
		name     string
		date     time.Time
		interval Interval
		want     bool
	}{
		{name: "morning", date: monday, interval: iv("09:00", "10:00"), want: true},
		{name: "ends at break", date: monday, interval: iv("11:00", "12:00"), want: true},
		{name: "crosses break", date: monday, interval: iv("11:15", "12:15"), want: false},
		{name: "after break", date: monday, interval: iv("13:00", "14:00"), want: true},
		{name: "ends at close", date: monday, interval: iv("17:00", "18:00"), want: true},
		{name: "past close", date: monday, interval: iv("17:15", "18:15"), want: false},
		{name: "before open", date: monday, interval: Interval{Start: 530, End: 600}, want: false},
		{name: "day off", date: monday.AddDate(0, 0, 1), interval: iv("10:00", "11:00"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsWorkingInterval(staff, tt.date, tt.interval))
		})
	}
}

func TestSubtract(t *testing.T) {
	base := iv("09:00", "18:00")

	free := Subtract(base, []Interval{iv("12:00", "13:00"), iv("09:50", "11:10")})
	assert.Equal(t, []Interval{iv("09:00", "09:50"), iv("11:10", "12:00"), iv("13:00", "18:00")}, free)

	assert.Equal(t, []Interval{base}, Subtract(base, nil))
	assert.Empty(t, Subtract(base, []Interval{iv("08:00", "19:00")}))
	assert.Equal(t, []Interval{iv("10:00", "18:00")}, Subtract(base, []Interval{{Start: 500, End: 600}}))
}

func TestDaySchedule_Validate(t *testing.T) {
	tests := []struct {
		name    string
		day     DaySchedule
		wantErr bool
	}{
		{name: "day off", day: DaySchedule{}, wantErr: false},
		{name: "valid", day: mondayStaff().Schedule.Monday, wantErr: false},
		{name: "start after end", day: DaySchedule{IsWorking: true, Start: "18:00", End: "09:00"}, wantErr: true},
		{name: "equal bounds", day: DaySchedule{IsWorking: true, Start: "09:00", End: "09:00"}, wantErr: true},
		{name: "bad format", day: DaySchedule{IsWorking: true, Start: "9am", End: "18:00"}, wantErr: true},
		{
			name:    "break outside window",
			day:     DaySchedule{IsWorking: true, Start: "09:00", End: "18:00", Breaks: []Break{{Start: "17:30", End: "18:30"}}},
			wantErr: true,
		},
		{
			name:    "break touching start",
			day:     DaySchedule{IsWorking: true, Start: "09:00", End: "18:00", Breaks: []Break{{Start: "09:00", End: "09:30"}}},
			wantErr: true,
		},
		{
			name: "overlapping breaks",
			day: DaySchedule{IsWorking: true, Start: "09:00", End: "18:00", Breaks: []Break{
				{Start: "12:00", End: "13:00"},
				{Start: "12:30", End: "13:30"},
			}},
			wantErr: true,
		},
		{
			name: "adjacent breaks",
			day: DaySchedule{IsWorking: true, Start: "09:00", End: "18:00", Breaks: []Break{
				{Start: "13:00", End: "13:30"},
				{Start: "12:00", End: "13:00"},
			}},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.day.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestWeeklySchedule_ValidateWrapsValidation(t *testing.T) {
	w := WeeklySchedule{Friday: DaySchedule{IsWorking: true, Start: "18:00", End: "09:00"}}

	err := w.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, err.Error(), "Friday")
}
