package types

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    TimeString
		wantErr error
	}{
		{name: "hours and minutes", input: "09:15", want: "09:15"},
		{name: "with seconds", input: "18:00:00", want: "18:00"},
		{name: "end of day", input: "24:00", want: "24:00"},
		{name: "single digit hour", input: "9:15", wantErr: ErrInvalidFormat},
		{name: "garbage", input: "noon", wantErr: ErrInvalidFormat},
		{name: "minutes overflow", input: "10:60", wantErr: ErrOutOfRange},
		{name: "past end of day", input: "24:01", wantErr: ErrOutOfRange},
		{name: "non zero seconds", input: "10:00:30", wantErr: ErrInvalidFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewTimeStringFromString(tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeString_AddMinutes(t *testing.T) {
	start := TimeString("11:50")

	later, err := start.AddMinutes(20)
	require.NoError(t, err)
	assert.Equal(t, TimeString("12:10"), later)

	earlier, err := start.AddMinutes(-10)
	require.NoError(t, err)
	assert.Equal(t, TimeString("11:40"), earlier)

	_, err = TimeString("23:30").AddMinutes(45)
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestTimeString_Compare(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore("09:15"))
	assert.False(t, TimeString("09:15").IsBefore("09:15"))
	assert.True(t, TimeString("17:00").IsAfter("09:00"))
	assert.Equal(t, 13*60, TimeString("13:00").Minutes())
	assert.Equal(t, -1, TimeString("bad").Minutes())
}

func TestTimeString_Scan(t *testing.T) {
	var ts TimeString

	require.NoError(t, ts.Scan([]byte("10:30:00")))
	assert.Equal(t, TimeString("10:30"), ts)

	require.NoError(t, ts.Scan(time.Date(0, 1, 1, 8, 5, 0, 0, time.UTC)))
	assert.Equal(t, TimeString("08:05"), ts)

	require.NoError(t, ts.Scan(nil))
	assert.True(t, ts.IsZero())

	assert.Error(t, ts.Scan(42))
}

func TestTimeString_Value(t *testing.T) {
	v, err := TimeString("07:45").Value()
	require.NoError(t, err)
	assert.Equal(t, "07:45:00", v)

	v, err = TimeString("").Value()
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestTimeString_On(t *testing.T) {
	loc := time.FixedZone("salon", 3600)
	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	got := TimeString("13:20").On(date, loc)
	assert.Equal(t, time.Date(2025, 3, 10, 13, 20, 0, 0, loc), got)
}

func TestTimeString_On_DaylightSaving(t *testing.T) {
	paris, err := time.LoadLocation("Europe/Paris")
	require.NoError(t, err)

	tests := []struct {
		name string
		date time.Time
		ts   TimeString
		want time.Time
	}{
		{
			name: "переход на летнее время, после перевода",
			date: time.Date(2025, 3, 30, 0, 0, 0, 0, time.UTC),
			ts:   "10:00",
			want: time.Date(2025, 3, 30, 8, 0, 0, 0, time.UTC),
		},
		{
			name: "переход на летнее время, до перевода",
			date: time.Date(2025, 3, 30, 0, 0, 0, 0, time.UTC),
			ts:   "01:30",
			want: time.Date(2025, 3, 30, 0, 30, 0, 0, time.UTC),
		},
		{
			name: "переход на зимнее время, после перевода",
			date: time.Date(2025, 10, 26, 0, 0, 0, 0, time.UTC),
			ts:   "10:00",
			want: time.Date(2025, 10, 26, 9, 0, 0, 0, time.UTC),
		},
		{
			name: "конец дня",
			date: time.Date(2025, 10, 26, 0, 0, 0, 0, time.UTC),
			ts:   "24:00",
			want: time.Date(2025, 10, 26, 23, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.ts.On(tt.date, paris)
			assert.True(t, tt.want.Equal(got), "want %s, got %s", tt.want, got.UTC())

			h, m, _ := got.Clock()
			if tt.ts != "24:00" {
				assert.Equal(t, tt.ts.Minutes(), h*60+m)
			}
		})
	}
}
