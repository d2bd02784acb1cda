package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uqlakes/busboard/gtfs"
)

func day(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := ParseDate(s, time.UTC)
	require.NoError(t, err)
	return d
}

func TestParseTimeConvertTime(t *testing.T) {
	c, err := ParseTime("09:05:00")
	require.NoError(t, err)
	assert.Equal(t, Clock{Hours: "09", Minutes: "05"}, c)

	mins, err := ConvertTime(c)
	require.NoError(t, err)
	assert.Equal(t, 545, mins)

	tests := []struct {
		in   string
		want int
	}{
		{"00:00:00", 0},
		{"23:59:59", 1439},
		{"24:10:00", 1450},
		{"25:30:00", 1530},
		{"7:45:00", 465},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			c, err := ParseTime(tt.in)
			require.NoError(t, err)
			got, err := ConvertTime(c)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseTimeErrors(t *testing.T) {
	for _, in := range []string{"", "0905", ":05:00", "09:"} {
		_, err := ParseTime(in)
		assert.Error(t, err, in)
	}
	_, err := ConvertTime(Clock{Hours: "ab", Minutes: "05"})
	assert.Error(t, err)
	_, err = ConvertTime(Clock{Hours: "09", Minutes: "x"})
	assert.Error(t, err)
}

func TestParseClock(t *testing.T) {
	tests := []struct {
		in      string
		want    Clock
		wantErr bool
	}{
		{in: "09:00", want: Clock{"09", "00"}},
		{in: "9:05", want: Clock{"9", "05"}},
		{in: " 23:59 ", want: Clock{"23", "59"}},
		{in: "24:00", want: Clock{"24", "00"}},
		{in: "25:00", wantErr: true},
		{in: "09:60", wantErr: true},
		{in: "09:", wantErr: true},
		{in: "0900", wantErr: true},
		{in: "nine", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseClock(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "use HH:mm")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseDate(t *testing.T) {
	brisbane := time.FixedZone("AEST", 10*60*60)

	d, err := ParseDate("2024-01-01", brisbane)
	require.NoError(t, err)
	assert.Equal(t, time.Monday, d.Weekday())
	assert.Equal(t, brisbane, d.Location())

	for _, in := range []string{"2024-1-1", "01/01/2024", "2024-02-30", ""} {
		_, err := ParseDate(in, time.UTC)
		require.Error(t, err, in)
		assert.Contains(t, err.Error(), "use YYYY-MM-DD")
	}
}

func TestDateIsActive(t *testing.T) {
	weekdays := gtfs.Calendar{
		ServiceID: "SV1",
		Monday:    1, Tuesday: 1, Wednesday: 1, Thursday: 1, Friday: 1,
		Start: "20240101", End: "20240131",
	}

	tests := []struct {
		name string
		date string
		cal  gtfs.Calendar
		want bool
	}{
		{"start date included", "2024-01-01", weekdays, true},
		{"end date included", "2024-01-31", weekdays, true},
		{"mid range weekday", "2024-01-17", weekdays, true},
		{"day before start", "2023-12-29", weekdays, false},
		{"day after end", "2024-02-01", weekdays, false},
		{"weekday flag unset", "2024-01-06", weekdays, false},
		{"single day calendar", "2024-03-02", gtfs.Calendar{Saturday: 1, Start: "20240302", End: "20240302"}, true},
		{"all flags unset", "2024-01-10", gtfs.Calendar{Start: "20240101", End: "20241231"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DateIsActive(day(t, tt.date), tt.cal))
		})
	}
}

func TestActiveServices(t *testing.T) {
	cals := []gtfs.Calendar{
		{ServiceID: "WEEKDAY", Monday: 1, Friday: 1, Start: "20240101", End: "20241231"},
		{ServiceID: "WEEKEND", Saturday: 1, Sunday: 1, Start: "20240101", End: "20241231"},
		{ServiceID: "EXPIRED", Monday: 1, Start: "20230101", End: "20231231"},
	}

	active := ActiveServices(cals, day(t, "2024-01-01"))
	assert.Equal(t, gtfs.IDSet{"WEEKDAY": {}}, active)

	active = ActiveServices(cals, day(t, "2024-01-07"))
	assert.Equal(t, gtfs.IDSet{"WEEKEND": {}}, active)
}
