package dates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := Parse(s)
	require.NoError(t, err)
	return d
}

func TestParse(t *testing.T) {
	d, err := Parse("2025-01-06")
	require.NoError(t, err)
	assert.Equal(t, time.Monday, d.Weekday())

	_, err = Parse("06.01.2025")
	assert.Error(t, err)

	_, err = Parse("2025-13-40")
	assert.Error(t, err)

	_, err = Parse("")
	assert.Error(t, err)
}

func TestNormalize(t *testing.T) {
	got, err := Normalize("2025-01-06")
	require.NoError(t, err)
	assert.Equal(t, "2025-01-06", got)

	_, err = Normalize("not-a-date")
	assert.Error(t, err)
}

func TestIsWorkingDay(t *testing.T) {
	tests := []struct {
		date string
		want bool
	}{
		{"2025-01-06", true},  // Monday
		{"2025-01-07", true},  // Tuesday
		{"2025-01-08", true},  // Wednesday
		{"2025-01-09", true},  // Thursday
		{"2025-01-10", true},  // Friday
		{"2025-01-11", false}, // Saturday
		{"2025-01-12", false}, // Sunday
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsWorkingDay(day(t, tt.date)), tt.date)
	}
}

func TestSprintEnd_TenWorkingDays(t *testing.T) {
	// Monday start spans two weekends and ends on the second Friday.
	end := SprintEnd(day(t, "2025-01-06"), 10)
	assert.Equal(t, "2025-01-17", Format(end))

	// Mid-week start still counts exactly ten working days.
	end = SprintEnd(day(t, "2025-01-08"), 10)
	assert.Equal(t, "2025-01-21", Format(end))
}

func TestSprintEnd_CountIsExact(t *testing.T) {
	start := day(t, "2025-01-06")
	end := SprintEnd(start, 10)

	assert.False(t, end.Before(start))
	assert.Equal(t, 10, CountWorkingDays(start, end))

	// No earlier date satisfies the count.
	assert.Equal(t, 9, CountWorkingDays(start, end.AddDate(0, 0, -1)))
}

func TestCountWorkingDays(t *testing.T) {
	tests := []struct {
		from, to string
		want     int
	}{
		{"2025-01-06", "2025-01-10", 5},  // Mon..Fri
		{"2025-01-06", "2025-01-17", 10}, // full sprint
		{"2025-01-11", "2025-01-12", 0},  // weekend only
		{"2025-01-10", "2025-01-13", 2},  // Fri..Mon
		{"2025-01-08", "2025-01-08", 1},  // single working day
		{"2025-01-17", "2025-01-06", 0},  // reversed range
	}
	for _, tt := range tests {
		got := CountWorkingDays(day(t, tt.from), day(t, tt.to))
		assert.Equal(t, tt.want, got, "%s..%s", tt.from, tt.to)
	}
}
