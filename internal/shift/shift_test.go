package shift

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	s := DefaultSchedule()

	tests := []struct {
		name    string
		arrival TimeOfDay
		shift   string
		late    bool
	}{
		{"midnight", At(0, 0, 0), "Day Shift", false},
		{"early morning", At(2, 0, 0), "Day Shift", false},
		{"day start", At(9, 0, 0), "Day Shift", false},
		{"last on-time second", At(9, 10, 0), "Day Shift", false},
		{"one second late", At(9, 10, 1), "Day Shift", true},
		{"mid day", At(12, 30, 0), "Day Shift", true},
		{"last day second", At(15, 59, 59), "Day Shift", true},
		{"cut is night", At(16, 0, 0), "Night Shift", false},
		{"night on-time limit", At(16, 10, 0), "Night Shift", false},
		{"night late", At(16, 10, 1), "Night Shift", true},
		{"late evening", At(23, 59, 59), "Night Shift", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			def, late := s.Classify(tt.arrival)
			assert.Equal(t, tt.shift, def.Name)
			assert.Equal(t, tt.late, late)
		})
	}
}

func TestClassifyIsTotal(t *testing.T) {
	s := DefaultSchedule()

	// Every clock time maps to exactly one of the two shifts, partitioned
	// by the cut.
	for sec := 0; sec < 24*3600; sec += 97 {
		def, _ := s.Classify(TimeOfDay(sec))
		if TimeOfDay(sec).Before(s.Cut) {
			assert.Equal(t, s.Day.Name, def.Name, "at %s", TimeOfDay(sec))
		} else {
			assert.Equal(t, s.Night.Name, def.Name, "at %s", TimeOfDay(sec))
		}
	}
}

func TestCheckoutPlan(t *testing.T) {
	s := DefaultSchedule()
	loc := time.UTC

	tests := []struct {
		name      string
		now       time.Time
		wantDays  int
		yesterday bool
	}{
		{"just after midnight", time.Date(2024, 3, 15, 0, 20, 0, 0, loc), 2, true},
		{"inside grace window", time.Date(2024, 3, 15, 5, 59, 0, 0, loc), 2, true},
		{"grace boundary", time.Date(2024, 3, 15, 6, 0, 0, 0, loc), 1, false},
		{"after grace window", time.Date(2024, 3, 15, 6, 1, 0, 0, loc), 1, false},
		{"midday", time.Date(2024, 3, 15, 13, 0, 0, 0, loc), 1, false},
		{"late evening", time.Date(2024, 3, 15, 23, 50, 0, 0, loc), 1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := s.CheckoutPlan(tt.now)
			require.Len(t, plan, tt.wantDays)

			assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, loc), plan[0].WorkDay)
			assert.False(t, plan[0].OpenOnly)

			if tt.yesterday {
				assert.Equal(t, time.Date(2024, 3, 14, 0, 0, 0, 0, loc), plan[1].WorkDay)
				assert.True(t, plan[1].OpenOnly)
			}
		})
	}
}

func TestWorkedDuration(t *testing.T) {
	loc := time.UTC
	day := time.Date(2024, 3, 14, 0, 0, 0, 0, loc)

	tests := []struct {
		name      string
		workDay   time.Time
		arrival   TimeOfDay
		departure time.Time
		want      string
	}{
		{
			name:      "same day",
			workDay:   day,
			arrival:   At(9, 15, 0),
			departure: time.Date(2024, 3, 14, 16, 0, 0, 0, loc),
			want:      "6:45:00",
		},
		{
			name:      "across midnight",
			workDay:   day,
			arrival:   At(23, 50, 0),
			departure: time.Date(2024, 3, 15, 0, 20, 0, 0, loc),
			want:      "0:30:00",
		},
		{
			name:      "full night shift closed next morning",
			workDay:   day,
			arrival:   At(16, 5, 0),
			departure: time.Date(2024, 3, 15, 1, 5, 0, 0, loc),
			want:      "9:00:00",
		},
		{
			name:      "sub-second departure truncated",
			workDay:   day,
			arrival:   At(9, 0, 0),
			departure: time.Date(2024, 3, 14, 17, 0, 0, 999_000_000, loc),
			want:      "8:00:00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := WorkedDuration(tt.workDay, tt.arrival, tt.departure)
			assert.Equal(t, tt.want, FormatDuration(d))
		})
	}
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "0:00:00", FormatDuration(0))
	assert.Equal(t, "0:30:00", FormatDuration(30*time.Minute))
	assert.Equal(t, "6:45:00", FormatDuration(6*time.Hour+45*time.Minute))
	assert.Equal(t, "26:00:05", FormatDuration(26*time.Hour+5*time.Second))
	assert.Equal(t, "0:00:01", FormatDuration(1900*time.Millisecond))
	assert.Equal(t, "-1:00:00", FormatDuration(-time.Hour))
}

func TestParseTimeOfDay(t *testing.T) {
	got, err := ParseTimeOfDay("16:10:00")
	require.NoError(t, err)
	assert.Equal(t, At(16, 10, 0), got)
	assert.Equal(t, "16:10:00", got.String())

	_, err = ParseTimeOfDay("25:00:00")
	assert.Error(t, err)
}

func TestOnDateKeepsLocation(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*3600)
	day := time.Date(2024, 3, 14, 0, 0, 0, 0, loc)

	anchored := At(23, 50, 0).OnDate(day)
	assert.Equal(t, loc, anchored.Location())
	assert.Equal(t, 23, anchored.Hour())
}
