// Package shift holds the shift table and the time arithmetic behind
// check-in and check-out: classifying an arrival into the day or night
// shift, flagging late arrivals, planning which work days a check-out may
// close, and computing worked time across midnight.
package shift

import (
	"fmt"
	"time"
)

// Definition describes one named shift of the working day.
type Definition struct {
	Name            string
	Start           TimeOfDay
	End             TimeOfDay
	LateAfter       TimeOfDay
	CrossesMidnight bool
}

// Schedule is the immutable shift table for the whole installation. The Cut
// time routes an arbitrary arrival to one of the two shifts; it is not the
// same thing as the shifts' nominal start times. A night shift carried over
// from the previous day is the business of CheckoutPlan, not Classify: a
// fresh 02:00 arrival is just a very early day-shift arrival.
type Schedule struct {
	Day   Definition
	Night Definition

	// Cut partitions the clock: arrivals strictly before it belong to the
	// day shift, arrivals at or after it to the night shift.
	Cut TimeOfDay

	// NightGraceUntil bounds the window after midnight in which a check-out
	// may still close the previous day's unfinished night shift.
	NightGraceUntil TimeOfDay
}

// DefaultSchedule returns the shift table the system ships with.
func DefaultSchedule() Schedule {
	return Schedule{
		Day: Definition{
			Name:      "Day Shift",
			Start:     At(9, 0, 0),
			End:       At(16, 0, 0),
			LateAfter: At(9, 10, 0),
		},
		Night: Definition{
			Name:            "Night Shift",
			Start:           At(16, 0, 0),
			End:             At(23, 0, 0),
			LateAfter:       At(16, 10, 0),
			CrossesMidnight: true,
		},
		Cut:             At(16, 0, 0),
		NightGraceUntil: At(6, 0, 0),
	}
}

// Classify maps an arrival clock time to its shift and lateness verdict.
// Total over all clock times: before the cut is day, at or after is night.
// An arrival is late only when strictly past the shift's LateAfter time.
func (s Schedule) Classify(t TimeOfDay) (Definition, bool) {
	def := s.Night
	if t.Before(s.Cut) {
		def = s.Day
	}
	return def, t.After(def.LateAfter)
}

// SearchStep is one work day a check-out lookup should probe, in order.
type SearchStep struct {
	WorkDay time.Time

	// OpenOnly restricts the probe to records that are still open. The
	// first step deliberately matches completed records too, so a second
	// check-out on the same day finds the closed record and fails instead
	// of closing something else.
	OpenOnly bool
}

// CheckoutPlan returns the work days a check-out at the given moment may
// close, most recent first. Today is always probed; yesterday only while
// the clock is still inside the night-shift grace window, which is what
// lets a night shift opened before midnight be closed after it.
func (s Schedule) CheckoutPlan(now time.Time) []SearchStep {
	today := DateOf(now)
	plan := []SearchStep{{WorkDay: today}}
	if ClockOf(now).Before(s.NightGraceUntil) {
		plan = append(plan, SearchStep{WorkDay: today.AddDate(0, 0, -1), OpenOnly: true})
	}
	return plan
}

// WorkedDuration computes elapsed working time for a record. The arrival is
// anchored on the record's stored work day and the departure on its actual
// calendar day, so a night shift closed after midnight yields the true
// elapsed time instead of a negative or wrapped value.
func WorkedDuration(workDay time.Time, arrival TimeOfDay, departure time.Time) time.Duration {
	start := arrival.OnDate(workDay)
	end := ClockOf(departure).OnDate(DateOf(departure))
	return end.Sub(start)
}

// FormatDuration renders a duration as H:MM:SS, truncated to whole seconds.
func FormatDuration(d time.Duration) string {
	sign := ""
	if d < 0 {
		sign = "-"
		d = -d
	}
	total := int(d / time.Second)
	return fmt.Sprintf("%s%d:%02d:%02d", sign, total/3600, total%3600/60, total%60)
}
