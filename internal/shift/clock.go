package shift

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
)

// TimeOfDay is a wall-clock time expressed as whole seconds since midnight.
// It carries no date and no location; pairing it with a calendar day is the
// caller's job (see WorkedDuration).
type TimeOfDay int

// At builds a TimeOfDay from clock components.
func At(hour, minute, second int) TimeOfDay {
	return TimeOfDay(hour*3600 + minute*60 + second)
}

// ParseTimeOfDay parses the "15:04:05" layout used by the TIME columns.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	t, err := time.Parse("15:04:05", s)
	if err != nil {
		return 0, errors.Wrap(err, "parsing time of day")
	}
	return At(t.Hour(), t.Minute(), t.Second()), nil
}

// ClockOf extracts the clock portion of t, truncated to whole seconds.
func ClockOf(t time.Time) TimeOfDay {
	return At(t.Hour(), t.Minute(), t.Second())
}

// DateOf strips the clock portion of t, keeping its location.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func (t TimeOfDay) Hour() int   { return int(t) / 3600 }
func (t TimeOfDay) Minute() int { return int(t) % 3600 / 60 }
func (t TimeOfDay) Second() int { return int(t) % 60 }

func (t TimeOfDay) Before(u TimeOfDay) bool { return t < u }
func (t TimeOfDay) After(u TimeOfDay) bool  { return t > u }

// OnDate anchors the clock time on the given calendar day.
func (t TimeOfDay) OnDate(day time.Time) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), t.Hour(), t.Minute(), t.Second(), 0, day.Location())
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", t.Hour(), t.Minute(), t.Second())
}
