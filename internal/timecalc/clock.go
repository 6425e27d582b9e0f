package timecalc

import (
	"fmt"
	"regexp"
	"time"
)

const (
	minutesPerHour = 60
	minutesPerDay  = 24 * minutesPerHour
)

var timeOfDayPattern = regexp.MustCompile(`^([01]\d|2[0-3])[0-5]\d$`)

// TimeOfDay is a wall-clock time on a 24-hour dial, written as hhmm.
// The zero value is midnight (0000).
type TimeOfDay struct {
	minutes int
}

// ParseTimeOfDay parses a four digit hhmm string between 0000 and 2359.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	if !timeOfDayPattern.MatchString(s) {
		return TimeOfDay{}, fmt.Errorf("%w: %q must be between 0000 and 2359", ErrInvalidTimeFormat, s)
	}
	h := int(s[0]-'0')*10 + int(s[1]-'0')
	m := int(s[2]-'0')*10 + int(s[3]-'0')
	return TimeOfDay{minutes: h*minutesPerHour + m}, nil
}

// MustTimeOfDay is like ParseTimeOfDay but panics on invalid input.
func MustTimeOfDay(s string) TimeOfDay {
	t, err := ParseTimeOfDay(s)
	if err != nil {
		panic(err)
	}
	return t
}

// IsTimeValid reports whether s is a valid hhmm string.
func IsTimeValid(s string) bool {
	return timeOfDayPattern.MatchString(s)
}

// TimeOfDayOf returns the clock time of t truncated to the minute.
func TimeOfDayOf(t time.Time) TimeOfDay {
	return TimeOfDay{minutes: t.Hour()*minutesPerHour + t.Minute()}
}

// Now returns the current local clock time truncated to the minute.
func Now() TimeOfDay {
	return TimeOfDayOf(time.Now())
}

// Hours returns the hour component (0-23).
func (t TimeOfDay) Hours() int { return t.minutes / minutesPerHour }

// Minutes returns the minute component (0-59).
func (t TimeOfDay) Minutes() int { return t.minutes % minutesPerHour }

// SinceMidnight returns the number of minutes since 0000.
func (t TimeOfDay) SinceMidnight() int { return t.minutes }

// Add adds the hours and minutes of other to t on the clock face.
// Minutes carry into hours and hours wrap at 24, so day overflow is lost.
func (t TimeOfDay) Add(other TimeOfDay) TimeOfDay {
	return t.AddMinutes(other.Minutes()).AddHours(other.Hours())
}

// Sub shifts t back by the hours and minutes of other.
func (t TimeOfDay) Sub(other TimeOfDay) TimeOfDay {
	return t.AddHours(-other.Hours()).AddMinutes(-other.Minutes())
}

// AddMinutes shifts t by n minutes; n may be negative.
func (t TimeOfDay) AddMinutes(n int) TimeOfDay {
	return TimeOfDay{minutes: wrap(t.minutes+n, minutesPerDay)}
}

// AddHours shifts t by n hours; n may be negative.
func (t TimeOfDay) AddHours(n int) TimeOfDay {
	return TimeOfDay{minutes: wrap(t.Hours()+n, 24)*minutesPerHour + t.Minutes()}
}

// Compare returns -1, 0 or +1 depending on whether t is before, equal to or after other.
func (t TimeOfDay) Compare(other TimeOfDay) int {
	switch {
	case t.minutes < other.minutes:
		return -1
	case t.minutes > other.minutes:
		return 1
	default:
		return 0
	}
}

func (t TimeOfDay) Before(other TimeOfDay) bool { return t.minutes < other.minutes }
func (t TimeOfDay) After(other TimeOfDay) bool  { return t.minutes > other.minutes }
func (t TimeOfDay) Equal(other TimeOfDay) bool  { return t.minutes == other.minutes }

// String returns the hhmm form.
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d%02d", t.Hours(), t.Minutes())
}

// Clock returns the hh:mm form used for display.
func (t TimeOfDay) Clock() string {
	return fmt.Sprintf("%02d:%02d", t.Hours(), t.Minutes())
}

func wrap(v, m int) int {
	return ((v % m) + m) % m
}
