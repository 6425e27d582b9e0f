package timecalc

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrInvalidTimeFormat is returned for malformed or out-of-range hhmm values.
	ErrInvalidTimeFormat = errors.New("invalid time format")
	// ErrInvalidDateFormat is returned for malformed date, month or week values.
	ErrInvalidDateFormat = errors.New("invalid date format")
)

// GenerateID creates an opaque 8 character task ID.
func GenerateID() string {
	id := uuid.New()
	return strings.ReplaceAll(id.String(), "-", "")[:8]
}

// Timestamp returns t as Unix milliseconds, the creation stamp stored with each task.
func Timestamp(t time.Time) string {
	return strconv.FormatInt(t.UnixMilli(), 10)
}

// WorkdayEnd projects the end of a workday that starts at start, lasts
// duration and includes a break of breakMinutes.
func WorkdayEnd(start TimeOfDay, breakMinutes int, duration TimeOfDay) TimeOfDay {
	return start.Add(duration).AddMinutes(breakMinutes)
}

// WeekRange returns the Monday and Sunday of the ISO week containing d.
func WeekRange(d Date) (Date, Date) {
	w := d.Week()
	return w.Start(), w.End()
}
