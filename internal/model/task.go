package model

import (
	"github.com/Tiliavir/wdc/internal/timecalc"
	"github.com/Tiliavir/wdc/internal/validation"
)

// Task is a single piece of tracked work on one day.
// A nil End marks an ongoing task.
type Task struct {
	ID          string        `validate:"required"`
	Date        timecalc.Date `validate:"required,isodate"`
	Start       timecalc.TimeOfDay
	End         *timecalc.TimeOfDay
	Tags        Tags
	Description string
	CreatedAt   string `validate:"required"`
}

// IsValid reports whether the task carries an ID, a creation stamp and a valid date.
func IsValid(task *Task) bool {
	if task == nil {
		return false
	}
	return validation.Validate.Struct(task) == nil
}

// Equal compares the identity and time range of two tasks. Tags,
// description and creation stamp are ignored.
func (t Task) Equal(other Task) bool {
	if t.ID != other.ID || t.Date != other.Date || !t.Start.Equal(other.Start) {
		return false
	}
	if t.End == nil || other.End == nil {
		return t.End == nil && other.End == nil
	}
	return t.End.Equal(*other.End)
}

// IsOngoing reports whether the task has not been closed yet.
func (t Task) IsOngoing() bool { return t.End == nil }

// Slot returns the time interval of the task.
func (t Task) Slot() TimeSlot {
	return TimeSlot{Start: t.Start, End: t.End}
}

// Duration returns the worked time; ongoing tasks count as zero.
func (t Task) Duration() timecalc.Duration {
	if t.End == nil {
		return 0
	}
	return timecalc.Between(t.Start, *t.End)
}

// WithEnd returns a copy of t closed at end.
func (t Task) WithEnd(end timecalc.TimeOfDay) Task {
	t.End = &end
	return t
}

// EndString returns the hhmm end time, or "" for ongoing tasks.
func (t Task) EndString() string {
	if t.End == nil {
		return ""
	}
	return t.End.String()
}
