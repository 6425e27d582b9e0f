package model

import "github.com/Tiliavir/wdc/internal/timecalc"

// Comparison is the relative position of two time slots.
type Comparison int

const (
	Overlap Comparison = iota
	Before
	After
)

func (c Comparison) String() string {
	switch c {
	case Before:
		return "before"
	case After:
		return "after"
	default:
		return "overlap"
	}
}

// TimeSlot is the half-open interval [Start, End) of a task.
// A nil End is ongoing: it lasts until the next task starts.
type TimeSlot struct {
	Start timecalc.TimeOfDay
	End   *timecalc.TimeOfDay
}

// IsOngoing reports whether the slot has no end yet.
func (s TimeSlot) IsOngoing() bool { return s.End == nil }

// Compare places s relative to other. Touching slots do not overlap,
// identical slots do, and anything not clearly before or after is an overlap.
func (s TimeSlot) Compare(other TimeSlot) Comparison {
	switch {
	case s.End == nil && other.End == nil:
		return compareStarts(s, other)
	case s.End == nil:
		if s.Start.Before(other.Start) {
			return Before
		}
		if !other.End.After(s.Start) {
			return After
		}
		return Overlap
	case other.End == nil:
		if other.Start.Before(s.Start) {
			return After
		}
		if !s.End.After(other.Start) {
			return Before
		}
		return Overlap
	}

	if s.Start.Equal(other.Start) && s.End.Equal(*other.End) {
		return Overlap
	}
	if !s.End.After(other.Start) {
		return Before
	}
	if !other.End.After(s.Start) {
		return After
	}
	return Overlap
}

// compareStarts orders two ongoing slots. Only equal starts collide.
func compareStarts(a, b TimeSlot) Comparison {
	switch a.Start.Compare(b.Start) {
	case -1:
		return Before
	case 1:
		return After
	default:
		return Overlap
	}
}

// EndOrStart returns the end of the slot, or its start while it is ongoing.
func (s TimeSlot) EndOrStart() timecalc.TimeOfDay {
	if s.End == nil {
		return s.Start
	}
	return *s.End
}
