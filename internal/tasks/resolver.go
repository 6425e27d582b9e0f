package tasks

import (
	"sort"

	"github.com/Tiliavir/wdc/internal/model"
	"github.com/Tiliavir/wdc/internal/timecalc"
)

// SameDay returns the tasks dated on date, keeping their order.
func SameDay(date timecalc.Date, tasks []model.Task) []model.Task {
	var out []model.Task
	for _, t := range tasks {
		if t.Date == date {
			out = append(out, t)
		}
	}
	return out
}

// HasOverlap reports whether candidate collides with any task on its day.
func HasOverlap(candidate model.Task, existing []model.Task) bool {
	for _, t := range SameDay(candidate.Date, existing) {
		if t.Slot().Compare(candidate.Slot()) == model.Overlap {
			return true
		}
	}
	return false
}

// FindOngoing returns the first task without an end, or nil.
func FindOngoing(tasks []model.Task) *model.Task {
	for i := range tasks {
		if tasks[i].IsOngoing() {
			return &tasks[i]
		}
	}
	return nil
}

// FindOngoingPredecessor returns the open task on candidate's day that starts
// last before candidate, i.e. the task a new start should close.
func FindOngoingPredecessor(candidate model.Task, tasks []model.Task) *model.Task {
	var pred *model.Task
	for i := range tasks {
		t := tasks[i]
		if t.Date != candidate.Date || !t.IsOngoing() || t.ID == candidate.ID {
			continue
		}
		if t.Slot().Compare(candidate.Slot()) != model.Before {
			continue
		}
		if pred == nil || t.Start.After(pred.Start) {
			pred = &tasks[i]
		}
	}
	return pred
}

// FindLatestPredecessor returns the task on candidate's day that lies before
// candidate and ends last. Ties go to the task listed last.
func FindLatestPredecessor(candidate model.Task, tasks []model.Task) *model.Task {
	var before []model.Task
	for _, t := range SameDay(candidate.Date, tasks) {
		if t.Slot().Compare(candidate.Slot()) == model.Before {
			before = append(before, t)
		}
	}
	if len(before) == 0 {
		return nil
	}
	sort.SliceStable(before, func(i, j int) bool {
		return before[i].Slot().EndOrStart().Before(before[j].Slot().EndOrStart())
	})
	latest := before[len(before)-1]
	return &latest
}

// SortByTime orders tasks by date and start time. The sort is stable.
func SortByTime(tasks []model.Task, descending bool) []model.Task {
	out := make([]model.Task, len(tasks))
	copy(out, tasks)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if descending {
			a, b = b, a
		}
		if c := a.Date.Compare(b.Date); c != 0 {
			return c < 0
		}
		return a.Start.Before(b.Start)
	})
	return out
}
