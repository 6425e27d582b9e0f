package tasks

import "errors"

var (
	// ErrTaskOverlap is returned when a task collides with another task of the same day.
	ErrTaskOverlap = errors.New("overlaps with existing tasks")
	// ErrTaskNotFound is returned when a task ID or ongoing task cannot be resolved.
	ErrTaskNotFound = errors.New("task not found")
	// ErrInvalidTimeRange is returned when a task would end before it starts.
	ErrInvalidTimeRange = errors.New("end time before start time")
)
