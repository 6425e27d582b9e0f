package storage

import (
	"errors"
	"fmt"

	"github.com/Tiliavir/wdc/internal/model"
	"github.com/Tiliavir/wdc/internal/timecalc"
)

// ErrInvalidRow is returned for rows that do not describe a valid task.
var ErrInvalidRow = errors.New("invalid task row")

// Field order of a stored task row.
const (
	fieldID = iota
	fieldDate
	fieldStart
	fieldEnd
	fieldTags
	fieldDescription
	fieldCreatedAt
	fieldCount
)

// EncodeRow converts a task into its stored fields. An ongoing task has an
// empty end field.
func EncodeRow(t model.Task) []string {
	row := make([]string, fieldCount)
	row[fieldID] = t.ID
	row[fieldDate] = t.Date.String()
	row[fieldStart] = t.Start.String()
	row[fieldEnd] = t.EndString()
	row[fieldTags] = t.Tags.String()
	row[fieldDescription] = t.Description
	row[fieldCreatedAt] = t.CreatedAt
	return row
}

// DecodeRow parses stored fields back into a task.
func DecodeRow(row []string) (model.Task, error) {
	if len(row) != fieldCount {
		return model.Task{}, fmt.Errorf("expected %d fields, got %d", fieldCount, len(row))
	}
	start, err := timecalc.ParseTimeOfDay(row[fieldStart])
	if err != nil {
		return model.Task{}, fmt.Errorf("start: %w", err)
	}
	task := model.Task{
		ID:          row[fieldID],
		Date:        timecalc.NewDate(row[fieldDate]),
		Start:       start,
		Tags:        model.ParseTags(row[fieldTags]),
		Description: row[fieldDescription],
		CreatedAt:   row[fieldCreatedAt],
	}
	if row[fieldEnd] != "" {
		end, err := timecalc.ParseTimeOfDay(row[fieldEnd])
		if err != nil {
			return model.Task{}, fmt.Errorf("end: %w", err)
		}
		task = task.WithEnd(end)
	}
	if err := task.Date.EnsureValid(); err != nil {
		return model.Task{}, err
	}
	if !model.IsValid(&task) {
		return model.Task{}, fmt.Errorf("%w: id and createdAt are required", ErrInvalidRow)
	}
	return task, nil
}
