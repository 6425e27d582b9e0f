package tasks

import (
	"github.com/Tiliavir/wdc/internal/model"
	"github.com/Tiliavir/wdc/internal/timecalc"
)

// Repository persists tasks in monthly partitions.
type Repository interface {
	// LoadPeriod returns every task stored for the month, or none.
	LoadPeriod(ym timecalc.YearMonth) ([]model.Task, error)
	// ReplacePeriod overwrites the month with tasks.
	ReplacePeriod(ym timecalc.YearMonth, tasks []model.Task) error
	// FindAllByID returns every stored version of a task across all months,
	// oldest first.
	FindAllByID(id string) ([]model.Task, error)
}
