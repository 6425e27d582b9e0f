package tasks

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Tiliavir/wdc/internal/analysis"
	"github.com/Tiliavir/wdc/internal/model"
	"github.com/Tiliavir/wdc/internal/timecalc"
)

// Service runs the task operations of the CLI against a Repository.
type Service struct {
	repo  Repository
	log   *zap.Logger
	clock func() time.Time
	newID func() string
}

// Option customises a Service.
type Option func(*Service)

// WithClock replaces the wall clock, mainly for tests.
func WithClock(clock func() time.Time) Option {
	return func(s *Service) { s.clock = clock }
}

// WithIDGenerator replaces the task ID generator.
func WithIDGenerator(newID func() string) Option {
	return func(s *Service) { s.newID = newID }
}

// NewService creates a Service. A nil logger discards all log output.
func NewService(repo Repository, log *zap.Logger, opts ...Option) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Service{
		repo:  repo,
		log:   log,
		clock: time.Now,
		newID: timecalc.GenerateID,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// StartRequest describes a task to begin. A zero Date means today.
type StartRequest struct {
	Date        timecalc.Date
	Start       timecalc.TimeOfDay
	End         *timecalc.TimeOfDay
	Tags        model.Tags
	Description string
}

// StartWork records a new task. An ongoing task of the same day that started
// earlier is closed at the new start; both are written in one step.
func (s *Service) StartWork(req StartRequest) (model.Task, error) {
	now := s.clock()
	date := req.Date
	if date.IsZero() {
		date = timecalc.DateOf(now)
	}
	if err := date.EnsureValid(); err != nil {
		return model.Task{}, err
	}
	if err := checkRange(req.Start, req.End); err != nil {
		return model.Task{}, err
	}

	task := model.Task{
		ID:          s.newID(),
		Date:        date,
		Start:       req.Start,
		Tags:        req.Tags,
		Description: req.Description,
		CreatedAt:   timecalc.Timestamp(now),
	}
	if req.End != nil {
		task = task.WithEnd(*req.End)
	}

	ym := date.YearMonth()
	existing, err := s.repo.LoadPeriod(ym)
	if err != nil {
		return model.Task{}, err
	}
	if HasOverlap(task, existing) {
		return model.Task{}, fmt.Errorf("task %s %w", task.ID, ErrTaskOverlap)
	}

	updated := make([]model.Task, len(existing), len(existing)+1)
	copy(updated, existing)
	if pred := FindOngoingPredecessor(task, updated); pred != nil {
		closed, err := closeTask(*pred, task.Start, task.CreatedAt, updated)
		if err != nil {
			return model.Task{}, err
		}
		*pred = closed
		s.log.Debug("closing ongoing task",
			zap.String("task_id", pred.ID),
			zap.Stringer("end", task.Start),
		)
	}
	updated = append(updated, task)

	if err := s.repo.ReplacePeriod(ym, updated); err != nil {
		return model.Task{}, err
	}
	s.log.Debug("task started",
		zap.String("task_id", task.ID),
		zap.Stringer("date", task.Date),
		zap.Stringer("start", task.Start),
	)
	return task, nil
}

// EndRequest closes the ongoing task of a day. Zero values mean today and now.
type EndRequest struct {
	Date timecalc.Date
	Time *timecalc.TimeOfDay
}

// EndTask closes the latest started ongoing task of the requested day.
func (s *Service) EndTask(req EndRequest) (model.Task, error) {
	now := s.clock()
	date := req.Date
	if date.IsZero() {
		date = timecalc.DateOf(now)
	}
	if err := date.EnsureValid(); err != nil {
		return model.Task{}, err
	}
	end := timecalc.TimeOfDayOf(now)
	if req.Time != nil {
		end = *req.Time
	}

	ym := date.YearMonth()
	existing, err := s.repo.LoadPeriod(ym)
	if err != nil {
		return model.Task{}, err
	}

	idx := -1
	for i, t := range existing {
		if t.Date != date || !t.IsOngoing() {
			continue
		}
		if idx < 0 || t.Start.After(existing[idx].Start) {
			idx = i
		}
	}
	if idx < 0 {
		return model.Task{}, fmt.Errorf("no ongoing task on %s: %w", date, ErrTaskNotFound)
	}
	if err := checkRange(existing[idx].Start, &end); err != nil {
		return model.Task{}, err
	}

	closed, err := closeTask(existing[idx], end, timecalc.Timestamp(now), existing)
	if err != nil {
		return model.Task{}, err
	}
	existing[idx] = closed

	if err := s.repo.ReplacePeriod(ym, existing); err != nil {
		return model.Task{}, err
	}
	s.log.Debug("task ended", zap.String("task_id", closed.ID), zap.Stringer("end", end))
	return closed, nil
}

// AmendRequest lists the fields to replace on an existing task. Nil fields
// keep their stored value.
type AmendRequest struct {
	ID          string
	Date        *timecalc.Date
	Start       *timecalc.TimeOfDay
	End         *timecalc.TimeOfDay
	Tags        *model.Tags
	Description *string
}

// Amend replaces fields of the latest stored version of a task. A changed
// date moves the task to its new partition.
func (s *Service) Amend(req AmendRequest) (model.Task, error) {
	if req.Date != nil {
		if err := req.Date.EnsureValid(); err != nil {
			return model.Task{}, err
		}
	}

	versions, err := s.repo.FindAllByID(req.ID)
	if err != nil {
		return model.Task{}, err
	}
	if len(versions) == 0 {
		return model.Task{}, fmt.Errorf("task %s: %w", req.ID, ErrTaskNotFound)
	}
	current := versions[len(versions)-1]

	amended := current
	if req.Date != nil {
		amended.Date = *req.Date
	}
	if req.Start != nil {
		amended.Start = *req.Start
	}
	if req.End != nil {
		e := *req.End
		amended.End = &e
	}
	if req.Tags != nil {
		amended.Tags = *req.Tags
	}
	if req.Description != nil {
		amended.Description = *req.Description
	}
	if err := checkRange(amended.Start, amended.End); err != nil {
		return model.Task{}, err
	}
	amended.CreatedAt = timecalc.Timestamp(s.clock())

	target := amended.Date.YearMonth()
	stored, err := s.repo.LoadPeriod(target)
	if err != nil {
		return model.Task{}, err
	}
	others := without(stored, amended.ID)
	if HasOverlap(amended, others) {
		return model.Task{}, fmt.Errorf("task %s %w", amended.ID, ErrTaskOverlap)
	}
	// The target is written before the source is cleaned up, so a failed
	// second write leaves a stale copy that latest-wins lookups skip.
	if err := s.repo.ReplacePeriod(target, append(others, amended)); err != nil {
		return model.Task{}, err
	}

	if source := current.Date.YearMonth(); source != target {
		old, err := s.repo.LoadPeriod(source)
		if err != nil {
			return model.Task{}, err
		}
		if err := s.repo.ReplacePeriod(source, without(old, amended.ID)); err != nil {
			return model.Task{}, err
		}
		s.log.Debug("task moved",
			zap.String("task_id", amended.ID),
			zap.Stringer("from", source),
			zap.Stringer("to", target),
		)
	}
	return amended, nil
}

// List returns the tasks of a day ordered by start time.
func (s *Service) List(date timecalc.Date) ([]model.Task, error) {
	if err := date.EnsureValid(); err != nil {
		return nil, err
	}
	all, err := s.repo.LoadPeriod(date.YearMonth())
	if err != nil {
		return nil, err
	}
	return SortByTime(SameDay(date, all), false), nil
}

// MonthTasks returns every task of a month ordered by date and start.
func (s *Service) MonthTasks(ym timecalc.YearMonth) ([]model.Task, error) {
	all, err := s.repo.LoadPeriod(ym)
	if err != nil {
		return nil, err
	}
	return SortByTime(all, false), nil
}

// WeekTasks returns the tasks of an ISO week. A week that spans two months
// reads both partitions.
func (s *Service) WeekTasks(week timecalc.Week) ([]model.Task, error) {
	return s.RangeTasks(week.Start(), week.End())
}

// RangeTasks returns the tasks dated from..to, both inclusive, reading every
// partition the range touches.
func (s *Service) RangeTasks(from, to timecalc.Date) ([]model.Task, error) {
	if err := from.EnsureValid(); err != nil {
		return nil, err
	}
	if err := to.EnsureValid(); err != nil {
		return nil, err
	}

	var periods []timecalc.YearMonth
	for d := from; !d.After(to); d = d.AddDays(1) {
		if ym := d.YearMonth(); len(periods) == 0 || periods[len(periods)-1] != ym {
			periods = append(periods, ym)
		}
	}

	var out []model.Task
	for _, ym := range periods {
		all, err := s.repo.LoadPeriod(ym)
		if err != nil {
			return nil, err
		}
		for _, t := range all {
			if t.Date.Between(from, to) {
				out = append(out, t)
			}
		}
	}
	return SortByTime(out, false), nil
}

// WeekStats aggregates the tasks of an ISO week.
func (s *Service) WeekStats(week timecalc.Week) (*analysis.Result, error) {
	tasks, err := s.WeekTasks(week)
	if err != nil {
		return nil, err
	}
	return analysis.Analyse(tasks), nil
}

// MonthStats aggregates the tasks of a month.
func (s *Service) MonthStats(ym timecalc.YearMonth) (*analysis.Result, error) {
	tasks, err := s.MonthTasks(ym)
	if err != nil {
		return nil, err
	}
	return analysis.Analyse(tasks), nil
}

func checkRange(start timecalc.TimeOfDay, end *timecalc.TimeOfDay) error {
	if end != nil && end.Before(start) {
		return fmt.Errorf("%w: %s-%s", ErrInvalidTimeRange, start, *end)
	}
	return nil
}

// closeTask ends t at end and rejects the result when it now covers another
// task of the same day.
func closeTask(t model.Task, end timecalc.TimeOfDay, stamp string, day []model.Task) (model.Task, error) {
	closed := t.WithEnd(end)
	closed.CreatedAt = stamp
	if HasOverlap(closed, without(day, closed.ID)) {
		return model.Task{}, fmt.Errorf("closing task %s at %s %w", closed.ID, end, ErrTaskOverlap)
	}
	return closed, nil
}

func without(tasks []model.Task, id string) []model.Task {
	out := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		if t.ID != id {
			out = append(out, t)
		}
	}
	return out
}
