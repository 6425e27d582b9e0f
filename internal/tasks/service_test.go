package tasks_test

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/Tiliavir/wdc/internal/model"
	"github.com/Tiliavir/wdc/internal/tasks"
	"github.com/Tiliavir/wdc/internal/timecalc"
)

// memoryRepo is an in-memory Repository that records its calls.
type memoryRepo struct {
	periods  map[timecalc.YearMonth][]model.Task
	loads    []string
	replaces []string
	failLoad error

	// failReplace makes ReplacePeriod fail for the named partition.
	failReplace string
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{periods: make(map[timecalc.YearMonth][]model.Task)}
}

func (r *memoryRepo) LoadPeriod(ym timecalc.YearMonth) ([]model.Task, error) {
	r.loads = append(r.loads, ym.String())
	if r.failLoad != nil {
		return nil, r.failLoad
	}
	out := make([]model.Task, len(r.periods[ym]))
	copy(out, r.periods[ym])
	return out, nil
}

func (r *memoryRepo) ReplacePeriod(ym timecalc.YearMonth, list []model.Task) error {
	r.replaces = append(r.replaces, ym.String())
	if ym.String() == r.failReplace {
		return errors.New("disk full")
	}
	stored := make([]model.Task, len(list))
	copy(stored, list)
	r.periods[ym] = stored
	return nil
}

func (r *memoryRepo) FindAllByID(id string) ([]model.Task, error) {
	var out []model.Task
	for _, list := range r.periods {
		for _, t := range list {
			if t.ID == id {
				out = append(out, t)
			}
		}
	}
	return out, nil
}

func (r *memoryRepo) seed(list ...model.Task) {
	for _, t := range list {
		ym := t.Date.YearMonth()
		r.periods[ym] = append(r.periods[ym], t)
	}
}

func (r *memoryRepo) period(t *testing.T, s string) []model.Task {
	t.Helper()
	ym, err := timecalc.ParseYearMonth(s)
	require.NoError(t, err)
	return tasks.SortByTime(r.periods[ym], false)
}

var fixedNow = time.Date(2020, time.October, 25, 11, 45, 0, 0, time.Local)

func newService(t *testing.T, repo tasks.Repository) *tasks.Service {
	t.Helper()
	n := 0
	return tasks.NewService(repo, zaptest.NewLogger(t),
		tasks.WithClock(func() time.Time { return fixedNow }),
		tasks.WithIDGenerator(func() string {
			n++
			return fmt.Sprintf("id%06d", n)
		}),
	)
}

func tod(s string) *timecalc.TimeOfDay {
	v := timecalc.MustTimeOfDay(s)
	return &v
}

func TestStartWorkClosesOngoingPredecessor(t *testing.T) {
	repo := newMemoryRepo()
	repo.seed(newTask("prev", "2020-10-25", "1000", ""))
	svc := newService(t, repo)

	task, err := svc.StartWork(tasks.StartRequest{
		Date:        timecalc.NewDate("2020-10-25"),
		Start:       timecalc.MustTimeOfDay("1100"),
		Tags:        model.NewTags("cus1"),
		Description: "review",
	})
	require.NoError(t, err)
	assert.Equal(t, "id000001", task.ID)
	assert.True(t, task.IsOngoing())
	assert.Equal(t, timecalc.Timestamp(fixedNow), task.CreatedAt)

	assert.Equal(t, []string{"202010"}, repo.replaces, "both tasks are written in one step")
	stored := repo.period(t, "202010")
	require.Len(t, stored, 2)
	assert.Equal(t, "prev", stored[0].ID)
	assert.Equal(t, "1100", stored[0].EndString())
	assert.Equal(t, task.CreatedAt, stored[0].CreatedAt)
	assert.Equal(t, "id000001", stored[1].ID)
	assert.Equal(t, "CUS1", stored[1].Tags.String())
}

func TestStartWorkDefaultsToToday(t *testing.T) {
	repo := newMemoryRepo()
	svc := newService(t, repo)

	task, err := svc.StartWork(tasks.StartRequest{Start: timecalc.MustTimeOfDay("0800")})
	require.NoError(t, err)
	assert.Equal(t, "2020-10-25", task.Date.String())
}

func TestStartWorkRejectsOverlap(t *testing.T) {
	repo := newMemoryRepo()
	repo.seed(newTask("a", "2020-10-25", "0800", "1000"))
	svc := newService(t, repo)

	_, err := svc.StartWork(tasks.StartRequest{
		Date:  timecalc.NewDate("2020-10-25"),
		Start: timecalc.MustTimeOfDay("0900"),
		End:   tod("0930"),
	})
	require.ErrorIs(t, err, tasks.ErrTaskOverlap)
	assert.Equal(t, "task id000001 overlaps with existing tasks", err.Error())
	assert.Empty(t, repo.replaces)
}

func TestStartWorkClosedTaskKeepsPredecessorOpen(t *testing.T) {
	repo := newMemoryRepo()
	repo.seed(newTask("later", "2020-10-25", "1000", ""))
	svc := newService(t, repo)

	_, err := svc.StartWork(tasks.StartRequest{
		Date:  timecalc.NewDate("2020-10-25"),
		Start: timecalc.MustTimeOfDay("0800"),
		End:   tod("0900"),
	})
	require.NoError(t, err)

	stored := repo.period(t, "202010")
	require.Len(t, stored, 2)
	assert.True(t, stored[1].IsOngoing(), "a task starting later is not closed")
}

func TestStartWorkInvalidInput(t *testing.T) {
	repo := newMemoryRepo()
	svc := newService(t, repo)

	_, err := svc.StartWork(tasks.StartRequest{
		Date:  timecalc.NewDate("2020-02-30"),
		Start: timecalc.MustTimeOfDay("0800"),
	})
	assert.ErrorIs(t, err, timecalc.ErrInvalidDateFormat)

	_, err = svc.StartWork(tasks.StartRequest{
		Date:  timecalc.NewDate("2020-10-25"),
		Start: timecalc.MustTimeOfDay("1000"),
		End:   tod("0900"),
	})
	assert.ErrorIs(t, err, tasks.ErrInvalidTimeRange)
	assert.Empty(t, repo.loads)
}

func TestStartWorkDoesNotAliasEnd(t *testing.T) {
	svc := newService(t, newMemoryRepo())
	end := timecalc.MustTimeOfDay("0900")

	task, err := svc.StartWork(tasks.StartRequest{
		Date:  timecalc.NewDate("2020-10-25"),
		Start: timecalc.MustTimeOfDay("0800"),
		End:   &end,
	})
	require.NoError(t, err)
	end = timecalc.MustTimeOfDay("2300")
	assert.Equal(t, "0900", task.EndString())
}

func TestStartWorkLoadError(t *testing.T) {
	repo := newMemoryRepo()
	repo.failLoad = errors.New("disk on fire")
	svc := newService(t, repo)

	_, err := svc.StartWork(tasks.StartRequest{Start: timecalc.MustTimeOfDay("0800")})
	assert.EqualError(t, err, "disk on fire")
	assert.Empty(t, repo.replaces)
}

func TestEndTask(t *testing.T) {
	repo := newMemoryRepo()
	repo.seed(
		newTask("done", "2020-10-25", "0800", "0900"),
		newTask("open", "2020-10-25", "0900", ""),
	)
	svc := newService(t, repo)

	closed, err := svc.EndTask(tasks.EndRequest{})
	require.NoError(t, err)
	assert.Equal(t, "open", closed.ID)
	assert.Equal(t, "1145", closed.EndString())

	stored := repo.period(t, "202010")
	assert.Equal(t, "1145", stored[1].EndString())

	_, err = svc.EndTask(tasks.EndRequest{})
	assert.ErrorIs(t, err, tasks.ErrTaskNotFound)
}

func TestEndTaskBeforeStart(t *testing.T) {
	repo := newMemoryRepo()
	repo.seed(newTask("open", "2020-10-25", "0900", ""))
	svc := newService(t, repo)

	_, err := svc.EndTask(tasks.EndRequest{
		Date: timecalc.NewDate("2020-10-25"),
		Time: tod("0830"),
	})
	assert.ErrorIs(t, err, tasks.ErrInvalidTimeRange)
	assert.Empty(t, repo.replaces)
}

func TestAmendReplacesFields(t *testing.T) {
	repo := newMemoryRepo()
	orig := newTask("x", "2020-10-25", "0800", "0900")
	orig.Tags = model.NewTags("old")
	orig.Description = "before"
	repo.seed(orig, newTask("y", "2020-10-25", "1000", "1100"))
	svc := newService(t, repo)

	desc := "after"
	tags := model.NewTags("new")
	amended, err := svc.Amend(tasks.AmendRequest{
		ID:          "x",
		Start:       tod("0730"),
		End:         tod("0930"),
		Tags:        &tags,
		Description: &desc,
	})
	require.NoError(t, err)
	assert.Equal(t, "0730", amended.Start.String())
	assert.Equal(t, "0930", amended.EndString())
	assert.Equal(t, "NEW", amended.Tags.String())
	assert.Equal(t, "after", amended.Description)
	assert.Equal(t, timecalc.Timestamp(fixedNow), amended.CreatedAt)

	stored := repo.period(t, "202010")
	require.Len(t, stored, 2)
	assert.Equal(t, "x", stored[0].ID)
	assert.Equal(t, "after", stored[0].Description)
}

func TestAmendWithoutFieldsKeepsTask(t *testing.T) {
	repo := newMemoryRepo()
	orig := newTask("x", "2020-10-25", "0800", "0900")
	orig.Description = "keep"
	repo.seed(orig)
	svc := newService(t, repo)

	amended, err := svc.Amend(tasks.AmendRequest{ID: "x"})
	require.NoError(t, err)
	assert.True(t, orig.Equal(amended))
	assert.Equal(t, "keep", amended.Description)
}

func TestAmendErrors(t *testing.T) {
	repo := newMemoryRepo()
	repo.seed(
		newTask("x", "2020-10-25", "0800", "0900"),
		newTask("y", "2020-10-25", "0900", "1000"),
	)
	svc := newService(t, repo)

	_, err := svc.Amend(tasks.AmendRequest{ID: "missing"})
	assert.ErrorIs(t, err, tasks.ErrTaskNotFound)

	_, err = svc.Amend(tasks.AmendRequest{ID: "x", End: tod("0930")})
	assert.ErrorIs(t, err, tasks.ErrTaskOverlap)

	_, err = svc.Amend(tasks.AmendRequest{ID: "x", End: tod("0700")})
	assert.ErrorIs(t, err, tasks.ErrInvalidTimeRange)

	bad := timecalc.NewDate("2020-13-01")
	_, err = svc.Amend(tasks.AmendRequest{ID: "x", Date: &bad})
	assert.ErrorIs(t, err, timecalc.ErrInvalidDateFormat)

	assert.Empty(t, repo.replaces)
}

func TestAmendMovesPartition(t *testing.T) {
	repo := newMemoryRepo()
	repo.seed(
		newTask("x", "2020-10-01", "0800", "0900"),
		newTask("z", "2020-10-01", "1000", "1100"),
	)
	svc := newService(t, repo)

	date := timecalc.NewDate("2020-09-30")
	amended, err := svc.Amend(tasks.AmendRequest{ID: "x", Date: &date})
	require.NoError(t, err)
	assert.Equal(t, "2020-09-30", amended.Date.String())

	assert.Equal(t, []string{"202009", "202010"}, repo.replaces)
	sep := repo.period(t, "202009")
	require.Len(t, sep, 1)
	assert.Equal(t, "x", sep[0].ID)
	oct := repo.period(t, "202010")
	require.Len(t, oct, 1)
	assert.Equal(t, "z", oct[0].ID)
}

func TestListAndMonthTasks(t *testing.T) {
	repo := newMemoryRepo()
	repo.seed(
		newTask("b", "2020-10-25", "1000", "1100"),
		newTask("a", "2020-10-25", "0800", "0900"),
		newTask("c", "2020-10-26", "0800", "0900"),
	)
	svc := newService(t, repo)

	day, err := svc.List(timecalc.NewDate("2020-10-25"))
	require.NoError(t, err)
	require.Len(t, day, 2)
	assert.Equal(t, "a", day[0].ID)
	assert.Equal(t, "b", day[1].ID)

	ym, err := timecalc.ParseYearMonth("202010")
	require.NoError(t, err)
	month, err := svc.MonthTasks(ym)
	require.NoError(t, err)
	assert.Len(t, month, 3)

	_, err = svc.List(timecalc.NewDate("25.10.2020"))
	assert.ErrorIs(t, err, timecalc.ErrInvalidDateFormat)
}

func TestWeekTasksSpanningMonths(t *testing.T) {
	repo := newMemoryRepo()
	repo.seed(
		newTask("aug-before", "2021-08-29", "0800", "0900"),
		newTask("aug-in", "2021-08-30", "0800", "1000"),
		newTask("sep-in", "2021-09-05", "0800", "0830"),
		newTask("sep-after", "2021-09-06", "0800", "0900"),
	)
	svc := newService(t, repo)

	week, err := timecalc.ParseWeek("2021-W35")
	require.NoError(t, err)

	list, err := svc.WeekTasks(week)
	require.NoError(t, err)
	assert.Equal(t, []string{"202108", "202109"}, repo.loads)
	require.Len(t, list, 2)
	assert.Equal(t, "aug-in", list[0].ID)
	assert.Equal(t, "sep-in", list[1].ID)

	stats, err := svc.WeekStats(week)
	require.NoError(t, err)
	assert.Equal(t, "02:30", stats.TotalWorkTime().HHMM())
	assert.Equal(t, "02:30", stats.WeekTime(week).HHMM())
}

func TestWeekTasksWithinOneMonth(t *testing.T) {
	repo := newMemoryRepo()
	svc := newService(t, repo)

	week, err := timecalc.ParseWeek("2020-W43")
	require.NoError(t, err)
	_, err = svc.WeekTasks(week)
	require.NoError(t, err)
	assert.Equal(t, []string{"202010"}, repo.loads)
}

func TestMonthStats(t *testing.T) {
	repo := newMemoryRepo()
	repo.seed(
		newTask("a", "2020-10-25", "0800", "0900"),
		newTask("b", "2020-10-26", "0800", "1030"),
		newTask("open", "2020-10-26", "1030", ""),
	)
	svc := newService(t, repo)

	ym, err := timecalc.ParseYearMonth("2020-10")
	require.NoError(t, err)
	stats, err := svc.MonthStats(ym)
	require.NoError(t, err)
	assert.Equal(t, "03:30", stats.TotalWorkTime().HHMM())
	assert.Len(t, stats.Dates(), 2)
}

func TestStartWorkRejectsClosingAcrossAnotherTask(t *testing.T) {
	repo := newMemoryRepo()
	repo.seed(
		newTask("open", "2020-10-25", "1000", ""),
		newTask("mid", "2020-10-25", "1030", "1045"),
	)
	svc := newService(t, repo)

	_, err := svc.StartWork(tasks.StartRequest{
		Date:  timecalc.NewDate("2020-10-25"),
		Start: timecalc.MustTimeOfDay("1100"),
	})
	require.ErrorIs(t, err, tasks.ErrTaskOverlap)
	assert.Contains(t, err.Error(), "closing task open at 1100")
	assert.Empty(t, repo.replaces)
}

func TestEndTaskRejectsClosingAcrossAnotherTask(t *testing.T) {
	repo := newMemoryRepo()
	repo.seed(
		newTask("open", "2020-10-25", "1000", ""),
		newTask("mid", "2020-10-25", "1030", "1045"),
	)
	svc := newService(t, repo)

	_, err := svc.EndTask(tasks.EndRequest{
		Date: timecalc.NewDate("2020-10-25"),
		Time: tod("1100"),
	})
	require.ErrorIs(t, err, tasks.ErrTaskOverlap)
	assert.Empty(t, repo.replaces)
}

func TestEndTaskClosesLatestOpenTask(t *testing.T) {
	repo := newMemoryRepo()
	svc := newService(t, repo)
	date := timecalc.NewDate("2020-10-25")

	late, err := svc.StartWork(tasks.StartRequest{Date: date, Start: timecalc.MustTimeOfDay("1000")})
	require.NoError(t, err)
	_, err = svc.StartWork(tasks.StartRequest{Date: date, Start: timecalc.MustTimeOfDay("0900")})
	require.NoError(t, err)

	closed, err := svc.EndTask(tasks.EndRequest{Date: date, Time: tod("1100")})
	require.NoError(t, err)
	assert.Equal(t, late.ID, closed.ID)

	stored := repo.period(t, "202010")
	require.Len(t, stored, 2)
	for i, task := range stored {
		others := append(append([]model.Task{}, stored[:i]...), stored[i+1:]...)
		assert.False(t, tasks.HasOverlap(task, others), "stored task %s overlaps", task.ID)
	}
}

func TestRangeTasks(t *testing.T) {
	repo := newMemoryRepo()
	repo.seed(
		newTask("sep", "2021-09-30", "0800", "0900"),
		newTask("oct", "2021-10-15", "0800", "0900"),
		newTask("nov", "2021-11-01", "0800", "0900"),
		newTask("late", "2021-11-02", "0800", "0900"),
	)
	svc := newService(t, repo)

	list, err := svc.RangeTasks(timecalc.NewDate("2021-09-30"), timecalc.NewDate("2021-11-01"))
	require.NoError(t, err)
	assert.Equal(t, []string{"202109", "202110", "202111"}, repo.loads)
	require.Len(t, list, 3)
	assert.Equal(t, "sep", list[0].ID)
	assert.Equal(t, "nov", list[2].ID)

	_, err = svc.RangeTasks(timecalc.NewDate("2021-02-30"), timecalc.NewDate("2021-03-01"))
	assert.ErrorIs(t, err, timecalc.ErrInvalidDateFormat)
}

func TestAmendMoveKeepsTaskWhenSourceWriteFails(t *testing.T) {
	repo := newMemoryRepo()
	repo.seed(newTask("x", "2020-10-01", "0800", "0900"))
	repo.failReplace = "202010"
	svc := newService(t, repo)

	date := timecalc.NewDate("2020-09-30")
	_, err := svc.Amend(tasks.AmendRequest{ID: "x", Date: &date})
	require.EqualError(t, err, "disk full")

	sep := repo.period(t, "202009")
	require.Len(t, sep, 1)
	assert.Equal(t, "2020-09-30", sep[0].Date.String())
	assert.Equal(t, timecalc.Timestamp(fixedNow), sep[0].CreatedAt, "the moved copy is the newest version")
}
