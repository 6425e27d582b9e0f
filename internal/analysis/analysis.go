package analysis

import (
	"sort"

	"github.com/Tiliavir/wdc/internal/model"
	"github.com/Tiliavir/wdc/internal/timecalc"
)

// Result holds worked time aggregated by day, week and tag.
// It is rebuilt from tasks on every query and never stored.
type Result struct {
	total      timecalc.Duration
	dates      map[timecalc.Date]timecalc.Duration
	starts     map[timecalc.Date]timecalc.TimeOfDay
	ends       map[timecalc.Date]timecalc.TimeOfDay
	weeks      map[timecalc.Week]timecalc.Duration
	tagsByTag  map[string]map[timecalc.Date]timecalc.Duration
	tagsByDate map[timecalc.Date]map[string]timecalc.Duration
}

func newResult() *Result {
	return &Result{
		dates:      map[timecalc.Date]timecalc.Duration{},
		starts:     map[timecalc.Date]timecalc.TimeOfDay{},
		ends:       map[timecalc.Date]timecalc.TimeOfDay{},
		weeks:      map[timecalc.Week]timecalc.Duration{},
		tagsByTag:  map[string]map[timecalc.Date]timecalc.Duration{},
		tagsByDate: map[timecalc.Date]map[string]timecalc.Duration{},
	}
}

// Analyse folds tasks into a Result. Each tag of a task is credited with the
// full task duration, so tag totals may add up to more than the total.
// Ongoing tasks count as zero and do not set a workday end.
func Analyse(tasks []model.Task) *Result {
	r := newResult()
	for _, t := range tasks {
		d := t.Duration()
		r.addWorkItem(t.Date, d)
		for _, tag := range t.Tags.Labels() {
			r.addTag(tag, t.Date, d)
		}
		r.trackSpan(t)
	}
	return r
}

func (r *Result) addWorkItem(date timecalc.Date, d timecalc.Duration) {
	r.dates[date] += d
	r.weeks[date.Week()] += d
	r.total += d
}

func (r *Result) addTag(tag string, date timecalc.Date, d timecalc.Duration) {
	if r.tagsByDate[date] == nil {
		r.tagsByDate[date] = map[string]timecalc.Duration{}
	}
	r.tagsByDate[date][tag] += d

	if r.tagsByTag[tag] == nil {
		r.tagsByTag[tag] = map[timecalc.Date]timecalc.Duration{}
	}
	r.tagsByTag[tag][date] += d
}

// trackSpan keeps the earliest start and latest end per day; the first task
// seen wins ties.
func (r *Result) trackSpan(t model.Task) {
	if start, ok := r.starts[t.Date]; !ok || t.Start.Before(start) {
		r.starts[t.Date] = t.Start
	}
	if t.End == nil {
		return
	}
	if end, ok := r.ends[t.Date]; !ok || t.End.After(end) {
		r.ends[t.Date] = *t.End
	}
}

// TotalWorkTime returns the time worked across all tasks.
func (r *Result) TotalWorkTime() timecalc.Duration { return r.total }

// Dates returns the days with at least one task, in order.
func (r *Result) Dates() []timecalc.Date {
	out := make([]timecalc.Date, 0, len(r.dates))
	for d := range r.dates {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}

// WorkdayDuration returns the time worked on date.
func (r *Result) WorkdayDuration(date timecalc.Date) (timecalc.Duration, bool) {
	d, ok := r.dates[date]
	return d, ok
}

// WorkdayStart returns the earliest task start on date.
func (r *Result) WorkdayStart(date timecalc.Date) (timecalc.TimeOfDay, bool) {
	t, ok := r.starts[date]
	return t, ok
}

// WorkdayEnd returns the latest task end on date.
func (r *Result) WorkdayEnd(date timecalc.Date) (timecalc.TimeOfDay, bool) {
	t, ok := r.ends[date]
	return t, ok
}

// WeekTime returns the time worked in an ISO week.
func (r *Result) WeekTime(week timecalc.Week) timecalc.Duration {
	return r.weeks[week]
}

// Tags returns all tags seen, sorted.
func (r *Result) Tags() []string {
	out := make([]string, 0, len(r.tagsByTag))
	for tag := range r.tagsByTag {
		out = append(out, tag)
	}
	sort.Strings(out)
	return out
}

// TagTime returns the per-day durations booked on tag.
func (r *Result) TagTime(tag string) map[timecalc.Date]timecalc.Duration {
	out := make(map[timecalc.Date]timecalc.Duration, len(r.tagsByTag[tag]))
	for d, v := range r.tagsByTag[tag] {
		out[d] = v
	}
	return out
}

// TagsOn returns the per-tag durations of date.
func (r *Result) TagsOn(date timecalc.Date) map[string]timecalc.Duration {
	out := make(map[string]timecalc.Duration, len(r.tagsByDate[date]))
	for tag, v := range r.tagsByDate[date] {
		out[tag] = v
	}
	return out
}

// TagTotalTime returns the time booked on tag across all days.
func (r *Result) TagTotalTime(tag string) timecalc.Duration {
	var total timecalc.Duration
	for _, v := range r.tagsByTag[tag] {
		total = total.Add(v)
	}
	return total
}
