package cmd

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/Tiliavir/wdc/internal/analysis"
	"github.com/Tiliavir/wdc/internal/model"
	"github.com/Tiliavir/wdc/internal/timecalc"
)

// palette is the colour scheme of tables and messages.
var palette = struct {
	Primary lipgloss.Color
	Dim     lipgloss.Color
	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color
	Border  lipgloss.Color
}{
	Primary: lipgloss.Color("#7aa2f7"),
	Dim:     lipgloss.Color("#565f89"),
	Success: lipgloss.Color("#9ece6a"),
	Warning: lipgloss.Color("#e0af68"),
	Error:   lipgloss.Color("#f7768e"),
	Border:  lipgloss.Color("#3b4261"),
}

type styles struct {
	title   lipgloss.Style
	header  lipgloss.Style
	cell    lipgloss.Style
	dim     lipgloss.Style
	total   lipgloss.Style
	success lipgloss.Style
	warning lipgloss.Style
	err     lipgloss.Style
	border  lipgloss.Style
}

// newStyles builds the output styles. Without colour every style only pads.
func newStyles(color bool) styles {
	s := styles{
		title:   lipgloss.NewStyle().Bold(color),
		header:  lipgloss.NewStyle().Padding(0, 1).Bold(color),
		cell:    lipgloss.NewStyle().Padding(0, 1),
		dim:     lipgloss.NewStyle(),
		total:   lipgloss.NewStyle().Padding(0, 1).Bold(color),
		success: lipgloss.NewStyle(),
		warning: lipgloss.NewStyle(),
		err:     lipgloss.NewStyle(),
		border:  lipgloss.NewStyle(),
	}
	if !color {
		return s
	}
	s.title = s.title.Foreground(palette.Primary)
	s.header = s.header.Foreground(palette.Primary)
	s.dim = s.dim.Foreground(palette.Dim)
	s.success = s.success.Foreground(palette.Success)
	s.warning = s.warning.Foreground(palette.Warning)
	s.err = s.err.Foreground(palette.Error)
	s.border = s.border.Foreground(palette.Border)
	return s
}

func (s styles) newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(s.border).
		Headers(headers...)
}

// render fills t with rows. With hasTotal the last row uses the total style.
func (s styles) render(t *table.Table, rows [][]string, hasTotal bool) string {
	last := len(rows) - 1
	t.Rows(rows...)
	t.StyleFunc(func(row, col int) lipgloss.Style {
		switch {
		case row == table.HeaderRow:
			return s.header
		case hasTotal && row == last:
			return s.total
		default:
			return s.cell
		}
	})
	return t.String()
}

// taskRows turns tasks into table rows: id, date, start, end, duration, tags, description.
func taskRows(list []model.Task, now timecalc.TimeOfDay, today timecalc.Date) [][]string {
	rows := make([][]string, 0, len(list))
	for _, t := range list {
		end := t.EndString()
		dur := t.Duration()
		if t.IsOngoing() {
			end = "…"
			if t.Date == today {
				dur = timecalc.Between(t.Start, now)
			}
		}
		rows = append(rows, []string{
			t.ID,
			t.Date.String(),
			t.Start.String(),
			end,
			dur.HHMM(),
			t.Tags.String(),
			t.Description,
		})
	}
	return rows
}

func printTasks(w io.Writer, list []model.Task) {
	if len(list) == 0 {
		fmt.Fprintln(w, ui.dim.Render("No tasks found."))
		return
	}
	rows := taskRows(list, timecalc.Now(), timecalc.Today())
	t := ui.newTable("ID", "Date", "Start", "End", "Duration", "Tags", "Description")
	fmt.Fprintln(w, ui.render(t, rows, false))
}

// dayRows summarises each day of a result: start, end, duration and tags.
func dayRows(r *analysis.Result) [][]string {
	dates := r.Dates()
	rows := make([][]string, 0, len(dates)+1)
	for _, d := range dates {
		start, end := "", ""
		if v, ok := r.WorkdayStart(d); ok {
			start = v.Clock()
		}
		if v, ok := r.WorkdayEnd(d); ok {
			end = v.Clock()
		}
		dur, _ := r.WorkdayDuration(d)
		rows = append(rows, []string{
			d.String(),
			d.Time().Weekday().String()[:3],
			start,
			end,
			dur.HHMM(),
			dur.Decimal(),
			tagSummary(r.TagsOn(d)),
		})
	}
	total := r.TotalWorkTime()
	rows = append(rows, []string{"Total", "", "", "", total.HHMM(), total.Decimal(), ""})
	return rows
}

// tagRows lists per tag the number of days booked and the total time.
func tagRows(r *analysis.Result) [][]string {
	tags := r.Tags()
	rows := make([][]string, 0, len(tags))
	for _, tag := range tags {
		d := r.TagTotalTime(tag)
		days := len(r.TagTime(tag))
		rows = append(rows, []string{tag, strconv.Itoa(days), d.HHMM(), d.Decimal()})
	}
	return rows
}

// tagSummary renders per-tag durations as "A 01:00, B 00:30" sorted by tag.
func tagSummary(byTag map[string]timecalc.Duration) string {
	tags := make([]string, 0, len(byTag))
	for tag := range byTag {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	parts := make([]string, 0, len(tags))
	for _, tag := range tags {
		parts = append(parts, fmt.Sprintf("%s %s", tag, byTag[tag].HHMM()))
	}
	return strings.Join(parts, ", ")
}

func printStats(w io.Writer, title string, r *analysis.Result) {
	fmt.Fprintln(w, ui.title.Render(title))
	if len(r.Dates()) == 0 {
		fmt.Fprintln(w, ui.dim.Render("No tasks found."))
		return
	}
	days := ui.newTable("Date", "Day", "Start", "End", "Worked", "Hours", "Tags")
	fmt.Fprintln(w, ui.render(days, dayRows(r), true))

	if rows := tagRows(r); len(rows) > 0 {
		tags := ui.newTable("Tag", "Days", "Worked", "Hours")
		fmt.Fprintln(w, ui.render(tags, rows, false))
	}
}
