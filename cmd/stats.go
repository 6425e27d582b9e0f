package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/wdc/internal/timecalc"
)

var (
	statsWeek  string
	statsMonth string
)

var statsWeekCmd = &cobra.Command{
	Use:   "stats-w",
	Short: "Show worked time per day and tag for an ISO week",
	Args:  cobra.NoArgs,
	RunE:  runStatsWeek,
}

var statsMonthCmd = &cobra.Command{
	Use:     "stats-m",
	Aliases: []string{"statm"},
	Short:   "Show worked time per day and tag for a month",
	Args:    cobra.NoArgs,
	RunE:    runStatsMonth,
}

func init() {
	statsWeekCmd.Flags().StringVarP(&statsWeek, "week", "w", "", "ISO week as YYYY-Www (default current week)")
	statsMonthCmd.Flags().StringVarP(&statsMonth, "month", "M", "", "Month as YYYYMM or YYYY-MM (default current month)")
}

func runStatsWeek(cmd *cobra.Command, args []string) error {
	week, err := parseWeekFlag(statsWeek)
	if err != nil {
		return err
	}

	result, err := service.WeekStats(week)
	if err != nil {
		return err
	}

	title := fmt.Sprintf("Week %s (%s – %s)", week, week.Start(), week.End())
	printStats(cmd.OutOrStdout(), title, result)
	return nil
}

func runStatsMonth(cmd *cobra.Command, args []string) error {
	ym, err := parseMonthFlag(statsMonth)
	if err != nil {
		return err
	}

	result, err := service.MonthStats(ym)
	if err != nil {
		return err
	}

	title := fmt.Sprintf("Month %s (%s – %s)", ym, ym.FirstDay(), ym.LastDay())
	printStats(cmd.OutOrStdout(), title, result)
	for _, week := range weeksOf(result.Dates()) {
		fmt.Fprintf(cmd.OutOrStdout(), "  %s: %s\n", week, result.WeekTime(week).HHMM())
	}
	return nil
}

func parseWeekFlag(s string) (timecalc.Week, error) {
	if s == "" {
		return timecalc.CurrentWeek(), nil
	}
	return timecalc.ParseWeek(s)
}

func parseMonthFlag(s string) (timecalc.YearMonth, error) {
	if s == "" {
		return timecalc.CurrentYearMonth(), nil
	}
	return timecalc.ParseYearMonth(s)
}

// weeksOf returns the distinct ISO weeks of dates, in order of appearance.
func weeksOf(dates []timecalc.Date) []timecalc.Week {
	seen := make(map[timecalc.Week]struct{})
	var out []timecalc.Week
	for _, d := range dates {
		w := d.Week()
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	return out
}
