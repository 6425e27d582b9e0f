package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/wdc/internal/analysis"
	"github.com/Tiliavir/wdc/internal/tasks"
	"github.com/Tiliavir/wdc/internal/timecalc"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the running task and today's total",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	today := timecalc.Today()
	now := timecalc.Now()
	out := cmd.OutOrStdout()

	list, err := service.List(today)
	if err != nil {
		return err
	}

	if active := tasks.FindOngoing(list); active != nil {
		fmt.Fprintln(out, ui.title.Render("Running:"))
		fmt.Fprintf(out, "  Task: %s\n", active.ID)
		if !active.Tags.IsEmpty() {
			fmt.Fprintf(out, "  Tags: %s\n", active.Tags)
		}
		if active.Description != "" {
			fmt.Fprintf(out, "  Description: %s\n", active.Description)
		}
		fmt.Fprintf(out, "  Since: %s\n", active.Start.Clock())
		fmt.Fprintf(out, "  Elapsed: %s\n", timecalc.Between(active.Start, now).HHMM())
	} else {
		fmt.Fprintln(out, ui.dim.Render("No running task."))
	}

	result := analysis.Analyse(list)
	fmt.Fprintf(out, "Today: %s logged.\n", result.TotalWorkTime().HHMM())
	if start, ok := result.WorkdayStart(today); ok {
		end := timecalc.WorkdayEnd(start, cfg.Workday.BreakMinutes, workdayDuration())
		fmt.Fprintf(out, "Workday started %s, ends at %s.\n", start.Clock(), end.Clock())
	}
	return nil
}
