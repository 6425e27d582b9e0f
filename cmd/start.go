package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/wdc/internal/model"
	"github.com/Tiliavir/wdc/internal/tasks"
	"github.com/Tiliavir/wdc/internal/timecalc"
)

var (
	startDate    string
	startAt      string
	startEnd     string
	startTags    string
	startMessage string
)

var startCmd = &cobra.Command{
	Use:   "start [message]",
	Short: "Start a new task, closing the one still running",
	Long: `Start records a new task. If a task of the same day is still running
and started earlier, it is ended at the start time of the new task.
A task that overlaps an existing one is rejected.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runStart,
}

func init() {
	startCmd.Flags().StringVarP(&startDate, "date", "d", "", "Date as YYYY-MM-DD (default today)")
	startCmd.Flags().StringVarP(&startAt, "start", "s", "", "Start time as hhmm (default now)")
	startCmd.Flags().StringVarP(&startEnd, "end", "e", "", "End time as hhmm; omit for a running task")
	startCmd.Flags().StringVarP(&startTags, "tags", "t", "", "Comma-separated tags")
	startCmd.Flags().StringVarP(&startMessage, "message", "m", "", "Task description")
}

func runStart(cmd *cobra.Command, args []string) error {
	req := tasks.StartRequest{
		Tags:        model.ParseTags(startTags),
		Description: startMessage,
	}
	if len(args) == 1 {
		if startMessage != "" {
			return fmt.Errorf("%w: give the message either as argument or with --message", errUsage)
		}
		req.Description = args[0]
	}

	var err error
	if req.Date, err = parseDateFlag(startDate); err != nil {
		return err
	}
	if req.Start, err = parseTimeFlag(startAt); err != nil {
		return err
	}
	if req.End, err = parseOptionalTime(startEnd); err != nil {
		return err
	}

	task, err := service.StartWork(req)
	if err != nil {
		return err
	}

	msg := fmt.Sprintf("Started task %s on %s at %s", task.ID, task.Date, task.Start.Clock())
	if !task.IsOngoing() {
		msg = fmt.Sprintf("Recorded task %s on %s from %s to %s (%s)",
			task.ID, task.Date, task.Start.Clock(), task.End.Clock(), task.Duration().HHMM())
	}
	fmt.Fprintln(cmd.OutOrStdout(), ui.success.Render(msg))
	return nil
}

// parseDateFlag parses a YYYY-MM-DD flag. Empty means today.
func parseDateFlag(s string) (timecalc.Date, error) {
	if s == "" {
		return timecalc.Today(), nil
	}
	return timecalc.ParseDate(s)
}

// parseTimeFlag parses an hhmm flag. Empty means now.
func parseTimeFlag(s string) (timecalc.TimeOfDay, error) {
	if s == "" {
		return timecalc.Now(), nil
	}
	return timecalc.ParseTimeOfDay(s)
}

// parseOptionalTime parses an hhmm flag. Empty yields nil.
func parseOptionalTime(s string) (*timecalc.TimeOfDay, error) {
	if s == "" {
		return nil, nil
	}
	t, err := timecalc.ParseTimeOfDay(s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
