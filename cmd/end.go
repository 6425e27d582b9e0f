package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/wdc/internal/tasks"
)

var (
	endDate string
	endAt   string
)

var endCmd = &cobra.Command{
	Use:   "end",
	Short: "End the running task of a day",
	Args:  cobra.NoArgs,
	RunE:  runEnd,
}

func init() {
	endCmd.Flags().StringVarP(&endDate, "date", "d", "", "Date as YYYY-MM-DD (default today)")
	endCmd.Flags().StringVarP(&endAt, "end", "e", "", "End time as hhmm (default now)")
}

func runEnd(cmd *cobra.Command, args []string) error {
	date, err := parseDateFlag(endDate)
	if err != nil {
		return err
	}
	at, err := parseOptionalTime(endAt)
	if err != nil {
		return err
	}

	task, err := service.EndTask(tasks.EndRequest{Date: date, Time: at})
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), ui.success.Render(fmt.Sprintf(
		"Ended task %s at %s. Worked: %s", task.ID, task.End.Clock(), task.Duration().HHMM())))
	return nil
}
