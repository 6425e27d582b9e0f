package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Tiliavir/wdc/internal/model"
	"github.com/Tiliavir/wdc/internal/timecalc"
)

var (
	listDate string
	listWeek bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the tasks of a day or its week",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	listCmd.Flags().StringVarP(&listDate, "date", "d", "", "Date as YYYY-MM-DD (default today)")
	listCmd.Flags().BoolVarP(&listWeek, "week", "w", false, "List the whole ISO week containing the date")
}

func runList(cmd *cobra.Command, args []string) error {
	date, err := parseDateFlag(listDate)
	if err != nil {
		return err
	}

	var list []model.Task
	if listWeek {
		from, to := timecalc.WeekRange(date)
		list, err = service.RangeTasks(from, to)
	} else {
		list, err = service.List(date)
	}
	if err != nil {
		return err
	}

	printTasks(cmd.OutOrStdout(), list)
	return nil
}
