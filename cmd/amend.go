package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/wdc/internal/model"
	"github.com/Tiliavir/wdc/internal/tasks"
	"github.com/Tiliavir/wdc/internal/timecalc"
)

var (
	amendDate    string
	amendStart   string
	amendEnd     string
	amendTags    string
	amendMessage string
)

var amendCmd = &cobra.Command{
	Use:   "amend <id>",
	Short: "Change fields of an existing task",
	Long: `Amend replaces the given fields of a task and keeps all others.
Changing the date moves the task to the file of its new month.`,
	Args: cobra.ExactArgs(1),
	RunE: runAmend,
}

func init() {
	amendCmd.Flags().StringVarP(&amendDate, "date", "d", "", "New date as YYYY-MM-DD")
	amendCmd.Flags().StringVarP(&amendStart, "start", "s", "", "New start time as hhmm")
	amendCmd.Flags().StringVarP(&amendEnd, "end", "e", "", "New end time as hhmm")
	amendCmd.Flags().StringVarP(&amendTags, "tags", "t", "", "New comma-separated tags")
	amendCmd.Flags().StringVarP(&amendMessage, "message", "m", "", "New description")
}

func runAmend(cmd *cobra.Command, args []string) error {
	req, err := amendRequest(cmd, args[0])
	if err != nil {
		return err
	}

	task, err := service.Amend(req)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), ui.success.Render("Amended task "+task.ID))
	printTasks(cmd.OutOrStdout(), []model.Task{task})
	return nil
}

// amendRequest builds the request from the flags that were set, so an
// explicitly empty --tags or --message clears the field.
func amendRequest(cmd *cobra.Command, id string) (tasks.AmendRequest, error) {
	req := tasks.AmendRequest{ID: id}
	flags := cmd.Flags()

	if flags.Changed("date") {
		d, err := timecalc.ParseDate(amendDate)
		if err != nil {
			return req, err
		}
		req.Date = &d
	}
	if flags.Changed("start") {
		s, err := timecalc.ParseTimeOfDay(amendStart)
		if err != nil {
			return req, err
		}
		req.Start = &s
	}
	if flags.Changed("end") {
		e, err := timecalc.ParseTimeOfDay(amendEnd)
		if err != nil {
			return req, err
		}
		req.End = &e
	}
	if flags.Changed("tags") {
		tags := model.ParseTags(amendTags)
		req.Tags = &tags
	}
	if flags.Changed("message") {
		msg := amendMessage
		req.Description = &msg
	}
	return req, nil
}
