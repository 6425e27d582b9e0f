package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/wdc/internal/config"
	"github.com/Tiliavir/wdc/internal/timecalc"
)

var (
	calcStart    string
	calcBreak    int
	calcDuration string
)

var calcCmd = &cobra.Command{
	Use:   "calc",
	Short: "Calculate when the workday ends",
	Long: `Calc adds the workday duration and the break to a start time.
Break and duration default to the values in the config file.`,
	Args: cobra.NoArgs,
	RunE: runCalc,
}

func init() {
	calcCmd.Flags().StringVarP(&calcStart, "start", "s", "", "Start of the workday as hhmm (default now)")
	calcCmd.Flags().IntVarP(&calcBreak, "break", "b", 0, "Break in minutes (default from config)")
	calcCmd.Flags().StringVarP(&calcDuration, "duration", "D", "", "Working time as hhmm (default from config)")
}

func runCalc(cmd *cobra.Command, args []string) error {
	start, err := parseTimeFlag(calcStart)
	if err != nil {
		return err
	}

	breakMinutes := cfg.Workday.BreakMinutes
	if cmd.Flags().Changed("break") {
		if calcBreak < 0 {
			return fmt.Errorf("%w: break must not be negative", errUsage)
		}
		breakMinutes = calcBreak
	}

	duration := workdayDuration()
	if calcDuration != "" {
		if duration, err = timecalc.ParseTimeOfDay(calcDuration); err != nil {
			return err
		}
	}

	end := timecalc.WorkdayEnd(start, breakMinutes, duration)
	fmt.Fprintf(cmd.OutOrStdout(), "Start %s + %s work + %d min break\n", start.Clock(), duration.Clock(), breakMinutes)
	fmt.Fprintln(cmd.OutOrStdout(), ui.title.Render("End of workday: "+end.Clock()))
	return nil
}

// workdayDuration returns the configured workday length.
func workdayDuration() timecalc.TimeOfDay {
	d, err := timecalc.ParseTimeOfDay(cfg.Workday.Duration)
	if err != nil {
		return timecalc.MustTimeOfDay(config.DefaultWorkdayDuration)
	}
	return d
}
