package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Tiliavir/wdc/internal/config"
	"github.com/Tiliavir/wdc/internal/logger"
	"github.com/Tiliavir/wdc/internal/storage"
	"github.com/Tiliavir/wdc/internal/tasks"
	"github.com/Tiliavir/wdc/internal/timecalc"
)

var (
	debugMode  bool
	configPath string

	cfg     config.Config
	log     *zap.Logger
	service *tasks.Service
	ui      = newStyles(false)
)

var rootCmd = &cobra.Command{
	Use:   "wdc",
	Short: "Work Day Calculator – track and analyse your working time",
	Long: `wdc is a file-based command-line work-time tracker.
Tasks are stored as one semicolon separated file per month in ~/.wdc/.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync(log)
	},
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		printError(err)
		os.Exit(exitCode(err))
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging on stderr")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ~/.wdc/config.yaml)")
	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %v", errUsage, err)
	})

	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(endCmd)
	rootCmd.AddCommand(amendCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(statsWeekCmd)
	rootCmd.AddCommand(statsMonthCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(calcCmd)
}

// setup loads the configuration and wires logger, store and service.
func setup(cmd *cobra.Command, args []string) error {
	var err error
	log, err = logger.New(debugMode)
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}

	cfg, err = config.Load(configPath)
	if err != nil {
		return err
	}
	ui = newStyles(cfg.Output.Color)

	log.Debug("configuration loaded",
		zap.String("data_dir", cfg.DataDir),
		zap.String("workday_duration", cfg.Workday.Duration),
		zap.Int("break_minutes", cfg.Workday.BreakMinutes),
	)

	store := storage.New(cfg.DataDir, log.Named("storage"))
	service = tasks.NewService(store, log.Named("tasks"))
	return nil
}

// exitCode maps an error to the process exit status: 1 for invalid user
// input and conflicts, 2 for storage and configuration failures.
func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, timecalc.ErrInvalidTimeFormat),
		errors.Is(err, timecalc.ErrInvalidDateFormat),
		errors.Is(err, tasks.ErrTaskOverlap),
		errors.Is(err, tasks.ErrTaskNotFound),
		errors.Is(err, tasks.ErrInvalidTimeRange),
		errors.Is(err, errUsage):
		return 1
	default:
		return 2
	}
}

// errUsage marks invalid flag combinations.
var errUsage = errors.New("invalid usage")

func printError(err error) {
	if errors.Is(err, tasks.ErrTaskOverlap) {
		fmt.Fprintln(os.Stderr, ui.warning.Render("Warning: "+err.Error()))
		return
	}
	fmt.Fprintln(os.Stderr, ui.err.Render("Error: "+err.Error()))
}
