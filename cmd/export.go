package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/wdc/internal/export"
)

var (
	exportFormat string
	exportMonth  string
	exportOutput string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the tasks of a month to a file",
	Long: `Export writes all tasks of a month as JSON or CSV.
The default file is ./export_<YYYYMM>.<format>; use --output - for stdout.`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "json", "Output format: json, csv")
	exportCmd.Flags().StringVarP(&exportMonth, "month", "M", "", "Month as YYYYMM or YYYY-MM (default current month)")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file, - for stdout")
}

func runExport(cmd *cobra.Command, args []string) error {
	format, err := export.ParseFormat(exportFormat)
	if err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	ym, err := parseMonthFlag(exportMonth)
	if err != nil {
		return err
	}

	list, err := service.MonthTasks(ym)
	if err != nil {
		return err
	}

	if exportOutput == "-" {
		return export.Write(cmd.OutOrStdout(), format, list)
	}

	path := exportOutput
	if path == "" {
		path = export.FileName(ym, format)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating export file: %w", err)
	}
	if err := export.Write(f, format, list); err != nil {
		_ = f.Close()
		return fmt.Errorf("writing export file %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing export file %s: %w", path, err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), ui.success.Render(fmt.Sprintf("Exported %d tasks to %s", len(list), path)))
	return nil
}
