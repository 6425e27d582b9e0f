package export

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/Tiliavir/wdc/internal/model"
	"github.com/Tiliavir/wdc/internal/storage"
	"github.com/Tiliavir/wdc/internal/timecalc"
)

// Format selects the export encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
)

// ParseFormat accepts json or csv in any case.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case FormatJSON:
		return FormatJSON, nil
	case FormatCSV:
		return FormatCSV, nil
	default:
		return "", fmt.Errorf("unknown export format %q (want json or csv)", s)
	}
}

// Record is the exported shape of a task.
type Record struct {
	ID        string `json:"id"`
	Timestamp string `json:"timestamp"`
	Date      string `json:"date"`
	Tags      string `json:"tags"`
	Start     string `json:"start"`
	End       string `json:"end"`
	Message   string `json:"message"`
}

// ToRecord converts a task for export. Ongoing tasks have an empty end.
func ToRecord(t model.Task) Record {
	return Record{
		ID:        t.ID,
		Timestamp: t.CreatedAt,
		Date:      t.Date.String(),
		Tags:      t.Tags.String(),
		Start:     t.Start.String(),
		End:       t.EndString(),
		Message:   t.Description,
	}
}

// Write encodes tasks to w in the given format.
func Write(w io.Writer, format Format, tasks []model.Task) error {
	switch format {
	case FormatJSON:
		return JSON(w, tasks)
	case FormatCSV:
		return CSV(w, tasks)
	default:
		return fmt.Errorf("unknown export format %q", format)
	}
}

// JSON writes tasks as an indented JSON array.
func JSON(w io.Writer, tasks []model.Task) error {
	records := make([]Record, 0, len(tasks))
	for _, t := range tasks {
		records = append(records, ToRecord(t))
	}
	data, err := json.MarshalIndent(records, "", "    ")
	if err != nil {
		return fmt.Errorf("error encoding JSON: %w", err)
	}
	_, err = w.Write(data)
	return err
}

// CSV writes tasks in the semicolon separated storage row shape.
func CSV(w io.Writer, tasks []model.Task) error {
	return storage.WriteTasks(w, tasks)
}

// FileName returns the default export file name for a month.
func FileName(ym timecalc.YearMonth, format Format) string {
	return fmt.Sprintf("export_%s.%s", ym, format)
}
