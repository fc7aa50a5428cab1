package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/phrazzld/priority-sorter/internal/domain"
	"gopkg.in/yaml.v3"
)

// csvHeader is the column layout of CSV exports.
var csvHeader = []string{
	"Quadrant",
	"Title",
	"Urgent",
	"Important",
	"Why",
	"How",
	"When",
	"With Whom",
	"Additional Notes",
	"Created Date",
}

// Encode writes tasks to w in the given format, preserving their order.
func Encode(w io.Writer, format Format, tasks []*domain.Task) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(records(tasks))
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(records(tasks)); err != nil {
			return err
		}
		return enc.Close()
	case FormatCSV:
		return encodeCSV(w, tasks)
	case FormatPDF:
		return encodePDF(w, tasks, time.Now().UTC())
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

func records(tasks []*domain.Task) []Record {
	out := make([]Record, 0, len(tasks))
	for _, task := range tasks {
		out = append(out, NewRecord(task))
	}
	return out
}

func encodeCSV(w io.Writer, tasks []*domain.Task) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}

	for _, task := range tasks {
		row := []string{
			task.Quadrant.Label(),
			task.Title,
			yesNo(task.Urgent),
			yesNo(task.Important),
			task.Notes.Why,
			task.Notes.How,
			task.Notes.When,
			task.Notes.WithWhom,
			task.Notes.Additional,
			task.CreatedAt.UTC().Format(time.RFC3339),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
