package export

import (
	"fmt"
	"io"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/phrazzld/priority-sorter/internal/domain"
)

// encodePDF renders a printable report with one section per quadrant.
func encodePDF(w io.Writer, tasks []*domain.Task, generated time.Time) error {
	byQuadrant := make(map[domain.Quadrant][]*domain.Task, 4)
	for _, task := range tasks {
		byQuadrant[task.Quadrant] = append(byQuadrant[task.Quadrant], task)
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	// The core fonts are cp1252; translate so accented titles survive.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, "Priority Matrix")
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 9)
	pdf.Cell(0, 6, fmt.Sprintf("Generated %s, %d tasks", generated.Format(time.RFC3339), len(tasks)))
	pdf.Ln(10)

	for _, q := range domain.AllQuadrants() {
		section := byQuadrant[q]
		urgent, important := q.Flags()

		pdf.SetFont("Arial", "B", 13)
		pdf.Cell(0, 8, tr(fmt.Sprintf("%d. %s (%d)", int(q), q.Label(), len(section))))
		pdf.Ln(7)
		pdf.SetFont("Arial", "I", 9)
		pdf.Cell(0, 5, fmt.Sprintf("Urgent: %s, Important: %s", yesNo(urgent), yesNo(important)))
		pdf.Ln(7)

		if len(section) == 0 {
			pdf.SetFont("Arial", "", 10)
			pdf.MultiCell(0, 6, "No tasks", "0", "L", false)
			pdf.Ln(3)
			continue
		}

		for _, task := range section {
			pdf.SetFont("Arial", "B", 11)
			pdf.MultiCell(0, 6, tr("- "+task.Title), "0", "L", false)

			pdf.SetFont("Arial", "", 10)
			for _, note := range noteLines(task.Notes) {
				pdf.SetX(pdf.GetX() + 5)
				pdf.MultiCell(0, 5, tr(note), "0", "L", false)
			}
		}
		pdf.Ln(4)
	}

	return pdf.Output(w)
}

// noteLines returns the non-empty notes as "Label: value" lines.
func noteLines(notes domain.Notes) []string {
	if notes.IsEmpty() {
		return nil
	}

	fields := []struct {
		label string
		value string
	}{
		{"Why", notes.Why},
		{"How", notes.How},
		{"When", notes.When},
		{"With whom", notes.WithWhom},
		{"Notes", notes.Additional},
	}

	var lines []string
	for _, f := range fields {
		if f.value != "" {
			lines = append(lines, f.label+": "+f.value)
		}
	}
	return lines
}
