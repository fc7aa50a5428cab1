package export

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/priority-sorter/internal/domain"
)

// Record is the portable form of a task. IDs and timestamps are kept as
// strings so that hand-edited or foreign files can be read leniently.
type Record struct {
	ID        string       `json:"id"         yaml:"id"`
	Title     string       `json:"title"      yaml:"title"`
	Urgent    bool         `json:"urgent"     yaml:"urgent"`
	Important bool         `json:"important"  yaml:"important"`
	Notes     domain.Notes `json:"notes"      yaml:"notes"`
	CreatedAt string       `json:"created_at" yaml:"created_at"`
	Quadrant  int          `json:"quadrant"   yaml:"quadrant"`
}

// timestampLayouts are tried in order. Layouts without a zone are read as UTC.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

// NewRecord converts a task to its portable form.
func NewRecord(task *domain.Task) Record {
	return Record{
		ID:        task.ID.String(),
		Title:     task.Title,
		Urgent:    task.Urgent,
		Important: task.Important,
		Notes:     task.Notes,
		CreatedAt: task.CreatedAt.UTC().Format(time.RFC3339),
		Quadrant:  int(task.Quadrant),
	}
}

// Task converts the record back to a task. An unparseable ID becomes
// uuid.Nil and an unparseable timestamp the zero time, leaving the caller
// to assign fresh values. The quadrant is always derived from the flags.
func (r Record) Task() *domain.Task {
	id, err := uuid.Parse(strings.TrimSpace(r.ID))
	if err != nil {
		id = uuid.Nil
	}

	task := &domain.Task{
		ID:        id,
		Title:     r.Title,
		Urgent:    r.Urgent,
		Important: r.Important,
		Notes:     r.Notes,
		CreatedAt: parseTimestamp(r.CreatedAt),
	}
	task.Reclassify()
	return task
}

func parseTimestamp(value string) time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}
