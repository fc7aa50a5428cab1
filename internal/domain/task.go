package domain

import (
	"time"

	"github.com/google/uuid"
)

// Notes holds the free-text prompts a user can fill in for a task.
// Every field defaults to the empty string.
type Notes struct {
	Why        string `json:"why"        yaml:"why"`
	How        string `json:"how"        yaml:"how"`
	When       string `json:"when"       yaml:"when"`
	WithWhom   string `json:"with_whom"  yaml:"with_whom"`
	Additional string `json:"additional" yaml:"additional"`
}

// IsEmpty reports whether no note has been written.
func (n Notes) IsEmpty() bool {
	return n == Notes{}
}

// Task is a single item on the Eisenhower Matrix. Its Quadrant is always
// consistent with Urgent and Important once a mutation has completed.
type Task struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Urgent    bool      `json:"urgent"`
	Important bool      `json:"important"`
	Notes     Notes     `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
	Quadrant  Quadrant  `json:"quadrant"`
}

// TaskPatch is a partial update. A nil field leaves the stored value alone,
// which lets callers tell "absent" apart from "set to false".
type TaskPatch struct {
	Title     *string
	Urgent    *bool
	Important *bool
	Notes     *Notes
	Quadrant  *Quadrant
}

// NewTask creates a Task with a fresh ID and creation time and classifies it.
func NewTask(title string, urgent, important bool, notes Notes) *Task {
	t := &Task{
		ID:        uuid.New(),
		Title:     title,
		Urgent:    urgent,
		Important: important,
		Notes:     notes,
		CreatedAt: time.Now().UTC(),
	}
	t.Reclassify()
	return t
}

// Reclassify recomputes Quadrant from the urgent/important flags.
func (t *Task) Reclassify() {
	t.Quadrant = QuadrantFor(t.Urgent, t.Important)
}

// MoveTo places the task into q and rewrites the flags to match it.
func (t *Task) MoveTo(q Quadrant) error {
	if !q.Valid() {
		return ErrInvalidQuadrant
	}
	t.Quadrant = q
	t.Urgent, t.Important = q.Flags()
	return nil
}

// Apply merges patch into the task.
//
// When the patch carries a quadrant, the other fields are written first and
// the quadrant then overwrites urgent/important, so an explicit quadrant
// always wins over flags sent alongside it. Without a quadrant the task is
// reclassified from its (possibly updated) flags.
//
// An invalid quadrant is rejected before anything is modified.
func (t *Task) Apply(patch TaskPatch) error {
	if patch.Quadrant != nil && !patch.Quadrant.Valid() {
		return ErrInvalidQuadrant
	}

	if patch.Title != nil {
		t.Title = *patch.Title
	}
	if patch.Urgent != nil {
		t.Urgent = *patch.Urgent
	}
	if patch.Important != nil {
		t.Important = *patch.Important
	}
	if patch.Notes != nil {
		t.Notes = *patch.Notes
	}

	if patch.Quadrant != nil {
		return t.MoveTo(*patch.Quadrant)
	}
	t.Reclassify()
	return nil
}

// Validate checks the task's structural invariants.
func (t *Task) Validate() error {
	if t.ID == uuid.Nil {
		return NewValidationError("id", "cannot be empty", ErrInvalidID)
	}
	if !t.Quadrant.Valid() {
		return NewValidationError("quadrant", "must be between 1 and 4", ErrInvalidQuadrant)
	}
	if t.Quadrant != QuadrantFor(t.Urgent, t.Important) {
		return NewValidationError("quadrant", "does not match flags", ErrQuadrantMismatch)
	}
	if t.CreatedAt.IsZero() {
		return NewValidationError("created_at", "cannot be empty", ErrValidation)
	}
	return nil
}
