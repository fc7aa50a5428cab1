package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/priority-sorter/internal/domain"
)

// TaskMutator modifies a task in place. Returning an error aborts the
// update and leaves the stored task untouched.
type TaskMutator func(task *domain.Task) error

// TaskStore defines the interface for task data persistence.
// Implementations own the tasks they hold; every returned task is a copy.
type TaskStore interface {
	// Create saves a new task to the store.
	// Returns ErrInvalidEntity if the task fails domain validation and
	// ErrTaskExists if its ID is already stored.
	Create(ctx context.Context, task *domain.Task) error

	// GetByID retrieves a task by its unique ID.
	// Returns ErrTaskNotFound if the task does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error)

	// List returns every task in insertion order.
	// Returns an empty slice when the store is empty.
	List(ctx context.Context) ([]*domain.Task, error)

	// FindByQuadrant returns the tasks currently in the given quadrant,
	// in insertion order.
	FindByQuadrant(ctx context.Context, quadrant domain.Quadrant) ([]*domain.Task, error)

	// Update applies fn to the stored task atomically and returns the result.
	// Returns ErrTaskNotFound if the task does not exist, or the error from fn.
	Update(ctx context.Context, id uuid.UUID, fn TaskMutator) (*domain.Task, error)

	// Delete removes a task.
	// Returns ErrTaskNotFound if the task does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// Replace swaps the whole collection for tasks, preserving their order.
	// Nothing is changed if any task is invalid or IDs repeat.
	Replace(ctx context.Context, tasks []*domain.Task) error

	// Merge adds, in order, the tasks whose IDs are not stored yet and
	// returns how many were added and the collection size afterwards.
	// Nothing is changed if any task is invalid.
	Merge(ctx context.Context, tasks []*domain.Task) (added int, total int, err error)

	// Clear removes every task and returns how many were removed.
	Clear(ctx context.Context) (int, error)
}
