package service

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/priority-sorter/internal/domain"
	"github.com/phrazzld/priority-sorter/internal/events"
	"github.com/phrazzld/priority-sorter/internal/platform/logger"
	"github.com/phrazzld/priority-sorter/internal/store"
)

// CreateTaskParams carries the fields accepted when creating a task.
type CreateTaskParams struct {
	Title     string
	Urgent    bool
	Important bool
	Notes     domain.Notes
}

// ImportMode selects how imported tasks combine with the existing ones.
type ImportMode string

// Supported import modes.
const (
	// ImportReplace discards the current collection.
	ImportReplace ImportMode = "replace"
	// ImportMerge keeps the current collection and skips IDs it already holds.
	ImportMerge ImportMode = "merge"
)

// ParseImportMode converts a raw mode name. The empty string means ImportReplace.
func ParseImportMode(s string) (ImportMode, error) {
	switch ImportMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ImportReplace:
		return ImportReplace, nil
	case ImportMerge:
		return ImportMerge, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidImportMode, s)
	}
}

// ImportResult reports the outcome of an import.
type ImportResult struct {
	Imported int
	Skipped  int
	Total    int
}

// QuadrantSummary describes one quadrant and how many tasks it holds.
type QuadrantSummary struct {
	Quadrant  domain.Quadrant
	Label     string
	Urgent    bool
	Important bool
	Count     int
}

// TaskService provides the task operations exposed by the API.
type TaskService interface {
	// List returns every task ordered by quadrant; ties keep insertion order.
	List(ctx context.Context) ([]*domain.Task, error)

	// Get returns a single task. Returns ErrTaskNotFound if it does not exist.
	Get(ctx context.Context, id uuid.UUID) (*domain.Task, error)

	// Create classifies and stores a new task.
	Create(ctx context.Context, params CreateTaskParams) (*domain.Task, error)

	// Update applies a partial update. Returns ErrTaskNotFound if the task
	// does not exist and domain.ErrInvalidQuadrant for a quadrant outside 1-4.
	Update(ctx context.Context, id uuid.UUID, patch domain.TaskPatch) (*domain.Task, error)

	// Delete removes a task. Returns ErrTaskNotFound if it does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// ListByQuadrant returns the tasks in quadrant n in insertion order.
	// Returns domain.ErrInvalidQuadrant if n is outside 1-4.
	ListByQuadrant(ctx context.Context, n int) ([]*domain.Task, error)

	// Summarize returns one entry per quadrant, in quadrant order.
	Summarize(ctx context.Context) ([]QuadrantSummary, error)

	// Import loads tasks into the collection according to mode.
	Import(ctx context.Context, tasks []*domain.Task, mode ImportMode) (*ImportResult, error)

	// Clear removes every task and returns how many were removed.
	Clear(ctx context.Context) (int, error)
}

// taskServiceImpl implements the TaskService interface
type taskServiceImpl struct {
	store   store.TaskStore
	emitter events.EventEmitter
	logger  *slog.Logger
}

// NewTaskService creates a new TaskService.
// It returns an error if taskStore is nil. A nil emitter disables events and
// a nil logger uses slog.Default().
func NewTaskService(
	taskStore store.TaskStore,
	emitter events.EventEmitter,
	logger *slog.Logger,
) (TaskService, error) {
	if taskStore == nil {
		return nil, errors.New("task store cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &taskServiceImpl{
		store:   taskStore,
		emitter: emitter,
		logger:  logger.With(slog.String("component", "task_service")),
	}, nil
}

// List implements TaskService.List
func (s *taskServiceImpl) List(ctx context.Context) ([]*domain.Task, error) {
	tasks, err := s.store.List(ctx)
	if err != nil {
		return nil, NewTaskServiceError("list_tasks", "failed to list tasks", err)
	}

	slices.SortStableFunc(tasks, func(a, b *domain.Task) int {
		return cmp.Compare(a.Quadrant, b.Quadrant)
	})
	return tasks, nil
}

// Get implements TaskService.Get
func (s *taskServiceImpl) Get(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	task, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, NewTaskServiceError("get_task", "failed to get task", err)
	}
	return task, nil
}

// Create implements TaskService.Create
func (s *taskServiceImpl) Create(ctx context.Context, params CreateTaskParams) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	task := domain.NewTask(params.Title, params.Urgent, params.Important, params.Notes)
	if err := s.store.Create(ctx, task); err != nil {
		return nil, NewTaskServiceError("create_task", "failed to save task", err)
	}

	log.Debug("task created",
		slog.String("task_id", task.ID.String()),
		slog.Int("quadrant", int(task.Quadrant)))
	s.emit(ctx, events.TypeTaskCreated, task.ID, map[string]interface{}{
		"quadrant": int(task.Quadrant),
	})
	return task, nil
}

// Update implements TaskService.Update
func (s *taskServiceImpl) Update(
	ctx context.Context,
	id uuid.UUID,
	patch domain.TaskPatch,
) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var previous domain.Quadrant
	task, err := s.store.Update(ctx, id, func(t *domain.Task) error {
		previous = t.Quadrant
		return t.Apply(patch)
	})
	if err != nil {
		return nil, NewTaskServiceError("update_task", "failed to update task", err)
	}

	log.Debug("task updated",
		slog.String("task_id", id.String()),
		slog.Int("from_quadrant", int(previous)),
		slog.Int("to_quadrant", int(task.Quadrant)),
		slog.Bool("explicit_quadrant", patch.Quadrant != nil))
	s.emit(ctx, events.TypeTaskUpdated, id, map[string]interface{}{
		"from_quadrant":     int(previous),
		"quadrant":          int(task.Quadrant),
		"explicit_quadrant": patch.Quadrant != nil,
	})
	return task, nil
}

// Delete implements TaskService.Delete
func (s *taskServiceImpl) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return NewTaskServiceError("delete_task", "failed to delete task", err)
	}

	s.emit(ctx, events.TypeTaskDeleted, id, nil)
	return nil
}

// ListByQuadrant implements TaskService.ListByQuadrant
func (s *taskServiceImpl) ListByQuadrant(ctx context.Context, n int) ([]*domain.Task, error) {
	quadrant, err := domain.ParseQuadrant(n)
	if err != nil {
		return nil, err
	}

	tasks, err := s.store.FindByQuadrant(ctx, quadrant)
	if err != nil {
		return nil, NewTaskServiceError("list_by_quadrant", "failed to list tasks", err)
	}
	return tasks, nil
}

// Summarize implements TaskService.Summarize
func (s *taskServiceImpl) Summarize(ctx context.Context) ([]QuadrantSummary, error) {
	tasks, err := s.store.List(ctx)
	if err != nil {
		return nil, NewTaskServiceError("summarize", "failed to list tasks", err)
	}

	counts := make(map[domain.Quadrant]int, 4)
	for _, task := range tasks {
		counts[task.Quadrant]++
	}

	quadrants := domain.AllQuadrants()
	summary := make([]QuadrantSummary, 0, len(quadrants))
	for _, q := range quadrants {
		urgent, important := q.Flags()
		summary = append(summary, QuadrantSummary{
			Quadrant:  q,
			Label:     q.Label(),
			Urgent:    urgent,
			Important: important,
			Count:     counts[q],
		})
	}
	return summary, nil
}

// Import implements TaskService.Import
//
// Imported tasks without an ID get a fresh one, tasks without a creation
// time get the import time, and every quadrant is recomputed from the
// task's flags. In replace mode, later duplicates of an ID within the same
// import are skipped; in merge mode, IDs already stored are skipped as well.
func (s *taskServiceImpl) Import(
	ctx context.Context,
	tasks []*domain.Task,
	mode ImportMode,
) (*ImportResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if mode != ImportReplace && mode != ImportMerge {
		return nil, fmt.Errorf("%w: %q", ErrInvalidImportMode, mode)
	}

	now := time.Now().UTC()
	seen := make(map[uuid.UUID]bool, len(tasks))
	accepted := make([]*domain.Task, 0, len(tasks))
	result := &ImportResult{}

	for _, task := range tasks {
		normalized := *task
		if normalized.ID == uuid.Nil {
			normalized.ID = uuid.New()
		}
		if normalized.CreatedAt.IsZero() {
			normalized.CreatedAt = now
		}
		normalized.Reclassify()

		if seen[normalized.ID] {
			result.Skipped++
			continue
		}
		seen[normalized.ID] = true
		accepted = append(accepted, &normalized)
	}

	switch mode {
	case ImportReplace:
		if err := s.store.Replace(ctx, accepted); err != nil {
			return nil, NewTaskServiceError("import_tasks", "failed to replace tasks", err)
		}
		result.Imported = len(accepted)
		result.Total = len(accepted)
	case ImportMerge:
		added, total, err := s.store.Merge(ctx, accepted)
		if err != nil {
			return nil, NewTaskServiceError("import_tasks", "failed to merge tasks", err)
		}
		result.Imported = added
		result.Skipped += len(accepted) - added
		result.Total = total
	}

	log.Info("tasks imported",
		slog.String("mode", string(mode)),
		slog.Int("imported", result.Imported),
		slog.Int("skipped", result.Skipped),
		slog.Int("total", result.Total))
	s.emit(ctx, events.TypeTasksImported, uuid.Nil, map[string]interface{}{
		"mode":     string(mode),
		"imported": result.Imported,
		"skipped":  result.Skipped,
	})
	return result, nil
}

// Clear implements TaskService.Clear
func (s *taskServiceImpl) Clear(ctx context.Context) (int, error) {
	n, err := s.store.Clear(ctx)
	if err != nil {
		return 0, NewTaskServiceError("clear_tasks", "failed to clear tasks", err)
	}

	s.emit(ctx, events.TypeTasksCleared, uuid.Nil, map[string]interface{}{"removed": n})
	return n, nil
}

// emit publishes a lifecycle event. Failures are logged and never
// propagated: the mutation has already happened.
func (s *taskServiceImpl) emit(
	ctx context.Context,
	eventType string,
	taskID uuid.UUID,
	payload interface{},
) {
	if s.emitter == nil {
		return
	}
	log := logger.FromContextOrDefault(ctx, s.logger)

	event, err := events.NewTaskEvent(eventType, taskID, payload)
	if err != nil {
		log.Warn("failed to build task event",
			slog.String("event_type", eventType),
			slog.String("error", err.Error()))
		return
	}

	if err := s.emitter.EmitEvent(ctx, event); err != nil {
		log.Warn("failed to emit task event",
			slog.String("event_type", eventType),
			slog.String("event_id", event.ID.String()),
			slog.String("error", err.Error()))
	}
}
