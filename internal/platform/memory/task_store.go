package memory

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/phrazzld/priority-sorter/internal/domain"
	"github.com/phrazzld/priority-sorter/internal/platform/logger"
	"github.com/phrazzld/priority-sorter/internal/store"
)

// TaskStore implements the store.TaskStore interface in process memory.
// A single RWMutex guards both the lookup map and the insertion order,
// so every read-modify-write sequence is atomic.
type TaskStore struct {
	mu     sync.RWMutex
	tasks  map[uuid.UUID]*domain.Task
	order  []uuid.UUID
	logger *slog.Logger
}

// NewTaskStore creates an empty in-memory task store.
// If logger is nil, a default logger will be used.
func NewTaskStore(logger *slog.Logger) *TaskStore {
	if logger == nil {
		logger = slog.Default()
	}

	return &TaskStore{
		tasks:  make(map[uuid.UUID]*domain.Task),
		logger: logger.With(slog.String("component", "task_store")),
	}
}

// Ensure TaskStore implements store.TaskStore interface
var _ store.TaskStore = (*TaskStore)(nil)

// Create implements store.TaskStore.Create
func (s *TaskStore) Create(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		log.Warn("task validation failed during create",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.tasks[task.ID]; exists {
		log.Debug("task already exists", slog.String("task_id", task.ID.String()))
		return store.ErrTaskExists
	}

	s.tasks[task.ID] = clone(task)
	s.order = append(s.order, task.ID)

	log.Debug("task created",
		slog.String("task_id", task.ID.String()),
		slog.Int("quadrant", int(task.Quadrant)))
	return nil
}

// GetByID implements store.TaskStore.GetByID
func (s *TaskStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	task, ok := s.tasks[id]
	if !ok {
		logger.FromContextOrDefault(ctx, s.logger).
			Debug("task not found", slog.String("task_id", id.String()))
		return nil, store.ErrTaskNotFound
	}
	return clone(task), nil
}

// List implements store.TaskStore.List
func (s *TaskStore) List(ctx context.Context) ([]*domain.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.collect(func(*domain.Task) bool { return true }), nil
}

// FindByQuadrant implements store.TaskStore.FindByQuadrant
func (s *TaskStore) FindByQuadrant(
	ctx context.Context,
	quadrant domain.Quadrant,
) ([]*domain.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.collect(func(t *domain.Task) bool { return t.Quadrant == quadrant }), nil
}

// Update implements store.TaskStore.Update
// fn runs against a copy under the write lock; the copy only replaces the
// stored task when fn succeeds and the result still validates.
func (s *TaskStore) Update(
	ctx context.Context,
	id uuid.UUID,
	fn store.TaskMutator,
) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.tasks[id]
	if !ok {
		log.Debug("task not found for update", slog.String("task_id", id.String()))
		return nil, store.ErrTaskNotFound
	}

	updated := clone(current)
	if err := fn(updated); err != nil {
		return nil, err
	}
	if err := updated.Validate(); err != nil {
		log.Error("task invalid after update",
			slog.String("error", err.Error()),
			slog.String("task_id", id.String()))
		return nil, fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	// The key is the stored ID, not whatever fn left in updated.ID.
	updated.ID = id
	s.tasks[id] = updated

	log.Debug("task updated",
		slog.String("task_id", id.String()),
		slog.Int("quadrant", int(updated.Quadrant)))
	return clone(updated), nil
}

// Delete implements store.TaskStore.Delete
func (s *TaskStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tasks[id]; !ok {
		log.Debug("task not found for delete", slog.String("task_id", id.String()))
		return store.ErrTaskNotFound
	}

	delete(s.tasks, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}

	log.Debug("task deleted", slog.String("task_id", id.String()))
	return nil
}

// Replace implements store.TaskStore.Replace
func (s *TaskStore) Replace(ctx context.Context, tasks []*domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	next := make(map[uuid.UUID]*domain.Task, len(tasks))
	order := make([]uuid.UUID, 0, len(tasks))
	for _, task := range tasks {
		if err := task.Validate(); err != nil {
			return store.NewStoreError("task", "replace", "invalid task "+task.ID.String(),
				fmt.Errorf("%w: %w", store.ErrInvalidEntity, err))
		}
		if _, dup := next[task.ID]; dup {
			return store.NewStoreError("task", "replace", "repeated ID "+task.ID.String(),
				store.ErrTaskExists)
		}
		next[task.ID] = clone(task)
		order = append(order, task.ID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	previous := len(s.order)
	s.tasks = next
	s.order = order

	log.Debug("task collection replaced",
		slog.Int("previous_count", previous),
		slog.Int("new_count", len(order)))
	return nil
}

// Merge implements store.TaskStore.Merge
func (s *TaskStore) Merge(ctx context.Context, tasks []*domain.Task) (int, int, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	for _, task := range tasks {
		if err := task.Validate(); err != nil {
			return 0, 0, store.NewStoreError("task", "merge", "invalid task "+task.ID.String(),
				fmt.Errorf("%w: %w", store.ErrInvalidEntity, err))
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	added := 0
	for _, task := range tasks {
		if _, exists := s.tasks[task.ID]; exists {
			continue
		}
		s.tasks[task.ID] = clone(task)
		s.order = append(s.order, task.ID)
		added++
	}

	log.Debug("tasks merged into collection",
		slog.Int("added", added),
		slog.Int("skipped", len(tasks)-added),
		slog.Int("total", len(s.order)))
	return added, len(s.order), nil
}

// Clear implements store.TaskStore.Clear
func (s *TaskStore) Clear(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := len(s.order)
	s.tasks = make(map[uuid.UUID]*domain.Task)
	s.order = nil

	logger.FromContextOrDefault(ctx, s.logger).
		Debug("task collection cleared", slog.Int("removed", n))
	return n, nil
}

// collect returns copies of the tasks matching keep, in insertion order.
// Callers must hold at least the read lock.
func (s *TaskStore) collect(keep func(*domain.Task) bool) []*domain.Task {
	result := make([]*domain.Task, 0, len(s.order))
	for _, id := range s.order {
		if task := s.tasks[id]; keep(task) {
			result = append(result, clone(task))
		}
	}
	return result
}

func clone(task *domain.Task) *domain.Task {
	cp := *task
	return &cp
}
