package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/priority-sorter/internal/domain"
	"github.com/phrazzld/priority-sorter/internal/events"
	"github.com/phrazzld/priority-sorter/internal/store"
	"github.com/stretchr/testify/mock"
)

// MockTaskStore mocks the store.TaskStore interface
type MockTaskStore struct {
	mock.Mock
}

func (m *MockTaskStore) Create(ctx context.Context, task *domain.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *MockTaskStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Task), args.Error(1)
}

func (m *MockTaskStore) List(ctx context.Context) ([]*domain.Task, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Task), args.Error(1)
}

func (m *MockTaskStore) FindByQuadrant(
	ctx context.Context,
	quadrant domain.Quadrant,
) ([]*domain.Task, error) {
	args := m.Called(ctx, quadrant)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Task), args.Error(1)
}

func (m *MockTaskStore) Update(
	ctx context.Context,
	id uuid.UUID,
	fn store.TaskMutator,
) (*domain.Task, error) {
	args := m.Called(ctx, id, fn)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Task), args.Error(1)
}

func (m *MockTaskStore) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTaskStore) Replace(ctx context.Context, tasks []*domain.Task) error {
	args := m.Called(ctx, tasks)
	return args.Error(0)
}

func (m *MockTaskStore) Merge(ctx context.Context, tasks []*domain.Task) (int, int, error) {
	args := m.Called(ctx, tasks)
	return args.Int(0), args.Int(1), args.Error(2)
}

func (m *MockTaskStore) Clear(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

// MockEventEmitter mocks the events.EventEmitter interface
type MockEventEmitter struct {
	mock.Mock
}

func (m *MockEventEmitter) EmitEvent(ctx context.Context, event *events.TaskEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

// eventOfType matches a *events.TaskEvent with the given type.
func eventOfType(eventType string) interface{} {
	return mock.MatchedBy(func(e *events.TaskEvent) bool {
		return e != nil && e.Type == eventType
	})
}
