package events

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/priority-sorter/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockEventHandler records the events it receives.
type MockEventHandler struct {
	mu           sync.Mutex
	HandledCount int
	LastEvent    *TaskEvent
	HandlerError error
}

func (m *MockEventHandler) HandleEvent(ctx context.Context, event *TaskEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.HandledCount++
	m.LastEvent = event
	return m.HandlerError
}

func TestNewTaskEvent(t *testing.T) {
	t.Parallel()

	taskID := uuid.New()
	event, err := NewTaskEvent(TypeTaskCreated, taskID, map[string]int{"quadrant": 2})
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, event.ID)
	assert.Equal(t, TypeTaskCreated, event.Type)
	assert.Equal(t, taskID, event.TaskID)
	assert.False(t, event.CreatedAt.IsZero())

	var payload struct {
		Quadrant int `json:"quadrant"`
	}
	require.NoError(t, event.UnmarshalPayload(&payload))
	assert.Equal(t, 2, payload.Quadrant)

	empty, err := NewTaskEvent(TypeTasksCleared, uuid.Nil, nil)
	require.NoError(t, err)
	assert.Empty(t, empty.Payload)

	_, err = NewTaskEvent(TypeTaskUpdated, taskID, make(chan int))
	assert.Error(t, err, "unencodable payloads are rejected")
}

func TestInMemoryEventEmitter(t *testing.T) {
	// Create a minimal logger that discards output
	discard := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("emit event with no handlers", func(t *testing.T) {
		emitter := NewInMemoryEventEmitter(discard)
		event, err := NewTaskEvent(TypeTaskDeleted, uuid.New(), nil)
		require.NoError(t, err)

		assert.NoError(t, emitter.EmitEvent(context.Background(), event))
	})

	t.Run("emit event with successful handlers", func(t *testing.T) {
		emitter := NewInMemoryEventEmitter(discard)

		handler1 := &MockEventHandler{}
		handler2 := &MockEventHandler{}
		emitter.RegisterHandler(handler1)
		emitter.RegisterHandler(handler2)

		event, err := NewTaskEvent(TypeTaskCreated, uuid.New(), nil)
		require.NoError(t, err)

		assert.NoError(t, emitter.EmitEvent(context.Background(), event))
		assert.Equal(t, 1, handler1.HandledCount)
		assert.Equal(t, 1, handler2.HandledCount)
		assert.Same(t, event, handler1.LastEvent)
		assert.Same(t, event, handler2.LastEvent)
	})

	t.Run("emit event with failing handler", func(t *testing.T) {
		emitter := NewInMemoryEventEmitter(discard)

		failingHandler := &MockEventHandler{HandlerError: errors.New("handler error")}
		successHandler := &MockEventHandler{}
		emitter.RegisterHandler(failingHandler)
		emitter.RegisterHandler(successHandler)

		event, err := NewTaskEvent(TypeTaskUpdated, uuid.New(), nil)
		require.NoError(t, err)

		err = emitter.EmitEvent(context.Background(), event)
		assert.EqualError(t, err, "handler error")
		assert.Equal(t, 1, successHandler.HandledCount, "later handlers still run")
	})

	t.Run("all handler errors are reported", func(t *testing.T) {
		emitter := NewInMemoryEventEmitter(discard)
		first := errors.New("first")
		second := errors.New("second")
		emitter.RegisterHandler(&MockEventHandler{HandlerError: first})
		emitter.RegisterHandler(&MockEventHandler{HandlerError: second})

		event, err := NewTaskEvent(TypeTaskDeleted, uuid.New(), nil)
		require.NoError(t, err)

		err = emitter.EmitEvent(context.Background(), event)
		assert.ErrorIs(t, err, first)
		assert.ErrorIs(t, err, second)
	})

	t.Run("handlers only receive subscribed types", func(t *testing.T) {
		emitter := NewInMemoryEventEmitter(discard)

		bulk := &MockEventHandler{}
		all := &MockEventHandler{}
		emitter.RegisterHandler(bulk, TypeTasksImported, TypeTasksCleared)
		emitter.RegisterHandler(all)

		for _, eventType := range []string{TypeTaskCreated, TypeTasksCleared, TypeTaskUpdated, TypeTasksImported} {
			event, err := NewTaskEvent(eventType, uuid.Nil, nil)
			require.NoError(t, err)
			require.NoError(t, emitter.EmitEvent(context.Background(), event))
		}

		assert.Equal(t, 2, bulk.HandledCount)
		assert.Equal(t, TypeTasksImported, bulk.LastEvent.Type)
		assert.Equal(t, 4, all.HandledCount)
	})

	t.Run("unmatched event is not an error", func(t *testing.T) {
		emitter := NewInMemoryEventEmitter(discard)
		handler := &MockEventHandler{}
		emitter.RegisterHandler(handler, TypeTasksCleared)

		event, err := NewTaskEvent(TypeTaskCreated, uuid.New(), nil)
		require.NoError(t, err)

		assert.NoError(t, emitter.EmitEvent(context.Background(), event))
		assert.Zero(t, handler.HandledCount)
	})
}

func TestAuditLogHandler(t *testing.T) {
	buf := &logger.TestLogBuffer{}
	handler := NewAuditLogHandler(slog.New(slog.NewJSONHandler(buf, nil)))

	taskID := uuid.New()
	event, err := NewTaskEvent(TypeTaskUpdated, taskID, map[string]interface{}{"quadrant": 4})
	require.NoError(t, err)

	require.NoError(t, handler.HandleEvent(context.Background(), event))

	entries := buf.FindEntries("task event")
	require.Len(t, entries, 1)
	entry := entries[0]
	assert.Equal(t, "audit", entry["component"])
	assert.Equal(t, TypeTaskUpdated, entry["event_type"])
	assert.Equal(t, taskID.String(), entry["task_id"])
	payload, ok := entry["payload"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(4), payload["quadrant"])
}

func TestAuditLogHandlerCollectionEvent(t *testing.T) {
	buf := &logger.TestLogBuffer{}
	handler := NewAuditLogHandler(slog.New(slog.NewJSONHandler(buf, nil)))

	event, err := NewTaskEvent(TypeTasksCleared, uuid.Nil, map[string]int{"removed": 3})
	require.NoError(t, err)
	require.NoError(t, handler.HandleEvent(context.Background(), event))

	entries := buf.FindEntries("task event")
	require.Len(t, entries, 1)
	_, hasTask := entries[0]["task_id"]
	assert.False(t, hasTask, "collection events carry no task_id")
}
