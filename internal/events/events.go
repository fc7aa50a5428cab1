package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Task lifecycle event types.
const (
	TypeTaskCreated   = "task.created"
	TypeTaskUpdated   = "task.updated"
	TypeTaskDeleted   = "task.deleted"
	TypeTasksImported = "tasks.imported"
	TypeTasksCleared  = "tasks.cleared"
)

// TaskEvent records a change to the task collection.
type TaskEvent struct {
	// ID is a unique identifier for this event
	ID uuid.UUID `json:"id"`

	// Type is one of the Type* constants
	Type string `json:"type"`

	// TaskID is the affected task, or uuid.Nil for collection-wide events
	TaskID uuid.UUID `json:"task_id"`

	// Payload contains the event-specific data serialized as JSON
	Payload json.RawMessage `json:"payload,omitempty"`

	// CreatedAt is the timestamp when the event was created
	CreatedAt time.Time `json:"created_at"`
}

// UnmarshalPayload decodes the event payload into the provided structure.
func (e *TaskEvent) UnmarshalPayload(v interface{}) error {
	return json.Unmarshal(e.Payload, v)
}

// NewTaskEvent creates a new TaskEvent with the specified type, task and payload.
// A nil payload leaves Payload empty.
func NewTaskEvent(eventType string, taskID uuid.UUID, payload interface{}) (*TaskEvent, error) {
	event := &TaskEvent{
		ID:        uuid.New(),
		Type:      eventType,
		TaskID:    taskID,
		CreatedAt: time.Now().UTC(),
	}

	if payload != nil {
		payloadBytes, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		event.Payload = payloadBytes
	}

	return event, nil
}

// EventHandler defines an interface for components that can handle events.
type EventHandler interface {
	// HandleEvent processes the given event within the provided context.
	// Returns an error if the event cannot be handled successfully.
	HandleEvent(ctx context.Context, event *TaskEvent) error
}

// EventEmitter defines an interface for components that can emit events.
// This allows services to publish events without direct knowledge of handlers.
type EventEmitter interface {
	// EmitEvent publishes the given event to all registered handlers.
	// Returns an error if the event cannot be emitted.
	EmitEvent(ctx context.Context, event *TaskEvent) error
}
