package events

import (
	"context"
	"errors"
	"log/slog"
	"sync"
)

type subscription struct {
	handler EventHandler
	types   map[string]struct{} // empty matches every event type
}

func (s subscription) matches(eventType string) bool {
	if len(s.types) == 0 {
		return true
	}
	_, ok := s.types[eventType]
	return ok
}

// InMemoryEventEmitter dispatches task events synchronously to the handlers
// subscribed to their type.
type InMemoryEventEmitter struct {
	subs   []subscription
	mu     sync.RWMutex
	logger *slog.Logger
}

// NewInMemoryEventEmitter creates an emitter with no handlers.
func NewInMemoryEventEmitter(logger *slog.Logger) *InMemoryEventEmitter {
	if logger == nil {
		logger = slog.Default()
	}
	return &InMemoryEventEmitter{
		logger: logger.With("component", "task_event_emitter"),
	}
}

// RegisterHandler subscribes handler to the given event types, or to every
// type when none are given.
func (e *InMemoryEventEmitter) RegisterHandler(handler EventHandler, eventTypes ...string) {
	sub := subscription{handler: handler, types: make(map[string]struct{}, len(eventTypes))}
	for _, t := range eventTypes {
		sub.types[t] = struct{}{}
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.subs = append(e.subs, sub)
	e.logger.Debug("registered task event handler",
		"handler_count", len(e.subs),
		"event_types", eventTypes)
}

// EmitEvent delivers event to every matching handler, in registration order.
// A failing handler does not stop delivery; all handler errors are joined
// into the returned error.
func (e *InMemoryEventEmitter) EmitEvent(ctx context.Context, event *TaskEvent) error {
	e.mu.RLock()
	subs := make([]subscription, len(e.subs))
	copy(subs, e.subs)
	e.mu.RUnlock()

	var errs []error
	delivered := 0
	for i, sub := range subs {
		if !sub.matches(event.Type) {
			continue
		}
		delivered++
		if err := sub.handler.HandleEvent(ctx, event); err != nil {
			e.logger.Error("handler failed to process task event",
				"error", err,
				"handler_index", i,
				"event_id", event.ID,
				"event_type", event.Type)
			errs = append(errs, err)
		}
	}

	if delivered == 0 {
		e.logger.Debug("no handlers subscribed to task event",
			"event_id", event.ID,
			"event_type", event.Type)
	}

	return errors.Join(errs...)
}
