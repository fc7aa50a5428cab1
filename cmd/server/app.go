package main

import (
	"errors"
	"log/slog"

	"github.com/phrazzld/priority-sorter/internal/config"
	"github.com/phrazzld/priority-sorter/internal/events"
	"github.com/phrazzld/priority-sorter/internal/platform/memory"
	"github.com/phrazzld/priority-sorter/internal/service"
	"github.com/phrazzld/priority-sorter/internal/store"
)

// application holds all the shared application dependencies.
type application struct {
	config *config.Config
	logger *slog.Logger

	taskStore   store.TaskStore
	emitter     *events.InMemoryEventEmitter
	taskService service.TaskService
}

// newApplication wires the store, the event emitter with its audit handler,
// and the task service.
func newApplication(cfg *config.Config, logger *slog.Logger) (*application, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	taskStore := memory.NewTaskStore(logger)

	emitter := events.NewInMemoryEventEmitter(logger)
	emitter.RegisterHandler(events.NewAuditLogHandler(logger))

	taskService, err := service.NewTaskService(taskStore, emitter, logger)
	if err != nil {
		return nil, err
	}

	return &application{
		config:      cfg,
		logger:      logger,
		taskStore:   taskStore,
		emitter:     emitter,
		taskService: taskService,
	}, nil
}
