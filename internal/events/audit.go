package events

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/priority-sorter/internal/platform/logger"
)

// AuditLogHandler writes one structured log line per task event.
type AuditLogHandler struct {
	logger *slog.Logger
}

// NewAuditLogHandler creates an AuditLogHandler. A nil logger uses slog.Default().
func NewAuditLogHandler(log *slog.Logger) *AuditLogHandler {
	if log == nil {
		log = slog.Default()
	}
	return &AuditLogHandler{logger: log}
}

// HandleEvent implements EventHandler.
func (h *AuditLogHandler) HandleEvent(ctx context.Context, event *TaskEvent) error {
	// The request logger, when present, carries the trace ID.
	log := logger.FromContextOrDefault(ctx, h.logger).With(slog.String("component", "audit"))

	attrs := []slog.Attr{
		slog.String("event_id", event.ID.String()),
		slog.String("event_type", event.Type),
		slog.Time("event_time", event.CreatedAt),
	}
	if event.TaskID != uuid.Nil {
		attrs = append(attrs, slog.String("task_id", event.TaskID.String()))
	}
	if len(event.Payload) > 0 {
		var payload map[string]interface{}
		if err := json.Unmarshal(event.Payload, &payload); err != nil {
			return err
		}
		attrs = append(attrs, slog.Any("payload", payload))
	}

	log.LogAttrs(ctx, slog.LevelInfo, "task event", attrs...)
	return nil
}
