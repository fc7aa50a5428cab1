package shared

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"log/slog"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// Key type for context values
type ContextKey string

const (
	// TraceIDKey is the key for the trace ID in the request context
	TraceIDKey ContextKey = "traceID"

	// TraceIDHeader carries the trace ID on requests and responses.
	TraceIDHeader = "X-Trace-ID"

	// TraceIDLength is the number of bytes used to generate the trace ID
	TraceIDLength = 16 // 32 hex characters
)

// Client-supplied trace IDs are only honored when they match this shape.
var traceIDPattern = regexp.MustCompile(`^[A-Za-z0-9-]{8,64}$`)

// WithTraceID adds the given trace ID to the context.
func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, TraceIDKey, traceID)
}

// GetTraceID retrieves the trace ID from the context.
// If no trace ID exists, it returns an empty string.
func GetTraceID(ctx context.Context) string {
	traceID, ok := ctx.Value(TraceIDKey).(string)
	if !ok {
		return ""
	}
	return traceID
}

// ValidTraceID reports whether a client-supplied trace ID may be reused.
func ValidTraceID(traceID string) bool {
	return traceIDPattern.MatchString(traceID)
}

// NewTraceID returns a random 32-character hex string. If crypto/rand
// fails it falls back to a random UUID with the dashes removed.
func NewTraceID() string {
	b := make([]byte, TraceIDLength)
	if _, err := rand.Read(b); err != nil {
		slog.Error("failed to generate secure random trace ID",
			"error", err,
			"fallback", "uuid")
		return strings.ReplaceAll(uuid.NewString(), "-", "")
	}
	return hex.EncodeToString(b)
}
