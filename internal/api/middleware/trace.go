package middleware

import (
	"log/slog"
	"net/http"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/priority-sorter/internal/api/shared"
	"github.com/phrazzld/priority-sorter/internal/platform/logger"
)

// NewTraceMiddleware returns middleware that assigns every request a trace
// ID, echoes it in the X-Trace-ID response header, and stores a logger
// carrying the ID in the request context. A valid X-Trace-ID sent by the
// client is reused. Completed requests are logged with status and duration.
//
// It should be applied early in the middleware chain so that all subsequent
// handlers have access to the trace ID.
func NewTraceMiddleware(base *slog.Logger) func(http.Handler) http.Handler {
	if base == nil {
		base = slog.Default()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			traceID := r.Header.Get(shared.TraceIDHeader)
			if !shared.ValidTraceID(traceID) {
				traceID = shared.NewTraceID()
			}

			log := base.With(slog.String("trace_id", traceID))
			ctx := shared.WithTraceID(r.Context(), traceID)
			ctx = logger.WithLogger(ctx, log)

			w.Header().Set(shared.TraceIDHeader, traceID)
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

			log.Debug("request started",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("remote_addr", r.RemoteAddr))

			next.ServeHTTP(ww, r.WithContext(ctx))

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			log.Info("request completed",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", status),
				slog.Int("bytes", ww.BytesWritten()),
				slog.Duration("duration", time.Since(start)))
		})
	}
}
