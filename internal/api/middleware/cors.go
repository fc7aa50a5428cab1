package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
	"github.com/phrazzld/priority-sorter/internal/config"
)

// NewCORSMiddleware builds the cross-origin policy from configuration.
func NewCORSMiddleware(cfg config.CORSConfig) func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   cfg.AllowedMethods,
		AllowedHeaders:   cfg.AllowedHeaders,
		ExposedHeaders:   []string{"X-Trace-ID", "Content-Disposition"},
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           cfg.MaxAge,
	})
}
