package api

import (
	"net/http"

	"github.com/phrazzld/priority-sorter/internal/api/shared"
)

// ServiceName is reported by the root endpoint.
const ServiceName = "Priority Sorter API - Eisenhower Matrix"

// ServiceInfo handles GET / requests
func ServiceInfo(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, ServiceInfoResponse{
		Message: ServiceName,
		Endpoints: map[string]string{
			"tasks":     "/tasks",
			"quadrants": "/quadrants",
			"export":    "/tasks/export",
			"import":    "/tasks/import",
			"health":    "/health",
		},
	})
}

// Health handles GET /health requests
func Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}
