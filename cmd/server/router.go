package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/priority-sorter/internal/api"
	apiMiddleware "github.com/phrazzld/priority-sorter/internal/api/middleware"
)

// setupRouter creates the application router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	// CORS runs first so preflight requests are answered before routing.
	r.Use(apiMiddleware.NewCORSMiddleware(app.config.CORS))
	r.Use(middleware.RealIP)
	r.Use(apiMiddleware.NewTraceMiddleware(app.logger))
	r.Use(middleware.Recoverer)

	api.RegisterRoutes(r, api.NewTaskHandler(app.taskService, app.logger))

	return r
}
