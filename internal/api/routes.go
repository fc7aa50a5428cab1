package api

import "github.com/go-chi/chi/v5"

// RegisterRoutes mounts every API endpoint on r.
func RegisterRoutes(r chi.Router, h *TaskHandler) {
	r.Get("/", ServiceInfo)
	r.Get("/health", Health)

	r.Route("/tasks", func(r chi.Router) {
		r.Get("/", h.ListTasks)
		r.Post("/", h.CreateTask)
		r.Delete("/", h.ClearTasks)

		r.Get("/export", h.ExportTasks)
		r.Post("/import", h.ImportTasks)

		r.Get("/{id}", h.GetTask)
		r.Put("/{id}", h.UpdateTask)
		r.Delete("/{id}", h.DeleteTask)
	})

	r.Route("/quadrants", func(r chi.Router) {
		r.Get("/", h.SummarizeQuadrants)
		r.Get("/{quadrant_id}", h.ListQuadrant)
	})
}
