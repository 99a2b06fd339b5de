package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// NewRouter wires the middleware chain and the API routes.
func NewRouter(h *Handlers, log zerolog.Logger) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger(log))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))

	r.Get("/healthz", h.Health)

	r.Route("/api", func(r chi.Router) {
		r.Get("/overview", h.Overview)

		// Project routes
		r.Get("/projects", h.ListProjects)
		r.Post("/projects", h.CreateProject)
		r.Delete("/projects/{id}", h.DeleteProject)

		// Employee routes
		r.Get("/employees", h.ListEmployees)
		r.Post("/employees", h.CreateEmployee)
		r.Delete("/employees/{id}", h.DeleteEmployee)
		r.Put("/employees/{id}/project", h.AssignProject)

		// Task routes
		r.Get("/tasks", h.ListTasks)
		r.Post("/tasks", h.CreateTask)
		r.Put("/tasks/{id}/employee", h.AssignTask)
	})

	return r
}

// Health reports that the process is serving requests.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}
