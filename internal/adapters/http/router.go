// Package http provides the inbound HTTP adapter including routing and server lifecycle.
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jsamuelsen11/taskflow/internal/adapters/http/handlers"
)

// NewRouter creates an HTTP handler with all application routes registered.
// Middleware is applied globally in the order given.
func NewRouter(
	workflowHandler *handlers.WorkflowHandler,
	viewHandler *handlers.ViewHandler,
	commandHandler *handlers.CommandHandler,
	healthHandler *handlers.HealthHandler,
	middlewares ...func(http.Handler) http.Handler,
) http.Handler {
	r := chi.NewRouter()

	for _, mw := range middlewares {
		r.Use(mw)
	}

	// Health endpoints (outside /api/v1 prefix).
	r.Get("/health/live", healthHandler.Liveness)
	r.Get("/health/ready", healthHandler.Readiness)

	// API v1 routes.
	r.Route("/api/v1", func(r chi.Router) {
		// Task creation workflows.
		r.Post("/workflows", workflowHandler.StartWorkflow)
		r.Get("/workflows/{processId}", workflowHandler.GetWorkflow)
		r.Patch("/workflows/{processId}/details", workflowHandler.UpdateDetails)
		r.Post("/workflows/{processId}/labels", workflowHandler.AddLabels)
		r.Post("/workflows/{processId}/labels/skip", workflowHandler.SkipLabels)
		r.Post("/workflows/{processId}/complete", workflowHandler.CompleteWorkflow)
		r.Post("/workflows/{processId}/cancel", workflowHandler.CancelWorkflow)

		// Entity commands.
		r.Post("/commands", commandHandler.SubmitCommand)

		// Read models.
		r.Get("/views/tasks", viewHandler.AllTasks)
		r.Get("/views/tasks/deleted", viewHandler.DeletedTasks)
		r.Get("/views/tasks/{taskId}", viewHandler.Task)
		r.Get("/views/labels/{labelId}", viewHandler.LabelTasks)
	})

	return r
}
