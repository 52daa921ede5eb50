package middleware_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"

	"github.com/go-chi/chi/v5"

	"github.com/jsamuelsen11/taskflow/internal/adapters/http/middleware"
	"github.com/jsamuelsen11/taskflow/internal/platform/logging"
)

// workflowRouter mounts h on the workflow routes behind mws, the way the
// service router does.
func workflowRouter(h http.HandlerFunc, mws ...func(http.Handler) http.Handler) http.Handler {
	r := chi.NewRouter()
	for _, mw := range mws {
		r.Use(mw)
	}
	r.Get("/api/v1/workflows/{processId}", h)
	r.Post("/api/v1/workflows", h)
	return r
}

func ok(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func captureLogs(level string) (*bytes.Buffer, func(http.Handler) http.Handler) {
	var buf bytes.Buffer
	return &buf, middleware.Logging(logging.New(level, logging.FormatJSON, &buf))
}
