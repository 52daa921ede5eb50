package middleware

import (
	"context"

	"github.com/go-chi/chi/v5"
)

// route is what chi resolved for a served request.
type route struct {
	pattern   string
	processID string
}

// resolvedRoute reads the chi routing context. It is complete only once the
// handler has returned.
func resolvedRoute(ctx context.Context) route {
	rctx := chi.RouteContext(ctx)
	if rctx == nil {
		return route{}
	}
	return route{
		pattern:   rctx.RoutePattern(),
		processID: rctx.URLParam(processIDParam),
	}
}
