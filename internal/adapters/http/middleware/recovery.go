package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/jsamuelsen11/taskflow/internal/adapters/http/dto"
)

var errPanic = errors.New("handler panicked")

// Recovery turns a handler panic into a logged error and, when nothing has
// been written yet, a 500 problem document. http.ErrAbortHandler is
// re-panicked so net/http can abort the connection.
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rec := recordStatus(w)
			defer func() {
				v := recover()
				if v == nil {
					return
				}
				if err, ok := v.(error); ok && errors.Is(err, http.ErrAbortHandler) {
					panic(v)
				}
				logger.ErrorContext(r.Context(), "panic recovered",
					slog.Any("panic", v),
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
					slog.String("stack", string(debug.Stack())),
				)
				if !rec.started {
					dto.WriteErrorResponse(rec, r, errPanic)
				}
			}()
			next.ServeHTTP(rec, r)
		})
	}
}
