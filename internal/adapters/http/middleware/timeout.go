package middleware

import (
	"context"
	"maps"
	"net/http"
	"sync"
	"time"

	"github.com/jsamuelsen11/taskflow/internal/adapters/http/dto"
)

// Timeout bounds each request by d. The handler's context carries the
// deadline, so store, queue and entity-api calls give up with it. The
// handler writes into a buffer; if the deadline passes first the buffer is
// discarded and the client gets a 504 problem document instead. Writes made
// after that fail with http.ErrHandlerTimeout.
func Timeout(d time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), d)
			defer cancel()
			r = r.WithContext(ctx)

			buf := &bufferedResponse{header: make(http.Header), status: http.StatusOK}
			done := make(chan struct{})
			panicked := make(chan any, 1)

			go func() {
				defer func() {
					if v := recover(); v != nil {
						panicked <- v
					}
				}()
				next.ServeHTTP(buf, r)
				close(done)
			}()

			select {
			case v := <-panicked:
				panic(v)
			case <-done:
				buf.mu.Lock()
				defer buf.mu.Unlock()
				maps.Copy(w.Header(), buf.header)
				w.WriteHeader(buf.status)
				_, _ = w.Write(buf.body)
			case <-ctx.Done():
				buf.mu.Lock()
				defer buf.mu.Unlock()
				buf.expired = true
				dto.WriteErrorResponse(w, r, ctx.Err())
			}
		})
	}
}

type bufferedResponse struct {
	mu      sync.Mutex
	header  http.Header
	body    []byte
	status  int
	wrote   bool
	expired bool
}

// Header is handed out once to the handler goroutine; it is only copied
// after that goroutine has finished.
func (b *bufferedResponse) Header() http.Header {
	return b.header
}

func (b *bufferedResponse) WriteHeader(code int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.wrote || b.expired {
		return
	}
	b.status = code
	b.wrote = true
}

func (b *bufferedResponse) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.expired {
		return 0, http.ErrHandlerTimeout
	}
	b.wrote = true
	b.body = append(b.body, p...)
	return len(p), nil
}
