package http_test

import (
	"context"
	"io"
	"log/slog"
	"net"
	"net/http"
	"testing"
	"time"

	adapthttp "github.com/jsamuelsen11/taskflow/internal/adapters/http"
	"github.com/jsamuelsen11/taskflow/internal/platform/config"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func localConfig() config.ServerConfig {
	return config.ServerConfig{
		Host:         "127.0.0.1",
		Port:         0,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
		IdleTimeout:  30 * time.Second,
	}
}

func TestServer_Addr(t *testing.T) {
	t.Parallel()

	tests := []struct {
		host string
		port int
		want string
	}{
		{"127.0.0.1", 9090, "127.0.0.1:9090"},
		{"0.0.0.0", 8080, "0.0.0.0:8080"},
		{"::1", 8080, "[::1]:8080"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			t.Parallel()
			s := adapthttp.NewServer(config.ServerConfig{Host: tt.host, Port: tt.port}, http.NotFoundHandler(), nil)
			if got := s.Addr(); got != tt.want {
				t.Errorf("Addr() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestServer_ServesUntilShutdown(t *testing.T) {
	t.Parallel()

	s := adapthttp.NewServer(localConfig(), http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `{"status":"alive"}`)
	}), discardLogger())
	addr, err := s.Listen()
	if err != nil {
		t.Fatalf("Listen() error = %v", err)
	}

	errCh := make(chan error, 1)
	go func() { errCh <- s.Start() }()

	resp, err := http.Get("http://" + addr.String() + "/health/live")
	if err != nil {
		t.Fatalf("GET error = %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if string(body) != `{"status":"alive"}` {
		t.Errorf("body = %q", body)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.Shutdown(ctx); err != nil {
		t.Fatalf("Shutdown() error = %v", err)
	}
	if err := <-errCh; err != nil {
		t.Errorf("Start() = %v, want nil after Shutdown", err)
	}
}

func TestServer_ShutdownWithoutDeadline(t *testing.T) {
	t.Parallel()

	s := adapthttp.NewServer(localConfig(), http.NotFoundHandler(), discardLogger())
	if _, err := s.Listen(); err != nil {
		t.Fatalf("Listen() error = %v", err)
	}
	errCh := make(chan error, 1)
	go func() { errCh <- s.Start() }()

	if err := s.Shutdown(context.Background()); err != nil {
		t.Fatalf("Shutdown() error = %v", err)
	}
	if err := <-errCh; err != nil {
		t.Errorf("Start() = %v, want nil", err)
	}
}

func TestServer_StartFailsOnBusyPort(t *testing.T) {
	t.Parallel()

	busy, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("net.Listen: %v", err)
	}
	t.Cleanup(func() { _ = busy.Close() })

	cfg := localConfig()
	cfg.Port = busy.Addr().(*net.TCPAddr).Port
	if err := adapthttp.NewServer(cfg, http.NotFoundHandler(), discardLogger()).Start(); err == nil {
		t.Error("Start() = nil, want a bind error")
	}
}
