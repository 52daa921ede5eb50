package http

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/jsamuelsen11/taskflow/internal/platform/config"
	"github.com/jsamuelsen11/taskflow/internal/platform/logging"
)

// fallbackDrain bounds Shutdown when the caller gives no deadline.
const fallbackDrain = 10 * time.Second

// Server is the service's HTTP listener.
type Server struct {
	srv    *http.Server
	logger *slog.Logger

	mu sync.Mutex
	ln net.Listener
}

// NewServer configures a server for handler. Request contexts start out
// carrying logger, and net/http's own errors are logged through it.
func NewServer(cfg config.ServerConfig, handler http.Handler, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	readHeader := cfg.ReadTimeout
	if readHeader <= 0 || readHeader > 5*time.Second {
		readHeader = 5 * time.Second
	}
	return &Server{
		srv: &http.Server{
			Addr:              net.JoinHostPort(cfg.Host, fmt.Sprint(cfg.Port)),
			Handler:           handler,
			ReadTimeout:       cfg.ReadTimeout,
			ReadHeaderTimeout: readHeader,
			WriteTimeout:      cfg.WriteTimeout,
			IdleTimeout:       cfg.IdleTimeout,
			ErrorLog:          slog.NewLogLogger(logger.Handler(), slog.LevelWarn),
			BaseContext: func(net.Listener) context.Context {
				return logging.WithLogger(context.Background(), logger)
			},
		},
		logger: logger,
	}
}

// Listen binds the configured address. Start calls it when needed; calling
// it first lets the caller learn the bound address of port 0.
func (s *Server) Listen() (net.Addr, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ln == nil {
		ln, err := net.Listen("tcp", s.srv.Addr)
		if err != nil {
			return nil, fmt.Errorf("binding %s: %w", s.srv.Addr, err)
		}
		s.ln = ln
	}
	return s.ln.Addr(), nil
}

// Start serves until Shutdown, then returns nil.
func (s *Server) Start() error {
	addr, err := s.Listen()
	if err != nil {
		return err
	}
	s.logger.Info("serving HTTP", slog.String("addr", addr.String()))

	if err := s.srv.Serve(s.ln); !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serving HTTP: %w", err)
	}
	return nil
}

// Shutdown stops accepting connections and waits for in-flight requests
// until ctx ends, or for fallbackDrain when ctx has no deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, fallbackDrain)
		defer cancel()
	}
	s.logger.Info("draining HTTP server")
	return s.srv.Shutdown(ctx)
}

// Addr is the configured listen address.
func (s *Server) Addr() string {
	return s.srv.Addr
}
