// Package httpclient is the outbound HTTP client used to reach the entity
// service. Every call passes through, outermost first:
//
//	circuit breaker, rate limiter, id headers, client span, retry
//
// Retries replay a request only when that cannot apply a command twice; see
// retryPolicy. The request and correlation ids stored with WithRequestID and
// WithCorrelationID travel as X-Request-ID and X-Correlation-ID.
package httpclient

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"time"

	"github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/jsamuelsen11/taskflow/internal/platform/config"
	"github.com/jsamuelsen11/taskflow/internal/platform/telemetry"
)

type (
	requestIDKey     struct{}
	correlationIDKey struct{}
)

// WithRequestID stores the id sent as X-Request-ID.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// WithCorrelationID stores the id sent as X-Correlation-ID.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationIDKey{}, id)
}

// Client calls one downstream service.
type Client struct {
	http    *http.Client
	baseURL string
	peer    string
	breaker *gobreaker.CircuitBreaker[struct{}]
	limiter *rate.Limiter
	retry   retryPolicy
	metrics *telemetry.Metrics
	logger  *slog.Logger
}

// New builds a client for peer, the service name used in spans, metrics and
// health reports. metrics may be nil.
func New(cfg *config.ClientConfig, peer string, metrics *telemetry.Metrics, logger *slog.Logger) *Client {
	c := &Client{
		http:    &http.Client{Timeout: cfg.Timeout},
		baseURL: cfg.BaseURL,
		peer:    peer,
		retry: retryPolicy{
			attempts: max(cfg.Retry.MaxAttempts, 1),
			initial:  cfg.Retry.InitialInterval,
			ceiling:  cfg.Retry.MaxInterval,
			factor:   cfg.Retry.Multiplier,
		},
		metrics: metrics,
		logger:  logger,
	}
	if cfg.RateLimit.RequestsPerSecond > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit.RequestsPerSecond), cfg.RateLimit.BurstSize)
	}

	maxFailures := clampUint32(cfg.CircuitBreaker.MaxFailures)
	c.breaker = gobreaker.NewCircuitBreaker[struct{}](gobreaker.Settings{
		Name:        peer,
		MaxRequests: clampUint32(cfg.CircuitBreaker.HalfOpenLimit),
		Timeout:     cfg.CircuitBreaker.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("entity service breaker changed state",
				slog.String("peer_service", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()),
			)
		},
	})
	return c
}

// Do sends req. A response is returned whenever one arrived, including a
// retryable status left over after the last attempt; err is then non-nil as
// well and the caller still closes the body. A nil response means the
// breaker, the limiter or the transport refused the call.
func (c *Client) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	start := time.Now()
	var resp *http.Response
	_, err := c.breaker.Execute(func() (struct{}, error) {
		if c.limiter != nil {
			if err := c.limiter.Wait(ctx); err != nil {
				return struct{}{}, err
			}
		}
		setIDHeaders(ctx, req)

		ctx, span := c.startSpan(ctx, req)
		defer span.End()

		var err error
		resp, err = c.send(ctx, req.WithContext(ctx))
		endSpan(span, resp, err)
		return struct{}{}, err
	})
	c.record(ctx, req.Method, start, resp, err)
	return resp, err
}

// BaseURL is the peer root every request path is joined to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Name identifies the peer in health reports.
func (c *Client) Name() string {
	return c.peer
}

// HealthCheck derives the peer's health from the breaker without calling
// it: closed is healthy, half-open is degraded, open is failing.
func (c *Client) HealthCheck(context.Context) error {
	switch state := c.breaker.State(); state {
	case gobreaker.StateClosed:
		return nil
	case gobreaker.StateHalfOpen:
		return fmt.Errorf("%s: degraded (circuit breaker half-open)", c.peer)
	case gobreaker.StateOpen:
		return fmt.Errorf("%s: failing (circuit breaker open)", c.peer)
	default:
		return fmt.Errorf("%s: circuit breaker in state %v", c.peer, state)
	}
}

func setIDHeaders(ctx context.Context, req *http.Request) {
	if id, _ := ctx.Value(requestIDKey{}).(string); id != "" {
		req.Header.Set("X-Request-ID", id)
	}
	if id, _ := ctx.Value(correlationIDKey{}).(string); id != "" {
		req.Header.Set("X-Correlation-ID", id)
	}
}

func clampUint32(v int) uint32 {
	switch {
	case v <= 0:
		return 0
	case v > math.MaxUint32:
		return math.MaxUint32
	default:
		return uint32(v)
	}
}
