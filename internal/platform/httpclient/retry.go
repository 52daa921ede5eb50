package httpclient

import (
	"bytes"
	"context"
	crand "crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/jsamuelsen11/taskflow/internal/platform/logging"
)

// IdempotencyKeyHeader marks a non-idempotent request as safe to replay.
const IdempotencyKeyHeader = "Idempotency-Key"

// retryPolicy is exponential backoff with ±25% jitter, capped at ceiling.
//
// Whether a failed attempt is replayed depends on the request. Idempotent
// methods, and requests carrying IdempotencyKeyHeader, are replayed after
// any transport error, 429 or 5xx. Other requests, such as a command POST,
// only when the peer certainly did not act: the connection was never
// established, or it answered 429 or 503.
type retryPolicy struct {
	attempts int
	initial  time.Duration
	ceiling  time.Duration
	factor   float64
}

const jitter = 0.25

// send runs the attempts. The final response of an exhausted retryable
// status is returned along with an error, body unread.
func (c *Client) send(ctx context.Context, req *http.Request) (*http.Response, error) {
	body, err := snapshotBody(req)
	if err != nil {
		return nil, err
	}
	replayable := idempotent(req)

	var lastErr error
	for attempt := 1; ; attempt++ {
		if body != nil {
			req.Body = io.NopCloser(bytes.NewReader(body))
			req.ContentLength = int64(len(body))
		}

		resp, err := c.http.Do(req)
		final := attempt >= c.retry.attempts
		switch {
		case err != nil:
			if final || !retryTransport(err, replayable) {
				return nil, err
			}
			lastErr = err
		case retryStatus(resp.StatusCode, replayable):
			lastErr = fmt.Errorf("%s answered %d", c.peer, resp.StatusCode)
			if final {
				return resp, lastErr
			}
		default:
			return resp, nil
		}

		delay := c.retry.delay(attempt)
		if resp != nil {
			delay = max(delay, retryAfter(resp, c.retry.ceiling))
			_, _ = io.Copy(io.Discard, resp.Body)
			_ = resp.Body.Close()
		}
		logging.FromContext(ctx).WarnContext(ctx, "retrying entity service call",
			slog.String("operation", "httpclient.Do"),
			slog.String("peer_service", c.peer),
			slog.String("method", req.Method),
			slog.String("path", req.URL.Path),
			slog.Int("attempt", attempt+1),
			slog.Int("max_attempts", c.retry.attempts),
			slog.Duration("backoff", delay),
			slog.Any("error", lastErr),
		)

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
}

// delay is the wait before attempt+1.
func (p retryPolicy) delay(attempt int) time.Duration {
	d := float64(p.initial) * math.Pow(p.factor, float64(attempt-1))
	if d > float64(p.ceiling) {
		d = float64(p.ceiling)
	}
	d += d * jitter * (2*randUnit() - 1)
	return time.Duration(max(d, 0))
}

func idempotent(req *http.Request) bool {
	if req.Header.Get(IdempotencyKeyHeader) != "" {
		return true
	}
	switch req.Method {
	case http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodPut, http.MethodDelete:
		return true
	default:
		return false
	}
}

func retryTransport(err error, replayable bool) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	if replayable {
		return true
	}
	var opErr *net.OpError
	return errors.As(err, &opErr) && opErr.Op == "dial"
}

func retryStatus(code int, replayable bool) bool {
	switch {
	case code == http.StatusTooManyRequests, code == http.StatusServiceUnavailable:
		return true
	case code >= http.StatusInternalServerError:
		return replayable
	default:
		return false
	}
}

// retryAfter reads a Retry-After of delta seconds or an HTTP date, capped at
// ceiling. Zero when absent or unparsable.
func retryAfter(resp *http.Response, ceiling time.Duration) time.Duration {
	v := resp.Header.Get("Retry-After")
	if v == "" {
		return 0
	}
	var d time.Duration
	if secs, err := strconv.Atoi(v); err == nil {
		d = time.Duration(secs) * time.Second
	} else if at, err := http.ParseTime(v); err == nil {
		d = time.Until(at)
	}
	return min(max(d, 0), ceiling)
}

func snapshotBody(req *http.Request) ([]byte, error) {
	if req.Body == nil || req.Body == http.NoBody {
		return nil, nil
	}
	defer req.Body.Close()
	b, err := io.ReadAll(req.Body)
	if err != nil {
		return nil, fmt.Errorf("buffering %s body: %w", req.Method, err)
	}
	return b, nil
}

// randUnit returns a uniform float64 in [0, 1).
func randUnit() float64 {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0.5
	}
	return float64(binary.BigEndian.Uint64(b[:])>>11) / (1 << 53)
}
