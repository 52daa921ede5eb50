package httpclient

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"testing"
	"time"
)

func TestRetryPolicy_Delay(t *testing.T) {
	t.Parallel()
	p := retryPolicy{attempts: 5, initial: 100 * time.Millisecond, ceiling: time.Second, factor: 2}

	tests := []struct {
		attempt int
		base    time.Duration
	}{
		{1, 100 * time.Millisecond},
		{2, 200 * time.Millisecond},
		{3, 400 * time.Millisecond},
		{4, 800 * time.Millisecond},
		{5, time.Second},
		{9, time.Second},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.attempt), func(t *testing.T) {
			t.Parallel()
			lo := time.Duration(float64(tt.base) * (1 - jitter))
			hi := time.Duration(float64(tt.base) * (1 + jitter))
			for range 50 {
				if d := p.delay(tt.attempt); d < lo || d > hi {
					t.Fatalf("delay(%d) = %v, want within [%v, %v]", tt.attempt, d, lo, hi)
				}
			}
		})
	}
}

func TestIdempotent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		method string
		key    string
		want   bool
	}{
		{http.MethodGet, "", true},
		{http.MethodPut, "", true},
		{http.MethodDelete, "", true},
		{http.MethodPost, "", false},
		{http.MethodPatch, "", false},
		{http.MethodPost, "p-1/create-draft", true},
	}

	for _, tt := range tests {
		t.Run(tt.method+"/"+tt.key, func(t *testing.T) {
			t.Parallel()
			req, _ := http.NewRequest(tt.method, "http://entity-api/api/v1/commands", http.NoBody)
			if tt.key != "" {
				req.Header.Set(IdempotencyKeyHeader, tt.key)
			}
			if got := idempotent(req); got != tt.want {
				t.Errorf("idempotent() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRetryTransport(t *testing.T) {
	t.Parallel()

	dial := &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")}
	read := &net.OpError{Op: "read", Net: "tcp", Err: errors.New("connection reset by peer")}
	tests := []struct {
		name       string
		err        error
		replayable bool
		want       bool
	}{
		{"canceled", context.Canceled, true, false},
		{"deadline", fmt.Errorf("post: %w", context.DeadlineExceeded), true, false},
		{"dial, command", fmt.Errorf("post: %w", dial), false, true},
		{"reset, command", fmt.Errorf("post: %w", read), false, false},
		{"reset, idempotent", read, true, true},
		{"unknown, idempotent", errors.New("eof"), true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := retryTransport(tt.err, tt.replayable); got != tt.want {
				t.Errorf("retryTransport() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRetryStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		code             int
		wantReplayable   bool
		wantUnreplayable bool
	}{
		{http.StatusAccepted, false, false},
		{http.StatusConflict, false, false},
		{http.StatusNotFound, false, false},
		{http.StatusTooManyRequests, true, true},
		{http.StatusServiceUnavailable, true, true},
		{http.StatusInternalServerError, true, false},
		{http.StatusBadGateway, true, false},
		{http.StatusGatewayTimeout, true, false},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.code), func(t *testing.T) {
			t.Parallel()
			if got := retryStatus(tt.code, true); got != tt.wantReplayable {
				t.Errorf("retryStatus(%d, true) = %v", tt.code, got)
			}
			if got := retryStatus(tt.code, false); got != tt.wantUnreplayable {
				t.Errorf("retryStatus(%d, false) = %v", tt.code, got)
			}
		})
	}
}

func TestRetryAfter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		value string
		want  time.Duration
	}{
		{"absent", "", 0},
		{"seconds", "2", 2 * time.Second},
		{"capped", "120", 5 * time.Second},
		{"negative", "-3", 0},
		{"garbage", "soon", 0},
		{"past date", "Wed, 21 Oct 2015 07:28:00 GMT", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			resp := &http.Response{Header: http.Header{}}
			if tt.value != "" {
				resp.Header.Set("Retry-After", tt.value)
			}
			if got := retryAfter(resp, 5*time.Second); got != tt.want {
				t.Errorf("retryAfter(%q) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}

func TestRandUnit(t *testing.T) {
	t.Parallel()
	for range 1000 {
		if v := randUnit(); v < 0 || v >= 1 {
			t.Fatalf("randUnit() = %v, want [0, 1)", v)
		}
	}
}
