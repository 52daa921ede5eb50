// Package redis provides a store.Backend on top of Redis.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/jsamuelsen11/taskflow/internal/adapters/store"
	"github.com/jsamuelsen11/taskflow/internal/ports"
)

// Options configures a Backend.
type Options struct {
	// KeyPrefix is prepended to every key, e.g. "taskflow:".
	KeyPrefix string

	// TTL expires documents after the given duration. Zero keeps them
	// forever.
	TTL time.Duration
}

// Backend stores documents as Redis strings.
type Backend struct {
	client *goredis.Client
	prefix string
	ttl    time.Duration
}

var (
	_ store.Backend       = (*Backend)(nil)
	_ ports.HealthChecker = (*Backend)(nil)
)

// New returns a Backend using client. The caller owns the client.
func New(client *goredis.Client, opts Options) *Backend {
	if client == nil {
		panic("redis.New: client is nil")
	}
	ttl := opts.TTL
	if ttl < 0 {
		ttl = 0
	}
	return &Backend{client: client, prefix: opts.KeyPrefix, ttl: ttl}
}

// Get implements store.Backend.
func (b *Backend) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := b.client.Get(ctx, b.prefix+key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get: %w", err)
	}
	return data, nil
}

// Set implements store.Backend.
func (b *Backend) Set(ctx context.Context, key string, value []byte) error {
	if err := b.client.Set(ctx, b.prefix+key, value, b.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// SetWithTTL implements store.Backend. ttl replaces Options.TTL for this
// key.
func (b *Backend) SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := b.client.Set(ctx, b.prefix+key, value, ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Name implements ports.HealthChecker.
func (b *Backend) Name() string {
	return "redis"
}

// HealthCheck implements ports.HealthChecker.
func (b *Backend) HealthCheck(ctx context.Context) error {
	if err := b.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping: %w", err)
	}
	return nil
}
