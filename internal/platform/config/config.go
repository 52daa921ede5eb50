// Package config provides configuration loading and validation for the service.
// Configuration is loaded from YAML files with environment variable overrides
// using a layered system: defaults -> base.yaml -> {profile}.yaml -> env vars.
package config

import "time"

// Config holds all configuration for the service.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Log       LogConfig       `koanf:"log"`
	Client    ClientConfig    `koanf:"client"`
	Telemetry TelemetryConfig `koanf:"telemetry"`
	Store     StoreConfig     `koanf:"store"`
	Events    EventsConfig    `koanf:"events"`
	Dispatch  DispatchConfig  `koanf:"dispatch"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host         string        `koanf:"host"`
	Port         int           `koanf:"port"`
	ReadTimeout  time.Duration `koanf:"read_timeout"`
	WriteTimeout time.Duration `koanf:"write_timeout"`
	IdleTimeout  time.Duration `koanf:"idle_timeout"`

	// RequestTimeout bounds handler work; it must leave WriteTimeout room
	// to send the 504.
	RequestTimeout     time.Duration `koanf:"request_timeout"`
	HealthCheckTimeout time.Duration `koanf:"health_check_timeout"`
}

// LogConfig holds structured logging settings.
type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// ClientConfig holds settings for the remote entity API client.
type ClientConfig struct {
	BaseURL        string               `koanf:"base_url"`
	Timeout        time.Duration        `koanf:"timeout"`
	Retry          RetryConfig          `koanf:"retry"`
	CircuitBreaker CircuitBreakerConfig `koanf:"circuit_breaker"`
	RateLimit      RateLimitConfig      `koanf:"rate_limit"`
}

// RetryConfig holds retry policy settings with exponential backoff.
type RetryConfig struct {
	MaxAttempts     int           `koanf:"max_attempts"`
	InitialInterval time.Duration `koanf:"initial_interval"`
	MaxInterval     time.Duration `koanf:"max_interval"`
	Multiplier      float64       `koanf:"multiplier"`
}

// CircuitBreakerConfig holds circuit breaker settings.
type CircuitBreakerConfig struct {
	MaxFailures   int           `koanf:"max_failures"`
	Timeout       time.Duration `koanf:"timeout"`
	HalfOpenLimit int           `koanf:"half_open_limit"`
}

// RateLimitConfig holds client-side rate limiting settings. Zero
// RequestsPerSecond disables the limiter.
type RateLimitConfig struct {
	RequestsPerSecond float64 `koanf:"requests_per_second"`
	BurstSize         int     `koanf:"burst_size"`
}

// TelemetryConfig holds OpenTelemetry settings.
type TelemetryConfig struct {
	Enabled     bool   `koanf:"enabled"`
	Exporter    string `koanf:"exporter"`
	Endpoint    string `koanf:"endpoint"`
	ServiceName string `koanf:"service_name"`
}

// Store backends.
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// StoreConfig selects where workflow state, entities and views live.
type StoreConfig struct {
	Backend string      `koanf:"backend"`
	Redis   RedisConfig `koanf:"redis"`
}

// RedisConfig holds Redis connection settings.
type RedisConfig struct {
	Addr      string        `koanf:"addr"`
	Password  string        `koanf:"password"`
	DB        int           `koanf:"db"`
	KeyPrefix string        `koanf:"key_prefix"`
	TTL       time.Duration `koanf:"ttl"`
}

// Event sources.
const (
	SourceMemory  = "memory"
	SourceAzQueue = "azqueue"
)

// EventsConfig holds the event delivery channel and processor settings.
type EventsConfig struct {
	Source        string        `koanf:"source"`
	Workers       int           `koanf:"workers"`
	Fanout        int           `koanf:"fanout"`
	QueueBuffer   int           `koanf:"queue_buffer"`
	MaxDeliveries int           `koanf:"max_deliveries"`
	RetryDelay    time.Duration `koanf:"retry_delay"`
	MemoTTL       time.Duration `koanf:"memo_ttl"`
	AzQueue       AzQueueConfig `koanf:"azqueue"`
}

// AzQueueConfig holds Azure Storage Queue settings.
type AzQueueConfig struct {
	ConnectionString  string        `koanf:"connection_string"`
	QueueName         string        `koanf:"queue_name"`
	VisibilityTimeout time.Duration `koanf:"visibility_timeout"`
	PollInterval      time.Duration `koanf:"poll_interval"`
}

// Dispatch modes.
const (
	DispatchLocal  = "local"
	DispatchRemote = "remote"
)

// DispatchConfig selects how downstream commands reach their entities:
// applied in-process, or posted to a remote entity API through the client.
type DispatchConfig struct {
	Mode string `koanf:"mode"`
}
