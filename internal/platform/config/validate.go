package config

import (
	"errors"
	"fmt"
	"time"
)

// Validate checks all configuration values and returns aggregated errors.
func (c *Config) Validate() error {
	return errors.Join(
		c.Server.validate(),
		c.Log.validate(),
		c.Client.validate(),
		c.Telemetry.validate(),
		c.Store.validate(),
		c.Events.validate(),
		c.Dispatch.validate(),
	)
}

func (s *ServerConfig) validate() error {
	var errs []error

	if s.Port < 1 || s.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port must be between 1 and 65535, got %d", s.Port))
	}
	if s.ReadTimeout <= 0 {
		errs = append(errs, errors.New("server.read_timeout must be positive"))
	}
	if s.WriteTimeout <= 0 {
		errs = append(errs, errors.New("server.write_timeout must be positive"))
	}
	if s.RequestTimeout <= 0 || s.RequestTimeout >= s.WriteTimeout {
		errs = append(errs, fmt.Errorf("server.request_timeout must be positive and below server.write_timeout (%s), got %s", s.WriteTimeout, s.RequestTimeout))
	}
	if s.HealthCheckTimeout <= 0 {
		errs = append(errs, errors.New("server.health_check_timeout must be positive"))
	}

	return errors.Join(errs...)
}

func (l *LogConfig) validate() error {
	var errs []error

	switch l.Level {
	case "debug", "info", "warn", "error":
		// Valid levels.
	default:
		errs = append(errs, fmt.Errorf("log.level must be one of: debug, info, warn, error; got %q", l.Level))
	}

	switch l.Format {
	case "json", "text":
		// Valid formats.
	default:
		errs = append(errs, fmt.Errorf("log.format must be one of: json, text; got %q", l.Format))
	}

	return errors.Join(errs...)
}

func (cl *ClientConfig) validate() error {
	var errs []error

	if cl.BaseURL == "" {
		errs = append(errs, errors.New("client.base_url must not be empty"))
	}
	if cl.Timeout <= 0 {
		errs = append(errs, errors.New("client.timeout must be positive"))
	}
	if cl.Retry.MaxAttempts < 1 {
		errs = append(errs, fmt.Errorf("client.retry.max_attempts must be >= 1, got %d", cl.Retry.MaxAttempts))
	}
	if cl.Retry.Multiplier <= 0 {
		errs = append(errs, fmt.Errorf("client.retry.multiplier must be positive, got %f", cl.Retry.Multiplier))
	}
	if cl.CircuitBreaker.MaxFailures < 1 {
		errs = append(errs, fmt.Errorf("client.circuit_breaker.max_failures must be >= 1, got %d",
			cl.CircuitBreaker.MaxFailures))
	}
	if cl.RateLimit.RequestsPerSecond < 0 {
		errs = append(errs, fmt.Errorf("client.rate_limit.requests_per_second must not be negative, got %f",
			cl.RateLimit.RequestsPerSecond))
	}
	if cl.RateLimit.RequestsPerSecond > 0 && cl.RateLimit.BurstSize < 1 {
		errs = append(errs, fmt.Errorf("client.rate_limit.burst_size must be >= 1, got %d", cl.RateLimit.BurstSize))
	}

	return errors.Join(errs...)
}

func (t *TelemetryConfig) validate() error {
	if !t.Enabled {
		return nil
	}

	var errs []error

	switch t.Exporter {
	case "stdout", "otlp":
		// Valid exporters.
	default:
		errs = append(errs, fmt.Errorf("telemetry.exporter must be one of: stdout, otlp; got %q", t.Exporter))
	}

	if t.Exporter == "otlp" && t.Endpoint == "" {
		errs = append(errs, errors.New("telemetry.endpoint must not be empty when exporter is otlp"))
	}

	return errors.Join(errs...)
}

func (s *StoreConfig) validate() error {
	switch s.Backend {
	case BackendMemory:
		return nil
	case BackendRedis:
		var errs []error
		if s.Redis.Addr == "" {
			errs = append(errs, errors.New("store.redis.addr must not be empty"))
		}
		if s.Redis.TTL < 0 {
			errs = append(errs, errors.New("store.redis.ttl must not be negative"))
		}
		return errors.Join(errs...)
	default:
		return fmt.Errorf("store.backend must be one of: memory, redis; got %q", s.Backend)
	}
}

func (e *EventsConfig) validate() error {
	var errs []error

	if e.Workers < 1 {
		errs = append(errs, fmt.Errorf("events.workers must be >= 1, got %d", e.Workers))
	}
	if e.Fanout < 1 {
		errs = append(errs, fmt.Errorf("events.fanout must be >= 1, got %d", e.Fanout))
	}
	if e.RetryDelay < 0 {
		errs = append(errs, errors.New("events.retry_delay must not be negative"))
	}
	if e.MemoTTL <= 0 {
		errs = append(errs, errors.New("events.memo_ttl must be positive"))
	}

	switch e.Source {
	case SourceMemory:
		if e.QueueBuffer < 1 {
			errs = append(errs, fmt.Errorf("events.queue_buffer must be >= 1, got %d", e.QueueBuffer))
		}
	case SourceAzQueue:
		if e.AzQueue.ConnectionString == "" {
			errs = append(errs, errors.New("events.azqueue.connection_string must not be empty"))
		}
		if e.AzQueue.QueueName == "" {
			errs = append(errs, errors.New("events.azqueue.queue_name must not be empty"))
		}
		if e.AzQueue.VisibilityTimeout < time.Second {
			errs = append(errs, errors.New("events.azqueue.visibility_timeout must be at least 1s"))
		}
	default:
		errs = append(errs, fmt.Errorf("events.source must be one of: memory, azqueue; got %q", e.Source))
	}

	return errors.Join(errs...)
}

func (d *DispatchConfig) validate() error {
	switch d.Mode {
	case DispatchLocal, DispatchRemote:
		return nil
	default:
		return fmt.Errorf("dispatch.mode must be one of: local, remote; got %q", d.Mode)
	}
}
