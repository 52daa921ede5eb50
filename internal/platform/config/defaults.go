package config

const (
	defaultServerPort = 8080

	defaultRetryMaxAttempts = 3
	defaultRetryMultiplier  = 2.0

	defaultCircuitBreakerMaxFailures = 5
	defaultCircuitBreakerHalfOpen    = 1

	defaultEventWorkers       = 4
	defaultEventFanout        = 8
	defaultEventQueueBuffer   = 1024
	defaultEventMaxDeliveries = 5
)

// defaults returns the default configuration values.
// These are loaded first and can be overridden by base.yaml, profile YAML, and env vars.
// Every key is listed so that APP_ env vars resolve even when no YAML file sets it.
func defaults() map[string]any {
	return map[string]any{
		"server.host":          "0.0.0.0",
		"server.port":          defaultServerPort,
		"server.read_timeout":  "5s",
		"server.write_timeout": "10s",
		"server.idle_timeout":  "120s",

		"server.request_timeout":      "8s",
		"server.health_check_timeout": "2s",

		"log.level":  "info",
		"log.format": "json",

		"client.base_url":                        "http://localhost:8081",
		"client.timeout":                         "30s",
		"client.retry.max_attempts":              defaultRetryMaxAttempts,
		"client.retry.initial_interval":          "100ms",
		"client.retry.max_interval":              "10s",
		"client.retry.multiplier":                defaultRetryMultiplier,
		"client.circuit_breaker.max_failures":    defaultCircuitBreakerMaxFailures,
		"client.circuit_breaker.timeout":         "30s",
		"client.circuit_breaker.half_open_limit": defaultCircuitBreakerHalfOpen,
		"client.rate_limit.requests_per_second":  0,
		"client.rate_limit.burst_size":           1,

		"telemetry.enabled":  false,
		"telemetry.exporter": "stdout",
		"telemetry.endpoint": "",

		"store.backend":          BackendMemory,
		"store.redis.addr":       "localhost:6379",
		"store.redis.password":   "",
		"store.redis.db":         0,
		"store.redis.key_prefix": "taskflow:",
		"store.redis.ttl":        "0s",

		"events.source":                     SourceMemory,
		"events.workers":                    defaultEventWorkers,
		"events.fanout":                     defaultEventFanout,
		"events.queue_buffer":               defaultEventQueueBuffer,
		"events.max_deliveries":             defaultEventMaxDeliveries,
		"events.retry_delay":                "100ms",
		"events.memo_ttl":                   "24h",
		"events.azqueue.connection_string":  "",
		"events.azqueue.queue_name":         "taskflow-events",
		"events.azqueue.visibility_timeout": "30s",
		"events.azqueue.poll_interval":      "1s",

		"dispatch.mode": DispatchLocal,
	}
}
