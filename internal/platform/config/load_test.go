package config_test

import (
	"testing"
	"time"

	"github.com/jsamuelsen11/taskflow/internal/platform/config"
)

func TestLoad_LocalProfile(t *testing.T) {
	t.Chdir("../../..")

	cfg, err := config.Load("local")
	if err != nil {
		t.Fatalf("Load(\"local\") error: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, want \"debug\"", cfg.Log.Level)
	}
	if cfg.Log.Format != "text" {
		t.Errorf("Log.Format = %q, want \"text\"", cfg.Log.Format)
	}
	if cfg.Telemetry.Enabled {
		t.Error("Telemetry.Enabled = true, want false for local")
	}
}

func TestLoad_ProdProfile(t *testing.T) {
	t.Chdir("../../..")
	t.Setenv("APP_EVENTS_AZQUEUE_CONNECTION_STRING", "UseDevelopmentStorage=true")

	cfg, err := config.Load("prod")
	if err != nil {
		t.Fatalf("Load(\"prod\") error: %v", err)
	}

	if cfg.Log.Level != "info" {
		t.Errorf("Log.Level = %q, want \"info\"", cfg.Log.Level)
	}
	if cfg.Log.Format != "json" {
		t.Errorf("Log.Format = %q, want \"json\"", cfg.Log.Format)
	}
	if !cfg.Telemetry.Enabled {
		t.Error("Telemetry.Enabled = false, want true for prod")
	}
	if cfg.Telemetry.Exporter != "otlp" {
		t.Errorf("Telemetry.Exporter = %q, want \"otlp\"", cfg.Telemetry.Exporter)
	}
	if cfg.Telemetry.Endpoint == "" {
		t.Error("Telemetry.Endpoint is empty, want non-empty for prod")
	}
	if cfg.Store.Backend != config.BackendRedis {
		t.Errorf("Store.Backend = %q, want %q", cfg.Store.Backend, config.BackendRedis)
	}
	if cfg.Events.Source != config.SourceAzQueue {
		t.Errorf("Events.Source = %q, want %q", cfg.Events.Source, config.SourceAzQueue)
	}
	if cfg.Events.AzQueue.QueueName != "taskflow-events" {
		t.Errorf("Events.AzQueue.QueueName = %q, want \"taskflow-events\" (from base)", cfg.Events.AzQueue.QueueName)
	}
	if cfg.Dispatch.Mode != config.DispatchRemote {
		t.Errorf("Dispatch.Mode = %q, want %q", cfg.Dispatch.Mode, config.DispatchRemote)
	}
}

func TestLoad_ProdProfileRequiresQueueConnection(t *testing.T) {
	t.Chdir("../../..")

	if _, err := config.Load("prod"); err == nil {
		t.Fatal("Load(\"prod\") without a queue connection string returned nil error")
	}
}

func TestLoad_LocalDomainDefaults(t *testing.T) {
	t.Chdir("../../..")

	cfg, err := config.Load("local")
	if err != nil {
		t.Fatalf("Load(\"local\") error: %v", err)
	}

	if cfg.Store.Backend != config.BackendMemory {
		t.Errorf("Store.Backend = %q, want %q", cfg.Store.Backend, config.BackendMemory)
	}
	if cfg.Events.Source != config.SourceMemory {
		t.Errorf("Events.Source = %q, want %q", cfg.Events.Source, config.SourceMemory)
	}
	if cfg.Events.Workers != 2 {
		t.Errorf("Events.Workers = %d, want 2 (from local)", cfg.Events.Workers)
	}
	if cfg.Events.Fanout != 8 {
		t.Errorf("Events.Fanout = %d, want 8 (from base)", cfg.Events.Fanout)
	}
	if cfg.Events.MaxDeliveries != 5 {
		t.Errorf("Events.MaxDeliveries = %d, want 5", cfg.Events.MaxDeliveries)
	}
	if cfg.Events.MemoTTL != 24*time.Hour {
		t.Errorf("Events.MemoTTL = %s, want 24h", cfg.Events.MemoTTL)
	}
	if cfg.Dispatch.Mode != config.DispatchLocal {
		t.Errorf("Dispatch.Mode = %q, want %q", cfg.Dispatch.Mode, config.DispatchLocal)
	}
}

func TestLoad_BaseConfigInheritance(t *testing.T) {
	t.Chdir("../../..")

	cfg, err := config.Load("local")
	if err != nil {
		t.Fatalf("Load(\"local\") error: %v", err)
	}

	// These come from base.yaml, not overridden by local.yaml.
	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("Server.Host = %q, want \"0.0.0.0\" (from base)", cfg.Server.Host)
	}
	if cfg.Client.Retry.MaxAttempts != 3 {
		t.Errorf("Client.Retry.MaxAttempts = %d, want 3 (from base)", cfg.Client.Retry.MaxAttempts)
	}
	if cfg.Client.CircuitBreaker.MaxFailures != 5 {
		t.Errorf("Client.CircuitBreaker.MaxFailures = %d, want 5 (from base)",
			cfg.Client.CircuitBreaker.MaxFailures)
	}
}

func TestLoad_EnvOverrideSimpleKey(t *testing.T) {
	t.Chdir("../../..")
	t.Setenv("APP_SERVER_PORT", "9090")

	cfg, err := config.Load("local")
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090 (env override)", cfg.Server.Port)
	}
}

func TestLoad_EnvOverrideSnakeCaseKey(t *testing.T) {
	t.Chdir("../../..")
	t.Setenv("APP_SERVER_READ_TIMEOUT", "15s")

	cfg, err := config.Load("local")
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	want := 15 * time.Second
	if cfg.Server.ReadTimeout != want {
		t.Errorf("Server.ReadTimeout = %v, want %v (env override)", cfg.Server.ReadTimeout, want)
	}
}

func TestLoad_EnvOverrideDeeplyNestedKey(t *testing.T) {
	t.Chdir("../../..")
	t.Setenv("APP_CLIENT_RETRY_MAX_ATTEMPTS", "7")

	cfg, err := config.Load("local")
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.Client.Retry.MaxAttempts != 7 {
		t.Errorf("Client.Retry.MaxAttempts = %d, want 7 (env override)", cfg.Client.Retry.MaxAttempts)
	}
}

func TestLoad_EnvOverrideDomainKey(t *testing.T) {
	t.Chdir("../../..")
	t.Setenv("APP_STORE_REDIS_KEY_PREFIX", "tf-test:")
	t.Setenv("APP_EVENTS_MAX_DELIVERIES", "9")

	cfg, err := config.Load("local")
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.Store.Redis.KeyPrefix != "tf-test:" {
		t.Errorf("Store.Redis.KeyPrefix = %q, want \"tf-test:\" (env override)", cfg.Store.Redis.KeyPrefix)
	}
	if cfg.Events.MaxDeliveries != 9 {
		t.Errorf("Events.MaxDeliveries = %d, want 9 (env override)", cfg.Events.MaxDeliveries)
	}
}

func TestLoad_MissingProfile(t *testing.T) {
	t.Chdir("../../..")

	_, err := config.Load("nonexistent")
	if err == nil {
		t.Fatal("Load(\"nonexistent\") returned nil error, want error")
	}
}

func TestLoad_RejectsProfilePaths(t *testing.T) {
	t.Parallel()

	for _, profile := range []string{"", "  ", "../prod", "dev/prod", `dev\prod`} {
		if _, err := config.Load(profile, config.WithConfigDir("configs")); err == nil {
			t.Errorf("Load(%q) returned nil error, want error", profile)
		}
	}
}

func TestValidate_InvalidPort(t *testing.T) {
	t.Parallel()

	cfg := validBaseConfig()
	cfg.Server.Port = 0

	if err := cfg.Validate(); err == nil {
		t.Fatal("Validate() returned nil, want error for port=0")
	}
}

func TestValidate_InvalidLogLevel(t *testing.T) {
	t.Parallel()

	cfg := validBaseConfig()
	cfg.Log.Level = "verbose"

	if err := cfg.Validate(); err == nil {
		t.Fatal("Validate() returned nil, want error for invalid log level")
	}
}

func TestValidate_OtlpWithoutEndpoint(t *testing.T) {
	t.Parallel()

	cfg := validBaseConfig()
	cfg.Telemetry.Enabled = true
	cfg.Telemetry.Exporter = "otlp"
	cfg.Telemetry.Endpoint = ""

	if err := cfg.Validate(); err == nil {
		t.Fatal("Validate() returned nil, want error for otlp without endpoint")
	}
}

func TestValidate_DomainSections(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{name: "request timeout reaching write timeout", mutate: func(c *config.Config) { c.Server.RequestTimeout = c.Server.WriteTimeout }},
		{name: "zero health check timeout", mutate: func(c *config.Config) { c.Server.HealthCheckTimeout = 0 }},
		{name: "unknown store backend", mutate: func(c *config.Config) { c.Store.Backend = "etcd" }},
		{name: "redis without addr", mutate: func(c *config.Config) {
			c.Store.Backend = config.BackendRedis
			c.Store.Redis.Addr = ""
		}},
		{name: "zero workers", mutate: func(c *config.Config) { c.Events.Workers = 0 }},
		{name: "zero fanout", mutate: func(c *config.Config) { c.Events.Fanout = 0 }},
		{name: "zero memo ttl", mutate: func(c *config.Config) { c.Events.MemoTTL = 0 }},
		{name: "unknown event source", mutate: func(c *config.Config) { c.Events.Source = "kafka" }},
		{name: "azqueue without connection", mutate: func(c *config.Config) { c.Events.Source = config.SourceAzQueue }},
		{name: "unknown dispatch mode", mutate: func(c *config.Config) { c.Dispatch.Mode = "grpc" }},
		{name: "rate limit without burst", mutate: func(c *config.Config) {
			c.Client.RateLimit = config.RateLimitConfig{RequestsPerSecond: 10}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := validBaseConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatal("Validate() returned nil, want error")
			}
		})
	}
}

func TestValidate_ValidConfig(t *testing.T) {
	t.Parallel()

	cfg := validBaseConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() returned error for valid config: %v", err)
	}
}

// validBaseConfig returns a Config with all fields set to valid values.
func validBaseConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Host:         "0.0.0.0",
			Port:         8080,
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  120 * time.Second,

			RequestTimeout:     8 * time.Second,
			HealthCheckTimeout: 2 * time.Second,
		},
		Log: config.LogConfig{
			Level:  "info",
			Format: "json",
		},
		Client: config.ClientConfig{
			BaseURL: "http://localhost:8081",
			Timeout: 30 * time.Second,
			Retry: config.RetryConfig{
				MaxAttempts:     3,
				InitialInterval: 100 * time.Millisecond,
				MaxInterval:     10 * time.Second,
				Multiplier:      2.0,
			},
			CircuitBreaker: config.CircuitBreakerConfig{
				MaxFailures:   5,
				Timeout:       30 * time.Second,
				HalfOpenLimit: 1,
			},
		},
		Telemetry: config.TelemetryConfig{
			Enabled:  false,
			Exporter: "stdout",
		},
		Store: config.StoreConfig{
			Backend: config.BackendMemory,
		},
		Events: config.EventsConfig{
			Source:        config.SourceMemory,
			Workers:       4,
			Fanout:        8,
			QueueBuffer:   1024,
			MaxDeliveries: 5,
			RetryDelay:    100 * time.Millisecond,
			MemoTTL:       24 * time.Hour,
			AzQueue: config.AzQueueConfig{
				QueueName:         "taskflow-events",
				VisibilityTimeout: 30 * time.Second,
			},
		},
		Dispatch: config.DispatchConfig{
			Mode: config.DispatchLocal,
		},
	}
}
