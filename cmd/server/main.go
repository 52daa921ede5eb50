// Package main is the entry point for the service. It wires all dependencies
// using samber/do v2, starts the event processor and the HTTP server, and
// handles graceful shutdown on SIGINT/SIGTERM or a fatal processor error.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/samber/do/v2"

	goredis "github.com/redis/go-redis/v9"

	adapthttp "github.com/jsamuelsen11/taskflow/internal/adapters/http"
	"github.com/jsamuelsen11/taskflow/internal/adapters/http/handlers"
	"github.com/jsamuelsen11/taskflow/internal/adapters/http/middleware"

	"github.com/jsamuelsen11/taskflow/internal/adapters/clients/entityapi"
	"github.com/jsamuelsen11/taskflow/internal/adapters/enrichment"
	"github.com/jsamuelsen11/taskflow/internal/adapters/queue/azqueue"
	memqueue "github.com/jsamuelsen11/taskflow/internal/adapters/queue/memory"
	"github.com/jsamuelsen11/taskflow/internal/adapters/store"
	memstore "github.com/jsamuelsen11/taskflow/internal/adapters/store/memory"
	redisstore "github.com/jsamuelsen11/taskflow/internal/adapters/store/redis"
	"github.com/jsamuelsen11/taskflow/internal/app"
	"github.com/jsamuelsen11/taskflow/internal/platform/config"
	"github.com/jsamuelsen11/taskflow/internal/platform/health"
	"github.com/jsamuelsen11/taskflow/internal/platform/httpclient"
	"github.com/jsamuelsen11/taskflow/internal/platform/logging"
	"github.com/jsamuelsen11/taskflow/internal/platform/telemetry"
	"github.com/jsamuelsen11/taskflow/internal/ports"
	"github.com/jsamuelsen11/taskflow/internal/projection"

	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

const (
	serverShutdownTimeout = 15 * time.Second
	otelShutdownTimeout   = 5 * time.Second
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	profile := os.Getenv("APP_PROFILE")
	if profile == "" {
		return errors.New("APP_PROFILE environment variable is required (e.g. local, dev, qa, prod)")
	}

	// Bootstrap: config, logger, telemetry.
	cfg, err := config.Load(profile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := logging.New(cfg.Log.Level, cfg.Log.Format, os.Stderr)

	ctx := context.Background()
	otel, err := initTelemetry(ctx, cfg)
	if err != nil {
		return fmt.Errorf("initializing telemetry: %w", err)
	}

	// DI container.
	injector := do.New()

	do.ProvideValue(injector, cfg)
	do.ProvideValue(injector, logger)
	do.ProvideValue(injector, otel.metrics)

	registerDependencies(injector, cfg, logger)

	// Resolve the server and the processor (eagerly wires the full graph).
	server, err := do.Invoke[*adapthttp.Server](injector)
	if err != nil {
		return fmt.Errorf("resolving server: %w", err)
	}
	processor, err := do.Invoke[*app.EventProcessor](injector)
	if err != nil {
		return fmt.Errorf("resolving event processor: %w", err)
	}

	// Register health checkers after the graph is wired.
	registry := do.MustInvoke[ports.HealthRegistry](injector)
	for _, dep := range []struct {
		component   any
		criticality ports.Criticality
	}{
		{do.MustInvoke[store.Backend](injector), ports.Critical},
		{do.MustInvoke[ports.EventQueue](injector), ports.Critical},
		{do.MustInvoke[ports.CommandDispatcher](injector), ports.Degradable},
	} {
		if checker, ok := dep.component.(ports.HealthChecker); ok {
			registry.Register(checker, dep.criticality)
		}
	}

	// Bind before consuming events so a busy port fails fast.
	if _, err := server.Listen(); err != nil {
		return err
	}

	// Start the event processor and the server in background.
	procCtx, stopProcessor := context.WithCancel(logging.WithLogger(ctx, logger))
	defer stopProcessor()

	procErr := make(chan error, 1)
	go func() {
		procErr <- processor.Run(procCtx)
	}()

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.Start()
	}()

	// Wait for shutdown signal, server error or a fatal processor error.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	var runErr error
	select {
	case sig := <-quit:
		logger.Info("received shutdown signal", slog.String("signal", sig.String()))
	case err := <-serverErr:
		return fmt.Errorf("server failed: %w", err)
	case err := <-procErr:
		runErr = fmt.Errorf("event processor failed: %w", err)
		procErr <- nil
	}

	// Graceful shutdown: drain HTTP requests, then stop consuming.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), serverShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", slog.Any("error", err))
	}

	// Wait for Start() goroutine to return.
	<-serverErr

	stopProcessor()
	<-procErr

	if q, ok := do.MustInvoke[ports.EventQueue](injector).(interface{ Close() }); ok {
		q.Close()
	}

	// Flush telemetry.
	otelCtx, otelCancel := context.WithTimeout(context.Background(), otelShutdownTimeout)
	defer otelCancel()

	if err := otel.Shutdown(otelCtx); err != nil {
		logger.Error("telemetry shutdown error", slog.Any("error", err))
	}

	logger.Info("shutdown complete")
	return runErr
}

// otelProviders bundles OpenTelemetry provider lifecycle. The providers are
// nil when telemetry is disabled; metrics then record to a no-op meter.
type otelProviders struct {
	tracer  *sdktrace.TracerProvider
	meter   *sdkmetric.MeterProvider
	metrics *telemetry.Metrics
}

// Shutdown flushes both providers. Nil-safe.
func (o *otelProviders) Shutdown(ctx context.Context) error {
	var errs []error
	if o.tracer != nil {
		if err := o.tracer.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("tracer shutdown: %w", err))
		}
	}
	if o.meter != nil {
		if err := o.meter.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("meter shutdown: %w", err))
		}
	}
	return errors.Join(errs...)
}

func initTelemetry(ctx context.Context, cfg *config.Config) (*otelProviders, error) {
	if !cfg.Telemetry.Enabled {
		metrics, err := telemetry.NewMetrics(noop.NewMeterProvider(), cfg.Telemetry.ServiceName)
		if err != nil {
			return nil, fmt.Errorf("creating metrics: %w", err)
		}
		return &otelProviders{metrics: metrics}, nil
	}

	tp, err := telemetry.InitTracer(ctx,
		cfg.Telemetry.ServiceName,
		cfg.Telemetry.Exporter,
		cfg.Telemetry.Endpoint,
	)
	if err != nil {
		return nil, fmt.Errorf("init tracer: %w", err)
	}

	mp, err := telemetry.InitMeter(ctx,
		cfg.Telemetry.ServiceName,
		cfg.Telemetry.Exporter,
		cfg.Telemetry.Endpoint,
	)
	if err != nil {
		_ = tp.Shutdown(ctx)
		return nil, fmt.Errorf("init meter: %w", err)
	}

	metrics, err := telemetry.NewMetrics(mp, cfg.Telemetry.ServiceName)
	if err != nil {
		_ = tp.Shutdown(ctx)
		_ = mp.Shutdown(ctx)
		return nil, fmt.Errorf("creating metrics: %w", err)
	}

	return &otelProviders{
		tracer:  tp,
		meter:   mp,
		metrics: metrics,
	}, nil
}

func registerDependencies(injector *do.RootScope, cfg *config.Config, logger *slog.Logger) {
	// Storage and delivery.
	do.Provide(injector, func(_ do.Injector) (store.Backend, error) {
		switch cfg.Store.Backend {
		case config.BackendRedis:
			client := goredis.NewClient(&goredis.Options{
				Addr:     cfg.Store.Redis.Addr,
				Password: cfg.Store.Redis.Password,
				DB:       cfg.Store.Redis.DB,
			})
			return redisstore.New(client, redisstore.Options{
				KeyPrefix: cfg.Store.Redis.KeyPrefix,
				TTL:       cfg.Store.Redis.TTL,
			}), nil
		default:
			return memstore.New(), nil
		}
	})

	do.Provide(injector, func(_ do.Injector) (ports.EventQueue, error) {
		switch cfg.Events.Source {
		case config.SourceAzQueue:
			return azqueue.New(azqueue.Config{
				ConnectionString:  cfg.Events.AzQueue.ConnectionString,
				QueueName:         cfg.Events.AzQueue.QueueName,
				VisibilityTimeout: cfg.Events.AzQueue.VisibilityTimeout,
				PollInterval:      cfg.Events.AzQueue.PollInterval,
				MaxDeliveries:     cfg.Events.MaxDeliveries,
			})
		default:
			return memqueue.NewEventQueue(memqueue.Config{
				MaxDeliveries: cfg.Events.MaxDeliveries,
				RetryDelay:    cfg.Events.RetryDelay,
				DeadLetter:    true,
				QueueBuffer:   cfg.Events.QueueBuffer,
			}), nil
		}
	})

	// Downstream command delivery.
	do.Provide(injector, func(i do.Injector) (ports.CommandDispatcher, error) {
		if cfg.Dispatch.Mode == config.DispatchRemote {
			metrics := do.MustInvoke[*telemetry.Metrics](i)
			client := httpclient.New(&cfg.Client, "entity-api", metrics, logger)
			return entityapi.NewDispatcher(client, logger), nil
		}
		backend := do.MustInvoke[store.Backend](i)
		queue := do.MustInvoke[ports.EventQueue](i)
		return app.NewEntityDispatcher(store.NewTaskStore(backend), store.NewLabelStore(backend), queue, logger), nil
	})

	// Application services.
	do.Provide(injector, func(i do.Injector) (*app.WorkflowService, error) {
		backend := do.MustInvoke[store.Backend](i)
		return app.NewWorkflowService(
			store.NewWorkflowStore(backend),
			do.MustInvoke[ports.CommandDispatcher](i),
			do.MustInvoke[ports.EventQueue](i),
			do.MustInvoke[*telemetry.Metrics](i),
			logger,
		), nil
	})

	do.Provide(injector, func(i do.Injector) (*app.ViewService, error) {
		backend := do.MustInvoke[store.Backend](i)
		return app.NewViewService(store.NewViewStore(backend), logger), nil
	})

	do.Provide(injector, func(i do.Injector) (*app.EventProcessor, error) {
		backend := do.MustInvoke[store.Backend](i)
		return app.NewEventProcessor(
			do.MustInvoke[ports.EventQueue](i),
			enrichment.New(backend, enrichment.WithMemoTTL(cfg.Events.MemoTTL)),
			store.NewViewStore(backend),
			do.MustInvoke[*app.WorkflowService](i),
			projection.All(),
			app.ProcessorConfig{Workers: cfg.Events.Workers, Fanout: cfg.Events.Fanout},
			do.MustInvoke[*telemetry.Metrics](i),
			logger,
		)
	})

	do.Provide(injector, func(_ do.Injector) (ports.HealthRegistry, error) {
		return health.New(cfg.Server.HealthCheckTimeout), nil
	})

	// HTTP.
	do.Provide(injector, func(i do.Injector) (*handlers.WorkflowHandler, error) {
		return handlers.NewWorkflowHandler(do.MustInvoke[*app.WorkflowService](i)), nil
	})

	do.Provide(injector, func(i do.Injector) (*handlers.ViewHandler, error) {
		return handlers.NewViewHandler(do.MustInvoke[*app.ViewService](i)), nil
	})

	do.Provide(injector, func(i do.Injector) (*handlers.CommandHandler, error) {
		return handlers.NewCommandHandler(do.MustInvoke[ports.CommandDispatcher](i)), nil
	})

	do.Provide(injector, func(i do.Injector) (*handlers.HealthHandler, error) {
		registry := do.MustInvoke[ports.HealthRegistry](i)
		return handlers.NewHealthHandler(registry), nil
	})

	do.Provide(injector, func(i do.Injector) (nethttp.Handler, error) {
		workflowH := do.MustInvoke[*handlers.WorkflowHandler](i)
		viewH := do.MustInvoke[*handlers.ViewHandler](i)
		commandH := do.MustInvoke[*handlers.CommandHandler](i)
		healthH := do.MustInvoke[*handlers.HealthHandler](i)
		metrics := do.MustInvoke[*telemetry.Metrics](i)

		return adapthttp.NewRouter(workflowH, viewH, commandH, healthH,
			middleware.Recovery(logger),
			middleware.RequestID(),
			middleware.CorrelationID(),
			middleware.OpenTelemetry(metrics),
			middleware.Logging(logger),
			middleware.Timeout(cfg.Server.RequestTimeout),
		), nil
	})

	do.Provide(injector, func(i do.Injector) (*adapthttp.Server, error) {
		handler := do.MustInvoke[nethttp.Handler](i)
		return adapthttp.NewServer(cfg.Server, handler, logger), nil
	})
}
