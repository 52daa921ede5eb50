package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cespare/xxhash/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/jsamuelsen11/taskflow/internal/app/keyed"
	"github.com/jsamuelsen11/taskflow/internal/domain/event"
	"github.com/jsamuelsen11/taskflow/internal/domain/workflow"
	"github.com/jsamuelsen11/taskflow/internal/platform/logging"
	"github.com/jsamuelsen11/taskflow/internal/platform/telemetry"
	"github.com/jsamuelsen11/taskflow/internal/ports"
	"github.com/jsamuelsen11/taskflow/internal/projection"
	"github.com/jsamuelsen11/taskflow/internal/routing"
)

// consumeBackoff is the pause after a failed Consume.
const consumeBackoff = 500 * time.Millisecond

// shardBuffer is the queue length of one delivery shard.
const shardBuffer = 64

// WorkflowObserver folds routed events into workflow instances.
type WorkflowObserver interface {
	Observe(ctx context.Context, processID string, env event.Envelope) error
}

// ProcessorConfig tunes an EventProcessor.
type ProcessorConfig struct {
	// Workers is the number of delivery shards Run applies deliveries on.
	Workers int
	// Fanout bounds the deliveries of one event ProcessNext applies at
	// once, and the events Run holds in flight across its shards.
	Fanout int
}

// EventProcessor consumes events, enriches and routes them, and applies
// every delivery to its read model or workflow instance. A message is
// acknowledged only after every delivery was applied; any failure Nacks it
// for redelivery, which the idempotent folds absorb.
//
// Run enriches and routes events one at a time in queue order, then hands
// each delivery to the shard its identity hashes to. A shard applies its
// deliveries in the order it received them, so the events of one identity
// are folded in the order they were published while distinct identities
// proceed in parallel.
type EventProcessor struct {
	source    ports.EventSource
	supplier  ports.EnrichmentSupplier
	router    *routing.Router
	views     map[string]projection.Projection
	store     ports.ViewStore
	workflows WorkflowObserver
	cfg       ProcessorConfig
	metrics   *telemetry.Metrics
	logger    *slog.Logger
	locks     *keyed.Locker
}

// NewEventProcessor builds the router from the projections and the
// coordinator's table. A routing registration defect is returned here and
// must stop the service.
func NewEventProcessor(
	source ports.EventSource,
	supplier ports.EnrichmentSupplier,
	store ports.ViewStore,
	workflows WorkflowObserver,
	projections []projection.Projection,
	cfg ProcessorConfig,
	metrics *telemetry.Metrics,
	logger *slog.Logger,
) (*EventProcessor, error) {
	tables := make([]routing.Table, 0, len(projections)+1)
	for _, p := range projections {
		tables = append(tables, p.Table())
	}
	tables = append(tables, workflow.Routes())

	router, err := routing.New(tables...)
	if err != nil {
		return nil, fmt.Errorf("building event router: %w", err)
	}

	cfg.Workers = max(cfg.Workers, 1)
	cfg.Fanout = max(cfg.Fanout, 1)

	return &EventProcessor{
		source:    source,
		supplier:  supplier,
		router:    router,
		views:     projection.ByName(projections),
		store:     store,
		workflows: workflows,
		cfg:       cfg,
		metrics:   metrics,
		logger:    logger,
		locks:     keyed.NewLocker(),
	}, nil
}

// Run consumes until ctx is canceled, which returns nil, or until a fatal
// error such as routing.ErrMissingEnrichment, which is returned. Deliveries
// already handed to a shard are applied before Run returns.
func (p *EventProcessor) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	shards := make([]chan shardJob, p.cfg.Workers)
	for i := range shards {
		shards[i] = make(chan shardJob, shardBuffer)
		g.Go(func() error {
			for job := range shards[i] {
				err := p.applyDelivery(job.inflight.ctx, job.delivery, job.inflight.env, job.inflight.aux, job.inflight.logger)
				p.complete(job.inflight, err)
			}
			return nil
		})
	}

	g.Go(func() error {
		defer func() {
			for _, shard := range shards {
				close(shard)
			}
		}()
		return p.consume(ctx, shards)
	})

	err := g.Wait()
	if err != nil {
		p.logger.Error("event processor stopped",
			slog.String("operation", "EventProcessor.Run"),
			slog.Any("error", err),
		)
	}
	return err
}

// consume is the single reader of the event source. Holding the order of
// the queue here is what keeps every identity's deliveries in order.
func (p *EventProcessor) consume(ctx context.Context, shards []chan shardJob) error {
	ctx = logging.WithLogger(ctx, p.logger)
	window := make(chan struct{}, p.cfg.Fanout)
	for {
		select {
		case window <- struct{}{}:
		case <-ctx.Done():
			return nil
		}

		msg, err := p.source.Consume(ctx)
		if err != nil {
			<-window
			if ctx.Err() != nil {
				return nil
			}
			p.logger.WarnContext(ctx, "consuming event failed", slog.Any("error", err))
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(consumeBackoff):
			}
			continue
		}

		in := p.begin(ctx, msg)
		in.release = func() { <-window }
		if err := p.scatter(ctx, in, shards); err != nil {
			return err
		}
	}
}

// scatter routes one message and queues its deliveries on their shards.
func (p *EventProcessor) scatter(ctx context.Context, in *inflight, shards []chan shardJob) error {
	deliveries, err := p.route(in.ctx, in)
	if err != nil || len(deliveries) == 0 {
		p.finish(in, err)
		if errors.Is(err, routing.ErrMissingEnrichment) {
			return err
		}
		return nil
	}

	in.pending.Store(int32(len(deliveries)))
	for i, d := range deliveries {
		select {
		case shards[shardOf(d, len(shards))] <- shardJob{inflight: in, delivery: d}:
		case <-ctx.Done():
			for range deliveries[i:] {
				p.complete(in, ctx.Err())
			}
			return nil
		}
	}
	return nil
}

// shardOf maps a delivery to a shard. Every delivery for one identity maps
// to the same shard.
func shardOf(d routing.Delivery, n int) int {
	return int(xxhash.Sum64String(d.String()) % uint64(n))
}

// ProcessNext consumes and handles exactly one message, applying its
// deliveries before it returns. It returns an error only when consuming
// failed or the failure is fatal; recoverable failures are Nacked and
// logged.
func (p *EventProcessor) ProcessNext(ctx context.Context) error {
	msg, err := p.source.Consume(ctx)
	if err != nil {
		return err
	}

	in := p.begin(ctx, msg)
	deliveries, err := p.route(in.ctx, in)
	if err == nil {
		results := keyed.Run(in.ctx, p.cfg.Fanout, deliveries, routing.Delivery.String,
			func(ctx context.Context, d routing.Delivery) (struct{}, error) {
				return struct{}{}, p.applyDelivery(ctx, d, in.env, in.aux, in.logger)
			})
		err = keyed.FirstError(results)
	}
	p.finish(in, err)

	if errors.Is(err, routing.ErrMissingEnrichment) {
		return err
	}
	return nil
}

// inflight is one consumed message whose deliveries are not all applied.
type inflight struct {
	msg     ports.EventMessage
	env     event.Envelope
	aux     *event.Enrichment
	ctx     context.Context
	span    trace.Span
	logger  *slog.Logger
	started time.Time
	release func()

	pending atomic.Int32
	mu      sync.Mutex
	err     error
}

type shardJob struct {
	inflight *inflight
	delivery routing.Delivery
}

func (p *EventProcessor) begin(ctx context.Context, msg ports.EventMessage) *inflight {
	env := msg.Envelope()
	logger := logging.FromContext(ctx).With(
		slog.String("event_id", env.ID),
		slog.String("kind", env.Kind.String()),
	)
	ctx, span := otel.GetTracerProvider().Tracer("event-processor").Start(ctx, "event "+env.Kind.String(),
		trace.WithSpanKind(trace.SpanKindConsumer),
		trace.WithAttributes(
			attribute.String("event.id", env.ID),
			attribute.String("event.kind", env.Kind.String()),
			attribute.String("entity.id", env.EntityID),
		),
	)
	return &inflight{
		msg:     msg,
		env:     env,
		ctx:     logging.WithLogger(ctx, logger),
		span:    span,
		logger:  logger,
		started: time.Now(),
	}
}

// route enriches the message and resolves its deliveries.
func (p *EventProcessor) route(ctx context.Context, in *inflight) ([]routing.Delivery, error) {
	aux, err := p.supplier.Enrich(ctx, in.env)
	if err != nil {
		return nil, fmt.Errorf("enriching: %w", err)
	}
	in.aux = aux

	deliveries, err := p.router.Route(in.env, aux)
	if err != nil {
		return nil, err
	}
	in.logger.DebugContext(ctx, "event routed", slog.Int("deliveries", len(deliveries)))
	return deliveries, nil
}

// complete records the outcome of one delivery and settles the message
// after its last one.
func (p *EventProcessor) complete(in *inflight, err error) {
	if err != nil {
		in.mu.Lock()
		if in.err == nil {
			in.err = err
		}
		in.mu.Unlock()
	}
	if in.pending.Add(-1) > 0 {
		return
	}
	in.mu.Lock()
	err = in.err
	in.mu.Unlock()
	p.finish(in, err)
}

// finish acknowledges or rejects the message and closes its span. Settling
// outlives cancellation so a shutdown still hands messages back.
func (p *EventProcessor) finish(in *inflight, err error) {
	ctx := context.WithoutCancel(in.ctx)
	defer in.span.End()
	if in.release != nil {
		defer in.release()
	}

	result := "ack"
	if err != nil {
		result = "nack"
		in.span.RecordError(err)
		in.span.SetStatus(codes.Error, err.Error())
		in.logger.ErrorContext(ctx, "event processing failed",
			slog.String("operation", "EventProcessor.handle"),
			slog.Any("error", err),
		)
		if nerr := in.msg.Nack(ctx, err); nerr != nil {
			in.logger.ErrorContext(ctx, "failed to nack event", slog.Any("error", nerr))
		}
	} else if aerr := in.msg.Ack(ctx); aerr != nil {
		in.logger.ErrorContext(ctx, "failed to ack event", slog.Any("error", aerr))
	}

	p.metrics.EventProcessingDuration.Record(ctx, time.Since(in.started).Seconds(), metric.WithAttributes(
		telemetry.AttrEventKind.String(in.env.Kind.String()),
		telemetry.AttrResult.String(result),
	))
}

// applyDelivery applies one delivery and records its outcome.
func (p *EventProcessor) applyDelivery(ctx context.Context, d routing.Delivery, env event.Envelope, aux *event.Enrichment, logger *slog.Logger) error {
	err := p.deliver(ctx, d, env, aux)
	result := "applied"
	if err != nil {
		result = "failed"
		logger.ErrorContext(ctx, "delivery failed",
			slog.String("operation", "EventProcessor.deliver"),
			slog.String("target", d.String()),
			slog.Any("error", err),
		)
	}
	p.metrics.EventDeliveries.Add(ctx, 1, metric.WithAttributes(
		telemetry.AttrEventKind.String(env.Kind.String()),
		telemetry.AttrTarget.String(d.Target),
		telemetry.AttrResult.String(result),
	))
	return err
}

func (p *EventProcessor) deliver(ctx context.Context, d routing.Delivery, env event.Envelope, aux *event.Enrichment) error {
	if d.Target == workflow.Target {
		return p.workflows.Observe(ctx, d.ID, env)
	}

	view, ok := p.views[d.Target]
	if !ok {
		return fmt.Errorf("no read model registered for target %q", d.Target)
	}

	unlock := p.locks.Lock(d.String())
	defer unlock()

	prior, err := p.store.Load(ctx, d.Target, d.ID)
	if err != nil {
		return fmt.Errorf("loading %s: %w", d, err)
	}
	next := view.Fold(d.ID, prior, env, aux)
	if next.Version == prior.Version {
		return nil
	}
	if err := p.store.Save(ctx, next); err != nil {
		return fmt.Errorf("saving %s: %w", d, err)
	}
	return nil
}
