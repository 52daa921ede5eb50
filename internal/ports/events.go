package ports

import (
	"context"

	"github.com/jsamuelsen11/taskflow/internal/domain/event"
)

// EventPublisher appends events to the delivery channel.
type EventPublisher interface {
	Publish(ctx context.Context, envs ...event.Envelope) error
}

// EventMessage is one delivery of an event. Exactly one of Ack or Nack must
// be called; a Nacked message is delivered again later.
type EventMessage interface {
	Envelope() event.Envelope
	Ack(ctx context.Context) error
	Nack(ctx context.Context, cause error) error
}

// EventSource is the consuming side of the delivery channel. Delivery is at
// least once and unordered across entities.
type EventSource interface {
	// Consume blocks until a message is available or ctx is done.
	Consume(ctx context.Context) (EventMessage, error)
}

// EventQueue is a delivery channel usable from both sides.
type EventQueue interface {
	EventPublisher
	EventSource
}

// EnrichmentSupplier attaches the auxiliary data derived routing rules and
// folds need. Enrich is called exactly once per delivery, in consumption
// order, before the event is routed; it must be deterministic for a given
// sequence of events and tolerate redelivery.
type EnrichmentSupplier interface {
	Enrich(ctx context.Context, env event.Envelope) (*event.Enrichment, error)
}
