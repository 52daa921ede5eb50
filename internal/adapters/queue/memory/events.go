package memory

import (
	"context"
	"fmt"

	"github.com/jsamuelsen11/taskflow/internal/domain/event"
	"github.com/jsamuelsen11/taskflow/internal/ports"
)

// EventQueue is the in-process event delivery channel.
type EventQueue struct {
	*Queue[event.Envelope]
}

var _ ports.EventQueue = (*EventQueue)(nil)

// NewEventQueue returns an event delivery channel configured by config.
func NewEventQueue(config Config) *EventQueue {
	return &EventQueue{Queue: NewQueue[event.Envelope](config)}
}

// Publish implements ports.EventPublisher. Envelopes are enqueued in order;
// the first failure stops the batch.
func (q *EventQueue) Publish(ctx context.Context, envs ...event.Envelope) error {
	for _, env := range envs {
		if err := q.Queue.Publish(ctx, env); err != nil {
			return fmt.Errorf("publishing event %s: %w", env.ID, err)
		}
	}
	return nil
}

// Consume implements ports.EventSource.
func (q *EventQueue) Consume(ctx context.Context) (ports.EventMessage, error) {
	msg, err := q.Queue.Consume(ctx)
	if err != nil {
		return nil, err
	}
	return eventMessage{msg: msg}, nil
}

type eventMessage struct {
	msg *Message[event.Envelope]
}

func (m eventMessage) Envelope() event.Envelope {
	return *m.msg.T()
}

func (m eventMessage) Ack(context.Context) error {
	return m.msg.Ack()
}

func (m eventMessage) Nack(_ context.Context, cause error) error {
	return m.msg.Nack(cause)
}
