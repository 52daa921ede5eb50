// Package memory provides an in-process at-least-once queue and the event
// delivery channel built on it.
package memory

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrAlreadySettled is returned when Ack or Nack is called on a message that
// was already acknowledged or rejected.
var ErrAlreadySettled = errors.New("queue: message already settled")

// ErrClosed is returned by Publish after Close.
var ErrClosed = errors.New("queue: closed")

// Config configures a Queue.
type Config struct {
	// MaxDeliveries bounds how often one message is handed to a consumer.
	// A message Nacked on its last delivery is dead-lettered. Zero or less
	// redelivers forever.
	MaxDeliveries int

	// RetryDelay is the pause before a Nacked message becomes visible again.
	RetryDelay time.Duration

	// DeadLetter keeps messages that exhausted their deliveries.
	DeadLetter bool

	// QueueBuffer is the channel capacity.
	QueueBuffer int
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		MaxDeliveries: 5,
		RetryDelay:    100 * time.Millisecond,
		DeadLetter:    true,
		QueueBuffer:   1024,
	}
}

// Message is one delivery of a payload.
type Message[T any] struct {
	id        string
	payload   T
	delivery  int
	queue     *Queue[T]
	mu        sync.Mutex
	settled   bool
	createdAt time.Time
}

// ID returns the message id. It is stable across redeliveries.
func (m *Message[T]) ID() string {
	return m.id
}

// T returns the payload.
func (m *Message[T]) T() *T {
	return &m.payload
}

// Delivery returns the 1-based delivery attempt.
func (m *Message[T]) Delivery() int {
	return m.delivery
}

// Ack settles the message as processed.
func (m *Message[T]) Ack() error {
	if err := m.settle(); err != nil {
		return err
	}
	m.queue.done()
	return nil
}

// Nack settles the message as failed and schedules a redelivery, or moves it
// to the dead-letter list once MaxDeliveries is reached.
func (m *Message[T]) Nack(cause error) error {
	if err := m.settle(); err != nil {
		return err
	}

	q := m.queue
	if q.config.MaxDeliveries > 0 && m.delivery >= q.config.MaxDeliveries {
		q.deadLetter(DeadLetter[T]{ID: m.id, Payload: m.payload, Deliveries: m.delivery, Cause: cause})
		q.done()
		return nil
	}

	next := &Message[T]{
		id:        m.id,
		payload:   m.payload,
		delivery:  m.delivery + 1,
		queue:     q,
		createdAt: time.Now(),
	}
	time.AfterFunc(q.config.RetryDelay, func() { q.requeue(next) })
	return nil
}

func (m *Message[T]) settle() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.settled {
		return ErrAlreadySettled
	}
	m.settled = true
	return nil
}

// DeadLetter is a message that exhausted its deliveries.
type DeadLetter[T any] struct {
	ID         string
	Payload    T
	Deliveries int
	Cause      error
}

// Queue is an in-memory at-least-once queue. Ordering holds for messages
// that are never Nacked; a redelivered message goes to the back.
type Queue[T any] struct {
	messages chan *Message[T]
	config   Config
	closed   chan struct{}
	once     sync.Once

	// outstanding counts published messages not yet Acked or dead-lettered.
	mu          sync.Mutex
	outstanding int

	dlqMu sync.Mutex
	dlq   []DeadLetter[T]
}

// NewQueue creates a queue with config.
func NewQueue[T any](config Config) *Queue[T] {
	if config.QueueBuffer <= 0 {
		config.QueueBuffer = DefaultConfig().QueueBuffer
	}
	if config.RetryDelay < 0 {
		config.RetryDelay = 0
	}

	return &Queue[T]{
		messages: make(chan *Message[T], config.QueueBuffer),
		config:   config,
		closed:   make(chan struct{}),
	}
}

// Publish enqueues t. It blocks while the buffer is full.
func (q *Queue[T]) Publish(ctx context.Context, t T) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := &Message[T]{
		id:        uuid.NewString(),
		payload:   t,
		delivery:  1,
		queue:     q,
		createdAt: time.Now(),
	}

	q.mu.Lock()
	q.outstanding++
	q.mu.Unlock()

	select {
	case q.messages <- msg:
		return nil
	case <-q.closed:
		q.done()
		return ErrClosed
	case <-ctx.Done():
		q.done()
		return ctx.Err()
	}
}

// Consume blocks until a message is available or ctx is done.
func (q *Queue[T]) Consume(ctx context.Context) (*Message[T], error) {
	select {
	case msg := <-q.messages:
		return msg, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// TryConsume returns the next visible message without blocking.
func (q *Queue[T]) TryConsume() (*Message[T], bool) {
	select {
	case msg := <-q.messages:
		return msg, true
	default:
		return nil, false
	}
}

// Size returns the number of visible messages.
func (q *Queue[T]) Size() int {
	return len(q.messages)
}

// Outstanding returns the number of messages that are visible, in flight or
// waiting for redelivery.
func (q *Queue[T]) Outstanding() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.outstanding
}

// DeadLetters returns a copy of the dead-letter list.
func (q *Queue[T]) DeadLetters() []DeadLetter[T] {
	q.dlqMu.Lock()
	defer q.dlqMu.Unlock()
	out := make([]DeadLetter[T], len(q.dlq))
	copy(out, q.dlq)
	return out
}

// DLQSize returns the number of dead-lettered messages.
func (q *Queue[T]) DLQSize() int {
	q.dlqMu.Lock()
	defer q.dlqMu.Unlock()
	return len(q.dlq)
}

// Close stops pending redeliveries and rejects further publishes. Visible
// messages can still be consumed.
func (q *Queue[T]) Close() {
	q.once.Do(func() { close(q.closed) })
}

func (q *Queue[T]) requeue(msg *Message[T]) {
	select {
	case q.messages <- msg:
	case <-q.closed:
		q.done()
	}
}

func (q *Queue[T]) deadLetter(d DeadLetter[T]) {
	if !q.config.DeadLetter {
		return
	}
	q.dlqMu.Lock()
	q.dlq = append(q.dlq, d)
	q.dlqMu.Unlock()
}

func (q *Queue[T]) done() {
	q.mu.Lock()
	q.outstanding--
	q.mu.Unlock()
}
