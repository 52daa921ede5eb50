// Package azqueue provides the event delivery channel on Azure Storage
// Queues. A consumed message stays invisible for the visibility timeout;
// Ack deletes it and Nack makes it visible again at once.
package azqueue

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azqueue"

	"github.com/jsamuelsen11/taskflow/internal/domain/event"
	"github.com/jsamuelsen11/taskflow/internal/platform/logging"
	"github.com/jsamuelsen11/taskflow/internal/ports"
)

const (
	defaultVisibilityTimeout = 30 * time.Second
	defaultPollInterval      = time.Second
)

// queueAPI is the subset of *azqueue.QueueClient used by Queue.
type queueAPI interface {
	EnqueueMessage(ctx context.Context, content string, o *azqueue.EnqueueMessageOptions) (azqueue.EnqueueMessagesResponse, error)
	DequeueMessage(ctx context.Context, o *azqueue.DequeueMessageOptions) (azqueue.DequeueMessagesResponse, error)
	DeleteMessage(ctx context.Context, messageID, popReceipt string, o *azqueue.DeleteMessageOptions) (azqueue.DeleteMessageResponse, error)
	UpdateMessage(ctx context.Context, messageID, popReceipt, content string, o *azqueue.UpdateMessageOptions) (azqueue.UpdateMessageResponse, error)
	GetProperties(ctx context.Context, o *azqueue.GetQueuePropertiesOptions) (azqueue.GetQueuePropertiesResponse, error)
}

// Config configures a Queue.
type Config struct {
	ConnectionString  string
	QueueName         string
	VisibilityTimeout time.Duration
	PollInterval      time.Duration

	// MaxDeliveries moves a message to the poison queue once it was
	// dequeued that many times. Zero disables the limit.
	MaxDeliveries int

	// PoisonQueueName defaults to QueueName + "-poison".
	PoisonQueueName string
}

// Queue implements ports.EventQueue.
type Queue struct {
	client     queueAPI
	poison     queueAPI
	visibility time.Duration
	poll       time.Duration
	maxDeliver int
}

var (
	_ ports.EventQueue    = (*Queue)(nil)
	_ ports.HealthChecker = (*Queue)(nil)
)

// New connects to the queues named in cfg.
func New(cfg Config) (*Queue, error) {
	if cfg.ConnectionString == "" || cfg.QueueName == "" {
		return nil, errors.New("azqueue: connection string and queue name are required")
	}

	opts := azqueue.ClientOptions{
		ClientOptions: azcore.ClientOptions{
			Retry: policy.RetryOptions{
				MaxRetries:    5,
				TryTimeout:    time.Minute,
				RetryDelay:    time.Second,
				MaxRetryDelay: 30 * time.Second,
				StatusCodes:   []int{408, 429, 500, 502, 503, 504},
			},
		},
	}

	client, err := azqueue.NewQueueClientFromConnectionString(cfg.ConnectionString, cfg.QueueName, &opts)
	if err != nil {
		return nil, fmt.Errorf("azqueue client: %w", err)
	}

	poisonName := cfg.PoisonQueueName
	if poisonName == "" {
		poisonName = cfg.QueueName + "-poison"
	}
	poison, err := azqueue.NewQueueClientFromConnectionString(cfg.ConnectionString, poisonName, &opts)
	if err != nil {
		return nil, fmt.Errorf("azqueue poison client: %w", err)
	}

	return newQueue(client, poison, cfg), nil
}

func newQueue(client, poison queueAPI, cfg Config) *Queue {
	q := &Queue{
		client:     client,
		poison:     poison,
		visibility: cfg.VisibilityTimeout,
		poll:       cfg.PollInterval,
		maxDeliver: cfg.MaxDeliveries,
	}
	if q.visibility <= 0 {
		q.visibility = defaultVisibilityTimeout
	}
	if q.poll <= 0 {
		q.poll = defaultPollInterval
	}
	return q
}

// Publish implements ports.EventPublisher.
func (q *Queue) Publish(ctx context.Context, envs ...event.Envelope) error {
	for _, env := range envs {
		data, err := event.Marshal(env)
		if err != nil {
			return err
		}
		if _, err := q.client.EnqueueMessage(ctx, string(data), nil); err != nil {
			return fmt.Errorf("enqueue event %s: %w", env.ID, err)
		}
	}
	return nil
}

// Consume implements ports.EventSource. It polls until a decodable message
// arrives or ctx is done. Messages that cannot be decoded are moved to the
// poison queue.
func (q *Queue) Consume(ctx context.Context) (ports.EventMessage, error) {
	visibility := int32(q.visibility / time.Second)
	for {
		resp, err := q.client.DequeueMessage(ctx, &azqueue.DequeueMessageOptions{VisibilityTimeout: &visibility})
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			return nil, fmt.Errorf("dequeue: %w", err)
		}

		if len(resp.Messages) > 0 {
			msg, err := q.wrap(resp.Messages[0])
			if err == nil {
				return msg, nil
			}
			logging.FromContext(ctx).WarnContext(ctx, "discarding undecodable event message",
				slog.String("operation", "azqueue.Consume"),
				slog.Any("error", err),
			)
			continue
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(q.poll):
		}
	}
}

func (q *Queue) wrap(m *azqueue.DequeuedMessage) (*message, error) {
	if m == nil || m.MessageID == nil || m.PopReceipt == nil || m.MessageText == nil {
		return nil, errors.New("dequeued message is incomplete")
	}
	msg := &message{
		queue:   q,
		id:      *m.MessageID,
		receipt: *m.PopReceipt,
		text:    *m.MessageText,
	}
	if m.DequeueCount != nil {
		msg.deliveries = *m.DequeueCount
	}

	env, err := event.Unmarshal([]byte(msg.text))
	if err != nil {
		// A fresh context: the message must not stay on the main queue when
		// the consumer is shutting down.
		if perr := msg.toPoison(context.Background()); perr != nil {
			return nil, errors.Join(err, perr)
		}
		return nil, err
	}
	msg.env = env
	return msg, nil
}

// Name implements ports.HealthChecker.
func (q *Queue) Name() string {
	return "event-queue"
}

// HealthCheck implements ports.HealthChecker.
func (q *Queue) HealthCheck(ctx context.Context) error {
	if _, err := q.client.GetProperties(ctx, nil); err != nil {
		return fmt.Errorf("queue properties: %w", err)
	}
	return nil
}

type message struct {
	queue      *Queue
	id         string
	receipt    string
	text       string
	deliveries int64
	env        event.Envelope
}

func (m *message) Envelope() event.Envelope {
	return m.env
}

func (m *message) Ack(ctx context.Context) error {
	if _, err := m.queue.client.DeleteMessage(ctx, m.id, m.receipt, nil); err != nil {
		return fmt.Errorf("delete message %s: %w", m.id, err)
	}
	return nil
}

func (m *message) Nack(ctx context.Context, cause error) error {
	if m.queue.maxDeliver > 0 && m.deliveries >= int64(m.queue.maxDeliver) {
		logging.FromContext(ctx).ErrorContext(ctx, "event exhausted deliveries, moving to poison queue",
			slog.String("operation", "azqueue.Nack"),
			slog.String("event_id", m.env.ID),
			slog.Int64("deliveries", m.deliveries),
			slog.Any("error", cause),
		)
		return m.toPoison(ctx)
	}

	var visible int32
	if _, err := m.queue.client.UpdateMessage(ctx, m.id, m.receipt, m.text,
		&azqueue.UpdateMessageOptions{VisibilityTimeout: &visible}); err != nil {
		return fmt.Errorf("release message %s: %w", m.id, err)
	}
	return nil
}

func (m *message) toPoison(ctx context.Context) error {
	if _, err := m.queue.poison.EnqueueMessage(ctx, m.text, nil); err != nil {
		return fmt.Errorf("poison message %s: %w", m.id, err)
	}
	if _, err := m.queue.client.DeleteMessage(ctx, m.id, m.receipt, nil); err != nil {
		return fmt.Errorf("delete message %s: %w", m.id, err)
	}
	return nil
}
