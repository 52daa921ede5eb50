package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen11/taskflow/internal/domain/event"
)

type testPayload struct {
	ID    string
	Count int
}

func testConfig() Config {
	config := DefaultConfig()
	config.RetryDelay = 5 * time.Millisecond
	return config
}

func consumeWithin(t *testing.T, q *Queue[testPayload], d time.Duration) *Message[testPayload] {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), d)
	defer cancel()
	msg, err := q.Consume(ctx)
	require.NoError(t, err)
	return msg
}

func TestQueue_PublishConsumeAck(t *testing.T) {
	t.Parallel()
	q := NewQueue[testPayload](testConfig())
	ctx := context.Background()

	require.NoError(t, q.Publish(ctx, testPayload{ID: "a", Count: 1}))
	assert.Equal(t, 1, q.Size())
	assert.Equal(t, 1, q.Outstanding())

	msg := consumeWithin(t, q, time.Second)
	assert.Equal(t, 0, q.Size())
	assert.Equal(t, 1, q.Outstanding())
	assert.Equal(t, "a", msg.T().ID)
	assert.Equal(t, 1, msg.Delivery())
	assert.NotEmpty(t, msg.ID())

	require.NoError(t, msg.Ack())
	assert.Equal(t, 0, q.Outstanding())
	assert.ErrorIs(t, msg.Ack(), ErrAlreadySettled)
	assert.ErrorIs(t, msg.Nack(nil), ErrAlreadySettled)
}

func TestQueue_RedeliveryThenDeadLetter(t *testing.T) {
	t.Parallel()
	config := testConfig()
	config.MaxDeliveries = 3
	q := NewQueue[testPayload](config)
	ctx := context.Background()

	require.NoError(t, q.Publish(ctx, testPayload{ID: "retry"}))

	var ids []string
	for want := 1; want <= 3; want++ {
		msg := consumeWithin(t, q, time.Second)
		assert.Equal(t, want, msg.Delivery())
		ids = append(ids, msg.ID())
		require.NoError(t, msg.Nack(fmt.Errorf("attempt %d", want)))
	}

	assert.Equal(t, ids[0], ids[1])
	assert.Equal(t, ids[0], ids[2])
	assert.Equal(t, 0, q.Outstanding())

	dead := q.DeadLetters()
	require.Len(t, dead, 1)
	assert.Equal(t, "retry", dead[0].Payload.ID)
	assert.Equal(t, 3, dead[0].Deliveries)
	assert.EqualError(t, dead[0].Cause, "attempt 3")

	_, ok := q.TryConsume()
	assert.False(t, ok)
}

func TestQueue_DeadLetterDisabled(t *testing.T) {
	t.Parallel()
	config := testConfig()
	config.MaxDeliveries = 1
	config.DeadLetter = false
	q := NewQueue[testPayload](config)

	require.NoError(t, q.Publish(context.Background(), testPayload{ID: "x"}))
	msg := consumeWithin(t, q, time.Second)
	require.NoError(t, msg.Nack(errors.New("boom")))

	assert.Equal(t, 0, q.DLQSize())
	assert.Equal(t, 0, q.Outstanding())
}

func TestQueue_ConsumeHonorsContext(t *testing.T) {
	t.Parallel()
	q := NewQueue[testPayload](testConfig())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := q.Consume(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestQueue_PublishAfterClose(t *testing.T) {
	t.Parallel()
	config := testConfig()
	config.QueueBuffer = 1
	q := NewQueue[testPayload](config)
	ctx := context.Background()

	require.NoError(t, q.Publish(ctx, testPayload{ID: "fills buffer"}))
	q.Close()
	q.Close()

	assert.ErrorIs(t, q.Publish(ctx, testPayload{ID: "rejected"}), ErrClosed)
	assert.Equal(t, 1, q.Outstanding())
}

func TestQueue_Concurrency(t *testing.T) {
	t.Parallel()
	q := NewQueue[testPayload](testConfig())
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	const producers, perProducer = 8, 25
	var wg sync.WaitGroup

	for p := range producers {
		wg.Go(func() {
			for i := range perProducer {
				if err := q.Publish(ctx, testPayload{ID: fmt.Sprintf("p%d-%d", p, i)}); err != nil {
					t.Errorf("publish: %v", err)
				}
			}
		})
	}

	var mu sync.Mutex
	seen := make(map[string]int)
	for range producers {
		wg.Go(func() {
			for range perProducer {
				msg, err := q.Consume(ctx)
				if err != nil {
					t.Errorf("consume: %v", err)
					return
				}
				mu.Lock()
				seen[msg.T().ID]++
				mu.Unlock()
				assert.NoError(t, msg.Ack())
			}
		})
	}

	wg.Wait()
	assert.Len(t, seen, producers*perProducer)
	assert.Equal(t, 0, q.Outstanding())
}

func TestEventQueue(t *testing.T) {
	t.Parallel()
	q := NewEventQueue(testConfig())
	ctx := context.Background()

	envs := []event.Envelope{
		{ID: "e1", Kind: event.KindDraftCreated, EntityID: "t1", Sequence: 1, Payload: event.DraftCreated{TaskID: "t1"}},
		{ID: "e2", Kind: event.KindDraftFinalized, EntityID: "t1", Sequence: 2, Payload: event.DraftFinalized{TaskID: "t1"}},
	}
	require.NoError(t, q.Publish(ctx, envs...))
	assert.Equal(t, 2, q.Outstanding())

	first, err := q.Consume(ctx)
	require.NoError(t, err)
	assert.Equal(t, "e1", first.Envelope().ID)
	require.NoError(t, first.Ack(ctx))

	second, err := q.Consume(ctx)
	require.NoError(t, err)
	assert.Equal(t, "e2", second.Envelope().ID)
	require.NoError(t, second.Nack(ctx, errors.New("later")))

	cctx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()
	again, err := q.Consume(cctx)
	require.NoError(t, err)
	assert.Equal(t, "e2", again.Envelope().ID)
	require.NoError(t, again.Ack(ctx))
	assert.Equal(t, 0, q.Outstanding())
}
