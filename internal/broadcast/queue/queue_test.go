package queue

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"broadcast/internal/broadcast"
	"broadcast/mocks"
)

func TestCouchbase_EnqueueWritesOneEnvelope(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	controller := mocks.NewMockController(ctrl)
	q, err := NewCouchbase(controller, zap.NewNop())
	req.NoError(err)
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	q.now = func() time.Time { return fixed }

	payload := broadcast.Serialize(broadcast.NewMessageEvent(1, "Hello from server!"))

	// Given offset 7 is the next free slot on message-box
	controller.EXPECT().ReserveOffset(gomock.Any(), "message-box").Return(uint64(7), nil).Times(1)
	// Then exactly one envelope is written at that offset with the untouched payload
	controller.EXPECT().InsertEnvelope(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, env broadcast.Envelope) error {
			req.Equal("envelope::message-box::7", env.ID)
			req.Equal("message-box", env.Channel)
			req.Equal(uint64(7), env.Offset)
			req.Equal(payload, env.Payload)
			req.NotEmpty(env.DispatchID)
			req.Equal(fixed, *env.QueuedAt)
			return nil
		}).Times(1)

	req.NoError(q.Enqueue(context.Background(), broadcast.NewChannel("message-box"), payload))
}

func TestCouchbase_EnqueueFailures(t *testing.T) {
	ctrl := gomock.NewController(t)
	controller := mocks.NewMockController(ctrl)
	q, err := NewCouchbase(controller, zap.NewNop())
	require.NoError(t, err)
	channel := broadcast.NewChannel("message-box")

	reserveErr := errors.New("counter unavailable")
	controller.EXPECT().ReserveOffset(gomock.Any(), "message-box").Return(uint64(0), reserveErr)
	require.ErrorIs(t, q.Enqueue(context.Background(), channel, broadcast.Payload{}), reserveErr)

	insertErr := errors.New("kv timeout")
	controller.EXPECT().ReserveOffset(gomock.Any(), "message-box").Return(uint64(1), nil)
	controller.EXPECT().InsertEnvelope(gomock.Any(), gomock.Any()).Return(insertErr)
	require.ErrorIs(t, q.Enqueue(context.Background(), channel, broadcast.Payload{}), insertErr)
}

type collectSink struct {
	mu         sync.Mutex
	deliveries []broadcast.Delivery
	done       chan struct{}
	want       int
}

func (s *collectSink) Deliver(_ context.Context, d broadcast.Delivery) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deliveries = append(s.deliveries, d)
	if len(s.deliveries) == s.want {
		close(s.done)
	}
	return nil
}

func TestLocal_DeliversToSink(t *testing.T) {
	sink := &collectSink{done: make(chan struct{}), want: 2}
	q, err := NewLocal(sink, zap.NewNop(), 8, 2)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	runErr := make(chan error, 1)
	go func() { runErr <- q.Run(ctx) }()

	channel := broadcast.NewChannel("message-box")
	require.NoError(t, q.Enqueue(ctx, channel, broadcast.Serialize(broadcast.NewMessageEvent(1, "a"))))
	require.NoError(t, q.Enqueue(ctx, channel, broadcast.Serialize(broadcast.NewMessageEvent(2, "b"))))

	select {
	case <-sink.done:
	case <-time.After(time.Second):
		require.Fail(t, "deliveries did not arrive in time")
	}

	cancel()
	require.NoError(t, <-runErr)
	require.ErrorIs(t, q.Enqueue(context.Background(), channel, broadcast.Payload{}), broadcast.ErrQueueClosed)
	require.Len(t, sink.deliveries, 2)
}

func TestLocal_FullBufferFailsFast(t *testing.T) {
	ctrl := gomock.NewController(t)
	sink := mocks.NewMockSink(ctrl)
	q, err := NewLocal(sink, zap.NewNop(), 1, 1)
	require.NoError(t, err)
	channel := broadcast.NewChannel("message-box")

	// Run is not started, so nothing drains the buffer
	require.NoError(t, q.Enqueue(context.Background(), channel, broadcast.Payload{"sender_id": int64(1)}))
	require.ErrorIs(t, q.Enqueue(context.Background(), channel, broadcast.Payload{"sender_id": int64(2)}), broadcast.ErrQueueFull)
	require.Equal(t, 1, q.Len())
}

func TestLocal_CancelledContext(t *testing.T) {
	ctrl := gomock.NewController(t)
	q, err := NewLocal(mocks.NewMockSink(ctrl), zap.NewNop(), 1, 1)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.ErrorIs(t, q.Enqueue(ctx, broadcast.NewChannel("message-box"), broadcast.Payload{}), context.Canceled)
	require.Zero(t, q.Len())
}

func TestLocal_DrainsBufferOnShutdown(t *testing.T) {
	ctrl := gomock.NewController(t)
	sink := mocks.NewMockSink(ctrl)
	q, err := NewLocal(sink, zap.NewNop(), 4, 1)
	require.NoError(t, err)
	channel := broadcast.NewChannel("message-box")

	require.NoError(t, q.Enqueue(context.Background(), channel, broadcast.Payload{"sender_id": int64(1)}))
	require.NoError(t, q.Enqueue(context.Background(), channel, broadcast.Payload{"sender_id": int64(2)}))

	// Then both buffered payloads are still delivered although ctx is already done
	sink.EXPECT().Deliver(gomock.Any(), gomock.Any()).Return(nil).Times(2)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, q.Run(ctx))
}

func TestLocal_RunsOnce(t *testing.T) {
	ctrl := gomock.NewController(t)
	q, err := NewLocal(mocks.NewMockSink(ctrl), zap.NewNop(), 4, 2)
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// When Run is called twice, the call that loses the race returns at once
	results := make(chan error, 2)
	go func() { results <- q.Run(ctx) }()
	go func() { results <- q.Run(ctx) }()

	select {
	case err := <-results:
		require.ErrorIs(t, err, ErrAlreadyRunning)
	case <-time.After(5 * time.Second):
		t.Fatal("second Run did not return")
	}

	// Then the running one drains and stops on cancel
	cancel()
	select {
	case err := <-results:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not stop")
	}

	// And a stopped queue cannot be restarted
	require.ErrorIs(t, q.Run(context.Background()), broadcast.ErrQueueClosed)
}
