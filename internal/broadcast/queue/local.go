package queue

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"broadcast/internal/broadcast"
	"broadcast/internal/validator"
)

// ErrAlreadyRunning is returned by Run on a queue whose workers are running.
var ErrAlreadyRunning = errors.New("local queue is already running")

// Local is an in-process broadcast.Queue backed by a bounded buffer and a
// pool of workers delivering to a Sink. Nothing survives a restart.
//
// With more than one worker, deliveries on the same channel may be
// reordered.
type Local struct {
	sink    broadcast.Sink
	logger  *zap.Logger
	workers int
	items   chan broadcast.Delivery

	mu      sync.RWMutex
	running bool
	closed  bool
}

var _ broadcast.Queue = (*Local)(nil)

func NewLocal(sink broadcast.Sink, logger *zap.Logger, size, workers int) (*Local, error) {
	q := Local{
		sink:    sink,
		logger:  logger,
		workers: workers,
	}

	if err := validator.Validate("local queue", q.sink, q.logger, size, q.workers); err != nil {
		return nil, fmt.Errorf("failed to validate local queue deps: %w", err)
	}

	q.items = make(chan broadcast.Delivery, size)
	q.logger = q.logger.Named("local-queue")

	return &q, nil
}

// Enqueue buffers the payload without waiting for delivery. It fails with
// broadcast.ErrQueueFull when the buffer is full.
func (q *Local) Enqueue(ctx context.Context, channel broadcast.Channel, payload broadcast.Payload) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		return broadcast.ErrQueueClosed
	}

	select {
	case q.items <- broadcast.Delivery{Channel: channel, Payload: payload}:
		return nil
	default:
		return broadcast.ErrQueueFull
	}
}

// Len returns the number of buffered deliveries.
func (q *Local) Len() int {
	return len(q.items)
}

// Run delivers buffered payloads until ctx is cancelled. On cancellation the
// queue stops accepting payloads and the workers drain what is already
// buffered before returning. A queue runs once: later calls fail with
// ErrAlreadyRunning while it runs and broadcast.ErrQueueClosed after.
func (q *Local) Run(ctx context.Context) error {
	q.mu.Lock()
	switch {
	case q.closed:
		q.mu.Unlock()
		return broadcast.ErrQueueClosed
	case q.running:
		q.mu.Unlock()
		return ErrAlreadyRunning
	}
	q.running = true
	q.mu.Unlock()

	go func() {
		<-ctx.Done()
		q.mu.Lock()
		q.closed = true
		close(q.items)
		q.mu.Unlock()
	}()

	g := new(errgroup.Group)
	for i := 0; i < q.workers; i++ {
		g.Go(func() error {
			for d := range q.items {
				// Buffered payloads are delivered even after ctx is cancelled.
				if err := q.sink.Deliver(context.WithoutCancel(ctx), d); err != nil {
					q.logger.Error("failed to deliver payload",
						zap.String("channel", d.Channel.Name),
						zap.Error(err),
					)
				}
			}
			return nil
		})
	}

	return g.Wait()
}
