package queue

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"broadcast/internal/broadcast"
	"broadcast/internal/validator"
)

// Couchbase is a durable broadcast.Queue. Every enqueue reserves the next
// offset on the channel log and writes one envelope there; relays deliver
// it to subscribers later.
type Couchbase struct {
	controller broadcast.Controller
	logger     *zap.Logger
	now        func() time.Time
}

var _ broadcast.Queue = (*Couchbase)(nil)

func NewCouchbase(controller broadcast.Controller, logger *zap.Logger) (*Couchbase, error) {
	q := Couchbase{
		controller: controller,
		logger:     logger,
		now:        time.Now,
	}

	if err := validator.Validate("couchbase queue", q.controller, q.logger); err != nil {
		return nil, fmt.Errorf("failed to validate couchbase queue deps: %w", err)
	}

	q.logger = q.logger.Named("couchbase-queue")

	return &q, nil
}

// Enqueue appends payload to the channel log. A reserved offset whose insert
// fails is left as a gap, which relays skip once it outlives their gap
// timeout.
func (q *Couchbase) Enqueue(ctx context.Context, channel broadcast.Channel, payload broadcast.Payload) error {
	next, err := q.controller.ReserveOffset(ctx, channel.Name)
	if err != nil {
		return fmt.Errorf("failed to reserve offset for channel %s: %w", channel.Name, err)
	}

	env := broadcast.Envelope{
		ID:         broadcast.EnvelopeKey(channel.Name, next),
		Channel:    channel.Name,
		Offset:     next,
		DispatchID: uuid.NewString(),
		Payload:    payload,
		QueuedAt:   ptr(q.now().UTC()),
	}

	if err := q.controller.InsertEnvelope(ctx, env); err != nil {
		return fmt.Errorf("failed to insert envelope with ID %s: %w", env.ID, err)
	}

	q.logger.Debug("envelope queued",
		zap.String("channel", channel.Name),
		zap.Uint64("offset", next),
		zap.String("dispatchId", env.DispatchID),
	)

	return nil
}

func ptr[T any](v T) *T {
	return &v
}
