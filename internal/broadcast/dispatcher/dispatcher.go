package dispatcher

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"broadcast/internal/broadcast"
	"broadcast/internal/validator"
)

// Dispatcher hands events to a queue. It holds no per-call state and is safe
// for concurrent use.
type Dispatcher struct {
	queue  broadcast.Queue
	logger *zap.Logger
}

func NewDispatcher(queue broadcast.Queue, logger *zap.Logger) (*Dispatcher, error) {
	d := Dispatcher{
		queue:  queue,
		logger: logger,
	}

	if err := validator.Validate("dispatcher", d.queue, d.logger); err != nil {
		return nil, fmt.Errorf("failed to validate dispatcher deps: %w", err)
	}

	d.logger = d.logger.Named("dispatcher")

	return &d, nil
}

// Dispatch resolves the event's channel and payload, validates the payload
// when the event declares rules, and enqueues it exactly once. A rejected
// payload is never enqueued. Queue failures are returned as
// *broadcast.DeliveryError.
func (d *Dispatcher) Dispatch(ctx context.Context, event broadcast.Event) error {
	if validator.IsNil(event) {
		return broadcast.ErrNilEvent
	}

	channel := broadcast.ChannelFor(event)
	payload := broadcast.Serialize(event)
	logger := d.logger.With(
		zap.String("channel", channel.Name),
		zap.String("event", event.BroadcastAs()),
	)

	if v, ok := event.(broadcast.Validatable); ok {
		if errs := validator.Map(payload, v.PayloadRules()); len(errs) > 0 {
			err := &broadcast.ValidationError{Event: event.BroadcastAs(), Fields: errs}
			logger.Warn("rejected event payload", zap.Error(err))
			return err
		}
	}

	if err := d.queue.Enqueue(ctx, channel, payload); err != nil {
		logger.Error("failed to enqueue event", zap.Error(err))
		return &broadcast.DeliveryError{Channel: channel, Err: err}
	}

	logger.Debug("event queued", zap.Strings("fields", payload.Keys()))

	return nil
}
