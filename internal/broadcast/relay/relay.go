package relay

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/couchbase/gocb/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"broadcast/internal/broadcast"
	"broadcast/internal/validator"
)

// DefaultGapTimeout is how long a missing offset may stay missing before the
// relay treats its enqueue as failed and moves past it.
const DefaultGapTimeout = 5 * time.Second

// Relay delivers envelopes of a channel log to a Sink, one subscription at a
// time, in offset order.
type Relay struct {
	controller broadcast.Controller
	sink       broadcast.Sink
	logger     *zap.Logger
	batchSize  int
	gapTimeout time.Duration
	now        func() time.Time
}

var _ broadcast.Relay = (*Relay)(nil)

func NewRelay(controller broadcast.Controller, sink broadcast.Sink, logger *zap.Logger, batchSize int) (*Relay, error) {
	r := Relay{
		controller: controller,
		sink:       sink,
		logger:     logger,
		batchSize:  batchSize,
		gapTimeout: DefaultGapTimeout,
		now:        time.Now,
	}

	if err := validator.Validate("relay", r.controller, r.sink, r.logger, r.batchSize); err != nil {
		return nil, fmt.Errorf("failed to validate relay deps: %w", err)
	}

	r.logger = r.logger.Named("relay")

	return &r, nil
}

func (r *Relay) Pull(ctx context.Context, channel, sub string) (int, error) {
	logger := r.logger.With(zap.String("channel", channel), zap.String("sub", sub))

	cursor, err := r.controller.GetCursor(ctx, channel, sub)
	if err != nil {
		return 0, fmt.Errorf("failed to get cursor: %w", err)
	}

	envs, err := r.controller.LoadEnvelopes(ctx, channel, cursor, r.batchSize)
	if err != nil {
		return 0, fmt.Errorf("failed to load envelopes: %w", err)
	}

	envs = r.deliverable(envs, cursor)
	logger.Debug("loaded envelopes", zap.Uint64("cursor", cursor), zap.Int("count", len(envs)))

	var delivered int
	for _, env := range envs {
		err := r.controller.InsertLease(ctx, sub, env.ID, env.Offset)
		switch {
		case err == nil:
		case errors.Is(err, gocb.ErrDocumentExists):
			// another relay of this subscription holds it; keep order by stopping here
			logger.Debug("envelope already leased", zap.String("envelopeId", env.ID))
			return delivered, nil
		default:
			return delivered, fmt.Errorf("failed to insert lease for envelope %s: %w", env.ID, err)
		}

		d := broadcast.Delivery{Channel: broadcast.NewChannel(env.Channel), Payload: env.Payload}
		if err := r.sink.Deliver(ctx, d); err != nil {
			if lerr := r.controller.DeleteLease(ctx, sub, env.ID); lerr != nil {
				logger.Warn("failed to release lease", zap.String("envelopeId", env.ID), zap.Error(lerr))
			}
			return delivered, fmt.Errorf("failed to deliver envelope %s: %w", env.ID, err)
		}

		if err := r.Ack(ctx, sub, env); err != nil {
			const msg = "failed to ack envelope"
			logger.Error(msg, zap.String("envelopeId", env.ID), zap.Error(err))
			return delivered, fmt.Errorf(msg+": %w", err)
		}

		delivered++
	}

	return delivered, nil
}

func (r *Relay) Ack(ctx context.Context, sub string, env broadcast.Envelope) error {
	if err := r.controller.DeleteLease(ctx, sub, env.ID); err != nil {
		return fmt.Errorf("failed to delete lease for envelope %s: %w", env.ID, err)
	}

	if err := r.controller.CommitCursor(ctx, env.Channel, sub, env.Offset+1); err != nil {
		return fmt.Errorf("failed to commit cursor for channel %s sub %s: %w", env.Channel, sub, err)
	}

	r.logger.Debug("cursor committed",
		zap.String("channel", env.Channel),
		zap.String("sub", sub),
		zap.Uint64("offset", env.Offset+1),
	)

	return nil
}

func (r *Relay) Lag(ctx context.Context, channel, sub string) (uint64, error) {
	head, err := r.controller.GetOffset(ctx, channel)
	if err != nil {
		return 0, fmt.Errorf("failed to get offset: %w", err)
	}

	cursor, err := r.controller.GetCursor(ctx, channel, sub)
	if err != nil {
		return 0, fmt.Errorf("failed to get cursor: %w", err)
	}

	if cursor >= head {
		return 0, nil
	}
	return head - cursor, nil
}

// deliverable returns the prefix of envs that may be delivered now. A missing
// offset holds back everything after it until the envelope following the gap
// is older than gapTimeout.
func (r *Relay) deliverable(envs []broadcast.Envelope, cursor uint64) []broadcast.Envelope {
	next := cursor
	for i, env := range envs {
		if env.Offset != next && !r.gapExpired(env) {
			return envs[:i]
		}
		next = env.Offset + 1
	}
	return envs
}

func (r *Relay) gapExpired(env broadcast.Envelope) bool {
	return env.QueuedAt != nil && r.now().Sub(*env.QueuedAt) >= r.gapTimeout
}

// Poll pulls every subscription of channel each interval until ctx is
// cancelled, sampling the subscription's lag after each successful pull.
// Errors are logged and retried on the next tick.
func Poll(ctx context.Context, relay broadcast.Relay, logger *zap.Logger, channel string, interval time.Duration, subs ...string) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, sub := range subs {
		g.Go(func() error {
			logger := logger.With(zap.String("channel", channel), zap.String("sub", sub))
			tick := time.NewTicker(interval)
			defer tick.Stop()

			for {
				select {
				case <-gctx.Done():
					return nil
				case <-tick.C:
					if _, err := relay.Pull(gctx, channel, sub); err != nil {
						logger.Error("failed to pull envelopes", zap.Error(err))
						continue
					}

					lag, err := relay.Lag(gctx, channel, sub)
					if err != nil {
						logger.Warn("failed to measure lag", zap.Error(err))
						continue
					}
					logger.Debug("subscription lag", zap.Uint64("lag", lag))
				}
			}
		})
	}

	return g.Wait()
}
