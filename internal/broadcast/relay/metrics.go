package relay

import (
	"context"
	"time"

	"broadcast/internal/broadcast"
	"broadcast/internal/broadcast/metrics"
)

// MetricsRelay wraps a broadcast.Relay with metrics collection
type MetricsRelay struct {
	relay    broadcast.Relay
	registry *metrics.Registry
}

func NewMetricsRelay(relay broadcast.Relay, registry *metrics.Registry) broadcast.Relay {
	return &MetricsRelay{
		relay:    relay,
		registry: registry,
	}
}

// Pull implements broadcast.Relay.Pull with metrics collection
func (r *MetricsRelay) Pull(ctx context.Context, channel, sub string) (int, error) {
	start := time.Now()
	delivered, err := r.relay.Pull(ctx, channel, sub)
	r.registry.RecordRelayPull(channel, sub, delivered, time.Since(start), err)

	return delivered, err
}

// Lag implements broadcast.Relay.Lag and publishes the result as a gauge
func (r *MetricsRelay) Lag(ctx context.Context, channel, sub string) (uint64, error) {
	lag, err := r.relay.Lag(ctx, channel, sub)
	if err == nil {
		r.registry.SetRelayLag(channel, sub, lag)
	}

	return lag, err
}

// Ack implements broadcast.Relay.Ack with metrics collection
func (r *MetricsRelay) Ack(ctx context.Context, sub string, env broadcast.Envelope) error {
	err := r.relay.Ack(ctx, sub, env)
	r.registry.RecordRelayAck(env.Channel, sub, err)

	return err
}
