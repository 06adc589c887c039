package relay

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"broadcast/internal/broadcast"
	"broadcast/internal/broadcast/tracing"
)

// TracedRelay wraps a broadcast.Relay with distributed tracing
// Layer order: TracedRelay -> MetricsRelay -> Relay (real thing)
type TracedRelay struct {
	relay  broadcast.Relay
	tracer *tracing.Tracer
}

func NewTracedRelay(relay broadcast.Relay, tracer *tracing.Tracer) broadcast.Relay {
	return &TracedRelay{
		relay:  relay,
		tracer: tracer,
	}
}

// Pull implements broadcast.Relay.Pull with distributed tracing
func (r *TracedRelay) Pull(ctx context.Context, channel, sub string) (int, error) {
	ctx, span := r.tracer.StartSpan(ctx, "relay.pull")
	span.SetAttributes(r.tracer.RelayAttributes(channel, sub)...)

	delivered, err := r.relay.Pull(ctx, channel, sub)
	span.SetAttributes(attribute.Int("broadcast.envelopes_delivered", delivered))
	r.tracer.End(ctx, err)

	return delivered, err
}

// Lag implements broadcast.Relay.Lag with distributed tracing
func (r *TracedRelay) Lag(ctx context.Context, channel, sub string) (uint64, error) {
	ctx, span := r.tracer.StartSpan(ctx, "relay.lag")
	span.SetAttributes(r.tracer.RelayAttributes(channel, sub)...)

	lag, err := r.relay.Lag(ctx, channel, sub)
	span.SetAttributes(attribute.Int64("broadcast.lag", int64(lag)))
	r.tracer.End(ctx, err)

	return lag, err
}

// Ack implements broadcast.Relay.Ack with distributed tracing
func (r *TracedRelay) Ack(ctx context.Context, sub string, env broadcast.Envelope) error {
	ctx, span := r.tracer.StartSpan(ctx, "relay.ack")
	span.SetAttributes(r.tracer.RelayAttributes(env.Channel, sub)...)
	span.SetAttributes(
		attribute.String("broadcast.envelope_id", env.ID),
		attribute.Int64("broadcast.offset", int64(env.Offset)),
	)

	err := r.relay.Ack(ctx, sub, env)
	r.tracer.End(ctx, err)

	return err
}
