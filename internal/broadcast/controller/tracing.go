package controller

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"broadcast/internal/broadcast"
	"broadcast/internal/broadcast/tracing"
)

// TracedController wraps a broadcast.Controller with distributed tracing
// Layer order: TracedController -> MetricsController -> Controller (real thing)
type TracedController struct {
	controller broadcast.Controller
	tracer     *tracing.Tracer
}

func NewTracedController(controller broadcast.Controller, tracer *tracing.Tracer) broadcast.Controller {
	return &TracedController{
		controller: controller,
		tracer:     tracer,
	}
}

func (c *TracedController) start(ctx context.Context, operation string, attrs ...attribute.KeyValue) context.Context {
	ctx, span := c.tracer.StartSpan(ctx, "controller."+operation)
	span.SetAttributes(c.tracer.DatabaseAttributes(operation)...)
	span.SetAttributes(attrs...)
	return ctx
}

// ReserveOffset implements broadcast.Controller.ReserveOffset with distributed tracing
func (c *TracedController) ReserveOffset(ctx context.Context, channel string) (uint64, error) {
	ctx = c.start(ctx, "reserve_offset", c.tracer.ChannelAttributes(channel)...)

	offset, err := c.controller.ReserveOffset(ctx, channel)
	if err == nil {
		c.tracer.WithAttributes(ctx, attribute.Int64("broadcast.offset", int64(offset)))
	}
	c.tracer.End(ctx, err)

	return offset, err
}

// GetOffset implements broadcast.Controller.GetOffset with distributed tracing
func (c *TracedController) GetOffset(ctx context.Context, channel string) (uint64, error) {
	ctx = c.start(ctx, "get_offset", c.tracer.ChannelAttributes(channel)...)

	offset, err := c.controller.GetOffset(ctx, channel)
	c.tracer.End(ctx, err)

	return offset, err
}

// GetCursor implements broadcast.Controller.GetCursor with distributed tracing
func (c *TracedController) GetCursor(ctx context.Context, channel, sub string) (uint64, error) {
	ctx = c.start(ctx, "get_cursor", c.tracer.RelayAttributes(channel, sub)...)

	offset, err := c.controller.GetCursor(ctx, channel, sub)
	if err == nil {
		c.tracer.WithAttributes(ctx, attribute.Int64("broadcast.cursor_offset", int64(offset)))
	}
	c.tracer.End(ctx, err)

	return offset, err
}

// CommitCursor implements broadcast.Controller.CommitCursor with distributed tracing
func (c *TracedController) CommitCursor(ctx context.Context, channel, sub string, offset uint64) error {
	attrs := append(c.tracer.RelayAttributes(channel, sub), attribute.Int64("broadcast.cursor_offset", int64(offset)))
	ctx = c.start(ctx, "commit_cursor", attrs...)

	err := c.controller.CommitCursor(ctx, channel, sub, offset)
	c.tracer.End(ctx, err)

	return err
}

// InsertLease implements broadcast.Controller.InsertLease with distributed tracing
func (c *TracedController) InsertLease(ctx context.Context, sub string, envelopeID string, offset uint64) error {
	ctx = c.start(ctx, "insert_lease",
		attribute.String("broadcast.subscription", sub),
		attribute.String("broadcast.envelope_id", envelopeID),
		attribute.Int64("broadcast.offset", int64(offset)),
	)

	err := c.controller.InsertLease(ctx, sub, envelopeID, offset)
	c.tracer.End(ctx, err)

	return err
}

// DeleteLease implements broadcast.Controller.DeleteLease with distributed tracing
func (c *TracedController) DeleteLease(ctx context.Context, sub string, envelopeID string) error {
	ctx = c.start(ctx, "delete_lease",
		attribute.String("broadcast.subscription", sub),
		attribute.String("broadcast.envelope_id", envelopeID),
	)

	err := c.controller.DeleteLease(ctx, sub, envelopeID)
	c.tracer.End(ctx, err)

	return err
}

// InsertEnvelope implements broadcast.Controller.InsertEnvelope with distributed tracing
func (c *TracedController) InsertEnvelope(ctx context.Context, env broadcast.Envelope) error {
	attrs := append(c.tracer.ChannelAttributes(env.Channel),
		attribute.String("broadcast.envelope_id", env.ID),
		attribute.String("broadcast.dispatch_id", env.DispatchID),
	)
	ctx = c.start(ctx, "insert_envelope", attrs...)

	err := c.controller.InsertEnvelope(ctx, env)
	c.tracer.End(ctx, err)

	return err
}

// LoadEnvelopes implements broadcast.Controller.LoadEnvelopes with distributed tracing
func (c *TracedController) LoadEnvelopes(ctx context.Context, channel string, fromOffset uint64, limit int) ([]broadcast.Envelope, error) {
	attrs := append(c.tracer.ChannelAttributes(channel),
		attribute.Int64("broadcast.from_offset", int64(fromOffset)),
		attribute.Int("broadcast.limit", limit),
	)
	ctx = c.start(ctx, "load_envelopes", attrs...)

	envelopes, err := c.controller.LoadEnvelopes(ctx, channel, fromOffset, limit)
	if err == nil {
		c.tracer.WithAttributes(ctx, attribute.Int("broadcast.envelopes_loaded", len(envelopes)))
	}
	c.tracer.End(ctx, err)

	return envelopes, err
}
