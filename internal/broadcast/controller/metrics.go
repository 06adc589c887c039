package controller

import (
	"context"
	"time"

	"broadcast/internal/broadcast"
	"broadcast/internal/broadcast/metrics"
)

// MetricsController wraps a broadcast.Controller with metrics collection
type MetricsController struct {
	controller broadcast.Controller
	registry   *metrics.Registry
}

func NewMetricsController(controller broadcast.Controller, registry *metrics.Registry) broadcast.Controller {
	return &MetricsController{
		controller: controller,
		registry:   registry,
	}
}

// ReserveOffset implements broadcast.Controller.ReserveOffset with metrics collection
func (c *MetricsController) ReserveOffset(ctx context.Context, channel string) (uint64, error) {
	start := time.Now()

	offset, err := c.controller.ReserveOffset(ctx, channel)
	c.registry.RecordStoreOperation("reserve_offset", time.Since(start), err)

	return offset, err
}

// GetOffset implements broadcast.Controller.GetOffset with metrics collection
func (c *MetricsController) GetOffset(ctx context.Context, channel string) (uint64, error) {
	start := time.Now()

	offset, err := c.controller.GetOffset(ctx, channel)
	c.registry.RecordStoreOperation("get_offset", time.Since(start), err)

	return offset, err
}

// GetCursor implements broadcast.Controller.GetCursor with metrics collection
func (c *MetricsController) GetCursor(ctx context.Context, channel, sub string) (uint64, error) {
	start := time.Now()

	offset, err := c.controller.GetCursor(ctx, channel, sub)
	c.registry.RecordStoreOperation("get_cursor", time.Since(start), err)

	return offset, err
}

// CommitCursor implements broadcast.Controller.CommitCursor with metrics collection
func (c *MetricsController) CommitCursor(ctx context.Context, channel, sub string, offset uint64) error {
	start := time.Now()

	err := c.controller.CommitCursor(ctx, channel, sub, offset)
	c.registry.RecordStoreOperation("commit_cursor", time.Since(start), err)

	return err
}

// InsertLease implements broadcast.Controller.InsertLease with metrics collection
func (c *MetricsController) InsertLease(ctx context.Context, sub string, envelopeID string, offset uint64) error {
	start := time.Now()

	err := c.controller.InsertLease(ctx, sub, envelopeID, offset)
	c.registry.RecordStoreOperation("insert_lease", time.Since(start), err)
	c.registry.RecordLeaseOperation("create", err)

	return err
}

// DeleteLease implements broadcast.Controller.DeleteLease with metrics collection
func (c *MetricsController) DeleteLease(ctx context.Context, sub string, envelopeID string) error {
	start := time.Now()

	err := c.controller.DeleteLease(ctx, sub, envelopeID)
	c.registry.RecordStoreOperation("delete_lease", time.Since(start), err)
	c.registry.RecordLeaseOperation("delete", err)

	return err
}

// InsertEnvelope implements broadcast.Controller.InsertEnvelope with metrics collection
func (c *MetricsController) InsertEnvelope(ctx context.Context, env broadcast.Envelope) error {
	start := time.Now()

	err := c.controller.InsertEnvelope(ctx, env)
	c.registry.RecordStoreOperation("insert_envelope", time.Since(start), err)

	return err
}

// LoadEnvelopes implements broadcast.Controller.LoadEnvelopes with metrics collection
func (c *MetricsController) LoadEnvelopes(ctx context.Context, channel string, fromOffset uint64, limit int) ([]broadcast.Envelope, error) {
	start := time.Now()

	envelopes, err := c.controller.LoadEnvelopes(ctx, channel, fromOffset, limit)
	c.registry.RecordStoreOperation("load_envelopes", time.Since(start), err)

	return envelopes, err
}
