package controller

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/couchbase/gocb/v2"

	"broadcast/internal/broadcast"
	"broadcast/internal/couchbase"
	"broadcast/internal/validator"
)

// envelopeTTL bounds how long undelivered envelopes stay on a channel log.
const envelopeTTL = 7 * 24 * time.Hour

// Controller is the concrete implementation of the broadcast.Controller interface.
// It keeps channel logs, subscription cursors and delivery leases in Couchbase
// collections and uses distributed transactions for cursor updates.
type Controller struct {
	cursors      *couchbase.Couchbase[broadcast.Cursor]
	leases       *couchbase.Couchbase[broadcast.Lease]
	envelopes    *couchbase.Couchbase[broadcast.Envelope]
	offsets      *couchbase.Couchbase[uint64]
	transactions *couchbase.Transactions
	bucket       string
	scope        string
}

// NewController creates a new Controller instance with the provided storage dependencies.
// All storage instances must be pre-configured with their respective Couchbase collections.
func NewController(
	cursors *couchbase.Couchbase[broadcast.Cursor],
	leases *couchbase.Couchbase[broadcast.Lease],
	envelopes *couchbase.Couchbase[broadcast.Envelope],
	offsets *couchbase.Couchbase[uint64],
	transactions *couchbase.Transactions,
	bucket, scope string,
) (*Controller, error) {
	c := Controller{
		cursors:      cursors,
		leases:       leases,
		envelopes:    envelopes,
		offsets:      offsets,
		transactions: transactions,
		bucket:       bucket,
		scope:        scope,
	}

	if err := validator.Validate(
		"controller",
		c.cursors,
		c.leases,
		c.envelopes,
		c.offsets,
		c.transactions,
		c.bucket,
		c.scope,
	); err != nil {
		return nil, fmt.Errorf("failed to validate controller dependencies: %w", err)
	}

	return &c, nil
}

// ReserveOffset implements broadcast.Controller.ReserveOffset with an atomic
// counter increment. The counter holds the number of reserved offsets, so the
// reserved offset is one below the incremented value.
func (c *Controller) ReserveOffset(ctx context.Context, channel string) (uint64, error) {
	n, err := c.offsets.Increment(ctx, broadcast.OffsetKey(channel), 1, 1, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to reserve offset: %w", err)
	}

	return n - 1, nil
}

// GetOffset implements broadcast.Controller.GetOffset.
func (c *Controller) GetOffset(ctx context.Context, channel string) (uint64, error) {
	n, err := c.offsets.Get(ctx, broadcast.OffsetKey(channel), nil)
	switch {
	case err == nil:
		return *n, nil
	case errors.Is(err, gocb.ErrDocumentNotFound):
		return 0, nil
	default:
		return 0, fmt.Errorf("failed to get offset: %w", err)
	}
}

// GetCursor implements broadcast.Controller.GetCursor.
func (c *Controller) GetCursor(ctx context.Context, channel, sub string) (uint64, error) {
	cur, err := c.cursors.Get(ctx, broadcast.CursorKey(channel, sub), nil)
	switch {
	case err == nil:
		return cur.Offset, nil
	case errors.Is(err, gocb.ErrDocumentNotFound):
		return 0, nil
	default:
		return 0, fmt.Errorf("failed to get cursor: %w", err)
	}
}

// CommitCursor implements broadcast.Controller.CommitCursor inside a
// distributed transaction. Concurrent relays of one subscription may race;
// the cursor only ever moves forward.
func (c *Controller) CommitCursor(ctx context.Context, channel, sub string, offset uint64) error {
	key := broadcast.CursorKey(channel, sub)

	_, err := c.transactions.Transaction(ctx, func(r couchbase.TransactionRunner) error {
		res, err := r.Get(c.cursors, key)
		switch {
		case err == nil:
		case errors.Is(err, gocb.ErrDocumentNotFound):
			cursor := broadcast.Cursor{
				ID:           key,
				Channel:      channel,
				Subscription: sub,
				Offset:       offset,
			}
			if _, err := r.Insert(c.cursors, key, cursor); err != nil {
				// ErrDocumentExists makes the transaction retry the attempt
				return fmt.Errorf("failed to insert new cursor: %w", err)
			}
			return nil
		default:
			return fmt.Errorf("failed to get cursor: %w", err)
		}

		var cursor broadcast.Cursor
		if err := res.Content(&cursor); err != nil {
			return fmt.Errorf("failed to decode cursor: %w", err)
		}

		if offset <= cursor.Offset {
			return nil
		}

		cursor.Offset = offset
		if _, err := r.Replace(res, cursor); err != nil {
			return fmt.Errorf("failed to replace cursor: %w", err)
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to commit cursor for channel %s sub %s: %w", channel, sub, err)
	}

	return nil
}

// InsertLease implements broadcast.Controller.InsertLease with a document that
// expires after broadcast.LeaseTimeout.
func (c *Controller) InsertLease(ctx context.Context, sub string, envelopeID string, offset uint64) error {
	key := broadcast.LeaseKey(sub, envelopeID)

	lease := broadcast.Lease{
		ID:           key,
		Subscription: sub,
		EnvelopeID:   envelopeID,
		Offset:       offset,
		Expires:      time.Now().UTC().Add(broadcast.LeaseTimeout),
	}

	if err := c.leases.Insert(ctx, key, lease, &gocb.InsertOptions{
		Expiry: broadcast.LeaseTimeout,
	}); err != nil {
		return fmt.Errorf("failed to insert lease: %w", err)
	}

	return nil
}

// DeleteLease implements broadcast.Controller.DeleteLease.
func (c *Controller) DeleteLease(ctx context.Context, sub string, envelopeID string) error {
	if err := c.leases.Remove(ctx, broadcast.LeaseKey(sub, envelopeID), nil); err != nil {
		return fmt.Errorf("failed to delete lease: %w", err)
	}

	return nil
}

// InsertEnvelope implements broadcast.Controller.InsertEnvelope.
func (c *Controller) InsertEnvelope(ctx context.Context, env broadcast.Envelope) error {
	if err := c.envelopes.Insert(ctx, env.ID, env, &gocb.InsertOptions{
		Expiry: envelopeTTL,
	}); err != nil {
		return fmt.Errorf("failed to insert envelope: %w", err)
	}

	return nil
}

// envelopesQuery selects a channel's envelopes from $from upward, oldest
// first, at most $limit of them.
func envelopesQuery(bucket, scope, collection string) string {
	return fmt.Sprintf(
		"SELECT RAW e FROM `%s`.`%s`.`%s` e "+
			"WHERE e.channel = $channel AND e.`offset` >= $from "+
			"ORDER BY e.`offset` ASC LIMIT $limit",
		bucket,
		scope,
		collection,
	)
}

// LoadEnvelopes implements broadcast.Controller.LoadEnvelopes with a N1QL
// query. Request-plus consistency makes envelopes visible as soon as their
// insert returns.
func (c *Controller) LoadEnvelopes(ctx context.Context, channel string, fromOffset uint64, limit int) ([]broadcast.Envelope, error) {
	query := envelopesQuery(c.bucket, c.scope, c.envelopes.Collection().Name())

	envelopes, err := c.envelopes.Query(ctx, query, &gocb.QueryOptions{
		ScanConsistency: gocb.QueryScanConsistencyRequestPlus,
		NamedParameters: map[string]any{
			"channel": channel,
			"from":    fromOffset,
			"limit":   limit,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query envelopes: %w", err)
	}

	return envelopes, nil
}
