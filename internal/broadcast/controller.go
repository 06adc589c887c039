//go:generate go run go.uber.org/mock/mockgen -source=controller.go -destination=../../mocks/mock_controller.go -package=mocks

package broadcast

import "context"

// Controller defines the interface for the durable channel log.
// It owns envelope storage, offset reservation, subscription cursors and
// delivery leases, and is shared by the queue writing to the log and the
// relays reading from it.
type Controller interface {
	// ReserveOffset atomically claims the next write offset on a channel.
	// Concurrent callers always receive distinct offsets.
	ReserveOffset(ctx context.Context, channel string) (uint64, error)

	// GetOffset returns the number of offsets reserved on a channel so far,
	// or 0 for a channel that has never been written to.
	GetOffset(ctx context.Context, channel string) (uint64, error)

	// GetCursor returns the next offset a subscription reads from.
	// Returns 0 for new subscriptions.
	GetCursor(ctx context.Context, channel, sub string) (uint64, error)

	// CommitCursor advances a subscription cursor. A cursor never moves
	// backwards; committing an offset at or below the current one is a no-op.
	CommitCursor(ctx context.Context, channel, sub string, offset uint64) error

	// InsertLease claims an envelope for exclusive delivery within a
	// subscription. Fails with gocb.ErrDocumentExists if already leased.
	InsertLease(ctx context.Context, sub string, envelopeID string, offset uint64) error

	// DeleteLease releases a lease after delivery. Safe to call if the lease
	// no longer exists.
	DeleteLease(ctx context.Context, sub string, envelopeID string) error

	// InsertEnvelope persists an envelope on its channel log.
	InsertEnvelope(ctx context.Context, env Envelope) error

	// LoadEnvelopes returns up to limit envelopes of a channel starting at
	// fromOffset, in offset order.
	LoadEnvelopes(ctx context.Context, channel string, fromOffset uint64, limit int) ([]Envelope, error)
}
