//go:generate go run go.uber.org/mock/mockgen -source=relay.go -destination=../../mocks/mock_relay.go -package=mocks

package broadcast

import "context"

// Relay moves envelopes from a channel log to a Sink on behalf of a
// subscription.
type Relay interface {
	// Pull leases and delivers the next batch of envelopes for a
	// subscription. Returns the number of envelopes delivered.
	Pull(ctx context.Context, channel, sub string) (int, error)

	// Ack releases the lease on a delivered envelope and advances the
	// subscription cursor past it.
	Ack(ctx context.Context, sub string, env Envelope) error

	// Lag returns how many offsets reserved on channel the subscription has
	// not yet read past.
	Lag(ctx context.Context, channel, sub string) (uint64, error)
}
