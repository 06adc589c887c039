package couchbase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTransactionTimeout(t *testing.T) {
	now := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)

	tests := map[string]struct {
		deadline time.Time
		want     time.Duration
	}{
		"no deadline uses default": {want: DefaultTransactionTimeout},
		"near deadline wins":       {deadline: now.Add(2 * time.Second), want: 2 * time.Second},
		"far deadline is capped":   {deadline: now.Add(time.Hour), want: DefaultTransactionTimeout},
		"expired deadline":         {deadline: now.Add(-time.Second), want: time.Millisecond},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			if !tt.deadline.IsZero() {
				var cancel context.CancelFunc
				ctx, cancel = context.WithDeadline(ctx, tt.deadline)
				defer cancel()
			}

			require.Equal(t, tt.want, transactionTimeout(ctx, now))
		})
	}
}

func TestTransaction_CancelledContextFailsFast(t *testing.T) {
	// a nil cluster is never reached when ctx is already done
	txns := &Transactions{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	_, err := txns.Transaction(ctx, func(TransactionRunner) error {
		called = true
		return nil
	})

	require.ErrorIs(t, err, context.Canceled)
	require.False(t, called)
}

func TestNewTransactions_NilCluster(t *testing.T) {
	_, err := NewTransactions(nil)
	require.Error(t, err)
}
