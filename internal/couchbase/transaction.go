package couchbase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/couchbase/gocb/v2"
)

// DefaultTransactionTimeout bounds a transaction whose ctx has no deadline.
const DefaultTransactionTimeout = 10 * time.Second

// Transactions runs distributed transactions against one cluster.
type Transactions struct {
	cluster *gocb.Cluster
}

func NewTransactions(cluster *gocb.Cluster) (*Transactions, error) {
	if cluster == nil {
		return nil, errors.New("couchbase cluster cannot be nil")
	}

	return &Transactions{cluster: cluster}, nil
}

// Transaction runs fn until it commits, fails, or ctx ends. The transaction
// timeout follows the ctx deadline and each attempt checks ctx before
// running, so a cancelled ctx stops the SDK's retries.
// Returns the transaction ID on success.
func (t *Transactions) Transaction(ctx context.Context, fn TransactionAttempt) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("transaction not started: %w", err)
	}

	opts := gocb.TransactionOptions{
		DurabilityLevel: gocb.DurabilityLevelNone,
		Timeout:         transactionTimeout(ctx, time.Now()),
	}

	attempt := func(actx *gocb.TransactionAttemptContext) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		return fn(&attemptRunner{actx: actx})
	}

	res, err := t.cluster.Transactions().Run(attempt, &opts)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", fmt.Errorf("failed to run transaction: %w", errors.Join(ctxErr, err))
		}
		return "", fmt.Errorf("failed to run transaction: %w", err)
	}

	return res.TransactionID, nil
}

func transactionTimeout(ctx context.Context, now time.Time) time.Duration {
	deadline, ok := ctx.Deadline()
	if !ok {
		return DefaultTransactionTimeout
	}

	remaining := deadline.Sub(now)
	if remaining <= 0 {
		// the SDK treats zero as "use the cluster default"
		return time.Millisecond
	}
	return min(remaining, DefaultTransactionTimeout)
}

// TransactionRunner is the document API available inside one attempt.
type TransactionRunner interface {
	Get(tc TransactionCollection, key string) (*gocb.TransactionGetResult, error)
	Insert(tc TransactionCollection, key string, value any) (*gocb.TransactionGetResult, error)
	Replace(doc *gocb.TransactionGetResult, value any) (*gocb.TransactionGetResult, error)
}

// TransactionCollection is any store that can name its collection.
type TransactionCollection interface {
	Collection() *gocb.Collection
}

type TransactionAttempt func(r TransactionRunner) error

type attemptRunner struct {
	actx *gocb.TransactionAttemptContext
}

func (r *attemptRunner) Get(tc TransactionCollection, key string) (*gocb.TransactionGetResult, error) {
	return r.actx.Get(tc.Collection(), key)
}

func (r *attemptRunner) Insert(tc TransactionCollection, key string, value any) (*gocb.TransactionGetResult, error) {
	return r.actx.Insert(tc.Collection(), key, value)
}

func (r *attemptRunner) Replace(doc *gocb.TransactionGetResult, value any) (*gocb.TransactionGetResult, error) {
	return r.actx.Replace(doc, value)
}
