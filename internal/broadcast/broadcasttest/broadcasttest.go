// Package broadcasttest provides recording doubles for the broadcast
// pipeline, for use in tests that verify what would be broadcast without a
// live transport.
package broadcasttest

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"broadcast/internal/broadcast"
)

// Call is one recorded Enqueue.
type Call struct {
	Channel broadcast.Channel
	Payload broadcast.Payload
}

// Queue is a broadcast.Queue that records every Enqueue call.
// The zero value is ready to use and safe for concurrent use.
type Queue struct {
	mu    sync.Mutex
	calls []Call
	err   error
	hook  func(Call)
}

var _ broadcast.Queue = (*Queue)(nil)

// NewQueue returns a recorder that runs hook synchronously on every Enqueue.
func NewQueue(hook func(Call)) *Queue {
	return &Queue{hook: hook}
}

func (q *Queue) Enqueue(_ context.Context, channel broadcast.Channel, payload broadcast.Payload) error {
	c := Call{Channel: channel, Payload: payload.Clone()}

	q.mu.Lock()
	q.calls = append(q.calls, c)
	err, hook := q.err, q.hook
	q.mu.Unlock()

	if hook != nil {
		hook(c)
	}

	return err
}

// FailWith makes subsequent Enqueue calls return err after recording.
func (q *Queue) FailWith(err error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.err = err
}

// Calls returns a copy of the recorded calls in arrival order.
func (q *Queue) Calls() []Call {
	q.mu.Lock()
	defer q.mu.Unlock()
	return append([]Call(nil), q.calls...)
}

func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.calls)
}

// AssertEnqueuedOnce fails t unless exactly one call was recorded, and
// returns it.
func (q *Queue) AssertEnqueuedOnce(t testing.TB) Call {
	t.Helper()

	calls := q.Calls()
	require.Len(t, calls, 1, "expected exactly one enqueue")
	return calls[0]
}

// Dispatcher is a broadcast.Dispatcher that records events instead of
// queuing them.
type Dispatcher struct {
	mu     sync.Mutex
	events []broadcast.Event
}

var _ broadcast.Dispatcher = (*Dispatcher)(nil)

func (d *Dispatcher) Dispatch(_ context.Context, event broadcast.Event) error {
	if event == nil {
		return broadcast.ErrNilEvent
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, event)
	return nil
}

func (d *Dispatcher) Events() []broadcast.Event {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]broadcast.Event(nil), d.events...)
}

// Dispatched returns the recorded events matching pred.
func (d *Dispatcher) Dispatched(pred func(broadcast.Event) bool) []broadcast.Event {
	var out []broadcast.Event
	for _, e := range d.Events() {
		if pred == nil || pred(e) {
			out = append(out, e)
		}
	}
	return out
}

// AssertDispatched fails t unless at least one recorded event matches pred.
func (d *Dispatcher) AssertDispatched(t testing.TB, pred func(broadcast.Event) bool) {
	t.Helper()
	require.NotEmpty(t, d.Dispatched(pred), "expected a matching event to be dispatched")
}

// AssertNotDispatched fails t if any recorded event matches pred.
func (d *Dispatcher) AssertNotDispatched(t testing.TB, pred func(broadcast.Event) bool) {
	t.Helper()
	require.Empty(t, d.Dispatched(pred), "expected no matching event to be dispatched")
}
