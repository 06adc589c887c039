//go:generate go run go.uber.org/mock/mockgen -source=broadcast.go -destination=../../mocks/mock_broadcast.go -package=mocks

// Package broadcast defines the event broadcast pipeline: events that know
// which channel they belong on and how they serialize, the dispatcher that
// hands them off, and the queue and sink ports that carry them to subscribers.
package broadcast

import "context"

// Event is a broadcastable event. Implementations decide their own channel
// and wire payload so new event types never require dispatcher changes.
type Event interface {
	// BroadcastAs returns the event name, e.g. "message.new".
	BroadcastAs() string

	// BroadcastOn resolves the channel the event is delivered on.
	// It must be deterministic and free of side effects.
	BroadcastOn() Channel

	// BroadcastWith returns the wire payload. Only the keys returned here
	// are ever sent to subscribers.
	BroadcastWith() Payload
}

// Validatable is implemented by events whose payload must satisfy rules
// before it may be queued. Rules use go-playground/validator map syntax,
// e.g. {"message": "required,max=4096"}.
type Validatable interface {
	PayloadRules() map[string]any
}

// Dispatcher submits events into the pipeline.
type Dispatcher interface {
	// Dispatch resolves the event's channel and payload and hands them to the
	// queue exactly once. It does not wait for delivery to subscribers.
	Dispatch(ctx context.Context, event Event) error
}

// Queue is the delivery collaborator the dispatcher hands events to.
// Implementations must be safe for concurrent use.
type Queue interface {
	// Enqueue accepts a payload for eventual delivery to the subscribers of
	// channel. A nil error means the queue now owns delivery.
	Enqueue(ctx context.Context, channel Channel, payload Payload) error
}

// Sink receives payloads that are ready for subscribers.
type Sink interface {
	Deliver(ctx context.Context, delivery Delivery) error
}

// Delivery is one payload on its way to the subscribers of a channel.
type Delivery struct {
	Channel Channel
	Payload Payload
}

// ChannelFor returns the channel an event broadcasts on.
func ChannelFor(event Event) Channel {
	return event.BroadcastOn()
}

// Serialize returns the event's wire payload. The result is a fresh copy on
// every call.
func Serialize(event Event) Payload {
	return event.BroadcastWith().Clone()
}
