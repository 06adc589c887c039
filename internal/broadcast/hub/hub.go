package hub

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"broadcast/internal/broadcast"
)

const defaultBuffer = 64

// Hub fans deliveries out to in-process subscribers of a channel.
//
// Contract:
//   - Deliver never blocks.
//   - Subscribers get buffered channels; a full subscriber drops deliveries.
//   - Subscribers of other channels never see a delivery.
type Hub struct {
	logger *zap.Logger

	mu   sync.RWMutex
	subs map[string]map[uuid.UUID]chan broadcast.Delivery
}

var _ broadcast.Sink = (*Hub)(nil)

func New(logger *zap.Logger) *Hub {
	return &Hub{
		logger: logger.Named("hub"),
		subs:   make(map[string]map[uuid.UUID]chan broadcast.Delivery),
	}
}

// Subscribe attaches a subscriber to channel. The returned function detaches
// it and closes the delivery channel; calling it more than once is safe.
func (h *Hub) Subscribe(channel string, buffer int) (<-chan broadcast.Delivery, func()) {
	if buffer <= 0 {
		buffer = defaultBuffer
	}
	ch := make(chan broadcast.Delivery, buffer)
	id := uuid.New()

	h.mu.Lock()
	if h.subs[channel] == nil {
		h.subs[channel] = make(map[uuid.UUID]chan broadcast.Delivery)
	}
	h.subs[channel][id] = ch
	h.mu.Unlock()

	h.logger.Debug("subscriber attached", zap.String("channel", channel), zap.Stringer("id", id))

	var once sync.Once
	unsubscribe := func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs[channel], id)
			if len(h.subs[channel]) == 0 {
				delete(h.subs, channel)
			}
			close(ch)
			h.mu.Unlock()

			h.logger.Debug("subscriber detached", zap.String("channel", channel), zap.Stringer("id", id))
		})
	}

	return ch, unsubscribe
}

// Deliver hands d to every current subscriber of its channel. Each
// subscriber receives its own copy of the payload.
func (h *Hub) Deliver(_ context.Context, d broadcast.Delivery) error {
	h.mu.RLock()
	defer h.mu.RUnlock()

	var dropped int
	for _, ch := range h.subs[d.Channel.Name] {
		select {
		case ch <- broadcast.Delivery{Channel: d.Channel, Payload: d.Payload.Clone()}:
		default:
			dropped++
		}
	}

	if dropped > 0 {
		h.logger.Warn("dropped delivery for slow subscribers",
			zap.String("channel", d.Channel.Name),
			zap.Int("dropped", dropped),
		)
	}

	return nil
}

// Subscribers returns the number of subscribers attached to channel.
func (h *Hub) Subscribers(channel string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[channel])
}
