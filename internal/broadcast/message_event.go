package broadcast

import (
	"encoding/json"
	"math"
)

// MessageEventName is the name a new chat message is broadcast as.
const MessageEventName = "message.new"

const (
	senderIDKey = "sender_id"
	messageKey  = "message"
)

// MessageEvent announces a new chat message. It is a value object: both
// fields are set by NewMessageEvent and never change afterwards.
type MessageEvent struct {
	senderID int64
	message  string
}

// NewMessageEvent creates the event for a message accepted from senderID.
// An empty message is allowed.
func NewMessageEvent(senderID int64, message string) MessageEvent {
	return MessageEvent{senderID: senderID, message: message}
}

func (e MessageEvent) SenderID() int64 { return e.senderID }

func (e MessageEvent) Message() string { return e.message }

func (e MessageEvent) BroadcastAs() string { return MessageEventName }

func (e MessageEvent) BroadcastOn() Channel {
	return NewChannel(MessageBoxChannel)
}

func (e MessageEvent) BroadcastWith() Payload {
	return Payload{
		senderIDKey: e.senderID,
		messageKey:  e.message,
	}
}

// DecodeMessageEvent rebuilds a MessageEvent from its wire payload, as
// received by a subscriber. Integer values may arrive as any Go integer,
// json.Number, or an integral float64.
func DecodeMessageEvent(p Payload) (MessageEvent, error) {
	rawID, ok := p[senderIDKey]
	if !ok {
		return MessageEvent{}, constructionError(senderIDKey, "missing")
	}
	senderID, ok := toInt64(rawID)
	if !ok {
		return MessageEvent{}, constructionError(senderIDKey, "not an integer")
	}

	rawMsg, ok := p[messageKey]
	if !ok {
		return MessageEvent{}, constructionError(messageKey, "missing")
	}
	msg, ok := rawMsg.(string)
	if !ok {
		return MessageEvent{}, constructionError(messageKey, "not a string")
	}

	return NewMessageEvent(senderID, msg), nil
}

func constructionError(field, reason string) *ConstructionError {
	return &ConstructionError{Event: MessageEventName, Field: field, Reason: reason}
}

func toInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case json.Number:
		i, err := n.Int64()
		return i, err == nil
	case float64:
		if n != math.Trunc(n) || n >= 1<<63 || n < math.MinInt64 {
			return 0, false
		}
		return int64(n), true
	default:
		return 0, false
	}
}
