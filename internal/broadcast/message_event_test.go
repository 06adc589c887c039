package broadcast

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMessageEvent_BroadcastOn(t *testing.T) {
	for _, e := range []MessageEvent{
		NewMessageEvent(1, "Hello from server!"),
		NewMessageEvent(-7, ""),
		NewMessageEvent(1<<40, "Unit test message"),
	} {
		require.Equal(t, "message-box", ChannelFor(e).Name)
		require.Equal(t, "message-box", e.BroadcastOn().String())
	}
}

func TestMessageEvent_Serialize(t *testing.T) {
	e := NewMessageEvent(1, "Unit test message")

	payload := Serialize(e)

	require.Equal(t, Payload{"sender_id": int64(1), "message": "Unit test message"}, payload)
	require.Equal(t, []string{"message", "sender_id"}, payload.Keys())
	require.Equal(t, int64(1), e.SenderID())
	require.Equal(t, "Unit test message", e.Message())
	require.Equal(t, MessageEventName, e.BroadcastAs())
}

func TestMessageEvent_SerializeIsIdempotent(t *testing.T) {
	e := NewMessageEvent(42, "same every time")

	first := Serialize(e)
	first["message"] = "mutated by caller"
	first["extra"] = true

	second := Serialize(e)
	require.Equal(t, Payload{"sender_id": int64(42), "message": "same every time"}, second)
	require.Equal(t, Serialize(e), second)
}

func TestMessageEvent_EmptyMessageAllowed(t *testing.T) {
	e := NewMessageEvent(3, "")

	require.Equal(t, Payload{"sender_id": int64(3), "message": ""}, Serialize(e))
}

func TestPayload_JSONWireShape(t *testing.T) {
	data, err := json.Marshal(Serialize(NewMessageEvent(1, "Hello from server!")))
	require.NoError(t, err)
	require.JSONEq(t, `{"sender_id":1,"message":"Hello from server!"}`, string(data))
	require.Equal(t, `{"message":"Hello from server!","sender_id":1}`, string(data))

	var decoded Payload
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Equal(t, json.Number("1"), decoded["sender_id"])

	again, err := json.Marshal(decoded)
	require.NoError(t, err)
	require.Equal(t, string(data), string(again))
}

func TestDecodeMessageEvent(t *testing.T) {
	want := NewMessageEvent(9, "round trip")

	got, err := DecodeMessageEvent(Serialize(want))
	require.NoError(t, err)
	require.Equal(t, want, got)

	for _, id := range []any{9, int32(9), json.Number("9"), float64(9)} {
		got, err := DecodeMessageEvent(Payload{"sender_id": id, "message": "round trip"})
		require.NoError(t, err)
		require.Equal(t, want, got)
	}
}

func TestDecodeMessageEvent_Errors(t *testing.T) {
	tests := []struct {
		name    string
		payload Payload
		field   string
	}{
		{name: "missing sender", payload: Payload{"message": "hi"}, field: "sender_id"},
		{name: "fractional sender", payload: Payload{"sender_id": 1.5, "message": "hi"}, field: "sender_id"},
		{name: "sender above int64", payload: Payload{"sender_id": float64(math.MaxInt64), "message": "hi"}, field: "sender_id"},
		{name: "sender below int64", payload: Payload{"sender_id": -1e19, "message": "hi"}, field: "sender_id"},
		{name: "string sender", payload: Payload{"sender_id": "1", "message": "hi"}, field: "sender_id"},
		{name: "missing message", payload: Payload{"sender_id": 1}, field: "message"},
		{name: "numeric message", payload: Payload{"sender_id": 1, "message": 5}, field: "message"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeMessageEvent(tt.payload)

			var cerr *ConstructionError
			require.True(t, errors.As(err, &cerr))
			require.Equal(t, tt.field, cerr.Field)
			require.ErrorIs(t, err, ErrConstruction)
		})
	}
}

func TestErrors(t *testing.T) {
	cause := errors.New("bucket unavailable")
	derr := &DeliveryError{Channel: NewChannel("message-box"), Err: cause}

	require.ErrorIs(t, derr, ErrDelivery)
	require.ErrorIs(t, derr, cause)
	require.Contains(t, derr.Error(), "message-box")

	verr := &ValidationError{Event: "message.new", Fields: map[string]error{
		"sender_id": errors.New("required"),
		"message":   errors.New("required"),
	}}
	require.ErrorIs(t, verr, ErrValidation)
	require.Equal(t, "invalid payload for message.new: fields [message, sender_id]", verr.Error())
}
