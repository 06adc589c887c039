package hub

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"broadcast/internal/broadcast"
)

func delivery(channel string, senderID int64, msg string) broadcast.Delivery {
	e := broadcast.NewMessageEvent(senderID, msg)
	return broadcast.Delivery{Channel: broadcast.NewChannel(channel), Payload: broadcast.Serialize(e)}
}

func TestHub_DeliversToChannelSubscribersOnly(t *testing.T) {
	h := New(zaptest.NewLogger(t))
	box1, unsub1 := h.Subscribe("message-box", 4)
	defer unsub1()
	box2, unsub2 := h.Subscribe("message-box", 4)
	defer unsub2()
	other, unsubOther := h.Subscribe("presence", 4)
	defer unsubOther()

	require.NoError(t, h.Deliver(context.Background(), delivery("message-box", 1, "Hello from server!")))

	for _, ch := range []<-chan broadcast.Delivery{box1, box2} {
		got := <-ch
		require.Equal(t, "message-box", got.Channel.Name)
		require.Equal(t, broadcast.Payload{"sender_id": int64(1), "message": "Hello from server!"}, got.Payload)
	}
	require.Empty(t, other)
}

func TestHub_SubscribersGetIndependentPayloads(t *testing.T) {
	h := New(zaptest.NewLogger(t))
	a, unsubA := h.Subscribe("message-box", 1)
	defer unsubA()
	b, unsubB := h.Subscribe("message-box", 1)
	defer unsubB()

	require.NoError(t, h.Deliver(context.Background(), delivery("message-box", 1, "shared")))

	fromA := <-a
	fromA.Payload["message"] = "changed"
	fromB := <-b
	require.Equal(t, "shared", fromB.Payload["message"])
}

func TestHub_SlowSubscriberDrops(t *testing.T) {
	h := New(zaptest.NewLogger(t))
	ch, unsub := h.Subscribe("message-box", 1)
	defer unsub()

	require.NoError(t, h.Deliver(context.Background(), delivery("message-box", 1, "first")))
	require.NoError(t, h.Deliver(context.Background(), delivery("message-box", 2, "second")))

	got := <-ch
	require.Equal(t, "first", got.Payload["message"])
	require.Empty(t, ch)
}

func TestHub_Unsubscribe(t *testing.T) {
	h := New(zaptest.NewLogger(t))
	ch, unsub := h.Subscribe("message-box", 0)
	require.Equal(t, 1, h.Subscribers("message-box"))

	unsub()
	unsub()

	require.Zero(t, h.Subscribers("message-box"))
	_, open := <-ch
	require.False(t, open)
	require.NoError(t, h.Deliver(context.Background(), delivery("message-box", 1, "nobody listens")))
}
