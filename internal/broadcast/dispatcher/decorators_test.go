package dispatcher

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"broadcast/internal/broadcast"
	"broadcast/internal/broadcast/broadcasttest"
	"broadcast/internal/broadcast/metrics"
	"broadcast/internal/broadcast/tracing"
	"broadcast/mocks"
)

const dispatchSeries = `
# HELP broadcast_dispatch_total Total number of dispatched events
# TYPE broadcast_dispatch_total counter
broadcast_dispatch_total{channel="message-box",event="message.new",status="delivery_error"} 1
broadcast_dispatch_total{channel="message-box",event="message.new",status="success"} 1
`

// pointerEvent reads its fields through a pointer receiver, so a nil
// *pointerEvent panics if any Broadcast method is called.
type pointerEvent struct {
	name string
}

func (e *pointerEvent) BroadcastAs() string { return e.name }

func (e *pointerEvent) BroadcastOn() broadcast.Channel { return broadcast.NewChannel(e.name) }

func (e *pointerEvent) BroadcastWith() broadcast.Payload { return broadcast.Payload{"name": e.name} }

func TestDecoratedDispatcher_TypedNilEvent(t *testing.T) {
	queue := &broadcasttest.Queue{}
	base, err := NewDispatcher(queue, zap.NewNop())
	require.NoError(t, err)
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	d := NewTracedDispatcher(NewMetricsDispatcher(base, metrics.NewRegistry()), tracing.NewTracerFromProvider(tp, "test"))

	var event *pointerEvent
	require.ErrorIs(t, d.Dispatch(context.Background(), event), broadcast.ErrNilEvent)
	require.Zero(t, queue.Len())

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	require.Equal(t, codes.Error, spans[0].Status().Code)
}

func TestMetricsDispatcher_RecordsOutcome(t *testing.T) {
	ctrl := gomock.NewController(t)
	inner := mocks.NewMockDispatcher(ctrl)
	registry := metrics.NewRegistry()
	d := NewMetricsDispatcher(inner, registry)

	event := broadcast.NewMessageEvent(1, "hi")
	failure := &broadcast.DeliveryError{Channel: event.BroadcastOn(), Err: errors.New("down")}
	gomock.InOrder(
		inner.EXPECT().Dispatch(gomock.Any(), event).Return(nil),
		inner.EXPECT().Dispatch(gomock.Any(), event).Return(failure),
	)

	require.NoError(t, d.Dispatch(context.Background(), event))
	require.ErrorIs(t, d.Dispatch(context.Background(), event), failure)

	require.NoError(t, testutil.GatherAndCompare(
		registry.Gatherer(),
		strings.NewReader(dispatchSeries),
		"broadcast_dispatch_total",
	))
}

func TestTracedDispatcher_RecordsSpan(t *testing.T) {
	ctrl := gomock.NewController(t)
	inner := mocks.NewMockDispatcher(ctrl)
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	d := NewTracedDispatcher(inner, tracing.NewTracerFromProvider(tp, "test"))

	event := broadcast.NewMessageEvent(1, "hi")
	cause := errors.New("down")
	gomock.InOrder(
		inner.EXPECT().Dispatch(gomock.Any(), event).Return(nil),
		inner.EXPECT().Dispatch(gomock.Any(), event).Return(cause),
	)

	require.NoError(t, d.Dispatch(context.Background(), event))
	require.ErrorIs(t, d.Dispatch(context.Background(), event), cause)

	spans := recorder.Ended()
	require.Len(t, spans, 2)
	require.Equal(t, "dispatcher.dispatch", spans[0].Name())
	require.Equal(t, codes.Ok, spans[0].Status().Code)
	require.Equal(t, codes.Error, spans[1].Status().Code)

	attrs := map[string]string{}
	for _, kv := range spans[0].Attributes() {
		attrs[string(kv.Key)] = kv.Value.Emit()
	}
	require.Equal(t, "message-box", attrs["broadcast.channel"])
	require.Equal(t, "message.new", attrs["broadcast.event"])
	require.Equal(t, "2", attrs["broadcast.payload_fields"])
}
