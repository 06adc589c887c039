package dispatcher

import (
	"context"

	"broadcast/internal/broadcast"
	"broadcast/internal/broadcast/tracing"
	"broadcast/internal/validator"
)

// TracedDispatcher wraps a broadcast.Dispatcher with distributed tracing
// Layer order: TracedDispatcher -> MetricsDispatcher -> Dispatcher (real thing)
type TracedDispatcher struct {
	dispatcher broadcast.Dispatcher
	tracer     *tracing.Tracer
}

func NewTracedDispatcher(dispatcher broadcast.Dispatcher, tracer *tracing.Tracer) broadcast.Dispatcher {
	return &TracedDispatcher{
		dispatcher: dispatcher,
		tracer:     tracer,
	}
}

// Dispatch implements broadcast.Dispatcher.Dispatch with distributed tracing
func (d *TracedDispatcher) Dispatch(ctx context.Context, event broadcast.Event) error {
	ctx, span := d.tracer.StartSpan(ctx, "dispatcher.dispatch")
	if !validator.IsNil(event) {
		span.SetAttributes(d.tracer.DispatchAttributes(
			event.BroadcastOn().Name,
			event.BroadcastAs(),
			len(event.BroadcastWith()),
		)...)
	}

	err := d.dispatcher.Dispatch(ctx, event)
	d.tracer.End(ctx, err)

	return err
}
