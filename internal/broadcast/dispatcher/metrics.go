package dispatcher

import (
	"context"
	"errors"
	"time"

	"broadcast/internal/broadcast"
	"broadcast/internal/broadcast/metrics"
	"broadcast/internal/validator"
)

// MetricsDispatcher wraps a broadcast.Dispatcher with metrics collection
type MetricsDispatcher struct {
	dispatcher broadcast.Dispatcher
	registry   *metrics.Registry
}

func NewMetricsDispatcher(dispatcher broadcast.Dispatcher, registry *metrics.Registry) broadcast.Dispatcher {
	return &MetricsDispatcher{
		dispatcher: dispatcher,
		registry:   registry,
	}
}

// Dispatch implements broadcast.Dispatcher.Dispatch with metrics collection
func (d *MetricsDispatcher) Dispatch(ctx context.Context, event broadcast.Event) error {
	if validator.IsNil(event) {
		return d.dispatcher.Dispatch(ctx, event)
	}

	start := time.Now()
	err := d.dispatcher.Dispatch(ctx, event)
	duration := time.Since(start)

	d.registry.RecordDispatch(event.BroadcastOn().Name, event.BroadcastAs(), dispatchStatus(err), duration)

	return err
}

func dispatchStatus(err error) string {
	switch {
	case err == nil:
		return metrics.StatusSuccess
	case errors.Is(err, broadcast.ErrValidation):
		return metrics.StatusValidationError
	case errors.Is(err, broadcast.ErrDelivery):
		return metrics.StatusDeliveryError
	default:
		return metrics.StatusError
	}
}
