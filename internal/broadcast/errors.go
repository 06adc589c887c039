package broadcast

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrNilEvent     = errors.New("nil event")
	ErrValidation   = errors.New("payload validation failed")
	ErrDelivery     = errors.New("delivery failed")
	ErrConstruction = errors.New("event construction failed")
	ErrQueueFull    = errors.New("queue is full")
	ErrQueueClosed  = errors.New("queue is closed")
)

// ConstructionError reports an event that could not be rebuilt from a
// payload because a field is missing or has the wrong type.
type ConstructionError struct {
	Event  string
	Field  string
	Reason string
}

func (e *ConstructionError) Error() string {
	return fmt.Sprintf("failed to construct %s: field %s: %s", e.Event, e.Field, e.Reason)
}

func (e *ConstructionError) Is(target error) bool {
	return target == ErrConstruction
}

// ValidationError reports payload rule violations. An event failing
// validation is never queued.
type ValidationError struct {
	Event  string
	Fields map[string]error
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	return fmt.Sprintf("invalid payload for %s: fields [%s]", e.Event, strings.Join(fields, ", "))
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// DeliveryError wraps a queue failure. The queue's error is reachable with
// errors.Unwrap, errors.Is and errors.As.
type DeliveryError struct {
	Channel Channel
	Err     error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("failed to enqueue on channel %s: %v", e.Channel.Name, e.Err)
}

func (e *DeliveryError) Unwrap() error {
	return e.Err
}

func (e *DeliveryError) Is(target error) bool {
	return target == ErrDelivery
}
