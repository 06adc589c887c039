package broadcast

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
	"slices"

	"github.com/samber/lo"
)

// Payload is the flat key/value form of an event sent to subscribers.
type Payload map[string]any

// Clone returns a shallow copy. Values are scalars, so a shallow copy is a
// full copy for every payload produced by this package.
func (p Payload) Clone() Payload {
	if p == nil {
		return Payload{}
	}

	return maps.Clone(p)
}

// Keys returns the payload keys in sorted order.
func (p Payload) Keys() []string {
	keys := lo.Keys(p)
	slices.Sort(keys)
	return keys
}

// UnmarshalJSON decodes numbers as json.Number so integer fields such as
// sender_id survive a round trip through storage without becoming floats.
func (p *Payload) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var m map[string]any
	if err := dec.Decode(&m); err != nil {
		return fmt.Errorf("failed to decode payload: %w", err)
	}

	*p = m
	return nil
}
