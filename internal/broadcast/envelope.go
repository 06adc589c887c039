package broadcast

import (
	"fmt"
	"time"

	"github.com/couchbase/gocb/v2"

	"broadcast/internal/couchbase"
)

// EnvelopesCollection holds the channel logs.
const EnvelopesCollection = "envelopes"

// Envelope is a payload persisted on a channel's log, waiting to be relayed
// to subscribers.
type Envelope struct {
	ID         string     `json:"id"`
	Channel    string     `json:"channel"`
	Offset     uint64     `json:"offset"`
	DispatchID string     `json:"dispatchId"`
	Payload    Payload    `json:"payload"`
	QueuedAt   *time.Time `json:"queuedAt,omitempty"`
}

func NewEnvelopesStore(cluster *gocb.Cluster, bucket *gocb.Bucket, scope string) (*couchbase.Couchbase[Envelope], error) {
	collection := bucket.Scope(scope).Collection(EnvelopesCollection)
	store, err := couchbase.NewCouchbase[Envelope](cluster, bucket, collection)
	if err != nil {
		return nil, err
	}

	return store, nil
}

func EnvelopeKey(channel string, offset uint64) string {
	return fmt.Sprintf("envelope::%s::%d", channel, offset)
}
