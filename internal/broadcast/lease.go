package broadcast

import (
	"fmt"
	"time"

	"github.com/couchbase/gocb/v2"

	"broadcast/internal/couchbase"
)

// LeaseTimeout bounds how long a relay may hold an envelope before another
// relay of the same subscription can pick it up.
const LeaseTimeout = time.Minute

type Lease struct {
	ID           string    `json:"id"`
	Subscription string    `json:"subscription"`
	EnvelopeID   string    `json:"envelopeId"`
	Offset       uint64    `json:"offset"`
	Expires      time.Time `json:"expires"`
}

func NewLeasesStore(cluster *gocb.Cluster, bucket *gocb.Bucket, scope string) (*couchbase.Couchbase[Lease], error) {
	collection := bucket.Scope(scope).Collection("leases")
	store, err := couchbase.NewCouchbase[Lease](cluster, bucket, collection)
	if err != nil {
		return nil, err
	}

	return store, nil
}

func LeaseKey(sub, envelopeID string) string {
	return fmt.Sprintf("lease::%s::%s", sub, envelopeID)
}
