package broadcast

import (
	"fmt"

	"github.com/couchbase/gocb/v2"

	"broadcast/internal/couchbase"
)

// NewOffsetsStore returns the collection holding one counter document per
// channel. The counter value is the number of offsets reserved so far.
func NewOffsetsStore(cluster *gocb.Cluster, bucket *gocb.Bucket, scope string) (*couchbase.Couchbase[uint64], error) {
	collection := bucket.Scope(scope).Collection("offsets")
	store, err := couchbase.NewCouchbase[uint64](cluster, bucket, collection)
	if err != nil {
		return nil, err
	}

	return store, nil
}

func OffsetKey(channel string) string {
	return fmt.Sprintf("offset::%s", channel)
}
