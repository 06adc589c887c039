package broadcast

import (
	"fmt"

	"github.com/couchbase/gocb/v2"

	"broadcast/internal/couchbase"
)

// Cursor is the next offset a subscription reads from on a channel.
type Cursor struct {
	ID           string `json:"id"`
	Channel      string `json:"channel"`
	Subscription string `json:"subscription"`
	Offset       uint64 `json:"offset"`
}

func NewCursorsStore(cluster *gocb.Cluster, bucket *gocb.Bucket, scope string) (*couchbase.Couchbase[Cursor], error) {
	collection := bucket.Scope(scope).Collection("cursors")
	store, err := couchbase.NewCouchbase[Cursor](cluster, bucket, collection)
	if err != nil {
		return nil, err
	}

	return store, nil
}

func CursorKey(channel, sub string) string {
	return fmt.Sprintf("cursor::%s::%s", channel, sub)
}
