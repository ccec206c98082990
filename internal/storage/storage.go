package storage

import "context"

// ObjectStorage is the archive sink for classified snapshots.
type ObjectStorage interface {
	PutObject(ctx context.Context, key string, payload []byte, contentType string) error
}
