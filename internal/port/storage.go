package port

import (
	"context"
	"io"
)

// PutObjectInput describes one blob written to object storage.
type PutObjectInput struct {
	Key         string
	Body        io.Reader
	ContentType string
	Size        int64
}

// ObjectStorage is a blob store keyed by path. The bucket is fixed by the
// implementation.
type ObjectStorage interface {
	Put(ctx context.Context, input PutObjectInput) error
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
	SignedURL(ctx context.Context, key string, ttlSeconds int64) (string, error)
}
