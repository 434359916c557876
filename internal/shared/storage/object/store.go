package object

import (
	"context"
	"errors"
	"io"
)

// ErrNotFound is returned when a storage key has no object.
var ErrNotFound = errors.New("object not found")

// ObjectStore defines the contract for the documents bucket.
type ObjectStore interface {
	// Put writes r under key. size may be -1 when unknown. Returns bytes written.
	Put(ctx context.Context, key string, contentType string, r io.Reader, size int64) (int64, error)
	Remove(ctx context.Context, key string) error
	Open(ctx context.Context, key string) (io.ReadCloser, error)
}
