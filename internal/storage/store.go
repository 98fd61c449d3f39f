// Package storage provides the object-storage bucket that is the service's
// only persistent store.
package storage

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned (wrapped) by Get when the key does not exist.
var ErrNotFound = errors.New("object not found")

// Object describes a stored object as returned by List.
type Object struct {
	Key          string
	Size         int64
	LastModified time.Time
	ContentType  string
}

// PutOptions carries optional HTTP metadata for a write.
type PutOptions struct {
	ContentType  string
	CacheControl string
}

// ObjectStore reads and writes whole objects by key.
type ObjectStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, body []byte, opts PutOptions) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context, prefix string) ([]Object, error)
}

// IsNotFound reports whether err means the key was missing.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
