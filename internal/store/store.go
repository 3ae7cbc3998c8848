// Package store provides the key-value blob store backends and the record
// store that keeps the lesson collection under a single key.
package store

import (
	"context"
	"errors"
)

// ErrKeyNotFound is returned by Get when the key holds no value.
var ErrKeyNotFound = errors.New("key not found")

// BlobStore is an opaque key-value store of serialized text payloads.
type BlobStore interface {
	// Get returns the value stored under key, or ErrKeyNotFound.
	Get(ctx context.Context, key string) (string, error)

	// Set replaces the value stored under key.
	Set(ctx context.Context, key, value string) error

	// Close releases the backend.
	Close() error
}
