// Package storage holds the object-store contract shared by the local and
// remote backends, and the raw-table source built on top of it.
package storage

import (
	"context"

	crerr "github.com/cockroachdb/errors"
)

// ErrObjectNotFound is wrapped by every backend when a key does not exist.
var ErrObjectNotFound = crerr.New("object not found")

// Bucket is a flat key/value object store. Keys use "/" separators, e.g.
// "raw/all_results_2025-01-05.csv".
type Bucket interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, data []byte) error
	Exists(ctx context.Context, key string) (bool, error)
}

// IsNotFound reports whether err means the key is absent.
func IsNotFound(err error) bool {
	return crerr.Is(err, ErrObjectNotFound)
}
