// internal/store/store.go
// Package store persists engine artifacts behind a flat byte-oriented
// backend. Catalogs, cached bar series and reports all live under
// slash-separated paths so every backend shares one layout.
package store

import "context"

// Backend is a flat artifact store keyed by slash-separated paths.
// Read reports a missing path with core.ErrNotFound; Delete of a missing
// path is a no-op.
type Backend interface {
	// Write stores data at the given path, replacing what was there.
	Write(ctx context.Context, path string, data []byte) error

	// Read retrieves the data stored at the given path.
	Read(ctx context.Context, path string) ([]byte, error)

	// List returns all stored paths under the prefix, sorted.
	List(ctx context.Context, prefix string) ([]string, error)

	// Delete removes the data at the given path.
	Delete(ctx context.Context, path string) error

	// Exists checks whether data exists at the given path.
	Exists(ctx context.Context, path string) (bool, error)
}
