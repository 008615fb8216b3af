// Package ports defines the core interfaces for the application.
package ports

import (
	"context"
	"io"
)

// BlobStore fetches published metadata artifacts by key.
//
//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type BlobStore interface {
	// Fetch opens the artifact stored under key.
	// It fails with domain.ErrBlobNotFound for a missing key and
	// domain.ErrTransportFailure when the store cannot be reached.
	Fetch(ctx context.Context, key string) (io.ReadCloser, error)
}

// DiskCache persists compressed package documents across runs.
type DiskCache interface {
	// Exists reports whether an entry is present at path.
	Exists(path string) bool
	// OpenRead opens the compressed entry at path.
	OpenRead(path string) (io.ReadCloser, error)
	// OpenWrite opens path for writing. The entry becomes visible when the writer is closed.
	OpenWrite(path string) (io.WriteCloser, error)
	// Clear removes every entry below root and reports how many documents were removed.
	Clear(root string) (int, error)
}
