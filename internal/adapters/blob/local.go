package blob

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/compat/internal/core/domain"
	"go.trai.ch/compat/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.BlobStore = (*LocalStore)(nil)

// LocalStore implements ports.BlobStore over a directory mirroring the bucket layout.
type LocalStore struct {
	root string
}

// NewLocalStore creates a store rooted at root.
func NewLocalStore(root string) *LocalStore {
	return &LocalStore{root: filepath.Clean(root)}
}

// Fetch opens root/key. Keys that escape the root are reported as missing.
func (l *LocalStore) Fetch(ctx context.Context, key string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, zerr.With(domain.Classify(domain.ErrTransportFailure, err), "key", key)
	}

	path := filepath.Join(l.root, filepath.FromSlash(key))
	if rel, err := filepath.Rel(l.root, path); err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return nil, zerr.With(zerr.Wrap(domain.ErrBlobNotFound, "key outside store root"), "key", key)
	}

	//nolint:gosec // Path is confined to the store root above
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, zerr.With(zerr.Wrap(domain.ErrBlobNotFound, "open blob"), "key", key)
		}
		return nil, zerr.With(domain.Classify(domain.ErrTransportFailure, err), "key", key)
	}
	return f, nil
}
