// Package diskcache persists compressed package documents on the local filesystem.
package diskcache

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	localfs "go.trai.ch/compat/internal/adapters/fs"
	"go.trai.ch/compat/internal/core/domain"
	"go.trai.ch/compat/internal/core/ports"
	"go.trai.ch/zerr"
)

// tempPattern names in-flight writes. They never match a document name.
const tempPattern = "*.tmp-*"

var _ ports.DiskCache = (*Cache)(nil)

// Cache implements ports.DiskCache. Writes land in a temp file next to the
// target and are renamed into place on Close, so readers never see a partial entry.
type Cache struct {
	walker *localfs.Walker
}

// New creates a Cache.
func New(walker *localfs.Walker) *Cache {
	if walker == nil {
		walker = localfs.NewWalker()
	}
	return &Cache{walker: walker}
}

// Exists reports whether a regular file is present at path.
func (c *Cache) Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// OpenRead opens the entry at path.
func (c *Cache) OpenRead(path string) (io.ReadCloser, error) {
	//nolint:gosec // Path is built from the cache root and a hashed namespace
	f, err := os.Open(path)
	if err != nil {
		return nil, zerr.With(domain.Classify(domain.ErrDiskCacheReadFailed, err), "path", path)
	}
	return f, nil
}

// OpenWrite creates the parent directories of path and returns a writer whose
// Close publishes the entry. The last writer to close wins.
func (c *Cache) OpenWrite(path string) (io.WriteCloser, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return nil, zerr.With(domain.Classify(domain.ErrDiskCacheWriteFailed, err), "path", path)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return nil, zerr.With(domain.Classify(domain.ErrDiskCacheWriteFailed, err), "path", path)
	}

	return &entryWriter{file: tmp, target: path}, nil
}

// Clear removes root and everything below it. It reports how many documents were removed.
// A missing root is not an error.
func (c *Cache) Clear(root string) (int, error) {
	if root == "" {
		return 0, zerr.With(zerr.Wrap(domain.ErrDiskCacheWriteFailed, "refusing to clear empty cache root"), "path", root)
	}

	count := 0
	for path := range c.walker.WalkFiles(root, []string{tempPattern}) {
		if strings.HasSuffix(path, domain.DocumentSuffix) {
			count++
		}
	}

	if err := os.RemoveAll(root); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return 0, zerr.With(domain.Classify(domain.ErrDiskCacheWriteFailed, err), "path", root)
	}
	return count, nil
}

type entryWriter struct {
	file   *os.File
	target string
	failed bool
}

func (w *entryWriter) Write(p []byte) (int, error) {
	n, err := w.file.Write(p)
	if err != nil {
		w.failed = true
	}
	return n, err
}

// Close publishes the entry unless a write failed, in which case the temp file is discarded.
func (w *entryWriter) Close() error {
	tmpName := w.file.Name()
	defer func() {
		if _, err := os.Stat(tmpName); err == nil {
			_ = os.Remove(tmpName)
		}
	}()

	if err := w.file.Close(); err != nil {
		return zerr.With(domain.Classify(domain.ErrDiskCacheWriteFailed, err), "path", w.target)
	}
	if w.failed {
		return zerr.With(zerr.Wrap(domain.ErrDiskCacheWriteFailed, "discarding partial entry"), "path", w.target)
	}

	if err := os.Chmod(tmpName, domain.FilePerm); err != nil {
		return zerr.With(domain.Classify(domain.ErrDiskCacheWriteFailed, err), "path", w.target)
	}
	if err := os.Rename(tmpName, w.target); err != nil {
		return zerr.With(domain.Classify(domain.ErrDiskCacheWriteFailed, err), "path", w.target)
	}
	return nil
}
