package domain

import (
	"path/filepath"
	"strings"
)

const (
	// CompatDirName is the name of the per-user metadata directory.
	CompatDirName = ".compat"

	// CacheDirName is the name of the disk cache directory.
	CacheDirName = "cache"

	// ConfigFileName is the name of the project configuration file.
	ConfigFileName = "compat.yaml"

	// NuGetConfigFileName is the canonical name of the NuGet feed configuration file.
	NuGetConfigFileName = "nuget.config"

	// DocumentSuffix is appended to lower-cased package IDs to form document keys and cache file names.
	DocumentSuffix = ".json.gz"

	// DefaultFramework is the target framework checked when none is configured.
	DefaultFramework = "net6.0"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// DefaultCacheRoot returns the default disk cache root.
// It joins .compat and cache.
func DefaultCacheRoot() string {
	return filepath.Join(CompatDirName, CacheDirName)
}

// DocumentName returns the deterministic document name for a package ID.
func DocumentName(packageID string) string {
	return strings.ToLower(packageID) + DocumentSuffix
}

// CachePath returns <root>/<contextHash>/<lower id>.json.gz.
func CachePath(root, contextHash, packageID string) string {
	return filepath.Join(root, contextHash, DocumentName(packageID))
}
