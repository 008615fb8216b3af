package domain

import "strings"

// Manifest maps package IDs to blob keys. Lookups ignore case.
type Manifest struct {
	entries map[string]string
}

// NewManifest builds a manifest from the raw table.
func NewManifest(raw map[string]string) *Manifest {
	entries := make(map[string]string, len(raw))
	for id, key := range raw {
		entries[strings.ToLower(id)] = key
	}
	return &Manifest{entries: entries}
}

// Lookup returns the blob key for a package ID.
func (m *Manifest) Lookup(packageID string) (string, bool) {
	if m == nil {
		return "", false
	}
	key, ok := m.entries[strings.ToLower(packageID)]
	return key, ok
}

// BlobKey returns the manifest entry for packageID, or the deterministic document name.
func (m *Manifest) BlobKey(packageID string) string {
	if key, ok := m.Lookup(packageID); ok && key != "" {
		return key
	}
	return DocumentName(packageID)
}

// Len returns the number of entries.
func (m *Manifest) Len() int {
	if m == nil {
		return 0
	}
	return len(m.entries)
}
