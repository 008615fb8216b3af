package fs

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"go.trai.ch/compat/internal/core/ports"
)

var _ ports.PathHasher = (*Hasher)(nil)

// Hasher derives disk cache namespaces from solution paths.
type Hasher struct{}

// NewHasher creates a new Hasher.
func NewHasher() *Hasher {
	return &Hasher{}
}

// Hash returns the upper-case hex SHA-256 digest of the UTF-8 bytes of path.
// The path is hashed as given; callers decide whether to make it absolute first.
func (h *Hasher) Hash(path string) string {
	sum := sha256.Sum256([]byte(path))
	return strings.ToUpper(hex.EncodeToString(sum[:]))
}
