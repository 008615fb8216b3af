package domain

import (
	"encoding/json"
	"slices"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// VersionSet is a sorted set of version strings.
// Semantic versions sort by precedence and come before anything that does not parse.
type VersionSet []string

// NewVersionSet builds a set from the given versions.
func NewVersionSet(versions ...string) VersionSet {
	set := make(VersionSet, 0, len(versions))
	for _, v := range versions {
		set = set.Add(v)
	}
	return set
}

// Add returns the set with v inserted.
func (s VersionSet) Add(v string) VersionSet {
	i, found := slices.BinarySearchFunc(s, v, CompareVersions)
	if found {
		return s
	}
	return slices.Insert(s, i, v)
}

// Contains reports whether v is a member of the set.
func (s VersionSet) Contains(v string) bool {
	_, found := slices.BinarySearchFunc(s, v, CompareVersions)
	return found
}

// MarshalJSON always emits an array, never null.
func (s VersionSet) MarshalJSON() ([]byte, error) {
	if s == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(s))
}

// UnmarshalJSON accepts an array in any order and normalises it.
func (s *VersionSet) UnmarshalJSON(data []byte) error {
	var raw []string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*s = NewVersionSet(raw...)
	return nil
}

// CompareVersions orders two version strings.
// Equal semantic versions spelled differently ("1.0" and "1.0.0") stay distinct.
func CompareVersions(a, b string) int {
	va, errA := semver.NewVersion(a)
	vb, errB := semver.NewVersion(b)

	switch {
	case errA == nil && errB == nil:
		if c := va.Compare(vb); c != 0 {
			return c
		}
		return strings.Compare(a, b)
	case errA == nil:
		return -1
	case errB == nil:
		return 1
	default:
		return strings.Compare(a, b)
	}
}
