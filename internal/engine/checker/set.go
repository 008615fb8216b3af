// Package checker implements the compatibility checker strategies.
//
// BlobChecker serves the published datasets (external packages, SDK namespaces
// and the portability catalog) from a blob store with a per-solution disk cache.
// InternalChecker probes the private feeds of a solution and asks an
// authoritative lookup for compatibility.
package checker

import (
	"go.trai.ch/compat/internal/core/domain"
	"go.trai.ch/compat/internal/core/ports"
	"go.trai.ch/zerr"
)

// Set is the ordered list of checkers tried for every key.
type Set []ports.CompatibilityChecker

// Deps are the collaborators checkers are built from.
type Deps struct {
	Store  ports.BlobStore
	Disk   ports.DiskCache
	Hasher ports.PathHasher
	Feeds  ports.FeedProvider
	Probe  ports.FeedProbe
	Lookup ports.CompatibilityLookup
	Logger ports.Logger
}

// NewSet builds the checkers named in cfg.Checkers, in that order.
func NewSet(cfg *domain.Config, deps Deps) (Set, error) {
	names := cfg.Checkers
	if len(names) == 0 {
		names = domain.DefaultCheckers()
	}

	set := make(Set, 0, len(names))
	for _, name := range names {
		switch name {
		case domain.CheckerExternal:
			set = append(set, newBlob(ExternalSource, cfg, deps))
		case domain.CheckerSDK:
			set = append(set, newBlob(SDKSource, cfg, deps))
		case domain.CheckerPortability:
			set = append(set, newBlob(PortabilitySource, cfg, deps))
		case domain.CheckerInternal:
			set = append(set, NewInternalChecker(deps.Feeds, deps.Probe, deps.Lookup, deps.Logger, cfg.Framework))
		default:
			return nil, zerr.With(zerr.Wrap(domain.ErrUnknownChecker, "build checkers"), "checker", name)
		}
	}
	return set, nil
}

// Names returns the checker names in order.
func (s Set) Names() []string {
	names := make([]string, len(s))
	for i, c := range s {
		names[i] = c.Name()
	}
	return names
}

func newBlob(source Source, cfg *domain.Config, deps Deps) *BlobChecker {
	return NewBlobChecker(source, deps.Store, deps.Disk, deps.Hasher, deps.Logger, cfg.CacheRoot)
}
