package checker

import (
	"context"
	"strings"
	"sync"

	"go.trai.ch/compat/internal/core/domain"
	"go.trai.ch/compat/internal/core/ports"
	"go.trai.ch/compat/internal/engine/flight"
	"go.trai.ch/zerr"
	"golang.org/x/sync/singleflight"
)

// Source names a published dataset: its checker name and the key of its manifest.
type Source struct {
	Name        string
	ManifestKey string
}

// Published datasets served by BlobChecker.
var (
	ExternalSource = Source{
		Name:        domain.CheckerExternal,
		ManifestKey: "microsoftlibs.packages.lookup.json",
	}
	SDKSource = Source{
		Name:        domain.CheckerSDK,
		ManifestKey: "microsoftlibs.namespace.lookup.json",
	}
	PortabilitySource = Source{
		Name:        domain.CheckerPortability,
		ManifestKey: "portabilityanalyzer.catalog.lookup.json",
	}
)

// BlobChecker resolves packages from gzip JSON documents in a blob store,
// optionally backed by a disk cache namespaced per solution.
type BlobChecker struct {
	source    Source
	store     ports.BlobStore
	disk      ports.DiskCache
	hasher    ports.PathHasher
	logger    ports.Logger
	cacheRoot string

	manifestGroup singleflight.Group
	manifestMu    sync.RWMutex
	manifest      *domain.Manifest

	documents *flight.Group[*domain.PackageDetails]
}

// NewBlobChecker creates a checker for source. No I/O happens until Check.
func NewBlobChecker(
	source Source,
	store ports.BlobStore,
	disk ports.DiskCache,
	hasher ports.PathHasher,
	logger ports.Logger,
	cacheRoot string,
) *BlobChecker {
	return &BlobChecker{
		source:    source,
		store:     store,
		disk:      disk,
		hasher:    hasher,
		logger:    logger,
		cacheRoot: cacheRoot,
		documents: flight.New[*domain.PackageDetails](flight.ForgetFailures()),
	}
}

// Name returns the checker name of the source.
func (c *BlobChecker) Name() string {
	return c.source.Name
}

// Check returns one future per distinct request. All versions of a package share
// one document, fetched at most once while in flight.
func (c *BlobChecker) Check(
	ctx context.Context,
	requests []domain.PackageVersionPair,
	opts ports.CheckOptions,
) (map[domain.PackageVersionPair]ports.DetailsFuture, error) {
	contextHash := ""
	if opts.PersistToDisk {
		contextHash = c.hasher.Hash(opts.ContextPath)
	}

	// One manifest attempt per call, shared by every package of the call.
	manifest := sync.OnceValues(func() (*domain.Manifest, error) {
		return c.loadManifest(ctx)
	})

	byID := make(map[string]ports.DetailsFuture)
	results := make(map[domain.PackageVersionPair]ports.DetailsFuture, len(requests))
	for _, req := range requests {
		id := strings.ToLower(req.PackageID)
		fut, ok := byID[id]
		if !ok {
			packageID := req.PackageID
			fut, _ = c.documents.Do(c.memoKey(id, contextHash), func() (*domain.PackageDetails, error) {
				return c.load(ctx, packageID, contextHash, manifest)
			})
			byID[id] = fut
		}
		results[req] = fut
	}
	return results, nil
}

func (c *BlobChecker) memoKey(id, contextHash string) string {
	if contextHash == "" {
		return id
	}
	return id + "|" + contextHash
}

func (c *BlobChecker) load(
	ctx context.Context,
	packageID, contextHash string,
	manifest func() (*domain.Manifest, error),
) (*domain.PackageDetails, error) {
	cachePath := ""
	if contextHash != "" {
		cachePath = domain.CachePath(c.cacheRoot, contextHash, packageID)
		if details, ok := c.readDisk(cachePath, packageID); ok {
			return details, nil
		}
	}

	m, err := manifest()
	if err != nil {
		return nil, err
	}

	details, err := c.fetchDocument(ctx, packageID, m.BlobKey(packageID))
	if err != nil {
		return nil, err
	}

	if cachePath != "" {
		c.writeDisk(cachePath, packageID, details)
	}
	return details, nil
}

func (c *BlobChecker) readDisk(path, packageID string) (*domain.PackageDetails, bool) {
	if !c.disk.Exists(path) {
		return nil, false
	}
	rc, err := c.disk.OpenRead(path)
	if err != nil {
		c.logger.Warn("disk cache unreadable for " + packageID + ": " + err.Error())
		return nil, false
	}
	defer func() { _ = rc.Close() }()

	details, err := DecodeDetails(rc)
	if err != nil {
		c.logger.Warn("disk cache entry corrupt for " + packageID + ", refetching: " + err.Error())
		return nil, false
	}
	if details.IsEmpty() {
		c.logger.Warn("disk cache entry empty for " + packageID + ", refetching")
		return nil, false
	}
	return details, true
}

func (c *BlobChecker) writeDisk(path, packageID string, details *domain.PackageDetails) {
	wc, err := c.disk.OpenWrite(path)
	if err != nil {
		c.logger.Warn("disk cache write failed for " + packageID + ": " + err.Error())
		return
	}
	if err := EncodeDetails(wc, details); err != nil {
		_ = wc.Close()
		c.logger.Warn("disk cache write failed for " + packageID + ": " + err.Error())
		return
	}
	if err := wc.Close(); err != nil {
		c.logger.Warn("disk cache write failed for " + packageID + ": " + err.Error())
	}
}

func (c *BlobChecker) fetchDocument(ctx context.Context, packageID, key string) (*domain.PackageDetails, error) {
	rc, err := c.store.Fetch(ctx, key)
	if err != nil {
		fetchErr := zerr.With(zerr.Wrap(err, "fetch package document"), "package_id", packageID)
		return nil, zerr.With(fetchErr, "key", key)
	}
	defer func() { _ = rc.Close() }()

	details, err := DecodeWrapped(rc)
	if err != nil {
		decodeErr := zerr.With(zerr.Wrap(err, "decode package document"), "package_id", packageID)
		return nil, zerr.With(decodeErr, "key", key)
	}
	return details, nil
}

// loadManifest returns the memoised manifest, fetching it if needed.
// Concurrent callers share one fetch; a failure is returned to those callers only.
func (c *BlobChecker) loadManifest(ctx context.Context) (*domain.Manifest, error) {
	c.manifestMu.RLock()
	m := c.manifest
	c.manifestMu.RUnlock()
	if m != nil {
		return m, nil
	}

	v, err, _ := c.manifestGroup.Do(c.source.ManifestKey, func() (any, error) {
		rc, err := c.store.Fetch(ctx, c.source.ManifestKey)
		if err != nil {
			return nil, err
		}
		defer func() { _ = rc.Close() }()

		m, err := DecodeManifest(rc)
		if err != nil {
			return nil, err
		}

		c.manifestMu.Lock()
		c.manifest = m
		c.manifestMu.Unlock()
		return m, nil
	})
	if err != nil {
		manifestErr := zerr.Wrap(domain.Classify(domain.ErrManifestUnavailable, err), "load manifest")
		return nil, zerr.With(manifestErr, "key", c.source.ManifestKey)
	}
	return v.(*domain.Manifest), nil
}
