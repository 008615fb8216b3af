package checker

import (
	"context"
	"fmt"
	"slices"

	"go.trai.ch/compat/internal/core/domain"
	"go.trai.ch/compat/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// maxConcurrentPackages bounds the packages probed at once against the feeds.
const maxConcurrentPackages = 16

// InternalChecker resolves packages hosted on the private feeds of a solution.
// Details carry only the requested version and the configured framework, whose
// entry is an empty set when compatibility could not be established.
type InternalChecker struct {
	provider  ports.FeedProvider
	exists    ports.FeedProbe
	lookup    ports.CompatibilityLookup
	logger    ports.Logger
	framework string

	feedGroup singleflight.Group
}

// NewInternalChecker creates the internal feed checker. An empty framework selects domain.DefaultFramework.
func NewInternalChecker(
	provider ports.FeedProvider,
	exists ports.FeedProbe,
	lookup ports.CompatibilityLookup,
	logger ports.Logger,
	framework string,
) *InternalChecker {
	if framework == "" {
		framework = domain.DefaultFramework
	}
	return &InternalChecker{
		provider:  provider,
		exists:    exists,
		lookup:    lookup,
		logger:    logger,
		framework: framework,
	}
}

// Name returns domain.CheckerInternal.
func (c *InternalChecker) Name() string {
	return domain.CheckerInternal
}

// Check fails the whole call when the feed list cannot be obtained. Otherwise each
// package is probed on its own goroutine, its versions in ascending order, with at
// most maxConcurrentPackages packages in flight.
func (c *InternalChecker) Check(
	ctx context.Context,
	requests []domain.PackageVersionPair,
	opts ports.CheckOptions,
) (map[domain.PackageVersionPair]ports.DetailsFuture, error) {
	feeds, err := c.loadFeeds(ctx, opts.ContextPath)
	if err != nil {
		return nil, err
	}

	results := make(map[domain.PackageVersionPair]ports.DetailsFuture, len(requests))
	byKey := make(map[domain.PackageKey]ports.DetailsFuture)
	packages := make(map[string][]domain.PackageVersionPair)

	for _, req := range requests {
		key := req.Key()
		fut, ok := byKey[key]
		if !ok {
			fut = domain.NewFuture[*domain.PackageDetails]()
			byKey[key] = fut
			packages[key.ID] = append(packages[key.ID], req)
		}
		results[req] = fut
	}

	go func() {
		var g errgroup.Group
		g.SetLimit(maxConcurrentPackages)
		for id, pairs := range packages {
			slices.SortFunc(pairs, func(a, b domain.PackageVersionPair) int {
				return domain.CompareVersions(a.Version, b.Version)
			})
			futures := make([]ports.DetailsFuture, len(pairs))
			for i, pair := range pairs {
				futures[i] = byKey[pair.Key()]
			}
			g.Go(func() error {
				c.checkPackage(ctx, id, feeds, pairs, futures)
				return nil
			})
		}
		_ = g.Wait()
	}()

	return results, nil
}

func (c *InternalChecker) loadFeeds(ctx context.Context, contextPath string) ([]domain.Feed, error) {
	v, err, _ := c.feedGroup.Do(contextPath, func() (any, error) {
		return c.provider.Feeds(ctx, contextPath)
	})
	if err != nil {
		feedErr := zerr.Wrap(domain.Classify(domain.ErrFeedsUnavailable, err), "load feeds")
		return nil, zerr.With(feedErr, "context_path", contextPath)
	}
	feeds, _ := v.([]domain.Feed)
	return feeds, nil
}

// checkPackage probes the versions of one package in order. Once a probe turns
// fatal, the remaining versions fail with the same error without being probed.
func (c *InternalChecker) checkPackage(
	ctx context.Context,
	id string,
	feeds []domain.Feed,
	pairs []domain.PackageVersionPair,
	futures []ports.DetailsFuture,
) {
	defer zerr.Defer(func(err error) {
		panicErr := zerr.With(domain.Classify(domain.ErrCheckerPanicked, err), "package_id", id)
		for _, fut := range futures {
			fut.Resolve(nil, panicErr)
		}
	})

	probe := NewProbe(feeds, c.exists, c.logger)
	var fatal error

	for i, pair := range pairs {
		if fatal != nil {
			futures[i].Resolve(nil, fatal)
			continue
		}

		out := probe.Run(ctx, pair.PackageID, pair.Version)
		switch out.State {
		case domain.ProbeFound:
			futures[i].Resolve(c.details(ctx, pair, foundFirst(feeds, out.Feed)), nil)
		case domain.ProbeFatal:
			fatal = out.Err
			futures[i].Resolve(nil, out.Err)
		default:
			futures[i].Resolve(nil, out.Err)
		}
	}
}

// foundFirst moves the feed that reported the package to the front.
func foundFirst(feeds []domain.Feed, found domain.Feed) []domain.Feed {
	ordered := make([]domain.Feed, 0, len(feeds))
	ordered = append(ordered, found)
	for _, f := range feeds {
		if f != found {
			ordered = append(ordered, f)
		}
	}
	return ordered
}

// details asks the authoritative lookup for compatibility. A failed lookup still
// yields details, with an empty set for the framework.
func (c *InternalChecker) details(
	ctx context.Context,
	pair domain.PackageVersionPair,
	feeds []domain.Feed,
) *domain.PackageDetails {
	compatible := domain.VersionSet{}

	res, err := c.lookup.CheckCompatibility(ctx, pair.PackageID, pair.Version, c.framework, feeds)
	switch {
	case err != nil && domain.IsCancellation(err):
		c.logger.Info(fmt.Sprintf("compatibility lookup for %s was cancelled", pair))
	case err != nil:
		lookupErr := zerr.With(zerr.Wrap(err, "compatibility lookup failed"), "package_id", pair.PackageID)
		c.logger.Error(zerr.With(lookupErr, "version", pair.Version))
	case res != nil && res.IsCompatible:
		compatible = compatible.Add(pair.Version)
	}

	return &domain.PackageDetails{
		Name:     pair.PackageID,
		Versions: domain.NewVersionSet(pair.Version),
		Api:      []domain.ApiDetails{},
		Targets:  map[string]domain.VersionSet{c.framework: compatible},
	}
}
