package ports

import (
	"context"

	"go.trai.ch/compat/internal/core/domain"
)

//go:generate go run go.uber.org/mock/mockgen -source=feeds.go -destination=mocks/mock_feeds.go -package=mocks

// FeedProvider returns the internal feeds that apply to a solution.
type FeedProvider interface {
	// Feeds returns the feeds for contextPath in the order they must be probed.
	Feeds(ctx context.Context, contextPath string) ([]domain.Feed, error)
}

// FeedProbe checks whether a package version exists on one feed.
type FeedProbe interface {
	// Exists may fail with a cancellation-class error (see domain.IsCancellation)
	// or any other error, which the caller treats as fatal.
	Exists(ctx context.Context, packageID, version string, feed domain.Feed) (bool, error)
}

// CompatibilityLookup is the authoritative compatibility check for a package hosted on internal feeds.
type CompatibilityLookup interface {
	CheckCompatibility(
		ctx context.Context,
		packageID, version, framework string,
		feeds []domain.Feed,
	) (*domain.CompatibilityResult, error)
}
