package ports

import (
	"context"

	"go.trai.ch/compat/internal/core/domain"
)

// CheckOptions carries the per-call settings of a compatibility check.
type CheckOptions struct {
	// ContextPath is the solution or project the packages belong to.
	ContextPath string
	// PersistToDisk enables the disk cache namespaced by ContextPath.
	PersistToDisk bool
}

// DetailsFuture is the deferred result of one package lookup.
type DetailsFuture = *domain.Future[*domain.PackageDetails]

// CompatibilityChecker turns a batch of requests into deferred package details.
//
//go:generate go run go.uber.org/mock/mockgen -source=checker.go -destination=mocks/mock_checker.go -package=mocks
type CompatibilityChecker interface {
	// Name identifies the checker in logs and traces.
	Name() string

	// Check returns one future per distinct request. Identical requests share a future.
	// A non-nil error means a resource shared by the whole call failed and no
	// request was attempted.
	Check(
		ctx context.Context,
		requests []domain.PackageVersionPair,
		opts CheckOptions,
	) (map[domain.PackageVersionPair]DetailsFuture, error)
}
