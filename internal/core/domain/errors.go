package domain

import (
	"context"
	"errors"
	"fmt"

	"go.trai.ch/zerr"
)

var (
	// ErrInvalidRequest is returned for a request with an empty package ID or version.
	ErrInvalidRequest = zerr.New("invalid package request")

	// ErrNoRequests is returned when a resolve call is made without packages.
	ErrNoRequests = zerr.New("no packages requested")

	// ErrPackageNotFound is returned when a source has no entry for the package.
	ErrPackageNotFound = zerr.New("package not found")

	// ErrBlobNotFound is returned by a blob store when the key does not exist.
	ErrBlobNotFound = zerr.New("blob not found")

	// ErrTransportFailure is returned when a store or feed cannot be reached.
	ErrTransportFailure = zerr.New("source unreachable")

	// ErrManifestUnavailable is returned for every key of a call when the manifest cannot be fetched.
	ErrManifestUnavailable = zerr.New("manifest unavailable")

	// ErrFeedsUnavailable is returned when the feed list for a solution cannot be obtained.
	ErrFeedsUnavailable = zerr.New("feed list unavailable")

	// ErrMalformedDocument is returned when a document cannot be decompressed or decoded.
	ErrMalformedDocument = zerr.New("malformed package document")

	// ErrTargetsInvariant is returned when a target framework lists a version unknown to the package.
	ErrTargetsInvariant = zerr.New("target version missing from package versions")

	// ErrProbeCancelled is returned by a feed probe when the existence check was cancelled.
	ErrProbeCancelled = zerr.New("feed probe cancelled")

	// ErrProbeFatal is returned when a feed probe hits an unexpected error.
	ErrProbeFatal = zerr.New("feed probe failed")

	// ErrAllCheckersFailed is returned when no configured checker could resolve a key.
	ErrAllCheckersFailed = zerr.New("no compatibility checker could resolve package")

	// ErrCheckerPanicked is returned for keys handed to a checker that panicked.
	ErrCheckerPanicked = zerr.New("compatibility checker panicked")

	// ErrResolutionIncomplete is returned by the application when at least one package failed.
	ErrResolutionIncomplete = zerr.New("some packages could not be resolved")

	// ErrUnknownChecker is returned when the configuration names an unknown checker.
	ErrUnknownChecker = zerr.New("unknown compatibility checker")

	// ErrUnknownStoreKind is returned when the configuration names an unknown blob store kind.
	ErrUnknownStoreKind = zerr.New("unknown blob store kind, expected 's3' or 'local'")

	// ErrInvalidPackageSpec is returned when a package argument is not of the form id@version.
	ErrInvalidPackageSpec = zerr.New("invalid package specification, expected format: id@version")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrFeedConfigParseFailed is returned when a nuget.config file cannot be parsed.
	ErrFeedConfigParseFailed = zerr.New("failed to parse nuget.config")

	// ErrDiskCacheReadFailed is returned when a disk cache entry cannot be opened.
	ErrDiskCacheReadFailed = zerr.New("failed to read disk cache entry")

	// ErrDiskCacheWriteFailed is returned when a disk cache entry cannot be written.
	ErrDiskCacheWriteFailed = zerr.New("failed to write disk cache entry")

	// ErrUnknownReportFormat is returned when a report is requested in an unsupported format.
	ErrUnknownReportFormat = zerr.New("unknown report format, expected 'text' or 'json'")

	// ErrRequestFileReadFailed is returned when a request file cannot be read.
	ErrRequestFileReadFailed = zerr.New("failed to read request file")
)

// Classify marks cause as belonging to class. Both remain reachable through errors.Is,
// which zerr.Wrap cannot offer since it keeps a single cause.
func Classify(class, cause error) error {
	if cause == nil {
		return class
	}
	return fmt.Errorf("%w: %w", class, cause)
}

// IsCancellation reports whether err is an expected, cancellation-class failure.
func IsCancellation(err error) bool {
	return errors.Is(err, ErrProbeCancelled) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded)
}

// IsTerminal reports whether err should stop the checker fallback chain for a key
// when partial failures are not tolerated. Failures of a shared resource never are.
func IsTerminal(err error) bool {
	if errors.Is(err, ErrManifestUnavailable) || errors.Is(err, ErrFeedsUnavailable) {
		return false
	}
	return errors.Is(err, ErrMalformedDocument) ||
		errors.Is(err, ErrTargetsInvariant) ||
		errors.Is(err, ErrProbeFatal)
}
