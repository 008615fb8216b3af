// Package feeds discovers the internal package feeds that apply to a solution.
package feeds

import (
	"context"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/compat/internal/core/domain"
	"go.trai.ch/compat/internal/core/ports"
	"go.trai.ch/zerr"
)

const publicFeedHost = "api.nuget.org"

var _ ports.FeedProvider = (*Provider)(nil)

// Provider merges the nearest nuget.config above a solution with the feeds
// configured in compat.yaml. The public gallery is never returned.
type Provider struct {
	configured []domain.Feed
	logger     ports.Logger
}

// NewProvider creates a Provider. configured feeds are appended after the nuget.config ones.
func NewProvider(configured []domain.Feed, logger ports.Logger) *Provider {
	return &Provider{configured: configured, logger: logger}
}

// Feeds returns the feeds for contextPath in probe order, de-duplicated by name.
func (p *Provider) Feeds(ctx context.Context, contextPath string) ([]domain.Feed, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var found []domain.Feed
	path, ok, err := findNuGetConfig(startDir(contextPath))
	if err != nil {
		return nil, err
	}
	if ok {
		found, err = readNuGetConfig(path)
		if err != nil {
			return nil, err
		}
	}

	merged := make([]domain.Feed, 0, len(found)+len(p.configured))
	seen := make(map[string]struct{}, cap(merged))
	for _, feed := range append(found, p.configured...) {
		if isPublicFeed(feed) {
			continue
		}
		name := strings.ToLower(feed.Name)
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		merged = append(merged, feed)
	}

	if len(merged) == 0 && p.logger != nil {
		p.logger.Info("no internal feeds configured for " + contextPath)
	}
	return merged, nil
}

func startDir(contextPath string) string {
	if contextPath == "" {
		return "."
	}
	if info, err := os.Stat(contextPath); err == nil && info.IsDir() {
		return contextPath
	}
	return filepath.Dir(contextPath)
}

// findNuGetConfig walks up from dir and returns the first file whose name
// matches nuget.config ignoring case.
func findNuGetConfig(dir string) (string, bool, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", false, zerr.Wrap(err, "failed to resolve solution directory")
	}

	for {
		entries, err := os.ReadDir(dir)
		if err == nil {
			for _, entry := range entries {
				if !entry.IsDir() && strings.EqualFold(entry.Name(), domain.NuGetConfigFileName) {
					return filepath.Join(dir, entry.Name()), true, nil
				}
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false, nil
		}
		dir = parent
	}
}

func readNuGetConfig(path string) ([]domain.Feed, error) {
	//nolint:gosec // Path is discovered by walking up from the solution directory
	f, err := os.Open(path)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to open nuget.config"), "path", path)
	}
	defer f.Close() //nolint:errcheck // Read-only file

	feeds, err := parseNuGetConfig(f)
	if err != nil {
		return nil, zerr.With(err, "path", path)
	}
	return feeds, nil
}

func isPublicFeed(feed domain.Feed) bool {
	if strings.EqualFold(feed.Name, "nuget.org") {
		return true
	}
	u, err := url.Parse(feed.URL)
	return err == nil && strings.EqualFold(u.Hostname(), publicFeedHost)
}
