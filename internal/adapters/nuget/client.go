// Package nuget talks to NuGet v3 feeds to check package existence and compatibility.
package nuget

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"errors"
	"io"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/Masterminds/semver/v3"
	"go.trai.ch/compat/internal/core/domain"
	"go.trai.ch/compat/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/singleflight"
)

const (
	// DefaultTimeout bounds a single request to a feed.
	DefaultTimeout = 30 * time.Second

	packageBaseAddressType = "PackageBaseAddress/3.0.0"
)

var (
	_ ports.FeedProbe           = (*Client)(nil)
	_ ports.CompatibilityLookup = (*Client)(nil)
)

// Client implements ports.FeedProbe and ports.CompatibilityLookup against NuGet v3 feeds.
type Client struct {
	http    *http.Client
	timeout time.Duration

	mu    sync.RWMutex
	bases map[string]string
	group singleflight.Group
}

// NewClient creates a Client. A nil httpClient selects http.DefaultClient and a
// non-positive timeout selects DefaultTimeout.
func NewClient(httpClient *http.Client, timeout time.Duration) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		http:    httpClient,
		timeout: timeout,
		bases:   make(map[string]string),
	}
}

type serviceIndex struct {
	Resources []struct {
		ID   string `json:"@id"`
		Type string `json:"@type"`
	} `json:"resources"`
}

type versionIndex struct {
	Versions []string `json:"versions"`
}

type nuspec struct {
	Metadata struct {
		ID           string `xml:"id"`
		Version      string `xml:"version"`
		Dependencies struct {
			Groups []struct {
				TargetFramework string             `xml:"targetFramework,attr"`
				Dependencies    []nuspecDependency `xml:"dependency"`
			} `xml:"group"`
			Dependencies []nuspecDependency `xml:"dependency"`
		} `xml:"dependencies"`
	} `xml:"metadata"`
}

type nuspecDependency struct {
	ID      string `xml:"id,attr"`
	Version string `xml:"version,attr"`
}

// Exists reports whether version of packageID is published on feed.
// Timeouts and cancellations fail with domain.ErrProbeCancelled.
func (c *Client) Exists(ctx context.Context, packageID, version string, feed domain.Feed) (bool, error) {
	_, found, err := c.listedVersion(ctx, packageID, version, feed)
	return found, err
}

// listedVersion returns the version string feed lists for version. NuGet serves
// package content under that spelling only, so 1.2 must be fetched as 1.2.0.
func (c *Client) listedVersion(ctx context.Context, packageID, version string, feed domain.Feed) (string, bool, error) {
	base, err := c.baseAddress(ctx, feed)
	if err != nil {
		return "", false, err
	}

	var index versionIndex
	found, err := c.getJSON(ctx, base+strings.ToLower(packageID)+"/index.json", &index)
	if err != nil || !found {
		return "", false, annotate(err, packageID, version, feed)
	}

	for _, v := range index.Versions {
		if sameVersion(v, version) {
			return v, true, nil
		}
	}
	return "", false, nil
}

// CheckCompatibility walks feeds in order and evaluates the nuspec of the first
// feed listing the package against framework. Feeds that fail are skipped; their
// last error is returned only when no later feed has the package.
func (c *Client) CheckCompatibility(
	ctx context.Context,
	packageID, version, framework string,
	feeds []domain.Feed,
) (*domain.CompatibilityResult, error) {
	var lastErr error

	for _, feed := range feeds {
		if err := ctx.Err(); err != nil {
			return nil, annotate(domain.Classify(domain.ErrProbeCancelled, err), packageID, version, feed)
		}

		listed, found, err := c.listedVersion(ctx, packageID, version, feed)
		if err != nil {
			lastErr = err
			continue
		}
		if !found {
			continue
		}

		spec, err := c.fetchNuspec(ctx, packageID, listed, feed)
		if err != nil {
			lastErr = err
			continue
		}
		return evaluate(spec, framework, feed), nil
	}

	if lastErr != nil {
		return nil, zerr.Wrap(lastErr, "check compatibility")
	}
	err := zerr.With(zerr.Wrap(domain.ErrPackageNotFound, "check compatibility"), "package_id", packageID)
	return nil, zerr.With(err, "version", version)
}

func (c *Client) fetchNuspec(ctx context.Context, packageID, version string, feed domain.Feed) (*nuspec, error) {
	base, err := c.baseAddress(ctx, feed)
	if err != nil {
		return nil, err
	}

	id := strings.ToLower(packageID)
	url := base + id + "/" + strings.ToLower(version) + "/" + id + ".nuspec"

	body, found, err := c.get(ctx, url)
	if err != nil {
		return nil, annotate(err, packageID, version, feed)
	}
	if !found {
		err := zerr.With(zerr.Wrap(domain.ErrPackageNotFound, "fetch nuspec"), "package_id", packageID)
		return nil, zerr.With(err, "feed", feed.Name)
	}
	defer body.Close() //nolint:errcheck // Response body

	var spec nuspec
	if err := xml.NewDecoder(body).Decode(&spec); err != nil {
		err = zerr.With(domain.Classify(domain.ErrMalformedDocument, err), "package_id", packageID)
		return nil, zerr.With(err, "feed", feed.Name)
	}
	return &spec, nil
}

func evaluate(spec *nuspec, framework string, feed domain.Feed) *domain.CompatibilityResult {
	result := &domain.CompatibilityResult{Source: feed.Name}
	deps := spec.Metadata.Dependencies
	target := parseFramework(framework)

	if len(deps.Groups) == 0 {
		result.IsCompatible = true
		result.DependencyPackages = toPairs(deps.Dependencies)
		return result
	}

	for _, group := range deps.Groups {
		if target.supports(parseFramework(group.TargetFramework)) {
			result.IsCompatible = true
			result.DependencyPackages = toPairs(group.Dependencies)
			return result
		}
	}
	return result
}

func toPairs(deps []nuspecDependency) []domain.PackageVersionPair {
	if len(deps) == 0 {
		return nil
	}
	pairs := make([]domain.PackageVersionPair, 0, len(deps))
	for _, d := range deps {
		pairs = append(pairs, domain.PackageVersionPair{
			PackageID:  d.ID,
			Version:    d.Version,
			SourceType: domain.SourceNuGet,
		})
	}
	return pairs
}

// baseAddress resolves and memoises the PackageBaseAddress of a feed.
func (c *Client) baseAddress(ctx context.Context, feed domain.Feed) (string, error) {
	c.mu.RLock()
	base, ok := c.bases[feed.URL]
	c.mu.RUnlock()
	if ok {
		return base, nil
	}

	v, err, _ := c.group.Do(feed.URL, func() (any, error) {
		var index serviceIndex
		found, err := c.getJSON(ctx, feed.URL, &index)
		if err != nil {
			return "", err
		}
		if !found {
			return "", zerr.Wrap(domain.ErrTransportFailure, "service index not found")
		}
		for _, r := range index.Resources {
			if r.Type == packageBaseAddressType && r.ID != "" {
				base := r.ID
				if !strings.HasSuffix(base, "/") {
					base += "/"
				}
				c.mu.Lock()
				c.bases[feed.URL] = base
				c.mu.Unlock()
				return base, nil
			}
		}
		return "", zerr.Wrap(domain.ErrTransportFailure, "feed has no "+packageBaseAddressType+" resource")
	})
	if err != nil {
		return "", zerr.With(err, "feed", feed.Name)
	}
	base, _ = v.(string)
	return base, nil
}

// getJSON decodes the body of url into out. It reports false for a 404.
func (c *Client) getJSON(ctx context.Context, url string, out any) (bool, error) {
	body, found, err := c.get(ctx, url)
	if err != nil || !found {
		return found, err
	}
	defer body.Close() //nolint:errcheck // Response body

	if err := json.NewDecoder(body).Decode(out); err != nil {
		if isCancellation(err) {
			return false, domain.Classify(domain.ErrProbeCancelled, err)
		}
		return false, zerr.With(domain.Classify(domain.ErrMalformedDocument, err), "url", url)
	}
	return true, nil
}

// get issues a bounded GET. The returned body is nil when the resource does not exist.
func (c *Client) get(ctx context.Context, url string) (io.ReadCloser, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		cancel()
		return nil, false, zerr.With(domain.Classify(domain.ErrTransportFailure, err), "url", url)
	}
	req.Header.Set("Accept", "application/json, application/xml")

	resp, err := c.http.Do(req)
	if err != nil {
		cancel()
		if isCancellation(err) {
			return nil, false, zerr.With(domain.Classify(domain.ErrProbeCancelled, err), "url", url)
		}
		return nil, false, zerr.With(domain.Classify(domain.ErrTransportFailure, err), "url", url)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		_ = resp.Body.Close()
		cancel()
		return nil, false, nil
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		_ = resp.Body.Close()
		cancel()
		err := zerr.With(zerr.Wrap(domain.ErrTransportFailure, "unexpected status"), "status", resp.StatusCode)
		return nil, false, zerr.With(err, "url", url)
	}

	return &cancelOnClose{ReadCloser: resp.Body, cancel: cancel}, true, nil
}

type cancelOnClose struct {
	io.ReadCloser
	cancel context.CancelFunc
}

func (c *cancelOnClose) Close() error {
	defer c.cancel()
	return c.ReadCloser.Close()
}

func isCancellation(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func annotate(err error, packageID, version string, feed domain.Feed) error {
	if err == nil {
		return nil
	}
	err = zerr.With(err, "package_id", packageID)
	err = zerr.With(err, "version", version)
	return zerr.With(err, "feed", feed.Name)
}

// sameVersion compares versions the way NuGet normalises them: 1.0 equals 1.0.0.
func sameVersion(a, b string) bool {
	if strings.EqualFold(a, b) {
		return true
	}
	va, errA := semver.NewVersion(a)
	vb, errB := semver.NewVersion(b)
	return errA == nil && errB == nil && va.Equal(vb)
}
