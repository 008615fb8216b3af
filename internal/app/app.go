// Package app implements the application layer for compat.
package app

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"text/tabwriter"
	"time"

	"go.trai.ch/compat/internal/adapters/telemetry" //nolint:depguard // Wired in app layer
	"go.trai.ch/compat/internal/core/domain"
	"go.trai.ch/compat/internal/core/ports"
	"go.trai.ch/compat/internal/engine/resolver"
	"go.trai.ch/zerr"
)

// Report formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Package statuses in a report.
const (
	StatusResolved = "resolved"
	StatusFailed   = "failed"
)

// PackageResolver hands out deferred package details. *resolver.Resolver implements it.
type PackageResolver interface {
	Resolve(
		ctx context.Context,
		requests []domain.PackageVersionPair,
		contextPath string,
		opts resolver.ResolveOptions,
	) map[domain.PackageVersionPair]ports.DetailsFuture
}

// CheckerStats reports what the checkers did so far.
type CheckerStats interface {
	Summary() []telemetry.CheckerSummary
}

// App represents the main application logic.
type App struct {
	resolver PackageResolver
	disk     ports.DiskCache
	logger   ports.Logger
	config   *domain.Config
	stats    CheckerStats
}

// New creates a new App instance. A nil config selects domain.DefaultConfig.
func New(res PackageResolver, disk ports.DiskCache, log ports.Logger, cfg *domain.Config) *App {
	if cfg == nil {
		cfg = domain.DefaultConfig()
	}
	return &App{
		resolver: res,
		disk:     disk,
		logger:   log,
		config:   cfg,
	}
}

// WithStats makes Resolve log one line per checker after each call.
func (a *App) WithStats(stats CheckerStats) *App {
	a.stats = stats
	return a
}

// ResolveOptions configuration for the Resolve method.
type ResolveOptions struct {
	Packages []domain.PackageVersionPair
	// ContextPath is the solution the packages belong to. Relative paths are made absolute.
	ContextPath              string
	Persist                  bool
	ContinueOnPartialFailure bool
	Output                   io.Writer
	Format                   string
}

// Report is the outcome of a Resolve call.
type Report struct {
	ContextPath string          `json:"contextPath,omitempty"`
	Framework   string          `json:"framework"`
	Packages    []PackageReport `json:"packages"`
}

// PackageReport is the outcome for one requested package.
type PackageReport struct {
	PackageID string                 `json:"packageId"`
	Version   string                 `json:"version"`
	Status    string                 `json:"status"`
	Details   *domain.PackageDetails `json:"details,omitempty"`
	Error     string                 `json:"error,omitempty"`
}

// Resolve resolves every requested package, writes a report to opts.Output and
// fails with domain.ErrResolutionIncomplete when at least one package failed.
func (a *App) Resolve(ctx context.Context, opts ResolveOptions) error {
	if len(opts.Packages) == 0 {
		return domain.ErrNoRequests
	}

	contextPath := opts.ContextPath
	if contextPath != "" {
		abs, err := filepath.Abs(contextPath)
		if err != nil {
			return zerr.With(zerr.Wrap(err, "failed to resolve solution path"), "path", contextPath)
		}
		contextPath = abs
	}

	requests := dedupe(opts.Packages)
	futures := a.resolver.Resolve(ctx, requests, contextPath, resolver.ResolveOptions{
		PersistToDisk:            opts.Persist,
		ContinueOnPartialFailure: opts.ContinueOnPartialFailure,
	})

	report := Report{ContextPath: contextPath, Framework: a.config.Framework, Packages: make([]PackageReport, 0, len(requests))}
	failed := 0
	for _, req := range requests {
		details, err := futures[req].Wait(ctx)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return zerr.Wrap(ctxErr, "resolution interrupted")
		}

		entry := PackageReport{PackageID: req.PackageID, Version: req.Version, Status: StatusResolved, Details: details}
		if err != nil {
			failed++
			entry.Status = StatusFailed
			entry.Details = nil
			entry.Error = err.Error()
		}
		report.Packages = append(report.Packages, entry)
	}

	a.logger.Info(fmt.Sprintf("resolved %d of %d packages", len(requests)-failed, len(requests)))
	a.logStats()

	if err := a.writeReport(opts.Output, opts.Format, report); err != nil {
		return err
	}

	if failed > 0 {
		err := zerr.With(zerr.Wrap(domain.ErrResolutionIncomplete, "resolve packages"), "failed", failed)
		return zerr.With(err, "requested", len(requests))
	}
	return nil
}

// Clean removes the disk cache.
func (a *App) Clean(_ context.Context) error {
	root := a.config.CacheRoot
	a.logger.Info(fmt.Sprintf("removing disk cache %s...", root))

	removed, err := a.disk.Clear(root)
	if err != nil {
		return zerr.Wrap(err, "failed to remove disk cache")
	}

	a.logger.Info(fmt.Sprintf("removed %d cached documents", removed))
	return nil
}

func (a *App) logStats() {
	if a.stats == nil {
		return
	}
	for _, s := range a.stats.Summary() {
		a.logger.Info(fmt.Sprintf("checker %s: %d attempts, %d failed, %s",
			s.Checker, s.Attempts, s.Failures, s.Total.Round(time.Millisecond)))
	}
}

func (a *App) writeReport(w io.Writer, format string, report Report) error {
	if w == nil {
		w = os.Stdout
	}

	switch strings.ToLower(format) {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return zerr.Wrap(err, "failed to write report")
		}
		return nil
	case FormatText, "":
		return writeText(w, report)
	default:
		return zerr.With(zerr.Wrap(domain.ErrUnknownReportFormat, "write report"), "format", format)
	}
}

func writeText(w io.Writer, report Report) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "PACKAGE\tVERSION\tSTATUS\tFRAMEWORKS")
	for _, p := range report.Packages {
		summary := p.Error
		if p.Status == StatusResolved {
			summary = strings.Join(frameworksFor(p.Details, p.Version), ", ")
			if summary == "" {
				summary = "-"
			}
		}
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", p.PackageID, p.Version, p.Status, summary)
	}
	if err := tw.Flush(); err != nil {
		return zerr.Wrap(err, "failed to write report")
	}
	return nil
}

// frameworksFor lists the target frameworks that support version, sorted by name.
func frameworksFor(details *domain.PackageDetails, version string) []string {
	if details == nil {
		return nil
	}
	var frameworks []string
	for fw, versions := range details.Targets {
		if versions.Contains(version) {
			frameworks = append(frameworks, fw)
		}
	}
	slices.Sort(frameworks)
	return frameworks
}

// dedupe drops repeated requests and keeps the first occurrence order.
func dedupe(pairs []domain.PackageVersionPair) []domain.PackageVersionPair {
	seen := make(map[domain.PackageVersionPair]struct{}, len(pairs))
	out := make([]domain.PackageVersionPair, 0, len(pairs))
	for _, p := range pairs {
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}
