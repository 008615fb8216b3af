package checker

import (
	"context"
	"fmt"

	"go.trai.ch/compat/internal/core/domain"
	"go.trai.ch/compat/internal/core/ports"
	"go.trai.ch/zerr"
)

// ProbeOutcome is the terminal result of a feed probe.
type ProbeOutcome struct {
	State domain.ProbeState
	// Feed is the feed that reported the package when State is ProbeFound.
	Feed domain.Feed
	// Err is set for every state except ProbeFound.
	Err error
	// Attempts counts existence checks issued.
	Attempts int
}

// Probe asks an ordered list of feeds whether a package version exists.
//
// Pending -> Probing(i) -> Found | NotFound | Cancelled | Fatal.
// A feed answering false or failing with a cancellation-class error moves the
// probe to the next feed. Any other error stops it.
type Probe struct {
	feeds  []domain.Feed
	exists ports.FeedProbe
	logger ports.Logger
}

// NewProbe creates a probe over feeds, asked in order.
func NewProbe(feeds []domain.Feed, exists ports.FeedProbe, logger ports.Logger) *Probe {
	return &Probe{feeds: feeds, exists: exists, logger: logger}
}

// Run probes the feeds for packageID at version.
func (p *Probe) Run(ctx context.Context, packageID, version string) ProbeOutcome {
	out := ProbeOutcome{State: domain.ProbePending}

	for _, feed := range p.feeds {
		if err := ctx.Err(); err != nil {
			out.State = domain.ProbeCancelled
			out.Err = p.fail(domain.Classify(domain.ErrProbeCancelled, err), packageID, version)
			return out
		}

		out.State = domain.ProbeProbing
		out.Attempts++
		found, err := p.exists.Exists(ctx, packageID, version, feed)

		switch {
		case err == nil && found:
			out.State = domain.ProbeFound
			out.Feed = feed
			return out
		case err == nil:
			continue
		case domain.IsCancellation(err):
			p.logger.Info(fmt.Sprintf("existence check for %s@%s on feed %s was cancelled", packageID, version, feed.Name))
			continue
		default:
			fatal := zerr.With(p.fail(domain.Classify(domain.ErrProbeFatal, err), packageID, version), "feed", feed.Name)
			p.logger.Error(fatal)
			out.State = domain.ProbeFatal
			out.Err = fatal
			return out
		}
	}

	out.State = domain.ProbeNotFound
	out.Err = zerr.With(p.fail(domain.ErrPackageNotFound, packageID, version), "feeds", len(p.feeds))
	return out
}

func (p *Probe) fail(err error, packageID, version string) error {
	probeErr := zerr.With(zerr.Wrap(err, "probe feeds"), "package_id", packageID)
	return zerr.With(probeErr, "version", version)
}
