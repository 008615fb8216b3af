// Package resolver implements the resolution orchestrator.
//
// A Resolver owns an ordered list of compatibility checkers and a per-key
// future cache. Resolve never blocks: every key not seen before is claimed in
// the cache and the keys new to a call are resolved together in the background,
// one checker stage at a time.
package resolver

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.trai.ch/compat/internal/core/domain"
	"go.trai.ch/compat/internal/core/ports"
	"go.trai.ch/compat/internal/engine/flight"
	"go.trai.ch/zerr"
)

const tracerName = "go.trai.ch/compat/internal/engine/resolver"

// ResolveOptions are the per-call settings of Resolve.
type ResolveOptions struct {
	// PersistToDisk enables the disk cache of checkers that have one.
	PersistToDisk bool
	// ContinueOnPartialFailure makes every checker failure fall back to the next
	// checker. When false, a malformed document, a fatal probe or a broken
	// targets invariant fails the key at once.
	ContinueOnPartialFailure bool
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithTracerProvider sets the provider of the checker attempt spans.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(r *Resolver) {
		r.tracer = tp.Tracer(tracerName)
	}
}

// Resolver is the single entry point of the engine.
type Resolver struct {
	checkers []ports.CompatibilityChecker
	logger   ports.Logger
	tracer   trace.Tracer
	cache    *flight.Group[*domain.PackageDetails]
}

// New creates a Resolver trying checkers in the given order. It performs no I/O.
func New(checkers []ports.CompatibilityChecker, logger ports.Logger, opts ...Option) *Resolver {
	r := &Resolver{
		checkers: checkers,
		logger:   logger,
		tracer:   otel.Tracer(tracerName),
		cache:    flight.New[*domain.PackageDetails](),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// pending is a key claimed by the current batch together with the last checker error.
type pending struct {
	pair    domain.PackageVersionPair
	fut     ports.DetailsFuture
	lastErr error
}

// Resolve returns one future per distinct request without blocking.
// Futures are cached for the lifetime of the Resolver, failed ones included.
func (r *Resolver) Resolve(
	ctx context.Context,
	requests []domain.PackageVersionPair,
	contextPath string,
	opts ResolveOptions,
) map[domain.PackageVersionPair]ports.DetailsFuture {
	results := make(map[domain.PackageVersionPair]ports.DetailsFuture, len(requests))
	var batch []*pending

	for _, req := range requests {
		if _, ok := results[req]; ok {
			continue
		}
		if req.PackageID == "" || req.Version == "" {
			invalid := zerr.With(zerr.Wrap(domain.ErrInvalidRequest, "resolve"), "request", req.String())
			results[req] = domain.Completed[*domain.PackageDetails](nil, invalid)
			continue
		}

		fut, created := r.cache.Claim(cacheKey(req, contextPath))
		results[req] = fut
		if created {
			batch = append(batch, &pending{pair: req, fut: fut})
		}
	}

	if len(batch) > 0 {
		go r.process(context.WithoutCancel(ctx), batch, contextPath, opts)
	}
	return results
}

// CacheSize returns the number of keys the Resolver has claimed.
func (r *Resolver) CacheSize() int {
	return r.cache.Len()
}

func cacheKey(pair domain.PackageVersionPair, contextPath string) string {
	return strings.ToLower(pair.PackageID) + "|" + pair.Version + "|" + contextPath
}

// process runs the batch through the checkers. Failed keys are resolved only
// after the batch error has been logged, so a waiter never observes a failure
// before it is reported.
func (r *Resolver) process(ctx context.Context, batch []*pending, contextPath string, opts ResolveOptions) {
	defer zerr.Defer(func(err error) {
		panicErr := domain.Classify(domain.ErrCheckerPanicked, err)
		r.logger.Error(zerr.Wrap(panicErr, "resolve batch"))
		for _, p := range batch {
			p.fut.Resolve(nil, panicErr)
		}
	})

	checkOpts := ports.CheckOptions{ContextPath: contextPath, PersistToDisk: opts.PersistToDisk}
	remaining := batch
	var failed []*pending

	for _, c := range r.checkers {
		if len(remaining) == 0 {
			break
		}
		next := remaining[:0:0]
		for _, p := range r.stage(ctx, c, remaining, checkOpts) {
			if !opts.ContinueOnPartialFailure && domain.IsTerminal(p.lastErr) {
				p.lastErr = keyError(p.lastErr, p.pair)
				failed = append(failed, p)
				continue
			}
			next = append(next, p)
		}
		remaining = next
	}

	for _, p := range remaining {
		p.lastErr = keyError(domain.Classify(domain.ErrAllCheckersFailed, p.lastErr), p.pair)
		failed = append(failed, p)
	}

	if len(failed) == 0 {
		return
	}

	batchErr := zerr.With(zerr.Wrap(failed[0].lastErr, "resolve batch"), "failed", len(failed))
	r.logger.Error(zerr.With(batchErr, "requested", len(batch)))
	for _, p := range failed {
		p.fut.Resolve(nil, p.lastErr)
	}
}

// stage hands the keys to one checker and waits for every answer. Successful keys
// are resolved as soon as their answer arrives; failed keys are returned.
func (r *Resolver) stage(
	ctx context.Context,
	c ports.CompatibilityChecker,
	keys []*pending,
	opts ports.CheckOptions,
) []*pending {
	spans := make([]trace.Span, len(keys))
	spanCtx := make([]context.Context, len(keys))
	requests := make([]domain.PackageVersionPair, len(keys))
	for i, p := range keys {
		requests[i] = p.pair
		spanCtx[i], spans[i] = r.tracer.Start(ctx, "compat.checker", trace.WithAttributes(
			attribute.String("checker", c.Name()),
			attribute.String("package.id", p.pair.PackageID),
			attribute.String("package.version", p.pair.Version),
		))
	}

	futures, err := check(ctx, c, requests, opts)
	if err != nil {
		for i, p := range keys {
			p.lastErr = zerr.With(zerr.Wrap(err, "check"), "checker", c.Name())
			endSpan(spans[i], p.lastErr)
		}
		return keys
	}

	var (
		mu     sync.Mutex
		failed []*pending
		wg     sync.WaitGroup
	)
	for i, p := range keys {
		wg.Add(1)
		go func() {
			defer wg.Done()
			details, err := await(spanCtx[i], futures[p.pair])
			endSpan(spans[i], err)
			if err == nil {
				p.fut.Resolve(details, nil)
				return
			}
			p.lastErr = zerr.With(zerr.Wrap(err, "check"), "checker", c.Name())
			mu.Lock()
			failed = append(failed, p)
			mu.Unlock()
		}()
	}
	wg.Wait()

	return failed
}

// check calls the checker, turning a panic into an error for the whole call.
func check(
	ctx context.Context,
	c ports.CompatibilityChecker,
	requests []domain.PackageVersionPair,
	opts ports.CheckOptions,
) (futures map[domain.PackageVersionPair]ports.DetailsFuture, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			futures = nil
			err = domain.Classify(domain.ErrCheckerPanicked, fmt.Errorf("%v", rec))
		}
	}()
	return c.Check(ctx, requests, opts)
}

// await waits for one checker answer and checks the targets invariant.
func await(ctx context.Context, fut ports.DetailsFuture) (*domain.PackageDetails, error) {
	if fut == nil {
		return nil, zerr.Wrap(domain.ErrPackageNotFound, "checker returned no answer")
	}
	details, err := fut.Wait(ctx)
	if err != nil {
		return nil, err
	}
	if details == nil {
		return nil, zerr.Wrap(domain.ErrPackageNotFound, "checker returned no details")
	}
	if err := details.Validate(); err != nil {
		return nil, err
	}
	return details, nil
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

func keyError(err error, pair domain.PackageVersionPair) error {
	keyErr := zerr.With(zerr.Wrap(err, "resolve package"), "package_id", pair.PackageID)
	return zerr.With(keyErr, "version", pair.Version)
}
