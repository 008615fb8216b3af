// Package telemetry turns the engine's OpenTelemetry spans into checker statistics.
package telemetry

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// CheckerSpanName is the name of the span the resolver opens per checker attempt.
const CheckerSpanName = "compat.checker"

const checkerAttr = attribute.Key("checker")

// CheckerSummary aggregates the attempts one checker made.
type CheckerSummary struct {
	Checker  string
	Attempts int
	Failures int
	Total    time.Duration
}

// Stats implements sdktrace.SpanProcessor and counts checker attempts.
// It is safe for concurrent use.
type Stats struct {
	mu    sync.Mutex
	order []string
	byKey map[string]*CheckerSummary
}

var _ sdktrace.SpanProcessor = (*Stats)(nil)

// NewStats returns an empty Stats.
func NewStats() *Stats {
	return &Stats{byKey: make(map[string]*CheckerSummary)}
}

// OnStart does nothing.
func (s *Stats) OnStart(_ context.Context, _ sdktrace.ReadWriteSpan) {}

// OnEnd records a finished checker attempt. Other spans are ignored.
func (s *Stats) OnEnd(span sdktrace.ReadOnlySpan) {
	if span.Name() != CheckerSpanName {
		return
	}

	name := "unknown"
	for _, kv := range span.Attributes() {
		if kv.Key == checkerAttr {
			name = kv.Value.AsString()
			break
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sum, ok := s.byKey[name]
	if !ok {
		sum = &CheckerSummary{Checker: name}
		s.byKey[name] = sum
		s.order = append(s.order, name)
	}
	sum.Attempts++
	if span.Status().Code == codes.Error {
		sum.Failures++
	}
	sum.Total += span.EndTime().Sub(span.StartTime())
}

// Summary returns one entry per checker in the order they were first seen.
func (s *Stats) Summary() []CheckerSummary {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]CheckerSummary, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, *s.byKey[name])
	}
	return out
}

// ForceFlush does nothing.
func (s *Stats) ForceFlush(_ context.Context) error {
	return nil
}

// Shutdown does nothing.
func (s *Stats) Shutdown(_ context.Context) error {
	return nil
}
