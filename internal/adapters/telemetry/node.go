package telemetry

import (
	"context"

	"github.com/grindlemire/graft"
	"go.opentelemetry.io/otel/trace"
)

const (
	// StatsNodeID is the unique identifier for the checker statistics Graft node.
	StatsNodeID graft.ID = "adapter.telemetry.stats"
	// NodeID is the unique identifier for the tracer provider Graft node.
	NodeID graft.ID = "adapter.telemetry"
)

func init() {
	graft.Register(graft.Node[*Stats]{
		ID:        StatsNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*Stats, error) {
			return NewStats(), nil
		},
	})

	graft.Register(graft.Node[trace.TracerProvider]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{StatsNodeID},
		Run: func(ctx context.Context) (trace.TracerProvider, error) {
			stats, err := graft.Dep[*Stats](ctx)
			if err != nil {
				return nil, err
			}
			return NewTracerProvider(stats), nil
		},
	})
}
