package resolver

import (
	"context"

	"github.com/grindlemire/graft"
	"go.opentelemetry.io/otel/trace"
	"go.trai.ch/compat/internal/adapters/logger"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/compat/internal/adapters/telemetry" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/compat/internal/core/ports"
	"go.trai.ch/compat/internal/engine/checker"
)

// NodeID is the unique identifier for the resolver Graft node.
const NodeID graft.ID = "engine.resolver"

func init() {
	graft.Register(graft.Node[*Resolver]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			checker.NodeID,
			logger.NodeID,
			telemetry.NodeID,
		},
		Run: func(ctx context.Context) (*Resolver, error) {
			checkers, err := graft.Dep[checker.Set](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			tp, err := graft.Dep[trace.TracerProvider](ctx)
			if err != nil {
				return nil, err
			}

			return New(checkers, log, WithTracerProvider(tp)), nil
		},
	})
}
