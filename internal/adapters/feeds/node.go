package feeds

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/compat/internal/adapters/config" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/compat/internal/adapters/logger" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/compat/internal/core/domain"
	"go.trai.ch/compat/internal/core/ports"
)

// NodeID is the unique identifier for the feed provider Graft node.
const NodeID graft.ID = "adapter.feeds"

func init() {
	graft.Register(graft.Node[ports.FeedProvider]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.NodeID, logger.NodeID},
		Run: func(ctx context.Context) (ports.FeedProvider, error) {
			cfg, err := graft.Dep[*domain.Config](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return NewProvider(cfg.Feeds, log), nil
		},
	})
}
