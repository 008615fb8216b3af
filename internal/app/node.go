package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/compat/internal/adapters/config"    //nolint:depguard // Wired in app layer
	"go.trai.ch/compat/internal/adapters/diskcache" //nolint:depguard // Wired in app layer
	"go.trai.ch/compat/internal/adapters/logger"    //nolint:depguard // Wired in app layer
	"go.trai.ch/compat/internal/adapters/telemetry" //nolint:depguard // Wired in app layer
	"go.trai.ch/compat/internal/core/domain"
	"go.trai.ch/compat/internal/core/ports"
	"go.trai.ch/compat/internal/engine/resolver"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			resolver.NodeID,
			diskcache.NodeID,
			logger.NodeID,
			config.NodeID,
			telemetry.StatsNodeID,
		},
		Run: func(ctx context.Context) (*App, error) {
			res, err := graft.Dep[*resolver.Resolver](ctx)
			if err != nil {
				return nil, err
			}

			disk, err := graft.Dep[ports.DiskCache](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			cfg, err := graft.Dep[*domain.Config](ctx)
			if err != nil {
				return nil, err
			}

			stats, err := graft.Dep[*telemetry.Stats](ctx)
			if err != nil {
				return nil, err
			}

			return New(res, disk, log, cfg).WithStats(stats), nil
		},
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			a, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return &Components{App: a, Logger: log}, nil
		},
	})
}
