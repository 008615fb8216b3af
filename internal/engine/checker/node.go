package checker

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/compat/internal/adapters/blob"      //nolint:depguard // Wired in engine wiring
	"go.trai.ch/compat/internal/adapters/config"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/compat/internal/adapters/diskcache" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/compat/internal/adapters/feeds"     //nolint:depguard // Wired in engine wiring
	"go.trai.ch/compat/internal/adapters/fs"        //nolint:depguard // Wired in engine wiring
	"go.trai.ch/compat/internal/adapters/logger"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/compat/internal/adapters/nuget"     //nolint:depguard // Wired in engine wiring
	"go.trai.ch/compat/internal/core/domain"
	"go.trai.ch/compat/internal/core/ports"
)

// NodeID is the unique identifier for the checker set Graft node.
const NodeID graft.ID = "engine.checkers"

func init() {
	graft.Register(graft.Node[Set]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			blob.NodeID,
			diskcache.NodeID,
			fs.HasherNodeID,
			feeds.NodeID,
			nuget.NodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (Set, error) {
			cfg, err := graft.Dep[*domain.Config](ctx)
			if err != nil {
				return nil, err
			}

			store, err := graft.Dep[ports.BlobStore](ctx)
			if err != nil {
				return nil, err
			}

			disk, err := graft.Dep[ports.DiskCache](ctx)
			if err != nil {
				return nil, err
			}

			hasher, err := graft.Dep[ports.PathHasher](ctx)
			if err != nil {
				return nil, err
			}

			provider, err := graft.Dep[ports.FeedProvider](ctx)
			if err != nil {
				return nil, err
			}

			client, err := graft.Dep[*nuget.Client](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return NewSet(cfg, Deps{
				Store:  store,
				Disk:   disk,
				Hasher: hasher,
				Feeds:  provider,
				Probe:  client,
				Lookup: client,
				Logger: log,
			})
		},
	})
}
