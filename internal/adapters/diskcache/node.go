package diskcache

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/compat/internal/adapters/fs" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/compat/internal/core/ports"
)

// NodeID is the unique identifier for the disk cache Graft node.
const NodeID graft.ID = "adapter.diskcache"

func init() {
	graft.Register(graft.Node[ports.DiskCache]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{fs.WalkerNodeID},
		Run: func(ctx context.Context) (ports.DiskCache, error) {
			walker, err := graft.Dep[*fs.Walker](ctx)
			if err != nil {
				return nil, err
			}
			return New(walker), nil
		},
	})
}
