package blob

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/compat/internal/adapters/config" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/compat/internal/core/domain"
	"go.trai.ch/compat/internal/core/ports"
	"go.trai.ch/zerr"
)

// NodeID is the unique identifier for the blob store Graft node.
const NodeID graft.ID = "adapter.blob"

func init() {
	graft.Register(graft.Node[ports.BlobStore]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.NodeID},
		Run: func(ctx context.Context) (ports.BlobStore, error) {
			cfg, err := graft.Dep[*domain.Config](ctx)
			if err != nil {
				return nil, err
			}
			return NewStore(ctx, cfg.Store)
		},
	})
}

// NewStore builds the store selected by cfg.Kind.
func NewStore(ctx context.Context, cfg domain.StoreConfig) (ports.BlobStore, error) {
	switch cfg.Kind {
	case domain.StoreLocal:
		return NewLocalStore(cfg.Root), nil
	case domain.StoreS3, "":
		return NewS3Store(ctx, cfg)
	default:
		return nil, zerr.With(zerr.Wrap(domain.ErrUnknownStoreKind, "select blob store"), "kind", cfg.Kind)
	}
}
