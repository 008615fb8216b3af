package nuget

import (
	"context"
	"net/http"

	"github.com/grindlemire/graft"
)

// NodeID is the unique identifier for the NuGet client Graft node.
const NodeID graft.ID = "adapter.nuget"

func init() {
	graft.Register(graft.Node[*Client]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*Client, error) {
			return NewClient(&http.Client{}, DefaultTimeout), nil
		},
	})
}
