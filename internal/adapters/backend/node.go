package backend

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/depot/internal/adapters/httpclient"
	"go.trai.ch/depot/internal/core/ports"
)

// NodeID is the unique identifier for the backend API Graft node.
const NodeID graft.ID = "adapter.backend"

func init() {
	graft.Register(graft.Node[*API]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{httpclient.NodeID},
		Run: func(ctx context.Context) (*API, error) {
			t, err := graft.Dep[ports.Transport](ctx)
			if err != nil {
				return nil, err
			}
			return New(t), nil
		},
	})
}
