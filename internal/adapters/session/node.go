package session

import (
	"context"
	"os"

	"github.com/grindlemire/graft"
	"go.trai.ch/depot/internal/core/ports"
)

// NodeID is the unique identifier for the login boundary Graft node.
const NodeID graft.ID = "adapter.session"

func init() {
	graft.Register(graft.Node[ports.LoginBoundary]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.LoginBoundary, error) {
			return NewBoundary(os.Stderr), nil
		},
	})
}
