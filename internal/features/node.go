package features

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/depot/internal/adapters/backend"  //nolint:depguard // Wired in feature wiring
	"go.trai.ch/depot/internal/adapters/config"   //nolint:depguard // Wired in feature wiring
	"go.trai.ch/depot/internal/adapters/download" //nolint:depguard // Wired in feature wiring
	"go.trai.ch/depot/internal/adapters/notify"   //nolint:depguard // Wired in feature wiring
	"go.trai.ch/depot/internal/core/domain"
	"go.trai.ch/depot/internal/core/ports"
	"go.trai.ch/depot/internal/engine/query"
)

// NodeID is the unique identifier for the features Graft node.
const NodeID graft.ID = "features"

func init() {
	graft.Register(graft.Node[*Features]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			backend.NodeID,
			query.NodeID,
			config.ConfigNodeID,
			notify.NodeID,
			download.NodeID,
		},
		Run: func(ctx context.Context) (*Features, error) {
			api, err := graft.Dep[*backend.API](ctx)
			if err != nil {
				return nil, err
			}
			client, err := graft.Dep[*query.Client](ctx)
			if err != nil {
				return nil, err
			}
			cfg, err := graft.Dep[*domain.Config](ctx)
			if err != nil {
				return nil, err
			}
			notifier, err := graft.Dep[ports.Notifier](ctx)
			if err != nil {
				return nil, err
			}
			saver, err := graft.Dep[ports.FileSaver](ctx)
			if err != nil {
				return nil, err
			}

			return New(api, Deps{Client: client, Config: cfg, Notifier: notifier, Saver: saver}), nil
		},
	})
}
