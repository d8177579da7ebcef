package httpclient

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/depot/internal/adapters/config"
	"go.trai.ch/depot/internal/adapters/credentials"
	"go.trai.ch/depot/internal/adapters/logger"
	"go.trai.ch/depot/internal/adapters/session"
	"go.trai.ch/depot/internal/core/domain"
	"go.trai.ch/depot/internal/core/ports"
)

// NodeID is the unique identifier for the HTTP transport Graft node.
const NodeID graft.ID = "adapter.httpclient"

func init() {
	graft.Register(graft.Node[ports.Transport]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.ConfigNodeID,
			credentials.StoreNodeID,
			session.NodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (ports.Transport, error) {
			cfg, err := graft.Dep[*domain.Config](ctx)
			if err != nil {
				return nil, err
			}
			creds, err := graft.Dep[ports.CredentialStore](ctx)
			if err != nil {
				return nil, err
			}
			boundary, err := graft.Dep[ports.LoginBoundary](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return New(cfg, creds, boundary, log), nil
		},
	})
}
