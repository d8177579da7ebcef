package credentials

import (
	"context"
	"os"

	"github.com/grindlemire/graft"
	"github.com/spf13/afero"
	"go.trai.ch/depot/internal/adapters/logger"
	"go.trai.ch/depot/internal/core/domain"
	"go.trai.ch/depot/internal/core/ports"
	"go.trai.ch/zerr"
)

const (
	// StoreNodeID is the unique identifier for the credential store Graft node.
	StoreNodeID graft.ID = "adapter.credentials.store"
	// WatcherNodeID is the unique identifier for the credential watcher Graft node.
	WatcherNodeID graft.ID = "adapter.credentials.watcher"
)

// DefaultPath returns the credential file below the user config directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", zerr.Wrap(err, "failed to locate user config directory")
	}
	return domain.DefaultCredentialsPath(dir), nil
}

func init() {
	graft.Register(graft.Node[ports.CredentialStore]{
		ID:        StoreNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.CredentialStore, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			path, err := DefaultPath()
			if err != nil {
				return nil, err
			}
			store := NewStore(afero.NewOsFs(), path)
			if err := store.Load(); err != nil {
				log.Warn("ignoring unreadable credentials, please log in again")
				log.Error(err)
			}
			return store, nil
		},
	})

	graft.Register(graft.Node[ports.CredentialWatcher]{
		ID:        WatcherNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.CredentialWatcher, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			path, err := DefaultPath()
			if err != nil {
				return nil, err
			}
			return NewWatcher(path, log), nil
		},
	})
}
