package ports

import "go.trai.ch/depot/internal/core/domain"

// ConfigLoader defines the interface for loading the client configuration.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load resolves the configuration visible from the given working directory.
	Load(cwd string) (*domain.Config, error)
}
