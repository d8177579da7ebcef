// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/depot/internal/adapters/backend"
	_ "go.trai.ch/depot/internal/adapters/config"
	_ "go.trai.ch/depot/internal/adapters/credentials"
	_ "go.trai.ch/depot/internal/adapters/download"
	_ "go.trai.ch/depot/internal/adapters/httpclient"
	_ "go.trai.ch/depot/internal/adapters/logger"
	_ "go.trai.ch/depot/internal/adapters/notify"
	_ "go.trai.ch/depot/internal/adapters/session"
	_ "go.trai.ch/depot/internal/adapters/telemetry"
	// Register app, feature and engine nodes.
	_ "go.trai.ch/depot/internal/app"
	_ "go.trai.ch/depot/internal/engine/query"
	_ "go.trai.ch/depot/internal/features"
)
