// Package app implements the application layer for depot.
package app

import (
	"context"
	"fmt"
	"strings"

	"go.trai.ch/depot/internal/core/domain"
	"go.trai.ch/depot/internal/core/ports"
	"go.trai.ch/depot/internal/engine/query"
	"go.trai.ch/depot/internal/features"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// App represents the main application logic.
type App struct {
	features *features.Features
	creds    ports.CredentialStore
	watcher  ports.CredentialWatcher
	logger   ports.Logger
	config   *domain.Config
}

// New creates a new App instance.
func New(
	f *features.Features,
	creds ports.CredentialStore,
	watcher ports.CredentialWatcher,
	log ports.Logger,
	cfg *domain.Config,
) *App {
	return &App{
		features: f,
		creds:    creds,
		watcher:  watcher,
		logger:   log,
		config:   cfg,
	}
}

// Features returns the entity features bound to the process-wide cache.
func (a *App) Features() *features.Features {
	return a.features
}

// Config returns the resolved configuration.
func (a *App) Config() *domain.Config {
	return a.config
}

// LogOptions controls the diagnostic output.
type LogOptions struct {
	Verbose bool
	JSON    bool
}

// ConfigureLogging applies opts when the logger supports them.
func (a *App) ConfigureLogging(opts LogOptions) {
	if l, ok := a.logger.(interface{ SetVerbose(bool) }); ok {
		l.SetVerbose(opts.Verbose)
	}
	if l, ok := a.logger.(interface{ SetJSON(bool) }); ok {
		l.SetJSON(opts.JSON)
	}
}

// LoggedIn reports whether a session token is stored.
func (a *App) LoggedIn() bool {
	return a.creds.Token() != ""
}

// Login stores token and drops everything cached under the previous session.
func (a *App) Login(token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return zerr.Wrap(domain.ErrInvalidInput, "token is empty")
	}
	if err := a.creds.Save(token); err != nil {
		return err
	}
	a.features.Client.Clear()
	a.logger.Info("logged in")
	return nil
}

// Logout forgets the token and the cached data of the session.
func (a *App) Logout() error {
	if err := a.creds.Clear(); err != nil {
		return err
	}
	a.features.Client.Clear()
	a.logger.Info("logged out")
	return nil
}

// Overview is the dashboard assembled from every aggregate query.
type Overview struct {
	Customers  *domain.CustomerOverview
	Inbounds   *domain.InboundOverview
	Inventory  *domain.InventorySummary
	Categories int
}

// Overview fetches the dashboard aggregates concurrently.
func (a *App) Overview(ctx context.Context) (*Overview, error) {
	f := a.features
	out := &Overview{}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		v, err := f.Customers.FetchOverview(ctx)
		out.Customers = v
		return err
	})
	g.Go(func() error {
		v, err := f.Inbounds.FetchOverview(ctx)
		out.Inbounds = v
		return err
	})
	g.Go(func() error {
		v, err := f.Inventory.FetchSummary(ctx)
		out.Inventory = v
		return err
	})
	g.Go(func() error {
		tree, err := f.Categories.FetchTree(ctx)
		out.Categories = countCategories(tree)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, zerr.Wrap(err, "failed to load overview")
	}
	return out, nil
}

func countCategories(tree []domain.Category) int {
	n := len(tree)
	for _, c := range tree {
		n += countCategories(c.Children)
	}
	return n
}

// CacheEntries lists the content of the query cache.
func (a *App) CacheEntries() []query.EntryInfo {
	return a.features.Client.Entries()
}

// ClearCache drops every cached query.
func (a *App) ClearCache() {
	n := a.features.Client.Len()
	a.features.Client.Clear()
	a.logger.Debug(fmt.Sprintf("cache cleared entries=%d", n))
}

// WatchCredentials follows logins and logouts made by other processes until
// ctx is done. Each change reloads the token and drops the cache, since
// cached data belongs to the previous session.
func (a *App) WatchCredentials(ctx context.Context) error {
	return a.watcher.Watch(ctx, func() {
		if err := a.creds.Load(); err != nil {
			a.logger.Error(err)
		}
		a.features.Client.Clear()
		a.logger.Debug("credentials changed, cache cleared")
	})
}
