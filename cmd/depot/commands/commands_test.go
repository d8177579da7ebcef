package commands_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/depot/cmd/depot/commands"
	"go.trai.ch/depot/internal/adapters/backend"
	"go.trai.ch/depot/internal/app"
	"go.trai.ch/depot/internal/build"
	"go.trai.ch/depot/internal/core/domain"
	"go.trai.ch/depot/internal/core/ports"
	"go.trai.ch/depot/internal/core/ports/mocks"
	"go.trai.ch/depot/internal/engine/query"
	"go.trai.ch/depot/internal/features"
	"go.uber.org/mock/gomock"
)

type mockApp struct {
	features     *features.Features
	loginFunc    func(token string) error
	overviewFunc func(ctx context.Context) (*app.Overview, error)
	logOpts      app.LogOptions
	cleared      int
}

func (m *mockApp) Features() *features.Features { return m.features }

func (m *mockApp) ConfigureLogging(opts app.LogOptions) { m.logOpts = opts }

func (m *mockApp) Login(token string) error {
	if m.loginFunc != nil {
		return m.loginFunc(token)
	}
	return nil
}

func (m *mockApp) Logout() error { return nil }

func (m *mockApp) LoggedIn() bool { return true }

func (m *mockApp) Overview(ctx context.Context) (*app.Overview, error) {
	if m.overviewFunc != nil {
		return m.overviewFunc(ctx)
	}
	return nil, errors.New("no overview")
}

func (m *mockApp) CacheEntries() []query.EntryInfo { return m.features.Client.Entries() }

func (m *mockApp) ClearCache() { m.cleared++ }

func (m *mockApp) WatchCredentials(context.Context) error { return nil }

// router answers transport requests by method and path.
type router struct {
	mu     sync.Mutex
	routes map[string]func(req *ports.Request) (any, error)
	hits   map[string]int
}

func (r *router) handle(method, path string, fn func(req *ports.Request) (any, error)) {
	r.routes[method+" "+path] = fn
}

func (r *router) count(method, path string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.hits[method+" "+path]
}

func (r *router) Do(_ context.Context, req *ports.Request) (*ports.Response, error) {
	route := req.Method + " " + req.Path
	r.mu.Lock()
	r.hits[route]++
	fn, ok := r.routes[route]
	r.mu.Unlock()
	if !ok {
		return nil, &domain.APIError{Status: http.StatusNotFound, Message: "no route " + route}
	}
	payload, err := fn(req)
	if err != nil {
		return nil, err
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	if req.Result != nil {
		if err := json.Unmarshal(body, req.Result); err != nil {
			return nil, err
		}
	}
	return &ports.Response{Status: http.StatusOK, Body: body}, nil
}

type fixture struct {
	app      *mockApp
	router   *router
	notifier *mocks.MockNotifier
	stdout   *bytes.Buffer
	stderr   *bytes.Buffer
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	t.Setenv("NO_COLOR", "1")
	ctrl := gomock.NewController(t)
	f := &fixture{
		router:   &router{routes: map[string]func(*ports.Request) (any, error){}, hits: map[string]int{}},
		notifier: mocks.NewMockNotifier(ctrl),
		stdout:   new(bytes.Buffer),
		stderr:   new(bytes.Buffer),
	}
	f.app = &mockApp{features: features.New(backend.New(f.router), features.Deps{
		Client:   query.NewClient(),
		Config:   domain.DefaultConfig(),
		Notifier: f.notifier,
		Saver:    mocks.NewMockFileSaver(ctrl),
	})}
	return f
}

func (f *fixture) run(args ...string) error {
	cli := commands.New(f.app)
	cli.SetArgs(args)
	cli.SetOutput(f.stdout, f.stderr)
	return cli.Execute(context.Background())
}

var tea = domain.Product{
	ID:    "p1",
	SKU:   "TEA-1",
	Name:  "Green tea",
	Unit:  "box",
	Price: decimal.RequireFromString("12.5"),
	Cost:  decimal.RequireFromString("8"),
}

func TestCommands_Version(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.run("version"))
	assert.Contains(t, f.stdout.String(), build.Version)
}

func TestCommands_ListProducts(t *testing.T) {
	t.Run("renders a table", func(t *testing.T) {
		f := newFixture(t)
		var rawQuery string
		f.router.handle(http.MethodGet, "/products", func(req *ports.Request) (any, error) {
			rawQuery = req.Query.Encode()
			return domain.Page[domain.Product]{Items: []domain.Product{tea}, Total: 1, Page: 1, PageSize: 20}, nil
		})

		require.NoError(t, f.run("products", "list", "-o", "table", "--search", "tea", "--limit", "20"))

		out := f.stdout.String()
		assert.Contains(t, out, "SKU")
		assert.Contains(t, out, "TEA-1")
		assert.Contains(t, out, "12.50")
		assert.Contains(t, out, "4.50")
		assert.Contains(t, out, "page 1, 1 of 1")
		assert.Equal(t, "limit=20&search=tea", rawQuery)
	})

	t.Run("writes json", func(t *testing.T) {
		f := newFixture(t)
		f.router.handle(http.MethodGet, "/products", func(*ports.Request) (any, error) {
			return domain.Page[domain.Product]{Items: []domain.Product{tea}, Total: 1}, nil
		})

		require.NoError(t, f.run("products", "list", "--output", "json"))

		var page domain.Page[domain.Product]
		require.NoError(t, json.Unmarshal(f.stdout.Bytes(), &page))
		require.Len(t, page.Items, 1)
		assert.Equal(t, "TEA-1", page.Items[0].SKU)
	})

	t.Run("rejects unknown output", func(t *testing.T) {
		f := newFixture(t)
		err := f.run("products", "list", "-o", "yaml")
		require.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestCommands_CreateShowsFieldErrors(t *testing.T) {
	f := newFixture(t)
	f.notifier.EXPECT().Error("Could not create product").Times(1)
	f.router.handle(http.MethodPost, "/products", func(*ports.Request) (any, error) {
		return nil, &domain.APIError{
			Status: http.StatusUnprocessableEntity,
			Fields: []domain.FieldError{{Field: "sku", Message: "SKU already exists"}},
		}
	})

	err := f.run("products", "create", "--data", `{"sku":"TEA-1","name":"Green tea"}`)
	require.Error(t, err)
	assert.True(t, commands.Shown(err))
	assert.Contains(t, f.stderr.String(), "sku: SKU already exists")
}

func TestCommands_CreateRejectsUnknownFields(t *testing.T) {
	f := newFixture(t)
	err := f.run("products", "create", "--data", `{"colour":"green"}`)
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Zero(t, f.router.count(http.MethodPost, "/products"))
}

func TestCommands_UpdateMergesPayload(t *testing.T) {
	f := newFixture(t)
	f.notifier.EXPECT().Success("Product updated").Times(1)

	var sent domain.ProductInput
	f.router.handle(http.MethodGet, "/products/p1", func(*ports.Request) (any, error) {
		return tea, nil
	})
	f.router.handle(http.MethodPut, "/products/p1", func(req *ports.Request) (any, error) {
		sent = req.Body.(domain.ProductInput)
		out := tea
		out.Name = sent.Name
		return out, nil
	})

	require.NoError(t, f.run("products", "update", "p1", "-d", `{"name":"Black tea"}`))

	assert.Equal(t, "Black tea", sent.Name)
	assert.Equal(t, "TEA-1", sent.SKU, "fields missing from the payload keep their current value")
	assert.True(t, sent.Price.Equal(tea.Price))
	assert.Contains(t, f.stdout.String(), `"name": "Black tea"`)
}

func TestCommands_Status(t *testing.T) {
	f := newFixture(t)
	f.notifier.EXPECT().Success("Supplier status updated").Times(1)

	var active *bool
	f.router.handle(http.MethodPatch, "/suppliers/s1/status", func(req *ports.Request) (any, error) {
		in := req.Body.(domain.StatusInput)
		active = &in.Active
		return domain.Supplier{ID: "s1"}, nil
	})

	require.NoError(t, f.run("suppliers", "status", "s1", "inactive"))
	require.NotNil(t, active)
	assert.False(t, *active)

	err := f.run("suppliers", "status", "s1", "paused")
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCommands_Login(t *testing.T) {
	var token string
	f := newFixture(t)
	f.app.loginFunc = func(tok string) error {
		token = tok
		return nil
	}

	cli := commands.New(f.app)
	cli.SetArgs([]string{"login"})
	cli.SetOutput(f.stdout, f.stderr)
	cli.SetInput(strings.NewReader("  secret-token \n"))
	require.NoError(t, cli.Execute(context.Background()))

	assert.Equal(t, "secret-token", token)
	assert.Contains(t, f.stderr.String(), "Token:")
}

func TestCommands_GlobalFlags(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.run("cache", "clear", "--verbose", "--log-json"))
	assert.Equal(t, app.LogOptions{Verbose: true, JSON: true}, f.app.logOpts)
	assert.Equal(t, 1, f.app.cleared)
}

func TestCommands_Overview(t *testing.T) {
	f := newFixture(t)
	f.app.overviewFunc = func(context.Context) (*app.Overview, error) {
		return &app.Overview{
			Customers:  &domain.CustomerOverview{Total: 12},
			Inbounds:   &domain.InboundOverview{Total: 4, Pending: 1, Value: decimal.NewFromInt(300)},
			Inventory:  &domain.InventorySummary{Products: 40, LowStock: 2},
			Categories: 7,
		}, nil
	}

	require.NoError(t, f.run("overview", "-o", "table"))
	out := f.stdout.String()
	assert.Contains(t, out, "Customers      12")
	assert.Contains(t, out, "Receipt value  300.00")
	assert.Contains(t, out, "Low stock      2")
}

func TestCommands_ShellSharesCache(t *testing.T) {
	f := newFixture(t)
	f.router.handle(http.MethodGet, "/warehouses/w1", func(*ports.Request) (any, error) {
		return domain.Warehouse{ID: "w1", Name: "Main"}, nil
	})

	cli := commands.New(f.app)
	cli.SetArgs([]string{"shell"})
	cli.SetOutput(f.stdout, f.stderr)
	cli.SetInput(strings.NewReader("warehouses get w1\n\nwarehouses get w1\nbogus\nexit\nwarehouses get w1\n"))
	require.NoError(t, cli.Execute(context.Background()))

	assert.Equal(t, 1, f.router.count(http.MethodGet, "/warehouses/w1"), "the second read is served from the cache")
	assert.Equal(t, 2, strings.Count(f.stdout.String(), `"name": "Main"`))
	assert.Contains(t, f.stderr.String(), "Error:")
}

func TestCommands_WatchNeedsTerminal(t *testing.T) {
	f := newFixture(t)
	err := f.run("watch")
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Zero(t, f.router.count(http.MethodGet, "/inventory"), "no query starts without a terminal")
}
