package main

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/depot/internal/adapters/backend"
	"go.trai.ch/depot/internal/app"
	"go.trai.ch/depot/internal/core/domain"
	"go.trai.ch/depot/internal/core/ports"
	"go.trai.ch/depot/internal/core/ports/mocks"
	"go.trai.ch/depot/internal/engine/query"
	"go.trai.ch/depot/internal/features"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

type transportFunc func(ctx context.Context, req *ports.Request) (*ports.Response, error)

func (f transportFunc) Do(ctx context.Context, req *ports.Request) (*ports.Response, error) {
	return f(ctx, req)
}

type fixture struct {
	logger   *mocks.MockLogger
	notifier *mocks.MockNotifier
	provider ComponentProvider
}

func newFixture(t *testing.T, transport ports.Transport) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	f := &fixture{
		logger:   mocks.NewMockLogger(ctrl),
		notifier: mocks.NewMockNotifier(ctrl),
	}
	cfg := domain.DefaultConfig()
	feats := features.New(backend.New(transport), features.Deps{
		Client:   query.NewClient(),
		Config:   cfg,
		Notifier: f.notifier,
		Saver:    mocks.NewMockFileSaver(ctrl),
	})
	application := app.New(feats, mocks.NewMockCredentialStore(ctrl), mocks.NewMockCredentialWatcher(ctrl), f.logger, cfg)

	f.provider = func(context.Context) (*app.Components, func(), error) {
		return &app.Components{App: application, Logger: f.logger}, func() {}, nil
	}
	return f
}

func failing(err error) ports.Transport {
	return transportFunc(func(context.Context, *ports.Request) (*ports.Response, error) {
		return nil, err
	})
}

// TestRun_Success verifies that the run function returns 0 when the command succeeds.
func TestRun_Success(t *testing.T) {
	f := newFixture(t, failing(errors.New("unused")))

	stderr := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"version"}, stderr, f.provider)
	assert.Equal(t, 0, exitCode)
}

// TestRun_InitializationError verifies that run returns 1 when component initialization fails.
func TestRun_InitializationError(t *testing.T) {
	provider := func(_ context.Context) (*app.Components, func(), error) {
		return nil, nil, errors.New("init failed")
	}

	stderr := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"version"}, stderr, provider)

	assert.Equal(t, 1, exitCode)
	assert.Contains(t, stderr.String(), "Error: init failed")
}

// TestRun_ExecutionError verifies that command errors are logged.
func TestRun_ExecutionError(t *testing.T) {
	f := newFixture(t, failing(errors.New("unused")))
	f.logger.EXPECT().Error(gomock.Any()).Do(func(err error) {
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}).Times(1)

	exitCode := run(context.Background(), []string{"login", "--token", " "}, new(bytes.Buffer), f.provider)
	assert.Equal(t, 1, exitCode)
}

// TestRun_MutationFailureIsNotLoggedTwice verifies that a failed write is only
// reported through its notification.
func TestRun_MutationFailureIsNotLoggedTwice(t *testing.T) {
	f := newFixture(t, failing(&domain.APIError{Status: http.StatusConflict, Message: "warehouse still holds stock"}))
	f.notifier.EXPECT().Error("warehouse still holds stock").Times(1)

	exitCode := run(context.Background(), []string{"warehouses", "delete", "w1"}, new(bytes.Buffer), f.provider)
	assert.Equal(t, 1, exitCode)
}

// TestRun_UnauthenticatedIsNotLogged verifies that an ended session is left
// to the login prompt.
func TestRun_UnauthenticatedIsNotLogged(t *testing.T) {
	f := newFixture(t, failing(zerr.Wrap(domain.ErrUnauthenticated, "session expired")))

	exitCode := run(context.Background(), []string{"warehouses", "get", "w1"}, new(bytes.Buffer), f.provider)
	assert.Equal(t, 1, exitCode)
}
