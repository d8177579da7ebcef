package config_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/depot/internal/adapters/config"
	"go.trai.ch/depot/internal/core/domain"
	"go.trai.ch/depot/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

const (
	projectDir = "/work/shop"
	configDir  = "/home/ops/.config"
)

func newLoader(t *testing.T, files map[string]string, env map[string]string) *config.Loader {
	t.Helper()

	fsys := afero.NewMemMapFs()
	for path, content := range files {
		require.NoError(t, afero.WriteFile(fsys, path, []byte(content), domain.FilePerm))
	}
	require.NoError(t, fsys.MkdirAll(projectDir, domain.DirPerm))

	log := mocks.NewMockLogger(gomock.NewController(t))
	log.EXPECT().Debug(gomock.Any()).AnyTimes()

	return config.NewLoader(log,
		config.WithFs(fsys),
		config.WithConfigDir(configDir),
		config.WithEnv(func(key string) (string, bool) {
			v, ok := env[key]
			return v, ok
		}),
	)
}

func TestLoader_Defaults(t *testing.T) {
	cfg, err := newLoader(t, nil, nil).Load(projectDir)
	require.NoError(t, err)

	assert.Equal(t, domain.DefaultBaseURL, cfg.BaseURL)
	assert.Equal(t, domain.DefaultTimeout, cfg.Timeout)
	assert.Equal(t, domain.DefaultDownloadsPath(configDir), cfg.DownloadsDir)
	assert.Equal(t, domain.DefaultPolicies(), cfg.Policies)
	assert.False(t, cfg.Telemetry)
}

func TestLoader_FileDiscoveredUpwards(t *testing.T) {
	files := map[string]string{
		"/work/depot.yaml": `
api:
  baseURL: https://erp.example.com/api
  timeout: 10s
downloads:
  dir: exports
telemetry:
  enabled: true
cache:
  defaults:
    retry: 2
  entities:
    inventory:
      staleAfter: 5s
      retry: 0
`,
		domain.DefaultConfigPath(configDir): "api:\n  baseURL: https://ignored.example.com\n",
	}

	cfg, err := newLoader(t, files, nil).Load(projectDir)
	require.NoError(t, err)

	assert.Equal(t, "https://erp.example.com/api", cfg.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.Timeout)
	assert.Equal(t, filepath.Join("/work", "exports"), cfg.DownloadsDir)
	assert.True(t, cfg.Telemetry)

	inv := cfg.PolicyFor(domain.EntityInventory)
	assert.Equal(t, 5*time.Second, inv.StaleAfter)
	assert.Equal(t, 0, inv.Retry)

	cat := cfg.PolicyFor(domain.EntityCategory)
	assert.Equal(t, 5*time.Minute, cat.StaleAfter)
	assert.Equal(t, 2, cat.Retry)
}

func TestLoader_UserConfigFallback(t *testing.T) {
	files := map[string]string{
		domain.DefaultConfigPath(configDir): "api:\n  baseURL: https://home.example.com/api\n",
	}

	cfg, err := newLoader(t, files, nil).Load(projectDir)
	require.NoError(t, err)
	assert.Equal(t, "https://home.example.com/api", cfg.BaseURL)
}

func TestLoader_EnvOverrides(t *testing.T) {
	files := map[string]string{
		"/work/shop/depot.yaml": "api:\n  baseURL: https://file.example.com\n  timeout: 10s\n",
	}
	env := map[string]string{
		config.EnvBaseURL: "https://env.example.com/api",
		config.EnvTimeout: "2s",
	}

	cfg, err := newLoader(t, files, env).Load(projectDir)
	require.NoError(t, err)
	assert.Equal(t, "https://env.example.com/api", cfg.BaseURL)
	assert.Equal(t, 2*time.Second, cfg.Timeout)
}

func TestLoader_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		env     map[string]string
		wantErr error
	}{
		{name: "malformed yaml", content: "api: [", wantErr: domain.ErrConfigParseFailed},
		{name: "bad duration", content: "api:\n  timeout: soon\n", wantErr: domain.ErrConfigParseFailed},
		{name: "unknown entity", content: "cache:\n  entities:\n    orders:\n      retry: 1\n", wantErr: domain.ErrInvalidPolicy},
		{name: "negative retry", content: "cache:\n  defaults:\n    retry: -1\n", wantErr: domain.ErrInvalidPolicy},
		{name: "relative base url", content: "api:\n  baseURL: /api\n", wantErr: domain.ErrInvalidBaseURL},
		{name: "bad env timeout", content: "", env: map[string]string{config.EnvTimeout: "x"}, wantErr: domain.ErrConfigParseFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			files := map[string]string{"/work/shop/depot.yaml": tt.content}
			_, err := newLoader(t, files, tt.env).Load(projectDir)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
