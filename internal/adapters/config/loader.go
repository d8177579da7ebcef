// Package config loads depot.yaml and applies environment overrides.
package config

import (
	"errors"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/afero"
	"go.trai.ch/depot/internal/core/domain"
	"go.trai.ch/depot/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Environment variables that override the file.
const (
	EnvBaseURL = "DEPOT_API_URL"
	EnvTimeout = "DEPOT_TIMEOUT"
)

// Loader implements ports.ConfigLoader on top of an afero filesystem.
type Loader struct {
	fs        afero.Fs
	configDir string
	lookupEnv func(string) (string, bool)
	logger    ports.Logger
}

// Option configures a Loader.
type Option func(*Loader)

// WithFs replaces the filesystem.
func WithFs(fsys afero.Fs) Option {
	return func(l *Loader) { l.fs = fsys }
}

// WithConfigDir sets the user config directory searched after the cwd chain.
func WithConfigDir(dir string) Option {
	return func(l *Loader) { l.configDir = dir }
}

// WithEnv replaces the environment lookup.
func WithEnv(lookup func(string) (string, bool)) Option {
	return func(l *Loader) { l.lookupEnv = lookup }
}

// NewLoader creates a Loader reading the OS filesystem and environment.
func NewLoader(logger ports.Logger, opts ...Option) *Loader {
	l := &Loader{
		fs:        afero.NewOsFs(),
		lookupEnv: os.LookupEnv,
		logger:    logger,
	}
	if dir, err := os.UserConfigDir(); err == nil {
		l.configDir = dir
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load resolves the configuration visible from cwd. A missing file yields
// the defaults; environment overrides are applied last.
func (l *Loader) Load(cwd string) (*domain.Config, error) {
	cfg := domain.DefaultConfig()
	if l.configDir != "" {
		cfg.DownloadsDir = domain.DefaultDownloadsPath(l.configDir)
	}

	path, err := l.find(cwd)
	switch {
	case errors.Is(err, domain.ErrConfigNotFound):
		l.logger.Debug("no " + domain.ConfigFileName + " found, using defaults")
	case err != nil:
		return nil, err
	default:
		file, err := l.read(path)
		if err != nil {
			return nil, err
		}
		if err := apply(cfg, file, filepath.Dir(path)); err != nil {
			return nil, zerr.With(err, "path", path)
		}
		l.logger.Debug("loaded configuration from " + path)
	}

	if err := l.applyEnv(cfg); err != nil {
		return nil, err
	}
	if err := validateBaseURL(cfg.BaseURL); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// find walks from cwd to the filesystem root, then tries the user config dir.
func (l *Loader) find(cwd string) (string, error) {
	dir := cwd
	for {
		candidate := filepath.Join(dir, domain.ConfigFileName)
		if ok, _ := afero.Exists(l.fs, candidate); ok {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	if l.configDir != "" {
		candidate := domain.DefaultConfigPath(l.configDir)
		if ok, _ := afero.Exists(l.fs, candidate); ok {
			return candidate, nil
		}
	}

	return "", zerr.With(zerr.Wrap(domain.ErrConfigNotFound, "searched up from cwd"), "cwd", cwd)
}

func (l *Loader) read(path string) (*File, error) {
	data, err := afero.ReadFile(l.fs, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, zerr.With(zerr.Wrap(domain.ErrConfigNotFound, "config vanished"), "path", path)
		}
		return nil, zerr.With(zerr.Wrap(domain.ErrConfigReadFailed, err.Error()), "path", path)
	}

	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrConfigParseFailed, err.Error()), "path", path)
	}
	return &file, nil
}

func apply(cfg *domain.Config, file *File, dir string) error {
	if file.API.BaseURL != "" {
		cfg.BaseURL = file.API.BaseURL
	}
	if file.API.Timeout != "" {
		d, err := parseDuration("api.timeout", file.API.Timeout)
		if err != nil {
			return err
		}
		cfg.Timeout = d
	}
	if file.Downloads.Dir != "" {
		cfg.DownloadsDir = file.Downloads.Dir
		if !filepath.IsAbs(cfg.DownloadsDir) {
			cfg.DownloadsDir = filepath.Join(dir, cfg.DownloadsDir)
		}
	}
	cfg.Telemetry = file.Telemetry.Enabled

	for e, p := range cfg.Policies {
		merged, err := mergePolicy(p, file.Cache.Defaults, "cache.defaults")
		if err != nil {
			return err
		}
		cfg.Policies[e] = merged
	}

	for name, block := range file.Cache.Entities {
		e, ok := domain.ParseEntity(name)
		if !ok {
			return zerr.With(zerr.Wrap(domain.ErrInvalidPolicy, "unknown entity"), "entity", name)
		}
		merged, err := mergePolicy(cfg.PolicyFor(e), block, "cache.entities."+name)
		if err != nil {
			return err
		}
		cfg.Policies[e] = merged
	}
	return nil
}

func mergePolicy(base domain.CachePolicy, block PolicyBlock, field string) (domain.CachePolicy, error) {
	out := base
	var err error
	if block.StaleAfter != "" {
		if out.StaleAfter, err = parseDuration(field+".staleAfter", block.StaleAfter); err != nil {
			return out, err
		}
	}
	if block.GCAfter != "" {
		if out.GCAfter, err = parseDuration(field+".gcAfter", block.GCAfter); err != nil {
			return out, err
		}
	}
	if block.RetryDelay != "" {
		if out.RetryDelay, err = parseDuration(field+".retryDelay", block.RetryDelay); err != nil {
			return out, err
		}
	}
	if block.Retry != nil {
		out.Retry = *block.Retry
	}
	return out, nil
}

func parseDuration(field, raw string) (time.Duration, error) {
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, zerr.With(zerr.Wrap(domain.ErrConfigParseFailed, "invalid duration"), field, raw)
	}
	return d, nil
}

func (l *Loader) applyEnv(cfg *domain.Config) error {
	if v, ok := l.lookupEnv(EnvBaseURL); ok && v != "" {
		cfg.BaseURL = v
	}
	if v, ok := l.lookupEnv(EnvTimeout); ok && v != "" {
		d, err := parseDuration(EnvTimeout, v)
		if err != nil {
			return err
		}
		cfg.Timeout = d
	}
	return nil
}

func validateBaseURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return zerr.With(zerr.Wrap(domain.ErrInvalidBaseURL, "expected an absolute http(s) url"), "base_url", raw)
	}
	return nil
}
