package domain

import (
	"time"

	"go.trai.ch/zerr"
)

// Defaults applied when the configuration leaves a value unset.
const (
	DefaultBaseURL    = "http://localhost:8080/api"
	DefaultTimeout    = 30 * time.Second
	DefaultStaleAfter = 0
	DefaultGCAfter    = 5 * time.Minute
	DefaultRetry      = 3
	DefaultRetryDelay = time.Second
)

// CachePolicy controls how long a cached query stays fresh, how long an
// unobserved entry is kept, and how often a failed fetch is retried.
type CachePolicy struct {
	// StaleAfter < 0 means never stale.
	StaleAfter time.Duration
	// GCAfter < 0 means never collected.
	GCAfter    time.Duration
	Retry      int
	RetryDelay time.Duration
}

// Config is the resolved client configuration.
type Config struct {
	BaseURL      string
	Timeout      time.Duration
	DownloadsDir string
	Telemetry    bool
	Policies     map[Entity]CachePolicy
}

// DefaultPolicies is the per-entity cache policy table.
// Reference data changes rarely, stock levels change constantly.
func DefaultPolicies() map[Entity]CachePolicy {
	return map[Entity]CachePolicy{
		EntityCategory:  {StaleAfter: 5 * time.Minute, GCAfter: 10 * time.Minute, Retry: DefaultRetry, RetryDelay: DefaultRetryDelay},
		EntityCustomer:  {StaleAfter: 30 * time.Second, GCAfter: DefaultGCAfter, Retry: DefaultRetry, RetryDelay: DefaultRetryDelay},
		EntityInbound:   {StaleAfter: 15 * time.Second, GCAfter: DefaultGCAfter, Retry: DefaultRetry, RetryDelay: DefaultRetryDelay},
		EntityInventory: {StaleAfter: 10 * time.Second, GCAfter: DefaultGCAfter, Retry: 1, RetryDelay: DefaultRetryDelay},
		EntityProduct:   {StaleAfter: time.Minute, GCAfter: DefaultGCAfter, Retry: DefaultRetry, RetryDelay: DefaultRetryDelay},
		EntitySupplier:  {StaleAfter: 5 * time.Minute, GCAfter: 10 * time.Minute, Retry: DefaultRetry, RetryDelay: DefaultRetryDelay},
		EntityWarehouse: {StaleAfter: 5 * time.Minute, GCAfter: 10 * time.Minute, Retry: DefaultRetry, RetryDelay: DefaultRetryDelay},
	}
}

// DefaultPolicy is used for keys that belong to no entity.
func DefaultPolicy() CachePolicy {
	return CachePolicy{
		StaleAfter: DefaultStaleAfter,
		GCAfter:    DefaultGCAfter,
		Retry:      DefaultRetry,
		RetryDelay: DefaultRetryDelay,
	}
}

// DefaultConfig returns a configuration with every default applied.
func DefaultConfig() *Config {
	return &Config{
		BaseURL:  DefaultBaseURL,
		Timeout:  DefaultTimeout,
		Policies: DefaultPolicies(),
	}
}

// PolicyFor returns the cache policy of e, falling back to DefaultPolicy.
func (c *Config) PolicyFor(e Entity) CachePolicy {
	if p, ok := c.Policies[e]; ok {
		return p
	}
	return DefaultPolicy()
}

// Validate checks the policy table. Negative StaleAfter and GCAfter are
// allowed and mean "never".
func (c *Config) Validate() error {
	for e, p := range c.Policies {
		if !e.Valid() {
			return zerr.With(zerr.Wrap(ErrInvalidPolicy, "unknown entity"), "entity", string(e))
		}
		if p.Retry < 0 || p.RetryDelay < 0 {
			return zerr.With(zerr.Wrap(ErrInvalidPolicy, "negative value"), "entity", string(e))
		}
	}
	return nil
}
