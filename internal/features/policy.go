package features

import (
	"go.trai.ch/depot/internal/core/domain"
	"go.trai.ch/depot/internal/engine/query"
)

// PolicyFor returns the cache policy configured for e.
func PolicyFor(cfg *domain.Config, e domain.Entity) query.Policy {
	if cfg == nil {
		cfg = domain.DefaultConfig()
	}
	return toQueryPolicy(cfg.PolicyFor(e))
}

func toQueryPolicy(p domain.CachePolicy) query.Policy {
	return query.Policy{
		StaleAfter: p.StaleAfter,
		GCAfter:    p.GCAfter,
		Retry:      p.Retry,
		RetryDelay: p.RetryDelay,
	}
}
