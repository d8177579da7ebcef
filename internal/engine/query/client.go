package query

import (
	"sort"
	"sync"
	"time"

	"go.trai.ch/depot/internal/core/ports"
)

// Client is the process-wide query cache: an explicit map from canonical key
// to entry, each entry tracking its own observers.
// All entry state is guarded by one mutex; observer callbacks run outside it.
type Client struct {
	mu       sync.Mutex
	entries  map[string]*entry
	defaults Policy
	tracer   ports.Tracer
	logger   ports.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithDefaultPolicy sets the policy of queries that do not specify one.
func WithDefaultPolicy(p Policy) Option {
	return func(c *Client) {
		c.defaults = p
	}
}

// WithTracer instruments fetches and mutations.
func WithTracer(t ports.Tracer) Option {
	return func(c *Client) {
		if t != nil {
			c.tracer = t
		}
	}
}

// WithLogger reports retries and discarded responses at debug level.
func WithLogger(l ports.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewClient creates an empty cache.
func NewClient(opts ...Option) *Client {
	c := &Client{
		entries:  make(map[string]*entry),
		defaults: DefaultPolicy(),
		tracer:   nopTracer{},
		logger:   nopLogger{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// DefaultPolicy returns the policy applied to queries without their own.
func (c *Client) DefaultPolicy() Policy {
	return c.defaults
}

// entryLocked returns the entry for key, creating an idle one if needed.
func (c *Client) entryLocked(key Key, policy Policy) *entry {
	id := key.String()
	if e, ok := c.entries[id]; ok {
		return e
	}
	e := newEntry(key, id, policy)
	c.entries[id] = e
	return e
}

func (c *Client) lookupLocked(key Key) (*entry, bool) {
	e, ok := c.entries[key.String()]
	return e, ok
}

// Invalidate marks every entry whose key starts with one of the prefixes as
// stale. Entries with an enabled observer are refetched right away; any fetch
// they already had in flight is superseded. The others refetch on their next
// subscription.
func (c *Client) Invalidate(prefixes ...Key) {
	c.refetch(c.markStale(prefixes...))
}

// markStale applies invalidation synchronously and returns the touched entries.
func (c *Client) markStale(prefixes ...Key) []*entry {
	if len(prefixes) == 0 {
		return nil
	}

	c.mu.Lock()
	var marked []*entry
	var out deliveries
	for _, e := range c.entries {
		if !e.key.MatchesAny(prefixes) {
			continue
		}
		e.invalidate()
		marked = append(marked, e)
		out = append(out, c.changedLocked(e)...)
	}
	c.mu.Unlock()

	out.send()
	return marked
}

// refetch starts a fetch for each marked entry that still needs one and has
// an enabled observer.
func (c *Client) refetch(marked []*entry) {
	if len(marked) == 0 {
		return
	}

	c.mu.Lock()
	var out deliveries
	for _, e := range marked {
		if c.entries[e.id] != e || !e.invalidated || e.fetch == nil || !e.hasEnabledObserver() {
			continue
		}
		if e.flight != nil && e.flight.gen > e.invalidatedAt {
			// Started after the invalidation, already fresh enough.
			continue
		}
		c.startFetchLocked(e)
		out = append(out, c.changedLocked(e)...)
	}
	c.mu.Unlock()

	out.send()
}

// IsStale reports whether the entry for key exists and would be refetched on access.
func (c *Client) IsStale(key Key) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.lookupLocked(key)
	return ok && e.isStale(time.Now())
}

// Remove drops every entry under the prefixes. Entries that are still
// observed cannot be dropped, so they lose their data and refetch instead.
func (c *Client) Remove(prefixes ...Key) {
	c.mu.Lock()
	var out deliveries
	for id, e := range c.entries {
		if !e.key.MatchesAny(prefixes) {
			continue
		}
		if len(e.observers) == 0 {
			e.stopGC()
			delete(c.entries, id)
			continue
		}
		e.reset()
		if e.fetch != nil && e.hasEnabledObserver() {
			c.startFetchLocked(e)
		}
		out = append(out, c.changedLocked(e)...)
	}
	c.mu.Unlock()

	out.send()
}

// Clear removes every entry.
func (c *Client) Clear() {
	c.Remove(Key{})
}

// EntryInfo describes one cache entry for diagnostics.
type EntryInfo struct {
	Key       string
	Status    Status
	Observers int
	Stale     bool
	FetchedAt time.Time
}

// Entries lists the cache content ordered by key.
func (c *Client) Entries() []EntryInfo {
	c.mu.Lock()
	now := time.Now()
	infos := make([]EntryInfo, 0, len(c.entries))
	for _, e := range c.entries {
		infos = append(infos, EntryInfo{
			Key:       e.id,
			Status:    e.status,
			Observers: len(e.observers),
			Stale:     e.isStale(now),
			FetchedAt: e.fetchedAt,
		})
	}
	c.mu.Unlock()

	sort.Slice(infos, func(i, j int) bool { return infos[i].Key < infos[j].Key })
	return infos
}

// Len returns the number of cached entries.
func (c *Client) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// armGCLocked schedules removal of an entry that lost its last observer.
func (c *Client) armGCLocked(e *entry) {
	if len(e.observers) > 0 || e.policy.GCAfter < 0 {
		return
	}
	e.stopGC()

	var timer *time.Timer
	timer = time.AfterFunc(e.policy.GCAfter, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if e.gcTimer != timer || c.entries[e.id] != e || len(e.observers) > 0 || e.flight != nil {
			return
		}
		delete(c.entries, e.id)
		e.gcTimer = nil
	})
	e.gcTimer = timer
}

// changedLocked bumps the entry version and prepares observer deliveries.
func (c *Client) changedLocked(e *entry) deliveries {
	e.version++
	if len(e.observers) == 0 {
		return nil
	}
	st := e.state(time.Now())
	out := make(deliveries, 0, len(e.observers))
	for o := range e.observers {
		out = append(out, delivery{observer: o, state: st, version: e.version})
	}
	return out
}
