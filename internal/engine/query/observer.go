package query

import (
	"context"
	"sync"
	"time"
)

// observer is the untyped subscription registered on an entry.
type observer struct {
	enabled  bool
	onChange func(state)

	mu      sync.Mutex
	latest  state
	version uint64
	closed  bool

	signal chan struct{}
	done   chan struct{}
}

func newObserver(enabled bool, onChange func(state)) *observer {
	o := &observer{
		enabled:  enabled,
		onChange: onChange,
		done:     make(chan struct{}),
	}
	if onChange != nil {
		o.signal = make(chan struct{}, 1)
		go o.loop()
	}
	return o
}

// push records st unless a newer version was already seen, then wakes the
// listener. Bursts of updates coalesce into the latest one.
func (o *observer) push(st state, version uint64) {
	o.mu.Lock()
	if o.closed || version <= o.version {
		o.mu.Unlock()
		return
	}
	o.latest = st
	o.version = version
	o.mu.Unlock()

	o.wake()
}

// wake schedules a listener call with the latest recorded state.
func (o *observer) wake() {
	if o.signal == nil {
		return
	}
	select {
	case o.signal <- struct{}{}:
	default:
	}
}

func (o *observer) loop() {
	for {
		select {
		case <-o.done:
			return
		case <-o.signal:
			o.mu.Lock()
			st, closed := o.latest, o.closed
			o.mu.Unlock()
			if closed {
				return
			}
			o.onChange(st)
		}
	}
}

func (o *observer) close() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.closed {
		return
	}
	o.closed = true
	close(o.done)
}

type delivery struct {
	observer *observer
	state    state
	version  uint64
}

type deliveries []delivery

func (d deliveries) send() {
	for _, item := range d {
		item.observer.push(item.state, item.version)
	}
}

// Observer is a live subscription to one query key, the equivalent of a
// mounted component reading that query.
type Observer[T any] struct {
	client *Client
	entry  *entry
	core   *observer
}

type subscribeConfig[T any] struct {
	policy   *Policy
	enabled  bool
	onChange func(Snapshot[T])
}

// SubscribeOption configures a subscription.
type SubscribeOption[T any] func(*subscribeConfig[T])

// WithPolicy overrides the client's default policy for this query.
func WithPolicy[T any](p Policy) SubscribeOption[T] {
	return func(c *subscribeConfig[T]) {
		c.policy = &p
	}
}

// Enabled turns fetching on or off; a disabled observer reads the cache but never fetches.
func Enabled[T any](enabled bool) SubscribeOption[T] {
	return func(c *subscribeConfig[T]) {
		c.enabled = enabled
	}
}

// OnChange registers a listener called with every newer snapshot.
// Listeners run on their own goroutine, one at a time, in version order.
func OnChange[T any](fn func(Snapshot[T])) SubscribeOption[T] {
	return func(c *subscribeConfig[T]) {
		c.onChange = fn
	}
}

// Subscribe observes key, fetching it when the entry is missing, invalidated
// or older than the policy allows. Concurrent subscribers share one fetch.
// An OnChange listener first receives the state found at subscription.
func Subscribe[T any](c *Client, key Key, fetch func(ctx context.Context) (T, error), opts ...SubscribeOption[T]) *Observer[T] {
	cfg := subscribeConfig[T]{enabled: true}
	for _, opt := range opts {
		opt(&cfg)
	}
	policy := c.defaults
	if cfg.policy != nil {
		policy = *cfg.policy
	}

	var listener func(state)
	if cfg.onChange != nil {
		cb := cfg.onChange
		listener = func(st state) { cb(typed[T](st)) }
	}
	core := newObserver(cfg.enabled, listener)

	c.mu.Lock()
	e := c.entryLocked(key, policy)
	e.policy = policy
	if fetch != nil {
		e.fetch = erase(fetch)
	}
	e.stopGC()
	e.observers[core] = struct{}{}

	var out deliveries
	if cfg.enabled && e.fetch != nil && e.flight == nil && e.isStale(time.Now()) {
		c.startFetchLocked(e)
		out = c.changedLocked(e)
	}
	core.latest = e.state(time.Now())
	core.version = e.version
	c.mu.Unlock()

	out.send()
	core.wake()
	return &Observer[T]{client: c, entry: e, core: core}
}

func erase[T any](fetch func(ctx context.Context) (T, error)) FetchFunc {
	return func(ctx context.Context) (any, error) {
		return fetch(ctx)
	}
}

// Key returns the observed key.
func (o *Observer[T]) Key() Key {
	return o.entry.key
}

// Snapshot returns the current state of the entry. After Close it returns
// the last state delivered before unsubscribing.
func (o *Observer[T]) Snapshot() Snapshot[T] {
	o.core.mu.Lock()
	if o.core.closed {
		st := o.core.latest
		o.core.mu.Unlock()
		return typed[T](st)
	}
	o.core.mu.Unlock()

	o.client.mu.Lock()
	st := o.entry.state(time.Now())
	o.client.mu.Unlock()
	return typed[T](st)
}

// Wait blocks until no fetch is in flight for the key and returns the result.
func (o *Observer[T]) Wait(ctx context.Context) (Snapshot[T], error) {
	st, err := o.client.wait(ctx, o.entry)
	if err != nil {
		return Snapshot[T]{}, err
	}
	return typed[T](st), nil
}

// Refetch fetches the key now, joining a fetch that is already in flight.
func (o *Observer[T]) Refetch() {
	c := o.client
	c.mu.Lock()
	var out deliveries
	if c.entries[o.entry.id] == o.entry && o.entry.flight == nil && o.entry.fetch != nil {
		c.startFetchLocked(o.entry)
		out = c.changedLocked(o.entry)
	}
	c.mu.Unlock()
	out.send()
}

// SetEnabled switches fetching on or off. Enabling fetches if the entry is stale.
func (o *Observer[T]) SetEnabled(enabled bool) {
	c := o.client
	c.mu.Lock()
	if _, ok := o.entry.observers[o.core]; !ok {
		c.mu.Unlock()
		return
	}
	o.core.enabled = enabled

	var out deliveries
	e := o.entry
	if enabled && c.entries[e.id] == e && e.fetch != nil && e.flight == nil && e.isStale(time.Now()) {
		c.startFetchLocked(e)
		out = c.changedLocked(e)
	}
	c.mu.Unlock()
	out.send()
}

// Close unsubscribes. A fetch in flight keeps running and its result is
// still cached, but this observer no longer receives updates. The entry is
// collected once it has had no observers for the policy's GCAfter.
func (o *Observer[T]) Close() {
	c := o.client
	c.mu.Lock()
	if _, ok := o.entry.observers[o.core]; ok {
		delete(o.entry.observers, o.core)
		o.core.mu.Lock()
		o.core.latest = o.entry.state(time.Now())
		o.core.mu.Unlock()
		if c.entries[o.entry.id] == o.entry {
			c.armGCLocked(o.entry)
		}
	}
	c.mu.Unlock()

	o.core.close()
}
