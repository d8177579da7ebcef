package query

import "time"

// Update is an optimistic change to one cached entry.
type Update struct {
	Key   Key
	apply func(old any, ok bool) (any, bool)
}

// Patch builds an Update that rewrites the cached T under key.
// Missing entries and entries holding another type are left untouched.
func Patch[T any](key Key, fn func(old T) T) Update {
	return Update{
		Key: key,
		apply: func(old any, ok bool) (any, bool) {
			if !ok {
				return nil, false
			}
			v, isT := old.(T)
			if !isT {
				return nil, false
			}
			return fn(v), true
		},
	}
}

// Rollback undoes an optimistic change.
type Rollback func()

// SetOptimistic applies u ahead of the server. Any fetch in flight for the
// key is superseded so it cannot overwrite the optimistic value. The returned
// Rollback restores the previous data unless the entry was written since.
func (c *Client) SetOptimistic(u Update) Rollback {
	c.mu.Lock()
	e, ok := c.lookupLocked(u.Key)
	if !ok {
		c.mu.Unlock()
		return func() {}
	}
	next, apply := u.apply(e.data, e.hasData)
	if !apply {
		c.mu.Unlock()
		return func() {}
	}

	prevData, prevHas := e.data, e.hasData
	e.supersede()
	e.data = next
	e.hasData = true
	e.writes++
	written := e.writes
	out := c.changedLocked(e)
	c.mu.Unlock()
	out.send()

	return func() {
		c.mu.Lock()
		var restored deliveries
		if c.entries[e.id] == e && e.writes == written {
			e.data = prevData
			e.hasData = prevHas
			e.writes++
			restored = c.changedLocked(e)
		}
		c.mu.Unlock()
		restored.send()
		c.resume(e)
	}
}

// resumeAll restarts fetches that optimistic updates held back for entries that
// are still stale and observed.
func (c *Client) resumeAll(updates []Update) {
	for _, u := range updates {
		c.mu.Lock()
		e, ok := c.lookupLocked(u.Key)
		c.mu.Unlock()
		if ok {
			c.resume(e)
		}
	}
}

// resume restarts the fetch of an observed entry that is still stale once an
// optimistic write no longer holds it back.
func (c *Client) resume(e *entry) {
	c.mu.Lock()
	var out deliveries
	if c.entries[e.id] == e && e.flight == nil && e.fetch != nil &&
		e.hasEnabledObserver() && e.isStale(time.Now()) {
		c.startFetchLocked(e)
		out = c.changedLocked(e)
	}
	c.mu.Unlock()
	out.send()
}
