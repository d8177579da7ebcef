package query

import (
	"context"
	"time"
)

// Fetch returns the cached data for key when it is fresh, otherwise fetches
// it (or joins the fetch in flight) and waits for the result.
func Fetch[T any](ctx context.Context, c *Client, key Key, fetch func(ctx context.Context) (T, error), policy Policy) (T, error) {
	var zero T

	c.mu.Lock()
	e := c.entryLocked(key, policy)
	e.policy = policy
	e.fetch = erase(fetch)

	var out deliveries
	if e.flight == nil {
		if !e.isStale(time.Now()) {
			snap := typed[T](e.state(time.Now()))
			c.mu.Unlock()
			return snap.Data, nil
		}
		c.startFetchLocked(e)
		out = c.changedLocked(e)
	}
	c.mu.Unlock()
	out.send()

	st, err := c.wait(ctx, e)
	if err != nil {
		return zero, err
	}
	if st.status == StatusError {
		return zero, st.err
	}
	return typed[T](st).Data, nil
}

// Peek returns the state of key without subscribing or fetching.
func Peek[T any](c *Client, key Key) (Snapshot[T], bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.lookupLocked(key)
	if !ok {
		return Snapshot[T]{}, false
	}
	return typed[T](e.state(time.Now())), true
}

// SetData stores value under key as if it had just been fetched.
// A fetch in flight for the key is superseded.
func SetData[T any](c *Client, key Key, value T) {
	c.mu.Lock()
	e := c.entryLocked(key, c.defaults)
	e.supersede()
	e.data = value
	e.hasData = true
	e.err = nil
	e.status = StatusSuccess
	e.fetchedAt = time.Now()
	e.invalidated = false
	e.writes++
	out := c.changedLocked(e)
	c.armGCLocked(e)
	c.mu.Unlock()

	out.send()
}
