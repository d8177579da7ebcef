package query

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/avast/retry-go"
	"go.trai.ch/depot/internal/core/domain"
)

// FetchFunc loads the data of one query. It must honour ctx cancellation.
type FetchFunc func(ctx context.Context) (any, error)

type flight struct {
	gen    uint64
	cancel context.CancelFunc
	done   chan struct{}
}

type entry struct {
	key    Key
	id     string
	policy Policy
	fetch  FetchFunc

	data      any
	hasData   bool
	err       error
	status    Status
	fetchedAt time.Time

	invalidated   bool
	invalidatedAt uint64

	// gen is the generation of the newest issued fetch. Only that fetch may settle.
	gen    uint64
	flight *flight
	// writes counts data replacements so optimistic rollbacks can detect newer writes.
	writes uint64

	observers map[*observer]struct{}
	gcTimer   *time.Timer
	version   uint64
}

func newEntry(key Key, id string, policy Policy) *entry {
	return &entry{
		key:       key,
		id:        id,
		policy:    policy,
		status:    StatusIdle,
		observers: make(map[*observer]struct{}),
	}
}

func (e *entry) isStale(now time.Time) bool {
	return !e.hasData || e.invalidated || e.policy.expired(e.fetchedAt, now)
}

func (e *entry) hasEnabledObserver() bool {
	for o := range e.observers {
		if o.enabled {
			return true
		}
	}
	return false
}

func (e *entry) invalidate() {
	e.invalidated = true
	e.invalidatedAt = e.gen
}

func (e *entry) reset() {
	e.supersede()
	e.data = nil
	e.hasData = false
	e.err = nil
	e.status = StatusIdle
	e.fetchedAt = time.Time{}
	e.invalidate()
	e.writes++
}

// supersede cancels the in-flight fetch; its result will be discarded.
func (e *entry) supersede() {
	if e.flight == nil {
		return
	}
	e.flight.cancel()
	e.flight = nil
	e.gen++
	if e.status == StatusLoading {
		e.status = e.settledStatus()
	}
}

func (e *entry) settledStatus() Status {
	switch {
	case e.err != nil:
		return StatusError
	case e.hasData:
		return StatusSuccess
	default:
		return StatusIdle
	}
}

func (e *entry) stopGC() {
	if e.gcTimer != nil {
		e.gcTimer.Stop()
		e.gcTimer = nil
	}
}

func (e *entry) state(now time.Time) state {
	return state{
		data:      e.data,
		hasData:   e.hasData,
		err:       e.err,
		status:    e.status,
		fetchedAt: e.fetchedAt,
		stale:     e.isStale(now),
	}
}

// startFetchLocked issues a new generation for e, superseding any fetch in flight.
func (c *Client) startFetchLocked(e *entry) {
	if e.flight != nil {
		e.flight.cancel()
	}
	e.gen++
	ctx, cancel := context.WithCancel(context.Background())
	f := &flight{gen: e.gen, cancel: cancel, done: make(chan struct{})}
	e.flight = f
	e.status = StatusLoading

	go c.run(ctx, e, f, e.fetch, e.policy)
}

func retryable(err error) bool {
	return retry.IsRecoverable(err) &&
		!domain.IsUnauthenticated(err) &&
		!errors.Is(err, context.Canceled)
}

func (c *Client) run(ctx context.Context, e *entry, f *flight, fetch FetchFunc, policy Policy) {
	defer f.cancel()

	ctx, span := c.tracer.Start(ctx, "query.fetch")
	span.SetAttribute("query.key", e.id)
	span.SetAttribute("query.key_id", fmt.Sprintf("%016x", e.key.ID()))
	span.SetAttribute("query.generation", int64(f.gen))

	var data any
	attempts := 0
	err := retry.Do(
		func() error {
			attempts++
			d, err := fetch(ctx)
			if err != nil {
				return err
			}
			data = d
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(policy.attempts()),
		retry.Delay(policy.RetryDelay),
		retry.MaxDelay(MaxRetryDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(retryable),
		retry.OnRetry(func(n uint, err error) {
			if n+1 < policy.attempts() {
				c.logger.Debug(fmt.Sprintf("fetch %s failed on attempt %d, retrying: %v", e.id, n+1, err))
			}
		}),
	)

	span.SetAttribute("query.attempts", int64(attempts))
	if err != nil {
		span.RecordError(err)
	}
	span.End()

	c.settle(e, f, data, err)
}

// settle applies the outcome of flight f unless a newer generation was issued.
func (c *Client) settle(e *entry, f *flight, data any, err error) {
	c.mu.Lock()
	defer close(f.done)

	if e.gen != f.gen {
		c.mu.Unlock()
		c.logger.Debug(fmt.Sprintf("discarding superseded response for %s (generation %d)", e.id, f.gen))
		return
	}

	e.flight = nil
	if err == nil {
		e.data = data
		e.hasData = true
		e.err = nil
		e.status = StatusSuccess
		e.fetchedAt = time.Now()
		e.writes++
		if f.gen > e.invalidatedAt {
			e.invalidated = false
		}
	} else {
		e.err = err
		e.status = StatusError
	}

	var out deliveries
	if c.entries[e.id] == e {
		out = c.changedLocked(e)
		c.armGCLocked(e)
	}
	c.mu.Unlock()

	out.send()
}

// wait blocks until e has no fetch in flight and returns its state.
func (c *Client) wait(ctx context.Context, e *entry) (state, error) {
	for {
		c.mu.Lock()
		if e.flight == nil {
			st := e.state(time.Now())
			c.mu.Unlock()
			return st, nil
		}
		done := e.flight.done
		c.mu.Unlock()

		select {
		case <-done:
		case <-ctx.Done():
			return state{}, ctx.Err()
		}
	}
}
