package query

import (
	"context"
	"sync"
)

// MutationStatus is the state of the latest mutation invocation.
type MutationStatus uint8

// Mutation states.
const (
	MutationIdle MutationStatus = iota
	MutationPending
	MutationSuccess
	MutationError
)

// MutationState is the observable state of a Mutation.
type MutationState[D any] struct {
	Status MutationStatus
	Data   D
	Err    error
}

// MutationFunc performs the server-side write.
type MutationFunc[V, D any] func(ctx context.Context, vars V) (D, error)

type mutationConfig[V, D any] struct {
	invalidates []func(V, D) []Key
	onSuccess   []func(ctx context.Context, data D, vars V)
	onError     []func(err error, vars V)
	feedback    Feedback
	optimistic  func(V) []Update
}

// MutationOption configures a Mutation.
type MutationOption[V, D any] func(*mutationConfig[V, D])

// Invalidates declares the keys a successful invocation makes stale.
func Invalidates[V, D any](fn func(vars V, data D) []Key) MutationOption[V, D] {
	return func(c *mutationConfig[V, D]) {
		c.invalidates = append(c.invalidates, fn)
	}
}

// OnSuccess adds a callback run after invalidation is applied and before
// dependent queries are refetched.
func OnSuccess[V, D any](fn func(ctx context.Context, data D, vars V)) MutationOption[V, D] {
	return func(c *mutationConfig[V, D]) {
		c.onSuccess = append(c.onSuccess, fn)
	}
}

// OnError adds a callback run after optimistic updates were rolled back.
func OnError[V, D any](fn func(err error, vars V)) MutationOption[V, D] {
	return func(c *mutationConfig[V, D]) {
		c.onError = append(c.onError, fn)
	}
}

// WithFeedback sets the notification shown for each invocation.
func WithFeedback[V, D any](fb Feedback) MutationOption[V, D] {
	return func(c *mutationConfig[V, D]) {
		c.feedback = fb
	}
}

// WithOptimistic applies the returned updates before the server call and
// rolls them back if it fails.
func WithOptimistic[V, D any](fn func(vars V) []Update) MutationOption[V, D] {
	return func(c *mutationConfig[V, D]) {
		c.optimistic = fn
	}
}

// Mutation wraps a server-side write with cache invalidation and feedback.
// Mutations are never retried and, once started, always run to completion.
type Mutation[V, D any] struct {
	client *Client
	fn     MutationFunc[V, D]
	cfg    mutationConfig[V, D]

	mu    sync.Mutex
	seq   uint64
	state MutationState[D]
}

// NewMutation creates a mutation bound to the cache c.
func NewMutation[V, D any](c *Client, fn MutationFunc[V, D], opts ...MutationOption[V, D]) *Mutation[V, D] {
	m := &Mutation[V, D]{client: c, fn: fn}
	for _, opt := range opts {
		opt(&m.cfg)
	}
	return m
}

// State returns the state of the latest invocation.
func (m *Mutation[V, D]) State() MutationState[D] {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// IsLoading reports whether the latest invocation is still running.
func (m *Mutation[V, D]) IsLoading() bool {
	return m.State().Status == MutationPending
}

// Reset forgets the outcome of the latest invocation.
func (m *Mutation[V, D]) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	m.state = MutationState[D]{}
}

func (m *Mutation[V, D]) begin() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	m.state = MutationState[D]{Status: MutationPending}
	return m.seq
}

func (m *Mutation[V, D]) finish(seq uint64, st MutationState[D]) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if seq == m.seq {
		m.state = st
	}
}

// Mutate starts the mutation in the background. Failures are reported
// through the feedback and the mutation state only.
func (m *Mutation[V, D]) Mutate(ctx context.Context, vars V) {
	go func() {
		_, _ = m.MutateAsync(ctx, vars)
	}()
}

// MutateAsync runs the mutation and returns its result.
//
// On success the invalidation set is marked stale first, then the OnSuccess
// callbacks run, then observed dependents are refetched, then the success
// message is shown. On failure optimistic updates are rolled back, the
// OnError callbacks run, one error message is shown and the error is returned.
// Either way, observed entries whose refetch an optimistic update cancelled
// are fetched again.
func (m *Mutation[V, D]) MutateAsync(ctx context.Context, vars V) (D, error) {
	seq := m.begin()
	ctx = context.WithoutCancel(ctx)

	ctx, span := m.client.tracer.Start(ctx, "query.mutate")
	defer span.End()

	var updates []Update
	var rollbacks []Rollback
	if m.cfg.optimistic != nil {
		updates = m.cfg.optimistic(vars)
		for _, u := range updates {
			rollbacks = append(rollbacks, m.client.SetOptimistic(u))
		}
	}

	data, err := m.fn(ctx, vars)
	if err != nil {
		for i := len(rollbacks) - 1; i >= 0; i-- {
			rollbacks[i]()
		}
		span.RecordError(err)
		m.finish(seq, MutationState[D]{Status: MutationError, Data: data, Err: err})
		for _, cb := range m.cfg.onError {
			cb(err, vars)
		}
		m.cfg.feedback.failed(err)
		return data, err
	}

	var keys []Key
	for _, fn := range m.cfg.invalidates {
		keys = append(keys, fn(vars, data)...)
	}
	span.SetAttribute("mutation.invalidated", int64(len(keys)))

	marked := m.client.markStale(keys...)
	m.finish(seq, MutationState[D]{Status: MutationSuccess, Data: data})
	for _, cb := range m.cfg.onSuccess {
		cb(ctx, data, vars)
	}
	m.client.refetch(marked)
	m.client.resumeAll(updates)
	m.cfg.feedback.succeeded()

	return data, nil
}

// Err returns the error of the latest invocation, if it failed.
func (m *Mutation[V, D]) Err() error {
	return m.State().Err
}
