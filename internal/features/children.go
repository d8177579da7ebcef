package features

import (
	"context"
	"slices"

	"go.trai.ch/depot/internal/core/domain"
	"go.trai.ch/depot/internal/engine/query"
)

// Child addresses one item of an entity's sub-collection, such as an
// address of a customer. ID is empty when adding.
type Child[V any] struct {
	OwnerID string
	ID      string
	Value   V
}

// childMutation writes to a sub-collection of e. The optimistic updates are
// shown right away and rolled back if the server rejects the write; either
// way the owner is invalidated so the cache converges on the server state.
func childMutation[V, D any](
	deps Deps,
	e domain.Entity,
	fb query.Feedback,
	fn func(ctx context.Context, c Child[V]) (D, error),
	optimistic func(c Child[V]) []query.Update,
) *query.Mutation[Child[V], D] {
	return query.NewMutation(deps.Client, fn,
		query.WithOptimistic[Child[V], D](optimistic),
		query.Invalidates(func(c Child[V], _ D) []query.Key { return Invalidation(e, c.OwnerID) }),
		query.WithFeedback[Child[V], D](fb),
	)
}

// patchDetail rewrites the cached detail of one entity.
func patchDetail[T any](e domain.Entity, id string, fn func(T) T) query.Update {
	return query.Patch(DetailKey(e, id), func(old *T) *T {
		if old == nil {
			return nil
		}
		next := fn(*old)
		return &next
	})
}

// patchList rewrites a cached sub-collection.
func patchList[V any](e domain.Entity, id, collection string, fn func([]V) []V) query.Update {
	return query.Patch(SubKey(e, id, collection), fn)
}

func appended[V any](list []V, v V) []V {
	return append(slices.Clone(list), v)
}

func replaced[V any](list []V, idOf func(V) string, id string, v V) []V {
	out := slices.Clone(list)
	for i := range out {
		if idOf(out[i]) == id {
			out[i] = v
		}
	}
	return out
}

func removed[V any](list []V, idOf func(V) string, id string) []V {
	return slices.DeleteFunc(slices.Clone(list), func(v V) bool { return idOf(v) == id })
}

func addressID(a domain.Address) string   { return a.ID }
func contactID(c domain.Contact) string   { return c.ID }
func locationID(l domain.Location) string { return l.ID }
func itemID(i domain.InboundItem) string  { return i.ID }

// subList observes a sub-collection of one entity.
func subList[V any](deps Deps, e domain.Entity, id, collection string, policy query.Policy, fetch func(ctx context.Context, id string) ([]V, error)) *query.Observer[[]V] {
	return query.Subscribe(deps.Client, SubKey(e, id, collection), func(ctx context.Context) ([]V, error) {
		return fetch(ctx, id)
	}, query.WithPolicy[[]V](policy), query.Enabled[[]V](id != ""))
}
