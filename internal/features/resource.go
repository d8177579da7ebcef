package features

import (
	"context"

	"go.trai.ch/depot/internal/core/domain"
	"go.trai.ch/depot/internal/core/ports"
	"go.trai.ch/depot/internal/engine/form"
	"go.trai.ch/depot/internal/engine/query"
)

// Change is the payload of an update mutation.
type Change[In any] struct {
	ID    string
	Input In
}

// StatusChange activates or deactivates one entity.
type StatusChange struct {
	ID     string
	Active bool
}

// crudAPI is the shared template every entity API module implements.
type crudAPI[T, In any] interface {
	List(ctx context.Context, params domain.ListParams) (*domain.Page[T], error)
	Get(ctx context.Context, id string) (*T, error)
	Create(ctx context.Context, in In) (*T, error)
	Update(ctx context.Context, id string, in In) (*T, error)
	Delete(ctx context.Context, id string) error
	SetStatus(ctx context.Context, id string, active bool) (*T, error)
	Export(ctx context.Context, params domain.ListParams) ([]byte, error)
	Import(ctx context.Context, file ports.Upload) (*domain.ImportResult, error)
}

// Deps are the collaborators shared by every feature.
type Deps struct {
	Client   *query.Client
	Config   *domain.Config
	Notifier ports.Notifier
	Saver    ports.FileSaver
}

// Resource is the CRUD feature of one entity: its list and detail queries
// and the mutations that write it.
type Resource[T, In any] struct {
	entity domain.Entity
	client *query.Client
	api    crudAPI[T, In]
	policy query.Policy
	seed   func(T) In
	idOf   func(T) string

	Create    *query.Mutation[In, *T]
	Update    *query.Mutation[Change[In], *T]
	Delete    *query.Mutation[string, struct{}]
	SetStatus *query.Mutation[StatusChange, *T]
	Export    *query.Mutation[domain.ListParams, string]
	Import    *query.Mutation[ports.Upload, *domain.ImportResult]
}

func newResource[T, In any](
	e domain.Entity,
	api crudAPI[T, In],
	deps Deps,
	seed func(T) In,
	idOf func(T) string,
) *Resource[T, In] {
	r := &Resource[T, In]{
		entity: e,
		client: deps.Client,
		api:    api,
		policy: PolicyFor(deps.Config, e),
		seed:   seed,
		idOf:   idOf,
	}
	label := Label(e)

	r.Create = query.NewMutation(deps.Client, api.Create,
		query.Invalidates(func(In, *T) []query.Key { return Invalidation(e) }),
		query.WithFeedback[In, *T](feedback(deps.Notifier, label, "created", "create")),
	)
	r.Update = query.NewMutation(deps.Client,
		func(ctx context.Context, c Change[In]) (*T, error) {
			return api.Update(ctx, c.ID, c.Input)
		},
		query.Invalidates(func(c Change[In], _ *T) []query.Key { return Invalidation(e, c.ID) }),
		query.WithFeedback[Change[In], *T](feedback(deps.Notifier, label, "updated", "update")),
	)
	r.Delete = query.NewMutation(deps.Client,
		func(ctx context.Context, id string) (struct{}, error) {
			return struct{}{}, api.Delete(ctx, id)
		},
		query.Invalidates(func(string, struct{}) []query.Key { return Invalidation(e) }),
		query.OnSuccess(func(_ context.Context, _ struct{}, id string) {
			deps.Client.Remove(DetailKey(e, id))
		}),
		query.WithFeedback[string, struct{}](feedback(deps.Notifier, label, "deleted", "delete")),
	)
	r.SetStatus = query.NewMutation(deps.Client,
		func(ctx context.Context, s StatusChange) (*T, error) {
			return api.SetStatus(ctx, s.ID, s.Active)
		},
		query.Invalidates(func(s StatusChange, _ *T) []query.Key { return Invalidation(e, s.ID) }),
		query.WithFeedback[StatusChange, *T](feedback(deps.Notifier, label+" status", "updated", "update")),
	)
	r.Export = exportMutation(deps, label+" list", func(domain.ListParams) string { return e.Plural() + ".xlsx" }, api.Export)
	r.Import = query.NewMutation(deps.Client, api.Import,
		query.Invalidates(func(ports.Upload, *domain.ImportResult) []query.Key { return Invalidation(e) }),
		query.WithFeedback[ports.Upload, *domain.ImportResult](feedback(deps.Notifier, label+" import", "finished", "import")),
	)
	return r
}

// exportMutation downloads a file from the backend and hands it to the saver.
// It resolves to the path the file was written to.
func exportMutation[V any](
	deps Deps,
	subject string,
	name func(V) string,
	fetch func(context.Context, V) ([]byte, error),
) *query.Mutation[V, string] {
	return query.NewMutation(deps.Client,
		func(ctx context.Context, vars V) (string, error) {
			data, err := fetch(ctx, vars)
			if err != nil {
				return "", err
			}
			return deps.Saver.Save(name(vars), data)
		},
		query.WithFeedback[V, string](feedback(deps.Notifier, subject, "downloaded", "download")),
	)
}

// Entity returns the entity managed by r.
func (r *Resource[T, In]) Entity() domain.Entity {
	return r.entity
}

// Policy returns the cache policy of r's queries.
func (r *Resource[T, In]) Policy() query.Policy {
	return r.policy
}

// List observes one page of the entity list.
func (r *Resource[T, In]) List(params domain.ListParams, opts ...query.SubscribeOption[*domain.Page[T]]) *query.Observer[*domain.Page[T]] {
	opts = append([]query.SubscribeOption[*domain.Page[T]]{query.WithPolicy[*domain.Page[T]](r.policy)}, opts...)
	return query.Subscribe(r.client, ListKey(r.entity, params), func(ctx context.Context) (*domain.Page[T], error) {
		return r.api.List(ctx, params)
	}, opts...)
}

// FetchList returns one page of the entity list, from the cache when fresh.
func (r *Resource[T, In]) FetchList(ctx context.Context, params domain.ListParams) (*domain.Page[T], error) {
	return query.Fetch(ctx, r.client, ListKey(r.entity, params), func(ctx context.Context) (*domain.Page[T], error) {
		return r.api.List(ctx, params)
	}, r.policy)
}

// Detail observes one entity. An empty id yields a disabled query.
func (r *Resource[T, In]) Detail(id string, opts ...query.SubscribeOption[*T]) *query.Observer[*T] {
	opts = append([]query.SubscribeOption[*T]{
		query.WithPolicy[*T](r.policy),
		query.Enabled[*T](id != ""),
	}, opts...)
	return query.Subscribe(r.client, DetailKey(r.entity, id), func(ctx context.Context) (*T, error) {
		return r.api.Get(ctx, id)
	}, opts...)
}

// FetchDetail returns one entity, from the cache when fresh.
func (r *Resource[T, In]) FetchDetail(ctx context.Context, id string) (*T, error) {
	return query.Fetch(ctx, r.client, DetailKey(r.entity, id), func(ctx context.Context) (*T, error) {
		return r.api.Get(ctx, id)
	}, r.policy)
}

// Editor returns the create/update form of the entity. Submissions go
// through r's Create and Update mutations.
func (r *Resource[T, In]) Editor(opts ...form.Option[T, In]) *form.Editor[T, In] {
	return form.New(r.seed,
		func(ctx context.Context, draft In) error {
			_, err := r.Create.MutateAsync(ctx, draft)
			return err
		},
		func(ctx context.Context, existing T, draft In) error {
			_, err := r.Update.MutateAsync(ctx, Change[In]{ID: r.idOf(existing), Input: draft})
			return err
		},
		opts...,
	)
}
