package features

import (
	"context"

	"go.trai.ch/depot/internal/adapters/backend" //nolint:depguard // Wired in feature wiring
	"go.trai.ch/depot/internal/core/domain"
	"go.trai.ch/depot/internal/engine/query"
)

// Categories is the category feature.
type Categories struct {
	*Resource[domain.Category, domain.CategoryInput]
	api *backend.CategoryAPI
}

func newCategories(api *backend.CategoryAPI, deps Deps) *Categories {
	return &Categories{
		Resource: newResource(domain.EntityCategory, crudAPI[domain.Category, domain.CategoryInput](api), deps,
			func(c domain.Category) domain.CategoryInput {
				return domain.CategoryInput{
					Code:        c.Code,
					Name:        c.Name,
					ParentID:    c.ParentID,
					Description: c.Description,
					Active:      c.Active,
				}
			},
			func(c domain.Category) string { return c.ID },
		),
		api: api,
	}
}

// Tree observes the whole category forest.
func (c *Categories) Tree(opts ...query.SubscribeOption[[]domain.Category]) *query.Observer[[]domain.Category] {
	opts = append([]query.SubscribeOption[[]domain.Category]{query.WithPolicy[[]domain.Category](c.policy)}, opts...)
	return query.Subscribe(c.client, CategoryTreeKey, c.api.Tree, opts...)
}

// FetchTree returns the category forest, from the cache when fresh.
func (c *Categories) FetchTree(ctx context.Context) ([]domain.Category, error) {
	return query.Fetch(ctx, c.client, CategoryTreeKey, c.api.Tree, c.policy)
}
