package features

import (
	"context"

	"go.trai.ch/depot/internal/adapters/backend" //nolint:depguard // Wired in feature wiring
	"go.trai.ch/depot/internal/core/domain"
	"go.trai.ch/depot/internal/engine/query"
)

// Adjust changes the on-hand quantity of one inventory item.
type Adjust struct {
	ID         string
	Adjustment domain.Adjustment
}

// Inventory is the stock level feature. Rows are created by the backend,
// so it only reads, adjusts and transfers.
type Inventory struct {
	client *query.Client
	api    *backend.InventoryAPI
	policy query.Policy

	Adjust   *query.Mutation[Adjust, *domain.InventoryItem]
	Transfer *query.Mutation[domain.Transfer, []domain.InventoryItem]
	Export   *query.Mutation[domain.ListParams, string]
}

func newInventory(api *backend.InventoryAPI, deps Deps) *Inventory {
	inv := &Inventory{
		client: deps.Client,
		api:    api,
		policy: PolicyFor(deps.Config, domain.EntityInventory),
	}

	inv.Adjust = query.NewMutation(deps.Client,
		func(ctx context.Context, a Adjust) (*domain.InventoryItem, error) {
			return api.Adjust(ctx, a.ID, a.Adjustment)
		},
		query.Invalidates(func(a Adjust, _ *domain.InventoryItem) []query.Key { return StockMoved(a.ID) }),
		query.WithFeedback[Adjust, *domain.InventoryItem](feedback(deps.Notifier, "stock", "adjusted", "adjust")),
	)
	inv.Transfer = query.NewMutation(deps.Client, api.Transfer,
		query.Invalidates(func(_ domain.Transfer, rows []domain.InventoryItem) []query.Key {
			ids := make([]string, 0, len(rows))
			for _, r := range rows {
				ids = append(ids, r.ID)
			}
			return StockMoved(ids...)
		}),
		query.WithFeedback[domain.Transfer, []domain.InventoryItem](feedback(deps.Notifier, "stock", "transferred", "transfer")),
	)
	inv.Export = exportMutation(deps, "stock list",
		func(domain.ListParams) string { return "inventory.xlsx" },
		api.Export,
	)
	return inv
}

// Policy returns the cache policy of inventory queries.
func (inv *Inventory) Policy() query.Policy {
	return inv.policy
}

// List observes one page of stock levels.
func (inv *Inventory) List(params domain.ListParams, opts ...query.SubscribeOption[*domain.Page[domain.InventoryItem]]) *query.Observer[*domain.Page[domain.InventoryItem]] {
	opts = append([]query.SubscribeOption[*domain.Page[domain.InventoryItem]]{
		query.WithPolicy[*domain.Page[domain.InventoryItem]](inv.policy),
	}, opts...)
	return query.Subscribe(inv.client, ListKey(domain.EntityInventory, params),
		func(ctx context.Context) (*domain.Page[domain.InventoryItem], error) {
			return inv.api.List(ctx, params)
		},
		opts...,
	)
}

// FetchList returns one page of stock levels.
func (inv *Inventory) FetchList(ctx context.Context, params domain.ListParams) (*domain.Page[domain.InventoryItem], error) {
	return query.Fetch(ctx, inv.client, ListKey(domain.EntityInventory, params),
		func(ctx context.Context) (*domain.Page[domain.InventoryItem], error) {
			return inv.api.List(ctx, params)
		},
		inv.policy,
	)
}

// Detail observes one stock level.
func (inv *Inventory) Detail(id string) *query.Observer[*domain.InventoryItem] {
	return query.Subscribe(inv.client, DetailKey(domain.EntityInventory, id),
		func(ctx context.Context) (*domain.InventoryItem, error) {
			return inv.api.Get(ctx, id)
		},
		query.WithPolicy[*domain.InventoryItem](inv.policy),
		query.Enabled[*domain.InventoryItem](id != ""),
	)
}

// FetchDetail returns one stock level.
func (inv *Inventory) FetchDetail(ctx context.Context, id string) (*domain.InventoryItem, error) {
	return query.Fetch(ctx, inv.client, DetailKey(domain.EntityInventory, id),
		func(ctx context.Context) (*domain.InventoryItem, error) {
			return inv.api.Get(ctx, id)
		},
		inv.policy,
	)
}

// FetchMovements returns one page of the history of item id.
func (inv *Inventory) FetchMovements(ctx context.Context, id string, params domain.ListParams) (*domain.Page[domain.Movement], error) {
	return query.Fetch(ctx, inv.client, MovementsKey(id, params),
		func(ctx context.Context) (*domain.Page[domain.Movement], error) {
			return inv.api.Movements(ctx, id, params)
		},
		inv.policy,
	)
}

// Summary observes stock totals across warehouses.
func (inv *Inventory) Summary(opts ...query.SubscribeOption[*domain.InventorySummary]) *query.Observer[*domain.InventorySummary] {
	opts = append([]query.SubscribeOption[*domain.InventorySummary]{query.WithPolicy[*domain.InventorySummary](inv.policy)}, opts...)
	return query.Subscribe(inv.client, InventorySummaryKey, inv.api.Summary, opts...)
}

// FetchSummary returns stock totals across warehouses.
func (inv *Inventory) FetchSummary(ctx context.Context) (*domain.InventorySummary, error) {
	return query.Fetch(ctx, inv.client, InventorySummaryKey, inv.api.Summary, inv.policy)
}
