package features

import (
	"context"

	"go.trai.ch/depot/internal/adapters/backend" //nolint:depguard // Wired in feature wiring
	"go.trai.ch/depot/internal/core/domain"
	"go.trai.ch/depot/internal/engine/query"
)

// Warehouses is the warehouse feature, including storage locations.
type Warehouses struct {
	*Resource[domain.Warehouse, domain.WarehouseInput]
	api  *backend.WarehouseAPI
	deps Deps

	AddLocation    *query.Mutation[Child[domain.Location], *domain.Location]
	DeleteLocation *query.Mutation[Child[domain.Location], struct{}]
}

func newWarehouses(api *backend.WarehouseAPI, deps Deps) *Warehouses {
	const e = domain.EntityWarehouse
	w := &Warehouses{
		Resource: newResource(e, crudAPI[domain.Warehouse, domain.WarehouseInput](api), deps,
			func(w domain.Warehouse) domain.WarehouseInput {
				return domain.WarehouseInput{
					Code:     w.Code,
					Name:     w.Name,
					Address:  w.Address,
					Manager:  w.Manager,
					Capacity: w.Capacity,
					Active:   w.Active,
				}
			},
			func(w domain.Warehouse) string { return w.ID },
		),
		api:  api,
		deps: deps,
	}

	w.AddLocation = childMutation(deps, e, feedback(deps.Notifier, "location", "added", "add"),
		func(ctx context.Context, ch Child[domain.Location]) (*domain.Location, error) {
			return api.AddLocation(ctx, ch.OwnerID, ch.Value)
		},
		func(ch Child[domain.Location]) []query.Update {
			return locationUpdates(ch.OwnerID, func(list []domain.Location) []domain.Location {
				return appended(list, ch.Value)
			})
		},
	)
	w.DeleteLocation = childMutation(deps, e, feedback(deps.Notifier, "location", "deleted", "delete"),
		func(ctx context.Context, ch Child[domain.Location]) (struct{}, error) {
			return struct{}{}, api.DeleteLocation(ctx, ch.OwnerID, ch.ID)
		},
		func(ch Child[domain.Location]) []query.Update {
			return locationUpdates(ch.OwnerID, func(list []domain.Location) []domain.Location {
				return removed(list, locationID, ch.ID)
			})
		},
	)
	return w
}

func locationUpdates(warehouseID string, fn func([]domain.Location) []domain.Location) []query.Update {
	return []query.Update{
		patchDetail(domain.EntityWarehouse, warehouseID, func(w domain.Warehouse) domain.Warehouse {
			w.Locations = fn(w.Locations)
			return w
		}),
		patchList(domain.EntityWarehouse, warehouseID, "locations", fn),
	}
}

// Locations observes the locations of warehouse id.
func (w *Warehouses) Locations(id string) *query.Observer[[]domain.Location] {
	return subList(w.deps, domain.EntityWarehouse, id, "locations", w.policy, w.api.Locations)
}
