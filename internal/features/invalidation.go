package features

import (
	"go.trai.ch/depot/internal/core/domain"
	"go.trai.ch/depot/internal/engine/query"
)

// aggregates lists the derived views computed by the backend from each entity.
var aggregates = map[domain.Entity][]query.Key{
	domain.EntityCategory:  {CategoryTreeKey},
	domain.EntityCustomer:  {CustomerOverviewKey},
	domain.EntityInbound:   {InboundOverviewKey},
	domain.EntityInventory: {InventorySummaryKey},
}

// dependents lists entities whose cached views display data owned by another.
// Inventory rows show product names and SKUs.
var dependents = map[domain.Entity][]domain.Entity{
	domain.EntityProduct: {domain.EntityInventory},
}

// Invalidation returns the keys a successful write to e makes stale: every
// list of e, the detail of each given id, the aggregates derived from e, and
// the same for every entity depending on e.
func Invalidation(e domain.Entity, ids ...string) []query.Key {
	keys := own(e, ids...)
	for _, dep := range dependents[e] {
		keys = append(keys, own(dep)...)
	}
	return keys
}

// StockMoved returns the keys a change of on-hand quantities makes stale.
// Completing a receipt and adjusting or transferring stock all move stock.
func StockMoved(itemIDs ...string) []query.Key {
	keys := own(domain.EntityInventory, itemIDs...)
	if len(itemIDs) == 0 {
		keys = append(keys, DetailPrefix(domain.EntityInventory))
	}
	return keys
}

func own(e domain.Entity, ids ...string) []query.Key {
	keys := []query.Key{ListPrefix(e)}
	for _, id := range ids {
		if id != "" {
			keys = append(keys, DetailKey(e, id))
		}
	}
	return append(keys, aggregates[e]...)
}
