// Package features binds the entity API modules to the query cache: query
// keys, per-entity cache policies, the canonical invalidation table, and the
// mutations with their user feedback.
package features

import (
	"go.trai.ch/depot/internal/core/domain"
	"go.trai.ch/depot/internal/engine/query"
)

// Aggregate keys.
var (
	CategoryTreeKey     = query.K("categoryTree")
	CustomerOverviewKey = query.K("customerOverview")
	InboundOverviewKey  = query.K("inboundOverview")
	InventorySummaryKey = query.K("inventorySummary")
)

// ListPrefix is the prefix shared by every list query of e.
func ListPrefix(e domain.Entity) query.Key {
	return query.K(e.Plural())
}

// ListKey identifies one filtered, paginated list of e.
func ListKey(e domain.Entity, params domain.ListParams) query.Key {
	return query.K(e.Plural(), params)
}

// DetailPrefix is the prefix of every detail query of e.
func DetailPrefix(e domain.Entity) query.Key {
	return query.K(detailName(e))
}

// DetailKey identifies one entity of e. Sub-collections of the entity live
// under this key.
func DetailKey(e domain.Entity, id string) query.Key {
	return query.K(detailName(e), id)
}

// SubKey identifies a sub-collection of one entity, such as its addresses.
func SubKey(e domain.Entity, id, collection string) query.Key {
	return query.K(detailName(e), id, collection)
}

// MovementsKey identifies one page of the history of an inventory item.
func MovementsKey(id string, params domain.ListParams) query.Key {
	return query.K(detailName(domain.EntityInventory), id, "movements", params)
}

// detailName keeps detail keys apart from list keys for entities whose
// plural equals the singular.
func detailName(e domain.Entity) string {
	if e.Plural() == string(e) {
		return string(e) + "Item"
	}
	return string(e)
}
