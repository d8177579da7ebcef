// Package domain holds the entities, configuration and errors shared by every layer.
package domain

import "slices"

// Entity names one of the administrative resources managed by depot.
type Entity string

// Managed entities.
const (
	EntityCategory  Entity = "category"
	EntityCustomer  Entity = "customer"
	EntityInbound   Entity = "inbound"
	EntityInventory Entity = "inventory"
	EntityProduct   Entity = "product"
	EntitySupplier  Entity = "supplier"
	EntityWarehouse Entity = "warehouse"
)

// Entities returns every managed entity in a stable order.
func Entities() []Entity {
	return []Entity{
		EntityCategory,
		EntityCustomer,
		EntityInbound,
		EntityInventory,
		EntityProduct,
		EntitySupplier,
		EntityWarehouse,
	}
}

// Valid reports whether e is a known entity.
func (e Entity) Valid() bool {
	return slices.Contains(Entities(), e)
}

// Plural returns the collection name used by list keys and REST paths.
func (e Entity) Plural() string {
	switch e {
	case EntityInventory:
		return "inventory"
	case EntityCategory:
		return "categories"
	default:
		return string(e) + "s"
	}
}

// ParseEntity resolves singular or plural entity names.
func ParseEntity(name string) (Entity, bool) {
	for _, e := range Entities() {
		if name == string(e) || name == e.Plural() {
			return e, true
		}
	}
	return "", false
}
