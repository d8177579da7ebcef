package features

import (
	"go.trai.ch/depot/internal/adapters/backend" //nolint:depguard // Wired in feature wiring
	"go.trai.ch/depot/internal/engine/query"
)

// Features groups every entity feature over one query cache.
type Features struct {
	Client *query.Client

	Categories *Categories
	Customers  *Customers
	Inbounds   *Inbounds
	Inventory  *Inventory
	Products   *Products
	Suppliers  *Suppliers
	Warehouses *Warehouses
}

// New binds the entity API modules to the cache in deps.
func New(api *backend.API, deps Deps) *Features {
	return &Features{
		Client:     deps.Client,
		Categories: newCategories(api.Categories, deps),
		Customers:  newCustomers(api.Customers, deps),
		Inbounds:   newInbounds(api.Inbounds, deps),
		Inventory:  newInventory(api.Inventory, deps),
		Products:   newProducts(api.Products, deps),
		Suppliers:  newSuppliers(api.Suppliers, deps),
		Warehouses: newWarehouses(api.Warehouses, deps),
	}
}
