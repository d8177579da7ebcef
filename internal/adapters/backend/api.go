package backend

import (
	"go.trai.ch/depot/internal/core/domain"
	"go.trai.ch/depot/internal/core/ports"
)

// API groups the entity modules over one transport.
type API struct {
	Categories *CategoryAPI
	Customers  *CustomerAPI
	Inbounds   *InboundAPI
	Inventory  *InventoryAPI
	Products   *ProductAPI
	Suppliers  *SupplierAPI
	Warehouses *WarehouseAPI
}

// Collection returns the path of the collection of e.
func Collection(e domain.Entity) string {
	return "/" + e.Plural()
}

// New creates every entity module on top of t.
func New(t ports.Transport) *API {
	return &API{
		Categories: &CategoryAPI{NewResource[domain.Category, domain.CategoryInput](t, Collection(domain.EntityCategory))},
		Customers:  &CustomerAPI{NewResource[domain.Customer, domain.CustomerInput](t, Collection(domain.EntityCustomer))},
		Inbounds:   &InboundAPI{NewResource[domain.Inbound, domain.InboundInput](t, Collection(domain.EntityInbound))},
		Inventory:  &InventoryAPI{res: NewResource[domain.InventoryItem, struct{}](t, Collection(domain.EntityInventory))},
		Products:   &ProductAPI{NewResource[domain.Product, domain.ProductInput](t, Collection(domain.EntityProduct))},
		Suppliers:  &SupplierAPI{NewResource[domain.Supplier, domain.SupplierInput](t, Collection(domain.EntitySupplier))},
		Warehouses: &WarehouseAPI{NewResource[domain.Warehouse, domain.WarehouseInput](t, Collection(domain.EntityWarehouse))},
	}
}
