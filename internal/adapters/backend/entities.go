package backend

import (
	"context"
	"net/http"
	"path"

	"go.trai.ch/depot/internal/core/domain"
	"go.trai.ch/depot/internal/core/ports"
)

// CategoryAPI manages the product category tree.
type CategoryAPI struct {
	Resource[domain.Category, domain.CategoryInput]
}

// Tree fetches the whole category forest.
func (a *CategoryAPI) Tree(ctx context.Context) ([]domain.Category, error) {
	return list[domain.Category](ctx, a.transport, path.Join(a.base, "tree"))
}

// CustomerAPI manages customers with their addresses and contacts.
type CustomerAPI struct {
	Resource[domain.Customer, domain.CustomerInput]
}

// Overview fetches the customer dashboard counters.
func (a *CustomerAPI) Overview(ctx context.Context) (*domain.CustomerOverview, error) {
	return send[domain.CustomerOverview](ctx, a.transport, &ports.Request{
		Method: http.MethodGet,
		Path:   path.Join(a.base, "overview"),
	})
}

// Addresses lists the addresses of customer id.
func (a *CustomerAPI) Addresses(ctx context.Context, id string) ([]domain.Address, error) {
	p, err := a.item(id, "addresses")
	if err != nil {
		return nil, err
	}
	return list[domain.Address](ctx, a.transport, p)
}

// AddAddress adds an address to customer id.
func (a *CustomerAPI) AddAddress(ctx context.Context, id string, addr domain.Address) (*domain.Address, error) {
	p, err := a.item(id, "addresses")
	if err != nil {
		return nil, err
	}
	return send[domain.Address](ctx, a.transport, &ports.Request{Method: http.MethodPost, Path: p, Body: addr})
}

// UpdateAddress replaces address addrID of customer id.
func (a *CustomerAPI) UpdateAddress(ctx context.Context, id, addrID string, addr domain.Address) (*domain.Address, error) {
	p, err := a.sub(id, "addresses", addrID)
	if err != nil {
		return nil, err
	}
	return send[domain.Address](ctx, a.transport, &ports.Request{Method: http.MethodPut, Path: p, Body: addr})
}

// DeleteAddress removes address addrID of customer id.
func (a *CustomerAPI) DeleteAddress(ctx context.Context, id, addrID string) error {
	p, err := a.sub(id, "addresses", addrID)
	if err != nil {
		return err
	}
	return remove(ctx, a.transport, p)
}

// Contacts lists the contacts of customer id.
func (a *CustomerAPI) Contacts(ctx context.Context, id string) ([]domain.Contact, error) {
	p, err := a.item(id, "contacts")
	if err != nil {
		return nil, err
	}
	return list[domain.Contact](ctx, a.transport, p)
}

// AddContact adds a contact to customer id.
func (a *CustomerAPI) AddContact(ctx context.Context, id string, c domain.Contact) (*domain.Contact, error) {
	p, err := a.item(id, "contacts")
	if err != nil {
		return nil, err
	}
	return send[domain.Contact](ctx, a.transport, &ports.Request{Method: http.MethodPost, Path: p, Body: c})
}

// UpdateContact replaces contact contactID of customer id.
func (a *CustomerAPI) UpdateContact(ctx context.Context, id, contactID string, c domain.Contact) (*domain.Contact, error) {
	p, err := a.sub(id, "contacts", contactID)
	if err != nil {
		return nil, err
	}
	return send[domain.Contact](ctx, a.transport, &ports.Request{Method: http.MethodPut, Path: p, Body: c})
}

// DeleteContact removes contact contactID of customer id.
func (a *CustomerAPI) DeleteContact(ctx context.Context, id, contactID string) error {
	p, err := a.sub(id, "contacts", contactID)
	if err != nil {
		return err
	}
	return remove(ctx, a.transport, p)
}

// sub builds base/id/collection/childID.
func (r Resource[T, In]) sub(id, collection, childID string) (string, error) {
	p, err := r.item(id, collection)
	if err != nil {
		return "", err
	}
	return joinID(p, childID)
}

// InboundAPI manages goods receipts.
type InboundAPI struct {
	Resource[domain.Inbound, domain.InboundInput]
}

// Overview fetches the receipt counters per status.
func (a *InboundAPI) Overview(ctx context.Context) (*domain.InboundOverview, error) {
	return send[domain.InboundOverview](ctx, a.transport, &ports.Request{
		Method: http.MethodGet,
		Path:   path.Join(a.base, "overview"),
	})
}

// AddItem appends a line to receipt id and returns the updated receipt.
func (a *InboundAPI) AddItem(ctx context.Context, id string, item domain.InboundItem) (*domain.Inbound, error) {
	p, err := a.item(id, "items")
	if err != nil {
		return nil, err
	}
	return send[domain.Inbound](ctx, a.transport, &ports.Request{Method: http.MethodPost, Path: p, Body: item})
}

// UpdateItem replaces line itemID of receipt id.
func (a *InboundAPI) UpdateItem(ctx context.Context, id, itemID string, item domain.InboundItem) (*domain.Inbound, error) {
	p, err := a.sub(id, "items", itemID)
	if err != nil {
		return nil, err
	}
	return send[domain.Inbound](ctx, a.transport, &ports.Request{Method: http.MethodPut, Path: p, Body: item})
}

// RemoveItem deletes line itemID of receipt id.
func (a *InboundAPI) RemoveItem(ctx context.Context, id, itemID string) (*domain.Inbound, error) {
	p, err := a.sub(id, "items", itemID)
	if err != nil {
		return nil, err
	}
	return send[domain.Inbound](ctx, a.transport, &ports.Request{Method: http.MethodDelete, Path: p})
}

// Transition moves receipt id to status.
func (a *InboundAPI) Transition(ctx context.Context, id string, status domain.InboundStatus) (*domain.Inbound, error) {
	p, err := a.item(id, "status")
	if err != nil {
		return nil, err
	}
	return send[domain.Inbound](ctx, a.transport, &ports.Request{
		Method: http.MethodPatch,
		Path:   p,
		Body:   domain.InboundStatusInput{Status: status},
	})
}

// UploadAttachment stores a file against receipt id.
func (a *InboundAPI) UploadAttachment(ctx context.Context, id string, file ports.Upload) (*domain.Attachment, error) {
	p, err := a.item(id, "attachments")
	if err != nil {
		return nil, err
	}
	if file.Field == "" {
		file.Field = "file"
	}
	return send[domain.Attachment](ctx, a.transport, &ports.Request{Method: http.MethodPost, Path: p, Upload: &file})
}

// PrintPDF renders receipt id as a PDF document.
func (a *InboundAPI) PrintPDF(ctx context.Context, id string) ([]byte, error) {
	p, err := a.item(id, "pdf")
	if err != nil {
		return nil, err
	}
	return binary(ctx, a.transport, p, nil)
}

// InventoryAPI reads and adjusts stock levels. Inventory rows are created
// and deleted by the backend only.
type InventoryAPI struct {
	res Resource[domain.InventoryItem, struct{}]
}

// List fetches one page of stock levels.
func (a *InventoryAPI) List(ctx context.Context, params domain.ListParams) (*domain.Page[domain.InventoryItem], error) {
	return a.res.List(ctx, params)
}

// Get fetches one stock level.
func (a *InventoryAPI) Get(ctx context.Context, id string) (*domain.InventoryItem, error) {
	return a.res.Get(ctx, id)
}

// Export downloads the filtered stock levels as a spreadsheet.
func (a *InventoryAPI) Export(ctx context.Context, params domain.ListParams) ([]byte, error) {
	return a.res.Export(ctx, params)
}

// Adjust changes the on-hand quantity of item id.
func (a *InventoryAPI) Adjust(ctx context.Context, id string, adj domain.Adjustment) (*domain.InventoryItem, error) {
	p, err := a.res.item(id, "adjust")
	if err != nil {
		return nil, err
	}
	return send[domain.InventoryItem](ctx, a.res.transport, &ports.Request{Method: http.MethodPost, Path: p, Body: adj})
}

// Transfer moves stock between warehouses and returns the touched rows.
func (a *InventoryAPI) Transfer(ctx context.Context, t domain.Transfer) ([]domain.InventoryItem, error) {
	out, err := send[[]domain.InventoryItem](ctx, a.res.transport, &ports.Request{
		Method: http.MethodPost,
		Path:   path.Join(a.res.base, "transfer"),
		Body:   t,
	})
	if err != nil {
		return nil, err
	}
	return *out, nil
}

// Movements fetches the history of item id.
func (a *InventoryAPI) Movements(ctx context.Context, id string, params domain.ListParams) (*domain.Page[domain.Movement], error) {
	p, err := a.res.item(id, "movements")
	if err != nil {
		return nil, err
	}
	return send[domain.Page[domain.Movement]](ctx, a.res.transport, &ports.Request{
		Method: http.MethodGet,
		Path:   p,
		Query:  params.Values(),
	})
}

// Summary fetches stock totals across warehouses.
func (a *InventoryAPI) Summary(ctx context.Context) (*domain.InventorySummary, error) {
	return send[domain.InventorySummary](ctx, a.res.transport, &ports.Request{
		Method: http.MethodGet,
		Path:   path.Join(a.res.base, "summary"),
	})
}

// ProductAPI manages products.
type ProductAPI struct {
	Resource[domain.Product, domain.ProductInput]
}

// UploadImage replaces the picture of product id.
func (a *ProductAPI) UploadImage(ctx context.Context, id string, file ports.Upload) (*domain.Product, error) {
	p, err := a.item(id, "image")
	if err != nil {
		return nil, err
	}
	if file.Field == "" {
		file.Field = "image"
	}
	return send[domain.Product](ctx, a.transport, &ports.Request{Method: http.MethodPost, Path: p, Upload: &file})
}

// SupplierAPI manages suppliers and their contacts.
type SupplierAPI struct {
	Resource[domain.Supplier, domain.SupplierInput]
}

// Contacts lists the contacts of supplier id.
func (a *SupplierAPI) Contacts(ctx context.Context, id string) ([]domain.Contact, error) {
	p, err := a.item(id, "contacts")
	if err != nil {
		return nil, err
	}
	return list[domain.Contact](ctx, a.transport, p)
}

// AddContact adds a contact to supplier id.
func (a *SupplierAPI) AddContact(ctx context.Context, id string, c domain.Contact) (*domain.Contact, error) {
	p, err := a.item(id, "contacts")
	if err != nil {
		return nil, err
	}
	return send[domain.Contact](ctx, a.transport, &ports.Request{Method: http.MethodPost, Path: p, Body: c})
}

// DeleteContact removes contact contactID of supplier id.
func (a *SupplierAPI) DeleteContact(ctx context.Context, id, contactID string) error {
	p, err := a.sub(id, "contacts", contactID)
	if err != nil {
		return err
	}
	return remove(ctx, a.transport, p)
}

// WarehouseAPI manages warehouses and their storage locations.
type WarehouseAPI struct {
	Resource[domain.Warehouse, domain.WarehouseInput]
}

// Locations lists the locations of warehouse id.
func (a *WarehouseAPI) Locations(ctx context.Context, id string) ([]domain.Location, error) {
	p, err := a.item(id, "locations")
	if err != nil {
		return nil, err
	}
	return list[domain.Location](ctx, a.transport, p)
}

// AddLocation adds a location to warehouse id.
func (a *WarehouseAPI) AddLocation(ctx context.Context, id string, loc domain.Location) (*domain.Location, error) {
	p, err := a.item(id, "locations")
	if err != nil {
		return nil, err
	}
	return send[domain.Location](ctx, a.transport, &ports.Request{Method: http.MethodPost, Path: p, Body: loc})
}

// DeleteLocation removes location locID of warehouse id.
func (a *WarehouseAPI) DeleteLocation(ctx context.Context, id, locID string) error {
	p, err := a.sub(id, "locations", locID)
	if err != nil {
		return err
	}
	return remove(ctx, a.transport, p)
}
