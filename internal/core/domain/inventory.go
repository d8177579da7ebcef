package domain

import "time"

// InventoryItem is the stock level of a product at one warehouse location.
type InventoryItem struct {
	ID           string    `json:"id"`
	ProductID    string    `json:"productId"`
	ProductName  string    `json:"productName"`
	SKU          string    `json:"sku"`
	WarehouseID  string    `json:"warehouseId"`
	LocationCode string    `json:"locationCode,omitempty"`
	Quantity     int       `json:"quantity"`
	Reserved     int       `json:"reserved"`
	ReorderLevel int       `json:"reorderLevel"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Available is the quantity that is not reserved.
func (i InventoryItem) Available() int {
	return i.Quantity - i.Reserved
}

// LowStock reports whether the item fell to or below its reorder level.
func (i InventoryItem) LowStock() bool {
	return i.ReorderLevel > 0 && i.Available() <= i.ReorderLevel
}

// Adjustment changes the on-hand quantity of an inventory item.
type Adjustment struct {
	Delta  int    `json:"delta"`
	Reason string `json:"reason"`
	Note   string `json:"note,omitempty"`
}

// Transfer moves stock of a product between two warehouses.
type Transfer struct {
	ProductID       string `json:"productId"`
	FromWarehouseID string `json:"fromWarehouseId"`
	ToWarehouseID   string `json:"toWarehouseId"`
	Quantity        int    `json:"quantity"`
	Note            string `json:"note,omitempty"`
}

// Movement is one entry of an inventory item's history.
type Movement struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Delta     int       `json:"delta"`
	Balance   int       `json:"balance"`
	Reference string    `json:"reference,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// InventorySummary aggregates stock across warehouses.
type InventorySummary struct {
	Products   int `json:"products"`
	Quantity   int `json:"quantity"`
	Reserved   int `json:"reserved"`
	LowStock   int `json:"lowStock"`
	OutOfStock int `json:"outOfStock"`
}
