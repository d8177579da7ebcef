package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a stock-keeping unit.
type Product struct {
	ID         string          `json:"id"`
	SKU        string          `json:"sku"`
	Name       string          `json:"name"`
	Barcode    string          `json:"barcode,omitempty"`
	CategoryID string          `json:"categoryId,omitempty"`
	SupplierID string          `json:"supplierId,omitempty"`
	Unit       string          `json:"unit"`
	Price      decimal.Decimal `json:"price"`
	Cost       decimal.Decimal `json:"cost"`
	ImageURL   string          `json:"imageUrl,omitempty"`
	Active     bool            `json:"active"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}

// Margin is the price minus the cost.
func (p Product) Margin() decimal.Decimal {
	return p.Price.Sub(p.Cost)
}

// ProductInput is the create/update payload of a product.
type ProductInput struct {
	SKU        string          `json:"sku"`
	Name       string          `json:"name"`
	Barcode    string          `json:"barcode,omitempty"`
	CategoryID string          `json:"categoryId,omitempty"`
	SupplierID string          `json:"supplierId,omitempty"`
	Unit       string          `json:"unit"`
	Price      decimal.Decimal `json:"price"`
	Cost       decimal.Decimal `json:"cost"`
	Active     bool            `json:"active"`
}
