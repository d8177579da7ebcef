package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// InboundStatus is the lifecycle state of an inbound receipt.
type InboundStatus string

// Inbound receipt states.
const (
	InboundDraft     InboundStatus = "draft"
	InboundPending   InboundStatus = "pending"
	InboundApproved  InboundStatus = "approved"
	InboundCompleted InboundStatus = "completed"
	InboundCancelled InboundStatus = "cancelled"
)

var inboundTransitions = map[InboundStatus][]InboundStatus{
	InboundDraft:    {InboundPending, InboundCancelled},
	InboundPending:  {InboundApproved, InboundDraft, InboundCancelled},
	InboundApproved: {InboundCompleted, InboundCancelled},
}

// CanTransition reports whether a receipt in status s may move to next.
func (s InboundStatus) CanTransition(next InboundStatus) bool {
	for _, allowed := range inboundTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Inbound is a goods receipt from a supplier into a warehouse.
type Inbound struct {
	ID          string          `json:"id"`
	Code        string          `json:"code"`
	SupplierID  string          `json:"supplierId"`
	WarehouseID string          `json:"warehouseId"`
	Status      InboundStatus   `json:"status"`
	ExpectedAt  *time.Time      `json:"expectedAt,omitempty"`
	ReceivedAt  *time.Time      `json:"receivedAt,omitempty"`
	Note        string          `json:"note,omitempty"`
	Items       []InboundItem   `json:"items,omitempty"`
	Total       decimal.Decimal `json:"total"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// InboundItem is one product line of a receipt.
type InboundItem struct {
	ID         string          `json:"id,omitempty"`
	ProductID  string          `json:"productId"`
	Quantity   int             `json:"quantity"`
	UnitCost   decimal.Decimal `json:"unitCost"`
	LotNumber  string          `json:"lotNumber,omitempty"`
	ExpiryDate *time.Time      `json:"expiryDate,omitempty"`
}

// Subtotal is the line cost.
func (i InboundItem) Subtotal() decimal.Decimal {
	return i.UnitCost.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// InboundTotal sums the line subtotals of items.
func InboundTotal(items []InboundItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Subtotal())
	}
	return total
}

// InboundInput is the create/update payload of a receipt header.
type InboundInput struct {
	SupplierID  string        `json:"supplierId"`
	WarehouseID string        `json:"warehouseId"`
	ExpectedAt  *time.Time    `json:"expectedAt,omitempty"`
	Note        string        `json:"note,omitempty"`
	Items       []InboundItem `json:"items,omitempty"`
}

// InboundStatusInput moves a receipt to another status.
type InboundStatusInput struct {
	Status InboundStatus `json:"status"`
}

// InboundOverview aggregates receipts by status for dashboards.
type InboundOverview struct {
	Total     int             `json:"total"`
	Draft     int             `json:"draft"`
	Pending   int             `json:"pending"`
	Approved  int             `json:"approved"`
	Completed int             `json:"completed"`
	Value     decimal.Decimal `json:"value"`
}

// Attachment is a file stored against a receipt.
type Attachment struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url"`
}
