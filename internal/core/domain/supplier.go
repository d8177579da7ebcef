package domain

import "time"

// Supplier is a vendor that delivers inbound goods.
type Supplier struct {
	ID        string    `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	TaxCode   string    `json:"taxCode,omitempty"`
	Address   string    `json:"address,omitempty"`
	Active    bool      `json:"active"`
	Contacts  []Contact `json:"contacts,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// SupplierInput is the create/update payload of a supplier.
type SupplierInput struct {
	Code    string `json:"code,omitempty"`
	Name    string `json:"name"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	TaxCode string `json:"taxCode,omitempty"`
	Address string `json:"address,omitempty"`
	Active  bool   `json:"active"`
}
