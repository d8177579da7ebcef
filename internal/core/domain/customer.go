package domain

import "time"

// Customer is a buyer of outbound goods.
type Customer struct {
	ID        string    `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	TaxCode   string    `json:"taxCode,omitempty"`
	Type      string    `json:"type,omitempty"`
	Active    bool      `json:"active"`
	Addresses []Address `json:"addresses,omitempty"`
	Contacts  []Contact `json:"contacts,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CustomerInput is the create/update payload of a customer.
type CustomerInput struct {
	Code    string `json:"code,omitempty"`
	Name    string `json:"name"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	TaxCode string `json:"taxCode,omitempty"`
	Type    string `json:"type,omitempty"`
	Active  bool   `json:"active"`
}

// Address is a delivery or billing address of a customer.
type Address struct {
	ID        string `json:"id,omitempty"`
	Label     string `json:"label"`
	Line      string `json:"line"`
	Ward      string `json:"ward,omitempty"`
	District  string `json:"district,omitempty"`
	City      string `json:"city"`
	IsDefault bool   `json:"isDefault"`
}

// Contact is a person reachable at a customer or supplier.
type Contact struct {
	ID       string `json:"id,omitempty"`
	Name     string `json:"name"`
	Position string `json:"position,omitempty"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Primary  bool   `json:"primary"`
}

// CustomerOverview aggregates the customer list for dashboards.
type CustomerOverview struct {
	Total        int `json:"total"`
	Active       int `json:"active"`
	Inactive     int `json:"inactive"`
	NewThisMonth int `json:"newThisMonth"`
}
