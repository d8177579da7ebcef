package domain

import "time"

// Warehouse is a physical stock location.
type Warehouse struct {
	ID        string     `json:"id"`
	Code      string     `json:"code"`
	Name      string     `json:"name"`
	Address   string     `json:"address,omitempty"`
	Manager   string     `json:"manager,omitempty"`
	Capacity  int        `json:"capacity,omitempty"`
	Active    bool       `json:"active"`
	Locations []Location `json:"locations,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// WarehouseInput is the create/update payload of a warehouse.
type WarehouseInput struct {
	Code     string `json:"code,omitempty"`
	Name     string `json:"name"`
	Address  string `json:"address,omitempty"`
	Manager  string `json:"manager,omitempty"`
	Capacity int    `json:"capacity,omitempty"`
	Active   bool   `json:"active"`
}

// Location is a bin or shelf inside a warehouse.
type Location struct {
	ID       string `json:"id,omitempty"`
	Code     string `json:"code"`
	Zone     string `json:"zone,omitempty"`
	Capacity int    `json:"capacity,omitempty"`
}
