package domain

import "time"

// Category is a node of the product category tree.
type Category struct {
	ID          string     `json:"id"`
	Code        string     `json:"code"`
	Name        string     `json:"name"`
	ParentID    string     `json:"parentId,omitempty"`
	Description string     `json:"description,omitempty"`
	Active      bool       `json:"active"`
	Children    []Category `json:"children,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// CategoryInput is the create/update payload of a category.
type CategoryInput struct {
	Code        string `json:"code,omitempty"`
	Name        string `json:"name"`
	ParentID    string `json:"parentId,omitempty"`
	Description string `json:"description,omitempty"`
	Active      bool   `json:"active"`
}

// FindCategory searches a category forest depth-first by name.
func FindCategory(tree []Category, name string) (*Category, bool) {
	for i := range tree {
		if tree[i].Name == name {
			return &tree[i], true
		}
		if found, ok := FindCategory(tree[i].Children, name); ok {
			return found, true
		}
	}
	return nil, false
}
