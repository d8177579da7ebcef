package domain

import (
	"net/url"
	"sort"
	"strconv"
)

// ListParams is the filter, pagination and sort state of a list view.
// It is part of the list query key, so two equal values must encode identically.
type ListParams struct {
	Page     int               `json:"page,omitempty"`
	PageSize int               `json:"pageSize,omitempty"`
	Search   string            `json:"search,omitempty"`
	Status   string            `json:"status,omitempty"`
	Sort     string            `json:"sort,omitempty"`
	Filters  map[string]string `json:"filters,omitempty"`
}

// Values encodes the params as URL query parameters.
func (p ListParams) Values() url.Values {
	v := url.Values{}
	if p.Page > 0 {
		v.Set("page", strconv.Itoa(p.Page))
	}
	if p.PageSize > 0 {
		v.Set("limit", strconv.Itoa(p.PageSize))
	}
	if p.Search != "" {
		v.Set("search", p.Search)
	}
	if p.Status != "" {
		v.Set("status", p.Status)
	}
	if p.Sort != "" {
		v.Set("sort", p.Sort)
	}

	keys := make([]string, 0, len(p.Filters))
	for k := range p.Filters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		v.Set(k, p.Filters[k])
	}
	return v
}

// Page is one page of a paginated list response.
type Page[T any] struct {
	Items    []T `json:"items"`
	Total    int `json:"total"`
	Page     int `json:"page"`
	PageSize int `json:"pageSize"`
}

// ImportResult is the backend report of a bulk spreadsheet import.
type ImportResult struct {
	Created int          `json:"created"`
	Updated int          `json:"updated"`
	Failed  int          `json:"failed"`
	Errors  []FieldError `json:"errors,omitempty"`
}

// StatusInput toggles the active flag of an entity.
type StatusInput struct {
	Active bool `json:"active"`
}
