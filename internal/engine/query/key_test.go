package query_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/depot/internal/engine/query"
)

func TestKey_HasPrefix(t *testing.T) {
	tests := []struct {
		name   string
		key    query.Key
		prefix query.Key
		want   bool
	}{
		{name: "exact", key: query.K("customer", "42"), prefix: query.K("customer", "42"), want: true},
		{name: "entity prefix", key: query.K("customer", "42"), prefix: query.K("customer"), want: true},
		{name: "sibling id", key: query.K("customer", "43"), prefix: query.K("customer", "42"), want: false},
		{name: "list vs detail", key: query.K("customers"), prefix: query.K("customer"), want: false},
		{name: "prefix longer than key", key: query.K("customer"), prefix: query.K("customer", "42"), want: false},
		{name: "string id is not numeric id", key: query.K("customer", 42), prefix: query.K("customer", "42"), want: false},
		{name: "empty prefix matches all", key: query.K("products", map[string]any{"page": 1}), prefix: query.K(), want: true},
		{
			name:   "params compared structurally",
			key:    query.K("products", map[string]any{"page": 1, "search": "tea"}),
			prefix: query.K("products", map[string]any{"search": "tea", "page": 1}),
			want:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.key.HasPrefix(tt.prefix))
		})
	}
}

func TestKey_Equal(t *testing.T) {
	type params struct {
		Page   int    `json:"page"`
		Search string `json:"search,omitempty"`
	}

	a := query.K("products", params{Page: 2})
	b := query.K("products", map[string]any{"page": 2})

	assert.True(t, a.Equal(b))
	assert.Equal(t, a.String(), b.String())
	assert.Equal(t, a.ID(), b.ID())
	assert.False(t, a.Equal(query.K("products")))
	assert.Equal(t, `["products",{"page":2}]`, a.String())
}

func TestKey_MatchesAny(t *testing.T) {
	k := query.K("inventory", "summary")
	assert.True(t, k.MatchesAny([]query.Key{query.K("products"), query.K("inventory")}))
	assert.False(t, k.MatchesAny(nil))
}
