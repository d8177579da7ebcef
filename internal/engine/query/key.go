// Package query implements the client-side cache that keeps fetched server
// state, mutations and invalidations consistent for every observer.
package query

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// Key identifies a cached query. Keys are ordered tuples compared structurally:
// each element is canonicalised through its JSON encoding, so maps match
// regardless of insertion order and "42" never matches 42.
type Key []any

// K builds a Key.
func K(parts ...any) Key {
	return Key(parts)
}

func canonicalPart(part any) string {
	b, err := json.Marshal(part)
	if err != nil {
		return strconv.Quote(fmt.Sprintf("%#v", part))
	}
	return string(b)
}

func (k Key) parts() []string {
	out := make([]string, len(k))
	for i, part := range k {
		out[i] = canonicalPart(part)
	}
	return out
}

// String returns the canonical encoding of the key.
func (k Key) String() string {
	return "[" + strings.Join(k.parts(), ",") + "]"
}

// ID returns a compact hash of the canonical encoding.
func (k Key) ID() uint64 {
	return xxhash.Sum64String(k.String())
}

// Equal reports whether both keys have the same canonical encoding.
func (k Key) Equal(other Key) bool {
	return len(k) == len(other) && k.HasPrefix(other)
}

// HasPrefix reports whether the first len(prefix) elements of k equal prefix.
// An empty prefix matches every key.
func (k Key) HasPrefix(prefix Key) bool {
	if len(prefix) > len(k) {
		return false
	}
	for i := range prefix {
		if canonicalPart(k[i]) != canonicalPart(prefix[i]) {
			return false
		}
	}
	return true
}

// MatchesAny reports whether k starts with any of the prefixes.
func (k Key) MatchesAny(prefixes []Key) bool {
	for _, p := range prefixes {
		if k.HasPrefix(p) {
			return true
		}
	}
	return false
}
