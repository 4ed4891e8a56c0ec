// Package schemahash fingerprints schema trees. The mutation pipeline
// compares fingerprints before and after an edit to catch mutations
// that did not actually change the tree's structure.
package schemahash

import (
	"github.com/oasfuzz/oasfuzz/pkg/jsonutil"
	"github.com/oasfuzz/oasfuzz/pkg/openapi"
	"github.com/spaolacci/murmur3"
)

// Sum returns a 64-bit structural fingerprint of the schema tree.
// Structurally equal trees hash equal; the encoding is canonical
// (sorted map keys) so property insertion order never matters.
func Sum(s *openapi.Schema) uint64 {
	if s == nil {
		return 0
	}
	data, err := jsonutil.MarshalCanonical(s)
	if err != nil {
		// Schema trees are plain data; encoding only fails on a
		// programming error such as a NaN example value.
		return 0
	}
	return murmur3.Sum64(data)
}

// Equal reports whether two schema trees are structurally equal.
func Equal(a, b *openapi.Schema) bool {
	return Sum(a) == Sum(b)
}
