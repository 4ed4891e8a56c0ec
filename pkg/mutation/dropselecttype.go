package mutation

import (
	"math/rand/v2"
	"slices"

	"github.com/oasfuzz/oasfuzz/pkg/openapi"
)

// incompatibleTypes are the declared types an object node can be
// switched to so that any generated value contradicts the original
// shape.
var incompatibleTypes = []string{"string", "integer", "number", "boolean"}

// DropSelectTypeEdit removes a randomly chosen property from the
// target node and replaces the node's declared type with an
// incompatible one. When the traversal descended into a child, a
// sibling of that child is preferred for the drop so the mutated
// branch itself survives.
type DropSelectTypeEdit struct {
	Rand *rand.Rand
}

// Apply edits s in place. objectChild is the property the path
// traversal recursed into, or "".
func (e DropSelectTypeEdit) Apply(s *openapi.Schema, objectChild string) {
	names := sortedPropertyNames(s)

	candidates := names
	if objectChild != "" && len(names) > 1 {
		candidates = slices.DeleteFunc(slices.Clone(names), func(n string) bool {
			return n == objectChild
		})
	}
	if len(candidates) > 0 {
		drop := candidates[e.Rand.IntN(len(candidates))]
		delete(s.Properties, drop)
		s.Required = slices.DeleteFunc(s.Required, func(n string) bool {
			return n == drop
		})
	}

	s.Type = incompatibleTypes[e.Rand.IntN(len(incompatibleTypes))]
}
