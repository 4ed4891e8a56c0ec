package mutation

import (
	"math/rand/v2"
	"sort"

	"github.com/oasfuzz/oasfuzz/pkg/openapi"
)

// PathEdit is a structural edit applied by the path traversal. The
// traversal hands it the current node and the name of the object-kind
// property it descended into ("" when the node has none), so the edit
// can act relative to that child: duplicate a sibling, drop one, and
// so on.
type PathEdit interface {
	Apply(s *openapi.Schema, objectChild string)
}

// ApplyPath walks a single randomly chosen root-to-leaf object path
// through a materialized schema and applies the edit once at every
// level along it, deepest node first.
//
// Arrays are descended unconditionally and are never themselves edit
// targets; at each object node exactly one object-kind property is
// picked uniformly at random to continue the path.
func ApplyPath(rng *rand.Rand, s *openapi.Schema, edit PathEdit) {
	if s == nil {
		return
	}
	if s.Type == "array" {
		ApplyPath(rng, s.Items, edit)
		return
	}
	if s.Properties == nil {
		return
	}

	var objectChildren []string
	for _, name := range sortedPropertyNames(s) {
		prop := s.Properties[name]
		if prop == nil {
			continue
		}
		switch {
		case prop.Type == "array":
			ApplyPath(rng, prop.Items, edit)
		case prop.Type == "object" || prop.Properties != nil:
			objectChildren = append(objectChildren, name)
		}
	}

	chosen := ""
	if len(objectChildren) > 0 {
		chosen = objectChildren[rng.IntN(len(objectChildren))]
		ApplyPath(rng, s.Properties[chosen], edit)
	}

	edit.Apply(s, chosen)
}

// sortedPropertyNames returns the node's property names in sorted
// order. Random draws index into this slice so a seeded generator
// reproduces the same walk regardless of map iteration order.
func sortedPropertyNames(s *openapi.Schema) []string {
	names := make([]string, 0, len(s.Properties))
	for name := range s.Properties {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
