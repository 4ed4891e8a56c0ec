package mutation

import (
	"math/rand/v2"

	"github.com/oasfuzz/oasfuzz/pkg/openapi"
)

// SingleEdit is a structural edit applied once, at one node picked
// uniformly from the whole tree.
type SingleEdit interface {
	Apply(s *openapi.Schema)
}

// ApplySingle flattens every object-kind node reachable from s (the
// root, object properties at every depth, descending through array
// items without adding the array nodes themselves) into one candidate
// set, picks exactly one uniformly at random, and applies the edit
// there. With internal=false, non-object non-array leaf properties
// join the candidate set as well.
//
// Unlike ApplyPath, every eligible node in the tree is an equally
// likely target, not just nodes along one descending branch.
func ApplySingle(rng *rand.Rand, s *openapi.Schema, internal bool, edit SingleEdit) {
	if s == nil {
		return
	}
	var candidates []*openapi.Schema
	gather(s, internal, &candidates)
	if len(candidates) == 0 {
		return
	}
	edit.Apply(candidates[rng.IntN(len(candidates))])
}

func gather(s *openapi.Schema, internal bool, out *[]*openapi.Schema) {
	if s == nil {
		return
	}
	if s.Type == "array" {
		gather(s.Items, internal, out)
		return
	}
	// Untyped nodes with properties count as objects; plenty of real
	// specs omit "type: object".
	if s.Type != "object" && s.Properties == nil {
		return
	}

	*out = append(*out, s)
	for _, name := range sortedPropertyNames(s) {
		prop := s.Properties[name]
		if prop == nil {
			continue
		}
		switch {
		case prop.Type == "array":
			gather(prop.Items, internal, out)
		case prop.Type == "object" || prop.Properties != nil:
			gather(prop, internal, out)
		default:
			if !internal {
				*out = append(*out, prop)
			}
		}
	}
}
