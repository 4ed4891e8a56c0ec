package mutation

import (
	"math/rand/v2"

	"github.com/google/uuid"
	"github.com/oasfuzz/oasfuzz/pkg/openapi"
)

// DuplicateEdit copies a randomly chosen property of the target node
// under a synthetic sibling name. Payload generators downstream then
// emit an object carrying a field the contract never declared.
type DuplicateEdit struct {
	Rand *rand.Rand
}

// Apply duplicates one property of s. A node without properties is
// left untouched; the pipeline's fingerprint check reports the no-op.
func (e DuplicateEdit) Apply(s *openapi.Schema) {
	if len(s.Properties) == 0 {
		return
	}
	names := sortedPropertyNames(s)
	name := names[e.Rand.IntN(len(names))]
	s.Properties[name+"_"+syntheticSuffix()] = s.Properties[name].Clone()
}

// syntheticSuffix returns a short random tag for duplicated property
// names. UUID-derived so repeated duplications of the same property
// never collide.
func syntheticSuffix() string {
	return uuid.NewString()[:8]
}
