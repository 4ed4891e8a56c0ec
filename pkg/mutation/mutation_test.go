package mutation

import (
	"testing"

	"github.com/oasfuzz/oasfuzz/pkg/materialize"
	"github.com/oasfuzz/oasfuzz/pkg/openapi"
	"github.com/oasfuzz/oasfuzz/pkg/schemahash"
	"github.com/oasfuzz/oasfuzz/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fuzzSpec(t *testing.T) *openapi.Spec {
	return testutil.SpecFromJSON(t, `{
	  "components": {"schemas": {
	    "Trip": {
	      "type": "object",
	      "required": ["id"],
	      "properties": {
	        "id":    {"type": "string"},
	        "route": {"$ref": "#/components/schemas/Route"}
	      }
	    },
	    "Route": {
	      "type": "object",
	      "properties": {
	        "name":  {"type": "string"},
	        "stops": {"type": "array", "items": {"type": "object", "properties": {"label": {"type": "string"}}}}
	      }
	    },
	    "Empty": {"type": "object"}
	  }}
	}`)
}

// countProperties walks a tree and counts every declared property.
func countProperties(s *openapi.Schema) int {
	if s == nil {
		return 0
	}
	n := len(s.Properties)
	n += countProperties(s.Items)
	for _, prop := range s.Properties {
		n += countProperties(prop)
	}
	return n
}

func TestMutate_NeverMutatesDocument(t *testing.T) {
	spec := fuzzSpec(t)
	trip := spec.SchemaByName("Trip")
	before := schemahash.Sum(trip)
	beforeRoute := schemahash.Sum(spec.SchemaByName("Route"))

	m := New(spec, WithRand(testutil.Rand(7)))
	for i := 0; i < 20; i++ {
		got := m.Mutate(trip)
		require.NotNil(t, got)
	}

	assert.Equal(t, before, schemahash.Sum(trip))
	assert.Equal(t, beforeRoute, schemahash.Sum(spec.SchemaByName("Route")))
	assert.Equal(t, "#/components/schemas/Route", trip.Properties["route"].Ref)
}

func TestMutateWith_DuplicateAddsOneProperty(t *testing.T) {
	spec := fuzzSpec(t)
	trip := spec.SchemaByName("Trip")
	base := materialize.New(spec).Materialize(trip)

	got := New(spec, WithRand(testutil.Rand(3))).
		MutateWith(PipelineDuplicate, trip)

	assert.Equal(t, countProperties(base)+1, countProperties(got))
}

func TestMutateWith_DropSelectTypeRetypesRoot(t *testing.T) {
	spec := fuzzSpec(t)
	trip := spec.SchemaByName("Trip")

	got := New(spec, WithRand(testutil.Rand(3))).
		MutateWith(PipelineDropSelectType, trip)

	require.NotNil(t, got)
	// The path rule edits every level up to and including the root.
	assert.Contains(t, incompatibleTypes, got.Type)
	base := materialize.New(spec).Materialize(trip)
	assert.Less(t, countProperties(got), countProperties(base))
}

func TestMutateWith_BestEffortOnPropertyLessSchema(t *testing.T) {
	spec := fuzzSpec(t)
	empty := spec.SchemaByName("Empty")

	m := New(spec, WithRand(testutil.Rand(1)))

	got := m.MutateWith(PipelineDuplicate, empty)
	require.NotNil(t, got)
	assert.Equal(t, "object", got.Type)
	assert.Empty(t, got.Properties)

	got = m.MutateWith(PipelineDropSelectType, empty)
	require.NotNil(t, got)
	assert.Empty(t, got.Properties)
}

func TestMutateWith_SeededReproducibility(t *testing.T) {
	spec := fuzzSpec(t)
	trip := spec.SchemaByName("Trip")

	first := New(spec, WithRand(testutil.Rand(42))).
		MutateWith(PipelineDropSelectType, trip)
	second := New(spec, WithRand(testutil.Rand(42))).
		MutateWith(PipelineDropSelectType, trip)

	assert.Equal(t, schemahash.Sum(first), schemahash.Sum(second))

	base := materialize.New(spec).Materialize(trip)
	assert.NotEqual(t, schemahash.Sum(base), schemahash.Sum(first))
}

func TestMutateWith_UnknownPipelineReturnsUnmutatedCopy(t *testing.T) {
	spec := fuzzSpec(t)
	trip := spec.SchemaByName("Trip")

	got := New(spec, WithRand(testutil.Rand(1))).MutateWith(Pipeline(99), trip)

	base := materialize.New(spec).Materialize(trip)
	assert.Equal(t, schemahash.Sum(base), schemahash.Sum(got))
}

func TestMutate_ResultIsDetached(t *testing.T) {
	spec := fuzzSpec(t)
	trip := spec.SchemaByName("Trip")

	got := New(spec, WithRand(testutil.Rand(5))).Mutate(trip)
	got.Properties = nil
	got.Type = "string"

	assert.Equal(t, "object", trip.Type)
	assert.NotNil(t, trip.Properties)
}

func TestPipelineString(t *testing.T) {
	assert.Equal(t, "duplicate", PipelineDuplicate.String())
	assert.Equal(t, "drop_select_type", PipelineDropSelectType.String())
	assert.Equal(t, "unknown", Pipeline(99).String())
}

func TestNew_DefaultRandomSource(t *testing.T) {
	m := New(fuzzSpec(t))
	require.NotNil(t, m.rng)
}

func TestWithSeed_MatchesInjectedGenerator(t *testing.T) {
	spec := fuzzSpec(t)
	trip := spec.SchemaByName("Trip")

	seeded := New(spec, WithSeed(42)).MutateWith(PipelineDropSelectType, trip)
	injected := New(spec, WithRand(testutil.Rand(42))).
		MutateWith(PipelineDropSelectType, trip)

	assert.Equal(t, schemahash.Sum(seeded), schemahash.Sum(injected))
}
