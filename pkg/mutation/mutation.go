// Package mutation applies randomized structural edits to materialized
// schemas, synthesizing invalid-but-plausible payload shapes for
// fault-based testing. Two traversal strategies (one random descending
// path, or one node picked from the whole tree) drive pluggable edits;
// a pipeline selector picks a strategy per invocation.
//
// Mutation is best-effort fuzzing: a failed or empty mutation degrades
// to the unmutated materialized copy, never to an error.
package mutation

import (
	"crypto/rand"
	"log/slog"
	mathrand "math/rand/v2"

	"github.com/oasfuzz/oasfuzz/pkg/materialize"
	"github.com/oasfuzz/oasfuzz/pkg/metrics"
	"github.com/oasfuzz/oasfuzz/pkg/openapi"
	"github.com/oasfuzz/oasfuzz/pkg/schemahash"
)

// Pipeline enumerates the mutation strategies.
type Pipeline int

const (
	// PipelineDuplicate copies an existing property under a synthetic
	// name, once, anywhere in the tree.
	PipelineDuplicate Pipeline = iota
	// PipelineDropSelectType drops properties and swaps declared types
	// along one random root-to-leaf path.
	PipelineDropSelectType

	numPipelines
)

// String returns the pipeline's metric label.
func (p Pipeline) String() string {
	switch p {
	case PipelineDuplicate:
		return "duplicate"
	case PipelineDropSelectType:
		return "drop_select_type"
	default:
		return "unknown"
	}
}

// Mutator materializes schemas from one specification document and
// applies one randomly chosen mutation pipeline per call. Create one
// Mutator per concurrent worker; instances share no mutable state.
type Mutator struct {
	spec    *openapi.Spec
	service string
	rng     *mathrand.Rand
}

// Option configures a Mutator.
type Option func(*Mutator)

// WithService sets the ambient service name scoping reference
// resolution for the operation being fuzzed.
func WithService(name string) Option {
	return func(m *Mutator) { m.service = name }
}

// WithRand injects the random source. Tests pass a seeded generator
// for reproducible mutations.
func WithRand(rng *mathrand.Rand) Option {
	return func(m *Mutator) { m.rng = rng }
}

// WithSeed fixes the random source to a deterministic generator derived
// from seed, for reproducible runs.
func WithSeed(seed uint64) Option {
	var key [32]byte
	for i := 0; i < len(key); i += 8 {
		for j := 0; j < 8; j++ {
			key[i+j] = byte(seed >> (8 * j))
		}
	}
	return WithRand(mathrand.New(mathrand.NewChaCha8(key)))
}

// New creates a Mutator. The default random source is a ChaCha8
// generator seeded from crypto/rand, so independent workers never draw
// correlated sequences.
func New(spec *openapi.Spec, opts ...Option) *Mutator {
	m := &Mutator{spec: spec}
	for _, opt := range opts {
		opt(m)
	}
	if m.rng == nil {
		var seed [32]byte
		if _, err := rand.Read(seed[:]); err != nil {
			panic("mutation: cannot seed random source: " + err.Error())
		}
		m.rng = mathrand.New(mathrand.NewChaCha8(seed))
	}
	return m
}

// Mutate materializes schema fresh, so mutation never operates on a
// tree sharing structure with the canonical document, then picks one
// pipeline uniformly at random and applies it. On any failure the
// unmutated materialized copy is returned instead.
func (m *Mutator) Mutate(schema *openapi.Schema) *openapi.Schema {
	return m.MutateWith(Pipeline(m.rng.IntN(int(numPipelines))), schema)
}

// MutateWith is Mutate with an explicit pipeline choice.
func (m *Mutator) MutateWith(p Pipeline, schema *openapi.Schema) *openapi.Schema {
	mat := materialize.New(m.spec, materialize.WithService(m.service))

	target := mat.Materialize(schema)
	before := schemahash.Sum(target)

	if ok := m.apply(p, target); !ok {
		metrics.Mutations.WithLabelValues(p.String(), "failed").Inc()
		// The failed edit may have left target half-mutated; hand the
		// caller a clean copy.
		return mat.Materialize(schema)
	}

	outcome := "applied"
	if schemahash.Sum(target) == before {
		outcome = "noop"
		slog.Debug("schema mutation left tree unchanged", "pipeline", p.String())
	}
	metrics.Mutations.WithLabelValues(p.String(), outcome).Inc()

	return target
}

// apply dispatches to the pipeline's rule, converting panics from
// malformed mutation targets into a false return.
func (m *Mutator) apply(p Pipeline, target *openapi.Schema) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			slog.Warn("schema mutation failed, returning unmutated copy",
				"pipeline", p.String(), "panic", r)
			ok = false
		}
	}()

	switch p {
	case PipelineDuplicate:
		ApplySingle(m.rng, target, true, DuplicateEdit{Rand: m.rng})
	case PipelineDropSelectType:
		ApplyPath(m.rng, target, DropSelectTypeEdit{Rand: m.rng})
	}
	return true
}
