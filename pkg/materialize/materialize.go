// Package materialize turns a schema that may contain references into a
// fully dereferenced, self-contained copy. Reference graphs in merged
// cross-service specifications are routinely cyclic (A embeds B embeds
// A), so every branch tracks the resolved names it descended through
// and truncates re-entry to an empty object instead of recursing
// forever. The canonical document is never modified.
//
// Materialization is total: unresolvable or cyclic branches narrow to
// an empty object-kind node rather than surfacing an error.
package materialize

import (
	"slices"

	"github.com/oasfuzz/oasfuzz/pkg/metrics"
	"github.com/oasfuzz/oasfuzz/pkg/openapi"
	"github.com/oasfuzz/oasfuzz/pkg/schemaref"
)

// Materializer produces dereferenced copies of schemas from one
// specification document. The service name scopes reference resolution
// for the operation being processed; create one Materializer per
// concurrent worker rather than sharing a mutable instance.
type Materializer struct {
	spec    *openapi.Spec
	service string
}

// Option configures a Materializer.
type Option func(*Materializer)

// WithService sets the ambient service name used to resolve generic
// (api_/actuator_) references for the current operation.
func WithService(name string) Option {
	return func(m *Materializer) { m.service = name }
}

// New creates a Materializer for the given specification document.
func New(spec *openapi.Spec, opts ...Option) *Materializer {
	m := &Materializer{spec: spec}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Materialize returns a copy of s with every reachable reference
// replaced by its resolved content. The returned tree shares no mutable
// node with the document; cyclic or unresolvable branches terminate as
// empty objects. No support for anyOf/oneOf; allOf branches are merged
// best-effort.
func (m *Materializer) Materialize(s *openapi.Schema) *openapi.Schema {
	metrics.Materializations.Inc()
	return m.materialize(s, nil)
}

// MaterializeName materializes the canonical schema with the given
// name, as if dereferencing "#/components/schemas/<name>".
func (m *Materializer) MaterializeName(name string) *openapi.Schema {
	return m.Materialize(&openapi.Schema{Ref: "#/components/schemas/" + name})
}

// materialize carries the call-scoped branch path used for cycle
// detection. The path is threaded by value so every branch sees exactly
// its own ancestry and unwinding needs no explicit pop.
func (m *Materializer) materialize(s *openapi.Schema, path []string) *openapi.Schema {
	if s == nil {
		return emptyObject()
	}

	resolved, path, ok := m.resolve(s, path)
	if !ok {
		return emptyObject()
	}

	out := resolved.CloneAttributes()

	if resolved.Type == "array" {
		if resolved.Items != nil {
			out.Items = m.materialize(resolved.Items, path)
		}
		return out
	}

	for _, branch := range resolved.AllOf {
		if branch == nil {
			continue
		}
		mergeInto(out, m.materialize(branch, path))
	}

	if resolved.Properties != nil {
		if out.Properties == nil {
			out.Properties = make(map[string]*openapi.Schema, len(resolved.Properties))
		}
		for name, prop := range resolved.Properties {
			if prop == nil {
				continue
			}
			out.Properties[name] = m.materialize(prop, path)
		}
	}

	if resolved.AdditionalProperties != nil {
		out.AdditionalProperties = m.materialize(resolved.AdditionalProperties, path)
	}

	return out
}

// resolve follows the schema's reference chain until a non-reference
// node is reached. It reports false when the chain is cyclic, escapes
// the document, or resolves to itself. The resolved name of each
// followed reference is appended to path before descending, so a name
// reappearing anywhere on the current branch is a cycle.
func (m *Materializer) resolve(s *openapi.Schema, path []string) (*openapi.Schema, []string, bool) {
	resolved := s
	for resolved != nil && resolved.Ref != "" {
		ref := resolved.Ref

		name := schemaref.ResolvedName(m.spec, ref, m.service, m.service)
		if slices.Contains(path, name) {
			metrics.CyclesCut.Inc()
			return nil, path, false
		}
		path = append(path, name)

		next := schemaref.Resolve(m.spec, ref, m.service, m.service)
		if next == nil {
			metrics.UnresolvedRefs.Inc()
			return nil, path, false
		}
		if next.Ref == ref {
			// A schema whose resolution still points at the same
			// reference would loop forever; treat as unresolvable.
			metrics.UnresolvedRefs.Inc()
			return nil, path, false
		}
		resolved = next
	}
	if resolved == nil {
		return nil, path, false
	}
	return resolved, path, true
}

// mergeInto folds a materialized allOf branch into dst: missing
// properties are adopted, required names are unioned, and the branch
// type fills in an empty type.
func mergeInto(dst, branch *openapi.Schema) {
	if branch == nil {
		return
	}
	if dst.Type == "" {
		dst.Type = branch.Type
	}
	if len(branch.Properties) > 0 && dst.Properties == nil {
		dst.Properties = make(map[string]*openapi.Schema, len(branch.Properties))
	}
	for name, prop := range branch.Properties {
		if _, exists := dst.Properties[name]; !exists {
			dst.Properties[name] = prop
		}
	}
	for _, name := range branch.Required {
		if !slices.Contains(dst.Required, name) {
			dst.Required = append(dst.Required, name)
		}
	}
}

// emptyObject is the terminal node for cyclic and unresolvable
// branches: object kind, no reference, no properties.
func emptyObject() *openapi.Schema {
	return &openapi.Schema{
		Type:       "object",
		Properties: map[string]*openapi.Schema{},
	}
}
