// Package metrics exposes engine counters for Prometheus scraping.
// Counters live on a private registry so embedding programs that run
// their own Prometheus instrumentation are not polluted; callers mount
// Handler on whatever mux they already serve.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var registry = prometheus.NewRegistry()

var (
	// Materializations counts top-level schema materialization calls.
	Materializations = promauto.With(registry).NewCounter(prometheus.CounterOpts{
		Name: "oasfuzz_materializations_total",
		Help: "Top-level schema materialization calls.",
	})

	// CyclesCut counts reference cycles truncated to empty objects.
	CyclesCut = promauto.With(registry).NewCounter(prometheus.CounterOpts{
		Name: "oasfuzz_ref_cycles_cut_total",
		Help: "Schema reference cycles truncated during materialization.",
	})

	// UnresolvedRefs counts references no resolution strategy matched.
	UnresolvedRefs = promauto.With(registry).NewCounter(prometheus.CounterOpts{
		Name: "oasfuzz_unresolved_refs_total",
		Help: "Schema references that degraded to empty objects.",
	})

	// Mutations counts mutation pipeline runs by pipeline and outcome
	// (applied, noop, failed).
	Mutations = promauto.With(registry).NewCounterVec(prometheus.CounterOpts{
		Name: "oasfuzz_mutations_total",
		Help: "Schema mutation pipeline runs.",
	}, []string{"pipeline", "outcome"})
)

// Handler returns an http.Handler serving the engine metrics.
func Handler() http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}
