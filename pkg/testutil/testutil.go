// Package testutil provides shared test helpers: reproducible random
// sources and specification fixtures.
package testutil

import (
	"math/rand/v2"
	"testing"

	"github.com/oasfuzz/oasfuzz/pkg/jsonutil"
	"github.com/oasfuzz/oasfuzz/pkg/openapi"
)

// Rand returns a deterministic generator for the given seed. Mutation
// tests inject it so traversal draws replay exactly.
func Rand(seed uint64) *rand.Rand {
	var key [32]byte
	for i := 0; i < len(key); i += 8 {
		for j := 0; j < 8; j++ {
			key[i+j] = byte(seed >> (8 * j))
		}
	}
	return rand.New(rand.NewChaCha8(key))
}

// SpecFromJSON parses an inline JSON specification fixture, failing the
// test on malformed input.
func SpecFromJSON(t *testing.T, data string) *openapi.Spec {
	t.Helper()
	var spec openapi.Spec
	if err := jsonutil.Unmarshal([]byte(data), &spec); err != nil {
		t.Fatalf("invalid spec fixture: %v", err)
	}
	return &spec
}

// SchemaFromJSON parses an inline JSON schema fixture.
func SchemaFromJSON(t *testing.T, data string) *openapi.Schema {
	t.Helper()
	var s openapi.Schema
	if err := jsonutil.Unmarshal([]byte(data), &s); err != nil {
		t.Fatalf("invalid schema fixture: %v", err)
	}
	return &s
}
