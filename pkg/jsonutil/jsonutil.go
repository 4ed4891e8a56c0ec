// Package jsonutil wraps github.com/go-json-experiment/json, which is
// noticeably faster than encoding/json on schema-sized payloads. The
// API mirrors the standard library so call sites read the same.
package jsonutil

import (
	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
)

// Unmarshal parses the JSON-encoded data and stores the result in v.
func Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

// Marshal returns the JSON encoding of v.
func Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

// MarshalIndent returns the JSON encoding of v indented with indent.
func MarshalIndent(v any, indent string) ([]byte, error) {
	return json.Marshal(v, jsontext.WithIndent(indent))
}

// MarshalCanonical returns a deterministic JSON encoding of v: map
// entries are serialized in sorted key order, so structurally equal
// values always encode to identical bytes. Used for fingerprinting.
func MarshalCanonical(v any) ([]byte, error) {
	return json.Marshal(v, json.Deterministic(true))
}

// Valid reports whether data is a valid JSON encoding.
func Valid(data []byte) bool {
	return jsontext.Value(data).IsValid()
}
