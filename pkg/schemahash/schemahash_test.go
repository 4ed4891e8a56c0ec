package schemahash

import (
	"testing"

	"github.com/oasfuzz/oasfuzz/pkg/openapi"
	"github.com/stretchr/testify/assert"
)

func TestSum_StructuralEquality(t *testing.T) {
	a := &openapi.Schema{
		Type:     "object",
		Required: []string{"id"},
		Properties: map[string]*openapi.Schema{
			"id":   {Type: "string"},
			"name": {Type: "string"},
		},
	}
	b := a.Clone()

	assert.Equal(t, Sum(a), Sum(b))
	assert.True(t, Equal(a, b))
}

func TestSum_DetectsStructuralChange(t *testing.T) {
	a := &openapi.Schema{
		Type:       "object",
		Properties: map[string]*openapi.Schema{"id": {Type: "string"}},
	}
	b := a.Clone()
	b.Properties["id"].Type = "integer"

	assert.NotEqual(t, Sum(a), Sum(b))
	assert.False(t, Equal(a, b))
}

func TestSum_DetectsAddedProperty(t *testing.T) {
	a := &openapi.Schema{
		Type:       "object",
		Properties: map[string]*openapi.Schema{"id": {Type: "string"}},
	}
	b := a.Clone()
	b.Properties["id_dup"] = b.Properties["id"].Clone()

	assert.NotEqual(t, Sum(a), Sum(b))
}

func TestSum_Nil(t *testing.T) {
	assert.Zero(t, Sum(nil))
	assert.True(t, Equal(nil, nil))
	assert.False(t, Equal(nil, &openapi.Schema{Type: "object"}))
}
