// Package openapi provides the OpenAPI 3 document model and parser used
// by the schema resolution and mutation engine.
package openapi

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/oasfuzz/oasfuzz/pkg/jsonutil"
	"gopkg.in/yaml.v3"
)

// ServiceNameExtension is the vendor extension that ties an operation to
// the backend service defining its schemas. Cross-service documents (one
// merged spec per microservice mesh) prefix schema names with the service
// name and rely on this extension to disambiguate generic references.
const ServiceNameExtension = "x-service-name"

// Spec represents a parsed OpenAPI specification.
type Spec struct {
	OpenAPI    string              `json:"openapi" yaml:"openapi"`
	Info       Info                `json:"info" yaml:"info"`
	Servers    []Server            `json:"servers,omitempty" yaml:"servers,omitempty"`
	Paths      map[string]PathItem `json:"paths" yaml:"paths"`
	Components *Components         `json:"components,omitempty" yaml:"components,omitempty"`
}

// Info contains API metadata.
type Info struct {
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Version     string `json:"version" yaml:"version"`
}

// Server represents a server definition.
type Server struct {
	URL         string `json:"url" yaml:"url"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// PathItem represents all operations for a path.
type PathItem struct {
	Get        *Operation  `json:"get,omitempty" yaml:"get,omitempty"`
	Post       *Operation  `json:"post,omitempty" yaml:"post,omitempty"`
	Put        *Operation  `json:"put,omitempty" yaml:"put,omitempty"`
	Delete     *Operation  `json:"delete,omitempty" yaml:"delete,omitempty"`
	Patch      *Operation  `json:"patch,omitempty" yaml:"patch,omitempty"`
	Options    *Operation  `json:"options,omitempty" yaml:"options,omitempty"`
	Head       *Operation  `json:"head,omitempty" yaml:"head,omitempty"`
	Parameters []Parameter `json:"parameters,omitempty" yaml:"parameters,omitempty"`
}

// Operation represents a single API operation.
type Operation struct {
	OperationID string              `json:"operationId,omitempty" yaml:"operationId,omitempty"`
	Summary     string              `json:"summary,omitempty" yaml:"summary,omitempty"`
	Description string              `json:"description,omitempty" yaml:"description,omitempty"`
	Tags        []string            `json:"tags,omitempty" yaml:"tags,omitempty"`
	Parameters  []Parameter         `json:"parameters,omitempty" yaml:"parameters,omitempty"`
	RequestBody *RequestBody        `json:"requestBody,omitempty" yaml:"requestBody,omitempty"`
	Responses   map[string]Response `json:"responses,omitempty" yaml:"responses,omitempty"`

	// XServiceName carries the x-service-name extension. It scopes
	// reference resolution for this operation's schemas.
	XServiceName string `json:"x-service-name,omitempty" yaml:"x-service-name,omitempty"`
}

// ServiceName returns the operation's x-service-name extension, or ""
// when the operation is nil or unannotated.
func (op *Operation) ServiceName() string {
	if op == nil {
		return ""
	}
	return op.XServiceName
}

// Parameter represents an operation parameter.
type Parameter struct {
	Name        string  `json:"name" yaml:"name"`
	In          string  `json:"in" yaml:"in"` // query, path, header, cookie
	Description string  `json:"description,omitempty" yaml:"description,omitempty"`
	Required    bool    `json:"required,omitempty" yaml:"required,omitempty"`
	Schema      *Schema `json:"schema,omitempty" yaml:"schema,omitempty"`
	Example     any     `json:"example,omitempty" yaml:"example,omitempty"`
	Deprecated  bool    `json:"deprecated,omitempty" yaml:"deprecated,omitempty"`
	Ref         string  `json:"$ref,omitempty" yaml:"$ref,omitempty"`
}

// RequestBody represents the request body.
type RequestBody struct {
	Description string               `json:"description,omitempty" yaml:"description,omitempty"`
	Required    bool                 `json:"required,omitempty" yaml:"required,omitempty"`
	Content     map[string]MediaType `json:"content,omitempty" yaml:"content,omitempty"`
}

// MediaType represents a media type definition.
type MediaType struct {
	Schema  *Schema `json:"schema,omitempty" yaml:"schema,omitempty"`
	Example any     `json:"example,omitempty" yaml:"example,omitempty"`
}

// Response represents an API response.
type Response struct {
	Description string               `json:"description,omitempty" yaml:"description,omitempty"`
	Content     map[string]MediaType `json:"content,omitempty" yaml:"content,omitempty"`
}

// Schema represents a JSON Schema definition. The engine interprets
// Type, Ref, Properties and Items; everything else is a descriptive
// attribute copied verbatim during materialization.
type Schema struct {
	Type       string             `json:"type,omitempty" yaml:"type,omitempty"`
	Format     string             `json:"format,omitempty" yaml:"format,omitempty"`
	Ref        string             `json:"$ref,omitempty" yaml:"$ref,omitempty"`
	Properties map[string]*Schema `json:"properties,omitempty" yaml:"properties,omitempty"`
	Items      *Schema            `json:"items,omitempty" yaml:"items,omitempty"`
	Required   []string           `json:"required,omitempty" yaml:"required,omitempty"`
	Enum       []any              `json:"enum,omitempty" yaml:"enum,omitempty"`

	Title       string `json:"title,omitempty" yaml:"title,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Example     any    `json:"example,omitempty" yaml:"example,omitempty"`
	Default     any    `json:"default,omitempty" yaml:"default,omitempty"`
	Pattern     string `json:"pattern,omitempty" yaml:"pattern,omitempty"`

	// Numeric and length bounds.
	MinLength     *int     `json:"minLength,omitempty" yaml:"minLength,omitempty"`
	MaxLength     *int     `json:"maxLength,omitempty" yaml:"maxLength,omitempty"`
	Minimum       *float64 `json:"minimum,omitempty" yaml:"minimum,omitempty"`
	Maximum       *float64 `json:"maximum,omitempty" yaml:"maximum,omitempty"`
	MinItems      *int     `json:"minItems,omitempty" yaml:"minItems,omitempty"`
	MaxItems      *int     `json:"maxItems,omitempty" yaml:"maxItems,omitempty"`
	MinProperties *int     `json:"minProperties,omitempty" yaml:"minProperties,omitempty"`
	MaxProperties *int     `json:"maxProperties,omitempty" yaml:"maxProperties,omitempty"`
	MultipleOf    *float64 `json:"multipleOf,omitempty" yaml:"multipleOf,omitempty"`
	UniqueItems   bool     `json:"uniqueItems,omitempty" yaml:"uniqueItems,omitempty"`

	// Composition. AllOf is merged best-effort at materialization;
	// AnyOf and OneOf are parsed but not interpreted.
	AllOf []*Schema `json:"allOf,omitempty" yaml:"allOf,omitempty"`
	AnyOf []*Schema `json:"anyOf,omitempty" yaml:"anyOf,omitempty"`
	OneOf []*Schema `json:"oneOf,omitempty" yaml:"oneOf,omitempty"`

	// Read/write hints.
	Nullable   bool `json:"nullable,omitempty" yaml:"nullable,omitempty"`
	ReadOnly   bool `json:"readOnly,omitempty" yaml:"readOnly,omitempty"`
	WriteOnly  bool `json:"writeOnly,omitempty" yaml:"writeOnly,omitempty"`
	Deprecated bool `json:"deprecated,omitempty" yaml:"deprecated,omitempty"`

	// Additional properties for map-like objects.
	AdditionalProperties *Schema `json:"additionalProperties,omitempty" yaml:"additionalProperties,omitempty"`
}

// Components contains reusable schema components.
type Components struct {
	Schemas    map[string]*Schema    `json:"schemas,omitempty" yaml:"schemas,omitempty"`
	Parameters map[string]*Parameter `json:"parameters,omitempty" yaml:"parameters,omitempty"`
}

// SchemaByName looks up a canonical schema by name. Nil-safe on
// documents without a components section.
func (s *Spec) SchemaByName(name string) *Schema {
	if s == nil || s.Components == nil || s.Components.Schemas == nil {
		return nil
	}
	return s.Components.Schemas[name]
}

// SchemaNames enumerates all canonical schema names. Iteration order of
// the underlying map is not preserved; callers that need determinism
// must sort.
func (s *Spec) SchemaNames() []string {
	if s == nil || s.Components == nil {
		return nil
	}
	names := make([]string, 0, len(s.Components.Schemas))
	for name := range s.Components.Schemas {
		names = append(names, name)
	}
	return names
}

// Parser parses OpenAPI specifications.
type Parser struct{}

// NewParser creates a new OpenAPI parser.
func NewParser() *Parser {
	return &Parser{}
}

// ParseFile parses an OpenAPI spec from a file, detecting the format
// from the extension and falling back to content sniffing.
func (p *Parser) ParseFile(path string) (*Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".json":
		return p.ParseJSON(data)
	case ".yaml", ".yml":
		return p.ParseYAML(data)
	default:
		if jsonutil.Valid(data) {
			return p.ParseJSON(data)
		}
		return p.ParseYAML(data)
	}
}

// ParseJSON parses an OpenAPI spec from JSON data.
func (p *Parser) ParseJSON(data []byte) (*Spec, error) {
	var spec Spec
	if err := jsonutil.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}
	return &spec, nil
}

// ParseYAML parses an OpenAPI spec from YAML data.
func (p *Parser) ParseYAML(data []byte) (*Spec, error) {
	var spec Spec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return &spec, nil
}

// EndpointOperation pairs an operation with its path and method.
type EndpointOperation struct {
	Path      string
	Method    string
	Operation *Operation
}

// GetOperations extracts all operations from a spec. Path-level
// parameters are merged into each operation's parameter list.
func (p *Parser) GetOperations(spec *Spec) []EndpointOperation {
	var ops []EndpointOperation

	for path, pathItem := range spec.Paths {
		addOp := func(method string, op *Operation) {
			if op == nil {
				return
			}
			op.Parameters = mergeParameters(pathItem.Parameters, op.Parameters)
			ops = append(ops, EndpointOperation{
				Path:      path,
				Method:    method,
				Operation: op,
			})
		}
		addOp("GET", pathItem.Get)
		addOp("POST", pathItem.Post)
		addOp("PUT", pathItem.Put)
		addOp("DELETE", pathItem.Delete)
		addOp("PATCH", pathItem.Patch)
		addOp("OPTIONS", pathItem.Options)
		addOp("HEAD", pathItem.Head)
	}

	return ops
}

// mergeParameters merges path-level and operation-level parameters.
// Operation params override path params with the same name+in.
func mergeParameters(pathParams, opParams []Parameter) []Parameter {
	if len(pathParams) == 0 {
		return opParams
	}

	opSet := make(map[string]bool, len(opParams))
	for _, p := range opParams {
		opSet[p.In+":"+p.Name] = true
	}

	merged := make([]Parameter, len(opParams))
	copy(merged, opParams)
	for _, p := range pathParams {
		if !opSet[p.In+":"+p.Name] {
			merged = append(merged, p)
		}
	}
	return merged
}

// GetBaseURL returns the first server URL from the spec.
func (p *Parser) GetBaseURL(spec *Spec) string {
	if len(spec.Servers) > 0 {
		return strings.TrimSuffix(spec.Servers[0].URL, "/")
	}
	return ""
}

// ParseFromFile is a convenience function to parse a spec from a file.
func ParseFromFile(path string) (*Spec, error) {
	return NewParser().ParseFile(path)
}
