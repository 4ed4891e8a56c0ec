// Package testconf models the YAML test-configuration file that pairs
// an OpenAPI contract with per-parameter value generators, and provides
// the rewrite pass that swaps generic generators for data-backed and
// stateful ones ahead of a fuzzing run.
package testconf

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Generator types recognized by the rewrite pass.
const (
	GenRandomBoolean     = "RandomBoolean"
	GenParameterGenerator = "ParameterGenerator"
	GenRandomInputValue  = "RandomInputValue"
	GenObjectPerturbator = "ObjectPerturbator"
)

// File is the top-level document.
type File struct {
	Auth              *Auth             `yaml:"auth,omitempty"`
	TestConfiguration TestConfiguration `yaml:"testConfiguration"`
}

// Auth holds authentication settings for the run.
type Auth struct {
	Required bool   `yaml:"required"`
	AuthPath string `yaml:"authPath,omitempty"`
}

// TestConfiguration lists the operations under test.
type TestConfiguration struct {
	Operations []Operation `yaml:"operations"`
}

// Operation is one operation entry.
type Operation struct {
	OperationID      string      `yaml:"operationId,omitempty"`
	Method           string      `yaml:"method"`
	TestPath         string      `yaml:"testPath"`
	TestParameters   []Parameter `yaml:"testParameters,omitempty"`
	ExpectedResponse any         `yaml:"expectedResponse,omitempty"`
}

// Parameter configures the generators for one parameter.
type Parameter struct {
	Name       string      `yaml:"name"`
	In         string      `yaml:"in"`
	Weight     *float64    `yaml:"weight,omitempty"`
	Generators []Generator `yaml:"generators"`
}

// Generator is one value generator binding.
type Generator struct {
	Type          string         `yaml:"type"`
	GenParameters []GenParameter `yaml:"genParameters"`
	Valid         bool           `yaml:"valid"`
}

// GenParameter is a generator argument.
type GenParameter struct {
	Name   string   `yaml:"name"`
	Values []string `yaml:"values"`
}

// Load reads and parses a test configuration file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read test configuration: %w", err)
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse test configuration: %w", err)
	}
	return &f, nil
}

// Save writes the configuration back as YAML.
func (f *File) Save(path string) error {
	data, err := yaml.Marshal(f)
	if err != nil {
		return fmt.Errorf("failed to encode test configuration: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write test configuration: %w", err)
	}
	return nil
}

// RewriteOptions configures Rewrite.
type RewriteOptions struct {
	// DataDir is the directory the rewritten generators read seed data
	// from (CSV value files, JSON perturbation seeds).
	DataDir string
}

// Rewrite prepares a configuration for a fuzzing run:
//
//   - the first parameter of PUT/PATCH/DELETE operations, and any
//     parameter whose name contains "id" or "code", gains a stateful
//     ParameterGenerator if it lacks one
//   - non-body generators other than RandomBoolean and
//     ParameterGenerator are replaced by RandomInputValue generators
//     backed by a per-parameter CSV file
//   - body parameters are regenerated by an ObjectPerturbator seeded
//     from a per-operation JSON file
func Rewrite(f *File, opts RewriteOptions) {
	dataDir := opts.DataDir
	if dataDir == "" {
		dataDir = "data"
	}

	for i := range f.TestConfiguration.Operations {
		op := &f.TestConfiguration.Operations[i]
		if len(op.TestParameters) == 0 {
			continue
		}

		method := strings.ToLower(op.Method)
		pathTag := sanitizePath(op.TestPath)

		if method == "put" || method == "patch" || method == "delete" {
			ensureParameterGenerator(&op.TestParameters[0])
		}

		for j := range op.TestParameters {
			param := &op.TestParameters[j]

			if param.In != "body" {
				csvPath := fmt.Sprintf("%s/%s_%s_%s.csv", dataDir, method, pathTag, param.Name)
				for k, gen := range param.Generators {
					if gen.Type == GenRandomBoolean || gen.Type == GenParameterGenerator {
						continue
					}
					param.Generators[k] = Generator{
						Type: GenRandomInputValue,
						GenParameters: []GenParameter{
							{Name: "csv", Values: []string{csvPath}},
						},
						Valid: true,
					}
				}
			}

			lower := strings.ToLower(param.Name)
			if strings.Contains(lower, "id") || strings.Contains(lower, "code") {
				ensureParameterGenerator(param)
			}

			if param.In == "body" {
				jsonPath := fmt.Sprintf("%s/%s_%s_body.json", dataDir, method, pathTag)
				param.Generators = []Generator{{
					Type: GenObjectPerturbator,
					GenParameters: []GenParameter{
						{Name: "file", Values: []string{jsonPath}},
					},
					Valid: true,
				}}
			}
		}
	}
}

// ensureParameterGenerator appends a stateful ParameterGenerator unless
// the parameter already carries one.
func ensureParameterGenerator(param *Parameter) {
	for _, gen := range param.Generators {
		if gen.Type == GenParameterGenerator {
			return
		}
	}
	param.Generators = append(param.Generators, Generator{
		Type:          GenParameterGenerator,
		GenParameters: []GenParameter{},
		Valid:         true,
	})
}

// sanitizePath flattens a test path into a file-name-safe tag.
func sanitizePath(path string) string {
	r := strings.NewReplacer("/", "_", "{", "_", "}", "_")
	return r.Replace(path)
}
