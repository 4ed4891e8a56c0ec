package testconf

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConf = `
auth:
  required: true
  authPath: auth/keys.json
testConfiguration:
  operations:
    - operationId: updateTrip
      method: PUT
      testPath: /trips/{tripId}
      testParameters:
        - name: tripId
          in: path
          generators:
            - type: RandomNumber
              genParameters: []
              valid: true
        - name: notify
          in: query
          generators:
            - type: RandomBoolean
              genParameters: []
              valid: true
        - name: body
          in: body
          generators:
            - type: RandomObject
              genParameters: []
              valid: true
    - operationId: getStatus
      method: GET
      testPath: /status
      testParameters:
        - name: verbose
          in: query
          generators:
            - type: RandomString
              genParameters: []
              valid: true
`

func loadSample(t *testing.T) *File {
	t.Helper()
	path := filepath.Join(t.TempDir(), "testConf.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleConf), 0o644))
	f, err := Load(path)
	require.NoError(t, err)
	return f
}

func generatorTypes(p Parameter) []string {
	types := make([]string, len(p.Generators))
	for i, g := range p.Generators {
		types[i] = g.Type
	}
	return types
}

func TestLoad(t *testing.T) {
	f := loadSample(t)

	require.NotNil(t, f.Auth)
	assert.True(t, f.Auth.Required)
	require.Len(t, f.TestConfiguration.Operations, 2)

	put := f.TestConfiguration.Operations[0]
	assert.Equal(t, "PUT", put.Method)
	assert.Equal(t, "/trips/{tripId}", put.TestPath)
	require.Len(t, put.TestParameters, 3)
	assert.Equal(t, []string{"RandomNumber"}, generatorTypes(put.TestParameters[0]))
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestRewrite_NonBodyGeneratorsBackedByCSV(t *testing.T) {
	f := loadSample(t)
	Rewrite(f, RewriteOptions{DataDir: "seeds"})

	verbose := f.TestConfiguration.Operations[1].TestParameters[0]
	require.Len(t, verbose.Generators, 1)
	gen := verbose.Generators[0]
	assert.Equal(t, GenRandomInputValue, gen.Type)
	require.Len(t, gen.GenParameters, 1)
	assert.Equal(t, "csv", gen.GenParameters[0].Name)
	assert.Equal(t, []string{"seeds/get__status_verbose.csv"}, gen.GenParameters[0].Values)
}

func TestRewrite_KeepsRandomBoolean(t *testing.T) {
	f := loadSample(t)
	Rewrite(f, RewriteOptions{})

	notify := f.TestConfiguration.Operations[0].TestParameters[1]
	assert.Equal(t, []string{GenRandomBoolean}, generatorTypes(notify))
}

func TestRewrite_StatefulGeneratorForMutatingFirstParam(t *testing.T) {
	f := loadSample(t)
	Rewrite(f, RewriteOptions{})

	tripID := f.TestConfiguration.Operations[0].TestParameters[0]
	assert.Contains(t, generatorTypes(tripID), GenParameterGenerator)
}

func TestRewrite_StatefulGeneratorForIDNames(t *testing.T) {
	f := &File{TestConfiguration: TestConfiguration{Operations: []Operation{{
		Method:   "GET",
		TestPath: "/trips",
		TestParameters: []Parameter{{
			Name: "routeCode",
			In:   "query",
			Generators: []Generator{{
				Type: "RandomString", GenParameters: []GenParameter{}, Valid: true,
			}},
		}},
	}}}}

	Rewrite(f, RewriteOptions{})

	assert.Contains(t,
		generatorTypes(f.TestConfiguration.Operations[0].TestParameters[0]),
		GenParameterGenerator)
}

func TestRewrite_DoesNotDuplicateParameterGenerator(t *testing.T) {
	f := loadSample(t)
	Rewrite(f, RewriteOptions{})
	Rewrite(f, RewriteOptions{})

	count := 0
	for _, typ := range generatorTypes(f.TestConfiguration.Operations[0].TestParameters[0]) {
		if typ == GenParameterGenerator {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestRewrite_BodyBecomesObjectPerturbator(t *testing.T) {
	f := loadSample(t)
	Rewrite(f, RewriteOptions{DataDir: "seeds"})

	body := f.TestConfiguration.Operations[0].TestParameters[2]
	require.Len(t, body.Generators, 1)
	gen := body.Generators[0]
	assert.Equal(t, GenObjectPerturbator, gen.Type)
	require.Len(t, gen.GenParameters, 1)
	assert.Equal(t, "file", gen.GenParameters[0].Name)
	assert.Equal(t, []string{"seeds/put__trips__tripId__body.json"}, gen.GenParameters[0].Values)
}

func TestRewrite_EmptyOperations(t *testing.T) {
	f := &File{TestConfiguration: TestConfiguration{Operations: []Operation{{
		Method:   "PUT",
		TestPath: "/trips",
	}}}}
	assert.NotPanics(t, func() { Rewrite(f, RewriteOptions{}) })
}

func TestSaveLoadRoundTrip(t *testing.T) {
	f := loadSample(t)
	Rewrite(f, RewriteOptions{DataDir: "seeds"})

	path := filepath.Join(t.TempDir(), "out.yaml")
	require.NoError(t, f.Save(path))

	again, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, f, again)
}
