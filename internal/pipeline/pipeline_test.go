package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syncgen/syncgen/internal/generator"
	"github.com/syncgen/syncgen/internal/models"
	"github.com/syncgen/syncgen/internal/utils"
)

// fakeInvoker stands in for the external generator. It writes a single model
// file with a configurable struct body, mimicking the generator's name
// transform by emitting "Upet" for the "pet" entity.
type fakeInvoker struct {
	structSource string
	calls        int
}

func (f *fakeInvoker) Invoke(_ context.Context, cfg generator.Config) (*models.ArtifactSet, error) {
	f.calls++

	modelDir := filepath.Join(cfg.OutputDir, "models")
	if err := os.MkdirAll(modelDir, 0755); err != nil {
		return nil, err
	}
	source := "package " + cfg.PackageName + "\n\n" + f.structSource
	if err := os.WriteFile(filepath.Join(modelDir, "model_pet.go"), []byte(source), 0644); err != nil {
		return nil, err
	}

	return &models.ArtifactSet{
		APIName:     cfg.APIName,
		Root:        cfg.OutputDir,
		PackageName: cfg.PackageName,
		Files:       []string{filepath.Join("models", "model_pet.go")},
	}, nil
}

const petV1 = "type Upet struct {\n\tId   int64  `json:\"id\"`\n\tName string `json:\"name\"`\n}\n"
const petV2 = "type Upet struct {\n\tId     int64   `json:\"id\"`\n\tName   string  `json:\"name\"`\n\tWeight float64 `json:\"weight\"`\n}\n"

type env struct {
	runner  *Runner
	invoker *fakeInvoker
	paths   Paths
	schema  string
}

func newEnv(t *testing.T) *env {
	t.Helper()
	projectDir := t.TempDir()

	require.NoError(t, os.WriteFile(filepath.Join(projectDir, "go.mod"),
		[]byte("module github.com/example/app\n\ngo 1.25\n"), 0644))

	configDir := filepath.Join(projectDir, "config")
	require.NoError(t, os.MkdirAll(configDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(configDir, "default.yaml"),
		[]byte("api:\n  timeout_seconds: 30\n"), 0644))

	schema := filepath.Join(projectDir, "petstore.yaml")
	require.NoError(t, os.WriteFile(schema, []byte("openapi: 3.0.0\n"), 0644))

	paths := DefaultPaths(projectDir, ".syncgen")
	invoker := &fakeInvoker{structSource: petV1}
	runner := NewRunner(paths, invoker, utils.NewDiagnosticSystem(utils.DiagnosticSilent))

	require.NoError(t, runner.Store().Bootstrap())
	require.NoError(t, runner.Store().Upsert(models.RegistryEntry{
		Name:       "petstore",
		URL:        "https://petstore3.swagger.io/api/v3",
		SchemaPath: schema,
		EntityName: "pet",
		Options:    models.GenerationOptions{GenerateModels: true},
	}))

	return &env{runner: runner, invoker: invoker, paths: paths, schema: schema}
}

func (e *env) run(t *testing.T, opts Options) *models.RunSummary {
	t.Helper()
	summary, err := e.runner.RunAll(context.Background(), nil, opts)
	require.NoError(t, err)
	return summary
}

func (e *env) storedModel(t *testing.T) string {
	t.Helper()
	raw, err := os.ReadFile(filepath.Join(e.paths.ModelsDir, "pet.go"))
	require.NoError(t, err)
	return string(raw)
}

func TestRunner_FirstRunSynthesizesEverything(t *testing.T) {
	e := newEnv(t)

	summary := e.run(t, Options{})
	require.Len(t, summary.APIs, 1)

	result := summary.APIs[0]
	require.NoError(t, result.Err)
	assert.True(t, result.Generated)
	require.Len(t, result.Models, 1)
	assert.Equal(t, models.DiffNew, result.Models[0].Result)

	stored := e.storedModel(t)
	assert.Contains(t, stored, "type Pet struct", "generated name is canonicalized")
	assert.Contains(t, stored, "func NewPet() Pet {")

	bridge, err := os.ReadFile(e.paths.BridgeFile)
	require.NoError(t, err)
	assert.Contains(t, string(bridge), "package generatedapis")
	assert.Contains(t, string(bridge), "github.com/example/app/generated/petstore_api")
	assert.Contains(t, string(bridge), "type Upet = petstore_api.Upet")

	settings, err := os.ReadFile(e.paths.SettingsFile)
	require.NoError(t, err)
	assert.Contains(t, string(settings), `petstore_url: "https://petstore3.swagger.io/api/v3"`)

	assert.FileExists(t, filepath.Join(e.paths.HashDir, "petstore.sha256"))
}

func TestRunner_SecondRunSkips(t *testing.T) {
	e := newEnv(t)
	e.run(t, Options{})

	summary := e.run(t, Options{})
	require.Len(t, summary.APIs, 1)
	assert.True(t, summary.APIs[0].Skipped)
	assert.Equal(t, "schema unchanged", summary.APIs[0].Reason)
	assert.Equal(t, 1, e.invoker.calls, "the generator must not run again")
}

func TestRunner_ForceRegenerates(t *testing.T) {
	e := newEnv(t)
	e.run(t, Options{})

	summary := e.run(t, Options{Force: true})
	assert.False(t, summary.APIs[0].Skipped)
	assert.Equal(t, 2, e.invoker.calls)
	require.Len(t, summary.APIs[0].Models, 1)
	assert.Equal(t, models.DiffUnchanged, summary.APIs[0].Models[0].Result)
}

func TestRunner_SchemaChangeMergesWithoutTouchingManualCode(t *testing.T) {
	e := newEnv(t)
	e.run(t, Options{})

	// A developer adds a method below the constructor.
	manual := "\n// Nickname is hand-written.\nfunc (p Pet) Nickname() string {\n\treturn p.Name\n}\n"
	storedPath := filepath.Join(e.paths.ModelsDir, "pet.go")
	stored := e.storedModel(t)
	require.NoError(t, os.WriteFile(storedPath, []byte(stored+manual), 0644))

	// The upstream schema grows a field.
	require.NoError(t, os.WriteFile(e.schema, []byte("openapi: 3.0.0\n# weight added\n"), 0644))
	e.invoker.structSource = petV2

	summary := e.run(t, Options{})
	result := summary.APIs[0]
	require.NoError(t, result.Err)
	require.Len(t, result.Models, 1)
	assert.Equal(t, models.DiffChanged, result.Models[0].Result)

	merged := e.storedModel(t)
	assert.Contains(t, merged, "Weight float64")
	assert.Contains(t, merged, "func NewPet() Pet {", "constructor survives as manual region")
	assert.Contains(t, merged, manual, "hand-written code is carried over byte for byte")
}

func TestRunner_ValidateReportsDriftWithoutWriting(t *testing.T) {
	e := newEnv(t)
	e.run(t, Options{})

	// Remove a field by hand; validate must flag it but change nothing.
	storedPath := filepath.Join(e.paths.ModelsDir, "pet.go")
	stored := e.storedModel(t)
	broken := strings.Replace(stored, "Name string `json:\"name\"`\n", "", 1)
	require.NotEqual(t, stored, broken)
	require.NoError(t, os.WriteFile(storedPath, []byte(broken), 0644))

	summary := e.run(t, Options{DryRun: true})
	require.Len(t, summary.APIs[0].Models, 1)
	assert.Equal(t, models.DiffChanged, summary.APIs[0].Models[0].Result)
	assert.True(t, summary.Drift())

	assert.Equal(t, broken, e.storedModel(t), "dry run must not write")
	assert.Equal(t, 1, e.invoker.calls, "dry run must not invoke the generator")
}

func TestRunner_ValidateAutoUpdateApplies(t *testing.T) {
	e := newEnv(t)
	e.run(t, Options{})

	storedPath := filepath.Join(e.paths.ModelsDir, "pet.go")
	stored := e.storedModel(t)
	broken := strings.Replace(stored, "Name string `json:\"name\"`\n", "", 1)
	require.NoError(t, os.WriteFile(storedPath, []byte(broken), 0644))

	summary := e.run(t, Options{DryRun: true, AutoUpdate: true})
	assert.True(t, summary.Drift())
	assert.Contains(t, e.storedModel(t), "Name string", "auto-update restores the field")
}

func TestRunner_ValidateCleanTree(t *testing.T) {
	e := newEnv(t)
	e.run(t, Options{})

	summary := e.run(t, Options{DryRun: true})
	assert.False(t, summary.Drift())
	assert.Equal(t, models.DiffUnchanged, summary.APIs[0].Models[0].Result)
}

func TestRunner_UnknownNameIsFatal(t *testing.T) {
	e := newEnv(t)
	_, err := e.runner.RunAll(context.Background(), []string{"nope"}, Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no registry entry")
}

func TestRunner_InactiveEntryIsSkipped(t *testing.T) {
	e := newEnv(t)
	require.NoError(t, e.runner.Store().Upsert(models.RegistryEntry{
		Name:       "dormant",
		SchemaPath: e.schema,
	}))

	summary := e.run(t, Options{})
	require.Len(t, summary.APIs, 2)
	for _, result := range summary.APIs {
		if result.API == "dormant" {
			assert.True(t, result.Skipped)
			assert.Equal(t, "no generation options enabled", result.Reason)
		}
	}
	assert.Equal(t, 1, e.invoker.calls)
}

func TestRunner_MissingSchemaFailsOnlyThatAPI(t *testing.T) {
	e := newEnv(t)
	require.NoError(t, e.runner.Store().Upsert(models.RegistryEntry{
		Name:       "broken",
		SchemaPath: filepath.Join(e.paths.ProjectDir, "missing.yaml"),
		EntityName: "thing",
		Options:    models.GenerationOptions{GenerateModels: true},
	}))

	summary := e.run(t, Options{})
	require.Len(t, summary.APIs, 2)

	byName := map[string]models.APIResult{}
	for _, result := range summary.APIs {
		byName[result.API] = result
	}
	require.NoError(t, byName["petstore"].Err, "healthy APIs keep processing")
	require.Error(t, byName["broken"].Err)
	assert.NoFileExists(t, filepath.Join(e.paths.HashDir, "broken.sha256"),
		"no hash may be recorded for a failed API")
}

func TestRunner_HashNotRecordedOnModelError(t *testing.T) {
	e := newEnv(t)

	// The generator emits an artifact that lacks the expected entity.
	e.invoker.structSource = "type Unrelated struct{}\n"

	summary := e.run(t, Options{})
	result := summary.APIs[0]
	require.Len(t, result.Models, 1)
	assert.Equal(t, models.DiffError, result.Models[0].Result)
	assert.Contains(t, result.Reason, "hash not recorded")

	assert.NoFileExists(t, filepath.Join(e.paths.HashDir, "petstore.sha256"))

	// The next run retries instead of skipping.
	e.invoker.structSource = petV1
	summary = e.run(t, Options{})
	assert.False(t, summary.APIs[0].Skipped)
	assert.Equal(t, models.DiffNew, summary.APIs[0].Models[0].Result)
}

func TestSelectEntries(t *testing.T) {
	entries := []models.RegistryEntry{{Name: "a"}, {Name: "b"}, {Name: "c"}}

	t.Run("empty selects all", func(t *testing.T) {
		selected, err := selectEntries(entries, nil)
		require.NoError(t, err)
		assert.Len(t, selected, 3)
	})

	t.Run("registry order is preserved", func(t *testing.T) {
		selected, err := selectEntries(entries, []string{"c", "a"})
		require.NoError(t, err)
		require.Len(t, selected, 2)
		assert.Equal(t, "a", selected[0].Name)
		assert.Equal(t, "c", selected[1].Name)
	})

	t.Run("unknown name errors", func(t *testing.T) {
		_, err := selectEntries(entries, []string{"zzz"})
		assert.Error(t, err)
	})
}
