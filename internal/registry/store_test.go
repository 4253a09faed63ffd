package registry

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syncgen/syncgen/internal/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "registry.json"), nil)
}

func writeRegistry(t *testing.T, store *Store, raw string) {
	t.Helper()
	require.NoError(t, os.WriteFile(store.Path(), []byte(raw), 0644))
}

func TestStore_Bootstrap(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Bootstrap())

	entries, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, entries)

	// The template entry is documentation, not a tracked API.
	_, exists, err := store.Get("example")
	require.NoError(t, err)
	assert.False(t, exists)

	// Bootstrapping again must not clobber an existing registry.
	require.NoError(t, store.Upsert(models.RegistryEntry{
		Name:       "petstore",
		SchemaPath: "schemas/petstore.yaml",
		Options:    models.GenerationOptions{GenerateModels: true},
	}))
	require.NoError(t, store.Bootstrap())
	entries, err = store.Load()
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestStore_Load_MissingFile(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Load()
	require.Error(t, err)

	var perr *models.PipelineError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, models.ErrorTypeConfiguration, perr.Type)
	assert.True(t, perr.Fatal())
	assert.NotEmpty(t, perr.Suggestions)
}

func TestStore_Load_SchemaViolations(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"not json", `{"apis": [`},
		{"missing apis key", `{"version": 1}`},
		{"unknown top-level key", `{"apis": [], "extra": true}`},
		{"entry without name", `{"apis": [{"url": "https://x"}]}`},
		{"unknown entry key", `{"apis": [{"name": "p", "bogus": 1}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newTestStore(t)
			writeRegistry(t, store, tt.raw)

			_, err := store.Load()
			require.Error(t, err)
			var perr *models.PipelineError
			require.True(t, errors.As(err, &perr))
			assert.Equal(t, models.ErrorTypeConfiguration, perr.Type)
		})
	}
}

func TestStore_Load_DuplicateNames(t *testing.T) {
	store := newTestStore(t)
	writeRegistry(t, store, `{"apis": [{"name": "petstore"}, {"name": "petstore"}]}`)

	_, err := store.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate")
}

func TestStore_Load_Normalizes(t *testing.T) {
	store := newTestStore(t)
	writeRegistry(t, store, `{"apis": [{"name": "petstore", "schema_path": "schemas/p.yaml"}]}`)

	entries, err := store.Load()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "id", entries[0].IDField)
}

func TestStore_Upsert(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Bootstrap())

	entry := models.RegistryEntry{
		Name:       "petstore",
		URL:        "https://petstore3.swagger.io/api/v3",
		SchemaPath: "schemas/petstore.yaml",
		EntityName: "pet",
		Options:    models.GenerationOptions{GenerateModels: true},
	}
	require.NoError(t, store.Upsert(entry))

	got, exists, err := store.Get("petstore")
	require.NoError(t, err)
	require.True(t, exists)
	assert.Equal(t, "pet", got.EntityName)
	assert.Equal(t, "id", got.IDField)

	// Upsert replaces the full record; stale options do not survive.
	entry.Options = models.GenerationOptions{GenerateAPI: true}
	entry.EntityName = "animal"
	require.NoError(t, store.Upsert(entry))

	got, exists, err = store.Get("petstore")
	require.NoError(t, err)
	require.True(t, exists)
	assert.Equal(t, "animal", got.EntityName)
	assert.False(t, got.Options.GenerateModels)
	assert.True(t, got.Options.GenerateAPI)

	entries, err := store.Load()
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestStore_Upsert_RequiresName(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Bootstrap())
	require.Error(t, store.Upsert(models.RegistryEntry{}))
}

func TestStore_ListActive(t *testing.T) {
	store := newTestStore(t)
	writeRegistry(t, store, `{"apis": [
		{"name": "petstore", "options": {"generate_models": true}},
		{"name": "dormant"},
		{"name": "orders", "options": {"generate_api": true}}
	]}`)

	active, err := store.ListActive()
	require.NoError(t, err)
	require.Len(t, active, 2)
	assert.Equal(t, "petstore", active[0].Name)
	assert.Equal(t, "orders", active[1].Name, "registry order is preserved")
}
