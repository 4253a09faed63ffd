package bridge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syncgen/syncgen/internal/models"
)

func activeEntries() []models.RegistryEntry {
	return []models.RegistryEntry{
		{
			Name:       "petstore",
			EntityName: "pet",
			Options:    models.GenerationOptions{GenerateModels: true},
		},
		{
			Name:       "orders",
			EntityName: "order",
			Options:    models.GenerationOptions{GenerateAPI: true},
		},
	}
}

func TestSynthesizer_Synthesize(t *testing.T) {
	synth := NewSynthesizer("github.com/example/app", "generated")
	resolved := map[string]models.ResolvedName{
		"petstore": {Name: "Upet"},
	}

	content, err := synth.Synthesize(activeEntries(), resolved)
	require.NoError(t, err)

	assert.Contains(t, content, "// Code generated by syncgen. DO NOT EDIT.")
	assert.Contains(t, content, "package generatedapis")

	assert.Contains(t, content, `petstore_api "github.com/example/app/generated/petstore_api"`)
	assert.Contains(t, content, "type Upet = petstore_api.Upet")

	// No model generation for orders, so it is imported for side effects only.
	assert.Contains(t, content, `_ "github.com/example/app/generated/orders_api"`)
	assert.NotContains(t, content, "orders_api.")
}

func TestSynthesizer_Deterministic(t *testing.T) {
	synth := NewSynthesizer("github.com/example/app", "generated")
	resolved := map[string]models.ResolvedName{
		"petstore": {Name: "Upet"},
		"orders":   {Name: "Order"},
	}

	first, err := synth.Synthesize(activeEntries(), resolved)
	require.NoError(t, err)
	second, err := synth.Synthesize(activeEntries(), resolved)
	require.NoError(t, err)
	assert.Equal(t, first, second, "identical inputs yield byte-identical output")
}

func TestSynthesizer_UnresolvedModelEntry(t *testing.T) {
	synth := NewSynthesizer("github.com/example/app", "generated")

	entries := activeEntries()[:1]
	content, err := synth.Synthesize(entries, map[string]models.ResolvedName{})
	require.NoError(t, err)

	// Without a resolved name nothing can be re-exported; the import is
	// still kept so the generated package stays wired into the build.
	assert.Contains(t, content, `_ "github.com/example/app/generated/petstore_api"`)
	assert.NotContains(t, content, "type ")
}

func TestSynthesizer_Empty(t *testing.T) {
	synth := NewSynthesizer("github.com/example/app", "generated")
	content, err := synth.Synthesize(nil, nil)
	require.NoError(t, err)
	assert.Contains(t, content, "package generatedapis")
}
