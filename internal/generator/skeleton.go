package generator

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/syncgen/syncgen/internal/models"
)

// subpackages the pipeline may expect inside a generated artifact directory.
const (
	SubpackageAPI      = "api"
	SubpackageModels   = "models"
	SubpackageHandlers = "handlers"
)

// EnsureSkeleton stubs out any subpackage the options request but the
// generator did not emit, so downstream components always see a consistent
// module shape.
func EnsureSkeleton(set *models.ArtifactSet, opts models.GenerationOptions) error {
	wanted := map[string]bool{
		SubpackageAPI:      opts.GenerateAPI,
		SubpackageModels:   opts.GenerateModels,
		SubpackageHandlers: opts.GenerateHandlers,
	}

	for name, want := range wanted {
		if !want {
			continue
		}
		dir := filepath.Join(set.Root, name)
		if hasGoFiles(dir) {
			continue
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("cannot create skeleton directory %s: %w", dir, err)
		}
		stubPath := filepath.Join(dir, name+".go")
		stub := fmt.Sprintf("// Code generated by syncgen. DO NOT EDIT.\n\n// Package %s is a placeholder; the generator produced no %s output yet.\npackage %s\n", name, name, name)
		if err := os.WriteFile(stubPath, []byte(stub), 0644); err != nil {
			return fmt.Errorf("cannot write skeleton stub %s: %w", stubPath, err)
		}
		rel, err := filepath.Rel(set.Root, stubPath)
		if err == nil {
			set.Files = append(set.Files, rel)
		}
	}
	return nil
}

// hasGoFiles reports whether dir exists and contains at least one Go file.
func hasGoFiles(dir string) bool {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return false
	}
	for _, entry := range entries {
		if !entry.IsDir() && filepath.Ext(entry.Name()) == ".go" {
			return true
		}
	}
	return false
}
