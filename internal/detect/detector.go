package detect

import (
	"fmt"
	"os"

	"github.com/syncgen/syncgen/internal/generator"
	"github.com/syncgen/syncgen/internal/models"
	"github.com/syncgen/syncgen/internal/registry"
)

// Decision explains whether an API needs regeneration and why.
type Decision struct {
	Regenerate  bool
	Reason      string
	CurrentHash string // hash of the schema as it is on disk right now
}

// Detector decides whether regeneration is required for an API by comparing
// the schema's content hash against the last recorded one.
type Detector struct {
	hashes        *registry.HashStore
	generatedRoot string
}

// NewDetector creates a change detector.
func NewDetector(hashes *registry.HashStore, generatedRoot string) *Detector {
	return &Detector{hashes: hashes, generatedRoot: generatedRoot}
}

// ShouldRegenerate applies the skip rule: regeneration is skipped only when
// force is off, a prior hash exists and matches, and the artifact directory
// is present. A missing artifact directory forces regeneration even with a
// matching hash, guarding against interrupted prior runs.
func (d *Detector) ShouldRegenerate(entry models.RegistryEntry, force bool) (Decision, error) {
	if _, err := os.Stat(entry.SchemaPath); err != nil {
		return Decision{}, models.NewSchemaUnavailableError(entry.Name,
			fmt.Sprintf("schema file %s is not readable", entry.SchemaPath), err)
	}

	currentHash, err := registry.HashFile(entry.SchemaPath)
	if err != nil {
		return Decision{}, models.NewSchemaUnavailableError(entry.Name,
			fmt.Sprintf("cannot hash schema file %s", entry.SchemaPath), err)
	}

	if force {
		return Decision{Regenerate: true, Reason: "forced", CurrentHash: currentHash}, nil
	}

	storedHash, ok, err := d.hashes.Get(entry.Name)
	if err != nil {
		return Decision{}, models.NewSchemaUnavailableError(entry.Name, "cannot read hash record", err)
	}
	if !ok {
		return Decision{Regenerate: true, Reason: "no prior hash recorded", CurrentHash: currentHash}, nil
	}
	if storedHash != currentHash {
		return Decision{Regenerate: true, Reason: "schema changed", CurrentHash: currentHash}, nil
	}

	artifactDir := generator.OutputDir(d.generatedRoot, entry.Name)
	if stat, err := os.Stat(artifactDir); err != nil || !stat.IsDir() {
		return Decision{Regenerate: true, Reason: "artifact directory missing", CurrentHash: currentHash}, nil
	}

	return Decision{Regenerate: false, Reason: "schema unchanged", CurrentHash: currentHash}, nil
}
