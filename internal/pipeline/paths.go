package pipeline

import "path/filepath"

// Paths fixes where the pipeline reads and writes inside the host project.
type Paths struct {
	ProjectDir      string
	RegistryFile    string // declarative API registry (JSON)
	HashDir         string // one hash record per API
	SchemasDir      string // local cache for downloaded schemas
	GeneratedRoot   string // generator output, one subdirectory per API
	ModelsDir       string // hand-augmented stored model files
	BridgeFile      string // synthesized aggregation module
	SettingsFile    string // host application settings
	SettingsSection string // section the derived url keys live under
}

// relToProject expresses dir relative to projectDir as a slash path, for use
// in import paths.
func relToProject(projectDir, dir string) (string, error) {
	rel, err := filepath.Rel(projectDir, dir)
	if err != nil {
		return "", err
	}
	return filepath.ToSlash(rel), nil
}

// DefaultPaths returns the conventional layout rooted at projectDir, with
// pipeline state kept under stateDir (usually ".syncgen").
func DefaultPaths(projectDir, stateDir string) Paths {
	state := filepath.Join(projectDir, stateDir)
	return Paths{
		ProjectDir:      projectDir,
		RegistryFile:    filepath.Join(state, "registry.json"),
		HashDir:         filepath.Join(state, "hashes"),
		SchemasDir:      filepath.Join(state, "schemas"),
		GeneratedRoot:   filepath.Join(projectDir, "generated"),
		ModelsDir:       filepath.Join(projectDir, "internal", "models"),
		BridgeFile:      filepath.Join(projectDir, "generatedapis", "generatedapis.go"),
		SettingsFile:    filepath.Join(projectDir, "config", "default.yaml"),
		SettingsSection: "api",
	}
}
