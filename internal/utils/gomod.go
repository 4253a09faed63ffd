package utils

import (
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/mod/modfile"
)

// ModulePath extracts the module path from the go.mod of the target project.
// The bridge synthesizer needs it to build import paths for generated
// packages.
func ModulePath(projectDir string) (string, error) {
	goModPath, err := FindGoMod(projectDir)
	if err != nil {
		return "", err
	}

	content, err := os.ReadFile(goModPath)
	if err != nil {
		return "", fmt.Errorf("failed to read go.mod file: %w", err)
	}

	modFile, err := modfile.Parse(goModPath, content, nil)
	if err != nil {
		return "", fmt.Errorf("failed to parse go.mod file: %w", err)
	}
	if modFile.Module == nil {
		return "", fmt.Errorf("no module declaration found in %s", goModPath)
	}
	return modFile.Module.Mod.Path, nil
}

// FindGoMod searches for a go.mod file starting from dir and walking up.
func FindGoMod(dir string) (string, error) {
	currentDir := filepath.Clean(dir)
	for {
		goModPath := filepath.Join(currentDir, "go.mod")
		if _, err := os.Stat(goModPath); err == nil {
			return goModPath, nil
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			break
		}
		currentDir = parentDir
	}
	return "", fmt.Errorf("go.mod file not found in %s or any parent directory", dir)
}
