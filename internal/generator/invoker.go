package generator

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"

	"github.com/syncgen/syncgen/internal/models"
)

// ExecInvoker runs the external generator as a subprocess. The generator is
// treated as a black box: syncgen only knows its CLI contract (schema in,
// directory out, exit code 0 on success).
type ExecInvoker struct {
	Binary    string   // generator executable, e.g. "openapi-generator"
	ExtraArgs []string // operator-supplied passthrough arguments
}

// NewExecInvoker creates an invoker for the given generator binary.
func NewExecInvoker(binary string, extraArgs ...string) *ExecInvoker {
	return &ExecInvoker{Binary: binary, ExtraArgs: extraArgs}
}

// Invoke runs the generator and discovers what it actually produced. A
// non-zero exit is a GenerationError scoped to this API only.
func (inv *ExecInvoker) Invoke(ctx context.Context, cfg Config) (*models.ArtifactSet, error) {
	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		return nil, models.NewGenerationError(cfg.APIName,
			fmt.Sprintf("cannot create output directory %s", cfg.OutputDir), err)
	}

	args := inv.buildArgs(cfg)
	cmd := exec.CommandContext(ctx, inv.Binary, args...)

	var output bytes.Buffer
	cmd.Stdout = &output
	cmd.Stderr = &output

	if err := cmd.Run(); err != nil {
		return nil, models.NewGenerationError(cfg.APIName,
			fmt.Sprintf("generator exited with an error: %s", tail(output.String(), 12)), err).
			WithSuggestions(
				"Check that the generator binary is installed and on PATH",
				fmt.Sprintf("Run manually: %s %s", inv.Binary, strings.Join(args, " ")))
	}

	files, err := discoverFiles(cfg.OutputDir)
	if err != nil {
		return nil, models.NewGenerationError(cfg.APIName, "cannot scan generator output", err)
	}

	return &models.ArtifactSet{
		APIName:     cfg.APIName,
		Root:        cfg.OutputDir,
		PackageName: cfg.PackageName,
		Files:       files,
	}, nil
}

// buildArgs assembles the generator command line from the invocation config.
func (inv *ExecInvoker) buildArgs(cfg Config) []string {
	args := []string{
		"generate",
		"-i", cfg.SchemaPath,
		"-g", "go",
		"-o", cfg.OutputDir,
		"--package-name", cfg.PackageName,
	}
	if len(cfg.IncludeModels) > 0 {
		args = append(args, "--global-property", "models="+strings.Join(cfg.IncludeModels, ":"))
	}
	return append(args, inv.ExtraArgs...)
}

// discoverFiles collects the generated Go files relative to root, sorted for
// stable reporting.
func discoverFiles(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".go") {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		files = append(files, rel)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// tail returns the last n lines of s, for compact error reporting.
func tail(s string, n int) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, "\n")
}
