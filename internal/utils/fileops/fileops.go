package fileops

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strings"
)

// FileOps provides a unified interface for the file operations the pipeline
// performs, combining path validation, content caching, and Go parsing.
type FileOps struct {
	contentCache *Cache[string]
	fileSet      *token.FileSet
}

// NewFileOps creates a new FileOps instance.
func NewFileOps() *FileOps {
	return &FileOps{
		contentCache: NewCache[string](),
		fileSet:      token.NewFileSet(),
	}
}

// ValidateAndClean validates a path and returns the cleaned form.
func (fo *FileOps) ValidateAndClean(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.ContainsRune(path, '\x00') {
		return "", fmt.Errorf("path contains null byte: %q", path)
	}
	return filepath.Clean(path), nil
}

// ReadFile reads a file and returns its contents as a string with caching.
func (fo *FileOps) ReadFile(path string) (string, error) {
	cleanPath, err := fo.ValidateAndClean(path)
	if err != nil {
		return "", err
	}

	if cached, ok := fo.contentCache.Get(cleanPath); ok {
		return cached, nil
	}

	content, err := os.ReadFile(cleanPath)
	if err != nil {
		return "", fmt.Errorf("failed to read file %s: %w", cleanPath, err)
	}

	contentStr := string(content)
	fo.contentCache.Set(cleanPath, contentStr)
	return contentStr, nil
}

// WriteFile writes content to a file, invalidating any cached copy.
func (fo *FileOps) WriteFile(path string, content []byte, perm os.FileMode) error {
	cleanPath, err := fo.ValidateAndClean(path)
	if err != nil {
		return err
	}
	if err := os.WriteFile(cleanPath, content, perm); err != nil {
		return fmt.Errorf("failed to write file %s: %w", cleanPath, err)
	}
	fo.contentCache.Delete(cleanPath)
	return nil
}

// ParseGoFile parses a Go source file with caching of file content.
func (fo *FileOps) ParseGoFile(path string) (*ast.File, error) {
	content, err := fo.ReadFile(path)
	if err != nil {
		return nil, err
	}
	file, err := parser.ParseFile(fo.fileSet, path, content, parser.ParseComments)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return file, nil
}

// ParseGoSource parses Go source code from a string.
func (fo *FileOps) ParseGoSource(filename, source string) (*ast.File, error) {
	file, err := parser.ParseFile(fo.fileSet, filename, source, parser.ParseComments)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filename, err)
	}
	return file, nil
}

// FileSet returns the token.FileSet used for parsing.
func (fo *FileOps) FileSet() *token.FileSet {
	return fo.fileSet
}

// EnsureDir creates a directory and its parents if they do not exist.
func (fo *FileOps) EnsureDir(dir string) error {
	cleanDir, err := fo.ValidateAndClean(dir)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(cleanDir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", cleanDir, err)
	}
	return nil
}

// Exists checks if a path exists.
func (fo *FileOps) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// IsDir checks if a path is a directory.
func (fo *FileOps) IsDir(path string) bool {
	stat, err := os.Stat(path)
	return err == nil && stat.IsDir()
}

// Invalidate removes a specific file from the content cache.
func (fo *FileOps) Invalidate(path string) {
	fo.contentCache.Delete(path)
}
