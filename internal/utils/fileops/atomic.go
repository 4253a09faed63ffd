package fileops

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// WriteFileAtomic writes content to a temporary file in the same directory
// and renames it over the target, so readers never observe a partial write.
func (fo *FileOps) WriteFileAtomic(path string, content []byte, perm os.FileMode) error {
	cleanPath, err := fo.ValidateAndClean(path)
	if err != nil {
		return err
	}

	dir := filepath.Dir(cleanPath)
	if err := fo.EnsureDir(dir); err != nil {
		return err
	}

	tmpPath := filepath.Join(dir, fmt.Sprintf(".%s.%s.tmp", filepath.Base(cleanPath), uuid.NewString()[:8]))
	if err := os.WriteFile(tmpPath, content, perm); err != nil {
		return fmt.Errorf("failed to write temp file %s: %w", tmpPath, err)
	}

	if err := os.Rename(tmpPath, cleanPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to replace %s: %w", cleanPath, err)
	}

	fo.contentCache.Delete(cleanPath)
	return nil
}
