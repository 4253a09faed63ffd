package registry

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/syncgen/syncgen/internal/utils/fileops"
)

// HashStore persists the content hash of the last successfully processed
// schema, one file per API. It lives apart from the registry so hash history
// survives hand edits to the registry document.
type HashStore struct {
	dir string
	ops *fileops.FileOps
}

// NewHashStore creates a hash store rooted at dir.
func NewHashStore(dir string, ops *fileops.FileOps) *HashStore {
	if ops == nil {
		ops = fileops.NewFileOps()
	}
	return &HashStore{dir: dir, ops: ops}
}

// Get returns the stored hash for an API, or ok=false when no prior run has
// recorded one.
func (h *HashStore) Get(api string) (hash string, ok bool, err error) {
	raw, err := os.ReadFile(h.recordPath(api))
	if os.IsNotExist(err) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read hash record for %s: %w", api, err)
	}
	return strings.TrimSpace(string(raw)), true, nil
}

// Put records a hash for an API. Callers must only do this after the full
// per-API sub-pipeline has succeeded; an optimistic write would let a
// partially-applied generation masquerade as up to date.
func (h *HashStore) Put(api, hash string) error {
	if err := h.ops.EnsureDir(h.dir); err != nil {
		return err
	}
	return h.ops.WriteFileAtomic(h.recordPath(api), []byte(hash+"\n"), 0644)
}

func (h *HashStore) recordPath(api string) string {
	return filepath.Join(h.dir, api+".sha256")
}

// HashFile computes the hex SHA-256 digest of a file's contents.
func HashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	digest := sha256.New()
	if _, err := io.Copy(digest, f); err != nil {
		return "", fmt.Errorf("failed to hash %s: %w", path, err)
	}
	return hex.EncodeToString(digest.Sum(nil)), nil
}
