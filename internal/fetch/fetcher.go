// Package fetch makes remote schemas local. The registry invariant is that
// persisted entries always carry a local schema path; remote URLs are
// downloaded exactly once, at add time.
package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/goccy/go-yaml"

	"github.com/syncgen/syncgen/internal/models"
	"github.com/syncgen/syncgen/internal/utils/fileops"
)

// Fetcher downloads remote schema documents into the local schema cache.
type Fetcher struct {
	client     *http.Client
	schemasDir string
	ops        *fileops.FileOps
}

// NewFetcher creates a fetcher that stores downloads under schemasDir.
func NewFetcher(schemasDir string, ops *fileops.FileOps) *Fetcher {
	if ops == nil {
		ops = fileops.NewFileOps()
	}
	return &Fetcher{
		client:     &http.Client{Timeout: 60 * time.Second},
		schemasDir: schemasDir,
		ops:        ops,
	}
}

// Localize returns a local schema path for the entry. Local paths pass
// through untouched after a sanity parse; remote URLs are downloaded to
// <schemasDir>/<name>.<ext> and that path is returned.
func (f *Fetcher) Localize(ctx context.Context, entry models.RegistryEntry) (string, error) {
	if !entry.RemoteSchema() {
		if err := ValidateSchema(entry.SchemaPath); err != nil {
			return "", models.NewSchemaUnavailableError(entry.Name, "schema failed validation", err)
		}
		return entry.SchemaPath, nil
	}

	localPath := filepath.Join(f.schemasDir, entry.Name+schemaExt(entry.SchemaPath))
	if err := f.download(ctx, entry.SchemaPath, localPath); err != nil {
		return "", models.NewSchemaUnavailableError(entry.Name,
			fmt.Sprintf("cannot download schema from %s", entry.SchemaPath), err)
	}
	if err := ValidateSchema(localPath); err != nil {
		return "", models.NewSchemaUnavailableError(entry.Name, "downloaded schema failed validation", err)
	}
	return localPath, nil
}

func (f *Fetcher) download(ctx context.Context, rawURL, dest string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	return f.ops.WriteFileAtomic(dest, body, 0644)
}

// schemaExt derives the cached file extension from the URL path, defaulting
// to .yaml.
func schemaExt(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return ".yaml"
	}
	switch ext := strings.ToLower(path.Ext(parsed.Path)); ext {
	case ".json", ".yaml", ".yml":
		return ext
	default:
		return ".yaml"
	}
}

// ValidateSchema does a sanity parse of a schema document so corrupt files
// are rejected before the generator ever runs.
func ValidateSchema(schemaPath string) error {
	raw, err := os.ReadFile(schemaPath)
	if err != nil {
		return err
	}

	var doc interface{}
	if strings.ToLower(filepath.Ext(schemaPath)) == ".json" {
		if err := json.Unmarshal(raw, &doc); err != nil {
			return fmt.Errorf("schema is not valid JSON: %w", err)
		}
		return nil
	}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("schema is not valid YAML: %w", err)
	}
	return nil
}
