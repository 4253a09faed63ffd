package registry

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/syncgen/syncgen/internal/models"
	"github.com/syncgen/syncgen/internal/utils/fileops"
)

// document is the on-disk shape of the registry file. The template entry
// documents available options for humans editing the file by hand and is
// never processed by the pipeline.
type document struct {
	APIs     []models.RegistryEntry `json:"apis"`
	Template *models.RegistryEntry  `json:"template,omitempty"`
}

// Store loads and persists the declarative list of tracked APIs.
type Store struct {
	path string
	ops  *fileops.FileOps
}

// NewStore creates a registry store backed by the given file path.
func NewStore(path string, ops *fileops.FileOps) *Store {
	if ops == nil {
		ops = fileops.NewFileOps()
	}
	return &Store{path: path, ops: ops}
}

// Path returns the registry file path.
func (s *Store) Path() string {
	return s.path
}

// Bootstrap creates an empty registry document when none exists yet, with a
// template entry documenting the available options.
func (s *Store) Bootstrap() error {
	if _, err := os.Stat(s.path); err == nil {
		return nil
	}
	doc := &document{
		APIs: []models.RegistryEntry{},
		Template: &models.RegistryEntry{
			Name:       "example",
			URL:        "https://api.example.com/v1",
			SchemaPath: "schemas/example.yaml",
			EntityName: "example",
			IDField:    "id",
			Options:    models.GenerationOptions{GenerateModels: true},
		},
	}
	return s.saveDocument(doc)
}

// Load reads all registry entries. A missing or malformed registry file is a
// fatal configuration error: the pipeline cannot proceed without it.
func (s *Store) Load() ([]models.RegistryEntry, error) {
	doc, err := s.loadDocument()
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(doc.APIs))
	for i := range doc.APIs {
		doc.APIs[i].Normalize()
		name := doc.APIs[i].Name
		if seen[name] {
			return nil, models.NewConfigurationError(
				fmt.Sprintf("duplicate registry entry %q in %s", name, s.path), nil)
		}
		seen[name] = true
	}
	return doc.APIs, nil
}

// ListActive returns the entries with at least one generation option
// enabled, in registry order.
func (s *Store) ListActive() ([]models.RegistryEntry, error) {
	entries, err := s.Load()
	if err != nil {
		return nil, err
	}
	active := make([]models.RegistryEntry, 0, len(entries))
	for _, entry := range entries {
		if entry.Active() {
			active = append(active, entry)
		}
	}
	return active, nil
}

// Get returns the entry with the given name.
func (s *Store) Get(name string) (models.RegistryEntry, bool, error) {
	entries, err := s.Load()
	if err != nil {
		return models.RegistryEntry{}, false, err
	}
	for _, entry := range entries {
		if entry.Name == name {
			return entry, true, nil
		}
	}
	return models.RegistryEntry{}, false, nil
}

// Upsert replaces the entry with the same name, or appends a new one. The
// replacement is always the full record; merging fields from the stored
// entry would silently resurrect stale option values.
func (s *Store) Upsert(entry models.RegistryEntry) error {
	if entry.Name == "" {
		return models.NewConfigurationError("registry entry has no name", nil)
	}
	entry.Normalize()

	doc, err := s.loadDocument()
	if err != nil {
		return err
	}

	replaced := false
	for i := range doc.APIs {
		if doc.APIs[i].Name == entry.Name {
			doc.APIs[i] = entry
			replaced = true
			break
		}
	}
	if !replaced {
		doc.APIs = append(doc.APIs, entry)
	}

	return s.saveDocument(doc)
}

func (s *Store) loadDocument() (*document, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return nil, models.NewConfigurationError(
			fmt.Sprintf("cannot read registry file %s", s.path), err).WithSuggestions(
			"Run `syncgen add <name>` to bootstrap the registry",
			"Check the --project path and the SYNCGEN_STATE_DIR environment variable")
	}

	if err := validateDocument(raw); err != nil {
		return nil, models.NewConfigurationError(
			fmt.Sprintf("malformed registry file %s", s.path), err)
	}

	var doc document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, models.NewConfigurationError(
			fmt.Sprintf("malformed registry file %s", s.path), err)
	}
	return &doc, nil
}

func (s *Store) saveDocument(doc *document) error {
	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return models.NewConfigurationError("cannot encode registry document", err)
	}
	raw = append(raw, '\n')

	if err := s.ops.WriteFileAtomic(s.path, raw, 0644); err != nil {
		return models.NewConfigurationError(
			fmt.Sprintf("cannot write registry file %s", s.path), err)
	}
	return nil
}
