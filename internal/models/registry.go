package models

import "strings"

// GenerationOptions control which artifacts the pipeline produces for one API.
type GenerationOptions struct {
	GenerateModels   bool     `json:"generate_models"`
	GenerateAPI      bool     `json:"generate_api"`
	GenerateHandlers bool     `json:"generate_handlers"`
	UpdateRouter     bool     `json:"update_router"`
	IncludeModels    []string `json:"include_models,omitempty"`
	ExcludeModels    []string `json:"exclude_models,omitempty"`
}

// RegistryEntry describes one tracked external API in the registry document.
type RegistryEntry struct {
	Name       string            `json:"name"`
	URL        string            `json:"url"`
	SchemaPath string            `json:"schema_path"`
	EntityName string            `json:"entity_name"`
	IDField    string            `json:"id_field"`
	Options    GenerationOptions `json:"options"`
}

// Active reports whether at least one generation option is enabled.
// Inactive entries are kept in the registry but never processed.
func (e *RegistryEntry) Active() bool {
	o := e.Options
	return o.GenerateModels || o.GenerateAPI || o.GenerateHandlers || o.UpdateRouter
}

// Normalize fills in defaults for optional fields.
func (e *RegistryEntry) Normalize() {
	if e.IDField == "" {
		e.IDField = "id"
	}
	e.Name = strings.TrimSpace(e.Name)
}

// WantsModel reports whether a model name passes the include/exclude filters.
// An empty include list means all models are wanted.
func (e *RegistryEntry) WantsModel(name string) bool {
	for _, excluded := range e.Options.ExcludeModels {
		if strings.EqualFold(excluded, name) {
			return false
		}
	}
	if len(e.Options.IncludeModels) == 0 {
		return true
	}
	for _, included := range e.Options.IncludeModels {
		if strings.EqualFold(included, name) {
			return true
		}
	}
	return false
}

// RemoteSchema reports whether the schema path still points at a remote
// location. Persisted entries always carry a local path, so this is only
// true for an entry that has not been localized yet or for a registry
// edited by hand.
func (e *RegistryEntry) RemoteSchema() bool {
	return strings.HasPrefix(e.SchemaPath, "http://") || strings.HasPrefix(e.SchemaPath, "https://")
}
