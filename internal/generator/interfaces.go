package generator

import (
	"context"

	"github.com/syncgen/syncgen/internal/models"
)

// Config is everything one generator invocation needs.
type Config struct {
	APIName       string   // registry entry name, used for error scoping
	SchemaPath    string   // local path of the schema document
	OutputDir     string   // directory the generator writes into
	PackageName   string   // Go package name for the generated code
	IncludeModels []string // model filter; empty means all models
}

// Invoker abstracts the external schema-to-code generator. The production
// implementation shells out; tests substitute a fake that writes fixtures.
type Invoker interface {
	Invoke(ctx context.Context, cfg Config) (*models.ArtifactSet, error)
}
