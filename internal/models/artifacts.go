package models

// ResolvedName is the exported type name the generator actually emitted for
// a primary entity. Fallback is set when the name could not be discovered in
// the generated source and a naive transform was used instead; consumers
// should warn when they see it.
type ResolvedName struct {
	Name     string
	Fallback bool
}

// ArtifactSet describes the output of one generator invocation.
type ArtifactSet struct {
	APIName     string       // registry entry name this set belongs to
	Root        string       // root directory of the generated output
	PackageName string       // Go package name of the generated code
	Files       []string     // discovered generated files, relative to Root
	Resolved    ResolvedName // actual exported name of the primary entity
}

// DiffResult classifies the outcome of reconciling one model.
type DiffResult int

const (
	DiffUnchanged DiffResult = iota
	DiffNew
	DiffChanged
	DiffError
)

// String returns the human-readable form used in summaries.
func (d DiffResult) String() string {
	switch d {
	case DiffUnchanged:
		return "unchanged"
	case DiffNew:
		return "new"
	case DiffChanged:
		return "changed"
	case DiffError:
		return "error"
	default:
		return "unknown"
	}
}
