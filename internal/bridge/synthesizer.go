// Package bridge regenerates the single aggregation module that wires all
// active APIs into the host application.
package bridge

import (
	"path"

	"github.com/syncgen/syncgen/internal/generator"
	"github.com/syncgen/syncgen/internal/models"
	"github.com/syncgen/syncgen/internal/templates"
)

// DefaultPackageName is the package the bridge module is emitted into.
const DefaultPackageName = "generatedapis"

// Synthesizer builds the bridge module. Synthesize is a pure function of its
// inputs: identical entries and resolved names, in identical order, yield
// byte-identical output.
type Synthesizer struct {
	modulePath   string // module path of the host project
	generatedRel string // generated output root, relative to the project
	packageName  string
}

// NewSynthesizer creates a bridge synthesizer for the host project.
func NewSynthesizer(modulePath, generatedRel string) *Synthesizer {
	return &Synthesizer{
		modulePath:   modulePath,
		generatedRel: generatedRel,
		packageName:  DefaultPackageName,
	}
}

// Synthesize fully regenerates the bridge module from the active entries, in
// registry order. It never patches the previous bridge file.
func (s *Synthesizer) Synthesize(active []models.RegistryEntry, resolved map[string]models.ResolvedName) (string, error) {
	data := templates.BridgeData{PackageName: s.packageName}

	for _, entry := range active {
		alias := generator.PackageName(entry.Name)
		importPath := path.Join(s.modulePath, s.generatedRel, alias)

		name, hasResolved := resolved[entry.Name]
		exported := entry.Options.GenerateModels && hasResolved && name.Name != ""

		data.Imports = append(data.Imports, templates.BridgeImport{
			Alias:     alias,
			Path:      importPath,
			Anonymous: !exported,
		})
		if exported {
			data.Exports = append(data.Exports, templates.BridgeExport{
				API:      entry.Name,
				Alias:    alias,
				Resolved: name.Name,
			})
		}
	}

	rendered, err := templates.RenderBridge(data)
	if err != nil {
		return "", err
	}
	return templates.Format(s.packageName+".go", rendered)
}
