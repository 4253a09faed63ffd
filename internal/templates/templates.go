// Package templates holds the text templates for every file syncgen
// synthesizes from scratch: new stored model files and the bridge module.
package templates

import (
	"bytes"
	"fmt"
	"text/template"
)

// storedModelTemplate is the shape of a freshly synthesized model file: a
// short header, the generated struct under its canonical name, and a
// default-value constructor enumerating every field. Everything a human adds
// after the constructor becomes the manual region on later runs.
const storedModelTemplate = `// {{.ModelName}} is generated from the {{.APIName}} API schema.
// The struct definition is kept in sync by syncgen; methods added below it
// are never touched by regeneration.

package models

{{.StructDef}}

// New{{.ModelName}} returns a {{.ModelName}} populated with default values.
func New{{.ModelName}}() {{.ModelName}} {
	return {{.ModelName}}{
{{- range .Fields}}
		{{.Name}}: {{.Zero}},
{{- end}}
	}
}
`

// bridgeTemplate is the single aggregation file wiring all active APIs into
// the host application. It is always fully regenerated, never patched.
const bridgeTemplate = `// Code generated by syncgen. DO NOT EDIT.

// Package {{.PackageName}} bridges the generated API clients into the host
// application.
package {{.PackageName}}

import (
{{- range .Imports}}
{{- if .Anonymous}}
	_ "{{.Path}}"
{{- else}}
	{{.Alias}} "{{.Path}}"
{{- end}}
{{- end}}
)
{{range .Exports}}
// {{.Resolved}} is the primary entity type of the {{.API}} API.
type {{.Resolved}} = {{.Alias}}.{{.Resolved}}
{{end}}`

// ModelField is one struct field of a synthesized model constructor.
type ModelField struct {
	Name string // exported field name
	Zero string // Go literal for the default value
}

// StoredModelData feeds storedModelTemplate.
type StoredModelData struct {
	APIName   string
	ModelName string
	StructDef string // full struct declaration, canonical name already applied
	Fields    []ModelField
}

// BridgeImport is one module reference in the bridge file.
type BridgeImport struct {
	Alias     string
	Path      string
	Anonymous bool // referenced but nothing re-exported
}

// BridgeExport re-exports one resolved primary entity type.
type BridgeExport struct {
	API      string
	Alias    string // import alias of the generated package
	Resolved string // actual exported name discovered by the inspector
}

// BridgeData feeds bridgeTemplate.
type BridgeData struct {
	PackageName string
	Imports     []BridgeImport
	Exports     []BridgeExport
}

var (
	storedModelTmpl = template.Must(template.New("stored_model").Parse(storedModelTemplate))
	bridgeTmpl      = template.Must(template.New("bridge").Parse(bridgeTemplate))
)

// RenderStoredModel renders a new stored model file.
func RenderStoredModel(data StoredModelData) (string, error) {
	var buf bytes.Buffer
	if err := storedModelTmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render stored model %s: %w", data.ModelName, err)
	}
	return buf.String(), nil
}

// RenderBridge renders the bridge module.
func RenderBridge(data BridgeData) (string, error) {
	var buf bytes.Buffer
	if err := bridgeTmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render bridge module: %w", err)
	}
	return buf.String(), nil
}
