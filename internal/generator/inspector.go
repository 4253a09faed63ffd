package generator

import (
	"go/ast"
	"io/fs"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/syncgen/syncgen/internal/models"
	"github.com/syncgen/syncgen/internal/utils/fileops"
)

// legacyNamePrefix is the prefix the generator has been observed to add to
// entity type names. It is only used for the last-resort fallback; the
// inspector always prefers the name it finds in the generated source.
const legacyNamePrefix = "U"

// Inspector discovers the exported type names the generator actually emitted.
// The generator's naming transform is not a contract, so the only reliable
// source is the generated source itself.
type Inspector struct {
	ops *fileops.FileOps
}

// NewInspector creates an artifact inspector.
func NewInspector(ops *fileops.FileOps) *Inspector {
	if ops == nil {
		ops = fileops.NewFileOps()
	}
	return &Inspector{ops: ops}
}

// ResolveExportedName scans the generated output for the exported type
// declaration backing entityName and returns the literal name used. When no
// declaration matches, it falls back to the legacy transform and flags the
// result so callers can warn.
func (ins *Inspector) ResolveExportedName(artifactDir, entityName string) models.ResolvedName {
	naive := PascalCase(entityName)

	var exact, prefixed string
	_ = filepath.WalkDir(artifactDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		if !strings.HasSuffix(path, ".go") || strings.HasSuffix(path, "_test.go") {
			return nil
		}

		file, parseErr := ins.ops.ParseGoFile(path)
		if parseErr != nil {
			return nil // unparseable generated file, keep scanning the rest
		}
		for _, name := range exportedTypeNames(file) {
			switch {
			case strings.EqualFold(name, naive):
				exact = name
			case matchesWithPrefix(name, naive):
				if prefixed == "" {
					prefixed = name
				}
			}
		}
		return nil
	})

	if exact != "" {
		return models.ResolvedName{Name: exact}
	}
	if prefixed != "" {
		return models.ResolvedName{Name: prefixed}
	}
	return models.ResolvedName{Name: legacyTransform(naive), Fallback: true}
}

// legacyTransform mimics the generator's observed naming: the prefix is
// glued onto the entity name, which loses its own capital ("pet" becomes
// "Upet", not "UPet").
func legacyTransform(naive string) string {
	return legacyNamePrefix + lowerFirst(naive)
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToLower(r[0])
	return string(r)
}

// exportedTypeNames returns the names of all exported type declarations in a
// file, covering both struct definitions and alias re-exports.
func exportedTypeNames(file *ast.File) []string {
	var names []string
	for _, decl := range file.Decls {
		genDecl, ok := decl.(*ast.GenDecl)
		if !ok {
			continue
		}
		for _, spec := range genDecl.Specs {
			typeSpec, ok := spec.(*ast.TypeSpec)
			if !ok {
				continue
			}
			if typeSpec.Name != nil && typeSpec.Name.IsExported() {
				names = append(names, typeSpec.Name.Name)
			}
		}
	}
	return names
}

// matchesWithPrefix reports whether name is the naive entity name with a
// short generator-added prefix, e.g. "Upet" for "Pet". The prefix window is
// kept small so unrelated types like "Carpet" never match "Pet".
func matchesWithPrefix(name, naive string) bool {
	lower, target := strings.ToLower(name), strings.ToLower(naive)
	if !strings.HasSuffix(lower, target) {
		return false
	}
	extra := len(lower) - len(target)
	return extra > 0 && extra <= 2
}
