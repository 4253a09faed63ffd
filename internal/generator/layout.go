package generator

import (
	"path/filepath"
	"strings"
	"unicode"
)

// OutputDir returns the generated-artifact directory for an API, scoped by
// name so APIs never collide: <root>/<name>_api.
func OutputDir(root, api string) string {
	return filepath.Join(root, PackageName(api))
}

// PackageName derives the Go package name for an API's generated code.
func PackageName(api string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(api) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		} else {
			b.WriteRune('_')
		}
	}
	name := strings.Trim(b.String(), "_")
	if name == "" {
		name = "api"
	}
	return name + "_api"
}

// PascalCase converts an identifier like "pet" or "order_item" to PascalCase.
func PascalCase(name string) string {
	var b strings.Builder
	upperNext := true
	for _, r := range name {
		switch {
		case r == '_' || r == '-' || r == ' ' || r == '.':
			upperNext = true
		case upperNext:
			b.WriteRune(unicode.ToUpper(r))
			upperNext = false
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
