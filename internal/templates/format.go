package templates

import (
	"fmt"

	"golang.org/x/tools/imports"
)

// Format runs goimports over synthesized source so generated files land in
// the tree already formatted, with the import block resolved.
func Format(filename string, src string) (string, error) {
	formatted, err := imports.Process(filename, []byte(src), nil)
	if err != nil {
		return "", fmt.Errorf("synthesized file %s does not format: %w", filename, err)
	}
	return string(formatted), nil
}
