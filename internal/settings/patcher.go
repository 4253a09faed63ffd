// Package settings idempotently patches the host application's settings
// file. It only ever appends one key line under a named section; it never
// reformats or reorders anything else.
package settings

import (
	"fmt"
	"os"
	"strings"

	"github.com/syncgen/syncgen/internal/models"
	"github.com/syncgen/syncgen/internal/utils/fileops"
)

const defaultEntryIndent = "  "

// Patcher inserts derived keys into the settings file.
type Patcher struct {
	path string
	ops  *fileops.FileOps
}

// NewPatcher creates a patcher for the settings file at path.
func NewPatcher(path string, ops *fileops.FileOps) *Patcher {
	if ops == nil {
		ops = fileops.NewFileOps()
	}
	return &Patcher{path: path, ops: ops}
}

// EnsureKey makes sure `key: "value"` exists under the first section named
// section, appending it as the section's last entry when missing. The call
// is idempotent: when the key already exists, nothing is written.
func (p *Patcher) EnsureKey(section, key, value string) error {
	raw, err := os.ReadFile(p.path)
	if err != nil {
		return models.NewConfigurationError(
			fmt.Sprintf("cannot read settings file %s", p.path), err)
	}

	content, changed := EnsureKeyInContent(string(raw), section, key, value)
	if !changed {
		return nil
	}

	if err := p.ops.WriteFileAtomic(p.path, []byte(content), 0644); err != nil {
		return models.NewConfigurationError(
			fmt.Sprintf("cannot write settings file %s", p.path), err)
	}
	return nil
}

// EnsureKeyInContent is the pure splice behind EnsureKey. It returns the new
// content and whether anything changed.
func EnsureKeyInContent(content, section, key, value string) (string, bool) {
	lines := strings.Split(content, "\n")

	sectionStart := -1
	lastEntry := -1
	indent := defaultEntryIndent

	for i, raw := range lines {
		parsed := parseLine(raw)
		if parsed == nil {
			continue
		}

		if sectionStart < 0 {
			if parsed.isSectionHeader() && parsed.Key == section {
				sectionStart = i
				lastEntry = i
			}
			continue
		}

		// Inside the target section: a new top-level header ends it.
		if parsed.isSectionHeader() || parsed.Indent == "" {
			break
		}
		if parsed.isEntry() {
			if parsed.Key == key {
				return content, false
			}
			lastEntry = i
			indent = parsed.Indent
		}
	}

	newLine := fmt.Sprintf("%s%s: %q", indent, key, value)

	if sectionStart < 0 {
		// No matching section yet; append one at the end of the file.
		out := strings.TrimRight(content, "\n")
		if out != "" {
			out += "\n"
		}
		return out + "\n" + section + ":\n" + newLine + "\n", true
	}

	patched := make([]string, 0, len(lines)+1)
	patched = append(patched, lines[:lastEntry+1]...)
	patched = append(patched, newLine)
	patched = append(patched, lines[lastEntry+1:]...)
	return strings.Join(patched, "\n"), true
}
