package reconcile

import (
	"regexp"
	"strings"
)

// The stored model file has two logical regions. The generated region runs
// from the struct keyword to its closing brace and is always replaceable.
// The manual region starts at the first top-level func declaration and is
// never modified by automation.

var funcLineRe = regexp.MustCompile(`(?m)^func\b`)

// ManualBoundary returns the byte offset where the manual region begins, or
// -1 when the file has no func declaration at all. Comment lines immediately
// above the first func are included in the manual region so doc comments
// survive regeneration.
func ManualBoundary(source string) int {
	loc := funcLineRe.FindStringIndex(source)
	if loc == nil {
		return -1
	}
	return extendOverComments(source, loc[0])
}

// extendOverComments walks backwards from offset over contiguous comment
// lines.
func extendOverComments(source string, offset int) int {
	for {
		lineStart := strings.LastIndexByte(source[:offset], '\n')
		if lineStart < 0 {
			return offset
		}
		prevStart := strings.LastIndexByte(source[:lineStart], '\n') + 1
		prev := strings.TrimSpace(source[prevStart:lineStart])
		if !strings.HasPrefix(prev, "//") {
			return offset
		}
		offset = prevStart
	}
}

// StructBlock locates the struct declaration for typeName and returns its
// text together with its start and end offsets (end is one past the closing
// brace).
func StructBlock(source, typeName string) (block string, start, end int, ok bool) {
	re := regexp.MustCompile(`(?m)^type\s+` + regexp.QuoteMeta(typeName) + `\s+struct\s*\{`)
	loc := re.FindStringIndex(source)
	if loc == nil {
		return "", 0, 0, false
	}

	depth := 0
	for i := loc[0]; i < len(source); i++ {
		switch source[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return source[loc[0] : i+1], loc[0], i + 1, true
			}
		}
	}
	return "", 0, 0, false
}

// RenameType substitutes fromName with toName everywhere it appears as a
// whole identifier, so a pure generator rename never shows up as a change.
func RenameType(source, fromName, toName string) string {
	if fromName == toName {
		return source
	}
	re := regexp.MustCompile(`\b` + regexp.QuoteMeta(fromName) + `\b`)
	return re.ReplaceAllString(source, toName)
}
