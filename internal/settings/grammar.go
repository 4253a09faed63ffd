package settings

import (
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// The settings file is line-oriented text with named sections:
//
//	api:
//	  petstore_url: "https://petstore3.swagger.io/api/v3"
//	  timeout_seconds: 30
//
// Each line is parsed independently; the file as a whole is never rebuilt,
// only spliced, so unrelated formatting is preserved byte for byte.

// keyLine is the participle grammar for one settings line after its leading
// indentation has been split off.
type keyLine struct {
	Key   string  `parser:"@Ident Colon"`
	Value *string `parser:"(@String | @Bare)?"`
}

var lineLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "String", Pattern: `"(\\"|[^"])*"`},
	{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_.-]*`},
	{Name: "Colon", Pattern: `:`},
	{Name: "Bare", Pattern: `[^\s][^\n]*`},
	{Name: "Whitespace", Pattern: `[ \t]+`},
})

var lineParser = participle.MustBuild[keyLine](
	participle.Lexer(lineLexer),
	participle.Elide("Whitespace"),
)

// line is one classified settings line.
type line struct {
	Indent string
	Key    string
	Value  *string
}

// parseLine classifies one raw line. Blank lines, comments, and anything the
// grammar does not recognize return nil; those lines are preserved verbatim
// but never matched against.
func parseLine(raw string) *line {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return nil
	}

	indent := raw[:len(raw)-len(strings.TrimLeft(raw, " \t"))]
	parsed, err := lineParser.ParseString("", strings.TrimRight(raw[len(indent):], " \t"))
	if err != nil {
		return nil
	}
	return &line{Indent: indent, Key: parsed.Key, Value: parsed.Value}
}

// isSectionHeader reports whether a parsed line opens a named section: a
// key with no indentation and no value.
func (l *line) isSectionHeader() bool {
	return l != nil && l.Indent == "" && (l.Value == nil || *l.Value == "")
}

// isEntry reports whether a parsed line is an indented key inside a section.
func (l *line) isEntry() bool {
	return l != nil && l.Indent != ""
}
