package reconcile

import "strings"

// Normalize strips comments and all whitespace from a source snippet so two
// struct blocks can be compared structurally. Formatting, comment churn, and
// field alignment never count as drift.
func Normalize(source string) string {
	var b strings.Builder
	b.Grow(len(source))

	const (
		code = iota
		lineComment
		blockComment
		dquote
		bquote
	)
	state := code

	for i := 0; i < len(source); i++ {
		c := source[i]
		switch state {
		case code:
			switch {
			case c == '/' && i+1 < len(source) && source[i+1] == '/':
				state = lineComment
				i++
			case c == '/' && i+1 < len(source) && source[i+1] == '*':
				state = blockComment
				i++
			case c == '"':
				state = dquote
				b.WriteByte(c)
			case c == '`':
				state = bquote
				b.WriteByte(c)
			case c == ' ' || c == '\t' || c == '\n' || c == '\r':
				// dropped
			default:
				b.WriteByte(c)
			}
		case lineComment:
			if c == '\n' {
				state = code
			}
		case blockComment:
			if c == '*' && i+1 < len(source) && source[i+1] == '/' {
				state = code
				i++
			}
		case dquote:
			b.WriteByte(c)
			if c == '\\' && i+1 < len(source) {
				i++
				b.WriteByte(source[i])
			} else if c == '"' {
				state = code
			}
		case bquote:
			b.WriteByte(c)
			if c == '`' {
				state = code
			}
		}
	}
	return b.String()
}
