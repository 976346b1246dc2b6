// Package comment removes // and /* */ comments from source lines.
//
// The stripper is string-literal aware: comment markers inside "..."
// or '...' are left alone, and escaped quotes (\" and \') do not end
// a string. Block-comment state carries across calls, so a /* opened
// on one line suppresses following lines until the matching */ is
// seen.
package comment

import "strings"

// Stripper removes comments from source lines, one line at a time.
// The zero value is ready to use. A single Stripper must be used for
// all lines of one parse so that block-comment state is carried
// between them.
type Stripper struct {
	inBlock bool
}

// InBlock reports whether the scan position is currently inside an
// unterminated block comment.
func (s *Stripper) InBlock() bool {
	return s.inBlock
}

// Reset clears any carried block-comment state.
func (s *Stripper) Reset() {
	s.inBlock = false
}

// Strip returns line with comments removed. A // comment truncates
// the rest of the line; a /* */ comment is excised with the
// surrounding text concatenated. When a block comment is left open,
// the remainder of the line is dropped and later calls keep dropping
// text until the closing marker.
func (s *Stripper) Strip(line string) string {
	i := 0
	if s.inBlock {
		end := strings.Index(line, "*/")
		if end < 0 {
			return ""
		}
		s.inBlock = false
		i = end + 2
	}

	var b strings.Builder
	inString := false
	var quote byte
	for i < len(line) {
		c := line[i]
		switch {
		case !inString && (c == '"' || c == '\''):
			inString = true
			quote = c
		case inString && c == quote && (i == 0 || line[i-1] != '\\'):
			inString = false
		case !inString && c == '/' && i+1 < len(line) && line[i+1] == '/':
			return b.String()
		case !inString && c == '/' && i+1 < len(line) && line[i+1] == '*':
			end := strings.Index(line[i+2:], "*/")
			if end < 0 {
				s.inBlock = true
				return b.String()
			}
			i += 2 + end + 2
			continue
		}
		b.WriteByte(c)
		i++
	}
	return b.String()
}
