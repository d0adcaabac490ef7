// errors.go: positioned error types and caret-snippet rendering.
//
// Lexer and parser errors carry a 1-based line and a 0-based column.
// WrapErrorWithSource turns them into a readable multi-line snippet with a
// caret under the offending column, plain text only. Any other error is
// returned unchanged.
package boo

import (
	"fmt"
	"strings"
)

// LexError reports a character the lexer could not tokenize.
type LexError struct {
	Line int // 1-based
	Col  int // 0-based
	Msg  string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("LEXICAL ERROR at %d:%d: %s", e.Line, e.Col+1, e.Msg)
}

// ParseError reports a token sequence the parser could not accept.
type ParseError struct {
	Line int // 1-based
	Col  int // 0-based
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("PARSE ERROR at %d:%d: %s", e.Line, e.Col+1, e.Msg)
}

// WrapErrorWithSource augments lex and parse errors with a caret-annotated
// snippet of src. Other errors pass through untouched.
func WrapErrorWithSource(err error, src string) error {
	switch e := err.(type) {
	case *LexError:
		return fmt.Errorf("%s", prettyErrorString(src, "LEXICAL ERROR", e.Line, e.Col+1, e.Msg))
	case *ParseError:
		return fmt.Errorf("%s", prettyErrorString(src, "PARSE ERROR", e.Line, e.Col+1, e.Msg))
	default:
		return err
	}
}

// prettyErrorString builds a snippet with a header, up to one line of
// context either side, and a caret. Coordinates are 1-based here and
// clamped to the source bounds.
func prettyErrorString(src, header string, line, col int, msg string) string {
	lines := strings.Split(src, "\n")
	if line < 1 {
		line = 1
	}
	if col < 1 {
		col = 1
	}
	if len(lines) == 0 {
		lines = []string{""}
	}
	if line > len(lines) {
		line = len(lines)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s at %d:%d: %s\n\n", header, line, col, msg)
	if line > 1 {
		fmt.Fprintf(&b, "%4d | %s\n", line-1, lines[line-2])
	}
	fmt.Fprintf(&b, "%4d | %s\n", line, lines[line-1])
	fmt.Fprintf(&b, "     | %s^\n", strings.Repeat(" ", col-1))
	if line < len(lines) {
		fmt.Fprintf(&b, "%4d | %s\n", line+1, lines[line])
	}
	return b.String()
}
