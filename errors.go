// errors.go
//
// ParseError pairs a parser diagnostic with the source position it was
// recorded at. Parser.Errors() still returns plain strings — that format
// is load-bearing for the REPL's "parser errors:" block — but a caller
// holding the whole source can show more: a caret pointing at the offending column, the way a
// compiler would render it. RenderDiagnostic produces that richer form
// from the same data.
package mlang

import (
	"fmt"
	"strings"
)

// ParseError is one diagnostic recorded during parsing, carrying the
// 1-based line and column of the token that triggered it.
type ParseError struct {
	Line int
	Col  int
	Msg  string
}

func (e ParseError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Col, e.Msg)
}

// RenderDiagnostic formats a ParseError against src as a snippet with up
// to one line of context on either side and a caret under the column.
func RenderDiagnostic(src string, e ParseError) string {
	lines := strings.Split(src, "\n")
	line, col := e.Line, e.Col
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
	fmt.Fprintf(&b, "PARSE ERROR at %d:%d: %s\n\n", line, col, e.Msg)
	if line > 1 {
		fmt.Fprintf(&b, "%4d | %s\n", line-1, lines[line-2])
	}
	fmt.Fprintf(&b, "%4d | %s\n", line, lines[line-1])
	caretPad := col - 1
	if caretPad < 0 {
		caretPad = 0
	}
	fmt.Fprintf(&b, "     | %s^\n", strings.Repeat(" ", caretPad))
	if line < len(lines) {
		fmt.Fprintf(&b, "%4d | %s\n", line+1, lines[line])
	}
	return b.String()
}

// formatParserErrorBlock renders a REPL-style diagnostic block:
//
//	Errors:
//	  parser errors:
//	      <msg 1>
//	      <msg 2>
func formatParserErrorBlock(errs []string) string {
	var b strings.Builder
	b.WriteString("Errors:\n")
	b.WriteString("  parser errors:\n")
	for _, e := range errs {
		fmt.Fprintf(&b, "      %s\n", e)
	}
	return b.String()
}
