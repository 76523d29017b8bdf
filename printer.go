// printer.go
//
// The REPL and the file runner both need to put a value or a diagnostic
// block on the terminal in a way a person can read at a glance. Object's
// Inspect() already gives the canonical textual form (the value
// rendering rules); this file adds the terminal-facing layer on top of
// it — colorizing by object kind the way a REPL for a dynamic language
// usually does, and leaving that off entirely when color has been
// disabled.
package mlang

import (
	"strings"

	"github.com/fatih/color"
)

// EnableColor gates all colorizing in this file. The REPL turns it on
// for an interactive terminal; the file runner leaves it off, and so do the
// tests other than the one that checks colorized output.
var EnableColor = false

var (
	colorError  = color.New(color.FgRed, color.Bold)
	colorString = color.New(color.FgGreen)
	colorNumber = color.New(color.FgYellow)
	colorBool   = color.New(color.FgMagenta)
	colorNull   = color.New(color.FgHiBlack)
	colorFunc   = color.New(color.FgCyan)
	colorPrompt = color.New(color.FgBlue, color.Bold)
	colorDiag   = color.New(color.FgRed)
)

func colorize(c *color.Color, s string) string {
	if !EnableColor {
		return s
	}
	return c.Sprint(s)
}

// FormatResult renders an evaluation result the way the REPL echoes it:
// Inspect()'s canonical text, colorized by object kind.
func FormatResult(obj Object) string {
	if obj == nil {
		return ""
	}
	text := obj.Inspect()
	switch obj.Type() {
	case ERROR_OBJ:
		return colorize(colorError, text)
	case STRING_OBJ:
		return colorize(colorString, text)
	case INTEGER_OBJ:
		return colorize(colorNumber, text)
	case BOOLEAN_OBJ:
		return colorize(colorBool, text)
	case NULL_OBJ:
		return colorize(colorNull, text)
	case FUNCTION_OBJ, BUILTIN_OBJ:
		return colorize(colorFunc, text)
	default:
		return text
	}
}

// FormatPrompt returns the REPL's input prompt, colorized when enabled.
func FormatPrompt() string {
	return colorize(colorPrompt, ">> ")
}

// FormatErrorBlock renders a parser-error block the way the REPL and the
// file runner both print it: the plain-text block from
// formatParserErrorBlock, with the whole thing colorized as a unit when
// color is enabled.
func FormatErrorBlock(errs []string) string {
	block := formatParserErrorBlock(errs)
	if !EnableColor {
		return block
	}
	var b strings.Builder
	for _, line := range strings.Split(strings.TrimSuffix(block, "\n"), "\n") {
		b.WriteString(colorDiag.Sprint(line))
		b.WriteByte('\n')
	}
	return b.String()
}

// FormatDiagnostic renders a single rich diagnostic (line/col + source
// snippet + caret), colorizing the caret line when enabled. cmd/mlang does
// not call it: its file runner prints FormatErrorBlock instead.
func FormatDiagnostic(src string, e ParseError) string {
	rendered := RenderDiagnostic(src, e)
	if !EnableColor {
		return rendered
	}
	lines := strings.Split(rendered, "\n")
	for i, line := range lines {
		if strings.Contains(line, "^") {
			lines[i] = colorDiag.Sprint(line)
		}
	}
	return strings.Join(lines, "\n")
}
