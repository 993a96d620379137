// Package diagio renders schema compiler diagnostics to a terminal: a
// caret-pointer line under the offending source for parse errors, clipped
// to the detected terminal width, grounded on Consensys-go-corset's
// pkg/util/termio width-detection pattern and on errs.ParseError's own
// message shape.
package diagio

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/flatdata/schemac/errs"
)

// defaultWidth is used when the output is not a terminal (redirected to a
// file, piped, or running under a test harness) and term.GetSize fails.
const defaultWidth = 100

// TerminalWidth returns the detected width of stdout, or defaultWidth if
// stdout is not a terminal.
func TerminalWidth() int {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return defaultWidth
	}
	w, _, err := term.GetSize(fd)
	if err != nil || w <= 0 {
		return defaultWidth
	}
	return w
}

// Render formats err for terminal display: errs.ParseError gets a
// width-clipped caret-pointer rendering, every other errs.SchemaError gets
// its Kind() as a prefix, and any other error is rendered as-is.
func Render(err error) string {
	if pe, ok := err.(*errs.ParseError); ok {
		return renderParseError(pe, TerminalWidth())
	}
	if se, ok := err.(errs.SchemaError); ok {
		return fmt.Sprintf("%s: %s", se.Kind(), se.Error())
	}
	return err.Error()
}

// renderParseError clips the offending source line (and shifts the caret
// to match) so the rendered diagnostic never exceeds width columns,
// mirroring the original generator's single-line caret message but
// terminal-aware.
func renderParseError(e *errs.ParseError, width int) string {
	source := e.Source
	column := e.Column

	if width > 0 && len(source) > width {
		// Center the clip window on the caret so it stays visible.
		start := column - width/2
		if start < 0 {
			start = 0
		}
		if start+width > len(source) {
			start = len(source) - width
			if start < 0 {
				start = 0
			}
		}
		end := start + width
		if end > len(source) {
			end = len(source)
		}
		source = source[start:end]
		column -= start
	}

	caret := strings.Repeat(" ", max(column-1, 0)) + "^"
	return fmt.Sprintf("Failed to parse the schema. Details below:\n  %s\n  %s\n  %s",
		source, caret, e.Message)
}
