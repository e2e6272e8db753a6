// Package errors renders a single source-position-tagged failure — from
// the lexer, parser, checker, compiler, or interpreter — as CLI-facing
// text with an optional source-line-plus-caret view. It is deliberately
// decoupled from the other packages' own error types: each of those
// already carries its own Kind taxonomy and message; this package only
// needs a message string and a position to render.
package errors

import (
	"fmt"
	"strings"

	"github.com/ky0422/sanetaka/internal/token"
)

// Diagnostic is one staged failure ready for display. Grounded on the
// teacher's internal/errors.CompilerError: a message, a position, the
// source text it came from (for the line+caret view), and an optional
// file name for the header.
type Diagnostic struct {
	Message string
	Pos     token.Position
	Source  string
	File    string
}

// New builds a Diagnostic from a stage's message and position.
func New(message string, pos token.Position, source, file string) *Diagnostic {
	return &Diagnostic{Message: message, Pos: pos, Source: source, File: file}
}

// Error satisfies the error interface with the uncolored rendering.
func (d *Diagnostic) Error() string {
	return d.Format(false)
}

// Format renders the header, the offending source line with a caret
// under the error column, and the message. If color is true, ANSI codes
// highlight the caret and message for terminal output.
func (d *Diagnostic) Format(color bool) string {
	var sb strings.Builder

	if d.File != "" {
		fmt.Fprintf(&sb, "Error in %s:%d:%d\n", d.File, d.Pos.Line, d.Pos.Column)
	} else {
		fmt.Fprintf(&sb, "Error at line %d, column %d\n", d.Pos.Line, d.Pos.Column)
	}

	if line := d.sourceLine(d.Pos.Line); line != "" {
		lineNumStr := fmt.Sprintf("%4d | ", d.Pos.Line)
		sb.WriteString(lineNumStr)
		sb.WriteString(line)
		sb.WriteString("\n")

		col := d.Pos.Column
		if col < 1 {
			col = 1
		}
		sb.WriteString(strings.Repeat(" ", len(lineNumStr)+col-1))
		if color {
			sb.WriteString("\033[1;31m")
		}
		sb.WriteString("^")
		if color {
			sb.WriteString("\033[0m")
		}
		sb.WriteString("\n")
	}

	if color {
		sb.WriteString("\033[1m")
	}
	sb.WriteString(d.Message)
	if color {
		sb.WriteString("\033[0m")
	}

	return sb.String()
}

func (d *Diagnostic) sourceLine(line int) string {
	if d.Source == "" {
		return ""
	}
	lines := strings.Split(d.Source, "\n")
	if line < 1 || line > len(lines) {
		return ""
	}
	return lines[line-1]
}

// FormatAll renders a batch of diagnostics, numbering them when there is
// more than one.
func FormatAll(diags []*Diagnostic, color bool) string {
	if len(diags) == 0 {
		return ""
	}
	if len(diags) == 1 {
		return diags[0].Format(color)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "failed with %d error(s):\n\n", len(diags))
	for i, d := range diags {
		fmt.Fprintf(&sb, "[%d of %d]\n", i+1, len(diags))
		sb.WriteString(d.Format(color))
		if i < len(diags)-1 {
			sb.WriteString("\n\n")
		}
	}
	return sb.String()
}
