// Package errors formats compiler diagnostics with source context: the
// offending line, a caret under the column, and the message. Adapted from
// the teacher's presentation-layer error formatter.
package errors

import (
	"fmt"
	"strings"

	"github.com/cwbudde/minijavac/internal/cerr"
)

// CompilerError pairs a Diagnostic with the source text needed to render it.
type CompilerError struct {
	Diagnostic *cerr.Diagnostic
	Source     string
	File       string
}

// NewCompilerError wraps a diagnostic for presentation.
func NewCompilerError(d *cerr.Diagnostic, source, file string) *CompilerError {
	return &CompilerError{Diagnostic: d, Source: source, File: file}
}

// Error implements the error interface.
func (e *CompilerError) Error() string {
	return e.Format(false)
}

// Format renders the error with a source line and caret. If color is true,
// ANSI codes highlight the caret.
func (e *CompilerError) Format(color bool) string {
	var sb strings.Builder

	if e.File != "" {
		sb.WriteString(fmt.Sprintf("Error in %s", e.File))
	} else {
		sb.WriteString("Error")
	}
	if e.Diagnostic.HasPos {
		sb.WriteString(fmt.Sprintf(" at %d:%d", e.Diagnostic.Pos.Line, e.Diagnostic.Pos.Column))
	}
	sb.WriteString("\n")

	if e.Diagnostic.HasPos {
		if line := e.sourceLine(e.Diagnostic.Pos.Line); line != "" {
			prefix := fmt.Sprintf("%4d | ", e.Diagnostic.Pos.Line)
			sb.WriteString(prefix)
			sb.WriteString(line)
			sb.WriteString("\n")

			sb.WriteString(strings.Repeat(" ", len(prefix)+e.Diagnostic.Pos.Column-1))
			if color {
				sb.WriteString("\033[1;31m")
			}
			sb.WriteString("^")
			if color {
				sb.WriteString("\033[0m")
			}
			sb.WriteString("\n")
		}
	}

	if color {
		sb.WriteString("\033[1m")
	}
	sb.WriteString(e.Diagnostic.Message)
	if color {
		sb.WriteString("\033[0m")
	}

	return sb.String()
}

func (e *CompilerError) sourceLine(line int) string {
	if line <= 0 {
		return ""
	}
	lines := strings.Split(e.Source, "\n")
	if line > len(lines) {
		return ""
	}
	return lines[line-1]
}
