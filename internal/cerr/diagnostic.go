// Package cerr defines the single structured diagnostic type shared by the
// parser, semantic analyzer, and code generator (spec.md §7). Named cerr
// rather than errors to avoid shadowing the standard library package at
// call sites that need both.
package cerr

import (
	"fmt"

	"github.com/cwbudde/minijavac/internal/token"
)

// Category classifies a Diagnostic per the table in spec.md §7.
type Category string

const (
	Syntax         Category = "syntax"
	Declaration    Category = "declaration"
	Inheritance    Category = "inheritance"
	NameResolution Category = "name_resolution"
	TypeCheck      Category = "type_check"
	CodeGen        Category = "codegen"
)

// Diagnostic is a single fatal compiler error. Every diagnostic names the
// offending lexeme (when applicable) via Message; Pos locates it.
type Diagnostic struct {
	Category Category
	Message  string
	Pos      token.Position
	HasPos   bool
}

func (d *Diagnostic) Error() string {
	if d.HasPos {
		return fmt.Sprintf("%s: %s", d.Pos, d.Message)
	}
	return d.Message
}

// New creates a positioned diagnostic.
func New(category Category, pos token.Position, format string, args ...any) *Diagnostic {
	return &Diagnostic{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
		Pos:      pos,
		HasPos:   true,
	}
}

// NewUnpositioned creates a diagnostic with no source location: used where
// no single token can be blamed, such as cyclic inheritance found during
// topological sort, syntax errors at end of input, and internal errors on
// unsupported nodes.
func NewUnpositioned(category Category, format string, args ...any) *Diagnostic {
	return &Diagnostic{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}
