package cmd

import (
	"fmt"
	"os"

	"github.com/cwbudde/minijavac/internal/ast"
	"github.com/cwbudde/minijavac/internal/cerr"
	"github.com/cwbudde/minijavac/internal/errors"
	"github.com/cwbudde/minijavac/internal/lexer"
	"github.com/cwbudde/minijavac/internal/parser"
	"github.com/cwbudde/minijavac/internal/semantic"
	"github.com/cwbudde/minijavac/internal/symtab"
)

// readSource loads filename, returning its contents or a wrapped read error.
func readSource(filename string) (string, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return "", fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return string(content), nil
}

// parseSource tokenizes and parses source, reporting any syntax error in
// the teacher's boxed source-context format before returning it.
func parseSource(source, filename string) (*ast.Project, error) {
	tokens := lexer.Tokenize(source)
	project, err := parser.New(tokens).Parse()
	if err != nil {
		reportDiagnostic(err, source, filename)
		return nil, fmt.Errorf("parsing failed")
	}
	return project, nil
}

// analyzeProject runs both analyzer phases, reporting any semantic error
// the same way parseSource reports syntax errors.
func analyzeProject(project *ast.Project, source, filename string) (*symtab.Registry, error) {
	analyzer := semantic.NewAnalyzer(project)
	if err := analyzer.Analyze(); err != nil {
		reportDiagnostic(err, source, filename)
		return nil, fmt.Errorf("semantic analysis failed")
	}
	return analyzer.Registry(), nil
}

// reportDiagnostic prints err to stderr, using the source-context formatter
// when it carries a position (spec.md §7's diagnostic categories).
func reportDiagnostic(err error, source, filename string) {
	if diag, ok := err.(*cerr.Diagnostic); ok {
		fmt.Fprint(os.Stderr, errors.NewCompilerError(diag, source, filename).Format(false))
		fmt.Fprintln(os.Stderr)
		return
	}
	fmt.Fprintln(os.Stderr, err)
}
