// Package semantic implements the two-phase resolver described in
// spec.md §4.3: declaration registration (topological class ordering,
// symbol table construction) followed by body analysis (type attachment,
// reference-chain resolution, type checking).
package semantic

import (
	"github.com/cwbudde/minijavac/internal/ast"
	"github.com/cwbudde/minijavac/internal/symtab"
)

// Built-in class names registered before any user class (spec.md §4.3
// Phase 1 step 2).
const (
	builtinSystem   = "System"
	builtinIntArray = "int[]"
)

// Analyzer walks a parsed Project and populates a Registry in place. The
// analyzer creates the registry and hands it out through Registry() (spec.md
// §9 "Class-table registry as global" — passed explicitly rather than held
// as a package singleton).
type Analyzer struct {
	project  *ast.Project
	registry *symtab.Registry
}

// NewAnalyzer creates an analyzer over project with a fresh registry.
func NewAnalyzer(project *ast.Project) *Analyzer {
	return &Analyzer{project: project, registry: symtab.NewRegistry()}
}

// Registry returns the class-table registry, populated once Analyze
// succeeds. The code generator consumes it read-only.
func (a *Analyzer) Registry() *symtab.Registry { return a.registry }

// methodCtx threads per-method state (currently just the declared return
// type) through body analysis.
type methodCtx struct {
	returnType string
}

// Analyze runs both phases in order, failing fast on the first diagnostic.
func (a *Analyzer) Analyze() error {
	order, err := a.topologicalOrder()
	if err != nil {
		return err
	}

	a.registerBuiltins()
	for _, name := range order {
		if err := a.registerClass(a.project.Class(name)); err != nil {
			return err
		}
	}

	for _, name := range order {
		if err := a.analyzeClassBody(a.project.Class(name)); err != nil {
			return err
		}
	}

	return nil
}
