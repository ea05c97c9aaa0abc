package semantic

import (
	"github.com/cwbudde/minijavac/internal/ast"
	"github.com/cwbudde/minijavac/internal/cerr"
	"github.com/cwbudde/minijavac/internal/symtab"
)

// registerBuiltins registers the two built-in class tables spec.md §4.3
// Phase 1 step 2 requires before any user class is processed.
func (a *Analyzer) registerBuiltins() {
	system := symtab.New()
	system.ClassName = builtinSystem
	system.Define(symtab.NewVarSymbol("out", builtinSystem))
	system.Define(symtab.NewMethodSymbol("println", []string{"int"}, "void"))
	system.Define(symtab.NewMethodSymbol("print", []string{"int"}, "void"))
	system.Define(symtab.NewMethodSymbol("printf", []string{"int"}, "void"))
	a.registry.Register(builtinSystem, system)

	intArray := symtab.New()
	intArray.ClassName = builtinIntArray
	intArray.Define(symtab.NewVarSymbol("length", "int"))
	a.registry.Register(builtinIntArray, intArray)
}

// registerClass builds class's symbol table, chained to its parent's table
// (spec.md §4.3 Phase 1 step 3), and registers every field and method.
func (a *Analyzer) registerClass(class *ast.Class) error {
	var parent *symtab.Table
	if class.Extends != "" {
		parent = a.registry.Lookup(class.Extends)
	}

	table := symtab.NewEnclosed(parent)
	table.ClassName = class.Name
	table.Define(symtab.NewVarSymbol(builtinSystem, builtinSystem))

	for _, f := range class.Fields {
		if !table.Define(symtab.NewVarSymbol(f.Name, f.TypeLexeme)) {
			return cerr.New(cerr.Declaration, f.NamePos, "Field %s already exists in %s", f.Name, class.Name)
		}
	}

	for _, m := range class.Methods {
		params := make([]string, len(m.Params))
		for i, p := range m.Params {
			params[i] = p.TypeLexeme
		}
		if !table.Define(symtab.NewMethodSymbol(m.Name, params, m.ReturnLex)) {
			return cerr.New(cerr.Declaration, m.NamePos, "Method %s already exists in %s", m.Name, class.Name)
		}
	}

	a.registry.Register(class.Name, table)
	return nil
}
