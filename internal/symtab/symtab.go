// Package symtab implements the lexically scoped symbol tables and the
// process-wide (per-compile) class registry described in spec.md §3/§5.
//
// The registry is not a package-level mutable global — spec.md §9 "Design
// Notes" flags that pattern as tangling lifetime with program state and
// recommends an explicit context instead. Registry is that context: owned
// by the caller (the semantic analyzer), passed by reference to the code
// generator, and safe to discard or recreate per compile.
package symtab

// Symbol is a name bound in some scope: a variable/field/parameter, or a
// method (spec.md §3).
type Symbol struct {
	Name       string
	Type       string // "int", "int[]", "boolean", "void", or a class name
	IsMethod   bool
	Params     []string // parameter type lexemes, ordered; methods only
	ReturnType string   // methods only
}

// NewVarSymbol creates a non-method symbol.
func NewVarSymbol(name, typ string) *Symbol {
	return &Symbol{Name: name, Type: typ}
}

// NewMethodSymbol creates a method symbol.
func NewMethodSymbol(name string, params []string, returnType string) *Symbol {
	return &Symbol{Name: name, IsMethod: true, Params: params, ReturnType: returnType}
}

// Table is a lexically scoped name -> Symbol mapping with an optional
// parent for lookup chaining (spec.md §3).
type Table struct {
	symbols    map[string]*Symbol
	Parent     *Table
	ClassName  string // non-empty only for a class-scope table
	ReturnType string // non-empty only for a method-scope table
}

// New creates a table with no parent (the two built-in class scopes, or a
// main-method scope, use this).
func New() *Table {
	return &Table{symbols: make(map[string]*Symbol)}
}

// NewEnclosed creates a table whose lookups fall through to parent.
func NewEnclosed(parent *Table) *Table {
	t := New()
	t.Parent = parent
	return t
}

// Define binds name in this scope. Returns false if name already exists
// directly in this scope (callers turn that into a duplicate-declaration
// diagnostic; shadowing an outer scope's symbol is allowed).
func (t *Table) Define(sym *Symbol) bool {
	if _, exists := t.symbols[sym.Name]; exists {
		return false
	}
	t.symbols[sym.Name] = sym
	return true
}

// DefineLocal is like Define but never reports a collision; it always wins
// into the map (used for method parameters, whose names the parser has
// already checked for duplicates).
func (t *Table) DefineLocal(sym *Symbol) {
	t.symbols[sym.Name] = sym
}

// Lookup finds name in this scope or any ancestor, returning (symbol, true)
// on success.
func (t *Table) Lookup(name string) (*Symbol, bool) {
	for scope := t; scope != nil; scope = scope.Parent {
		if sym, ok := scope.symbols[name]; ok {
			return sym, true
		}
	}
	return nil, false
}

// LookupLocal finds name only in this exact scope, not ancestors.
func (t *Table) LookupLocal(name string) (*Symbol, bool) {
	sym, ok := t.symbols[name]
	return sym, ok
}

// EnclosingClass walks parent pointers to find the nearest class-scope
// table, used to resolve `this` (spec.md §4.3 item 1).
func (t *Table) EnclosingClass() *Table {
	for scope := t; scope != nil; scope = scope.Parent {
		if scope.ClassName != "" {
			return scope
		}
	}
	return nil
}

// Registry is the process-wide (per-compile) map of class name -> class's
// symbol table, populated in topological order by the semantic analyzer's
// declaration-registration phase and read thereafter by both analysis
// phases and code generation (spec.md §4.3, §5).
type Registry struct {
	classes map[string]*Table
	order   []string // topological registration order, preserved for codegen
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{classes: make(map[string]*Table)}
}

// Register adds a class's scope table under its class name. Overwrites are
// not expected (class names are validated unique before registration).
func (r *Registry) Register(className string, table *Table) {
	if _, exists := r.classes[className]; !exists {
		r.order = append(r.order, className)
	}
	r.classes[className] = table
}

// Lookup returns the class-scope table for className, or nil.
func (r *Registry) Lookup(className string) *Table {
	return r.classes[className]
}

// Has reports whether className is registered.
func (r *Registry) Has(className string) bool {
	_, ok := r.classes[className]
	return ok
}

// Order returns class names in the order they were registered
// (topological: every class after its ancestor).
func (r *Registry) Order() []string {
	return r.order
}
