// Package ast defines the tagged-variant abstract syntax tree produced by
// the parser and mutated in place by the semantic analyzer (spec.md §3).
//
// Every node carries a ResolvedType string, empty until semantic analysis
// attaches it. Types are kept as plain strings rather than a discriminated
// union — spec.md §9 notes a string view suffices as long as lifetimes are
// managed alongside the source text, which in this module they are (a
// Project outlives analysis and code generation within a single compile).
package ast

import "github.com/cwbudde/minijavac/internal/token"

// Node is the common interface every AST node implements.
type Node interface {
	// Pos returns the source location this node originates from.
	Pos() token.Position
	// Type returns the node's resolved type string, set by semantic
	// analysis. Empty before analysis runs.
	Type() string
	// SetType attaches the resolved type. Called exactly once per node by
	// the semantic analyzer.
	SetType(string)
}

// Expression is any node that produces a value.
type Expression interface {
	Node
	expressionNode()
}

// Statement is any node that performs an action.
type Statement interface {
	Node
	statementNode()
}

// base is embedded by every concrete node to provide Pos/Type/SetType.
type base struct {
	pos          token.Position
	resolvedType string
}

func (b *base) Pos() token.Position { return b.pos }
func (b *base) Type() string        { return b.resolvedType }
func (b *base) SetType(t string)    { b.resolvedType = t }

// newBase constructs a base anchored at pos.
func newBase(pos token.Position) base {
	return base{pos: pos}
}

// PrimitiveKind enumerates the primitive field/return kinds spec.md §3
// names. Class types carry TypeLexeme instead of a PrimitiveKind value
// beyond PrimitiveClass.
type PrimitiveKind int

const (
	PrimitiveInt PrimitiveKind = iota
	PrimitiveBoolean
	PrimitiveIntArray
	PrimitiveClass
	PrimitiveVoid
)

func (k PrimitiveKind) String() string {
	switch k {
	case PrimitiveInt:
		return "int"
	case PrimitiveBoolean:
		return "boolean"
	case PrimitiveIntArray:
		return "int[]"
	case PrimitiveClass:
		return "class"
	case PrimitiveVoid:
		return "void"
	default:
		return "unknown"
	}
}

// Field is a declared name with a type, shared by class fields, local
// variable declarations, and method parameters (spec.md §3).
type Field struct {
	PrimitiveKind PrimitiveKind
	TypeLexeme    string // preserves source spelling: class names, "int[]"
	Name          string
	NamePos       token.Position
}

// Project is the parser's top-level product: an ordered list of classes
// plus a name -> index map for O(1) lookup (spec.md §3).
type Project struct {
	Classes   []*Class
	ClassName map[string]int
}

// NewProject creates an empty project.
func NewProject() *Project {
	return &Project{ClassName: make(map[string]int)}
}

// AddClass appends a class and indexes it by name. Returns false if the
// name is already taken (caller reports "Class X already exists").
func (p *Project) AddClass(c *Class) bool {
	if _, exists := p.ClassName[c.Name]; exists {
		return false
	}
	p.ClassName[c.Name] = len(p.Classes)
	p.Classes = append(p.Classes, c)
	return true
}

// Class finds a class by name, or nil.
func (p *Project) Class(name string) *Class {
	if i, ok := p.ClassName[name]; ok {
		return p.Classes[i]
	}
	return nil
}

// Class is a MiniJava class declaration (spec.md §3).
type Class struct {
	Name        string
	NamePos     token.Position
	Extends     string // empty if no extends clause
	ExtendsPos  token.Position
	Fields      []*Field
	Methods     []*Method
	fieldIndex  map[string]int
	methodIndex map[string]int
}

// NewClass creates an empty class named name.
func NewClass(name string, pos token.Position) *Class {
	return &Class{
		Name:        name,
		NamePos:     pos,
		fieldIndex:  make(map[string]int),
		methodIndex: make(map[string]int),
	}
}

// AddField appends a field. Returns false if the name collides with an
// existing field in this class.
func (c *Class) AddField(f *Field) bool {
	if _, exists := c.fieldIndex[f.Name]; exists {
		return false
	}
	c.fieldIndex[f.Name] = len(c.Fields)
	c.Fields = append(c.Fields, f)
	return true
}

// Field looks up a field declared directly on this class (not inherited).
func (c *Class) Field(name string) *Field {
	if i, ok := c.fieldIndex[name]; ok {
		return c.Fields[i]
	}
	return nil
}

// AddMethod appends a method. Returns false if the name collides with an
// existing method in this class.
func (c *Class) AddMethod(m *Method) bool {
	if _, exists := c.methodIndex[m.Name]; exists {
		return false
	}
	c.methodIndex[m.Name] = len(c.Methods)
	c.Methods = append(c.Methods, m)
	return true
}

// Method looks up a method declared directly on this class (not inherited).
func (c *Class) Method(name string) *Method {
	if i, ok := c.methodIndex[name]; ok {
		return c.Methods[i]
	}
	return nil
}

// Method is a MiniJava method declaration (spec.md §3).
type Method struct {
	ReturnKind PrimitiveKind
	ReturnLex  string
	Name       string
	NamePos    token.Position
	Params     []*Field
	Body       *CodeBlock
	IsMain     bool
	IsStatic   bool
	paramIndex map[string]int
}

// NewMethod creates a method with no parameters or body yet.
func NewMethod(name string, pos token.Position) *Method {
	return &Method{Name: name, NamePos: pos, paramIndex: make(map[string]int)}
}

// AddParam appends a parameter. Returns false on a duplicate name.
func (m *Method) AddParam(p *Field) bool {
	if _, exists := m.paramIndex[p.Name]; exists {
		return false
	}
	m.paramIndex[p.Name] = len(m.Params)
	m.Params = append(m.Params, p)
	return true
}
