package ast

import "github.com/cwbudde/minijavac/internal/token"

// CodeBlock is an ordered list of statements (spec.md §3). Its ResolvedType
// is "void" unless a terminating return/if-with-return path makes every arm
// return a value, in which case semantic analysis sets it to that type —
// the "return-void" / return-path propagation spec.md §4.3 describes.
type CodeBlock struct {
	base
	Statements []Statement
}

func NewCodeBlock(pos token.Position) *CodeBlock {
	return &CodeBlock{base: newBase(pos)}
}

func (*CodeBlock) statementNode() {}

// ReturnVoidMarker is the internal sentinel spec.md §3 calls "return-void":
// a CodeBlock's resolved type when every path returns without a value.
const ReturnVoidMarker = "return-void"

// ReturnStatement is `return [expr] ;`.
type ReturnStatement struct {
	base
	Operand Expression // nil for a bare `return;`
}

func NewReturnStatement(pos token.Position, operand Expression) *ReturnStatement {
	return &ReturnStatement{base: newBase(pos), Operand: operand}
}

func (*ReturnStatement) statementNode() {}

// BreakStatement is `break ;`.
type BreakStatement struct{ base }

func NewBreakStatement(pos token.Position) *BreakStatement {
	return &BreakStatement{base: newBase(pos)}
}

func (*BreakStatement) statementNode() {}

// ContinueStatement is `continue ;`.
type ContinueStatement struct{ base }

func NewContinueStatement(pos token.Position) *ContinueStatement {
	return &ContinueStatement{base: newBase(pos)}
}

func (*ContinueStatement) statementNode() {}

// LocalVariableDecl is the declaration half of `type IDENT [= expr] ;`
// (spec.md §3 lists LocalVariableDecl as `{ field }` only). When the source
// carries an initializer, the parser emits this node followed immediately
// by an Assignment targeting the same name in the enclosing CodeBlock —
// the grammar's "type IDENT [ assignment-op expr ] ;" production desugars
// into these two statements rather than growing the node itself.
type LocalVariableDecl struct {
	base
	Field *Field
}

func NewLocalVariableDecl(pos token.Position, field *Field) *LocalVariableDecl {
	return &LocalVariableDecl{base: newBase(pos), Field: field}
}

func (*LocalVariableDecl) statementNode() {}

// Assignment is `lhs op rhs`, where lhs is a reference chain and op is one
// of `= += -= *= /= &= |= ^=` (spec.md §3). Unary ++/-- desugars to this
// with op "+=" / "-=" and Rhs a NumberLiteral(1).
type Assignment struct {
	base
	Lhs *ReferenceChain
	Op  string
	Rhs Expression
}

func NewAssignment(pos token.Position, lhs *ReferenceChain, op string, rhs Expression) *Assignment {
	return &Assignment{base: newBase(pos), Lhs: lhs, Op: op, Rhs: rhs}
}

func (*Assignment) statementNode() {}

// IfStatement is `if (cond) then [else else]`.
type IfStatement struct {
	base
	Condition Expression
	Then      *CodeBlock
	Else      *CodeBlock // nil if no else arm
}

func NewIfStatement(pos token.Position, cond Expression, then, elseBody *CodeBlock) *IfStatement {
	return &IfStatement{base: newBase(pos), Condition: cond, Then: then, Else: elseBody}
}

func (*IfStatement) statementNode() {}

// WhileStatement is `while (cond) body` or, when IsDoWhile, `do body while
// (cond) ;`.
type WhileStatement struct {
	base
	Condition Expression
	Body      *CodeBlock
	IsDoWhile bool
}

func NewWhileStatement(pos token.Position, cond Expression, body *CodeBlock, isDoWhile bool) *WhileStatement {
	return &WhileStatement{base: newBase(pos), Condition: cond, Body: body, IsDoWhile: isDoWhile}
}

func (*WhileStatement) statementNode() {}

// ForStatement is `for (init?; cond?; update?) body?`. Any clause may be
// absent (spec.md §8: `for (;;)` is legal).
type ForStatement struct {
	base
	Init      *CodeBlock // nil if absent
	Condition Expression // nil if absent
	Update    *CodeBlock // nil if absent
	Body      *CodeBlock // nil if absent (empty body)
}

func NewForStatement(pos token.Position, init *CodeBlock, cond Expression, update, body *CodeBlock) *ForStatement {
	return &ForStatement{base: newBase(pos), Init: init, Condition: cond, Update: update, Body: body}
}

func (*ForStatement) statementNode() {}

// ExpressionStatement wraps a bare expression used as a statement (e.g. a
// method call with discarded result).
type ExpressionStatement struct {
	base
	Expr Expression
}

func NewExpressionStatement(pos token.Position, expr Expression) *ExpressionStatement {
	return &ExpressionStatement{base: newBase(pos), Expr: expr}
}

func (*ExpressionStatement) statementNode() {}
