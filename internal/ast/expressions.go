package ast

import "github.com/cwbudde/minijavac/internal/token"

// NumberLiteral is an integer literal (decimal, hex, or binary spelling —
// the lexeme is preserved verbatim; spec.md §1 lists HEX_NUMBER and
// BINARY_NUMBER as distinct token kinds the parser folds into one node).
type NumberLiteral struct {
	base
	Token token.Token
}

func NewNumberLiteral(tok token.Token) *NumberLiteral {
	return &NumberLiteral{base: newBase(tok.Pos), Token: tok}
}

func (*NumberLiteral) expressionNode() {}

// BooleanLiteral is `true` or `false`.
type BooleanLiteral struct {
	base
	Token token.Token
	Value bool
}

func NewBooleanLiteral(tok token.Token, value bool) *BooleanLiteral {
	return &BooleanLiteral{base: newBase(tok.Pos), Token: tok, Value: value}
}

func (*BooleanLiteral) expressionNode() {}

// BinaryExpression is a two-operand expression at one of the precedence
// levels in spec.md §4.2's table.
type BinaryExpression struct {
	base
	Op    string
	Left  Expression
	Right Expression
}

func NewBinaryExpression(pos token.Position, op string, left, right Expression) *BinaryExpression {
	return &BinaryExpression{base: newBase(pos), Op: op, Left: left, Right: right}
}

func (*BinaryExpression) expressionNode() {}

// NotExpression is a unary `!` (boolean) or `~` (int) operator.
type NotExpression struct {
	base
	Op      string // "!" or "~"
	Operand Expression
}

func NewNotExpression(pos token.Position, op string, operand Expression) *NotExpression {
	return &NotExpression{base: newBase(pos), Op: op, Operand: operand}
}

func (*NotExpression) expressionNode() {}

// CastExpression is `(TYPE) expr`.
type CastExpression struct {
	base
	TargetTypeLexeme string
	Operand          Expression
}

func NewCastExpression(pos token.Position, targetType string, operand Expression) *CastExpression {
	return &CastExpression{base: newBase(pos), TargetTypeLexeme: targetType, Operand: operand}
}

func (*CastExpression) expressionNode() {}

// NewObject is either a class allocation (`new X()`, ArraySize nil) or an
// int-array allocation (`new int[n]`, ArraySize set) — mutually exclusive
// per spec.md §3.
type NewObject struct {
	base
	ClassType string     // set for class allocation
	ArraySize Expression // set (non-nil) for int-array allocation
}

func NewClassAllocation(pos token.Position, className string) *NewObject {
	return &NewObject{base: newBase(pos), ClassType: className}
}

func NewArrayAllocation(pos token.Position, size Expression) *NewObject {
	return &NewObject{base: newBase(pos), ArraySize: size}
}

func (n *NewObject) IsArrayAllocation() bool { return n.ArraySize != nil }

func (*NewObject) expressionNode() {}

// Reference wraps a ReferenceChain as an expression.
type Reference struct {
	base
	Chain *ReferenceChain
}

func NewReference(pos token.Position, chain *ReferenceChain) *Reference {
	return &Reference{base: newBase(pos), Chain: chain}
}

func (*Reference) expressionNode() {}

// MethodCall is a reference-chain payload: `name(args)`. CallerType is
// back-filled by ReferenceChain resolution before this payload's own
// semantic analysis runs (spec.md §9 Design Notes).
type MethodCall struct {
	base
	Name       string
	NamePos    token.Position
	Args       []Expression
	CallerType string
}

func NewMethodCall(pos token.Position, name string, args []Expression) *MethodCall {
	return &MethodCall{base: newBase(pos), Name: name, NamePos: pos, Args: args}
}

func (*MethodCall) expressionNode() {}

// ArrayCall is a reference-chain payload: `arrayName[index]`.
type ArrayCall struct {
	base
	ArrayName  string
	Index      Expression
	CallerType string
}

func NewArrayCall(pos token.Position, arrayName string, index Expression) *ArrayCall {
	return &ArrayCall{base: newBase(pos), ArrayName: arrayName, Index: index}
}

func (*ArrayCall) expressionNode() {}
