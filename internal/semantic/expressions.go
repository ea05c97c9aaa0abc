package semantic

import (
	"github.com/cwbudde/minijavac/internal/ast"
	"github.com/cwbudde/minijavac/internal/cerr"
	"github.com/cwbudde/minijavac/internal/symtab"
)

var intBinaryOps = map[string]bool{"+": true, "-": true, "*": true, "/": true, "%": true, "&": true, "|": true, "^": true, ">>>": true}
var boolBinaryOps = map[string]bool{"&&": true, "||": true}
var relBinaryOps = map[string]bool{"<": true, "<=": true, ">": true, ">=": true}
var eqBinaryOps = map[string]bool{"==": true, "!=": true}

// analyzeExpression attaches a resolved type to expr, recursing into its
// operands first (spec.md §4.3's type-attachment table, left to right per
// spec.md §5's ordering guarantee).
func (a *Analyzer) analyzeExpression(expr ast.Expression, scope *symtab.Table) error {
	switch e := expr.(type) {
	case *ast.NumberLiteral:
		e.SetType("int")
		return nil

	case *ast.BooleanLiteral:
		e.SetType("boolean")
		return nil

	case *ast.Reference:
		if err := a.resolveReferenceChain(e.Chain, scope); err != nil {
			return err
		}
		e.SetType(e.Chain.ResolvedType())
		return nil

	case *ast.BinaryExpression:
		return a.analyzeBinaryExpression(e, scope)

	case *ast.NotExpression:
		return a.analyzeNotExpression(e, scope)

	case *ast.CastExpression:
		return a.analyzeCastExpression(e, scope)

	default:
		return cerr.NewUnpositioned(cerr.TypeCheck, "Unsupported expression node %T", expr)
	}
}

func (a *Analyzer) analyzeBinaryExpression(e *ast.BinaryExpression, scope *symtab.Table) error {
	if err := a.analyzeExpression(e.Left, scope); err != nil {
		return err
	}
	if err := a.analyzeExpression(e.Right, scope); err != nil {
		return err
	}
	lt, rt := e.Left.Type(), e.Right.Type()

	switch {
	case intBinaryOps[e.Op]:
		if lt != "int" || rt != "int" {
			return cerr.New(cerr.TypeCheck, e.Pos(), "Operator %s requires int operands, got %s and %s", e.Op, lt, rt)
		}
		e.SetType("int")

	case boolBinaryOps[e.Op]:
		if lt != "boolean" || rt != "boolean" {
			return cerr.New(cerr.TypeCheck, e.Pos(), "Operator %s requires boolean operands, got %s and %s", e.Op, lt, rt)
		}
		e.SetType("boolean")

	case relBinaryOps[e.Op]:
		if lt != "int" || rt != "int" {
			return cerr.New(cerr.TypeCheck, e.Pos(), "Operator %s requires int operands, got %s and %s", e.Op, lt, rt)
		}
		e.SetType("boolean")

	case eqBinaryOps[e.Op]:
		if lt != rt {
			return cerr.New(cerr.TypeCheck, e.Pos(), "Operator %s requires matching operand types, got %s and %s", e.Op, lt, rt)
		}
		e.SetType("boolean")

	default:
		return cerr.NewUnpositioned(cerr.TypeCheck, "Unknown binary operator %s", e.Op)
	}
	return nil
}

func (a *Analyzer) analyzeNotExpression(e *ast.NotExpression, scope *symtab.Table) error {
	if err := a.analyzeExpression(e.Operand, scope); err != nil {
		return err
	}
	t := e.Operand.Type()

	switch e.Op {
	case "!":
		if t != "boolean" {
			return cerr.New(cerr.TypeCheck, e.Pos(), "! requires a boolean operand, got %s", t)
		}
		e.SetType("boolean")
	case "~":
		if t != "int" {
			return cerr.New(cerr.TypeCheck, e.Pos(), "~ requires an int operand, got %s", t)
		}
		e.SetType("int")
	default:
		return cerr.NewUnpositioned(cerr.TypeCheck, "Unknown unary operator %s", e.Op)
	}
	return nil
}

func (a *Analyzer) analyzeCastExpression(e *ast.CastExpression, scope *symtab.Table) error {
	if err := a.analyzeExpression(e.Operand, scope); err != nil {
		return err
	}

	target := e.TargetTypeLexeme
	if !a.isKnownType(target) {
		return cerr.New(cerr.TypeCheck, e.Pos(), "Unknown cast target type %s", target)
	}

	from := e.Operand.Type()
	if !a.castIsMeaningful(from, target) {
		return cerr.New(cerr.TypeCheck, e.Pos(), "Cannot cast %s to %s", from, target)
	}

	e.SetType(target)
	return nil
}

// analyzeNewObject resolves a NewObject payload's type (spec.md §4.3: the
// class name for class allocation, "int[]" for array allocation after
// checking the size expression is int).
func (a *Analyzer) analyzeNewObject(n *ast.NewObject, scope *symtab.Table) (string, error) {
	if n.IsArrayAllocation() {
		if err := a.analyzeExpression(n.ArraySize, scope); err != nil {
			return "", err
		}
		if n.ArraySize.Type() != "int" {
			return "", cerr.New(cerr.TypeCheck, n.Pos(), "Array size must be int, got %s", n.ArraySize.Type())
		}
		n.SetType("int[]")
		return "int[]", nil
	}

	if !a.registry.Has(n.ClassType) {
		return "", cerr.New(cerr.NameResolution, n.Pos(), "Undefined class %s", n.ClassType)
	}
	n.SetType(n.ClassType)
	return n.ClassType, nil
}
