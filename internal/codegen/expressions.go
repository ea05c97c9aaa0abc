package codegen

import (
	"strconv"
	"strings"

	"github.com/cwbudde/minijavac/internal/ast"
	"github.com/cwbudde/minijavac/internal/cerr"
	"github.com/cwbudde/minijavac/internal/token"
)

// lowerExpression lowers expr, emitting any supporting statements into buf,
// and returns the C expression text usable at the call site (spec.md §4.4).
func (g *Generator) lowerExpression(buf *strings.Builder, expr ast.Expression) (string, error) {
	switch e := expr.(type) {
	case *ast.NumberLiteral:
		return lowerNumberLexeme(e.Token), nil

	case *ast.BooleanLiteral:
		if e.Value {
			return "true", nil
		}
		return "false", nil

	case *ast.Reference:
		return g.lowerReferenceChainRValue(buf, e.Chain)

	case *ast.BinaryExpression:
		return g.lowerBinaryExpression(buf, e)

	case *ast.NotExpression:
		return g.lowerNotExpression(buf, e)

	case *ast.CastExpression:
		return g.lowerCastExpression(buf, e)

	default:
		return "", cerr.NewUnpositioned(cerr.CodeGen, "Unsupported expression node %T", expr)
	}
}

// lowerNumberLexeme preserves decimal and hex spellings verbatim (both are
// valid C99 integer constants) but re-renders a binary literal as decimal,
// since C99 has no 0b syntax (spec.md §6's "compiles under C99" guarantee).
func lowerNumberLexeme(tok token.Token) string {
	if tok.Kind != token.BINARY_NUMBER {
		return tok.Lexeme
	}
	digits := strings.TrimPrefix(strings.TrimPrefix(tok.Lexeme, "0b"), "0B")
	v, err := strconv.ParseInt(digits, 2, 64)
	if err != nil {
		return tok.Lexeme
	}
	return strconv.FormatInt(v, 10)
}

// lowerBinaryExpression lowers both operands first (a literal or plain name
// is used as is, without a temporary), then binds a result temporary of the expression's own type. `>>>` is the one
// exception: it lowers to an explicit unsigned shift so the result matches
// Java's zero-fill semantics instead of C's implementation-defined
// arithmetic shift on a negative int (spec.md §4.4).
func (g *Generator) lowerBinaryExpression(buf *strings.Builder, e *ast.BinaryExpression) (string, error) {
	left, err := g.lowerExpression(buf, e.Left)
	if err != nil {
		return "", err
	}
	right, err := g.lowerExpression(buf, e.Right)
	if err != nil {
		return "", err
	}

	temp := g.newTemp()
	ct := cType(e.Type())

	if e.Op == token.OpUnsignedShr {
		buf.WriteString(ct + " " + temp + " = (int)((unsigned int)(" + left + ") >> " + right + ");\n")
	} else {
		buf.WriteString(ct + " " + temp + " = " + left + " " + e.Op + " " + right + ";\n")
	}
	return temp, nil
}

func (g *Generator) lowerNotExpression(buf *strings.Builder, e *ast.NotExpression) (string, error) {
	operand, err := g.lowerExpression(buf, e.Operand)
	if err != nil {
		return "", err
	}
	temp := g.newTemp()
	buf.WriteString(cType(e.Type()) + " " + temp + " = " + e.Op + operand + ";\n")
	return temp, nil
}

func (g *Generator) lowerCastExpression(buf *strings.Builder, e *ast.CastExpression) (string, error) {
	operand, err := g.lowerExpression(buf, e.Operand)
	if err != nil {
		return "", err
	}
	temp := g.newTemp()
	ct := cType(e.TargetTypeLexeme)
	buf.WriteString(ct + " " + temp + " = (" + ct + ") " + operand + ";\n")
	g.markTypeUsed(e.TargetTypeLexeme)
	return temp, nil
}
