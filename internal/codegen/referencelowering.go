package codegen

import (
	"strings"

	"github.com/cwbudde/minijavac/internal/ast"
	"github.com/cwbudde/minijavac/internal/cerr"
	"github.com/cwbudde/minijavac/internal/token"
)

func (g *Generator) lowerReferenceChainRValue(buf *strings.Builder, chain *ast.ReferenceChain) (string, error) {
	if expr, ok, err := g.tryLowerSystemPrint(buf, chain); err != nil {
		return "", err
	} else if ok {
		return expr, nil
	}
	return g.lowerReferenceChain(buf, chain)
}

// lowerReferenceChainLValue shares the same walk: MiniJava's grammar never
// produces a chain ending in a call or `.length` as an assignment target
// (the latter is rejected during semantic analysis).
func (g *Generator) lowerReferenceChainLValue(buf *strings.Builder, chain *ast.ReferenceChain) (string, error) {
	return g.lowerReferenceChain(buf, chain)
}

// tryLowerSystemPrint recognizes the fixed three-step System.out.{print,
// println,printf} chain and lowers it straight to a printf call, since
// there is no real System/PrintStream object backing it (spec.md §4.4).
func (g *Generator) tryLowerSystemPrint(buf *strings.Builder, chain *ast.ReferenceChain) (string, bool, error) {
	if len(chain.Steps) != 3 {
		return "", false, nil
	}
	if chain.Steps[0].Token.Lexeme != "System" || chain.Steps[1].Token.Lexeme != "out" {
		return "", false, nil
	}
	call := chain.Steps[2].MethodCall
	if call == nil || len(call.Args) != 1 {
		return "", false, nil
	}

	var format string
	switch call.Name {
	case "println":
		format = `"%d\n"`
	case "print", "printf":
		format = `"%d"`
	default:
		return "", false, nil
	}

	arg, err := g.lowerExpression(buf, call.Args[0])
	if err != nil {
		return "", false, err
	}
	return "printf(" + format + ", " + arg + ")", true, nil
}

// lowerReferenceChain walks the chain left to right. Every step's base is a
// C pointer — fields and locals of class or int[] type always lower to
// pointers per the type table — so dot-vs-arrow only matters inside the
// climb helpers below, which cross one embedded `super` substruct at a time
// to reach an inherited member (spec.md §4.4).
func (g *Generator) lowerReferenceChain(buf *strings.Builder, chain *ast.ReferenceChain) (string, error) {
	expr, err := g.lowerChainHead(buf, chain.Steps[0])
	if err != nil {
		return "", err
	}

	for i := 1; i < len(chain.Steps); i++ {
		ownerType := chain.Steps[i-1].ResolvedType
		expr, err = g.lowerChainMember(buf, ownerType, expr, chain.Steps[i])
		if err != nil {
			return "", err
		}
	}

	return expr, nil
}

func (g *Generator) lowerChainHead(buf *strings.Builder, step ast.ChainStep) (string, error) {
	tok := step.Token

	if step.PayloadKind == ast.PayloadNewObject {
		return g.lowerNewObject(buf, step.NewObject)
	}
	if tok.Lexeme == token.KwThis {
		return "super", nil
	}

	if _, isLocal := g.lookupLocal(tok.Lexeme); isLocal {
		if step.PayloadKind == ast.PayloadArrayCall {
			return g.lowerArrayCallOnExpr(buf, tok.Lexeme, step.ArrayCall)
		}
		return tok.Lexeme, nil
	}

	// Not a local: a field of, or an implicit-this call on, the enclosing
	// class, reached through the `super` alias.
	if step.PayloadKind == ast.PayloadMethodCall {
		return g.lowerMethodCallOnExpr(buf, "super", g.class, step.MethodCall)
	}
	return g.lowerFieldAccess(buf, "super", g.class, tok.Lexeme)
}

func (g *Generator) lowerChainMember(buf *strings.Builder, ownerType, baseExpr string, step ast.ChainStep) (string, error) {
	tok := step.Token

	if ownerType == "int[]" {
		switch {
		case step.PayloadKind == ast.PayloadNone && tok.Lexeme == "length":
			return baseExpr + "->length", nil
		case step.PayloadKind == ast.PayloadArrayCall:
			return g.lowerArrayCallOnExpr(buf, baseExpr, step.ArrayCall)
		default:
			return "", cerr.NewUnpositioned(cerr.CodeGen, "Unsupported access on int[]")
		}
	}

	ownerClass := g.project.Class(ownerType)
	if ownerClass == nil {
		return "", cerr.NewUnpositioned(cerr.CodeGen, "Type %s has no members", ownerType)
	}

	switch step.PayloadKind {
	case ast.PayloadMethodCall:
		return g.lowerMethodCallOnExpr(buf, baseExpr, ownerClass, step.MethodCall)

	case ast.PayloadArrayCall:
		fieldExpr, err := g.lowerFieldAccess(buf, baseExpr, ownerClass, tok.Lexeme)
		if err != nil {
			return "", err
		}
		return g.lowerArrayCallOnExpr(buf, fieldExpr, step.ArrayCall)

	default:
		return g.lowerFieldAccess(buf, baseExpr, ownerClass, tok.Lexeme)
	}
}

// lowerFieldAccess climbs ownerClass's ancestor chain to the class that
// actually declares name, baking in the `.super` hops needed to reach it.
func (g *Generator) lowerFieldAccess(buf *strings.Builder, baseExpr string, ownerClass *ast.Class, name string) (string, error) {
	chain := g.ancestorChain(ownerClass)
	leafIdx := len(chain) - 1

	ownerIdx := -1
	var field *ast.Field
	for i := leafIdx; i >= 0; i-- {
		if f := chain[i].Field(name); f != nil {
			ownerIdx, field = i, f
			break
		}
	}
	if field == nil {
		return "", cerr.NewUnpositioned(cerr.CodeGen, "Unknown field %s on %s", name, ownerClass.Name)
	}

	g.markTypeUsed(field.TypeLexeme)
	return fieldPath(baseExpr, leafIdx-ownerIdx, name), nil
}

// lowerMethodCallOnExpr lowers a call against ownerClass's virtual slot. A
// receiver that isn't already a bare name or `super` is bound to a
// temporary first, so it is only evaluated once (spec.md §4.4).
func (g *Generator) lowerMethodCallOnExpr(buf *strings.Builder, baseExpr string, ownerClass *ast.Class, call *ast.MethodCall) (string, error) {
	receiver := baseExpr
	if baseExpr != "super" && !isBareIdentifier(baseExpr) {
		temp := g.newTemp()
		buf.WriteString(ownerClass.Name + "* " + temp + " = " + baseExpr + ";\n")
		receiver = temp
	}

	chain := g.ancestorChain(ownerClass)
	leafIdx := len(chain) - 1
	depth := leafIdx - g.introducingIndex(chain, call.Name)
	slot := fieldPath(receiver, depth, functionPointerName(call.Name))

	args := make([]string, 0, len(call.Args)+1)
	args = append(args, receiver)
	for _, arg := range call.Args {
		v, err := g.lowerExpression(buf, arg)
		if err != nil {
			return "", err
		}
		args = append(args, v)
	}

	return slot + "(" + strings.Join(args, ", ") + ")", nil
}

// lowerArrayCallOnExpr lowers `expr[index]` against an __int_array*.
func (g *Generator) lowerArrayCallOnExpr(buf *strings.Builder, baseExpr string, call *ast.ArrayCall) (string, error) {
	index, err := g.lowerExpression(buf, call.Index)
	if err != nil {
		return "", err
	}
	return baseExpr + "->data[" + index + "]", nil
}

// lowerNewObject emits the allocation call for a `new` expression, binding
// its result to a temporary.
func (g *Generator) lowerNewObject(buf *strings.Builder, n *ast.NewObject) (string, error) {
	if n.IsArrayAllocation() {
		size, err := g.lowerExpression(buf, n.ArraySize)
		if err != nil {
			return "", err
		}
		temp := g.newTemp()
		buf.WriteString("__int_array* " + temp + " = " + intArrayAllocatorName + "(" + size + ");\n")
		return temp, nil
	}

	temp := g.newTemp()
	buf.WriteString(n.ClassType + "* " + temp + " = " + allocatorName(n.ClassType) + "();\n")
	g.markTypeUsed(n.ClassType)
	return temp, nil
}

func isBareIdentifier(expr string) bool {
	if expr == "" {
		return false
	}
	for i, r := range expr {
		switch {
		case r == '_' || r == '$':
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}
