package codegen

import (
	"strings"

	"github.com/cwbudde/minijavac/internal/ast"
	"github.com/cwbudde/minijavac/internal/cerr"
)

// lowerCodeBlock lowers a block's statements into flat C text within a
// fresh scope frame; callers indent and wrap the result as needed.
func (g *Generator) lowerCodeBlock(block *ast.CodeBlock) (string, error) {
	var buf strings.Builder
	g.pushScope()
	for _, stmt := range block.Statements {
		if err := g.lowerStatement(&buf, stmt); err != nil {
			g.popScope()
			return "", err
		}
	}
	g.popScope()
	return buf.String(), nil
}

func (g *Generator) lowerStatement(buf *strings.Builder, stmt ast.Statement) error {
	switch s := stmt.(type) {
	case *ast.CodeBlock:
		code, err := g.lowerCodeBlock(s)
		if err != nil {
			return err
		}
		buf.WriteString(code)
		return nil

	case *ast.LocalVariableDecl:
		return g.lowerLocalVariableDecl(buf, s)

	case *ast.Assignment:
		return g.lowerAssignment(buf, s)

	case *ast.IfStatement:
		return g.lowerIfStatement(buf, s)

	case *ast.WhileStatement:
		return g.lowerWhileStatement(buf, s)

	case *ast.ForStatement:
		return g.lowerForStatement(buf, s)

	case *ast.ReturnStatement:
		return g.lowerReturnStatement(buf, s)

	case *ast.BreakStatement:
		return g.lowerBreakStatement(buf, s)

	case *ast.ContinueStatement:
		return g.lowerContinueStatement(buf, s)

	case *ast.ExpressionStatement:
		_, err := g.lowerExpression(buf, s.Expr)
		if err != nil {
			return err
		}
		buf.WriteString(";\n")
		return nil

	default:
		return cerr.NewUnpositioned(cerr.CodeGen, "Unsupported statement node %T", stmt)
	}
}

func (g *Generator) lowerLocalVariableDecl(buf *strings.Builder, s *ast.LocalVariableDecl) error {
	f := s.Field
	buf.WriteString(cType(f.TypeLexeme) + " " + f.Name + ";\n")
	g.markTypeUsed(f.TypeLexeme)
	g.declareLocal(f.Name, f.TypeLexeme)
	return nil
}

func (g *Generator) lowerAssignment(buf *strings.Builder, s *ast.Assignment) error {
	lhs, err := g.lowerReferenceChainLValue(buf, s.Lhs)
	if err != nil {
		return err
	}
	rhs, err := g.lowerExpression(buf, s.Rhs)
	if err != nil {
		return err
	}
	buf.WriteString(lhs + " " + s.Op + " " + rhs + ";\n")
	return nil
}

func (g *Generator) lowerReturnStatement(buf *strings.Builder, s *ast.ReturnStatement) error {
	if s.Operand == nil {
		buf.WriteString("return;\n")
		return nil
	}
	value, err := g.lowerExpression(buf, s.Operand)
	if err != nil {
		return err
	}
	buf.WriteString("return " + value + ";\n")
	return nil
}

func (g *Generator) lowerBreakStatement(buf *strings.Builder, s *ast.BreakStatement) error {
	if len(g.loopStack) == 0 {
		return cerr.New(cerr.CodeGen, s.Pos(), "break used outside a loop")
	}
	buf.WriteString("goto " + g.loopStack[len(g.loopStack)-1].breakLabel + ";\n")
	return nil
}

func (g *Generator) lowerContinueStatement(buf *strings.Builder, s *ast.ContinueStatement) error {
	if len(g.loopStack) == 0 {
		return cerr.New(cerr.CodeGen, s.Pos(), "continue used outside a loop")
	}
	buf.WriteString("goto " + g.loopStack[len(g.loopStack)-1].continueLabel + ";\n")
	return nil
}

// lowerIfStatement: compute the condition, jump past the then-arm when
// false, fall through otherwise, and skip the else-arm with a trailing
// goto when one is present (spec.md §4.4).
func (g *Generator) lowerIfStatement(buf *strings.Builder, s *ast.IfStatement) error {
	n := g.newLabelSet()
	elseLabel := "if" + itoa(n) + "_else"
	endLabel := "if" + itoa(n) + "_end"

	cond, err := g.lowerExpression(buf, s.Condition)
	if err != nil {
		return err
	}

	target := endLabel
	if s.Else != nil {
		target = elseLabel
	}
	buf.WriteString("if (!(" + cond + ")) goto " + target + ";\n")

	thenCode, err := g.lowerCodeBlock(s.Then)
	if err != nil {
		return err
	}
	buf.WriteString(thenCode)

	if s.Else != nil {
		buf.WriteString("goto " + endLabel + ";\n")
		buf.WriteString(elseLabel + ":;\n")
		elseCode, err := g.lowerCodeBlock(s.Else)
		if err != nil {
			return err
		}
		buf.WriteString(elseCode)
	}

	buf.WriteString(endLabel + ":;\n")
	return nil
}

// lowerWhileStatement handles both forms via s.IsDoWhile: a plain while
// checks the condition at start:, a do-while checks it at a separate cond:
// label placed after the body, which is also where continue jumps to
// (spec.md §4.4).
func (g *Generator) lowerWhileStatement(buf *strings.Builder, s *ast.WhileStatement) error {
	n := g.newLabelSet()
	startLabel := "while" + itoa(n) + "_start"
	condLabel := "while" + itoa(n) + "_cond"
	endLabel := "while" + itoa(n) + "_end"

	continueLabel := startLabel
	if s.IsDoWhile {
		continueLabel = condLabel
	}

	g.loopStack = append(g.loopStack, loopLabels{continueLabel: continueLabel, breakLabel: endLabel})
	defer func() { g.loopStack = g.loopStack[:len(g.loopStack)-1] }()

	buf.WriteString(startLabel + ":;\n")

	if !s.IsDoWhile {
		cond, err := g.lowerExpression(buf, s.Condition)
		if err != nil {
			return err
		}
		buf.WriteString("if (!(" + cond + ")) goto " + endLabel + ";\n")
	}

	bodyCode, err := g.lowerCodeBlock(s.Body)
	if err != nil {
		return err
	}
	buf.WriteString(bodyCode)

	if s.IsDoWhile {
		buf.WriteString(condLabel + ":;\n")
		cond, err := g.lowerExpression(buf, s.Condition)
		if err != nil {
			return err
		}
		buf.WriteString("if (!(" + cond + ")) goto " + endLabel + ";\n")
	}

	buf.WriteString("goto " + startLabel + ";\n")
	buf.WriteString(endLabel + ":;\n")
	return nil
}

// lowerForStatement pushes one scope frame for the whole loop and lowers the
// init statements directly into it rather than through lowerCodeBlock, so
// init-declared names stay visible to the condition, body, and update
// (spec.md §8's for(;;) legality note).
func (g *Generator) lowerForStatement(buf *strings.Builder, s *ast.ForStatement) error {
	n := g.newLabelSet()
	startLabel := "for" + itoa(n) + "_start"
	updateLabel := "for" + itoa(n) + "_update"
	endLabel := "for" + itoa(n) + "_end"

	g.pushScope()
	defer g.popScope()

	if s.Init != nil {
		for _, stmt := range s.Init.Statements {
			if err := g.lowerStatement(buf, stmt); err != nil {
				return err
			}
		}
	}

	buf.WriteString(startLabel + ":;\n")
	if s.Condition != nil {
		cond, err := g.lowerExpression(buf, s.Condition)
		if err != nil {
			return err
		}
		buf.WriteString("if (!(" + cond + ")) goto " + endLabel + ";\n")
	}

	g.loopStack = append(g.loopStack, loopLabels{continueLabel: updateLabel, breakLabel: endLabel})
	if s.Body != nil {
		bodyCode, err := g.lowerCodeBlock(s.Body)
		if err != nil {
			g.loopStack = g.loopStack[:len(g.loopStack)-1]
			return err
		}
		buf.WriteString(bodyCode)
	}
	g.loopStack = g.loopStack[:len(g.loopStack)-1]

	buf.WriteString(updateLabel + ":;\n")
	if s.Update != nil {
		for _, stmt := range s.Update.Statements {
			if err := g.lowerStatement(buf, stmt); err != nil {
				return err
			}
		}
	}
	buf.WriteString("goto " + startLabel + ";\n")
	buf.WriteString(endLabel + ":;\n")
	return nil
}
