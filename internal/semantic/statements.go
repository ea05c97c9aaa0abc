package semantic

import (
	"github.com/cwbudde/minijavac/internal/ast"
	"github.com/cwbudde/minijavac/internal/cerr"
	"github.com/cwbudde/minijavac/internal/symtab"
)

// analyzeClassBody runs Phase 2 (spec.md §4.3) over every method of class,
// in declaration order.
func (a *Analyzer) analyzeClassBody(class *ast.Class) error {
	classTable := a.registry.Lookup(class.Name)
	for _, m := range class.Methods {
		if err := a.analyzeMethod(m, classTable); err != nil {
			return err
		}
	}
	return nil
}

// analyzeMethod builds the method's scope — a System-only table for main
// (no `this`), or a scope rooted at the class table with parameters
// registered otherwise — and analyzes its body (spec.md §4.3 Phase 2).
func (a *Analyzer) analyzeMethod(m *ast.Method, classTable *symtab.Table) error {
	var scope *symtab.Table

	if m.IsMain {
		systemOnly := symtab.New()
		systemOnly.Define(symtab.NewVarSymbol(builtinSystem, builtinSystem))
		scope = symtab.NewEnclosed(systemOnly)
	} else {
		methodScope := symtab.NewEnclosed(classTable)
		methodScope.ReturnType = m.ReturnLex
		for _, p := range m.Params {
			methodScope.DefineLocal(symtab.NewVarSymbol(p.Name, p.TypeLexeme))
		}
		scope = methodScope
	}

	ctx := &methodCtx{returnType: m.ReturnLex}
	return a.analyzeCodeBlock(m.Body, scope, ctx)
}

// analyzeCodeBlock analyzes each statement in order, rejecting anything
// after a terminating return/if-with-return path (spec.md §4.3 "Dead-code
// and return-path checking"), and sets the block's own resolved type to
// the propagated terminal type or "void".
func (a *Analyzer) analyzeCodeBlock(block *ast.CodeBlock, scope *symtab.Table, ctx *methodCtx) error {
	terminated := false
	var terminalType string

	for _, stmt := range block.Statements {
		if terminated {
			return cerr.New(cerr.TypeCheck, stmt.Pos(), "Unreachable statement")
		}
		t, isTerminal, err := a.analyzeStatement(stmt, scope, ctx)
		if err != nil {
			return err
		}
		if isTerminal {
			terminated = true
			terminalType = t
		}
	}

	if terminated {
		block.SetType(terminalType)
	} else {
		block.SetType("void")
	}
	return nil
}

// analyzeStatement analyzes one statement and reports whether it
// terminates its enclosing block (a return, or an if whose every arm
// terminates) along with the type to propagate in that case.
func (a *Analyzer) analyzeStatement(stmt ast.Statement, scope *symtab.Table, ctx *methodCtx) (string, bool, error) {
	switch s := stmt.(type) {
	case *ast.CodeBlock:
		nested := symtab.NewEnclosed(scope)
		if err := a.analyzeCodeBlock(s, nested, ctx); err != nil {
			return "", false, err
		}
		if s.Type() != "void" {
			return s.Type(), true, nil
		}
		return "", false, nil

	case *ast.LocalVariableDecl:
		return "", false, a.analyzeLocalVariableDecl(s, scope)

	case *ast.Assignment:
		return "", false, a.analyzeAssignment(s, scope)

	case *ast.IfStatement:
		return a.analyzeIfStatement(s, scope, ctx)

	case *ast.WhileStatement:
		return "", false, a.analyzeWhileStatement(s, scope, ctx)

	case *ast.ForStatement:
		return "", false, a.analyzeForStatement(s, scope, ctx)

	case *ast.ReturnStatement:
		return a.analyzeReturnStatement(s, scope, ctx)

	case *ast.BreakStatement:
		s.SetType("void")
		return "", false, nil

	case *ast.ContinueStatement:
		s.SetType("void")
		return "", false, nil

	case *ast.ExpressionStatement:
		if err := a.analyzeExpression(s.Expr, scope); err != nil {
			return "", false, err
		}
		s.SetType("void")
		return "", false, nil

	default:
		return "", false, cerr.NewUnpositioned(cerr.TypeCheck, "Unsupported statement node %T", stmt)
	}
}

func (a *Analyzer) analyzeIfStatement(s *ast.IfStatement, scope *symtab.Table, ctx *methodCtx) (string, bool, error) {
	if err := a.analyzeExpression(s.Condition, scope); err != nil {
		return "", false, err
	}
	if s.Condition.Type() != "boolean" {
		return "", false, cerr.New(cerr.TypeCheck, s.Condition.Pos(), "Condition must be boolean, got %s", s.Condition.Type())
	}

	thenScope := symtab.NewEnclosed(scope)
	if err := a.analyzeCodeBlock(s.Then, thenScope, ctx); err != nil {
		return "", false, err
	}

	hasElse := s.Else != nil
	var elseType string
	if hasElse {
		elseScope := symtab.NewEnclosed(scope)
		if err := a.analyzeCodeBlock(s.Else, elseScope, ctx); err != nil {
			return "", false, err
		}
		elseType = s.Else.Type()
	}

	s.SetType("void")

	if hasElse && s.Then.Type() != "void" && elseType != "void" {
		return s.Then.Type(), true, nil
	}
	return "", false, nil
}

func (a *Analyzer) analyzeWhileStatement(s *ast.WhileStatement, scope *symtab.Table, ctx *methodCtx) error {
	if err := a.analyzeExpression(s.Condition, scope); err != nil {
		return err
	}
	if s.Condition.Type() != "boolean" {
		return cerr.New(cerr.TypeCheck, s.Condition.Pos(), "Condition must be boolean, got %s", s.Condition.Type())
	}
	bodyScope := symtab.NewEnclosed(scope)
	if err := a.analyzeCodeBlock(s.Body, bodyScope, ctx); err != nil {
		return err
	}
	s.SetType("void")
	return nil
}

func (a *Analyzer) analyzeForStatement(s *ast.ForStatement, scope *symtab.Table, ctx *methodCtx) error {
	forScope := symtab.NewEnclosed(scope)

	if s.Init != nil {
		if err := a.analyzeCodeBlock(s.Init, forScope, ctx); err != nil {
			return err
		}
	}
	if s.Condition != nil {
		if err := a.analyzeExpression(s.Condition, forScope); err != nil {
			return err
		}
		if s.Condition.Type() != "boolean" {
			return cerr.New(cerr.TypeCheck, s.Condition.Pos(), "Condition must be boolean, got %s", s.Condition.Type())
		}
	}
	if s.Update != nil {
		if err := a.analyzeCodeBlock(s.Update, forScope, ctx); err != nil {
			return err
		}
	}
	if s.Body != nil {
		bodyScope := symtab.NewEnclosed(forScope)
		if err := a.analyzeCodeBlock(s.Body, bodyScope, ctx); err != nil {
			return err
		}
	}

	s.SetType("void")
	return nil
}

// analyzeReturnStatement enforces spec.md §4.3's return-typing rules: a
// bare return requires a void method; otherwise the expression's type
// must match or be upcastable to the declared return type, except an
// explicit cast is always accepted.
func (a *Analyzer) analyzeReturnStatement(s *ast.ReturnStatement, scope *symtab.Table, ctx *methodCtx) (string, bool, error) {
	if s.Operand == nil {
		if ctx.returnType != "void" {
			return "", false, cerr.New(cerr.TypeCheck, s.Pos(), "Method must return %s, got bare return", ctx.returnType)
		}
		s.SetType("void")
		return ast.ReturnVoidMarker, true, nil
	}

	if ctx.returnType == "void" {
		return "", false, cerr.New(cerr.TypeCheck, s.Pos(), "Method returns void but a value was returned")
	}

	if err := a.analyzeExpression(s.Operand, scope); err != nil {
		return "", false, err
	}
	rt := s.Operand.Type()

	if _, isCast := s.Operand.(*ast.CastExpression); !isCast {
		if rt != ctx.returnType && !canCast(rt, ctx.returnType, a.registry) {
			return "", false, cerr.New(cerr.TypeCheck, s.Pos(), "Cannot return %s where %s expected", rt, ctx.returnType)
		}
	}

	s.SetType("void")
	return rt, true, nil
}

// analyzeLocalVariableDecl validates the declared type and registers the
// name in the current scope (spec.md §4.3 LocalVariableDecl rule).
func (a *Analyzer) analyzeLocalVariableDecl(s *ast.LocalVariableDecl, scope *symtab.Table) error {
	f := s.Field
	if !a.isKnownType(f.TypeLexeme) {
		return cerr.New(cerr.TypeCheck, f.NamePos, "Unknown type %s for %s", f.TypeLexeme, f.Name)
	}
	if !scope.Define(symtab.NewVarSymbol(f.Name, f.TypeLexeme)) {
		return cerr.New(cerr.Declaration, f.NamePos, "Variable %s already declared in this scope", f.Name)
	}
	s.SetType(f.TypeLexeme)
	return nil
}

// analyzeAssignment implements spec.md §4.3's assignment typing table.
func (a *Analyzer) analyzeAssignment(s *ast.Assignment, scope *symtab.Table) error {
	if err := a.resolveReferenceChain(s.Lhs, scope); err != nil {
		return err
	}
	if s.Lhs.IsArrayLength() {
		return cerr.New(cerr.TypeCheck, s.Pos(), "Cannot assign to array length")
	}
	lt := s.Lhs.ResolvedType()

	if err := a.analyzeExpression(s.Rhs, scope); err != nil {
		return err
	}
	rt := s.Rhs.Type()

	switch s.Op {
	case "+=", "-=", "*=", "/=":
		if lt != "int" || rt != "int" {
			return cerr.New(cerr.TypeCheck, s.Pos(), "%s requires int operands, got %s and %s", s.Op, lt, rt)
		}

	case "&=", "|=", "^=":
		if lt != "int" && lt != "boolean" {
			return cerr.New(cerr.TypeCheck, s.Pos(), "%s requires int or boolean operands, got %s", s.Op, lt)
		}
		if lt != rt {
			return cerr.New(cerr.TypeCheck, s.Pos(), "%s requires matching operand types, got %s and %s", s.Op, lt, rt)
		}

	case "=":
		if lt == "void" || rt == "void" {
			return cerr.New(cerr.TypeCheck, s.Pos(), "Cannot assign void")
		}
		if lt != rt {
			if isPrimitive(lt) || isPrimitive(rt) {
				return cerr.New(cerr.TypeCheck, s.Pos(), "Cannot assign %s to %s", rt, lt)
			}
			if !canCast(rt, lt, a.registry) {
				return cerr.New(cerr.TypeCheck, s.Pos(), "Cannot assign %s to %s", rt, lt)
			}
		}

	default:
		return cerr.NewUnpositioned(cerr.TypeCheck, "Unknown assignment operator %s", s.Op)
	}

	s.SetType("void")
	return nil
}
