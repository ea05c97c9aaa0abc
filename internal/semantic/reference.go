package semantic

import (
	"github.com/cwbudde/minijavac/internal/ast"
	"github.com/cwbudde/minijavac/internal/cerr"
	"github.com/cwbudde/minijavac/internal/symtab"
	"github.com/cwbudde/minijavac/internal/token"
)

// resolveReferenceChain implements spec.md §4.3 "Reference chain
// resolution": it walks the chain left to right maintaining a current-type
// string, back-filling caller_type on MethodCall/ArrayCall payloads along
// the way, and sets the chain's own resolved type to the final current
// type.
func (a *Analyzer) resolveReferenceChain(chain *ast.ReferenceChain, scope *symtab.Table) error {
	if len(chain.Steps) == 0 {
		return cerr.NewUnpositioned(cerr.NameResolution, "Empty reference chain")
	}

	currentType, err := a.resolveChainHead(chain.Steps[0], scope)
	if err != nil {
		return err
	}
	chain.Steps[0].ResolvedType = currentType

	for i := 1; i < len(chain.Steps); i++ {
		nextType, isLen, err := a.resolveChainMember(currentType, chain.Steps[i], scope)
		if err != nil {
			return err
		}
		if isLen {
			chain.SetIsArrayLength(true)
		}
		currentType = nextType
		chain.Steps[i].ResolvedType = currentType
	}

	chain.SetResolvedType(currentType)
	return nil
}

// resolveChainHead resolves the chain's first element: `this`, an
// identifier (optionally called or indexed with an implicit `this`
// receiver), or a payload-first `new` (spec.md §4.3 item 1).
func (a *Analyzer) resolveChainHead(step ast.ChainStep, scope *symtab.Table) (string, error) {
	tok := step.Token

	if step.PayloadKind == ast.PayloadNewObject {
		return a.analyzeNewObject(step.NewObject, scope)
	}

	if tok.Lexeme == token.KwThis {
		if step.PayloadKind != ast.PayloadNone {
			return "", cerr.New(cerr.NameResolution, tok.Pos, "'this' cannot be called or indexed")
		}
		enclosing := scope.EnclosingClass()
		if enclosing == nil {
			return "", cerr.New(cerr.NameResolution, tok.Pos, "'this' is not valid here")
		}
		return enclosing.ClassName, nil
	}

	sym, ok := scope.Lookup(tok.Lexeme)
	if !ok {
		return "", cerr.New(cerr.NameResolution, tok.Pos, "Undefined reference %s", tok.Lexeme)
	}

	switch step.PayloadKind {
	case ast.PayloadNone:
		return sym.Type, nil

	case ast.PayloadMethodCall:
		enclosing := scope.EnclosingClass()
		if enclosing == nil {
			return "", cerr.New(cerr.NameResolution, tok.Pos, "Cannot call %s outside a class", tok.Lexeme)
		}
		return a.analyzeMethodCall(step.MethodCall, enclosing.ClassName, scope)

	case ast.PayloadArrayCall:
		if sym.Type != "int[]" {
			return "", cerr.New(cerr.TypeCheck, tok.Pos, "%s is not an array", tok.Lexeme)
		}
		return a.analyzeArrayCall(step.ArrayCall, sym.Type, scope)

	default:
		return "", cerr.NewUnpositioned(cerr.NameResolution, "Unsupported chain head payload")
	}
}

// resolveChainMember resolves a non-head chain element against
// currentType's class table, climbing inherited members via the table's
// own parent chain (spec.md §4.3 item 2), and handles the special
// trailing `.length` on an int[] (item 3).
func (a *Analyzer) resolveChainMember(currentType string, step ast.ChainStep, scope *symtab.Table) (string, bool, error) {
	tok := step.Token

	if currentType == "int[]" && tok.Lexeme == "length" && step.PayloadKind == ast.PayloadNone {
		return "int", true, nil
	}

	table := a.registry.Lookup(currentType)
	if table == nil {
		return "", false, cerr.New(cerr.NameResolution, tok.Pos, "Type %s has no members", currentType)
	}

	sym, ok := table.Lookup(tok.Lexeme)
	if !ok {
		return "", false, cerr.New(cerr.NameResolution, tok.Pos, "Undefined member %s on %s", tok.Lexeme, currentType)
	}

	switch step.PayloadKind {
	case ast.PayloadNone:
		return sym.Type, false, nil

	case ast.PayloadMethodCall:
		t, err := a.analyzeMethodCall(step.MethodCall, currentType, scope)
		return t, false, err

	case ast.PayloadArrayCall:
		if sym.Type != "int[]" {
			return "", false, cerr.New(cerr.TypeCheck, tok.Pos, "%s is not an array", tok.Lexeme)
		}
		t, err := a.analyzeArrayCall(step.ArrayCall, sym.Type, scope)
		return t, false, err

	default:
		return "", false, cerr.NewUnpositioned(cerr.NameResolution, "Unsupported chain payload")
	}
}

// analyzeMethodCall back-fills call.CallerType, validates argument count
// and types against the resolved method symbol, and returns its return
// type (spec.md §4.3 MethodCall rule).
func (a *Analyzer) analyzeMethodCall(call *ast.MethodCall, callerType string, scope *symtab.Table) (string, error) {
	call.CallerType = callerType
	table := a.registry.Lookup(callerType)
	if table == nil {
		return "", cerr.New(cerr.NameResolution, call.NamePos, "Type %s has no members", callerType)
	}
	sym, ok := table.Lookup(call.Name)
	if !ok || !sym.IsMethod {
		return "", cerr.New(cerr.NameResolution, call.NamePos, "Undefined member %s on %s", call.Name, callerType)
	}

	if len(call.Args) != len(sym.Params) {
		return "", cerr.New(cerr.TypeCheck, call.NamePos, "%s expects %d argument(s), got %d", call.Name, len(sym.Params), len(call.Args))
	}
	for i, arg := range call.Args {
		if err := a.analyzeExpression(arg, scope); err != nil {
			return "", err
		}
		if arg.Type() != sym.Params[i] && !canCast(arg.Type(), sym.Params[i], a.registry) {
			return "", cerr.New(cerr.TypeCheck, arg.Pos(), "Argument %d to %s: cannot use %s as %s", i+1, call.Name, arg.Type(), sym.Params[i])
		}
	}

	call.SetType(sym.ReturnType)
	return sym.ReturnType, nil
}

// analyzeArrayCall validates the index expression and returns "int"
// (spec.md §4.3 ArrayCall rule).
func (a *Analyzer) analyzeArrayCall(call *ast.ArrayCall, callerType string, scope *symtab.Table) (string, error) {
	if callerType != "int[]" {
		return "", cerr.New(cerr.TypeCheck, call.Pos(), "%s is not an array", call.ArrayName)
	}
	if err := a.analyzeExpression(call.Index, scope); err != nil {
		return "", err
	}
	if call.Index.Type() != "int" {
		return "", cerr.New(cerr.TypeCheck, call.Index.Pos(), "Array index must be int, got %s", call.Index.Type())
	}

	call.CallerType = callerType
	call.SetType("int")
	return "int", nil
}
