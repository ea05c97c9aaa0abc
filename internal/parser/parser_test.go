package parser

import (
	"testing"

	"github.com/cwbudde/minijavac/internal/ast"
	"github.com/cwbudde/minijavac/internal/cerr"
	"github.com/cwbudde/minijavac/internal/lexer"
)

func parseString(t *testing.T, src string) (*ast.Project, error) {
	t.Helper()
	return New(lexer.Tokenize(src)).Parse()
}

func mustParse(t *testing.T, src string) *ast.Project {
	t.Helper()
	project, err := parseString(t, src)
	if err != nil {
		t.Fatalf("Parse(%q) returned error: %v", src, err)
	}
	return project
}

func TestParseSingleEmptyClass(t *testing.T) {
	project := mustParse(t, `class Main { }`)
	if len(project.Classes) != 1 {
		t.Fatalf("expected 1 class, got %d", len(project.Classes))
	}
	if project.Classes[0].Name != "Main" {
		t.Errorf("Name = %q, want Main", project.Classes[0].Name)
	}
}

func TestParseInheritanceChain(t *testing.T) {
	project := mustParse(t, `
		class Animal { }
		class Dog extends Animal { }
	`)
	dog := project.Class("Dog")
	if dog == nil {
		t.Fatal("expected class Dog")
	}
	if dog.Extends != "Animal" {
		t.Errorf("Extends = %q, want Animal", dog.Extends)
	}
}

func TestParseSelfExtendsIsDeclarationError(t *testing.T) {
	_, err := parseString(t, `class Loop extends Loop { }`)
	assertDiagnosticCategory(t, err, cerr.Declaration)
}

func TestParseFieldsOfEachKind(t *testing.T) {
	project := mustParse(t, `
		class Point {
			int x;
			boolean flag;
			int[] data;
			Point next;
		}
	`)
	class := project.Class("Point")
	tests := []struct {
		name string
		kind ast.PrimitiveKind
	}{
		{"x", ast.PrimitiveInt},
		{"flag", ast.PrimitiveBoolean},
		{"data", ast.PrimitiveIntArray},
		{"next", ast.PrimitiveClass},
	}
	for _, tt := range tests {
		field := class.Field(tt.name)
		if field == nil {
			t.Fatalf("expected field %s", tt.name)
		}
		if field.PrimitiveKind != tt.kind {
			t.Errorf("field %s kind = %v, want %v", tt.name, field.PrimitiveKind, tt.kind)
		}
	}
}

func TestParseStaticFieldIsDeclarationError(t *testing.T) {
	_, err := parseString(t, `class Main { static int x; }`)
	assertDiagnosticCategory(t, err, cerr.Declaration)
}

func TestParseVoidFieldIsDeclarationError(t *testing.T) {
	_, err := parseString(t, `class Main { void x; }`)
	assertDiagnosticCategory(t, err, cerr.Declaration)
}

func TestParseMethodWithParamsAndBody(t *testing.T) {
	project := mustParse(t, `
		class Calc {
			int add(int a, int b) {
				return a + b;
			}
		}
	`)
	method := project.Class("Calc").Method("add")
	if method == nil {
		t.Fatal("expected method add")
	}
	if len(method.Params) != 2 {
		t.Fatalf("expected 2 params, got %d", len(method.Params))
	}
	if method.Params[0].Name != "a" || method.Params[1].Name != "b" {
		t.Errorf("unexpected param names: %+v", method.Params)
	}
	if len(method.Body.Statements) != 1 {
		t.Fatalf("expected 1 statement in body, got %d", len(method.Body.Statements))
	}
	if _, ok := method.Body.Statements[0].(*ast.ReturnStatement); !ok {
		t.Errorf("expected a ReturnStatement, got %T", method.Body.Statements[0])
	}
}

func TestParseMainMustBeStaticVoid(t *testing.T) {
	_, err := parseString(t, `class Main { public int main() { return 1; } }`)
	assertDiagnosticCategory(t, err, cerr.Declaration)
}

func TestParseOnlyMainCanBeStatic(t *testing.T) {
	_, err := parseString(t, `class Main { static int helper() { return 1; } }`)
	assertDiagnosticCategory(t, err, cerr.Declaration)
}

func TestParseDuplicateFieldIsDeclarationError(t *testing.T) {
	_, err := parseString(t, `class Point { int x; int x; }`)
	assertDiagnosticCategory(t, err, cerr.Declaration)
}

func TestParseDuplicateClassIsDeclarationError(t *testing.T) {
	_, err := parseString(t, `class Main { } class Main { }`)
	assertDiagnosticCategory(t, err, cerr.Declaration)
}

func TestParseLocalVarDeclWithInitializerDesugars(t *testing.T) {
	project := mustParse(t, `
		class Main {
			public static void main() {
				int x = 5;
			}
		}
	`)
	body := project.Class("Main").Method("main").Body
	if len(body.Statements) != 2 {
		t.Fatalf("expected decl + assignment, got %d statements", len(body.Statements))
	}
	if _, ok := body.Statements[0].(*ast.LocalVariableDecl); !ok {
		t.Errorf("statement 0 = %T, want *ast.LocalVariableDecl", body.Statements[0])
	}
	assign, ok := body.Statements[1].(*ast.Assignment)
	if !ok {
		t.Fatalf("statement 1 = %T, want *ast.Assignment", body.Statements[1])
	}
	if assign.Lhs.First().Token.Lexeme != "x" {
		t.Errorf("assignment target = %q, want x", assign.Lhs.First().Token.Lexeme)
	}
}

func TestParseIfElseWhileDoWhileFor(t *testing.T) {
	project := mustParse(t, `
		class Main {
			public static void main() {
				int i;
				if (i == 0) {
					i = 1;
				} else {
					i = 2;
				}
				while (i < 10) {
					i = i + 1;
				}
				do {
					i = i - 1;
				} while (i > 0);
				for (int j = 0; j < 10; j = j + 1) {
					i = i + j;
				}
			}
		}
	`)
	body := project.Class("Main").Method("main").Body
	var kinds []string
	for _, stmt := range body.Statements {
		switch stmt.(type) {
		case *ast.LocalVariableDecl:
			kinds = append(kinds, "decl")
		case *ast.IfStatement:
			kinds = append(kinds, "if")
		case *ast.WhileStatement:
			kinds = append(kinds, "while")
		case *ast.ForStatement:
			kinds = append(kinds, "for")
		default:
			kinds = append(kinds, "other")
		}
	}
	want := []string{"decl", "if", "while", "while", "for"}
	if len(kinds) != len(want) {
		t.Fatalf("statement kinds = %v, want %v", kinds, want)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Fatalf("statement kinds = %v, want %v", kinds, want)
		}
	}

	ifStmt := body.Statements[1].(*ast.IfStatement)
	if ifStmt.Else == nil {
		t.Error("expected an else branch")
	}

	doWhile := body.Statements[3].(*ast.WhileStatement)
	if !doWhile.IsDoWhile {
		t.Error("expected the second while to be flagged IsDoWhile")
	}
}

func TestParseBreakAndContinue(t *testing.T) {
	project := mustParse(t, `
		class Main {
			public static void main() {
				while (true) {
					break;
					continue;
				}
			}
		}
	`)
	loopBody := project.Class("Main").Method("main").Body.Statements[0].(*ast.WhileStatement).Body
	if _, ok := loopBody.Statements[0].(*ast.BreakStatement); !ok {
		t.Errorf("statement 0 = %T, want *ast.BreakStatement", loopBody.Statements[0])
	}
	if _, ok := loopBody.Statements[1].(*ast.ContinueStatement); !ok {
		t.Errorf("statement 1 = %T, want *ast.ContinueStatement", loopBody.Statements[1])
	}
}

func TestParseBinaryPrecedenceMultiplicationBeforeAddition(t *testing.T) {
	project := mustParse(t, `
		class Main {
			public static void main() {
				int x = 1 + 2 * 3;
			}
		}
	`)
	assign := project.Class("Main").Method("main").Body.Statements[1].(*ast.Assignment)
	top, ok := assign.Rhs.(*ast.BinaryExpression)
	if !ok {
		t.Fatalf("rhs = %T, want *ast.BinaryExpression", assign.Rhs)
	}
	if top.Op != "+" {
		t.Fatalf("top operator = %q, want +, got tree %+v", top.Op, top)
	}
	right, ok := top.Right.(*ast.BinaryExpression)
	if !ok || right.Op != "*" {
		t.Fatalf("right operand = %+v, want a * expression", top.Right)
	}
}

func TestParseCastExpression(t *testing.T) {
	project := mustParse(t, `
		class Main {
			public static void main() {
				int x = (int) y;
			}
		}
	`)
	assign := project.Class("Main").Method("main").Body.Statements[1].(*ast.Assignment)
	cast, ok := assign.Rhs.(*ast.CastExpression)
	if !ok {
		t.Fatalf("rhs = %T, want *ast.CastExpression", assign.Rhs)
	}
	if cast.TargetTypeLexeme != "int" {
		t.Errorf("TargetType = %q, want int", cast.TargetTypeLexeme)
	}
}

func TestParseParenthesizedExpressionIsNotCastWhenFollowedByOperator(t *testing.T) {
	// (x) + 1 must parse as grouping, never a cast, per the documented
	// disambiguation rule.
	project := mustParse(t, `
		class Main {
			public static void main() {
				int x = (y) + 1;
			}
		}
	`)
	assign := project.Class("Main").Method("main").Body.Statements[1].(*ast.Assignment)
	bin, ok := assign.Rhs.(*ast.BinaryExpression)
	if !ok {
		t.Fatalf("rhs = %T, want *ast.BinaryExpression", assign.Rhs)
	}
	if _, ok := bin.Left.(*ast.CastExpression); ok {
		t.Error("left operand should not be a cast expression")
	}
}

func TestParseNewObjectAndNewArray(t *testing.T) {
	project := mustParse(t, `
		class Dog { }
		class Main {
			public static void main() {
				Dog d = new Dog();
				int[] a = new int[10];
			}
		}
	`)
	body := project.Class("Main").Method("main").Body
	dogAssign := body.Statements[1].(*ast.Assignment)
	dogRef, ok := dogAssign.Rhs.(*ast.Reference)
	if !ok {
		t.Fatalf("Dog initializer = %T, want *ast.Reference", dogAssign.Rhs)
	}
	if dogRef.Chain.First().NewObject == nil || dogRef.Chain.First().NewObject.IsArrayAllocation() {
		t.Error("expected a class allocation for new Dog()")
	}

	arrAssign := body.Statements[3].(*ast.Assignment)
	arrRef, ok := arrAssign.Rhs.(*ast.Reference)
	if !ok {
		t.Fatalf("array initializer = %T, want *ast.Reference", arrAssign.Rhs)
	}
	if arrRef.Chain.First().NewObject == nil || !arrRef.Chain.First().NewObject.IsArrayAllocation() {
		t.Error("expected an array allocation for new int[10]")
	}
}

func TestParseMethodCallAndArrayIndexChain(t *testing.T) {
	project := mustParse(t, `
		class Main {
			public static void main() {
				int x = this.helper(1, 2);
				int y = data[0];
			}
			int helper(int a, int b) {
				return a + b;
			}
		}
	`)
	body := project.Class("Main").Method("main").Body

	callAssign := body.Statements[1].(*ast.Assignment)
	callRef := callAssign.Rhs.(*ast.Reference)
	last := callRef.Chain.Last()
	if last.PayloadKind != ast.PayloadMethodCall || last.MethodCall == nil {
		t.Fatalf("expected a method-call payload on the chain tail, got %+v", last)
	}
	if len(last.MethodCall.Args) != 2 {
		t.Errorf("expected 2 call args, got %d", len(last.MethodCall.Args))
	}

	idxAssign := body.Statements[3].(*ast.Assignment)
	idxRef := idxAssign.Rhs.(*ast.Reference)
	idxLast := idxRef.Chain.Last()
	if idxLast.PayloadKind != ast.PayloadArrayCall || idxLast.ArrayCall == nil {
		t.Fatalf("expected an array-call payload on the chain tail, got %+v", idxLast)
	}
}

func TestParseUnexpectedTokenIsSyntaxError(t *testing.T) {
	_, err := parseString(t, `class Main { public static void main() { x = ; } }`)
	assertDiagnosticCategory(t, err, cerr.Syntax)
}

func TestParseMissingClosingBraceReportsEOF(t *testing.T) {
	_, err := parseString(t, `class Main {`)
	if err == nil {
		t.Fatal("expected an error for an unterminated class body")
	}
	diag, ok := err.(*cerr.Diagnostic)
	if !ok {
		t.Fatalf("error = %T, want *cerr.Diagnostic", err)
	}
	if diag.HasPos {
		t.Error("expected an EOF diagnostic to carry no position")
	}
}

func TestParseMissingSemicolonIsSyntaxError(t *testing.T) {
	_, err := parseString(t, `class Main { int x }`)
	assertDiagnosticCategory(t, err, cerr.Syntax)
}

func assertDiagnosticCategory(t *testing.T, err error, want cerr.Category) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected an error with category %s, got nil", want)
	}
	diag, ok := err.(*cerr.Diagnostic)
	if !ok {
		t.Fatalf("error = %T (%v), want *cerr.Diagnostic", err, err)
	}
	if diag.Category != want {
		t.Fatalf("Category = %s, want %s (message: %s)", diag.Category, want, diag.Message)
	}
}
