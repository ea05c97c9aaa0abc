package ast

import (
	"testing"

	"github.com/cwbudde/minijavac/internal/token"
)

func pos(line, col int) token.Position { return token.Position{Line: line, Column: col} }

func TestPrimitiveKindString(t *testing.T) {
	tests := []struct {
		kind PrimitiveKind
		want string
	}{
		{PrimitiveInt, "int"},
		{PrimitiveBoolean, "boolean"},
		{PrimitiveIntArray, "int[]"},
		{PrimitiveClass, "class"},
		{PrimitiveVoid, "void"},
		{PrimitiveKind(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("PrimitiveKind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestProjectAddClassRejectsDuplicateName(t *testing.T) {
	p := NewProject()
	if !p.AddClass(NewClass("Animal", pos(1, 1))) {
		t.Fatal("first AddClass(Animal) should succeed")
	}
	if p.AddClass(NewClass("Animal", pos(2, 1))) {
		t.Fatal("second AddClass(Animal) should fail")
	}
	if p.Class("Animal") == nil {
		t.Error("expected Class(Animal) to find the registered class")
	}
	if p.Class("Dog") != nil {
		t.Error("expected Class(Dog) to return nil")
	}
}

func TestClassAddFieldRejectsDuplicateName(t *testing.T) {
	c := NewClass("Point", pos(1, 1))
	x := &Field{PrimitiveKind: PrimitiveInt, TypeLexeme: "int", Name: "x", NamePos: pos(1, 2)}
	if !c.AddField(x) {
		t.Fatal("first AddField(x) should succeed")
	}
	dup := &Field{PrimitiveKind: PrimitiveInt, TypeLexeme: "int", Name: "x", NamePos: pos(1, 3)}
	if c.AddField(dup) {
		t.Fatal("second AddField(x) should fail")
	}
	if c.Field("x") != x {
		t.Error("expected Field(x) to return the originally added field")
	}
	if c.Field("y") != nil {
		t.Error("expected Field(y) to return nil")
	}
}

func TestClassAddMethodRejectsDuplicateName(t *testing.T) {
	c := NewClass("Point", pos(1, 1))
	m := NewMethod("getX", pos(1, 2))
	if !c.AddMethod(m) {
		t.Fatal("first AddMethod(getX) should succeed")
	}
	if c.AddMethod(NewMethod("getX", pos(1, 3))) {
		t.Fatal("second AddMethod(getX) should fail")
	}
	if c.Method("getX") != m {
		t.Error("expected Method(getX) to return the originally added method")
	}
}

func TestMethodAddParamRejectsDuplicateName(t *testing.T) {
	m := NewMethod("set", pos(1, 1))
	p := &Field{PrimitiveKind: PrimitiveInt, TypeLexeme: "int", Name: "v", NamePos: pos(1, 2)}
	if !m.AddParam(p) {
		t.Fatal("first AddParam(v) should succeed")
	}
	if m.AddParam(&Field{PrimitiveKind: PrimitiveInt, TypeLexeme: "int", Name: "v", NamePos: pos(1, 3)}) {
		t.Fatal("second AddParam(v) should fail")
	}
}

func TestBaseTypeRoundTrip(t *testing.T) {
	n := NewNumberLiteral(token.Token{Kind: token.NUMBER, Lexeme: "1", Pos: pos(1, 1)})
	if n.Type() != "" {
		t.Errorf("expected a fresh node to have empty type, got %q", n.Type())
	}
	n.SetType("int")
	if n.Type() != "int" {
		t.Errorf("expected Type() to reflect SetType, got %q", n.Type())
	}
	if n.Pos() != pos(1, 1) {
		t.Errorf("Pos() = %v, want %v", n.Pos(), pos(1, 1))
	}
}

func TestNewObjectIsArrayAllocation(t *testing.T) {
	size := NewNumberLiteral(token.Token{Kind: token.NUMBER, Lexeme: "10", Pos: pos(1, 1)})
	arrayAlloc := NewArrayAllocation(pos(1, 1), size)
	if !arrayAlloc.IsArrayAllocation() {
		t.Error("expected array allocation to report IsArrayAllocation() == true")
	}

	classAlloc := NewClassAllocation(pos(1, 1), "Dog")
	if classAlloc.IsArrayAllocation() {
		t.Error("expected class allocation to report IsArrayAllocation() == false")
	}
}

func TestReferenceChainFirstLastOnEmptyChain(t *testing.T) {
	c := NewReferenceChain()
	if c.First() != (ChainStep{}) {
		t.Error("First() on an empty chain should be a zero ChainStep")
	}
	if c.Last() != (ChainStep{}) {
		t.Error("Last() on an empty chain should be a zero ChainStep")
	}
	if c.Pos() != (token.Position{}) {
		t.Error("Pos() on an empty chain should be the zero Position")
	}
}

func TestReferenceChainAppendAndResolvedType(t *testing.T) {
	c := NewReferenceChain()
	head := ChainStep{Token: token.Token{Lexeme: "this", Pos: pos(2, 3)}}
	tail := ChainStep{Token: token.Token{Lexeme: "x", Pos: pos(2, 8)}}
	c.Append(head)
	c.Append(tail)

	if c.First().Token.Lexeme != "this" {
		t.Errorf("First() = %+v, want head step", c.First())
	}
	if c.Last().Token.Lexeme != "x" {
		t.Errorf("Last() = %+v, want tail step", c.Last())
	}
	if c.Pos() != pos(2, 3) {
		t.Errorf("Pos() = %v, want head token position", c.Pos())
	}

	c.SetResolvedType("Dog")
	if c.ResolvedType() != "Dog" {
		t.Errorf("ResolvedType() = %q, want %q", c.ResolvedType(), "Dog")
	}

	c.SetIsArrayLength(true)
	if !c.IsArrayLength() {
		t.Error("expected IsArrayLength() == true after SetIsArrayLength(true)")
	}
}

func TestChainStepIsPayloadLess(t *testing.T) {
	plain := ChainStep{PayloadKind: PayloadNone}
	if !plain.IsPayloadLess() {
		t.Error("expected a PayloadNone step to report IsPayloadLess() == true")
	}
	called := ChainStep{PayloadKind: PayloadMethodCall}
	if called.IsPayloadLess() {
		t.Error("expected a PayloadMethodCall step to report IsPayloadLess() == false")
	}
}
