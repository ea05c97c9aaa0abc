package codegen

import (
	"strings"

	"github.com/cwbudde/minijavac/internal/ast"
)

// intArrayAllocatorName is the fixed allocator for the __int_array support
// type emitted alongside every class (spec.md §4.4's array-support pair).
const intArrayAllocatorName = "$_new___int_array"

// cType implements spec.md §4.4's type-lowering table.
func cType(miniType string) string {
	switch miniType {
	case "int":
		return "int"
	case "boolean":
		return "bool"
	case "int[]":
		return "__int_array*"
	case "void":
		return "void"
	default:
		return miniType + "*"
	}
}

func isPrimitiveTypeLexeme(t string) bool {
	switch t {
	case "int", "boolean", "int[]", "void":
		return true
	default:
		return false
	}
}

// defaultValueExpr is the zero value a field is initialized to inside its
// owning class's allocator.
func defaultValueExpr(t string) string {
	switch t {
	case "int":
		return "0"
	case "boolean":
		return "false"
	default:
		return "NULL"
	}
}

func functionPointerName(method string) string      { return "$_function_" + method }
func globalFunctionName(class, method string) string { return class + "_" + method }
func allocatorName(class string) string              { return "$_new_" + class }

func paramListSuffix(params []*ast.Field) string {
	var b strings.Builder
	for _, p := range params {
		b.WriteString(", ")
		b.WriteString(cType(p.TypeLexeme))
		b.WriteString(" ")
		b.WriteString(p.Name)
	}
	return b.String()
}
