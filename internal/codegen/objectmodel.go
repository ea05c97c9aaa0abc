package codegen

import (
	"strings"

	"github.com/cwbudde/minijavac/internal/ast"
)

// ancestorChain returns class's inheritance chain root-first, ending with
// class itself (spec.md §4.4's struct-per-class object model).
func (g *Generator) ancestorChain(class *ast.Class) []*ast.Class {
	var chain []*ast.Class
	for cur := class; cur != nil; {
		chain = append(chain, cur)
		if cur.Extends == "" {
			break
		}
		cur = g.project.Class(cur.Extends)
	}
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain
}

// introducingIndex returns the chain index of the ancestor that first
// declares a method named name — the class whose struct owns that
// function-pointer field (overrides reuse this slot, they don't add one).
func (g *Generator) introducingIndex(chain []*ast.Class, name string) int {
	for i, c := range chain {
		if c.Method(name) != nil {
			return i
		}
	}
	return len(chain) - 1
}

// introducesMethod reports whether class is the first ancestor (searching
// from the root down) to declare name — i.e. whether its own struct needs a
// fresh function-pointer field for it, as opposed to overriding a slot
// inherited from further up the chain.
func (g *Generator) introducesMethod(class *ast.Class, name string) bool {
	chain := g.ancestorChain(class)
	for _, c := range chain {
		if c.Name == class.Name {
			return true
		}
		if c.Method(name) != nil {
			return false
		}
	}
	return true
}

// headerDependencies lists the class types a header must #include: the
// parent (embedded by value, so its layout must be complete) and every
// field, parameter, and return type naming a class.
func (g *Generator) headerDependencies(class *ast.Class) []string {
	seen := map[string]bool{class.Name: true}
	var deps []string
	add := func(t string) {
		if t == "" || isPrimitiveTypeLexeme(t) || seen[t] {
			return
		}
		seen[t] = true
		deps = append(deps, t)
	}

	if class.Extends != "" {
		add(class.Extends)
	}
	for _, f := range class.Fields {
		add(f.TypeLexeme)
	}
	for _, m := range class.Methods {
		if m.IsMain {
			continue
		}
		add(m.ReturnLex)
		for _, p := range m.Params {
			add(p.TypeLexeme)
		}
	}
	return deps
}

// generateHeader emits <Class>.h: guard, fixed includes, dependency
// includes, the struct (embedded super plus owned fields and newly
// introduced function-pointer slots), forward declarations for every
// non-main method, and the allocator declaration (spec.md §4.4).
func (g *Generator) generateHeader(class *ast.Class) string {
	var b strings.Builder
	guard := strings.ToUpper(class.Name) + "_H"
	b.WriteString("#ifndef " + guard + "\n#define " + guard + "\n\n")
	b.WriteString("#include <stdbool.h>\n")
	b.WriteString("#include \"__int_array.h\"\n")
	for _, dep := range g.headerDependencies(class) {
		b.WriteString("#include \"" + dep + ".h\"\n")
	}
	b.WriteString("\n")

	b.WriteString("typedef struct " + class.Name + " " + class.Name + ";\n\n")
	b.WriteString("struct " + class.Name + " {\n")
	if class.Extends != "" {
		b.WriteString("\t" + class.Extends + " super;\n")
	}
	for _, f := range class.Fields {
		b.WriteString("\t" + cType(f.TypeLexeme) + " " + f.Name + ";\n")
	}
	for _, m := range class.Methods {
		if m.IsMain || !g.introducesMethod(class, m.Name) {
			continue
		}
		b.WriteString("\t" + cType(m.ReturnLex) + " (*" + functionPointerName(m.Name) + ")(void* $this" + paramListSuffix(m.Params) + ");\n")
	}
	b.WriteString("};\n\n")

	for _, m := range class.Methods {
		if m.IsMain {
			continue
		}
		b.WriteString(cType(m.ReturnLex) + " " + globalFunctionName(class.Name, m.Name) + "(void* $this" + paramListSuffix(m.Params) + ");\n")
	}
	b.WriteString(class.Name + "* " + allocatorName(class.Name) + "(void);\n\n")

	b.WriteString("#endif /* " + guard + " */\n")
	return b.String()
}

// fieldPath builds the `.super` climb from root, a pointer, to a field or
// function-pointer slot depth levels up the embedded hierarchy: the first
// hop uses -> because root is a pointer, every further hop uses . because
// each super is embedded by value (spec.md §4.4 "Reference-chain lowering").
func fieldPath(root string, depth int, name string) string {
	if depth == 0 {
		return root + "->" + name
	}
	return root + "->" + strings.Repeat("super.", depth) + name
}

// generateAllocator emits $_new_<Class>: malloc the struct, default-init
// every field across the full ancestor chain, then install each visible
// method's most-derived override into its introducing ancestor's slot
// (spec.md §4.4 and the override scenario in spec.md §8).
func (g *Generator) generateAllocator(class *ast.Class) string {
	chain := g.ancestorChain(class)
	leafIdx := len(chain) - 1

	var b strings.Builder
	b.WriteString(class.Name + "* " + allocatorName(class.Name) + "(void) {\n")
	b.WriteString("\t" + class.Name + "* obj = (" + class.Name + "*) malloc(sizeof(" + class.Name + "));\n")

	for idx, ancestor := range chain {
		depth := leafIdx - idx
		for _, f := range ancestor.Fields {
			b.WriteString("\t" + fieldPath("obj", depth, f.Name) + " = " + defaultValueExpr(f.TypeLexeme) + ";\n")
		}
	}

	installed := map[string]bool{}
	for idx := leafIdx; idx >= 0; idx-- {
		owner := chain[idx]
		for _, m := range owner.Methods {
			if m.IsMain || installed[m.Name] {
				continue
			}
			installed[m.Name] = true
			depth := leafIdx - g.introducingIndex(chain, m.Name)
			slot := fieldPath("obj", depth, functionPointerName(m.Name))
			b.WriteString("\t" + slot + " = &" + globalFunctionName(owner.Name, m.Name) + ";\n")
		}
	}

	b.WriteString("\treturn obj;\n}\n")
	return b.String()
}
