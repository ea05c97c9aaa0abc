// Package codegen lowers an analyzed ast.Project into portable C source
// (spec.md §4.4): one struct per class with single-inheritance embedding,
// function-pointer dispatch tables, and three-address control flow.
package codegen

import (
	"sort"
	"strings"

	"github.com/cwbudde/minijavac/internal/ast"
	"github.com/cwbudde/minijavac/internal/symtab"
)

// loopLabels is the (continue, break) target pair pushed for the
// innermost enclosing loop (spec.md §4.4's "stack of (continue_label,
// break_label) pairs").
type loopLabels struct {
	continueLabel string
	breakLabel    string
}

// Generator carries the per-class and per-method state described in
// spec.md §4.4: temp/label counters, a scope-frame stack for locals, a
// loop-label stack, and a types-used set for header dependency tracking.
type Generator struct {
	project  *ast.Project
	registry *symtab.Registry

	class *ast.Class

	tempCounter  int
	labelCounter int
	loopStack    []loopLabels
	scopeStack   []map[string]string
	typesUsed    map[string]bool
}

// NewGenerator creates a generator over an analyzed project and its
// registry (spec.md §3 "Lifecycle": code generator reads both, read-only).
func NewGenerator(project *ast.Project, registry *symtab.Registry) *Generator {
	return &Generator{project: project, registry: registry}
}

// GenerateAll lowers every user class plus the fixed array-support pair
// and a build manifest, returning a filename -> content map the emitter
// writes out (spec.md §4.4, §6 "Output").
func (g *Generator) GenerateAll() (map[string]string, error) {
	out := map[string]string{
		"__int_array.h": intArrayHeader,
		"__int_array.c": intArraySource,
	}

	for _, name := range g.classOrder() {
		class := g.project.Class(name)
		header, source, err := g.generateClassFiles(class)
		if err != nil {
			return nil, err
		}
		out[class.Name+".h"] = header
		out[class.Name+".c"] = source
	}

	out["CMakeLists.txt"] = g.generateBuildManifest()
	return out, nil
}

// classOrder returns user classes in the registry's topological
// registration order, skipping the two built-in class tables.
func (g *Generator) classOrder() []string {
	var names []string
	for _, name := range g.registry.Order() {
		if _, ok := g.project.ClassName[name]; ok {
			names = append(names, name)
		}
	}
	return names
}

func (g *Generator) generateClassFiles(class *ast.Class) (string, string, error) {
	g.class = class
	g.typesUsed = make(map[string]bool)

	header := g.generateHeader(class)

	var body strings.Builder
	body.WriteString(g.generateAllocator(class))
	body.WriteString("\n")

	for _, m := range class.Methods {
		g.resetPerMethodState()

		var fnText string
		var err error
		if m.IsMain {
			fnText, err = g.generateMainFunction(m)
		} else {
			fnText, err = g.generateMethodFunction(class, m)
		}
		if err != nil {
			return "", "", err
		}
		body.WriteString(fnText)
		body.WriteString("\n")
	}

	source := g.generateSource(class, body.String())
	return header, source, nil
}

// generateSource assembles a class's .c file: fixed includes, its own
// header, then any extra includes for types referenced in lowered bodies
// but not already pulled in by the header (spec.md §4.4).
func (g *Generator) generateSource(class *ast.Class, body string) string {
	var b strings.Builder
	b.WriteString("#include <stdlib.h>\n")
	b.WriteString("#include <stdio.h>\n")
	b.WriteString("#include \"" + class.Name + ".h\"\n")

	known := map[string]bool{class.Name: true}
	for _, d := range g.headerDependencies(class) {
		known[d] = true
	}
	var extra []string
	for t := range g.typesUsed {
		if !known[t] {
			extra = append(extra, t)
		}
	}
	sort.Strings(extra)
	for _, t := range extra {
		b.WriteString("#include \"" + t + ".h\"\n")
	}

	b.WriteString("\n")
	b.WriteString(body)
	return b.String()
}

func (g *Generator) generateMethodFunction(class *ast.Class, m *ast.Method) (string, error) {
	g.pushScope()
	for _, p := range m.Params {
		g.declareLocal(p.Name, p.TypeLexeme)
		g.markTypeUsed(p.TypeLexeme)
	}
	body, err := g.lowerCodeBlock(m.Body)
	g.popScope()
	if err != nil {
		return "", err
	}
	g.markTypeUsed(m.ReturnLex)

	var b strings.Builder
	b.WriteString(cType(m.ReturnLex) + " " + globalFunctionName(class.Name, m.Name) + "(void* $this" + paramListSuffix(m.Params) + ") {\n")
	b.WriteString("\t" + class.Name + "* super = (" + class.Name + "*) $this;\n")
	b.WriteString(indent(body, 1))
	b.WriteString("}\n")
	return b.String(), nil
}

// generateMainFunction emits `int main(void)` with no receiver parameter
// (spec.md §4.4: "main emits int main() with no $this").
func (g *Generator) generateMainFunction(m *ast.Method) (string, error) {
	g.pushScope()
	body, err := g.lowerCodeBlock(m.Body)
	g.popScope()
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("int main(void) {\n")
	b.WriteString(indent(body, 1))
	b.WriteString("\treturn 0;\n")
	b.WriteString("}\n")
	return b.String(), nil
}

func (g *Generator) resetPerMethodState() {
	g.tempCounter = 0
	g.labelCounter = 0
	g.loopStack = nil
	g.scopeStack = nil
}

func (g *Generator) pushScope() {
	g.scopeStack = append(g.scopeStack, make(map[string]string))
}

func (g *Generator) popScope() {
	g.scopeStack = g.scopeStack[:len(g.scopeStack)-1]
}

func (g *Generator) declareLocal(name, typ string) {
	g.scopeStack[len(g.scopeStack)-1][name] = typ
}

func (g *Generator) lookupLocal(name string) (string, bool) {
	for i := len(g.scopeStack) - 1; i >= 0; i-- {
		if t, ok := g.scopeStack[i][name]; ok {
			return t, true
		}
	}
	return "", false
}

// markTypeUsed records a class type referenced by a lowered body, for the
// source file's trailing dependency includes (spec.md §4.4).
func (g *Generator) markTypeUsed(t string) {
	if t == "" || isPrimitiveTypeLexeme(t) || t == g.class.Name {
		return
	}
	g.typesUsed[t] = true
}

func (g *Generator) newTemp() string {
	t := "$_t_" + itoa(g.tempCounter)
	g.tempCounter++
	return t
}

// newLabelSet returns a fresh integer suffix shared by every label a
// single control-flow construct needs, keeping them unique within the
// enclosing C function (spec.md §4.4).
func (g *Generator) newLabelSet() int {
	n := g.labelCounter
	g.labelCounter++
	return n
}

// indent prefixes every line of code with level tabs.
func indent(code string, level int) string {
	if code == "" {
		return ""
	}
	prefix := strings.Repeat("\t", level)
	lines := strings.Split(strings.TrimRight(code, "\n"), "\n")
	for i, l := range lines {
		lines[i] = prefix + l
	}
	return strings.Join(lines, "\n") + "\n"
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var digits []byte
	for n > 0 {
		digits = append([]byte{byte('0' + n%10)}, digits...)
		n /= 10
	}
	if neg {
		return "-" + string(digits)
	}
	return string(digits)
}
