package semantic

import "github.com/cwbudde/minijavac/internal/symtab"

// isPrimitive reports whether t is one of the non-class resolved-type
// strings (spec.md §3).
func isPrimitive(t string) bool {
	switch t {
	case "int", "boolean", "int[]", "void":
		return true
	default:
		return false
	}
}

// canCast walks from's class table up its parent chain looking for to
// (spec.md §4.3 "canCast"). Primitive types are equal only to themselves,
// which the from == to check above the walk already covers.
func canCast(from, to string, reg *symtab.Registry) bool {
	if from == to {
		return true
	}
	table := reg.Lookup(from)
	if table == nil {
		return false
	}
	for t := table.Parent; t != nil; t = t.Parent {
		if t.ClassName == to {
			return true
		}
	}
	return false
}

// isKnownType reports whether t names a primitive or a registered class —
// the condition spec.md §4.3 requires of every declared type.
func (a *Analyzer) isKnownType(t string) bool {
	if isPrimitive(t) {
		return true
	}
	return a.registry.Has(t)
}

// castIsMeaningful implements spec.md §8's cast boundary behavior: a class
// may be cast to itself, up its hierarchy, or down it (unchecked, per
// spec.md §9 "No runtime type tags"); casting between unrelated classes or
// mixing primitives with classes is rejected.
func (a *Analyzer) castIsMeaningful(from, to string) bool {
	if from == to {
		return true
	}
	if isPrimitive(from) || isPrimitive(to) {
		return false
	}
	return canCast(from, to, a.registry) || canCast(to, from, a.registry)
}
