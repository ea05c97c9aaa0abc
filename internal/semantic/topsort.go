package semantic

import "github.com/cwbudde/minijavac/internal/cerr"

// topologicalOrder computes a class ordering by the extends relation via
// Kahn's algorithm (spec.md §4.3 Phase 1 step 1): every class appears
// after its ancestor. Iteration order over a.project.Classes is
// declaration order, so the result is deterministic when multiple classes
// have no remaining dependencies at once (spec.md §5 "Ordering
// guarantees").
func (a *Analyzer) topologicalOrder() ([]string, error) {
	classes := a.project.Classes

	inDegree := make(map[string]int, len(classes))
	children := make(map[string][]string)

	for _, c := range classes {
		inDegree[c.Name] = 0
	}
	for _, c := range classes {
		if c.Extends == "" {
			continue
		}
		if _, ok := a.project.ClassName[c.Extends]; !ok {
			return nil, cerr.New(cerr.Inheritance, c.ExtendsPos, "Class %s not found", c.Extends)
		}
		inDegree[c.Name]++
		children[c.Extends] = append(children[c.Extends], c.Name)
	}

	var queue []string
	for _, c := range classes {
		if inDegree[c.Name] == 0 {
			queue = append(queue, c.Name)
		}
	}

	order := make([]string, 0, len(classes))
	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]
		order = append(order, name)
		for _, child := range children[name] {
			inDegree[child]--
			if inDegree[child] == 0 {
				queue = append(queue, child)
			}
		}
	}

	if len(order) != len(classes) {
		return nil, cerr.NewUnpositioned(cerr.Inheritance, "Cyclic inheritance detected")
	}
	return order, nil
}
