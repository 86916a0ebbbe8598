package expr

import (
	"sort"

	"github.com/riffleml/riffle/internal/fingerprint"
)

// PostOrder returns every distinct node reachable from root, dependencies
// before dependents, root last. Structurally identical subtrees are visited
// once.
func PostOrder(root *Node) []*Node {
	var out []*Node
	seen := make(map[fingerprint.Fingerprint]bool)

	type frame struct {
		n    *Node
		next int
	}
	stack := []frame{{n: root}}

	for len(stack) > 0 {
		f := &stack[len(stack)-1]
		if seen[f.n.fp] {
			stack = stack[:len(stack)-1]
			continue
		}

		if f.next < len(f.n.deps) {
			d := f.n.deps[f.next]
			f.next++
			if !seen[d.fp] {
				stack = append(stack, frame{n: d})
			}
			continue
		}

		seen[f.n.fp] = true
		out = append(out, f.n)
		stack = stack[:len(stack)-1]
	}

	return out
}

// GetLeafKeys returns the sorted, deduplicated leaf names of the given
// expressions.
func GetLeafKeys(nodes ...*Node) []string {
	return collectKeys(KindLeaf, nodes)
}

// GetPlaceholderKeys returns the sorted, deduplicated placeholder names of
// the given expressions.
func GetPlaceholderKeys(nodes ...*Node) []string {
	return collectKeys(KindPlaceholder, nodes)
}

func collectKeys(kind NodeKind, nodes []*Node) []string {
	seen := make(map[string]bool)
	var keys []string
	for _, n := range nodes {
		for _, v := range PostOrder(n) {
			if v.kind == kind && !seen[v.key] {
				seen[v.key] = true
				keys = append(keys, v.key)
			}
		}
	}
	sort.Strings(keys)
	return keys
}
