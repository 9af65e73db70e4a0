package aggregate

import (
	"maps"
	"slices"
	"strings"

	"ntl/internal/domain"
	"ntl/internal/parser"
)

// GroupSuites folds nodes into namespace suites keyed by the dotted prefix one
// level up, repeating until no node has a prefix left. Nodes without a prefix
// become roots in the order they are reached. Nodes sharing a full name are
// kept as separate siblings.
func GroupSuites(nodes []*domain.Node) []*domain.Node {
	var roots []*domain.Node

	working := nodes
	for len(working) > 0 {
		partitions := make(map[string][]*domain.Node)
		for _, node := range working {
			prefix := parser.Prefix(node.FullName)
			if prefix == "" {
				roots = append(roots, node)
				continue
			}
			partitions[prefix] = append(partitions[prefix], node)
		}

		keys := slices.Sorted(maps.Keys(partitions))
		next := make([]*domain.Node, 0, len(keys))
		for _, key := range keys {
			children := partitions[key]
			slices.SortStableFunc(children, byFullName)
			next = append(next, rollup(domain.KindNamespace, parser.LastSegment(key), key, children))
		}
		working = next
	}

	return roots
}

func byFullName(a, b *domain.Node) int {
	return strings.Compare(a.FullName, b.FullName)
}
