package algorithms

import (
	"sort"

	"github.com/dd0wney/semgraph/pkg/graph"
)

// ConnectedComponents partitions the view into connected components using an
// iterative depth-first traversal of the undirected adjacency. Edge weights
// are ignored. Isolated nodes form single-node components.
func ConnectedComponents(view *graph.View) *Partition {
	n := view.Len()
	visited := make([]bool, n)
	groups := make([][]int, 0)
	stack := make([]int, 0)

	for start := 0; start < n; start++ {
		if visited[start] {
			continue
		}

		component := make([]int, 0)
		visited[start] = true
		stack = append(stack[:0], start)

		for len(stack) > 0 {
			v := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			component = append(component, v)

			for _, w := range view.Neighbors(v) {
				if !visited[w] {
					visited[w] = true
					stack = append(stack, w)
				}
			}
		}

		groups = append(groups, component)
	}

	return newPartition(view, groups)
}

// sortGroups orders members of each group ascending and the groups by their
// first member. Dense indices follow node ID order, so this is ID order.
func sortGroups(groups [][]int) {
	for _, g := range groups {
		sort.Ints(g)
	}
	sort.Slice(groups, func(i, j int) bool {
		return groups[i][0] < groups[j][0]
	})
}
