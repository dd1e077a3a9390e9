package algorithms

import (
	"testing"

	"github.com/dd0wney/semgraph/pkg/graph"
)

// buildView creates a store with the given terms and undirected edges
// between terms, and returns its snapshot.
func buildView(t *testing.T, terms []string, edges [][2]string) *graph.View {
	t.Helper()
	return buildStore(t, terms, edges).Snapshot()
}

func buildStore(t *testing.T, terms []string, edges [][2]string) *graph.Store {
	t.Helper()
	s := graph.NewStore()
	for _, term := range terms {
		if _, err := s.AddNode(graph.Node{Term: term}); err != nil {
			t.Fatalf("AddNode(%q) failed: %v", term, err)
		}
	}
	for _, e := range edges {
		from, err := s.GetNodeByTerm(e[0])
		if err != nil {
			t.Fatalf("unknown term %q", e[0])
		}
		to, err := s.GetNodeByTerm(e[1])
		if err != nil {
			t.Fatalf("unknown term %q", e[1])
		}
		if _, err := s.AddEdge(graph.Edge{From: from.ID, To: to.ID, Label: "co-occurs", Weight: 0.5}); err != nil {
			t.Fatalf("AddEdge failed: %v", err)
		}
	}
	return s
}

func scoreOf(t *testing.T, view *graph.View, table CentralityTable, term string) float64 {
	t.Helper()
	for i := 0; i < view.Len(); i++ {
		if view.Term(i) == term {
			return table.Score(view.ID(i))
		}
	}
	t.Fatalf("term %q not in view", term)
	return 0
}

func twoTriangles() ([]string, [][2]string) {
	return []string{"A", "B", "C", "X", "Y", "Z"}, [][2]string{
		{"A", "B"}, {"B", "C"}, {"C", "A"},
		{"X", "Y"}, {"Y", "Z"}, {"Z", "X"},
	}
}
