package algorithms

import (
	"fmt"
	"testing"

	"github.com/dd0wney/semgraph/pkg/graph"
)

func TestConnectedComponents_EmptyGraph(t *testing.T) {
	p := ConnectedComponents(graph.NewStore().Snapshot())

	if len(p.Clusters) != 0 {
		t.Errorf("Expected 0 components, got %d", len(p.Clusters))
	}
}

func TestConnectedComponents_MultipleComponents(t *testing.T) {
	terms, edges := twoTriangles()
	terms = append(terms, "Lonely")
	view := buildView(t, terms, edges)

	p := ConnectedComponents(view)

	if len(p.Clusters) != 3 {
		t.Fatalf("Expected 3 components, got %d", len(p.Clusters))
	}
	want := [][]string{{"A", "B", "C"}, {"X", "Y", "Z"}, {"Lonely"}}
	for i, c := range p.Clusters {
		if c.ID != i {
			t.Errorf("Cluster %d has ID %d", i, c.ID)
		}
		if len(c.Terms) != len(want[i]) {
			t.Fatalf("Cluster %d terms = %v, want %v", i, c.Terms, want[i])
		}
		for j := range want[i] {
			if c.Terms[j] != want[i][j] {
				t.Errorf("Cluster %d terms = %v, want %v", i, c.Terms, want[i])
				break
			}
		}
	}

	if c, ok := p.ClusterOf(view.ID(3)); !ok || c.ID != 1 {
		t.Errorf("Expected X in cluster 1")
	}
}

func TestConnectedComponents_LongChainDoesNotRecurse(t *testing.T) {
	s := graph.NewStore()
	var prev graph.NodeID
	for i := 0; i < 20000; i++ {
		id, _ := s.AddNode(graph.Node{Term: fmt.Sprintf("n%d", i)})
		if prev != 0 {
			s.AddEdge(graph.Edge{From: prev, To: id})
		}
		prev = id
	}

	p := ConnectedComponents(s.Snapshot())
	if len(p.Clusters) != 1 || p.Clusters[0].Size() != 20000 {
		t.Errorf("Expected one component of 20000 nodes, got %d", len(p.Clusters))
	}
}
