package graph

import "testing"

func TestSnapshot_SimpleAdjacency(t *testing.T) {
	s := NewStore()
	a := mustAddNode(t, s, "A")
	b := mustAddNode(t, s, "B")
	c := mustAddNode(t, s, "C")

	mustAddEdge(t, s, a, b, "x")
	mustAddEdge(t, s, b, a, "y")
	mustAddEdge(t, s, c, c, "loop")

	v := s.Snapshot()

	if v.Len() != 3 {
		t.Fatalf("Expected 3 nodes, got %d", v.Len())
	}
	if len(v.Edges()) != 3 {
		t.Errorf("Expected all 3 edges listed, got %d", len(v.Edges()))
	}

	ia, _ := v.Index(a)
	ic, _ := v.Index(c)
	if v.Degree(ia) != 1 {
		t.Errorf("Expected parallel edges collapsed, degree %d", v.Degree(ia))
	}
	if v.Degree(ic) != 0 {
		t.Errorf("Expected self-loop dropped from adjacency, degree %d", v.Degree(ic))
	}
}

func TestSnapshot_IsolatedFromLaterWrites(t *testing.T) {
	s := NewStore()
	a := mustAddNode(t, s, "A")
	b := mustAddNode(t, s, "B")
	mustAddEdge(t, s, a, b, "x")

	v := s.Snapshot()
	_ = s.RemoveNode(b)
	mustAddNode(t, s, "C")

	if v.Len() != 2 || len(v.Edges()) != 1 {
		t.Errorf("Expected snapshot unchanged, got %d nodes %d edges", v.Len(), len(v.Edges()))
	}
}

func TestView_InducedAndFilter(t *testing.T) {
	s := NewStore()
	a := mustAddNode(t, s, "A")
	b := mustAddNode(t, s, "B")
	c := mustAddNode(t, s, "C")
	s.AddEdge(Edge{From: a, To: b, Weight: 0.1})
	s.AddEdge(Edge{From: b, To: c, Weight: 0.9})

	v := s.Snapshot()

	sub := v.Induced([]NodeID{b, c, 999})
	if sub.Len() != 2 || len(sub.Edges()) != 1 {
		t.Fatalf("Expected induced {B,C} with 1 edge, got %d nodes %d edges", sub.Len(), len(sub.Edges()))
	}
	if sub.Term(0) != "B" || sub.Term(1) != "C" {
		t.Errorf("Expected parent order preserved, got %v", sub.Terms([]int{0, 1}))
	}

	strong := v.FilterEdges(func(e ViewEdge) bool { return e.Weight < 0.5 })
	if strong.Len() != 3 || len(strong.Edges()) != 1 {
		t.Errorf("Expected 3 nodes and 1 strong edge, got %d nodes %d edges", strong.Len(), len(strong.Edges()))
	}
	ic, _ := strong.Index(c)
	if strong.Degree(ic) != 0 {
		t.Error("Expected C isolated after filtering")
	}
}
