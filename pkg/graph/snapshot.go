package graph

import "sort"

// ViewEdge is an edge inside a View, with endpoints expressed as dense
// indices.
type ViewEdge struct {
	ID     EdgeID
	From   int
	To     int
	Label  string
	Weight float64
}

// View is an immutable, dense copy of the graph taken at one point in time.
// Every analysis algorithm runs over a View: node i of the view is
// IDs()[i], and the adjacency is the undirected simple graph underneath the
// store (parallel edges collapsed, self-loops dropped, neighbours sorted).
// Edges() still lists every edge, self-loops and parallels included.
type View struct {
	ids   []NodeID
	terms []string
	index map[NodeID]int
	adj   [][]int
	edges []ViewEdge
}

// Snapshot copies the current contents of the store into a View.
func (s *Store) Snapshot() *View {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v := &View{
		ids:   make([]NodeID, 0, s.nodeCount),
		terms: make([]string, 0, s.nodeCount),
		index: make(map[NodeID]int, s.nodeCount),
	}
	for _, node := range s.nodes {
		if node == nil {
			continue
		}
		v.index[node.ID] = len(v.ids)
		v.ids = append(v.ids, node.ID)
		v.terms = append(v.terms, node.Term)
	}

	v.edges = make([]ViewEdge, 0, s.edgeCount)
	for _, edge := range s.edges {
		if edge == nil {
			continue
		}
		v.edges = append(v.edges, ViewEdge{
			ID:     edge.ID,
			From:   v.index[edge.From],
			To:     v.index[edge.To],
			Label:  edge.Label,
			Weight: edge.Weight,
		})
	}
	v.buildAdjacency()
	return v
}

// buildAdjacency derives the simple undirected adjacency from v.edges.
func (v *View) buildAdjacency() {
	v.adj = make([][]int, len(v.ids))
	seen := make(map[[2]int]bool, len(v.edges))
	for _, e := range v.edges {
		if e.From == e.To {
			continue
		}
		key := [2]int{e.From, e.To}
		if key[1] < key[0] {
			key[0], key[1] = key[1], key[0]
		}
		if seen[key] {
			continue
		}
		seen[key] = true
		v.adj[e.From] = append(v.adj[e.From], e.To)
		v.adj[e.To] = append(v.adj[e.To], e.From)
	}
	for i := range v.adj {
		sort.Ints(v.adj[i])
	}
}

// Len returns the number of nodes in the view.
func (v *View) Len() int { return len(v.ids) }

// IDs returns the node IDs in dense order. The slice must not be modified.
func (v *View) IDs() []NodeID { return v.ids }

// ID returns the node ID at dense index i.
func (v *View) ID(i int) NodeID { return v.ids[i] }

// Term returns the term of the node at dense index i.
func (v *View) Term(i int) string { return v.terms[i] }

// Index returns the dense index of a node ID.
func (v *View) Index(id NodeID) (int, bool) {
	i, ok := v.index[id]
	return i, ok
}

// Neighbors returns the sorted dense indices adjacent to i.
func (v *View) Neighbors(i int) []int { return v.adj[i] }

// Degree returns the number of distinct neighbours of i.
func (v *View) Degree(i int) int { return len(v.adj[i]) }

// Edges returns every edge of the view. The slice must not be modified.
func (v *View) Edges() []ViewEdge { return v.edges }

// Terms maps dense indices to terms.
func (v *View) Terms(indices []int) []string {
	out := make([]string, len(indices))
	for i, idx := range indices {
		out[i] = v.terms[idx]
	}
	return out
}

// Induced returns the subgraph induced by the given node IDs. Unknown IDs
// are skipped; dense order follows the parent view.
func (v *View) Induced(ids []NodeID) *View {
	keep := make([]bool, len(v.ids))
	for _, id := range ids {
		if i, ok := v.index[id]; ok {
			keep[i] = true
		}
	}
	return v.subview(keep, func(ViewEdge) bool { return true })
}

// FilterEdges returns a view with the same nodes and only the edges for
// which keep returns true.
func (v *View) FilterEdges(keep func(ViewEdge) bool) *View {
	all := make([]bool, len(v.ids))
	for i := range all {
		all[i] = true
	}
	return v.subview(all, keep)
}

func (v *View) subview(keepNode []bool, keepEdge func(ViewEdge) bool) *View {
	sub := &View{index: make(map[NodeID]int)}
	remap := make([]int, len(v.ids))
	for i, id := range v.ids {
		remap[i] = -1
		if !keepNode[i] {
			continue
		}
		remap[i] = len(sub.ids)
		sub.index[id] = len(sub.ids)
		sub.ids = append(sub.ids, id)
		sub.terms = append(sub.terms, v.terms[i])
	}
	for _, e := range v.edges {
		if remap[e.From] < 0 || remap[e.To] < 0 || !keepEdge(e) {
			continue
		}
		e.From, e.To = remap[e.From], remap[e.To]
		sub.edges = append(sub.edges, e)
	}
	sub.buildAdjacency()
	return sub
}
