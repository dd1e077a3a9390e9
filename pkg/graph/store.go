package graph

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Store owns the nodes and edges of one analysis session. Nodes and edges
// live in flat arenas addressed by ID-1; removal leaves a tombstone so IDs
// stay stable. Adjacency lists hold edge IDs, never pointers.
//
// The store expects a single writer during ingestion followed by read-only
// analysis. Mutating it while an analysis holds a Snapshot is safe for the
// snapshot but the results describe the graph as of the snapshot.
type Store struct {
	mu sync.RWMutex

	nodes  []*Node
	edges  []*Edge
	adj    [][]EdgeID // edges touching node ID-1; self-loops appear once
	byTerm map[string]NodeID
	// parallel counts edges ever added per endpoint pair and label, keyed by
	// the ordinal-0 UID. It never decreases, so UIDs are not reissued.
	parallel map[uuid.UUID]int

	nodeCount int
	edgeCount int
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		byTerm:   make(map[string]NodeID),
		parallel: make(map[uuid.UUID]int),
	}
}

// AddNode inserts a node. If a node whose term normalizes to the same string
// already exists, nothing is changed and the existing ID is returned. The ID
// and UID of the argument are ignored.
func (s *Store) AddNode(node Node) (NodeID, error) {
	key := NormalizeTerm(node.Term)
	if key == "" {
		return 0, NewError("AddNode").Term(node.Term).Cause(ErrEmptyTerm).Err()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if id, exists := s.byTerm[key]; exists {
		return id, nil
	}

	id := NodeID(len(s.nodes) + 1)
	stored := node.Clone()
	stored.ID = id
	stored.UID = uuid.NewSHA1(namespace, []byte(key))
	stored.Term = strings.Join(strings.Fields(node.Term), " ")
	if stored.Type == "" {
		stored.Type = TypeEntity
	}

	s.nodes = append(s.nodes, stored)
	s.adj = append(s.adj, nil)
	s.byTerm[key] = id
	s.nodeCount++

	return id, nil
}

// AddEdge inserts an undirected edge. Both endpoints must already exist;
// otherwise the edge is rejected with ErrUnknownEndpoint. Self-loops and
// parallel edges are accepted.
func (s *Store) AddEdge(edge Edge) (EdgeID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	from, err := s.endpoint(edge.From, "source")
	if err != nil {
		return 0, err
	}
	to, err := s.endpoint(edge.To, "target")
	if err != nil {
		return 0, err
	}

	base := edgeUID(from.UID, to.UID, edge.Label, 0)
	ordinal := s.parallel[base]
	s.parallel[base] = ordinal + 1

	id := EdgeID(len(s.edges) + 1)
	stored := &Edge{
		ID:     id,
		UID:    edgeUID(from.UID, to.UID, edge.Label, ordinal),
		From:   edge.From,
		To:     edge.To,
		Label:  edge.Label,
		Weight: edge.Weight,
	}

	s.edges = append(s.edges, stored)
	s.adj[edge.From-1] = append(s.adj[edge.From-1], id)
	if edge.To != edge.From {
		s.adj[edge.To-1] = append(s.adj[edge.To-1], id)
	}
	s.edgeCount++

	return id, nil
}

// endpoint verifies an edge endpoint exists. Caller must hold the lock.
func (s *Store) endpoint(id NodeID, side string) (*Node, error) {
	node := s.node(id)
	if node == nil {
		return nil, NewError("AddEdge").Node(id).Context(side).Cause(ErrUnknownEndpoint).Err()
	}
	return node, nil
}

// node returns the live node for id or nil. Caller must hold the lock.
func (s *Store) node(id NodeID) *Node {
	if id == 0 || int(id) > len(s.nodes) {
		return nil
	}
	return s.nodes[id-1]
}

// GetNode retrieves a node by ID
func (s *Store) GetNode(id NodeID) (*Node, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	node := s.node(id)
	if node == nil {
		return nil, NodeNotFoundError("GetNode", id)
	}
	return node.Clone(), nil
}

// GetNodeByTerm retrieves a node by its term, compared after normalization.
func (s *Store) GetNodeByTerm(term string) (*Node, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, exists := s.byTerm[NormalizeTerm(term)]
	if !exists {
		return nil, NewError("GetNodeByTerm").Term(term).Cause(ErrNodeNotFound).Err()
	}
	return s.nodes[id-1].Clone(), nil
}

// Lookup resolves a reference that may be a term, a decimal node ID or a
// node UID, in that order of precedence.
func (s *Store) Lookup(ref string) (*Node, error) {
	if node, err := s.GetNodeByTerm(ref); err == nil {
		return node, nil
	}
	if n, err := strconv.ParseUint(strings.TrimSpace(ref), 10, 64); err == nil {
		return s.GetNode(NodeID(n))
	}
	if uid, err := uuid.Parse(strings.TrimSpace(ref)); err == nil {
		s.mu.RLock()
		defer s.mu.RUnlock()
		for _, node := range s.nodes {
			if node != nil && node.UID == uid {
				return node.Clone(), nil
			}
		}
	}
	return nil, NewError("Lookup").Term(ref).Cause(ErrNodeNotFound).Err()
}

// GetEdge retrieves an edge by ID
func (s *Store) GetEdge(id EdgeID) (*Edge, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if id == 0 || int(id) > len(s.edges) || s.edges[id-1] == nil {
		return nil, EdgeNotFoundError("GetEdge", id)
	}
	return s.edges[id-1].Clone(), nil
}

// Annotate lets fn edit a node's Type and Meta in place. Changes to ID, UID
// or Term are discarded.
func (s *Store) Annotate(id NodeID, fn func(*Node)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	node := s.node(id)
	if node == nil {
		return NodeNotFoundError("Annotate", id)
	}

	edited := node.Clone()
	fn(edited)
	edited.ID, edited.UID, edited.Term = node.ID, node.UID, node.Term
	if edited.Type == "" {
		edited.Type = TypeEntity
	}
	s.nodes[id-1] = edited
	return nil
}

// SetEdgeWeight replaces the weight of an existing edge.
func (s *Store) SetEdgeWeight(id EdgeID, weight float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id == 0 || int(id) > len(s.edges) || s.edges[id-1] == nil {
		return EdgeNotFoundError("SetEdgeWeight", id)
	}
	s.edges[id-1].Weight = weight
	return nil
}

// RemoveNode deletes a node and cascades to every edge touching it.
func (s *Store) RemoveNode(id NodeID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	node := s.node(id)
	if node == nil {
		return NodeNotFoundError("RemoveNode", id)
	}

	for _, eid := range append([]EdgeID(nil), s.adj[id-1]...) {
		s.removeEdge(eid)
	}

	delete(s.byTerm, NormalizeTerm(node.Term))
	s.nodes[id-1] = nil
	s.adj[id-1] = nil
	s.nodeCount--

	return nil
}

// RemoveEdge deletes an edge by ID
func (s *Store) RemoveEdge(id EdgeID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id == 0 || int(id) > len(s.edges) || s.edges[id-1] == nil {
		return EdgeNotFoundError("RemoveEdge", id)
	}
	s.removeEdge(id)
	return nil
}

// removeEdge unlinks an edge from both endpoints. Caller must hold the lock.
func (s *Store) removeEdge(id EdgeID) {
	edge := s.edges[id-1]
	s.adj[edge.From-1] = without(s.adj[edge.From-1], id)
	if edge.To != edge.From {
		s.adj[edge.To-1] = without(s.adj[edge.To-1], id)
	}
	s.edges[id-1] = nil
	s.edgeCount--
}

func without(ids []EdgeID, id EdgeID) []EdgeID {
	for i, v := range ids {
		if v == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}

// Nodes returns copies of all live nodes ordered by ID.
func (s *Store) Nodes() []*Node {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*Node, 0, s.nodeCount)
	for _, node := range s.nodes {
		if node != nil {
			out = append(out, node.Clone())
		}
	}
	return out
}

// Edges returns copies of all live edges ordered by ID.
func (s *Store) Edges() []*Edge {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*Edge, 0, s.edgeCount)
	for _, edge := range s.edges {
		if edge != nil {
			out = append(out, edge.Clone())
		}
	}
	return out
}

// EdgesOf returns copies of the edges touching a node.
func (s *Store) EdgesOf(id NodeID) ([]*Edge, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.node(id) == nil {
		return nil, NodeNotFoundError("EdgesOf", id)
	}
	out := make([]*Edge, 0, len(s.adj[id-1]))
	for _, eid := range s.adj[id-1] {
		out = append(out, s.edges[eid-1].Clone())
	}
	return out, nil
}

// Neighbors returns the distinct nodes adjacent to id, excluding id itself,
// in ascending ID order.
func (s *Store) Neighbors(id NodeID) ([]NodeID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.node(id) == nil {
		return nil, NodeNotFoundError("Neighbors", id)
	}

	seen := make(map[NodeID]bool, len(s.adj[id-1]))
	out := make([]NodeID, 0, len(s.adj[id-1]))
	for _, eid := range s.adj[id-1] {
		other := s.edges[eid-1].Other(id)
		if other == id || seen[other] {
			continue
		}
		seen[other] = true
		out = append(out, other)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out, nil
}

// Stats returns live element counts.
func (s *Store) Stats() Statistics {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := Statistics{NodeCount: s.nodeCount, EdgeCount: s.edgeCount}
	for _, edge := range s.edges {
		if edge != nil && edge.From == edge.To {
			stats.SelfLoops++
		}
	}
	return stats
}

// String implements fmt.Stringer for debugging.
func (s *Store) String() string {
	stats := s.Stats()
	return fmt.Sprintf("graph.Store{nodes: %d, edges: %d}", stats.NodeCount, stats.EdgeCount)
}
