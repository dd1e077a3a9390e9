package graph

import "github.com/google/uuid"

// NodeID addresses a node slot in the store's arena. IDs start at 1 and are
// never reused within a session; 0 is never a valid ID.
type NodeID uint64

// EdgeID addresses an edge slot in the store's arena.
type EdgeID uint64

// Common node type tags. Type is free-form; these are the ones the ingestion
// adapter emits.
const (
	TypeEntity  = "Entity"
	TypeConcept = "Concept"
)

// Metadata holds the optional, fixed set of node annotations. Anything that
// does not fit goes into Extra.
type Metadata struct {
	Importance *float64          `json:"importance,omitempty"`
	Source     string            `json:"source,omitempty"`
	Ambiguous  bool              `json:"ambiguous,omitempty"`
	Extra      map[string]string `json:"extra,omitempty"`
}

// Node is one distinct concept in the graph.
type Node struct {
	ID   NodeID    `json:"id"`
	UID  uuid.UUID `json:"uid"`
	Term string    `json:"term"`
	Type string    `json:"type"`
	Meta Metadata  `json:"meta"`
}

// Edge is an undirected, weighted relationship. Weight is a semantic
// distance: lower means closer.
type Edge struct {
	ID     EdgeID    `json:"id"`
	UID    uuid.UUID `json:"uid"`
	From   NodeID    `json:"from"`
	To     NodeID    `json:"to"`
	Label  string    `json:"label"`
	Weight float64   `json:"weight"`
}

// Other returns the endpoint opposite to id.
func (e *Edge) Other(id NodeID) NodeID {
	if e.From == id {
		return e.To
	}
	return e.From
}

// Touches reports whether id is one of the edge's endpoints.
func (e *Edge) Touches(id NodeID) bool {
	return e.From == id || e.To == id
}

// Clone returns a deep copy of the node. Importance and Extra are copied,
// so the clone can be edited without touching the store.
func (n *Node) Clone() *Node {
	clone := *n
	if n.Meta.Importance != nil {
		v := *n.Meta.Importance
		clone.Meta.Importance = &v
	}
	if n.Meta.Extra != nil {
		clone.Meta.Extra = make(map[string]string, len(n.Meta.Extra))
		for k, v := range n.Meta.Extra {
			clone.Meta.Extra[k] = v
		}
	}
	return &clone
}

// Clone returns a copy of the edge. Edges hold no references, so a shallow
// copy is a full one.
func (e *Edge) Clone() *Edge {
	clone := *e
	return &clone
}

// Statistics is a point-in-time count of live graph elements.
type Statistics struct {
	NodeCount int
	EdgeCount int
	SelfLoops int
}
