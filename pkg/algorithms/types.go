package algorithms

import "github.com/dd0wney/semgraph/pkg/graph"

// Cluster is an ordered set of node IDs produced by one of the clustering
// algorithms. Clusters are derived values; nothing mutates them after they
// are returned.
type Cluster struct {
	ID    int            `json:"id"`
	Nodes []graph.NodeID `json:"nodes"`
	Terms []string       `json:"terms"`
	// AvgDistance is the mean pairwise distance inside the cluster. Only
	// agglomerative clustering sets it.
	AvgDistance float64 `json:"avg_distance,omitempty"`
}

// Size returns the number of nodes in the cluster.
func (c *Cluster) Size() int { return len(c.Nodes) }

// Partition is a set of disjoint clusters covering a node set.
type Partition struct {
	Clusters   []*Cluster
	Membership map[graph.NodeID]int // Node ID -> Cluster ID
}

// ClusterOf returns the cluster containing id.
func (p *Partition) ClusterOf(id graph.NodeID) (*Cluster, bool) {
	idx, ok := p.Membership[id]
	if !ok {
		return nil, false
	}
	return p.Clusters[idx], true
}

// newPartition builds a partition from groups of dense indices. Members are
// sorted by node ID and clusters ordered by their smallest member.
func newPartition(view *graph.View, groups [][]int) *Partition {
	p := &Partition{
		Clusters:   make([]*Cluster, 0, len(groups)),
		Membership: make(map[graph.NodeID]int),
	}
	sortGroups(groups)
	for _, g := range groups {
		c := &Cluster{
			ID:    len(p.Clusters),
			Nodes: make([]graph.NodeID, len(g)),
			Terms: view.Terms(g),
		}
		for i, idx := range g {
			c.Nodes[i] = view.ID(idx)
			p.Membership[c.Nodes[i]] = c.ID
		}
		p.Clusters = append(p.Clusters, c)
	}
	return p
}
