package algorithms

import (
	"math"
	"sort"

	"github.com/dd0wney/semgraph/pkg/graph"
	"github.com/dd0wney/semgraph/pkg/parallel"
)

// BridgeType classifies how two weakly connected clusters relate.
type BridgeType string

const (
	// BridgeContent means no edge connects the clusters at all.
	BridgeContent BridgeType = "content"
	// BridgeContextual means a thin connection exists.
	BridgeContextual BridgeType = "contextual"
)

// DefaultHoleThreshold is the connection strength under which a cluster
// pair counts as a structural hole. It is looser than the cannibalization
// band on purpose: a hole is a weak connection, not a missing one.
const DefaultHoleThreshold = 0.15

// HoleOptions configures structural hole detection.
type HoleOptions struct {
	// Threshold: pairs with strength strictly below it are holes.
	Threshold float64
	// StrongEdgeDistance, when positive, builds the clusters from edges
	// with weight below it only; crossing edges are still counted over
	// every edge. Zero clusters over all edges.
	StrongEdgeDistance float64
	// MinClusterSize drops smaller clusters (isolated nodes by default).
	MinClusterSize int
	// Workers bounds the parallelism of the crossing-edge count.
	Workers int
}

// DefaultHoleOptions returns the standard hole detection settings.
func DefaultHoleOptions() HoleOptions {
	return HoleOptions{
		Threshold:      DefaultHoleThreshold,
		MinClusterSize: 2,
	}
}

// StructuralHole describes two clusters whose connection strength is below
// the threshold.
type StructuralHole struct {
	ClusterA      []graph.NodeID `json:"cluster_a"`
	ClusterB      []graph.NodeID `json:"cluster_b"`
	TermsA        []string       `json:"terms_a"`
	TermsB        []string       `json:"terms_b"`
	Strength      float64        `json:"strength"`
	CrossingEdges int            `json:"crossing_edges"`
	BridgeType    BridgeType     `json:"bridge_type"`
}

// ConnectionStrength returns crossing / sqrt(sizeA * sizeB), capped at 1.
func ConnectionStrength(crossing, sizeA, sizeB int) float64 {
	if sizeA == 0 || sizeB == 0 {
		return 0
	}
	return math.Min(1.0, float64(crossing)/math.Sqrt(float64(sizeA)*float64(sizeB)))
}

// DetectStructuralHoles clusters the view into connected components and
// reports every component pair whose connection strength is below
// opts.Threshold, weakest first.
func DetectStructuralHoles(view *graph.View, opts HoleOptions) []StructuralHole {
	clusterView := view
	if opts.StrongEdgeDistance > 0 {
		clusterView = view.FilterEdges(func(e graph.ViewEdge) bool {
			return e.Weight < opts.StrongEdgeDistance
		})
	}
	return DetectHolesBetween(view, ConnectedComponents(clusterView).Clusters, opts)
}

// DetectHolesBetween scores every pair of the given clusters against each
// other using all edges of the view. Clusters smaller than
// opts.MinClusterSize are ignored. Clusters are expected to be disjoint.
func DetectHolesBetween(view *graph.View, clusters []*Cluster, opts HoleOptions) []StructuralHole {
	kept := make([]*Cluster, 0, len(clusters))
	for _, c := range clusters {
		if c.Size() >= opts.MinClusterSize && c.Size() > 0 {
			kept = append(kept, c)
		}
	}
	if len(kept) < 2 {
		return []StructuralHole{}
	}

	membership := make([]int, view.Len())
	for i := range membership {
		membership[i] = -1
	}
	for ci, c := range kept {
		for _, id := range c.Nodes {
			if idx, ok := view.Index(id); ok {
				membership[idx] = ci
			}
		}
	}

	crossing := countCrossing(view, membership, len(kept), opts.Workers)

	holes := make([]StructuralHole, 0)
	for i := 0; i < len(kept); i++ {
		for j := i + 1; j < len(kept); j++ {
			count := crossing[i*len(kept)+j]
			strength := ConnectionStrength(count, kept[i].Size(), kept[j].Size())
			if strength >= opts.Threshold {
				continue
			}
			bridge := BridgeContextual
			if strength == 0 {
				bridge = BridgeContent
			}
			holes = append(holes, StructuralHole{
				ClusterA:      append([]graph.NodeID(nil), kept[i].Nodes...),
				ClusterB:      append([]graph.NodeID(nil), kept[j].Nodes...),
				TermsA:        append([]string(nil), kept[i].Terms...),
				TermsB:        append([]string(nil), kept[j].Terms...),
				Strength:      strength,
				CrossingEdges: count,
				BridgeType:    bridge,
			})
		}
	}

	sort.SliceStable(holes, func(a, b int) bool {
		return holes[a].Strength < holes[b].Strength
	})
	return holes
}

// countCrossing counts edges between each pair of clusters in a k×k upper
// triangular table. Edge ranges are counted in parallel and summed.
func countCrossing(view *graph.View, membership []int, k, workers int) []int {
	edges := view.Edges()
	partials := parallel.MapRanges(len(edges), workers, func(r parallel.Range) []int {
		counts := make([]int, k*k)
		for _, e := range edges[r.Lo:r.Hi] {
			a, b := membership[e.From], membership[e.To]
			if a < 0 || b < 0 || a == b {
				continue
			}
			if b < a {
				a, b = b, a
			}
			counts[a*k+b]++
		}
		return counts
	})

	total := make([]int, k*k)
	for _, counts := range partials {
		for i, v := range counts {
			total[i] += v
		}
	}
	return total
}

// BridgeCandidate is the node of one side of a hole that is best connected
// inside its own cluster.
type BridgeCandidate struct {
	NodeID         graph.NodeID `json:"node_id"`
	Term           string       `json:"term"`
	InternalDegree int          `json:"internal_degree"`
}

// BridgeCandidates picks, for each side of the hole, the node with the most
// distinct neighbours inside its own cluster. Ties go to the smaller term,
// then the smaller ID. ok is false if either side has no node in the view.
func BridgeCandidates(view *graph.View, hole StructuralHole) (a, b BridgeCandidate, ok bool) {
	a, okA := mostConnected(view, hole.ClusterA)
	b, okB := mostConnected(view, hole.ClusterB)
	return a, b, okA && okB
}

func mostConnected(view *graph.View, cluster []graph.NodeID) (BridgeCandidate, bool) {
	inside := make(map[int]bool, len(cluster))
	for _, id := range cluster {
		if idx, ok := view.Index(id); ok {
			inside[idx] = true
		}
	}

	var best BridgeCandidate
	found := false
	for _, id := range cluster {
		idx, ok := view.Index(id)
		if !ok {
			continue
		}
		degree := 0
		for _, w := range view.Neighbors(idx) {
			if inside[w] {
				degree++
			}
		}
		c := BridgeCandidate{NodeID: id, Term: view.Term(idx), InternalDegree: degree}
		if !found || better(c, best) {
			best, found = c, true
		}
	}
	return best, found
}

func better(c, than BridgeCandidate) bool {
	if c.InternalDegree != than.InternalDegree {
		return c.InternalDegree > than.InternalDegree
	}
	if c.Term != than.Term {
		return c.Term < than.Term
	}
	return c.NodeID < than.NodeID
}
