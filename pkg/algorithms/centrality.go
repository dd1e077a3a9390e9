package algorithms

import (
	"sort"

	"github.com/dd0wney/semgraph/pkg/graph"
	"github.com/dd0wney/semgraph/pkg/parallel"
)

// CentralityTable maps node IDs to betweenness centrality in [0, 1]. Nodes
// outside the computed set are absent and read as 0 through Score.
type CentralityTable map[graph.NodeID]float64

// Score returns the centrality of id, or 0 if it was not computed.
func (t CentralityTable) Score(id graph.NodeID) float64 {
	return t[id]
}

// Max returns the highest score in the table.
func (t CentralityTable) Max() float64 {
	highest := 0.0
	for _, v := range t {
		if v > highest {
			highest = v
		}
	}
	return highest
}

// CentralityOptions configures BetweennessCentrality.
type CentralityOptions struct {
	// Subset restricts the computation to the subgraph induced by these
	// nodes. Empty means every node.
	Subset []graph.NodeID
	// Workers bounds the parallelism of the per-source loop. 0 means
	// GOMAXPROCS.
	Workers int
}

// brandesScratch holds the per-source buffers of one worker so they are
// allocated once per range instead of once per source.
type brandesScratch struct {
	sigma []float64
	dist  []int
	delta []float64
	pred  [][]int
	stack []int
	queue []int
}

func newBrandesScratch(n int) *brandesScratch {
	return &brandesScratch{
		sigma: make([]float64, n),
		dist:  make([]int, n),
		delta: make([]float64, n),
		pred:  make([][]int, n),
		stack: make([]int, 0, n),
		queue: make([]int, 0, n),
	}
}

// accumulate runs one BFS from source and adds the source's dependency
// scores into acc.
func (b *brandesScratch) accumulate(view *graph.View, source int, acc []float64) {
	for i := range b.dist {
		b.sigma[i] = 0
		b.dist[i] = -1
		b.delta[i] = 0
		b.pred[i] = b.pred[i][:0]
	}
	b.stack = b.stack[:0]
	b.queue = append(b.queue[:0], source)

	b.sigma[source] = 1
	b.dist[source] = 0

	for head := 0; head < len(b.queue); head++ {
		v := b.queue[head]
		b.stack = append(b.stack, v)

		for _, w := range view.Neighbors(v) {
			if b.dist[w] < 0 {
				b.dist[w] = b.dist[v] + 1
				b.queue = append(b.queue, w)
			}
			if b.dist[w] == b.dist[v]+1 {
				b.sigma[w] += b.sigma[v]
				b.pred[w] = append(b.pred[w], v)
			}
		}
	}

	// Back-propagation in reverse BFS order
	for i := len(b.stack) - 1; i >= 0; i-- {
		w := b.stack[i]
		for _, v := range b.pred[w] {
			b.delta[v] += (b.sigma[v] / b.sigma[w]) * (1.0 + b.delta[w])
		}
		if w != source {
			acc[w] += b.delta[w]
		}
	}
}

// BetweennessCentrality computes betweenness centrality for every node of
// the view with Brandes' algorithm over the undirected adjacency.
//
// Sources are split into fixed ranges processed on a worker pool; each range
// accumulates into its own buffer and the buffers are summed in range order.
// Raw scores are divided by the highest observed raw score rather than the
// theoretical maximum for n nodes, so the most central node of a sparse
// graph scores 1. Graphs with fewer than two nodes, or without any shortest
// path through an intermediate node, score 0 everywhere.
func BetweennessCentrality(view *graph.View, opts CentralityOptions) CentralityTable {
	if len(opts.Subset) > 0 {
		view = view.Induced(opts.Subset)
	}

	n := view.Len()
	table := make(CentralityTable, n)
	for _, id := range view.IDs() {
		table[id] = 0
	}
	if n < 2 {
		return table
	}

	partials := parallel.MapRanges(n, opts.Workers, func(r parallel.Range) []float64 {
		acc := make([]float64, n)
		scratch := newBrandesScratch(n)
		for s := r.Lo; s < r.Hi; s++ {
			scratch.accumulate(view, s, acc)
		}
		return acc
	})

	raw := make([]float64, n)
	for _, acc := range partials {
		for i, v := range acc {
			raw[i] += v
		}
	}

	highest := 0.0
	for _, v := range raw {
		if v > highest {
			highest = v
		}
	}
	if highest == 0 {
		return table
	}

	for i, v := range raw {
		table[view.ID(i)] = v / highest
	}
	return table
}

// RankedNode holds a node with its centrality score.
type RankedNode struct {
	NodeID graph.NodeID `json:"node_id"`
	Term   string       `json:"term"`
	Score  float64      `json:"score"`
}

// FindBridgeEntities returns the nodes whose centrality is at least
// threshold, highest score first. Ties are ordered by term, then ID. Nodes
// that are in the table but not in the view are skipped.
func FindBridgeEntities(view *graph.View, table CentralityTable, threshold float64) []RankedNode {
	out := make([]RankedNode, 0)
	for id, score := range table {
		if score < threshold {
			continue
		}
		idx, ok := view.Index(id)
		if !ok {
			continue
		}
		out = append(out, RankedNode{NodeID: id, Term: view.Term(idx), Score: score})
	}
	sortRanked(out)
	return out
}

// TopByCentrality returns the k most central nodes (all when k <= 0).
func TopByCentrality(view *graph.View, table CentralityTable, k int) []RankedNode {
	all := FindBridgeEntities(view, table, 0)
	if k > 0 && len(all) > k {
		all = all[:k]
	}
	return all
}

func sortRanked(nodes []RankedNode) {
	sort.Slice(nodes, func(i, j int) bool {
		if nodes[i].Score != nodes[j].Score {
			return nodes[i].Score > nodes[j].Score
		}
		if nodes[i].Term != nodes[j].Term {
			return nodes[i].Term < nodes[j].Term
		}
		return nodes[i].NodeID < nodes[j].NodeID
	})
}
