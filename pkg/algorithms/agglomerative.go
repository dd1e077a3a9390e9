package algorithms

import (
	"math"

	"github.com/dd0wney/semgraph/pkg/distance"
	"github.com/dd0wney/semgraph/pkg/graph"
)

// AgglomerativeOptions configures topic clustering.
type AgglomerativeOptions struct {
	// StopDistance ends merging once the two closest clusters are further
	// apart than this (average linkage).
	StopDistance float64
}

// DefaultAgglomerativeOptions returns the standard stop distance: clusters
// keep merging while they are at least linking-candidate close.
func DefaultAgglomerativeOptions() AgglomerativeOptions {
	return AgglomerativeOptions{StopDistance: 0.5}
}

// AgglomerativeClusters groups the entities of m into topic clusters. Each
// entity starts alone; the two clusters with the smallest average
// inter-cluster distance are merged until that distance exceeds
// opts.StopDistance. Ties go to the lowest matrix indices, so the result is
// deterministic.
//
// Distances between merged clusters are maintained with the Lance-Williams
// update for average linkage and each cluster caches its nearest neighbour,
// which keeps typical runs near O(n²). Entities of m that are not in view
// are left out of the result.
func AgglomerativeClusters(view *graph.View, m *distance.Matrix, opts AgglomerativeOptions) *Partition {
	n := m.Len()
	if n == 0 {
		return newPartition(view, nil)
	}

	h := newLinkage(m)
	for h.active > 1 {
		i, d := h.closest()
		if d > opts.StopDistance {
			break
		}
		h.merge(i, h.nn[i])
	}

	ids := m.IDs()
	groups := make([][]int, 0, h.active)
	avg := make(map[int]float64)
	for i := 0; i < n; i++ {
		if !h.alive[i] {
			continue
		}
		g := make([]int, 0, len(h.members[i]))
		for _, mi := range h.members[i] {
			if idx, ok := view.Index(ids[mi]); ok {
				g = append(g, idx)
			}
		}
		if len(g) == 0 {
			continue
		}
		groups = append(groups, g)
		avg[minIndex(g)] = meanPairwise(m, h.members[i])
	}

	p := newPartition(view, groups)
	for _, c := range p.Clusters {
		idx, _ := view.Index(c.Nodes[0])
		c.AvgDistance = avg[idx]
	}
	return p
}

// linkage holds the working state of an average-linkage run.
type linkage struct {
	n       int
	d       []float64 // condensed distances between current clusters
	alive   []bool
	size    []int
	members [][]int
	nn      []int
	nnDist  []float64
	active  int
}

func newLinkage(m *distance.Matrix) *linkage {
	n := m.Len()
	h := &linkage{
		n:       n,
		d:       m.Condensed(),
		alive:   make([]bool, n),
		size:    make([]int, n),
		members: make([][]int, n),
		nn:      make([]int, n),
		nnDist:  make([]float64, n),
		active:  n,
	}
	for i := 0; i < n; i++ {
		h.alive[i] = true
		h.size[i] = 1
		h.members[i] = []int{i}
	}
	for i := 0; i < n; i++ {
		h.refresh(i)
	}
	return h
}

func (h *linkage) at(i, j int) float64 {
	if j < i {
		i, j = j, i
	}
	return h.d[i*h.n-i*(i+1)/2+(j-i-1)]
}

func (h *linkage) set(i, j int, v float64) {
	if j < i {
		i, j = j, i
	}
	h.d[i*h.n-i*(i+1)/2+(j-i-1)] = v
}

// refresh recomputes the nearest live neighbour of i.
func (h *linkage) refresh(i int) {
	h.nn[i] = -1
	h.nnDist[i] = math.Inf(1)
	for j := 0; j < h.n; j++ {
		if j == i || !h.alive[j] {
			continue
		}
		if d := h.at(i, j); d < h.nnDist[i] {
			h.nn[i] = j
			h.nnDist[i] = d
		}
	}
}

// closest returns the live cluster whose nearest neighbour is closest.
func (h *linkage) closest() (int, float64) {
	best, bestDist := -1, math.Inf(1)
	for i := 0; i < h.n; i++ {
		if h.alive[i] && h.nn[i] >= 0 && h.nnDist[i] < bestDist {
			best, bestDist = i, h.nnDist[i]
		}
	}
	return best, bestDist
}

// merge folds cluster b into cluster a (the lower index survives).
func (h *linkage) merge(a, b int) {
	if b < a {
		a, b = b, a
	}
	sa, sb := float64(h.size[a]), float64(h.size[b])
	for k := 0; k < h.n; k++ {
		if k == a || k == b || !h.alive[k] {
			continue
		}
		h.set(a, k, (sa*h.at(a, k)+sb*h.at(b, k))/(sa+sb))
	}

	h.alive[b] = false
	h.size[a] += h.size[b]
	h.members[a] = append(h.members[a], h.members[b]...)
	h.members[b] = nil
	h.active--

	h.refresh(a)
	for k := 0; k < h.n; k++ {
		if !h.alive[k] || k == a {
			continue
		}
		switch {
		case h.nn[k] == a || h.nn[k] == b:
			h.refresh(k)
		case h.at(k, a) < h.nnDist[k] || (h.at(k, a) == h.nnDist[k] && a < h.nn[k]):
			h.nn[k] = a
			h.nnDist[k] = h.at(k, a)
		}
	}
}

func meanPairwise(m *distance.Matrix, members []int) float64 {
	if len(members) < 2 {
		return 0
	}
	sum, pairs := 0.0, 0
	for i := 0; i < len(members); i++ {
		for j := i + 1; j < len(members); j++ {
			sum += m.At(members[i], members[j])
			pairs++
		}
	}
	return sum / float64(pairs)
}

func minIndex(g []int) int {
	lowest := g[0]
	for _, v := range g[1:] {
		if v < lowest {
			lowest = v
		}
	}
	return lowest
}
