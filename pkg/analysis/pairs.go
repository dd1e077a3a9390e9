package analysis

import (
	"sort"

	"github.com/dd0wney/semgraph/pkg/distance"
	"github.com/dd0wney/semgraph/pkg/graph"
)

// bandPairs walks the distance matrix once and sorts entity pairs into the
// near-duplicate band and the linking band. Pairs already joined by an edge
// are not link candidates.
func bandPairs(view *graph.View, calc *distance.Calculator, m *distance.Matrix, opts Options) (cannibal, links []Pair) {
	ids := m.IDs()
	cannibal, links = make([]Pair, 0), make([]Pair, 0)

	for i := 0; i < len(ids); i++ {
		vi, okI := view.Index(ids[i])
		if !okI {
			continue
		}
		for j := i + 1; j < len(ids); j++ {
			vj, okJ := view.Index(ids[j])
			if !okJ {
				continue
			}
			d := m.At(i, j)
			switch {
			case d < opts.CannibalizationBand:
				cannibal = append(cannibal, newPair(view, calc, vi, vj))
			case d >= opts.LinkBandLow && d <= opts.LinkBandHigh && !adjacent(view, vi, vj):
				links = append(links, newPair(view, calc, vi, vj))
			}
		}
	}

	return limit(sortPairs(cannibal), opts.MaxPairs), limit(sortPairs(links), opts.MaxPairs)
}

func newPair(view *graph.View, calc *distance.Calculator, i, j int) Pair {
	a, b := view.Term(i), view.Term(j)
	signals := calc.Explain(view.ID(i), view.ID(j))
	if b < a {
		a, b = b, a
	}
	return Pair{A: a, B: b, Distance: signals.Distance, Signals: signals}
}

func adjacent(view *graph.View, i, j int) bool {
	nbrs := view.Neighbors(i)
	k := sort.SearchInts(nbrs, j)
	return k < len(nbrs) && nbrs[k] == j
}

func sortPairs(pairs []Pair) []Pair {
	sort.Slice(pairs, func(x, y int) bool {
		if pairs[x].Distance != pairs[y].Distance {
			return pairs[x].Distance < pairs[y].Distance
		}
		if pairs[x].A != pairs[y].A {
			return pairs[x].A < pairs[y].A
		}
		return pairs[x].B < pairs[y].B
	})
	return pairs
}

func limit(pairs []Pair, n int) []Pair {
	if n > 0 && len(pairs) > n {
		return pairs[:n]
	}
	return pairs
}
