package distance

import (
	"github.com/dd0wney/semgraph/pkg/graph"
	"github.com/dd0wney/semgraph/pkg/parallel"
)

// Matrix is a symmetric all-pairs distance table over a fixed list of
// entities, stored in condensed upper-triangular form.
type Matrix struct {
	ids  []graph.NodeID
	data []float64
}

// Len returns the number of entities in the matrix.
func (m *Matrix) Len() int { return len(m.ids) }

// IDs returns the entities in matrix order.
func (m *Matrix) IDs() []graph.NodeID { return m.ids }

// offset returns the condensed index of (i, j) for i < j.
func (m *Matrix) offset(i, j int) int {
	n := len(m.ids)
	return i*n - i*(i+1)/2 + (j - i - 1)
}

// At returns the distance between the i-th and j-th entity.
func (m *Matrix) At(i, j int) float64 {
	if i == j {
		return 0
	}
	if j < i {
		i, j = j, i
	}
	return m.data[m.offset(i, j)]
}

// Condensed returns a copy of the upper triangle in row-major order: the
// distance between i and j (i < j) is at i*n - i*(i+1)/2 + (j-i-1).
func (m *Matrix) Condensed() []float64 {
	return append([]float64(nil), m.data...)
}

// Matrix computes every pairwise distance among ids. Rows are spread over a
// worker pool; each row writes a disjoint slice of the table.
func (c *Calculator) Matrix(ids []graph.NodeID) *Matrix {
	n := len(ids)
	m := &Matrix{
		ids:  append([]graph.NodeID(nil), ids...),
		data: make([]float64, n*(n-1)/2),
	}

	parallel.MapRanges(n, c.opts.Workers, func(r parallel.Range) struct{} {
		for i := r.Lo; i < r.Hi; i++ {
			for j := i + 1; j < n; j++ {
				m.data[m.offset(i, j)] = c.Distance(ids[i], ids[j])
			}
		}
		return struct{}{}
	})

	return m
}
