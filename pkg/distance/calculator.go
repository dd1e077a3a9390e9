package distance

import (
	"math"

	"github.com/dd0wney/semgraph/pkg/graph"
)

// Conventional distance bands. The calculator only produces distances;
// callers decide what to do with these.
const (
	// CannibalizationBand: below this, two entities are near-duplicates.
	CannibalizationBand = 0.2
	// LinkBandLow and LinkBandHigh bound good linking candidates.
	LinkBandLow  = 0.3
	LinkBandHigh = 0.7
)

// Options tunes the context multiplier.
type Options struct {
	// GroupWeight applies when two entities share a fact group.
	GroupWeight float64
	// TopicWeight applies when they share a topic but no fact group.
	TopicWeight float64
	// SectionWeight applies when they share only a section.
	SectionWeight float64
	// Workers bounds parallelism for Matrix. 0 means GOMAXPROCS.
	Workers int
}

// DefaultOptions returns the standard context weights.
func DefaultOptions() Options {
	return Options{
		GroupWeight:   2.0,
		TopicWeight:   1.5,
		SectionWeight: 1.25,
	}
}

// Components breaks one distance down into its signals.
type Components struct {
	Jaccard       float64 `json:"jaccard"`
	ContextWeight float64 `json:"context_weight"`
	Cooccurrence  int     `json:"cooccurrence"`
	Distance      float64 `json:"distance"`
}

// Calculator derives semantic distances from a Corpus:
//
//	d(a, b) = (1 - J(a, b)) / (W(a, b) * (1 + ln(1 + C(a, b))))
//
// where J is the Jaccard similarity of the token sets, W the context
// multiplier and C the co-occurrence count. d is symmetric, d(a, a) = 0 and
// d lies in [0, 1]. Lower means more related.
type Calculator struct {
	corpus *Corpus
	opts   Options
}

// NewCalculator creates a calculator over corpus. Zero weights in opts are
// replaced with the defaults.
func NewCalculator(corpus *Corpus, opts Options) *Calculator {
	def := DefaultOptions()
	if opts.GroupWeight <= 0 {
		opts.GroupWeight = def.GroupWeight
	}
	if opts.TopicWeight <= 0 {
		opts.TopicWeight = def.TopicWeight
	}
	if opts.SectionWeight <= 0 {
		opts.SectionWeight = def.SectionWeight
	}
	return &Calculator{corpus: corpus, opts: opts}
}

// Corpus returns the corpus the calculator reads from.
func (c *Calculator) Corpus() *Corpus { return c.corpus }

// WithWorkers returns a calculator with the same corpus and weights and a
// different Matrix parallelism bound.
func (c *Calculator) WithWorkers(workers int) *Calculator {
	opts := c.opts
	opts.Workers = workers
	return &Calculator{corpus: c.corpus, opts: opts}
}

// Jaccard returns |A∩B| / |A∪B| over the entities' token sets. An entity is
// fully similar to itself even with no tokens; two distinct entities without
// tokens share nothing.
func (c *Calculator) Jaccard(a, b graph.NodeID) float64 {
	if a == b {
		return 1.0
	}
	ta, tb := c.corpus.tokens[a], c.corpus.tokens[b]
	if len(ta) == 0 || len(tb) == 0 {
		return 0.0
	}
	if len(tb) < len(ta) {
		ta, tb = tb, ta
	}
	shared := 0
	for tok := range ta {
		if tb.has(tok) {
			shared++
		}
	}
	return float64(shared) / float64(len(ta)+len(tb)-shared)
}

// ContextWeight returns the multiplier for the tightest structural unit a
// and b share.
func (c *Calculator) ContextWeight(a, b graph.NodeID) float64 {
	switch {
	case c.corpus.ShareUnit(a, b, UnitGroup):
		return c.opts.GroupWeight
	case c.corpus.ShareUnit(a, b, UnitTopic):
		return c.opts.TopicWeight
	case c.corpus.ShareUnit(a, b, UnitSection):
		return c.opts.SectionWeight
	}
	return 1.0
}

// Explain returns the distance between a and b with its inputs.
func (c *Calculator) Explain(a, b graph.NodeID) Components {
	if a == b {
		return Components{Jaccard: 1.0, ContextWeight: 1.0}
	}
	j := c.Jaccard(a, b)
	w := c.ContextWeight(a, b)
	n := c.corpus.Cooccurrence(a, b)
	return Components{
		Jaccard:       j,
		ContextWeight: w,
		Cooccurrence:  n,
		Distance:      (1.0 - j) / (w * (1.0 + math.Log1p(float64(n)))),
	}
}

// Distance returns the semantic distance between a and b.
func (c *Calculator) Distance(a, b graph.NodeID) float64 {
	return c.Explain(a, b).Distance
}

// Weigh sets the weight of every edge in the store to the distance between
// its endpoints and returns the number of edges updated.
func (c *Calculator) Weigh(store *graph.Store) (int, error) {
	edges := store.Edges()
	for _, e := range edges {
		if err := store.SetEdgeWeight(e.ID, c.Distance(e.From, e.To)); err != nil {
			return 0, err
		}
	}
	return len(edges), nil
}
