package criticality

import (
	"math"
	"sort"
)

// Scoring constants.
const (
	CentralScore         = 1.0
	SectionBonus         = 0.2
	CooccurrenceStep     = 0.1
	CooccurrenceCap      = 0.3
	BridgeFactor         = 0.3
	DefaultCriticalLevel = 0.7
)

// Input carries everything known about one entity.
type Input struct {
	Entity string
	// Category is the strongest attribute category seen for the entity.
	Category Category
	// Central marks the single designated central entity of the dataset.
	Central bool
	// InPrimarySection is true when the entity appears in the primary
	// (monetization) section.
	InPrimarySection bool
	// Topics is the number of distinct topics the entity appears in.
	Topics int
	// Centrality is the entity's betweenness centrality in [0, 1].
	Centrality float64
}

// Breakdown lists the four terms that were summed into a score.
type Breakdown struct {
	BaseWeight        float64 `json:"base_weight"`
	SectionBonus      float64 `json:"section_bonus"`
	CooccurrenceBonus float64 `json:"cooccurrence_bonus"`
	BridgeBonus       float64 `json:"bridge_bonus"`
}

// Result is the scored entity.
type Result struct {
	Entity       string    `json:"entity"`
	Score        float64   `json:"score"`
	Critical     bool      `json:"critical"`
	Breakdown    Breakdown `json:"breakdown"`
	Verification Status    `json:"verification,omitempty"`
}

// Scorer combines the terms.
type Scorer struct {
	// Threshold is the score at or above which an entity is critical.
	Threshold float64
}

// NewScorer creates a scorer with the given critical threshold.
func NewScorer(threshold float64) *Scorer {
	return &Scorer{Threshold: threshold}
}

// DefaultScorer flags entities at or above DefaultCriticalLevel.
func DefaultScorer() *Scorer {
	return NewScorer(DefaultCriticalLevel)
}

// BaseWeight returns the category weight term.
func BaseWeight(c Category) float64 {
	return c.Weight()
}

// SectionTerm returns the primary-section bonus.
func SectionTerm(inPrimary bool) float64 {
	if inPrimary {
		return SectionBonus
	}
	return 0
}

// CooccurrenceTerm returns 0.1 per topic beyond the first, capped at 0.3.
func CooccurrenceTerm(topics int) float64 {
	if topics <= 1 {
		return 0
	}
	return math.Min(CooccurrenceStep*float64(topics-1), CooccurrenceCap)
}

// BridgeTerm returns the centrality contribution.
func BridgeTerm(centrality float64) float64 {
	return math.Max(0, centrality) * BridgeFactor
}

// Score computes the criticality of one entity. The central entity always
// scores exactly 1.0 and skips the formula.
func (s *Scorer) Score(in Input) Result {
	if in.Central {
		return Result{
			Entity:    in.Entity,
			Score:     CentralScore,
			Critical:  true,
			Breakdown: Breakdown{BaseWeight: CentralScore},
		}
	}

	b := Breakdown{
		BaseWeight:        BaseWeight(in.Category),
		SectionBonus:      SectionTerm(in.InPrimarySection),
		CooccurrenceBonus: CooccurrenceTerm(in.Topics),
		BridgeBonus:       BridgeTerm(in.Centrality),
	}
	score := math.Min(1.0, b.BaseWeight+b.SectionBonus+b.CooccurrenceBonus+b.BridgeBonus)

	return Result{
		Entity:    in.Entity,
		Score:     score,
		Critical:  score >= s.Threshold,
		Breakdown: b,
	}
}

// ScoreAll scores every input, highest score first, ties by entity name.
func (s *Scorer) ScoreAll(inputs []Input) []Result {
	out := make([]Result, len(inputs))
	for i, in := range inputs {
		out[i] = s.Score(in)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].Entity < out[j].Entity
	})
	return out
}

// CriticalCount returns how many results are flagged critical.
func CriticalCount(results []Result) int {
	n := 0
	for _, r := range results {
		if r.Critical {
			n++
		}
	}
	return n
}
