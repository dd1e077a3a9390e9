package analysis

import (
	"time"

	"github.com/dd0wney/semgraph/pkg/algorithms"
	"github.com/dd0wney/semgraph/pkg/criticality"
	"github.com/dd0wney/semgraph/pkg/distance"
)

// GraphSummary describes the analyzed graph.
type GraphSummary struct {
	Facts     int      `json:"facts"`
	Nodes     int      `json:"nodes"`
	Edges     int      `json:"edges"`
	SelfLoops int      `json:"self_loops"`
	Ambiguous []string `json:"ambiguous,omitempty"`
}

// Hole is a structural hole with the entity on each side best placed to be
// linked by bridging content.
type Hole struct {
	algorithms.StructuralHole
	CandidateA *algorithms.BridgeCandidate `json:"candidate_a,omitempty"`
	CandidateB *algorithms.BridgeCandidate `json:"candidate_b,omitempty"`
}

// Pair is two entities and the distance between them.
type Pair struct {
	A        string              `json:"a"`
	B        string              `json:"b"`
	Distance float64             `json:"distance"`
	Signals  distance.Components `json:"signals"`
}

// Report is the outcome of one analysis run. It is plain data and
// round-trips through Encode and Decode.
type Report struct {
	RunID     string       `json:"run_id"`
	CreatedAt time.Time    `json:"created_at"`
	Options   Options      `json:"options"`
	Graph     GraphSummary `json:"graph"`

	Centrality []algorithms.RankedNode `json:"centrality"`
	Bridges    []algorithms.RankedNode `json:"bridges"`

	Components    []*algorithms.Cluster `json:"components"`
	TopicClusters []*algorithms.Cluster `json:"topic_clusters"`

	// Holes and TopicHoles are capped at Options.MaxHoles; the counts are
	// the totals before the cap.
	Holes          []Hole `json:"holes"`
	TopicHoles     []Hole `json:"topic_holes"`
	HoleCount      int    `json:"hole_count"`
	TopicHoleCount int    `json:"topic_hole_count"`

	Cannibalization []Pair `json:"cannibalization"`
	LinkCandidates  []Pair `json:"link_candidates"`

	Criticality       []criticality.Result `json:"criticality"`
	VerificationQueue []string             `json:"verification_queue"`
}

// CriticalCount returns the number of entities flagged critical.
func (r *Report) CriticalCount() int {
	return criticality.CriticalCount(r.Criticality)
}

// ApplyVerification records external verification statuses on the
// criticality results. Scores are left untouched.
func (r *Report) ApplyVerification(statuses map[string]criticality.Status) {
	r.Criticality = criticality.ApplyVerification(r.Criticality, statuses)
}
