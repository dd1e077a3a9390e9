package ingest

import (
	"sort"

	"github.com/dd0wney/semgraph/pkg/criticality"
	"github.com/dd0wney/semgraph/pkg/distance"
	"github.com/dd0wney/semgraph/pkg/graph"
)

// Profile is what the facts say about one node beyond the graph itself.
type Profile struct {
	// Subject is true when the node appears as a fact's entity.
	Subject bool
	// Central marks the configured central entity.
	Central bool
	// InPrimarySection is true when any fact mentioning the node is in the
	// primary section.
	InPrimarySection bool
	// Category is the strongest category among the node's facts.
	Category criticality.Category
	// Topics are the distinct topics the node appears in, sorted.
	Topics []string
	// Forms are the distinct surface forms the term was written in, sorted.
	Forms []string
}

// Ambiguous reports whether the term was seen in more than one surface
// form, e.g. "Apple" and "apple".
func (p *Profile) Ambiguous() bool {
	return len(p.Forms) > 1
}

type profileBuilder struct {
	subject  bool
	central  bool
	primary  bool
	category criticality.Category
	topics   map[string]struct{}
	forms    map[string]struct{}
}

func newProfileBuilder() *profileBuilder {
	return &profileBuilder{
		category: criticality.Common,
		topics:   make(map[string]struct{}),
		forms:    make(map[string]struct{}),
	}
}

func keys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func (pb *profileBuilder) build() *Profile {
	return &Profile{
		Subject:          pb.subject,
		Central:          pb.central,
		InPrimarySection: pb.primary,
		Category:         pb.category,
		Topics:           keys(pb.topics),
		Forms:            keys(pb.forms),
	}
}

// Dataset is the result of ingestion: the graph, the distance corpus it was
// weighed with, and a profile per node.
type Dataset struct {
	Store      *graph.Store
	Corpus     *distance.Corpus
	Calculator *distance.Calculator

	profiles map[graph.NodeID]*Profile
	facts    int
}

// Facts returns the number of facts the dataset was built from.
func (d *Dataset) Facts() int { return d.facts }

// Profile returns a copy of the node's profile.
func (d *Dataset) Profile(id graph.NodeID) (Profile, bool) {
	p, ok := d.profiles[id]
	if !ok {
		return Profile{}, false
	}
	return *p, true
}

// Subjects returns the IDs of nodes that appear as a fact's entity, in
// ascending order.
func (d *Dataset) Subjects() []graph.NodeID {
	return d.filter(func(p *Profile) bool { return p.Subject })
}

// Ambiguous returns the IDs of nodes flagged ambiguous, in ascending order.
func (d *Dataset) Ambiguous() []graph.NodeID {
	return d.filter(func(p *Profile) bool { return p.Ambiguous() })
}

func (d *Dataset) filter(keep func(*Profile) bool) []graph.NodeID {
	var out []graph.NodeID
	for id, p := range d.profiles {
		if keep(p) {
			out = append(out, id)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// RemoveNode deletes a node from the store and forgets its corpus signals
// and profile.
func (d *Dataset) RemoveNode(id graph.NodeID) error {
	if err := d.Store.RemoveNode(id); err != nil {
		return err
	}
	d.Corpus.Forget(id)
	delete(d.profiles, id)
	return nil
}

// CriticalityInputs assembles one scorer input per live fact subject, plus
// the central entity if it only ever appears as a value. centrality maps
// node IDs to betweenness scores; missing IDs score 0.
func (d *Dataset) CriticalityInputs(centrality map[graph.NodeID]float64) []criticality.Input {
	nodes := d.Store.Nodes()
	inputs := make([]criticality.Input, 0, len(nodes))
	for _, n := range nodes {
		p, ok := d.profiles[n.ID]
		if !ok || (!p.Subject && !p.Central) {
			continue
		}
		inputs = append(inputs, criticality.Input{
			Entity:           n.Term,
			Category:         p.Category,
			Central:          p.Central,
			InPrimarySection: p.InPrimarySection,
			Topics:           len(p.Topics),
			Centrality:       centrality[n.ID],
		})
	}
	return inputs
}
