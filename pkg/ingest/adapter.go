package ingest

import (
	"fmt"
	"strings"

	"github.com/dd0wney/semgraph/pkg/criticality"
	"github.com/dd0wney/semgraph/pkg/distance"
	"github.com/dd0wney/semgraph/pkg/graph"
)

// Adapter turns facts into a weighted entity graph. Facts are buffered by
// Add and materialized by Build, so group membership is known in full
// before any edge is created.
type Adapter struct {
	opts  Options
	facts []Fact
}

// NewAdapter creates an adapter. A zero MaxValueWords selects the default.
func NewAdapter(opts Options) *Adapter {
	if opts.MaxValueWords <= 0 {
		opts.MaxValueWords = DefaultMaxValueWords
	}
	return &Adapter{opts: opts}
}

// Add validates and buffers facts. If any fact is invalid, none from this
// call are kept.
func (a *Adapter) Add(facts ...Fact) error {
	for i := range facts {
		if err := facts[i].Validate(); err != nil {
			return fmt.Errorf("fact %d: %w", len(a.facts)+i, err)
		}
	}
	a.facts = append(a.facts, facts...)
	return nil
}

// Len returns the number of buffered facts.
func (a *Adapter) Len() int { return len(a.facts) }

// record is one co-occurrence unit: a single fact, or every fact sharing a
// group.
type record struct {
	members []graph.NodeID
	seen    map[graph.NodeID]bool
	labels  map[[2]graph.NodeID]string
}

func newRecord() *record {
	return &record{
		seen:   make(map[graph.NodeID]bool),
		labels: make(map[[2]graph.NodeID]string),
	}
}

func (r *record) add(id graph.NodeID) {
	if id == 0 || r.seen[id] {
		return
	}
	r.seen[id] = true
	r.members = append(r.members, id)
}

func pairKey(a, b graph.NodeID) [2]graph.NodeID {
	if b < a {
		a, b = b, a
	}
	return [2]graph.NodeID{a, b}
}

// label marks the subject/value pair with its attribute. The first attribute
// seen for a pair wins.
func (r *record) label(subject, value graph.NodeID, attribute string) {
	if value == 0 || subject == value {
		return
	}
	k := pairKey(subject, value)
	if _, ok := r.labels[k]; !ok {
		r.labels[k] = attribute
	}
}

type builder struct {
	opts     Options
	store    *graph.Store
	corpus   *distance.Corpus
	subjects map[string]bool
	profiles map[graph.NodeID]*profileBuilder
}

// Build creates the store, fills the distance corpus, adds one edge per
// distinct entity pair per record and weighs every edge.
func (a *Adapter) Build() (*Dataset, error) {
	b := &builder{
		opts:     a.opts,
		store:    graph.NewStore(),
		corpus:   distance.NewCorpus(),
		subjects: make(map[string]bool),
		profiles: make(map[graph.NodeID]*profileBuilder),
	}
	for _, f := range a.facts {
		b.subjects[graph.NormalizeTerm(f.Entity)] = true
	}

	records := make(map[string]*record)
	var order []string

	for i, f := range a.facts {
		sid, err := b.node(f.Entity, f, true)
		if err != nil {
			return nil, fmt.Errorf("fact %d: %w", i, err)
		}

		var vid graph.NodeID
		if entityValue(f.Value, a.opts.MaxValueWords) {
			if vid, err = b.node(f.Value, f, false); err != nil {
				return nil, fmt.Errorf("fact %d: %w", i, err)
			}
		} else {
			// values that stay attribute data describe the subject
			b.corpus.AddText(sid, f.Value)
		}

		unit := "group:" + f.Group
		if f.Group == "" {
			unit = fmt.Sprintf("fact:%d", i)
		}
		for _, id := range []graph.NodeID{sid, vid} {
			if id == 0 {
				continue
			}
			b.corpus.AddUnit(id, distance.UnitGroup, unit)
			b.corpus.AddUnit(id, distance.UnitTopic, f.Topic)
			b.corpus.AddUnit(id, distance.UnitSection, f.Section)
		}

		rec, ok := records[unit]
		if !ok {
			rec = newRecord()
			records[unit] = rec
			order = append(order, unit)
		}
		rec.add(sid)
		rec.add(vid)
		rec.label(sid, vid, f.Attribute)
	}

	for _, unit := range order {
		if err := b.link(records[unit]); err != nil {
			return nil, err
		}
	}

	calc := distance.NewCalculator(b.corpus, a.opts.Distance)
	if _, err := calc.Weigh(b.store); err != nil {
		return nil, fmt.Errorf("weigh edges: %w", err)
	}

	profiles := make(map[graph.NodeID]*Profile, len(b.profiles))
	for id, pb := range b.profiles {
		p := pb.build()
		profiles[id] = p
		err := b.store.Annotate(id, func(n *graph.Node) {
			importance := p.Category.Weight()
			n.Meta.Importance = &importance
			n.Meta.Ambiguous = p.Ambiguous()
		})
		if err != nil {
			return nil, err
		}
	}

	return &Dataset{
		Store:      b.store,
		Corpus:     b.corpus,
		Calculator: calc,
		profiles:   profiles,
		facts:      len(a.facts),
	}, nil
}

// node inserts or finds the node for term and folds the fact into its
// profile. Category is only taken from facts whose entity is term.
func (b *builder) node(term string, f Fact, subject bool) (graph.NodeID, error) {
	key := graph.NormalizeTerm(term)
	typ := graph.TypeConcept
	if b.subjects[key] {
		typ = graph.TypeEntity
	}

	id, err := b.store.AddNode(graph.Node{
		Term: term,
		Type: typ,
		Meta: graph.Metadata{Source: f.Source},
	})
	if err != nil {
		return 0, err
	}

	pb, ok := b.profiles[id]
	if !ok {
		pb = newProfileBuilder()
		b.profiles[id] = pb
		b.corpus.AddText(id, term)
	}
	pb.forms[strings.Join(strings.Fields(term), " ")] = struct{}{}
	if subject {
		pb.subject = true
		pb.category = pb.category.Stronger(criticality.ParseCategory(f.Category))
	}
	if f.Topic != "" {
		pb.topics[f.Topic] = struct{}{}
	}
	if b.opts.PrimarySection != "" && graph.NormalizeTerm(f.Section) == graph.NormalizeTerm(b.opts.PrimarySection) {
		pb.primary = true
	}
	if b.opts.CentralEntity != "" && key == graph.NormalizeTerm(b.opts.CentralEntity) {
		pb.central = true
	}
	return id, nil
}

// link adds one edge per distinct pair in the record and counts the
// co-occurrence.
func (b *builder) link(r *record) error {
	for i := 0; i < len(r.members); i++ {
		for j := i + 1; j < len(r.members); j++ {
			from, to := r.members[i], r.members[j]
			label, ok := r.labels[pairKey(from, to)]
			if !ok {
				label = CooccursLabel
			}
			b.corpus.AddCooccurrence(from, to)
			if _, err := b.store.AddEdge(graph.Edge{From: from, To: to, Label: label}); err != nil {
				return err
			}
		}
	}
	return nil
}
