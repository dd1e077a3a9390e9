package distance

import (
	"sort"

	"github.com/dd0wney/semgraph/pkg/graph"
)

// UnitKind names a kind of structural unit entities can share.
type UnitKind int

const (
	// UnitGroup is a fact group: facts extracted from the same record.
	UnitGroup UnitKind = iota
	// UnitTopic is a page or topic the fact belongs to.
	UnitTopic
	// UnitSection is a section of the dataset, such as the primary section.
	UnitSection
)

type set map[string]struct{}

func (s set) add(v string) { s[v] = struct{}{} }

func (s set) has(v string) bool {
	_, ok := s[v]
	return ok
}

func (s set) sorted() []string {
	out := make([]string, 0, len(s))
	for v := range s {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// intersects reports whether a and b share at least one member.
func intersects(a, b set) bool {
	if len(b) < len(a) {
		a, b = b, a
	}
	for v := range a {
		if b.has(v) {
			return true
		}
	}
	return false
}

type pair struct{ a, b graph.NodeID }

func pairOf(a, b graph.NodeID) pair {
	if b < a {
		a, b = b, a
	}
	return pair{a, b}
}

// Corpus accumulates the per-entity signals the Calculator needs: the token
// set of each entity's associated text, the structural units it appears in,
// and how often each pair of entities co-occurs in the dataset.
//
// A Corpus is filled during ingestion and read during analysis; it is not
// safe for concurrent writes.
type Corpus struct {
	tokens map[graph.NodeID]set
	units  [3]map[graph.NodeID]set
	cooc   map[pair]int
}

// NewCorpus creates an empty corpus.
func NewCorpus() *Corpus {
	c := &Corpus{
		tokens: make(map[graph.NodeID]set),
		cooc:   make(map[pair]int),
	}
	for i := range c.units {
		c.units[i] = make(map[graph.NodeID]set)
	}
	return c
}

// AddText tokenizes text and adds the tokens to the entity's context.
func (c *Corpus) AddText(id graph.NodeID, text string) {
	tokens := c.tokens[id]
	if tokens == nil {
		tokens = make(set)
		c.tokens[id] = tokens
	}
	for _, tok := range Tokenize(text) {
		tokens.add(tok)
	}
}

// AddUnit records that the entity appears in a structural unit. Empty names
// are ignored.
func (c *Corpus) AddUnit(id graph.NodeID, kind UnitKind, name string) {
	if name == "" {
		return
	}
	units := c.units[kind][id]
	if units == nil {
		units = make(set)
		c.units[kind][id] = units
	}
	units.add(name)
}

// AddCooccurrence counts one more record in which a and b appear together.
// Self-pairs are ignored.
func (c *Corpus) AddCooccurrence(a, b graph.NodeID) {
	if a == b {
		return
	}
	c.cooc[pairOf(a, b)]++
}

// Cooccurrence returns how many records contain both a and b.
func (c *Corpus) Cooccurrence(a, b graph.NodeID) int {
	if a == b {
		return 0
	}
	return c.cooc[pairOf(a, b)]
}

// Tokens returns the sorted token set of an entity.
func (c *Corpus) Tokens(id graph.NodeID) []string {
	return c.tokens[id].sorted()
}

// Units returns the sorted names of the units of the given kind the entity
// appears in.
func (c *Corpus) Units(id graph.NodeID, kind UnitKind) []string {
	return c.units[kind][id].sorted()
}

// ShareUnit reports whether a and b appear together in any unit of kind.
func (c *Corpus) ShareUnit(a, b graph.NodeID, kind UnitKind) bool {
	return intersects(c.units[kind][a], c.units[kind][b])
}

// Forget drops everything known about an entity, e.g. after the node was
// removed from the store.
func (c *Corpus) Forget(id graph.NodeID) {
	delete(c.tokens, id)
	for i := range c.units {
		delete(c.units[i], id)
	}
	for p := range c.cooc {
		if p.a == id || p.b == id {
			delete(c.cooc, p)
		}
	}
}
