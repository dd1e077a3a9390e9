package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dd0wney/semgraph/pkg/criticality"
	"github.com/dd0wney/semgraph/pkg/graph"
)

func build(t *testing.T, opts Options, facts ...Fact) *Dataset {
	t.Helper()
	a := NewAdapter(opts)
	require.NoError(t, a.Add(facts...))
	ds, err := a.Build()
	require.NoError(t, err)
	return ds
}

func nodeID(t *testing.T, ds *Dataset, term string) graph.NodeID {
	t.Helper()
	n, err := ds.Store.GetNodeByTerm(term)
	require.NoError(t, err, "term %q", term)
	return n.ID
}

func edgeLabels(t *testing.T, ds *Dataset, a, b string) []string {
	t.Helper()
	from, to := nodeID(t, ds, a), nodeID(t, ds, b)
	var labels []string
	for _, e := range ds.Store.Edges() {
		if (e.From == from && e.To == to) || (e.From == to && e.To == from) {
			labels = append(labels, e.Label)
		}
	}
	return labels
}

func TestAdapter_SubjectsAndValues(t *testing.T) {
	ds := build(t, DefaultOptions(),
		Fact{Entity: "Coffee", Attribute: "origin", Value: "Ethiopia"},
		Fact{Entity: "Coffee", Attribute: "caffeine", Value: "95"},
		Fact{Entity: "Coffee", Attribute: "description", Value: "a brewed drink prepared from roasted beans"},
	)

	assert.Equal(t, 2, ds.Store.Stats().NodeCount, "numeric and long values stay attribute data")
	assert.Equal(t, 3, ds.Facts())

	coffee, err := ds.Store.GetNodeByTerm("coffee")
	require.NoError(t, err)
	assert.Equal(t, graph.TypeEntity, coffee.Type)

	ethiopia, err := ds.Store.GetNodeByTerm("Ethiopia")
	require.NoError(t, err)
	assert.Equal(t, graph.TypeConcept, ethiopia.Type)

	assert.Equal(t, []string{"origin"}, edgeLabels(t, ds, "Coffee", "Ethiopia"))
	assert.Equal(t, []graph.NodeID{coffee.ID}, ds.Subjects())
}

func TestAdapter_ValueThatIsAlsoSubjectIsEntity(t *testing.T) {
	ds := build(t, DefaultOptions(),
		Fact{Entity: "Latte", Attribute: "made with", Value: "Espresso"},
		Fact{Entity: "Espresso", Attribute: "origin", Value: "Italy"},
	)

	espresso, err := ds.Store.GetNodeByTerm("Espresso")
	require.NoError(t, err)
	assert.Equal(t, graph.TypeEntity, espresso.Type)
	assert.Len(t, ds.Subjects(), 2)
}

func TestAdapter_GroupIsOneRecord(t *testing.T) {
	ds := build(t, DefaultOptions(),
		Fact{Entity: "Coffee", Attribute: "origin", Value: "Ethiopia", Group: "g1"},
		Fact{Entity: "Tea", Attribute: "origin", Value: "China", Group: "g1"},
	)

	stats := ds.Store.Stats()
	assert.Equal(t, 4, stats.NodeCount)
	assert.Equal(t, 6, stats.EdgeCount, "one edge per distinct pair in the group")

	assert.Equal(t, []string{"origin"}, edgeLabels(t, ds, "Coffee", "Ethiopia"))
	assert.Equal(t, []string{"origin"}, edgeLabels(t, ds, "Tea", "China"))
	assert.Equal(t, []string{CooccursLabel}, edgeLabels(t, ds, "Coffee", "Tea"))
	assert.Equal(t, []string{CooccursLabel}, edgeLabels(t, ds, "Ethiopia", "China"))

	assert.Equal(t, 1, ds.Corpus.Cooccurrence(nodeID(t, ds, "Coffee"), nodeID(t, ds, "Tea")))
}

func TestAdapter_UngroupedFactsAreSeparateRecords(t *testing.T) {
	ds := build(t, DefaultOptions(),
		Fact{Entity: "Coffee", Attribute: "origin", Value: "Ethiopia"},
		Fact{Entity: "Coffee", Attribute: "grown in", Value: "Ethiopia"},
		Fact{Entity: "Tea", Attribute: "origin", Value: "China"},
	)

	assert.Equal(t, []string{"origin", "grown in"}, edgeLabels(t, ds, "Coffee", "Ethiopia"))
	assert.Empty(t, edgeLabels(t, ds, "Coffee", "Tea"))
	assert.Equal(t, 2, ds.Corpus.Cooccurrence(nodeID(t, ds, "Coffee"), nodeID(t, ds, "Ethiopia")))
}

func TestAdapter_SelfPairSkipped(t *testing.T) {
	ds := build(t, DefaultOptions(),
		Fact{Entity: "Coffee", Attribute: "also known as", Value: "coffee"},
	)

	stats := ds.Store.Stats()
	assert.Equal(t, 1, stats.NodeCount)
	assert.Zero(t, stats.EdgeCount)
	assert.Zero(t, stats.SelfLoops)
}

func TestAdapter_EdgeWeightsAreDistances(t *testing.T) {
	ds := build(t, DefaultOptions(),
		Fact{Entity: "Coffee", Attribute: "origin", Value: "Ethiopia", Topic: "beans", Group: "g"},
		Fact{Entity: "Tea", Attribute: "origin", Value: "China", Topic: "beans", Group: "g"},
		Fact{Entity: "Bicycle", Attribute: "wheels", Value: "Spokes", Topic: "bikes"},
	)

	for _, e := range ds.Store.Edges() {
		assert.InDelta(t, ds.Calculator.Distance(e.From, e.To), e.Weight, 1e-12)
		assert.GreaterOrEqual(t, e.Weight, 0.0)
		assert.LessOrEqual(t, e.Weight, 1.0)
	}
}

func TestAdapter_Ambiguity(t *testing.T) {
	ds := build(t, DefaultOptions(),
		Fact{Entity: "Apple", Attribute: "founded", Value: "Cupertino"},
		Fact{Entity: "apple", Attribute: "color", Value: "red"},
		Fact{Entity: "Pear", Attribute: "color", Value: "green"},
	)

	apple, err := ds.Store.GetNodeByTerm("APPLE")
	require.NoError(t, err)
	assert.Equal(t, "Apple", apple.Term, "first surface form is kept")
	assert.True(t, apple.Meta.Ambiguous)

	pear, err := ds.Store.GetNodeByTerm("Pear")
	require.NoError(t, err)
	assert.False(t, pear.Meta.Ambiguous)

	assert.Equal(t, []graph.NodeID{apple.ID}, ds.Ambiguous())

	p, ok := ds.Profile(apple.ID)
	require.True(t, ok)
	assert.Equal(t, []string{"Apple", "apple"}, p.Forms)
}

func TestAdapter_Profiles(t *testing.T) {
	opts := DefaultOptions()
	opts.CentralEntity = "acme roasters"
	opts.PrimarySection = "Shop"

	ds := build(t, opts,
		Fact{Entity: "Acme Roasters", Attribute: "sells", Value: "Coffee", Category: "UNIQUE", Topic: "about"},
		Fact{Entity: "Coffee", Attribute: "origin", Value: "Ethiopia", Category: "rare", Topic: "beans", Section: "shop"},
		Fact{Entity: "Coffee", Attribute: "roast", Value: "dark", Category: "ROOT", Topic: "roasting"},
		Fact{Entity: "Coffee", Attribute: "served", Value: "hot", Category: "whatever", Topic: "beans"},
	)

	coffee, ok := ds.Profile(nodeID(t, ds, "Coffee"))
	require.True(t, ok)
	assert.Equal(t, criticality.Root, coffee.Category, "strongest category across its own facts")
	assert.Equal(t, []string{"about", "beans", "roasting"}, coffee.Topics)
	assert.True(t, coffee.InPrimarySection)
	assert.True(t, coffee.Subject)
	assert.False(t, coffee.Central)

	acme, ok := ds.Profile(nodeID(t, ds, "Acme Roasters"))
	require.True(t, ok)
	assert.True(t, acme.Central)
	assert.False(t, acme.InPrimarySection)

	node, err := ds.Store.GetNodeByTerm("Coffee")
	require.NoError(t, err)
	require.NotNil(t, node.Meta.Importance)
	assert.InDelta(t, criticality.Root.Weight(), *node.Meta.Importance, 1e-12)

	ethiopia, ok := ds.Profile(nodeID(t, ds, "Ethiopia"))
	require.True(t, ok)
	assert.False(t, ethiopia.Subject)
	assert.Equal(t, criticality.Common, ethiopia.Category, "values do not inherit the fact's category")
}

func TestAdapter_CriticalityInputs(t *testing.T) {
	opts := DefaultOptions()
	opts.CentralEntity = "Acme"

	ds := build(t, opts,
		Fact{Entity: "Acme", Attribute: "sells", Value: "Coffee", Topic: "a"},
		Fact{Entity: "Coffee", Attribute: "origin", Value: "Ethiopia", Category: "ROOT", Topic: "b"},
	)
	coffeeID := nodeID(t, ds, "Coffee")

	inputs := ds.CriticalityInputs(map[graph.NodeID]float64{coffeeID: 1.0})
	require.Len(t, inputs, 2, "only fact subjects are scored")

	byEntity := make(map[string]criticality.Input)
	for _, in := range inputs {
		byEntity[in.Entity] = in
	}
	assert.True(t, byEntity["Acme"].Central)
	assert.Equal(t, 2, byEntity["Coffee"].Topics)
	assert.Equal(t, 1.0, byEntity["Coffee"].Centrality)
	assert.Equal(t, criticality.Root, byEntity["Coffee"].Category)
	assert.NotContains(t, byEntity, "Ethiopia")

	result := criticality.DefaultScorer().Score(byEntity["Coffee"])
	assert.InDelta(t, 0.8+0.1+0.3, result.Breakdown.BaseWeight+result.Breakdown.CooccurrenceBonus+result.Breakdown.BridgeBonus, 1e-12)
	assert.Equal(t, 1.0, result.Score)
}

func TestAdapter_InvalidFact(t *testing.T) {
	a := NewAdapter(DefaultOptions())
	require.NoError(t, a.Add(Fact{Entity: "Coffee", Attribute: "origin", Value: "Ethiopia"}))

	err := a.Add(
		Fact{Entity: "Tea", Attribute: "origin", Value: "China"},
		Fact{Entity: "   ", Attribute: "origin"},
	)
	require.ErrorIs(t, err, ErrInvalidFact)
	assert.Equal(t, 1, a.Len(), "a failed Add keeps nothing from that call")

	err = a.Add(Fact{Entity: "Tea"})
	assert.ErrorIs(t, err, ErrInvalidFact)
}

func TestAdapter_Empty(t *testing.T) {
	ds, err := NewAdapter(DefaultOptions()).Build()
	require.NoError(t, err)
	assert.Zero(t, ds.Store.Stats().NodeCount)
	assert.Empty(t, ds.Subjects())
	assert.Empty(t, ds.CriticalityInputs(nil))
}

func TestDataset_RemoveNode(t *testing.T) {
	ds := build(t, DefaultOptions(),
		Fact{Entity: "Coffee", Attribute: "origin", Value: "Ethiopia"},
	)
	coffee, ethiopia := nodeID(t, ds, "Coffee"), nodeID(t, ds, "Ethiopia")

	require.NoError(t, ds.RemoveNode(ethiopia))
	assert.Zero(t, ds.Store.Stats().EdgeCount)
	assert.Zero(t, ds.Corpus.Cooccurrence(coffee, ethiopia))
	assert.Empty(t, ds.Corpus.Tokens(ethiopia))
	_, ok := ds.Profile(ethiopia)
	assert.False(t, ok)

	assert.True(t, graph.IsNotFound(ds.RemoveNode(ethiopia)))
}

func TestAdapter_AssociatedText(t *testing.T) {
	ds := build(t, DefaultOptions(),
		Fact{Entity: "Coffee", Attribute: "description", Value: "brewed drink made from roasted beans"},
		Fact{Entity: "Coffee", Attribute: "origin", Value: "Ethiopia"},
	)

	coffee := nodeID(t, ds, "Coffee")
	assert.Equal(t, []string{"beans", "brewed", "coffee", "drink", "made", "roasted"}, ds.Corpus.Tokens(coffee))
	assert.Equal(t, []string{"ethiopia"}, ds.Corpus.Tokens(nodeID(t, ds, "Ethiopia")))
}
