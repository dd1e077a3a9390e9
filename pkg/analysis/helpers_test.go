package analysis

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dd0wney/semgraph/pkg/ingest"
	"github.com/dd0wney/semgraph/pkg/metrics"
)

func dataset(t *testing.T, opts ingest.Options, facts ...ingest.Fact) *ingest.Dataset {
	t.Helper()
	a := ingest.NewAdapter(opts)
	require.NoError(t, a.Add(facts...))
	ds, err := a.Build()
	require.NoError(t, err)
	return ds
}

func analyze(t *testing.T, opts Options, ds *ingest.Dataset, reg *metrics.Registry) *Report {
	t.Helper()
	an, err := New(opts, nil, reg)
	require.NoError(t, err)
	report, err := an.Run(context.Background(), ds)
	require.NoError(t, err)
	return report
}

// starFacts: Hub is linked to four leaves that share nothing else.
func starFacts() []ingest.Fact {
	return []ingest.Fact{
		{Entity: "Hub", Attribute: "links", Value: "Alpha"},
		{Entity: "Hub", Attribute: "links", Value: "Bravo"},
		{Entity: "Hub", Attribute: "links", Value: "Charlie"},
		{Entity: "Hub", Attribute: "links", Value: "Delta"},
	}
}

// trianglesFacts: two groups of three entities each, nothing between them.
func trianglesFacts() []ingest.Fact {
	return []ingest.Fact{
		{Entity: "Coffee", Attribute: "pairs with", Value: "Cream", Group: "g1"},
		{Entity: "Coffee", Attribute: "pairs with", Value: "Sugar", Group: "g1"},
		{Entity: "Bicycle", Attribute: "needs", Value: "Helmet", Group: "g2"},
		{Entity: "Bicycle", Attribute: "needs", Value: "Pedal", Group: "g2"},
	}
}
