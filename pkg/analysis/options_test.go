package analysis

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptions_Validate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Options)
	}{
		{"hole threshold above one", func(o *Options) { o.HoleThreshold = 1.5 }},
		{"negative critical threshold", func(o *Options) { o.CriticalThreshold = -0.1 }},
		{"bridge threshold above one", func(o *Options) { o.BridgeThreshold = 2 }},
		{"stop distance above one", func(o *Options) { o.StopDistance = 1.01 }},
		{"link band inverted", func(o *Options) { o.LinkBandLow, o.LinkBandHigh = 0.8, 0.4 }},
		{"negative workers", func(o *Options) { o.Workers = -1 }},
		{"unknown subset", func(o *Options) { o.CentralitySubset = "some" }},
		{"terms subset without terms", func(o *Options) { o.CentralitySubset = SubsetTerms }},
		{"blank subset term", func(o *Options) { o.CentralitySubset, o.SubsetTerms = SubsetTerms, []string{"Coffee", ""} }},
		{"negative max holes", func(o *Options) { o.MaxHoles = -1 }},
		{"NaN strong edge distance", func(o *Options) { o.StrongEdgeDistance = math.NaN() }},
	}

	require.NoError(t, DefaultOptions().Validate())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			tt.modify(&opts)
			assert.ErrorIs(t, opts.Validate(), ErrInvalidOptions)

			_, err := New(opts, nil, nil)
			assert.ErrorIs(t, err, ErrInvalidOptions)
		})
	}
}

func TestOptions_BoundaryValues(t *testing.T) {
	opts := DefaultOptions()
	opts.HoleThreshold = 0
	opts.CriticalThreshold = 1
	opts.StopDistance = 0
	opts.CentralitySubset = ""
	assert.NoError(t, opts.Validate())
}

func TestOptions_ValidateMessages(t *testing.T) {
	opts := DefaultOptions()
	opts.HoleThreshold = 1.5
	assert.ErrorContains(t, opts.Validate(), "analysis.HoleThreshold: value 1.5 is outside range [0, 1]")

	opts = DefaultOptions()
	opts.CentralitySubset = "some"
	assert.ErrorContains(t, opts.Validate(), `analysis.CentralitySubset: value "some" must be one of [all subjects terms]`)

	opts = DefaultOptions()
	opts.CentralitySubset = SubsetTerms
	assert.ErrorContains(t, opts.Validate(), "analysis.SubsetTerms: must be at least 1")
}
