package analysis

import (
	"errors"
	"fmt"

	"github.com/dd0wney/semgraph/pkg/algorithms"
	"github.com/dd0wney/semgraph/pkg/criticality"
	"github.com/dd0wney/semgraph/pkg/distance"
	"github.com/dd0wney/semgraph/pkg/validation"
)

// ErrInvalidOptions is returned when an option is out of range.
var ErrInvalidOptions = errors.New("invalid analysis options")

// SubsetMode selects which nodes betweenness centrality runs over.
type SubsetMode string

const (
	// SubsetAll computes centrality over the whole graph.
	SubsetAll SubsetMode = "all"
	// SubsetSubjects restricts centrality to fact subjects.
	SubsetSubjects SubsetMode = "subjects"
	// SubsetTerms restricts centrality to SubsetTerms.
	SubsetTerms SubsetMode = "terms"
)

var subsetModes = []string{string(SubsetAll), string(SubsetSubjects), string(SubsetTerms)}

// Options holds every tunable of one analysis run. Thresholds are
// fractions in [0, 1].
type Options struct {
	HoleThreshold      float64 `yaml:"hole_threshold" json:"hole_threshold"`
	StrongEdgeDistance float64 `yaml:"strong_edge_distance" json:"strong_edge_distance"`
	MinClusterSize     int     `yaml:"min_cluster_size" json:"min_cluster_size" validate:"gte=0"`
	CriticalThreshold  float64 `yaml:"critical_threshold" json:"critical_threshold"`
	BridgeThreshold    float64 `yaml:"bridge_threshold" json:"bridge_threshold"`
	StopDistance       float64 `yaml:"stop_distance" json:"stop_distance"`

	CannibalizationBand float64 `yaml:"cannibalization_band" json:"cannibalization_band"`
	LinkBandLow         float64 `yaml:"link_band_low" json:"link_band_low"`
	LinkBandHigh        float64 `yaml:"link_band_high" json:"link_band_high"`
	// MaxPairs caps each pair list in the report. 0 keeps every pair.
	MaxPairs int `yaml:"max_pairs" json:"max_pairs" validate:"gte=0"`
	// MaxHoles caps each hole list in the report, weakest connection first.
	// 0 keeps every hole.
	MaxHoles int `yaml:"max_holes" json:"max_holes" validate:"gte=0"`

	CentralitySubset SubsetMode `yaml:"centrality_subset" json:"centrality_subset"`
	SubsetTerms      []string   `yaml:"subset_terms" json:"subset_terms,omitempty"`

	// Workers bounds parallelism of every stage. 0 means GOMAXPROCS.
	Workers int `yaml:"workers" json:"workers" validate:"gte=0"`
}

// DefaultOptions returns the standard analysis settings.
func DefaultOptions() Options {
	return Options{
		HoleThreshold:       algorithms.DefaultHoleThreshold,
		MinClusterSize:      algorithms.DefaultHoleOptions().MinClusterSize,
		CriticalThreshold:   criticality.DefaultCriticalLevel,
		BridgeThreshold:     0.5,
		StopDistance:        algorithms.DefaultAgglomerativeOptions().StopDistance,
		CannibalizationBand: distance.CannibalizationBand,
		LinkBandLow:         distance.LinkBandLow,
		LinkBandHigh:        distance.LinkBandHigh,
		MaxPairs:            100,
		MaxHoles:            100,
		CentralitySubset:    SubsetAll,
	}
}

// Validate rejects out-of-range thresholds before any algorithm runs.
func (o Options) Validate() error {
	err := validation.NewConfigValidator("analysis").
		Struct(&o).
		Unit("HoleThreshold", o.HoleThreshold).
		Unit("StrongEdgeDistance", o.StrongEdgeDistance).
		Unit("CriticalThreshold", o.CriticalThreshold).
		Unit("BridgeThreshold", o.BridgeThreshold).
		Unit("StopDistance", o.StopDistance).
		Unit("CannibalizationBand", o.CannibalizationBand).
		Unit("LinkBandLow", o.LinkBandLow).
		Unit("LinkBandHigh", o.LinkBandHigh).
		Ordered("LinkBandLow", o.LinkBandLow, "LinkBandHigh", o.LinkBandHigh).
		When(o.CentralitySubset != "", func(cv *validation.ConfigValidator) {
			cv.OneOf("CentralitySubset", string(o.CentralitySubset), subsetModes)
		}).
		When(o.CentralitySubset == SubsetTerms, func(cv *validation.ConfigValidator) {
			cv.Var("SubsetTerms", o.SubsetTerms, "min=1,dive,required")
		}).
		Validate()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidOptions, err)
	}
	return nil
}

func (o Options) holeOptions() algorithms.HoleOptions {
	return algorithms.HoleOptions{
		Threshold:          o.HoleThreshold,
		StrongEdgeDistance: o.StrongEdgeDistance,
		MinClusterSize:     o.MinClusterSize,
		Workers:            o.Workers,
	}
}
