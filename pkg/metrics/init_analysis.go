package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initAnalysisMetrics() {
	r.AnalysisRunsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "semgraph_analysis_runs_total",
			Help: "Total number of analysis runs by outcome",
		},
		[]string{"status"},
	)

	r.AnalysisStageDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "semgraph_analysis_stage_duration_seconds",
			Help:    "Duration of each analysis stage in seconds",
			Buckets: []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1.0, 5.0, 30.0},
		},
		[]string{"stage"},
	)

	r.FactsIngestedTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "semgraph_facts_ingested_total",
			Help: "Total number of facts turned into graph elements",
		},
	)
}
