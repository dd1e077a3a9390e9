package metrics

import (
	"fmt"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Run outcomes.
const (
	StatusSuccess   = "success"
	StatusError     = "error"
	StatusCancelled = "cancelled"
)

// RecordRun counts one finished analysis run.
func (r *Registry) RecordRun(status string) {
	r.AnalysisRunsTotal.WithLabelValues(status).Inc()
}

// RecordStage records how long a pipeline stage took.
func (r *Registry) RecordStage(stage string, duration time.Duration) {
	r.AnalysisStageDuration.WithLabelValues(stage).Observe(duration.Seconds())
}

// UpdateGraphMetrics sets the size gauges for the analyzed graph.
func (r *Registry) UpdateGraphMetrics(facts, nodes, edges, ambiguous int) {
	r.FactsIngestedTotal.Add(float64(facts))
	r.GraphNodes.Set(float64(nodes))
	r.GraphEdges.Set(float64(edges))
	r.AmbiguousEntities.Set(float64(ambiguous))
}

// UpdateClusterMetrics sets the component and topic cluster gauges.
func (r *Registry) UpdateClusterMetrics(components, topics int) {
	r.GraphComponents.Set(float64(components))
	r.TopicClusters.Set(float64(topics))
}

// RecordHole counts one structural hole.
func (r *Registry) RecordHole(bridgeType string) {
	r.StructuralHolesTotal.WithLabelValues(bridgeType).Inc()
}

// UpdateResultMetrics sets the per-run result gauges and counters.
func (r *Registry) UpdateResultMetrics(critical, bridges, cannibalization, links int) {
	r.CriticalEntities.Set(float64(critical))
	r.BridgeEntities.Set(float64(bridges))
	r.CannibalizationPairsTotal.Add(float64(cannibalization))
	r.LinkCandidatesTotal.Add(float64(links))
}

// CaptureRuntime samples goroutine and memory gauges.
func (r *Registry) CaptureRuntime() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	r.GoRoutines.Set(float64(runtime.NumGoroutine()))
	r.MemoryAllocBytes.Set(float64(m.Alloc))
	r.MemorySysBytes.Set(float64(m.Sys))
}

// WriteTextfile writes every metric to path in the Prometheus text format,
// for pickup by the node exporter's textfile collector.
func (r *Registry) WriteTextfile(path string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
