package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Registry holds all metrics for the application
type Registry struct {
	// Analysis Metrics
	AnalysisRunsTotal     *prometheus.CounterVec
	AnalysisStageDuration *prometheus.HistogramVec
	FactsIngestedTotal    prometheus.Counter

	// Graph Metrics
	GraphNodes        prometheus.Gauge
	GraphEdges        prometheus.Gauge
	GraphComponents   prometheus.Gauge
	TopicClusters     prometheus.Gauge
	AmbiguousEntities prometheus.Gauge

	// Result Metrics
	StructuralHolesTotal      *prometheus.CounterVec
	CriticalEntities          prometheus.Gauge
	BridgeEntities            prometheus.Gauge
	CannibalizationPairsTotal prometheus.Counter
	LinkCandidatesTotal       prometheus.Counter

	// System Metrics
	GoRoutines       prometheus.Gauge
	MemoryAllocBytes prometheus.Gauge
	MemorySysBytes   prometheus.Gauge

	registry *prometheus.Registry
	mu       sync.Mutex
}

var (
	// Global registry instance
	defaultRegistry *Registry
	once            sync.Once
)

// DefaultRegistry returns the global metrics registry
func DefaultRegistry() *Registry {
	once.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// NewRegistry creates a new metrics registry with all metrics initialized
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()

	r := &Registry{
		registry: reg,
	}

	// Initialize all metrics
	r.initAnalysisMetrics()
	r.initGraphMetrics()
	r.initResultMetrics()
	r.initSystemMetrics()

	return r
}

// GetPrometheusRegistry returns the underlying Prometheus registry
func (r *Registry) GetPrometheusRegistry() *prometheus.Registry {
	return r.registry
}
