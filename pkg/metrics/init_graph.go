package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initGraphMetrics() {
	r.GraphNodes = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "semgraph_graph_nodes",
			Help: "Number of entity nodes in the last analyzed graph",
		},
	)

	r.GraphEdges = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "semgraph_graph_edges",
			Help: "Number of relationship edges in the last analyzed graph",
		},
	)

	r.GraphComponents = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "semgraph_graph_components",
			Help: "Number of connected components in the last analyzed graph",
		},
	)

	r.TopicClusters = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "semgraph_topic_clusters",
			Help: "Number of agglomerative topic clusters in the last analysis",
		},
	)

	r.AmbiguousEntities = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "semgraph_ambiguous_entities",
			Help: "Number of entities seen with more than one surface form",
		},
	)
}

func (r *Registry) initResultMetrics() {
	r.StructuralHolesTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "semgraph_structural_holes_total",
			Help: "Total number of structural holes found by bridge type",
		},
		[]string{"bridge_type"},
	)

	r.CriticalEntities = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "semgraph_critical_entities",
			Help: "Number of entities flagged critical in the last analysis",
		},
	)

	r.BridgeEntities = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "semgraph_bridge_entities",
			Help: "Number of entities at or above the bridge centrality threshold",
		},
	)

	r.CannibalizationPairsTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "semgraph_cannibalization_pairs_total",
			Help: "Total number of near-duplicate entity pairs reported",
		},
	)

	r.LinkCandidatesTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "semgraph_link_candidates_total",
			Help: "Total number of unlinked entity pairs in the linking band",
		},
	)
}
