package analysis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dd0wney/semgraph/pkg/algorithms"
	"github.com/dd0wney/semgraph/pkg/criticality"
	"github.com/dd0wney/semgraph/pkg/distance"
	"github.com/dd0wney/semgraph/pkg/graph"
	"github.com/dd0wney/semgraph/pkg/ingest"
	"github.com/dd0wney/semgraph/pkg/logging"
	"github.com/dd0wney/semgraph/pkg/metrics"
)

// Stage names, as they appear in logs and metrics.
const (
	StageSnapshot    = "snapshot"
	StageCentrality  = "centrality"
	StageComponents  = "components"
	StageTopics      = "topics"
	StageHoles       = "holes"
	StageBands       = "bands"
	StageCriticality = "criticality"
)

// Analyzer runs the full analysis over an ingested dataset. Each stage is an
// uninterruptible computation; the context is checked between stages.
type Analyzer struct {
	opts    Options
	logger  logging.Logger
	metrics *metrics.Registry
}

// New creates an analyzer. A nil logger discards logs; a nil registry
// disables metrics.
func New(opts Options, logger logging.Logger, reg *metrics.Registry) (*Analyzer, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Analyzer{opts: opts, logger: logger, metrics: reg}, nil
}

// Options returns the analyzer's settings.
func (a *Analyzer) Options() Options { return a.opts }

// run carries the per-run state between stages.
type run struct {
	*Analyzer
	ctx    context.Context
	log    logging.Logger
	ds     *ingest.Dataset
	view   *graph.View
	report *Report
}

// stage runs fn unless the context is done, logging and timing it.
func (r *run) stage(name string, fn func() error) error {
	if err := r.ctx.Err(); err != nil {
		return fmt.Errorf("before %s: %w", name, err)
	}
	start := time.Now()
	if err := fn(); err != nil {
		r.log.Error("stage failed", logging.Stage(name), logging.Error(err))
		return fmt.Errorf("%s: %w", name, err)
	}
	elapsed := time.Since(start)
	r.log.Debug("stage complete", logging.Stage(name), logging.Latency(elapsed))
	if r.metrics != nil {
		r.metrics.RecordStage(name, elapsed)
	}
	return nil
}

// Run analyzes ds and returns the report. The dataset must not be mutated
// while Run is in progress.
func (a *Analyzer) Run(ctx context.Context, ds *ingest.Dataset) (*Report, error) {
	runID := uuid.New().String()
	r := &run{
		Analyzer: a,
		ctx:      ctx,
		log:      a.logger.With(logging.RunID(runID), logging.Component("analysis")),
		ds:       ds,
		report: &Report{
			RunID:     runID,
			CreatedAt: time.Now().UTC(),
			Options:   a.opts,
		},
	}

	timer := logging.StartTimer(r.log, "analysis complete")
	err := r.execute()
	switch {
	case err == nil:
		timer.End(
			logging.Int("holes", r.report.HoleCount+r.report.TopicHoleCount),
			logging.Int("critical", r.report.CriticalCount()),
			logging.Int("bridges", len(r.report.Bridges)),
		)
		a.record(metrics.StatusSuccess)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		r.log.Warn("analysis cancelled", logging.Error(err))
		a.record(metrics.StatusCancelled)
	default:
		timer.EndError(err)
		a.record(metrics.StatusError)
	}
	if err != nil {
		return nil, err
	}
	return r.report, nil
}

func (a *Analyzer) record(status string) {
	if a.metrics == nil {
		return
	}
	a.metrics.RecordRun(status)
	a.metrics.CaptureRuntime()
}

func (r *run) execute() error {
	var (
		table  algorithms.CentralityTable
		topics *algorithms.Partition
		matrix *distance.Matrix
	)
	calc := r.ds.Calculator.WithWorkers(r.opts.Workers)
	matrixIDs := []graph.NodeID(nil)

	steps := []struct {
		name string
		fn   func() error
	}{
		{StageSnapshot, func() error {
			r.view = r.ds.Store.Snapshot()
			stats := r.ds.Store.Stats()
			r.report.Graph = GraphSummary{
				Facts:     r.ds.Facts(),
				Nodes:     stats.NodeCount,
				Edges:     stats.EdgeCount,
				SelfLoops: stats.SelfLoops,
			}
			for _, id := range r.ds.Ambiguous() {
				if idx, ok := r.view.Index(id); ok {
					r.report.Graph.Ambiguous = append(r.report.Graph.Ambiguous, r.view.Term(idx))
				}
			}
			r.log.Info("analysis started", logging.Nodes(stats.NodeCount), logging.Edges(stats.EdgeCount), logging.Facts(r.ds.Facts()))
			if r.metrics != nil {
				r.metrics.UpdateGraphMetrics(r.ds.Facts(), stats.NodeCount, stats.EdgeCount, len(r.report.Graph.Ambiguous))
			}
			matrixIDs = r.view.IDs()
			return nil
		}},
		{StageCentrality, func() error {
			subset, err := r.subset()
			if err != nil {
				return err
			}
			if subset != nil && len(subset) == 0 {
				table = algorithms.CentralityTable{}
			} else {
				table = algorithms.BetweennessCentrality(r.view, algorithms.CentralityOptions{
					Subset:  subset,
					Workers: r.opts.Workers,
				})
			}
			r.report.Centrality = algorithms.TopByCentrality(r.view, table, 0)
			r.report.Bridges = algorithms.FindBridgeEntities(r.view, table, r.opts.BridgeThreshold)
			return nil
		}},
		{StageComponents, func() error {
			r.report.Components = algorithms.ConnectedComponents(r.view).Clusters
			return nil
		}},
		{StageTopics, func() error {
			matrix = calc.Matrix(matrixIDs)
			topics = algorithms.AgglomerativeClusters(r.view, matrix, algorithms.AgglomerativeOptions{
				StopDistance: r.opts.StopDistance,
			})
			r.report.TopicClusters = topics.Clusters
			if r.metrics != nil {
				r.metrics.UpdateClusterMetrics(len(r.report.Components), len(topics.Clusters))
			}
			return nil
		}},
		{StageBands, func() error {
			r.report.Cannibalization, r.report.LinkCandidates = bandPairs(r.view, calc, matrix, r.opts)
			return nil
		}},
		{StageHoles, func() error {
			opts := r.opts.holeOptions()
			holes := algorithms.DetectStructuralHoles(r.view, opts)
			topicHoles := algorithms.DetectHolesBetween(r.view, topics.Clusters, opts)
			r.report.HoleCount, r.report.TopicHoleCount = len(holes), len(topicHoles)
			if r.metrics != nil {
				for _, h := range holes {
					r.metrics.RecordHole(string(h.BridgeType))
				}
			}
			r.report.Holes = r.withCandidates(capHoles(holes, r.opts.MaxHoles))
			r.report.TopicHoles = r.withCandidates(capHoles(topicHoles, r.opts.MaxHoles))
			if len(holes) > len(r.report.Holes) || len(topicHoles) > len(r.report.TopicHoles) {
				r.log.Debug("hole lists capped",
					logging.Int("holes", len(holes)),
					logging.Int("topic_holes", len(topicHoles)),
					logging.Int("max_holes", r.opts.MaxHoles))
			}
			return nil
		}},
		{StageCriticality, func() error {
			inputs := r.ds.CriticalityInputs(table)
			results := criticality.NewScorer(r.opts.CriticalThreshold).ScoreAll(inputs)
			r.report.Criticality = results
			r.report.VerificationQueue = criticality.VerificationQueue(results, r.opts.CriticalThreshold)
			r.log.Debug("entities scored",
				logging.Count(len(results)),
				logging.Float64("threshold", r.opts.CriticalThreshold),
				logging.Int("critical", criticality.CriticalCount(results)))
			if r.metrics != nil {
				r.metrics.UpdateResultMetrics(
					criticality.CriticalCount(results),
					len(r.report.Bridges),
					len(r.report.Cannibalization),
					len(r.report.LinkCandidates),
				)
			}
			return nil
		}},
	}

	for _, s := range steps {
		if err := r.stage(s.name, s.fn); err != nil {
			return err
		}
	}
	return nil
}

// subset resolves the configured centrality subset to node IDs. nil means
// every node; an empty slice means no node qualified.
func (r *run) subset() ([]graph.NodeID, error) {
	switch r.opts.CentralitySubset {
	case SubsetSubjects:
		return append([]graph.NodeID{}, r.ds.Subjects()...), nil
	case SubsetTerms:
		ids := make([]graph.NodeID, 0, len(r.opts.SubsetTerms))
		for _, term := range r.opts.SubsetTerms {
			node, err := r.ds.Store.Lookup(term)
			if err != nil {
				r.log.Warn("subset term not in graph", logging.Term(term))
				continue
			}
			ids = append(ids, node.ID)
		}
		return ids, nil
	}
	return nil, nil
}

// capHoles keeps the first limit holes. The detector sorts weakest
// connection first. limit <= 0 keeps all.
func capHoles(holes []algorithms.StructuralHole, limit int) []algorithms.StructuralHole {
	if limit > 0 && len(holes) > limit {
		return holes[:limit]
	}
	return holes
}

func (r *run) withCandidates(holes []algorithms.StructuralHole) []Hole {
	out := make([]Hole, len(holes))
	for i, h := range holes {
		out[i] = Hole{StructuralHole: h}
		if a, b, ok := algorithms.BridgeCandidates(r.view, h); ok {
			out[i].CandidateA, out[i].CandidateB = &a, &b
		}
	}
	return out
}
