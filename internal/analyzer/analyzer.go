// Package analyzer ties the pipeline together: it loads a manifest,
// builds the dependency graph, derives the data subgraph, and computes
// the global metrics table once per instance.
//
// An Analyzer is a pure function of its manifest input: it holds no
// shared state, so concurrent callers each construct their own instance.
package analyzer

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/leapstack-labs/leapgraph/internal/dot"
	"github.com/leapstack-labs/leapgraph/internal/graph"
	"github.com/leapstack-labs/leapgraph/internal/manifest"
	"github.com/leapstack-labs/leapgraph/internal/metrics"
	"github.com/leapstack-labs/leapgraph/internal/relations"
)

// Config holds analyzer configuration.
type Config struct {
	ManifestPath string
	Logger       *slog.Logger
}

// Analyzer holds one manifest's graph and derived views.
type Analyzer struct {
	manifestPath string
	logger       *slog.Logger

	doc     *manifest.Document
	full    *graph.Graph
	data    *graph.Graph
	metrics metrics.Table
}

// New creates an analyzer for the given manifest path. Call Load before
// querying.
func New(cfg Config) *Analyzer {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Analyzer{
		manifestPath: cfg.ManifestPath,
		logger:       logger,
	}
}

// Load reads the manifest and computes the graph, the data subgraph, and
// the global metrics table. It either fully succeeds or leaves nothing
// behind.
func (a *Analyzer) Load() error {
	doc, err := manifest.Load(a.manifestPath)
	if err != nil {
		return err
	}
	a.loadDocument(doc)
	return nil
}

// NewFromDocument builds an analyzer directly from a parsed manifest,
// bypassing the filesystem.
func NewFromDocument(doc *manifest.Document, logger *slog.Logger) *Analyzer {
	a := New(Config{Logger: logger})
	a.loadDocument(doc)
	return a
}

func (a *Analyzer) loadDocument(doc *manifest.Document) {
	a.doc = doc
	a.full = manifest.BuildGraph(doc)
	a.data = a.full.DataGraph()
	a.metrics = metrics.Compute(a.data)

	a.logger.Debug("manifest analyzed",
		"nodes", a.full.NodeCount(),
		"edges", a.full.EdgeCount(),
		"data_nodes", a.data.NodeCount(),
	)
}

// Graph returns the full dependency graph.
func (a *Analyzer) Graph() *graph.Graph {
	return a.full
}

// DataGraph returns the data-resource subgraph.
func (a *Analyzer) DataGraph() *graph.Graph {
	return a.data
}

// Metrics returns the global metrics table, computed over the data
// subgraph.
func (a *Analyzer) Metrics() metrics.Table {
	return a.metrics
}

// DefaultNode returns the highest-degree model, the node the summary
// highlights when the user has not picked one. Ties break toward the
// smaller ID so the choice is stable.
func (a *Analyzer) DefaultNode() (string, bool) {
	best := ""
	bestDegree := -1
	for _, id := range a.metrics.IDs() {
		row := a.metrics[id]
		if row.Node.ResourceType != graph.ResourceModel {
			continue
		}
		if row.Degree > bestDegree {
			best = id
			bestDegree = row.Degree
		}
	}
	return best, best != ""
}

// DefaultNodeAmong returns the highest-centrality node whose resource
// type is in the given set.
func (a *Analyzer) DefaultNodeAmong(types []graph.ResourceType) (string, bool) {
	allowed := make(map[graph.ResourceType]bool, len(types))
	for _, rt := range types {
		allowed[rt] = true
	}

	best := ""
	bestCentrality := -1.0
	for _, id := range a.metrics.IDs() {
		row := a.metrics[id]
		if !allowed[row.Node.ResourceType] {
			continue
		}
		if row.Centrality > bestCentrality {
			best = id
			bestCentrality = row.Centrality
		}
	}
	return best, best != ""
}

// NodeDetail is everything the node view shows: the node's own metrics
// with percentile ranks, and its relation table joined with the global
// metrics.
type NodeDetail struct {
	Node           *graph.Node
	Metrics        *metrics.Row
	DegreeRank     float64
	CentralityRank float64
	Relations      map[string]relations.JoinedRow
}

// Inspect computes the detail view for one node. The relation table is
// computed over the node's neighborhood in the full graph and
// inner-joined with the global metrics table.
func (a *Analyzer) Inspect(id string) (*NodeDetail, error) {
	n, ok := a.full.Node(id)
	if !ok {
		return nil, &graph.NodeNotFoundError{ID: id}
	}

	nb, err := a.full.Neighborhood(id)
	if err != nil {
		return nil, err
	}
	rel, err := relations.Compute(nb, id)
	if err != nil {
		return nil, err
	}

	detail := &NodeDetail{
		Node:      n,
		Metrics:   a.metrics[id],
		Relations: relations.Join(a.metrics, rel),
	}

	degrees := make(map[string]float64, len(a.metrics))
	centralities := make(map[string]float64, len(a.metrics))
	for mid, row := range a.metrics {
		degrees[mid] = float64(row.Degree)
		centralities[mid] = row.Centrality
	}
	detail.DegreeRank = metrics.PercentileRank(degrees, id)
	detail.CentralityRank = metrics.PercentileRank(centralities, id)

	return detail, nil
}

// Viz renders the DOT diagram for a node's neighborhood, filtered to the
// visible resource types and the maximum relation distance.
func (a *Analyzer) Viz(id string, visibleTypes []graph.ResourceType, maxDistance int) (string, error) {
	nb, err := a.full.Neighborhood(id)
	if err != nil {
		return "", err
	}
	proj, err := dot.Project(nb, id, visibleTypes, maxDistance)
	if err != nil {
		return "", fmt.Errorf("failed to project neighborhood: %w", err)
	}
	return dot.Render(proj), nil
}
