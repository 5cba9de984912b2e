package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"slices"
	"sort"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/leapstack-labs/leapgraph/internal/cli/output"
	"github.com/leapstack-labs/leapgraph/internal/graph"
	"github.com/leapstack-labs/leapgraph/internal/metrics"
	"github.com/leapstack-labs/leapgraph/internal/relations"
)

// errorResponse is the JSON body for error statuses.
type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// handleHealthz reports server liveness.
func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleSummary returns the pivot and global metrics table.
func (s *Server) handleSummary(w http.ResponseWriter, _ *http.Request) {
	a := s.current()
	table := a.Metrics()
	pivot := metrics.ComputePivot(table)

	nodes := make([]output.MetricsNode, 0, len(table))
	for _, id := range table.IDs() {
		row := table[id]
		nodes = append(nodes, output.MetricsNode{
			ID:           row.Node.ID,
			ResourceType: string(row.Node.ResourceType),
			Name:         row.Node.Name,
			PackageName:  row.Node.PackageName,
			Tags:         row.Node.Tags,
			Degree:       row.Degree,
			Centrality:   row.Centrality,
			Clustering:   row.Clustering,
		})
	}

	defaultNode, _ := a.DefaultNode()
	data := a.DataGraph()

	writeJSON(w, http.StatusOK, &output.SummaryOutput{
		Pivot: output.PivotOutput{
			Types:    pivot.Types,
			Packages: pivot.Packages,
			Counts:   pivot.Counts,
		},
		Nodes:       nodes,
		DefaultNode: defaultNode,
		NodeCount:   data.NodeCount(),
		EdgeCount:   data.EdgeCount(),
	})
}

// handleNodes lists all nodes, optionally filtered by ?type= (repeatable).
func (s *Server) handleNodes(w http.ResponseWriter, r *http.Request) {
	typeFilter := r.URL.Query()["type"]
	for _, t := range typeFilter {
		if !slices.Contains(graph.AllResourceTypes, graph.ResourceType(t)) {
			writeError(w, http.StatusBadRequest, "unknown node type: "+t)
			return
		}
	}

	g := s.current().Graph()
	out := &output.ListOutput{Nodes: []output.ListNode{}}
	for _, n := range g.Nodes() {
		if len(typeFilter) > 0 && !slices.Contains(typeFilter, string(n.ResourceType)) {
			continue
		}
		out.Nodes = append(out.Nodes, output.ListNode{
			ID:           n.ID,
			ResourceType: string(n.ResourceType),
			PackageName:  n.PackageName,
			Degree:       g.Degree(n.ID),
		})
	}
	out.Total = len(out.Nodes)

	writeJSON(w, http.StatusOK, out)
}

// handleNode returns the detail view for one node.
func (s *Server) handleNode(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	detail, err := s.current().Inspect(id)
	if err != nil {
		var notFound *graph.NodeNotFoundError
		if errors.As(err, &notFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	rels := make([]output.RelationNode, 0, len(detail.Relations))
	for relID, jr := range detail.Relations {
		rels = append(rels, output.RelationNode{
			ID:           relID,
			ResourceType: string(jr.Metrics.Node.ResourceType),
			Name:         jr.Metrics.Node.Name,
			Distance:     jr.Relation.Distance,
			Relationship: string(jr.Relation.Relationship),
			Degree:       jr.Metrics.Degree,
			Centrality:   jr.Metrics.Centrality,
			Clustering:   jr.Metrics.Clustering,
		})
	}
	sort.Slice(rels, func(i, j int) bool {
		if rels[i].Relationship != rels[j].Relationship {
			return rels[i].Relationship == string(relations.Ancestor)
		}
		if rels[i].Distance != rels[j].Distance {
			return rels[i].Distance < rels[j].Distance
		}
		return rels[i].ID < rels[j].ID
	})

	out := &output.InspectOutput{
		ID:             detail.Node.ID,
		ResourceType:   string(detail.Node.ResourceType),
		Name:           detail.Node.Name,
		PackageName:    detail.Node.PackageName,
		DegreeRank:     detail.DegreeRank,
		CentralityRank: detail.CentralityRank,
		Relations:      rels,
	}
	if detail.Metrics != nil {
		out.Degree = detail.Metrics.Degree
		out.Clustering = detail.Metrics.Clustering
	}

	writeJSON(w, http.StatusOK, out)
}

// handleNodeDOT renders a node's neighborhood as DOT.
// Query params: types (comma separated), max_distance.
func (s *Server) handleNodeDOT(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	typeNames := []string{"seed", "source", "model"}
	if v := r.URL.Query().Get("types"); v != "" {
		typeNames = strings.Split(v, ",")
	}
	visibleTypes := make([]graph.ResourceType, 0, len(typeNames))
	for _, t := range typeNames {
		rt := graph.ResourceType(t)
		if !slices.Contains(graph.AllResourceTypes, rt) {
			writeError(w, http.StatusBadRequest, "unknown node type: "+t)
			return
		}
		visibleTypes = append(visibleTypes, rt)
	}

	maxDistance := 10
	if v := r.URL.Query().Get("max_distance"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "max_distance must be a positive integer")
			return
		}
		maxDistance = n
	}

	dotSrc, err := s.current().Viz(id, visibleTypes, maxDistance)
	if err != nil {
		var notFound *graph.NodeNotFoundError
		if errors.As(err, &notFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, &output.VizOutput{Node: id, DOT: dotSrc})
}
