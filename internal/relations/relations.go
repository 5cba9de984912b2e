// Package relations classifies a node's neighborhood: for each ancestor
// or descendant of a selected node, its shortest-path distance and its
// relationship to the selection.
package relations

import (
	"github.com/leapstack-labs/leapgraph/internal/graph"
	"github.com/leapstack-labs/leapgraph/internal/metrics"
)

// Relationship says which side of the selected node a related node is on.
type Relationship string

const (
	Ancestor   Relationship = "ancestor"
	Descendant Relationship = "descendant"
)

// Row describes one node related to the selection.
type Row struct {
	// Distance is the shortest path length in edges: from the related
	// node to the selection for ancestors, from the selection to the
	// related node for descendants.
	Distance     int
	Relationship Relationship
}

// Compute returns the relation table for a node: every ancestor and
// descendant with its distance and classification. The node itself is
// excluded. Ancestors are recorded first; if a cyclic input makes a node
// both, the descendant entry wins.
func Compute(g *graph.Graph, id string) (map[string]Row, error) {
	if !g.HasNode(id) {
		return nil, &graph.NodeNotFoundError{ID: id}
	}

	rows := make(map[string]Row)

	distTo := g.DistancesTo(id)
	for node, dist := range distTo {
		if node == id {
			continue
		}
		rows[node] = Row{Distance: dist, Relationship: Ancestor}
	}

	distFrom := g.DistancesFrom(id)
	for node, dist := range distFrom {
		if node == id {
			continue
		}
		rows[node] = Row{Distance: dist, Relationship: Descendant}
	}

	return rows, nil
}

// JoinedRow pairs a relation row with the node's metrics.
type JoinedRow struct {
	Metrics  *metrics.Row
	Relation Row
}

// Join inner-joins a metrics table with a relation table: only nodes
// present in both appear in the result.
func Join(t metrics.Table, rel map[string]Row) map[string]JoinedRow {
	joined := make(map[string]JoinedRow)
	for id, row := range rel {
		m, ok := t[id]
		if !ok {
			continue
		}
		joined[id] = JoinedRow{Metrics: m, Relation: row}
	}
	return joined
}
