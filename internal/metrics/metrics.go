// Package metrics computes per-node structural statistics over a graph:
// degree, betweenness centrality, and local clustering coefficient.
package metrics

import (
	"sort"

	"github.com/leapstack-labs/leapgraph/internal/graph"
)

// Row holds the computed statistics for one node together with the node
// itself. Rows are computed fresh per graph view and never persisted.
type Row struct {
	Node *graph.Node
	// Degree is the in+out incident edge count
	Degree int
	// Centrality is the betweenness centrality in the containing view
	Centrality float64
	// Clustering is the local clustering coefficient over the
	// undirected projection
	Clustering float64
}

// Table maps node ID to its metrics row.
type Table map[string]*Row

// Compute returns the metrics table for every node in the graph. Results
// are identical for identical graphs regardless of insertion order.
func Compute(g *graph.Graph) Table {
	centrality := Betweenness(g)
	clustering := Clustering(g)

	table := make(Table, g.NodeCount())
	for _, n := range g.Nodes() {
		table[n.ID] = &Row{
			Node:       n,
			Degree:     g.Degree(n.ID),
			Centrality: centrality[n.ID],
			Clustering: clustering[n.ID],
		}
	}
	return table
}

// Betweenness computes betweenness centrality for every node using
// Brandes' algorithm over the directed graph. Values are normalized by
// (n-1)(n-2); graphs with fewer than 3 nodes score 0 everywhere.
func Betweenness(g *graph.Graph) map[string]float64 {
	ids := g.NodeIDs()
	centrality := make(map[string]float64, len(ids))
	for _, id := range ids {
		centrality[id] = 0
	}

	// Adjacency is append-ordered, so walking it directly would make the
	// floating-point dependency sums vary with edge-insertion order.
	// Canonicalize once so identical graphs always accumulate in the
	// same order.
	adj := make(map[string][]string, len(ids))
	for _, id := range ids {
		kids := append([]string(nil), g.Children(id)...)
		sort.Strings(kids)
		adj[id] = kids
	}

	for _, s := range ids {
		// Single-source shortest paths by BFS.
		var stack []string
		pred := make(map[string][]string, len(ids))
		sigma := make(map[string]float64, len(ids))
		dist := make(map[string]int, len(ids))
		for _, id := range ids {
			sigma[id] = 0
			dist[id] = -1
		}
		sigma[s] = 1
		dist[s] = 0

		queue := []string{s}
		for len(queue) > 0 {
			v := queue[0]
			queue = queue[1:]
			stack = append(stack, v)
			for _, w := range adj[v] {
				if dist[w] < 0 {
					dist[w] = dist[v] + 1
					queue = append(queue, w)
				}
				if dist[w] == dist[v]+1 {
					sigma[w] += sigma[v]
					pred[w] = append(pred[w], v)
				}
			}
		}

		// Accumulate dependencies in reverse BFS order.
		delta := make(map[string]float64, len(stack))
		for i := len(stack) - 1; i >= 0; i-- {
			w := stack[i]
			for _, v := range pred[w] {
				delta[v] += sigma[v] / sigma[w] * (1 + delta[w])
			}
			if w != s {
				centrality[w] += delta[w]
			}
		}
	}

	n := len(ids)
	if n < 3 {
		for id := range centrality {
			centrality[id] = 0
		}
		return centrality
	}
	scale := 1 / float64((n-1)*(n-2))
	for id := range centrality {
		centrality[id] *= scale
	}
	return centrality
}

// Clustering computes the local clustering coefficient of every node on
// the undirected projection of the graph (edge direction ignored,
// multi-edges collapsed). A node with fewer than 2 undirected neighbors
// scores 0.
func Clustering(g *graph.Graph) map[string]float64 {
	ids := g.NodeIDs()

	// Undirected neighbor sets, self-loops excluded.
	neighbors := make(map[string]map[string]bool, len(ids))
	for _, id := range ids {
		set := make(map[string]bool)
		for _, p := range g.Parents(id) {
			if p != id {
				set[p] = true
			}
		}
		for _, c := range g.Children(id) {
			if c != id {
				set[c] = true
			}
		}
		neighbors[id] = set
	}

	coeff := make(map[string]float64, len(ids))
	for _, id := range ids {
		set := neighbors[id]
		k := len(set)
		if k < 2 {
			coeff[id] = 0
			continue
		}

		sorted := make([]string, 0, k)
		for n := range set {
			sorted = append(sorted, n)
		}
		sort.Strings(sorted)

		links := 0
		for i := 0; i < k; i++ {
			for j := i + 1; j < k; j++ {
				if neighbors[sorted[i]][sorted[j]] {
					links++
				}
			}
		}
		coeff[id] = float64(2*links) / float64(k*(k-1))
	}
	return coeff
}

// IDs returns the table's node IDs in sorted order.
func (t Table) IDs() []string {
	ids := make([]string, 0, len(t))
	for id := range t {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
