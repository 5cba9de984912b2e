package graph

import "sort"

// Induced returns a new graph containing only the given nodes and the
// edges between them. The parent graph is not modified. IDs absent from
// the graph are ignored.
func (g *Graph) Induced(ids []string) *Graph {
	sub := New()
	nodeSet := make(map[string]bool, len(ids))

	for _, id := range ids {
		if n, exists := g.nodes[id]; exists {
			nodeSet[id] = true
			sub.AddNode(n)
		}
	}

	for id := range nodeSet {
		for _, childID := range g.children[id] {
			if nodeSet[childID] {
				sub.AddEdge(id, childID)
			}
		}
	}

	return sub
}

// DataGraph returns the induced subgraph over nodes whose resource type
// carries data (seed, source, model, analysis, snapshot).
func (g *Graph) DataGraph() *Graph {
	dataTypes := make(map[ResourceType]bool, len(DataResourceTypes))
	for _, rt := range DataResourceTypes {
		dataTypes[rt] = true
	}

	var ids []string
	for id, n := range g.nodes {
		if dataTypes[n.ResourceType] {
			ids = append(ids, id)
		}
	}
	return g.Induced(ids)
}

// Neighborhood returns the induced subgraph over the node, its ancestors,
// and its descendants. A node with no ancestors or descendants yields a
// graph containing just itself plus whichever side is non-empty.
func (g *Graph) Neighborhood(id string) (*Graph, error) {
	if !g.HasNode(id) {
		return nil, &NodeNotFoundError{ID: id}
	}

	ids := []string{id}
	ids = append(ids, g.ancestors(id)...)
	ids = append(ids, g.descendants(id)...)
	return g.Induced(ids), nil
}

// Ancestors returns all nodes with a directed path to the given node,
// sorted by ID.
func (g *Graph) Ancestors(id string) ([]string, error) {
	if !g.HasNode(id) {
		return nil, &NodeNotFoundError{ID: id}
	}
	return g.ancestors(id), nil
}

// Descendants returns all nodes reachable by a directed path from the
// given node, sorted by ID.
func (g *Graph) Descendants(id string) ([]string, error) {
	if !g.HasNode(id) {
		return nil, &NodeNotFoundError{ID: id}
	}
	return g.descendants(id), nil
}

func (g *Graph) ancestors(id string) []string {
	return g.reach(id, g.parents)
}

func (g *Graph) descendants(id string) []string {
	return g.reach(id, g.children)
}

// reach collects every node reachable from start over the given adjacency
// relation, excluding start itself. Visited tracking makes it safe on
// cyclic inputs.
func (g *Graph) reach(start string, adjacency map[string][]string) []string {
	visited := make(map[string]bool)

	var visit func(id string)
	visit = func(id string) {
		for _, next := range adjacency[id] {
			if !visited[next] {
				visited[next] = true
				visit(next)
			}
		}
	}
	visit(start)

	// The start node is only reported if a cycle leads back to it.
	result := make([]string, 0, len(visited))
	for id := range visited {
		result = append(result, id)
	}
	sort.Strings(result)
	return result
}
