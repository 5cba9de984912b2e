package graph

// DistancesFrom returns the shortest-path length in edges from the given
// node to every node reachable along child edges, including the node
// itself at distance 0. An absent ID yields an empty map.
func (g *Graph) DistancesFrom(id string) map[string]int {
	return g.bfs(id, g.children)
}

// DistancesTo returns the shortest-path length in edges from every node
// that reaches the given node along child edges, including the node
// itself at distance 0. An absent ID yields an empty map.
func (g *Graph) DistancesTo(id string) map[string]int {
	return g.bfs(id, g.parents)
}

// bfs computes unweighted shortest-path lengths from start over the given
// adjacency relation.
func (g *Graph) bfs(start string, adjacency map[string][]string) map[string]int {
	dist := make(map[string]int)
	if !g.HasNode(start) {
		return dist
	}

	dist[start] = 0
	queue := []string{start}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, next := range adjacency[current] {
			if _, seen := dist[next]; !seen {
				dist[next] = dist[current] + 1
				queue = append(queue, next)
			}
		}
	}
	return dist
}
