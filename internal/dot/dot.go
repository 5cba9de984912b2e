// Package dot projects a graph neighborhood into a renderable node and
// edge list and emits it as Graphviz DOT text.
package dot

import (
	"bytes"
	"fmt"

	"github.com/leapstack-labs/leapgraph/internal/graph"
)

// ProjectedNode is one renderable node with its styling resolved.
type ProjectedNode struct {
	ID    string
	Label string
	Style NodeStyle
	// Selected marks the node the projection is centered on
	Selected bool
}

// Edge is a directed edge between two retained nodes.
type Edge struct {
	From string
	To   string
}

// Projection is the renderable subset of a graph view.
type Projection struct {
	Nodes []ProjectedNode
	Edges []Edge
}

// Project filters a graph view down to the nodes within maxDistance of
// the selected node whose resource type is in visibleTypes, plus the
// selected node itself, and returns them with styling attached along
// with the induced edges.
//
// Distance is the shortest path from the node to the selection; when no
// such path exists the reverse direction is used, and a node unreachable
// in both directions is dropped.
func Project(g *graph.Graph, selected string, visibleTypes []graph.ResourceType, maxDistance int) (*Projection, error) {
	if !g.HasNode(selected) {
		return nil, &graph.NodeNotFoundError{ID: selected}
	}

	visible := make(map[graph.ResourceType]bool, len(visibleTypes))
	for _, rt := range visibleTypes {
		visible[rt] = true
	}

	toSelected := g.DistancesTo(selected)
	fromSelected := g.DistancesFrom(selected)

	proj := &Projection{}
	retained := make(map[string]bool)

	for _, n := range g.Nodes() {
		if n.ID != selected {
			dist, ok := toSelected[n.ID]
			if !ok {
				dist, ok = fromSelected[n.ID]
			}
			if !ok || dist > maxDistance || !visible[n.ResourceType] {
				continue
			}
		}

		style := Styles[n.ResourceType]
		if n.ID == selected {
			style.FillColor = selectedFill
		}

		proj.Nodes = append(proj.Nodes, ProjectedNode{
			ID:       n.ID,
			Label:    Label(n),
			Style:    style,
			Selected: n.ID == selected,
		})
		retained[n.ID] = true
	}

	// Induced edges over the retained set. Nodes() is sorted, so the
	// edge order is deterministic.
	for _, n := range g.Nodes() {
		if !retained[n.ID] {
			continue
		}
		for _, child := range g.Children(n.ID) {
			if retained[child] {
				proj.Edges = append(proj.Edges, Edge{From: n.ID, To: child})
			}
		}
	}

	return proj, nil
}

// Label returns the display label for a node: "{resource_type}.{name}",
// or just the name for models.
func Label(n *graph.Node) string {
	if n.ResourceType == graph.ResourceModel {
		return n.Name
	}
	return fmt.Sprintf("%s.%s", n.ResourceType, n.Name)
}

// Render emits a projection as a Graphviz digraph, laid out left to
// right.
func Render(p *Projection) string {
	var buf bytes.Buffer
	buf.WriteString("digraph models {\n")
	buf.WriteString("  rankdir=\"LR\"\n")
	buf.WriteString("  nodesep=0.1\n")
	buf.WriteString("  graph [margin=0 ratio=auto size=10]\n")
	buf.WriteString("  node [fontsize=10 height=0.25]\n")
	buf.WriteString("  edge [fontsize=10]\n")

	for _, n := range p.Nodes {
		fmt.Fprintf(&buf, "  %q [shape=%q fillcolor=%q fontcolor=%q color=%q style=%q label=%q]\n",
			n.ID, n.Style.Shape, n.Style.FillColor, n.Style.FontColor, n.Style.Color, n.Style.Style, n.Label)
	}
	for _, e := range p.Edges {
		fmt.Fprintf(&buf, "  %q -> %q [label=\"\"]\n", e.From, e.To)
	}

	buf.WriteString("}\n")
	return buf.String()
}
