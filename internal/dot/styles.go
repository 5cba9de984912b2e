package dot

import "github.com/leapstack-labs/leapgraph/internal/graph"

// NodeStyle holds the Graphviz attributes for one resource type.
// Shapes follow https://graphviz.org/doc/info/shapes.html.
type NodeStyle struct {
	Shape     string
	FillColor string
	FontColor string
	Color     string
	Style     string
}

// selectedFill overrides the fill color of the selected node.
const selectedFill = "green"

// Styles is the static per-resource-type style table. It is pure
// configuration; the projection logic does not interpret it.
var Styles = map[graph.ResourceType]NodeStyle{
	graph.ResourceModel: {
		Shape:     "box",
		FillColor: "white",
		FontColor: "black",
		Color:     "black",
		Style:     "filled",
	},
	graph.ResourceTest: {
		Shape:     "ellipses",
		FillColor: "yellow",
		FontColor: "black",
		Color:     "black",
		Style:     "filled",
	},
	graph.ResourceSource: {
		Shape:     "cds",
		FillColor: "white",
		FontColor: "black",
		Color:     "blue",
		Style:     "filled",
	},
	graph.ResourceSeed: {
		Shape:     "cds",
		FillColor: "white",
		FontColor: "black",
		Color:     "blue",
		Style:     "filled",
	},
	graph.ResourceSnapshot: {
		Shape:     "component",
		FillColor: "yellow",
		FontColor: "black",
		Color:     "black",
		Style:     "filled",
	},
	graph.ResourceAnalysis: {
		Shape:     "note",
		FillColor: "yellow",
		FontColor: "black",
		Color:     "black",
		Style:     "filled",
	},
	graph.ResourceOperation: {
		Shape:     "diamond",
		FillColor: "yellow",
		FontColor: "black",
		Color:     "black",
		Style:     "filled",
	},
	graph.ResourceExposure: {
		Shape:     "diamond",
		FillColor: "yellow",
		FontColor: "black",
		Color:     "black",
		Style:     "filled",
	},
}
