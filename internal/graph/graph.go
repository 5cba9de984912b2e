// Package graph provides the directed dependency graph for dbt manifest
// nodes. It supports induced subgraphs, ancestor/descendant reachability,
// and BFS shortest-path distances.
package graph

import (
	"sort"
)

// ResourceType is the category of a manifest node.
type ResourceType string

// Resource types that appear in dbt manifests.
const (
	ResourceModel     ResourceType = "model"
	ResourceTest      ResourceType = "test"
	ResourceSource    ResourceType = "source"
	ResourceSeed      ResourceType = "seed"
	ResourceSnapshot  ResourceType = "snapshot"
	ResourceAnalysis  ResourceType = "analysis"
	ResourceOperation ResourceType = "operation"
	ResourceExposure  ResourceType = "exposure"
)

// AllResourceTypes lists every resource type in display order.
var AllResourceTypes = []ResourceType{
	ResourceModel,
	ResourceTest,
	ResourceSource,
	ResourceSeed,
	ResourceSnapshot,
	ResourceAnalysis,
	ResourceOperation,
	ResourceExposure,
}

// DataResourceTypes are the types that carry data (as opposed to tests,
// operations, and exposures). They define the data subgraph.
var DataResourceTypes = []ResourceType{
	ResourceSeed,
	ResourceSource,
	ResourceModel,
	ResourceAnalysis,
	ResourceSnapshot,
}

// Node represents a node in the dependency graph.
type Node struct {
	// ID is the unique identifier (manifest unique_id)
	ID string
	// ResourceType is the node category (model, source, ...)
	ResourceType ResourceType
	// Name is the node's short name
	Name string
	// PackageName is the dbt package the node belongs to
	PackageName string
	// Tags holds the node's tags in manifest order
	Tags []string
	// Extra holds manifest attributes not interpreted here
	Extra map[string]any
}

// Graph represents a directed graph of manifest nodes.
// Edges run parent -> child (the child depends on the parent).
type Graph struct {
	nodes    map[string]*Node
	children map[string][]string // parent -> children (dependents)
	parents  map[string][]string // child -> parents (dependencies)
}

// New creates a new empty graph.
func New() *Graph {
	return &Graph{
		nodes:    make(map[string]*Node),
		children: make(map[string][]string),
		parents:  make(map[string][]string),
	}
}

// AddNode adds a node to the graph. If a node with the same ID already
// exists its attributes are replaced; edges are unaffected.
func (g *Graph) AddNode(n *Node) {
	if _, exists := g.nodes[n.ID]; !exists {
		g.children[n.ID] = []string{}
		g.parents[n.ID] = []string{}
	}
	g.nodes[n.ID] = n
}

// ensureNode creates an attribute-less placeholder for id if absent.
// The child/parent maps may reference ids with no attribute entry.
func (g *Graph) ensureNode(id string) {
	if _, exists := g.nodes[id]; !exists {
		g.AddNode(&Node{ID: id})
	}
}

// AddEdge adds a directed edge from parent to child. Either endpoint is
// created as an attribute-less node if not already present. Adding the
// same edge twice has no effect.
func (g *Graph) AddEdge(parentID, childID string) {
	g.ensureNode(parentID)
	g.ensureNode(childID)

	if !contains(g.children[parentID], childID) {
		g.children[parentID] = append(g.children[parentID], childID)
	}
	if !contains(g.parents[childID], parentID) {
		g.parents[childID] = append(g.parents[childID], parentID)
	}
}

// Node returns a node by ID.
func (g *Graph) Node(id string) (*Node, bool) {
	n, exists := g.nodes[id]
	return n, exists
}

// HasNode reports whether a node with the given ID exists.
func (g *Graph) HasNode(id string) bool {
	_, exists := g.nodes[id]
	return exists
}

// Parents returns the parents (dependencies) of a node.
func (g *Graph) Parents(id string) []string {
	return g.parents[id]
}

// Children returns the children (dependents) of a node.
func (g *Graph) Children(id string) []string {
	return g.children[id]
}

// Nodes returns all nodes sorted by ID for deterministic output.
func (g *Graph) Nodes() []*Node {
	nodes := make([]*Node, 0, len(g.nodes))
	for _, n := range g.nodes {
		nodes = append(nodes, n)
	}
	sort.Slice(nodes, func(i, j int) bool {
		return nodes[i].ID < nodes[j].ID
	})
	return nodes
}

// NodeIDs returns all node IDs in sorted order.
func (g *Graph) NodeIDs() []string {
	ids := make([]string, 0, len(g.nodes))
	for id := range g.nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// NodeCount returns the number of nodes in the graph.
func (g *Graph) NodeCount() int {
	return len(g.nodes)
}

// EdgeCount returns the number of edges in the graph.
func (g *Graph) EdgeCount() int {
	count := 0
	for _, children := range g.children {
		count += len(children)
	}
	return count
}

// Degree returns the number of incident edges (in + out) of a node.
func (g *Graph) Degree(id string) int {
	return len(g.parents[id]) + len(g.children[id])
}

// contains checks if a slice contains a string.
func contains(slice []string, str string) bool {
	for _, s := range slice {
		if s == str {
			return true
		}
	}
	return false
}
