// Package manifest parses dbt manifest documents and builds the
// dependency graph from them.
//
// A manifest is a JSON object with five required top-level keys:
// "nodes", "sources", and "exposures" map unique ids to attribute
// objects; "child_map" and "parent_map" map ids to lists of related ids.
// Everything else in the document is carried through untouched.
package manifest

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/leapstack-labs/leapgraph/internal/graph"
)

// requiredKeys are the top-level keys every manifest must have.
var requiredKeys = []string{"nodes", "sources", "exposures", "child_map", "parent_map"}

// FormatError reports a malformed manifest document: unparseable JSON or
// a missing required top-level key. It is not recoverable; no partial
// graph is produced.
type FormatError struct {
	// Key is the missing top-level key, empty if the JSON itself was bad
	Key string
	Err error
}

func (e *FormatError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("manifest missing required key %q", e.Key)
	}
	return fmt.Sprintf("malformed manifest: %v", e.Err)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

// NodeAttrs holds the attributes of a single manifest entry: the fields
// the graph engine interprets plus an opaque bag of everything else.
type NodeAttrs struct {
	ResourceType string
	Name         string
	PackageName  string
	Tags         []string
	Extra        map[string]any
}

// Interpreted attribute keys; all other keys land in Extra.
const (
	keyResourceType = "resource_type"
	keyName         = "name"
	keyPackageName  = "package_name"
	keyTags         = "tags"
)

// UnmarshalJSON pulls the interpreted fields out of the attribute object
// and keeps the remainder in Extra.
func (a *NodeAttrs) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	if v, ok := raw[keyResourceType].(string); ok {
		a.ResourceType = v
		delete(raw, keyResourceType)
	}
	if v, ok := raw[keyName].(string); ok {
		a.Name = v
		delete(raw, keyName)
	}
	if v, ok := raw[keyPackageName].(string); ok {
		a.PackageName = v
		delete(raw, keyPackageName)
	}
	if v, ok := raw[keyTags].([]any); ok {
		tags := make([]string, 0, len(v))
		for _, t := range v {
			if s, ok := t.(string); ok {
				tags = append(tags, s)
			}
		}
		a.Tags = tags
		delete(raw, keyTags)
	}

	a.Extra = raw
	return nil
}

// Document is a parsed manifest.
type Document struct {
	Nodes     map[string]NodeAttrs `json:"nodes"`
	Sources   map[string]NodeAttrs `json:"sources"`
	Exposures map[string]NodeAttrs `json:"exposures"`
	ChildMap  map[string][]string  `json:"child_map"`
	ParentMap map[string][]string  `json:"parent_map"`
}

// Parse decodes a manifest document, validating that every required
// top-level key is present.
func Parse(data []byte) (*Document, error) {
	// Probe the raw object first so a missing key can be named instead of
	// silently decoding to a nil map.
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &FormatError{Err: err}
	}
	for _, key := range requiredKeys {
		if _, ok := raw[key]; !ok {
			return nil, &FormatError{Key: key}
		}
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &FormatError{Err: err}
	}
	return &doc, nil
}

// Load reads and parses a manifest file.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse manifest %s: %w", path, err)
	}
	return doc, nil
}

// BuildGraph constructs the dependency graph from a parsed manifest.
//
// Nodes are created from the nodes, sources, and exposures mappings in
// that order; a colliding id takes the attributes of the later mapping.
// Edges come from child_map (key -> each child) and then parent_map
// (each parent -> key). The two maps mirror each other in well-formed
// manifests, so the double insertion is redundant; edge insertion is
// idempotent either way, and ids that appear only in an edge map become
// attribute-less nodes.
func BuildGraph(doc *Document) *graph.Graph {
	g := graph.New()

	for _, entries := range []map[string]NodeAttrs{doc.Nodes, doc.Sources, doc.Exposures} {
		for id, attrs := range entries {
			g.AddNode(&graph.Node{
				ID:           id,
				ResourceType: graph.ResourceType(attrs.ResourceType),
				Name:         attrs.Name,
				PackageName:  attrs.PackageName,
				Tags:         attrs.Tags,
				Extra:        attrs.Extra,
			})
		}
	}

	for id, children := range doc.ChildMap {
		for _, child := range children {
			g.AddEdge(id, child)
		}
	}
	for id, parents := range doc.ParentMap {
		for _, parent := range parents {
			g.AddEdge(parent, id)
		}
	}

	return g
}
