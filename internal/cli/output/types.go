package output

// JSON output shapes shared by the commands and the API server.

// MetricsNode is one row of the global metrics table.
type MetricsNode struct {
	ID           string   `json:"id"`
	ResourceType string   `json:"resource_type"`
	Name         string   `json:"name"`
	PackageName  string   `json:"package_name"`
	Tags         []string `json:"tags,omitempty"`
	Degree       int      `json:"degree"`
	Centrality   float64  `json:"centrality"`
	Clustering   float64  `json:"clustering"`
}

// PivotOutput is the resource-type by package-name count table.
type PivotOutput struct {
	Types    []string                  `json:"types"`
	Packages []string                  `json:"packages"`
	Counts   map[string]map[string]int `json:"counts"`
}

// SummaryOutput is the global analysis result.
type SummaryOutput struct {
	Pivot       PivotOutput   `json:"pivot"`
	Nodes       []MetricsNode `json:"nodes"`
	DefaultNode string        `json:"default_node,omitempty"`
	NodeCount   int           `json:"node_count"`
	EdgeCount   int           `json:"edge_count"`
}

// RelationNode is one related node in a node detail view.
type RelationNode struct {
	ID           string  `json:"id"`
	ResourceType string  `json:"resource_type"`
	Name         string  `json:"name"`
	Distance     int     `json:"distance"`
	Relationship string  `json:"relationship"`
	Degree       int     `json:"degree"`
	Centrality   float64 `json:"centrality"`
	Clustering   float64 `json:"clustering"`
}

// InspectOutput is the node detail view.
type InspectOutput struct {
	ID             string         `json:"id"`
	ResourceType   string         `json:"resource_type"`
	Name           string         `json:"name"`
	PackageName    string         `json:"package_name"`
	Degree         int            `json:"degree"`
	DegreeRank     float64        `json:"degree_rank"`
	CentralityRank float64        `json:"centrality_rank"`
	Clustering     float64        `json:"clustering"`
	Relations      []RelationNode `json:"relations"`
}

// ListNode is one row of the list command.
type ListNode struct {
	ID           string `json:"id"`
	ResourceType string `json:"resource_type"`
	PackageName  string `json:"package_name"`
	Degree       int    `json:"degree"`
}

// ListOutput is the list command result.
type ListOutput struct {
	Nodes []ListNode `json:"nodes"`
	Total int        `json:"total"`
}

// VizOutput wraps a rendered DOT diagram for JSON mode.
type VizOutput struct {
	Node string `json:"node"`
	DOT  string `json:"dot"`
}
