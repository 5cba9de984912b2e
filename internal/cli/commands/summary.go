package commands

import (
	"fmt"
	"strconv"

	"github.com/leapstack-labs/leapgraph/internal/cli/output"
	"github.com/leapstack-labs/leapgraph/internal/metrics"
	"github.com/spf13/cobra"
)

// NewSummaryCommand creates the summary command.
func NewSummaryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Summarize the manifest graph",
		Long: `Summarize the dbt graph: node counts by resource type and package,
plus structural metrics (degree, betweenness centrality, clustering)
for every data node.

Output adapts to environment:
  - Terminal: Styled, colored output
  - Piped/Scripted: Markdown format (agent-friendly)

Use --output to override: auto, text, markdown, json`,
		Example: `  # Summarize the graph (auto-detect output format)
  leapgraph summary

  # Summary as JSON
  leapgraph summary --output json

  # Summarize a specific manifest
  leapgraph summary --manifest path/to/manifest.json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSummary(cmd)
		},
	}

	return cmd
}

func runSummary(cmd *cobra.Command) error {
	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	out := buildSummaryOutput(cmdCtx)
	r := cmdCtx.Renderer

	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(out)
	case output.ModeMarkdown:
		return summaryMarkdown(out, r)
	default:
		return summaryText(out, r)
	}
}

// buildSummaryOutput assembles the summary DTO from the analyzer's
// data graph metrics.
func buildSummaryOutput(cmdCtx *CommandContext) *output.SummaryOutput {
	a := cmdCtx.Analyzer
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

	return &output.SummaryOutput{
		Pivot: output.PivotOutput{
			Types:    pivot.Types,
			Packages: pivot.Packages,
			Counts:   pivot.Counts,
		},
		Nodes:       nodes,
		DefaultNode: defaultNode,
		NodeCount:   data.NodeCount(),
		EdgeCount:   data.EdgeCount(),
	}
}

// pivotRows flattens the pivot into table rows, one per resource type,
// with a column per package.
func pivotRows(p output.PivotOutput) (headers []string, rows [][]string) {
	headers = append([]string{"Resource Type"}, p.Packages...)
	for _, rt := range p.Types {
		row := []string{rt}
		for _, pkg := range p.Packages {
			row = append(row, strconv.Itoa(p.Counts[rt][pkg]))
		}
		rows = append(rows, row)
	}
	return headers, rows
}

// metricsRows flattens node metrics into table rows.
func metricsRows(nodes []output.MetricsNode) (headers []string, rows [][]string) {
	headers = []string{"Node", "Type", "Degree", "Centrality", "Clustering"}
	for _, n := range nodes {
		rows = append(rows, []string{
			n.ID,
			n.ResourceType,
			strconv.Itoa(n.Degree),
			fmt.Sprintf("%.4f", n.Centrality),
			fmt.Sprintf("%.4f", n.Clustering),
		})
	}
	return headers, rows
}

// summaryText outputs the summary in styled text format.
func summaryText(out *output.SummaryOutput, r *output.Renderer) error {
	r.Header(1, fmt.Sprintf("Graph Summary (%d nodes, %d edges)", out.NodeCount, out.EdgeCount))

	r.Header(2, "Nodes by type and package")
	headers, rows := pivotRows(out.Pivot)
	r.Table(headers, rows)

	r.Header(2, "Node metrics")
	headers, rows = metricsRows(out.Nodes)
	r.Table(headers, rows)

	if out.DefaultNode != "" {
		r.Println("")
		r.Printf("Most connected model: %s\n", r.Styles().NodeID.Render(out.DefaultNode))
	}

	return nil
}

// summaryMarkdown outputs the summary in markdown format.
func summaryMarkdown(out *output.SummaryOutput, r *output.Renderer) error {
	r.Println(output.FormatHeader(1, fmt.Sprintf("Graph Summary (%d nodes, %d edges)", out.NodeCount, out.EdgeCount)))
	r.Println("")

	r.Println(output.FormatHeader(2, "Nodes by type and package"))
	r.Println("")
	headers, rows := pivotRows(out.Pivot)
	r.Table(headers, rows)
	r.Println("")

	r.Println(output.FormatHeader(2, "Node metrics"))
	r.Println("")
	headers, rows = metricsRows(out.Nodes)
	r.Table(headers, rows)
	r.Println("")

	if out.DefaultNode != "" {
		r.Println(output.FormatKeyValue("Most connected model", out.DefaultNode))
	}

	return nil
}
