package commands

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/leapstack-labs/leapgraph/internal/analyzer"
	"github.com/leapstack-labs/leapgraph/internal/cli/output"
	"github.com/leapstack-labs/leapgraph/internal/relations"
	"github.com/spf13/cobra"
)

// NewInspectCommand creates the inspect command.
func NewInspectCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect [node]",
		Short: "Inspect a single node and its relationships",
		Long: `Inspect one node of the manifest graph: its metrics, how those metrics
rank against the rest of the graph, and every ancestor and descendant
with its distance.

When no node is given, the most connected model is inspected.

Output adapts to environment:
  - Terminal: Styled, colored output
  - Piped/Scripted: Markdown format (agent-friendly)

Use --output to override: auto, text, markdown, json`,
		Example: `  # Inspect the most connected model
  leapgraph inspect

  # Inspect a specific node
  leapgraph inspect model.jaffle_shop.orders

  # Inspect as JSON
  leapgraph inspect model.jaffle_shop.orders --output json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			nodeID := ""
			if len(args) > 0 {
				nodeID = args[0]
			}
			return runInspect(cmd, nodeID)
		},
	}

	return cmd
}

func runInspect(cmd *cobra.Command, nodeID string) error {
	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	if nodeID == "" {
		var ok bool
		nodeID, ok = cmdCtx.Analyzer.DefaultNode()
		if !ok {
			return fmt.Errorf("manifest has no model nodes; pass a node id explicitly")
		}
	}

	detail, err := cmdCtx.Analyzer.Inspect(nodeID)
	if err != nil {
		return err
	}

	out := buildInspectOutput(detail)
	r := cmdCtx.Renderer

	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(out)
	case output.ModeMarkdown:
		return inspectMarkdown(out, r)
	default:
		return inspectText(out, r)
	}
}

// buildInspectOutput flattens a node detail into the inspect DTO.
// Relations are ordered ancestors before descendants, nearest first.
func buildInspectOutput(detail *analyzer.NodeDetail) *output.InspectOutput {
	rels := make([]output.RelationNode, 0, len(detail.Relations))
	for id, jr := range detail.Relations {
		rels = append(rels, output.RelationNode{
			ID:           id,
			ResourceType: string(jr.Metrics.Node.ResourceType),
			Name:         jr.Metrics.Node.Name,
			Distance:     jr.Relation.Distance,
			Relationship: string(jr.Relation.Relationship),
			Degree:       jr.Metrics.Degree,
			Centrality:   jr.Metrics.Centrality,
			Clustering:   jr.Metrics.Clustering,
		})
	}
	sort.Slice(rels, func(i, j int) bool {
		if rels[i].Relationship != rels[j].Relationship {
			return rels[i].Relationship == string(relations.Ancestor)
		}
		if rels[i].Distance != rels[j].Distance {
			return rels[i].Distance < rels[j].Distance
		}
		return rels[i].ID < rels[j].ID
	})

	out := &output.InspectOutput{
		ID:             detail.Node.ID,
		ResourceType:   string(detail.Node.ResourceType),
		Name:           detail.Node.Name,
		PackageName:    detail.Node.PackageName,
		DegreeRank:     detail.DegreeRank,
		CentralityRank: detail.CentralityRank,
		Relations:      rels,
	}
	if detail.Metrics != nil {
		out.Degree = detail.Metrics.Degree
		out.Clustering = detail.Metrics.Clustering
	}
	return out
}

func relationRows(rels []output.RelationNode) (headers []string, rows [][]string) {
	headers = []string{"Node", "Type", "Relationship", "Distance", "Degree", "Centrality"}
	for _, rel := range rels {
		rows = append(rows, []string{
			rel.ID,
			rel.ResourceType,
			rel.Relationship,
			strconv.Itoa(rel.Distance),
			strconv.Itoa(rel.Degree),
			fmt.Sprintf("%.4f", rel.Centrality),
		})
	}
	return headers, rows
}

// inspectText outputs node detail in styled text format.
func inspectText(out *output.InspectOutput, r *output.Renderer) error {
	r.Header(1, out.ID)
	r.Printf("Type: %s  Package: %s\n", out.ResourceType, out.PackageName)
	r.Printf("Degree: %d (top %.0f%%)\n", out.Degree, (1-out.DegreeRank)*100)
	r.Printf("Centrality rank: top %.0f%%\n", (1-out.CentralityRank)*100)
	r.Printf("Clustering: %.4f\n", out.Clustering)

	if len(out.Relations) > 0 {
		r.Header(2, "Related nodes")
		headers, rows := relationRows(out.Relations)
		r.Table(headers, rows)
	} else {
		r.Muted("No related data nodes.")
	}

	return nil
}

// inspectMarkdown outputs node detail in markdown format.
func inspectMarkdown(out *output.InspectOutput, r *output.Renderer) error {
	r.Println(output.FormatHeader(1, out.ID))
	r.Println("")
	r.Println(output.FormatKeyValue("Type", out.ResourceType))
	r.Println(output.FormatKeyValue("Package", out.PackageName))
	r.Println(output.FormatKeyValue("Degree", strconv.Itoa(out.Degree)))
	r.Println(output.FormatKeyValue("Degree percentile", fmt.Sprintf("%.2f", out.DegreeRank)))
	r.Println(output.FormatKeyValue("Centrality percentile", fmt.Sprintf("%.2f", out.CentralityRank)))
	r.Println(output.FormatKeyValue("Clustering", fmt.Sprintf("%.4f", out.Clustering)))
	r.Println("")

	if len(out.Relations) > 0 {
		r.Println(output.FormatHeader(2, "Related nodes"))
		r.Println("")
		headers, rows := relationRows(out.Relations)
		r.Table(headers, rows)
	}

	return nil
}
