package commands

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/leapstack-labs/leapgraph/internal/cli/output"
	"github.com/leapstack-labs/leapgraph/internal/graph"
	"github.com/spf13/cobra"
)

// NewListCommand creates the list command.
func NewListCommand() *cobra.Command {
	var typeFilter []string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all nodes in the manifest graph",
		Long: `List every node in the manifest graph with its resource type, package,
and degree. Use --type to restrict the listing to specific resource types.

Output adapts to environment:
  - Terminal: Styled, colored output
  - Piped/Scripted: Markdown format (agent-friendly)

Use --output to override: auto, text, markdown, json`,
		Example: `  # List all nodes (auto-detect output format)
  leapgraph list

  # List only models and sources
  leapgraph list --type model --type source

  # List nodes as JSON
  leapgraph list --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runList(cmd, typeFilter)
		},
	}

	cmd.Flags().StringSliceVarP(&typeFilter, "type", "t", nil, "Resource types to include (repeatable)")
	_ = cmd.RegisterFlagCompletionFunc("type", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		names := make([]string, 0, len(graph.AllResourceTypes))
		for _, rt := range graph.AllResourceTypes {
			names = append(names, string(rt))
		}
		return names, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func runList(cmd *cobra.Command, typeFilter []string) error {
	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	for _, t := range typeFilter {
		if !slices.Contains(graph.AllResourceTypes, graph.ResourceType(t)) {
			return fmt.Errorf("unknown node type %q", t)
		}
	}

	out := buildListOutput(cmdCtx.Analyzer.Graph(), typeFilter)
	r := cmdCtx.Renderer

	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(out)
	case output.ModeMarkdown:
		return listMarkdown(out, r)
	default:
		return listText(out, r)
	}
}

// buildListOutput collects nodes from the full graph, filtered by
// resource type when a filter is given.
func buildListOutput(g *graph.Graph, typeFilter []string) *output.ListOutput {
	out := &output.ListOutput{Nodes: []output.ListNode{}}
	for _, n := range g.Nodes() {
		if len(typeFilter) > 0 && !slices.Contains(typeFilter, string(n.ResourceType)) {
			continue
		}
		out.Nodes = append(out.Nodes, output.ListNode{
			ID:           n.ID,
			ResourceType: string(n.ResourceType),
			PackageName:  n.PackageName,
			Degree:       g.Degree(n.ID),
		})
	}
	out.Total = len(out.Nodes)
	return out
}

func listRows(out *output.ListOutput) (headers []string, rows [][]string) {
	headers = []string{"Node", "Type", "Package", "Degree"}
	for _, n := range out.Nodes {
		rows = append(rows, []string{n.ID, n.ResourceType, n.PackageName, strconv.Itoa(n.Degree)})
	}
	return headers, rows
}

// listText outputs nodes in styled text format.
func listText(out *output.ListOutput, r *output.Renderer) error {
	r.Header(1, fmt.Sprintf("Nodes (%d total)", out.Total))
	headers, rows := listRows(out)
	r.Table(headers, rows)
	return nil
}

// listMarkdown outputs nodes in markdown format.
func listMarkdown(out *output.ListOutput, r *output.Renderer) error {
	r.Println(output.FormatHeader(1, fmt.Sprintf("Nodes (%d total)", out.Total)))
	r.Println("")
	headers, rows := listRows(out)
	r.Table(headers, rows)
	return nil
}
