package commands

import (
	"fmt"
	"os"
	"slices"

	"github.com/leapstack-labs/leapgraph/internal/cli/output"
	"github.com/leapstack-labs/leapgraph/internal/graph"
	"github.com/spf13/cobra"
)

// NewVizCommand creates the viz command.
func NewVizCommand() *cobra.Command {
	var (
		typeNames   []string
		maxDistance int
		outFile     string
	)

	cmd := &cobra.Command{
		Use:   "viz [node]",
		Short: "Render a node's neighborhood as Graphviz DOT",
		Long: `Render the neighborhood of a node as a Graphviz DOT document.

Nodes are filtered to the visible resource types and to a maximum edge
distance from the selected node. The selected node itself is always
kept and highlighted. When no node is given, the most central node
among the visible types is selected.

Pipe the output to dot to produce an image:

  leapgraph viz my_model | dot -Tsvg -o graph.svg`,
		Example: `  # Visualize the most central node's neighborhood
  leapgraph viz

  # Visualize a specific node
  leapgraph viz model.jaffle_shop.orders

  # Include sources and seeds, two hops out
  leapgraph viz orders --types model,source,seed --max-distance 2

  # Write DOT to a file
  leapgraph viz orders --out graph.dot`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			nodeID := ""
			if len(args) > 0 {
				nodeID = args[0]
			}
			return runViz(cmd, nodeID, typeNames, maxDistance, outFile)
		},
	}

	cmd.Flags().StringSliceVar(&typeNames, "types", nil, "Visible resource types (default: seed,source,model)")
	cmd.Flags().IntVar(&maxDistance, "max-distance", 0, "Maximum edge distance from the selected node")
	cmd.Flags().StringVar(&outFile, "out", "", "Write DOT to a file instead of stdout")

	return cmd
}

func runViz(cmd *cobra.Command, nodeID string, typeNames []string, maxDistance int, outFile string) error {
	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	// Flags missing or zero fall back to configured values.
	if len(typeNames) == 0 {
		typeNames = cmdCtx.Cfg.NodeTypes
	}
	if maxDistance <= 0 {
		maxDistance = cmdCtx.Cfg.MaxDistance
	}

	visibleTypes := make([]graph.ResourceType, 0, len(typeNames))
	for _, t := range typeNames {
		rt := graph.ResourceType(t)
		if !slices.Contains(graph.AllResourceTypes, rt) {
			return fmt.Errorf("unknown node type %q", t)
		}
		visibleTypes = append(visibleTypes, rt)
	}

	if nodeID == "" {
		var ok bool
		nodeID, ok = cmdCtx.Analyzer.DefaultNodeAmong(visibleTypes)
		if !ok {
			return fmt.Errorf("manifest has no nodes of the visible types; pass a node id explicitly")
		}
	}

	// The selected node is always rendered even when its type is not
	// visible; point that out so a sparse graph is not a surprise.
	if node, ok := cmdCtx.Analyzer.Graph().Node(nodeID); ok && !slices.Contains(visibleTypes, node.ResourceType) {
		cmdCtx.Renderer.Warning(fmt.Sprintf("node %s has type %s, which is not among the visible types", nodeID, node.ResourceType))
	}

	dotSrc, err := cmdCtx.Analyzer.Viz(nodeID, visibleTypes, maxDistance)
	if err != nil {
		return err
	}

	if outFile != "" {
		if err := os.WriteFile(outFile, []byte(dotSrc), 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", outFile, err)
		}
		cmdCtx.Renderer.Success(fmt.Sprintf("Wrote %s", outFile))
		return nil
	}

	r := cmdCtx.Renderer
	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(&output.VizOutput{Node: nodeID, DOT: dotSrc})
	case output.ModeMarkdown:
		r.Println("```dot")
		r.Println(dotSrc)
		r.Println("```")
		return nil
	default:
		r.Println(dotSrc)
		return nil
	}
}
