package commands

import (
	"testing"

	"github.com/leapstack-labs/leapgraph/internal/analyzer"
	"github.com/leapstack-labs/leapgraph/internal/cli/config"
	"github.com/leapstack-labs/leapgraph/internal/cli/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCommandContext(t *testing.T, tr *testutil.TestRenderer) *CommandContext {
	t.Helper()

	proj := testutil.SetupTestProject(t)
	a := analyzer.New(analyzer.Config{ManifestPath: testutil.TestManifestPath(proj)})
	require.NoError(t, a.Load())

	return &CommandContext{
		Cfg: &config.Config{
			ManifestPath: testutil.TestManifestPath(proj),
			OutputFormat: config.DefaultOutput,
			NodeTypes:    config.DefaultNodeTypes(),
			MaxDistance:  config.DefaultMaxDistance,
		},
		Analyzer: a,
		Renderer: tr.Renderer,
	}
}

func TestSummaryMarkdownRendering(t *testing.T) {
	tr := testutil.NewTestRendererMarkdown()
	cmdCtx := testCommandContext(t, tr)

	out := buildSummaryOutput(cmdCtx)
	require.NoError(t, summaryMarkdown(out, tr.Renderer))

	got := tr.Output()
	testutil.AssertContains(t, got, "# Graph Summary (3 nodes, 2 edges)")
	testutil.AssertContains(t, got, "model.proj.stg_orders")
	testutil.AssertContains(t, got, "**Most connected model:** model.proj.stg_orders")
	testutil.AssertNoANSI(t, got)
	testutil.AssertValidMarkdown(t, got)
}

func TestSummaryTextRendering(t *testing.T) {
	tr := testutil.NewTestRendererText()
	cmdCtx := testCommandContext(t, tr)

	out := buildSummaryOutput(cmdCtx)
	require.NoError(t, summaryText(out, tr.Renderer))

	got := tr.Output()
	testutil.AssertContains(t, got, "Graph Summary")
	testutil.AssertContains(t, got, "model.proj.orders")
	testutil.AssertContains(t, got, "Most connected model: model.proj.stg_orders")
	testutil.AssertNoANSI(t, got)
}

func TestInspectOutputRelationOrder(t *testing.T) {
	tr := testutil.NewTestRendererMarkdown()
	cmdCtx := testCommandContext(t, tr)

	detail, err := cmdCtx.Analyzer.Inspect("model.proj.orders")
	require.NoError(t, err)

	out := buildInspectOutput(detail)

	// Ancestors come first, nearest first.
	require.Len(t, out.Relations, 2)
	assert.Equal(t, "model.proj.stg_orders", out.Relations[0].ID)
	assert.Equal(t, "ancestor", out.Relations[0].Relationship)
	assert.Equal(t, 1, out.Relations[0].Distance)
	assert.Equal(t, "source.proj.raw.raw_orders", out.Relations[1].ID)
	assert.Equal(t, 2, out.Relations[1].Distance)

	require.NoError(t, inspectMarkdown(out, tr.Renderer))
	got := tr.Output()
	testutil.AssertContains(t, got, "# model.proj.orders")
	testutil.AssertContains(t, got, "## Related nodes")
	testutil.AssertValidMarkdown(t, got)
}

func TestListOutputMarkdown(t *testing.T) {
	tr := testutil.NewTestRendererMarkdown()
	cmdCtx := testCommandContext(t, tr)

	out := buildListOutput(cmdCtx.Analyzer.Graph(), []string{"model"})
	require.NoError(t, listMarkdown(out, tr.Renderer))

	got := tr.Output()
	testutil.AssertContains(t, got, "# Nodes (2 total)")
	testutil.AssertNotContains(t, got, "source.proj.raw.raw_orders")
}
