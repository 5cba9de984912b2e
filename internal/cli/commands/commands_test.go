// Package commands_test provides tests for CLI command creation.
package commands

import (
	"bytes"
	"context"
	"testing"

	"github.com/leapstack-labs/leapgraph/internal/cli/config"
	"github.com/leapstack-labs/leapgraph/internal/cli/output"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
)

func TestNewSummaryCommand(t *testing.T) {
	cmd := NewSummaryCommand()

	assert.Equal(t, "summary", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")
	assert.NotEmpty(t, cmd.Example, "Example should not be empty")

	// Note: --output and --manifest are global persistent flags on root
}

func TestNewListCommand(t *testing.T) {
	cmd := NewListCommand()

	assert.Equal(t, "list", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")
	assert.NotNil(t, cmd.Flags().Lookup("type"), "flag %q should exist", "type")
}

func TestNewInspectCommand(t *testing.T) {
	cmd := NewInspectCommand()

	assert.Equal(t, "inspect [node]", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")
	assert.NotEmpty(t, cmd.Example, "Example should not be empty")
}

func TestNewVizCommand(t *testing.T) {
	cmd := NewVizCommand()

	assert.Equal(t, "viz [node]", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")

	// Verify flags exist
	flags := []string{"types", "max-distance", "out"}
	for _, flag := range flags {
		assert.NotNil(t, cmd.Flags().Lookup(flag), "flag %q should exist", flag)
	}
}

func TestNewServeCommand(t *testing.T) {
	cmd := NewServeCommand()

	assert.Equal(t, "serve", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")

	flags := []string{"port", "watch"}
	for _, flag := range flags {
		assert.NotNil(t, cmd.Flags().Lookup(flag), "flag %q should exist", flag)
	}
}

func TestNewCommandContextWithoutAnalyzer(t *testing.T) {
	config.ResetConfig()
	t.Setenv("LEAPGRAPH_MANIFEST", "missing/manifest.json")
	t.Setenv("LEAPGRAPH_OUTPUT", "markdown")

	cmd := &cobra.Command{Use: "serve"}
	cmd.SetContext(context.Background())
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))

	// No manifest on disk; the context must still come up because
	// nothing is loaded.
	cmdCtx := NewCommandContextWithoutAnalyzer(cmd)

	assert.Nil(t, cmdCtx.Analyzer)
	assert.NotNil(t, cmdCtx.Logger)
	assert.Equal(t, "missing/manifest.json", cmdCtx.Cfg.ManifestPath)
	assert.Equal(t, output.ModeMarkdown, cmdCtx.Renderer.EffectiveMode())
}

func TestGetConfigEnvFallback(t *testing.T) {
	config.ResetConfig()
	t.Setenv("LEAPGRAPH_MANIFEST", "custom/manifest.json")
	t.Setenv("LEAPGRAPH_OUTPUT", "json")
	t.Setenv("LEAPGRAPH_NODE_TYPES", "model,source")
	t.Setenv("LEAPGRAPH_MAX_DISTANCE", "4")

	cfg := getConfig()

	assert.Equal(t, "custom/manifest.json", cfg.ManifestPath)
	assert.Equal(t, "json", cfg.OutputFormat)
	assert.Equal(t, []string{"model", "source"}, cfg.NodeTypes)
	assert.Equal(t, 4, cfg.MaxDistance)
}
