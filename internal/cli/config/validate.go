package config

import (
	"fmt"
	"os"
	"slices"

	"github.com/leapstack-labs/leapgraph/internal/graph"
)

// knownOutputs are the accepted values for the output flag.
var knownOutputs = []string{"auto", "text", "markdown", "json"}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.ManifestPath == "" {
		return fmt.Errorf("manifest path is required")
	}
	if !slices.Contains(knownOutputs, c.OutputFormat) {
		return fmt.Errorf("unknown output format %q (valid: auto, text, markdown, json)", c.OutputFormat)
	}
	for _, nt := range c.NodeTypes {
		if !slices.Contains(graph.AllResourceTypes, graph.ResourceType(nt)) {
			return fmt.Errorf("unknown node type %q", nt)
		}
	}
	if c.MaxDistance < 0 {
		return fmt.Errorf("max distance must be non-negative, got %d", c.MaxDistance)
	}

	// Only validate manifest existence when a command actually needs it.
	// This allows help commands to work without a manifest on disk.
	return nil
}

// ValidateManifest checks that the manifest file exists on disk.
func (c *Config) ValidateManifest() error {
	if _, err := os.Stat(c.ManifestPath); os.IsNotExist(err) {
		return fmt.Errorf("manifest file does not exist: %s\nHint: Run dbt compile, or use --manifest to point at a manifest.json", c.ManifestPath)
	}
	return nil
}
