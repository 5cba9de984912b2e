package commands

import (
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/leapstack-labs/leapgraph/internal/analyzer"
	"github.com/leapstack-labs/leapgraph/internal/cli/config"
	"github.com/leapstack-labs/leapgraph/internal/cli/output"
	"github.com/spf13/cobra"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Analyzer *analyzer.Analyzer
	Renderer *output.Renderer
}

// NewCommandContext creates a CommandContext with a loaded analyzer and renderer.
// Returns the context and a cleanup function that must be called (typically via defer).
func NewCommandContext(cmd *cobra.Command) (*CommandContext, func(), error) {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())

	if err := cfg.ValidateManifest(); err != nil {
		return nil, nil, err
	}

	a := analyzer.New(analyzer.Config{
		ManifestPath: cfg.ManifestPath,
		Logger:       logger,
	})
	if err := a.Load(); err != nil {
		return nil, nil, err
	}

	mode := output.Mode(cfg.OutputFormat)
	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode)

	cleanup := func() {}

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Analyzer: a,
		Renderer: r,
	}, cleanup, nil
}

// NewCommandContextWithoutAnalyzer creates a CommandContext without loading
// a manifest. Useful for commands that don't need the graph.
func NewCommandContextWithoutAnalyzer(cmd *cobra.Command) *CommandContext {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())
	mode := output.Mode(cfg.OutputFormat)
	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode)

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Renderer: r,
	}
}

// Helper functions shared across commands

// getConfig returns the current configuration.
// It uses config.GetCurrentConfig() if available, otherwise falls back to environment variables.
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}

	// Fallback: read from environment with defaults
	manifestPath := getEnvOrDefault("LEAPGRAPH_MANIFEST", config.DefaultManifestPath)
	outputFormat := getEnvOrDefault("LEAPGRAPH_OUTPUT", config.DefaultOutput)
	verbose := os.Getenv("LEAPGRAPH_VERBOSE") == "true"

	nodeTypes := config.DefaultNodeTypes()
	if v := os.Getenv("LEAPGRAPH_NODE_TYPES"); v != "" {
		nodeTypes = strings.Split(v, ",")
	}

	maxDistance := config.DefaultMaxDistance
	if v := os.Getenv("LEAPGRAPH_MAX_DISTANCE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			maxDistance = n
		}
	}

	return &config.Config{
		ManifestPath: manifestPath,
		OutputFormat: outputFormat,
		Verbose:      verbose,
		NodeTypes:    nodeTypes,
		MaxDistance:  maxDistance,
	}
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
