package commands

import (
	"context"
	"fmt"

	"github.com/leapstack-labs/leapgraph/internal/api"
	"github.com/spf13/cobra"
)

// ServeOptions holds options for the serve command.
type ServeOptions struct {
	Port  int
	Watch bool
}

// NewServeCommand creates the serve command.
func NewServeCommand() *cobra.Command {
	opts := &ServeOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve graph analysis over HTTP",
		Long: `Start a local HTTP server exposing the graph analysis as a JSON API.

Endpoints:
- GET /healthz               liveness check
- GET /api/summary           pivot and per-node metrics
- GET /api/nodes             all nodes (filter with ?type=)
- GET /api/nodes/{id}        node detail with relationships
- GET /api/nodes/{id}/dot    DOT rendering of the node's neighborhood

With --watch the manifest is reloaded whenever dbt rewrites it.`,
		Example: `  # Serve on the default port
  leapgraph serve

  # Serve on a custom port
  leapgraph serve --port 3000

  # Reload when the manifest changes
  leapgraph serve --watch`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, opts)
		},
	}

	cmd.Flags().IntVar(&opts.Port, "port", 0, "Port to serve on (default: 8585)")
	cmd.Flags().BoolVar(&opts.Watch, "watch", true, "Reload when the manifest changes")

	return cmd
}

func runServe(cmd *cobra.Command, opts *ServeOptions) error {
	// The HTTP server loads and reloads the manifest itself, so the
	// command context stays analyzer-free.
	cmdCtx := NewCommandContextWithoutAnalyzer(cmd)
	cfg := cmdCtx.Cfg

	// Get serve config with defaults
	serveCfg := cfg.GetServeConfig()

	// CLI flags override config file
	port := serveCfg.Port
	if opts.Port != 0 {
		port = opts.Port
	}

	watch := serveCfg.Watch
	if cmd.Flags().Changed("watch") {
		watch = opts.Watch
	}

	if err := cfg.ValidateManifest(); err != nil {
		return err
	}

	server := api.NewServer(api.Config{
		ManifestPath: cfg.ManifestPath,
		Port:         port,
		Watch:        watch,
		Logger:       cmdCtx.Logger,
	})

	if err := server.Load(); err != nil {
		return fmt.Errorf("failed to load manifest: %w", err)
	}

	cmdCtx.Renderer.Printf("Serving graph analysis on http://localhost:%d\n", port)
	cmdCtx.Renderer.Println("Press Ctrl+C to stop")

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	return server.Serve(ctx)
}
