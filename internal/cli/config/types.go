// Package config provides configuration management for the leapgraph CLI.
package config

// Config holds all CLI configuration options.
type Config struct {
	// ManifestPath points at the dbt manifest.json to analyze
	ManifestPath string `koanf:"manifest"`
	Verbose      bool   `koanf:"verbose"`
	OutputFormat string `koanf:"output"`
	// NodeTypes are the resource types shown by default in diagrams
	NodeTypes []string `koanf:"node_types"`
	// MaxDistance bounds the relation distance in diagrams
	MaxDistance int          `koanf:"max_distance"`
	Serve       *ServeConfig `koanf:"serve"`

	// ProjectRoot is inferred at load time, not read from the file
	ProjectRoot string `koanf:"-"`
}

// ServeConfig holds configuration for the API server.
type ServeConfig struct {
	Port  int  `koanf:"port"`
	Watch bool `koanf:"watch"`
}

// Default configuration values.
const (
	DefaultManifestPath = "target/manifest.json"
	DefaultOutput       = "auto" // Auto-detect: TTY=text, non-TTY=markdown
	DefaultMaxDistance  = 10
	DefaultServePort    = 8585
)

// DefaultNodeTypes mirrors the resource types a fresh analysis shows.
func DefaultNodeTypes() []string {
	return []string{"seed", "source", "model"}
}

// GetServeConfig returns the serve config with defaults applied for any
// unset values.
func (c *Config) GetServeConfig() *ServeConfig {
	if c.Serve == nil {
		return &ServeConfig{Port: DefaultServePort, Watch: true}
	}
	s := c.Serve
	if s.Port == 0 {
		s.Port = DefaultServePort
	}
	return s
}
