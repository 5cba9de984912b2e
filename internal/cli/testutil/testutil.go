// Package testutil provides test utilities for CLI testing.
package testutil

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/leapstack-labs/leapgraph/internal/cli/output"
)

// testManifest is a small but complete manifest with one source, two
// models, a test, and an exposure.
const testManifest = `{
  "nodes": {
    "model.proj.stg_orders": {"resource_type": "model", "name": "stg_orders", "package_name": "proj", "tags": ["staging"]},
    "model.proj.orders": {"resource_type": "model", "name": "orders", "package_name": "proj", "tags": []},
    "test.proj.not_null_orders_id": {"resource_type": "test", "name": "not_null_orders_id", "package_name": "proj", "tags": []}
  },
  "sources": {
    "source.proj.raw.raw_orders": {"resource_type": "source", "name": "raw_orders", "package_name": "proj", "tags": []}
  },
  "exposures": {
    "exposure.proj.orders_dashboard": {"resource_type": "exposure", "name": "orders_dashboard", "package_name": "proj", "tags": []}
  },
  "child_map": {
    "source.proj.raw.raw_orders": ["model.proj.stg_orders"],
    "model.proj.stg_orders": ["model.proj.orders"],
    "model.proj.orders": ["test.proj.not_null_orders_id", "exposure.proj.orders_dashboard"],
    "test.proj.not_null_orders_id": [],
    "exposure.proj.orders_dashboard": []
  },
  "parent_map": {
    "source.proj.raw.raw_orders": [],
    "model.proj.stg_orders": ["source.proj.raw.raw_orders"],
    "model.proj.orders": ["model.proj.stg_orders"],
    "test.proj.not_null_orders_id": ["model.proj.orders"],
    "exposure.proj.orders_dashboard": ["model.proj.orders"]
  }
}`

// SetupTestProject creates a temporary dbt-style project directory with
// a compiled manifest under target/. Returns the project root.
func SetupTestProject(t *testing.T) string {
	t.Helper()

	tmpDir := t.TempDir()

	targetDir := filepath.Join(tmpDir, "target")
	if err := os.MkdirAll(targetDir, 0755); err != nil {
		t.Fatalf("failed to create directory %s: %v", targetDir, err)
	}

	if err := os.WriteFile(filepath.Join(targetDir, "manifest.json"),
		[]byte(testManifest), 0644); err != nil {
		t.Fatalf("failed to create manifest.json: %v", err)
	}

	return tmpDir
}

// TestManifestPath returns the manifest path inside a project created by
// SetupTestProject.
func TestManifestPath(projectRoot string) string {
	return filepath.Join(projectRoot, "target", "manifest.json")
}

// TestRenderer wraps a Renderer for testing with captured output buffers.
type TestRenderer struct {
	*output.Renderer
	Out    *bytes.Buffer
	ErrOut *bytes.Buffer
}

// NewTestRenderer creates a new test renderer with the specified mode and TTY state.
// Output is captured in buffers for inspection.
func NewTestRenderer(mode output.Mode, isTTY bool) *TestRenderer {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	return &TestRenderer{
		Renderer: output.NewRendererWithTTY(out, errOut, mode, isTTY),
		Out:      out,
		ErrOut:   errOut,
	}
}

// NewTestRendererAuto creates a new test renderer with auto mode detection.
// In tests, non-TTY defaults to markdown output.
func NewTestRendererAuto() *TestRenderer {
	return NewTestRenderer(output.ModeAuto, false)
}

// NewTestRendererText creates a new test renderer in text mode (simulated TTY).
func NewTestRendererText() *TestRenderer {
	return NewTestRenderer(output.ModeText, true)
}

// NewTestRendererMarkdown creates a new test renderer in markdown mode.
func NewTestRendererMarkdown() *TestRenderer {
	return NewTestRenderer(output.ModeMarkdown, false)
}

// NewTestRendererJSON creates a new test renderer in JSON mode.
func NewTestRendererJSON() *TestRenderer {
	return NewTestRenderer(output.ModeJSON, false)
}

// Output returns the combined stdout output as a string.
func (tr *TestRenderer) Output() string {
	return tr.Out.String()
}

// ErrorOutput returns the stderr output as a string.
func (tr *TestRenderer) ErrorOutput() string {
	return tr.ErrOut.String()
}

// Reset clears both output buffers.
func (tr *TestRenderer) Reset() {
	tr.Out.Reset()
	tr.ErrOut.Reset()
}

// ansiPattern matches ANSI escape codes.
var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// AssertNoANSI checks that a string contains no ANSI escape codes.
func AssertNoANSI(t *testing.T, s string) {
	t.Helper()
	if ansiPattern.MatchString(s) {
		t.Errorf("string contains ANSI escape codes: %q", s)
	}
}

// AssertContains checks that the string contains the expected substring.
func AssertContains(t *testing.T, s, expected string) {
	t.Helper()
	if !strings.Contains(s, expected) {
		t.Errorf("string %q does not contain expected %q", s, expected)
	}
}

// AssertNotContains checks that the string does not contain the substring.
func AssertNotContains(t *testing.T, s, unexpected string) {
	t.Helper()
	if strings.Contains(s, unexpected) {
		t.Errorf("string %q unexpectedly contains %q", s, unexpected)
	}
}

// AssertValidMarkdown performs basic markdown validation.
// It checks for unclosed code fences and basic structure.
func AssertValidMarkdown(t *testing.T, md string) {
	t.Helper()

	// Check for balanced code fences
	fenceCount := strings.Count(md, "```")
	if fenceCount%2 != 0 {
		t.Errorf("unbalanced code fences in markdown: found %d occurrences", fenceCount)
	}

	// Check that headers have content
	lines := strings.Split(md, "\n")
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "#") && strings.TrimLeft(trimmed, "# ") == "" {
			t.Errorf("empty header at line %d: %q", i+1, line)
		}
	}
}
