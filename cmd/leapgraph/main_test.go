// Package main provides tests for the LeapGraph CLI.
package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/leapstack-labs/leapgraph/internal/cli"
	"github.com/leapstack-labs/leapgraph/internal/cli/config"
	"github.com/leapstack-labs/leapgraph/internal/cli/testutil"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	config.ResetConfig()

	cmd := cli.NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return buf.String(), err
}

func TestVersionCommand(t *testing.T) {
	output, err := execute(t, "version")
	if err != nil {
		t.Errorf("version command error = %v", err)
	}
	if !strings.Contains(output, "LeapGraph") {
		t.Errorf("version output should contain 'LeapGraph', got: %s", output)
	}
}

func TestHelpCommand(t *testing.T) {
	output, err := execute(t, "--help")
	if err != nil {
		t.Errorf("help command error = %v", err)
	}

	expectedCommands := []string{"summary", "list", "inspect", "viz", "serve", "version"}
	for _, expected := range expectedCommands {
		if !strings.Contains(output, expected) {
			t.Errorf("help output should contain '%s', got: %s", expected, output)
		}
	}
}

func TestSummaryCommand(t *testing.T) {
	proj := testutil.SetupTestProject(t)

	output, err := execute(t, "summary", "--manifest", testutil.TestManifestPath(proj))
	if err != nil {
		t.Fatalf("summary command error = %v", err)
	}

	if !strings.Contains(output, "Graph Summary") {
		t.Errorf("summary output should contain 'Graph Summary', got: %s", output)
	}
	if !strings.Contains(output, "model.proj.orders") {
		t.Errorf("summary output should mention model.proj.orders, got: %s", output)
	}
}

func TestSummaryCommandJSON(t *testing.T) {
	proj := testutil.SetupTestProject(t)

	output, err := execute(t, "summary", "--output", "json", "--manifest", testutil.TestManifestPath(proj))
	if err != nil {
		t.Fatalf("summary --output json error = %v", err)
	}

	var parsed struct {
		NodeCount int `json:"node_count"`
		EdgeCount int `json:"edge_count"`
	}
	if err := json.Unmarshal([]byte(output), &parsed); err != nil {
		t.Fatalf("summary JSON output is not valid JSON: %v\n%s", err, output)
	}
	// Data graph: source, stg_orders, orders (test and exposure excluded)
	if parsed.NodeCount != 3 {
		t.Errorf("node_count = %d, want 3", parsed.NodeCount)
	}
	if parsed.EdgeCount != 2 {
		t.Errorf("edge_count = %d, want 2", parsed.EdgeCount)
	}
}

func TestListCommand(t *testing.T) {
	proj := testutil.SetupTestProject(t)

	output, err := execute(t, "list", "--manifest", testutil.TestManifestPath(proj))
	if err != nil {
		t.Fatalf("list command error = %v", err)
	}

	if !strings.Contains(output, "Nodes (5 total)") {
		t.Errorf("list output should contain 'Nodes (5 total)', got: %s", output)
	}
}

func TestListCommandTypeFilter(t *testing.T) {
	proj := testutil.SetupTestProject(t)

	output, err := execute(t, "list", "--type", "model", "--manifest", testutil.TestManifestPath(proj))
	if err != nil {
		t.Fatalf("list --type model error = %v", err)
	}

	if !strings.Contains(output, "Nodes (2 total)") {
		t.Errorf("list output should contain 'Nodes (2 total)', got: %s", output)
	}
	if strings.Contains(output, "source.proj.raw.raw_orders") {
		t.Errorf("filtered list should not contain sources, got: %s", output)
	}
}

func TestInspectCommand(t *testing.T) {
	proj := testutil.SetupTestProject(t)

	output, err := execute(t, "inspect", "model.proj.orders", "--manifest", testutil.TestManifestPath(proj))
	if err != nil {
		t.Fatalf("inspect command error = %v", err)
	}

	if !strings.Contains(output, "model.proj.orders") {
		t.Errorf("inspect output should contain the node id, got: %s", output)
	}
	if !strings.Contains(output, "model.proj.stg_orders") {
		t.Errorf("inspect output should list the ancestor, got: %s", output)
	}
}

func TestInspectCommandDefaultNode(t *testing.T) {
	proj := testutil.SetupTestProject(t)

	// No node argument: the most connected model is picked.
	output, err := execute(t, "inspect", "--manifest", testutil.TestManifestPath(proj))
	if err != nil {
		t.Fatalf("inspect command error = %v", err)
	}

	if !strings.Contains(output, "model.proj.stg_orders") {
		t.Errorf("inspect should default to the most connected model, got: %s", output)
	}
}

func TestInspectCommandUnknownNode(t *testing.T) {
	proj := testutil.SetupTestProject(t)

	_, err := execute(t, "inspect", "model.proj.bogus", "--manifest", testutil.TestManifestPath(proj))
	if err == nil {
		t.Fatal("inspect of unknown node should fail")
	}
	if !strings.Contains(err.Error(), "node not found") {
		t.Errorf("error should mention node not found, got: %v", err)
	}
}

func TestVizCommand(t *testing.T) {
	proj := testutil.SetupTestProject(t)

	output, err := execute(t, "viz", "model.proj.orders", "--manifest", testutil.TestManifestPath(proj))
	if err != nil {
		t.Fatalf("viz command error = %v", err)
	}

	if !strings.Contains(output, "digraph models {") {
		t.Errorf("viz output should contain a DOT digraph, got: %s", output)
	}
	if !strings.Contains(output, `fillcolor="green"`) {
		t.Errorf("selected node should be highlighted, got: %s", output)
	}
}

func TestVizCommandHiddenTypeWarning(t *testing.T) {
	proj := testutil.SetupTestProject(t)

	output, err := execute(t, "viz", "source.proj.raw.raw_orders", "--types", "model",
		"--manifest", testutil.TestManifestPath(proj))
	if err != nil {
		t.Fatalf("viz command error = %v", err)
	}

	// The selected node is kept even though sources are filtered out,
	// and the filter mismatch is called out on stderr.
	if !strings.Contains(output, "not among the visible types") {
		t.Errorf("viz should warn about the hidden node type, got: %s", output)
	}
	if !strings.Contains(output, "digraph models {") {
		t.Errorf("viz output should still contain a DOT digraph, got: %s", output)
	}
}

func TestVizCommandOutFile(t *testing.T) {
	proj := testutil.SetupTestProject(t)
	outFile := filepath.Join(t.TempDir(), "graph.dot")

	_, err := execute(t, "viz", "model.proj.orders", "--out", outFile, "--manifest", testutil.TestManifestPath(proj))
	if err != nil {
		t.Fatalf("viz --out error = %v", err)
	}

	data, err := readFile(outFile)
	if err != nil {
		t.Fatalf("failed to read DOT file: %v", err)
	}
	if !strings.Contains(data, "digraph models {") {
		t.Errorf("DOT file should contain a digraph, got: %s", data)
	}
}

func readFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	return string(data), err
}

func TestMissingManifest(t *testing.T) {
	tmpDir := t.TempDir()

	_, err := execute(t, "summary", "--manifest", filepath.Join(tmpDir, "nope.json"))
	if err == nil {
		t.Fatal("summary with missing manifest should fail")
	}
	if !strings.Contains(err.Error(), "does not exist") {
		t.Errorf("error should mention the missing manifest, got: %v", err)
	}
}
