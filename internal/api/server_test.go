package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/leapstack-labs/leapgraph/internal/cli/output"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testManifest = `{
  "nodes": {
    "model.proj.stg_orders": {"resource_type": "model", "name": "stg_orders", "package_name": "proj", "tags": []},
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

func newTestServer(t *testing.T) *Server {
	t.Helper()

	path := filepath.Join(t.TempDir(), "manifest.json")
	require.NoError(t, os.WriteFile(path, []byte(testManifest), 0600))

	s := NewServer(Config{ManifestPath: path, Port: 0})
	require.NoError(t, s.Load())
	return s
}

func get(s *Server, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	w := httptest.NewRecorder()
	s.Routes().ServeHTTP(w, req)
	return w
}

func TestHealthz(t *testing.T) {
	s := newTestServer(t)

	w := get(s, "/healthz")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestSummaryEndpoint(t *testing.T) {
	s := newTestServer(t)

	w := get(s, "/api/summary")
	require.Equal(t, http.StatusOK, w.Code)

	var out output.SummaryOutput
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))

	// Data graph excludes the test and exposure nodes.
	assert.Equal(t, 3, out.NodeCount)
	assert.Equal(t, 2, out.EdgeCount)
	assert.Len(t, out.Nodes, 3)
	assert.Equal(t, "model.proj.stg_orders", out.DefaultNode)
	assert.Contains(t, out.Pivot.Types, "model")
	assert.Equal(t, 2, out.Pivot.Counts["model"]["proj"])
}

func TestNodesEndpoint(t *testing.T) {
	s := newTestServer(t)

	t.Run("all nodes", func(t *testing.T) {
		w := get(s, "/api/nodes")
		require.Equal(t, http.StatusOK, w.Code)

		var out output.ListOutput
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
		assert.Equal(t, 5, out.Total)
	})

	t.Run("type filter", func(t *testing.T) {
		w := get(s, "/api/nodes?type=model")
		require.Equal(t, http.StatusOK, w.Code)

		var out output.ListOutput
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
		assert.Equal(t, 2, out.Total)
		for _, n := range out.Nodes {
			assert.Equal(t, "model", n.ResourceType)
		}
	})

	t.Run("unknown type", func(t *testing.T) {
		w := get(s, "/api/nodes?type=widget")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "unknown node type")
	})
}

func TestNodeEndpoint(t *testing.T) {
	s := newTestServer(t)

	t.Run("existing node", func(t *testing.T) {
		w := get(s, "/api/nodes/model.proj.orders")
		require.Equal(t, http.StatusOK, w.Code)

		var out output.InspectOutput
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
		assert.Equal(t, "model.proj.orders", out.ID)
		assert.Equal(t, "model", out.ResourceType)

		// stg_orders and raw_orders are ancestors; test and exposure
		// are not data nodes and carry no metrics.
		ids := make([]string, 0, len(out.Relations))
		for _, rel := range out.Relations {
			ids = append(ids, rel.ID)
		}
		assert.Contains(t, ids, "model.proj.stg_orders")
		assert.Contains(t, ids, "source.proj.raw.raw_orders")
		assert.NotContains(t, ids, "test.proj.not_null_orders_id")
	})

	t.Run("unknown node", func(t *testing.T) {
		w := get(s, "/api/nodes/model.proj.bogus")
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "node not found")
	})
}

func TestNodeDOTEndpoint(t *testing.T) {
	s := newTestServer(t)

	t.Run("renders DOT", func(t *testing.T) {
		w := get(s, "/api/nodes/model.proj.orders/dot")
		require.Equal(t, http.StatusOK, w.Code)

		var out output.VizOutput
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
		assert.Equal(t, "model.proj.orders", out.Node)
		assert.Contains(t, out.DOT, "digraph models {")
		assert.Contains(t, out.DOT, `fillcolor="green"`)
	})

	t.Run("custom types and distance", func(t *testing.T) {
		w := get(s, "/api/nodes/model.proj.orders/dot?types=model&max_distance=1")
		require.Equal(t, http.StatusOK, w.Code)

		var out output.VizOutput
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
		assert.Contains(t, out.DOT, "stg_orders")
		assert.NotContains(t, out.DOT, "raw_orders")
	})

	t.Run("invalid max_distance", func(t *testing.T) {
		w := get(s, "/api/nodes/model.proj.orders/dot?max_distance=zero")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown type", func(t *testing.T) {
		w := get(s, "/api/nodes/model.proj.orders/dot?types=widget")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown node", func(t *testing.T) {
		w := get(s, "/api/nodes/model.proj.bogus/dot")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "manifest.json")
	require.NoError(t, os.WriteFile(path, []byte(testManifest), 0600))

	s := NewServer(Config{ManifestPath: path, Port: 0})
	require.NoError(t, s.Load())

	before := s.current()

	// Rewrite the manifest and reload; requests see the new analyzer.
	require.NoError(t, os.WriteFile(path, []byte(testManifest), 0600))
	require.NoError(t, s.Load())

	assert.NotSame(t, before, s.current())
}
