package snapshot

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/netlens/errors"
	"github.com/teranos/netlens/graph"
)

const pathSnapshot = `{
  "nodes": [
    {"id": "A", "label": "Alice", "feature": "person", "entries": ["r1"], "component": "c1", "properties": {"age": 41}},
    {"id": "B", "label": "Acme", "feature": "org", "entries": ["r1", "r2"], "neighbours": ["A"]},
    {"id": "C", "label": "Carol", "feature": "person", "entries": ["r2"]}
  ],
  "links": [
    {"source": "A", "target": "B", "connections": [{"feature": "works_at", "value": "2019", "count": 1}]},
    {"source": "B", "target": "C", "weight": 0.5}
  ],
  "components": [{"id": "c1", "nodes": ["A", "B", "C"]}],
  "table": [{"entry": "r1", "values": {"title": "first"}}, {"entry": "r2"}],
  "meta": {"anchor_properties": ["label"]}
}`

func TestDecode(t *testing.T) {
	snap, err := Decode(strings.NewReader(pathSnapshot))
	require.NoError(t, err)

	require.Len(t, snap.Nodes, 3)
	assert.Equal(t, "Alice", snap.Nodes[0].Label)
	assert.Equal(t, float64(41), snap.Nodes[0].Properties["age"])
	assert.Equal(t, []string{"A"}, snap.Nodes[1].Neighbours)
	require.Len(t, snap.Links, 2)
	assert.Equal(t, "works_at", snap.Links[0].Connections[0].Feature)
	assert.Equal(t, 0.5, snap.Links[1].Weight)
	assert.Equal(t, []string{"label"}, snap.Meta.AnchorProperties)
	assert.Len(t, snap.Table, 2)

	e := graph.NewEngine(graph.ViewOverview, graph.Options{DisableMetrics: true}, nil)
	report := e.Load(*snap)
	assert.Empty(t, report.Issues)
	assert.Equal(t, []string{"A", "B", "C"}, e.Result().VisibleNodes)
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"not json", "nodes: []"},
		{"wrong shape", `{"nodes": {"id": "A"}}`},
		{"links without nodes", `{"links": [{"source": "A", "target": "B"}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.input))
			assert.Error(t, err)
		})
	}
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "net.json")
	require.NoError(t, os.WriteFile(path, []byte(pathSnapshot), 0644))

	snap, err := ReadFile(path)
	require.NoError(t, err)
	assert.Len(t, snap.Nodes, 3)

	_, err = ReadFile(filepath.Join(dir, "missing.json"))
	assert.True(t, errors.IsNotFoundError(err))
}

func TestEncodeRoundTrip(t *testing.T) {
	snap, err := Decode(strings.NewReader(pathSnapshot))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, snap))

	again, err := Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, snap.Nodes, again.Nodes)
}
