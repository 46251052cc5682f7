package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func loadTestDataset(t *testing.T, snap Snapshot) (*Dataset, LoadReport) {
	t.Helper()
	d := NewDataset(ViewOverview, zap.NewNop().Sugar())
	report := d.Load(snap)
	return d, report
}

func TestBuildComponentsPrecedence(t *testing.T) {
	snap := Snapshot{
		Nodes: []RawNode{
			{ID: "a", Component: "own", Entries: []string{"e1"}},
			{ID: "b", Entries: []string{"e2"}},
			{ID: "c", Entries: []string{"e3"}},
			{ID: "d"},
			{ID: "e"},
			{ID: "f"},
		},
		Links: []RawLink{
			{Source: "a", Target: "b"},
			{Source: "d", Target: "e"},
		},
		Components: []RawComponent{
			{ID: "listed", Nodes: []string{"a", "b", "ghost"}, Entries: []string{"custom"}},
			{ID: "vacant"},
		},
	}
	d, report := loadTestDataset(t, snap)

	a, _ := d.Node("a")
	b, _ := d.Node("b")
	assert.Equal(t, "own", a.Component)
	assert.Equal(t, "listed", b.Component)

	d1, _ := d.Node("d")
	e1, _ := d.Node("e")
	f, _ := d.Node("f")
	assert.Equal(t, d1.Component, e1.Component)
	assert.NotEqual(t, d1.Component, f.Component)
	assert.Equal(t, 3, report.DerivedComponents)

	_, ok := d.Component("vacant")
	assert.False(t, ok)

	listed, ok := d.Component("listed")
	require.True(t, ok)
	assert.Equal(t, []string{"custom"}, listed.Entries)

	own, ok := d.Component("own")
	require.True(t, ok)
	assert.Equal(t, []string{"e1"}, own.Entries)
	require.Len(t, report.Issues, 1)
	assert.Equal(t, "unknown_node", report.Issues[0].Subcategory)

	// Links inherit the component of their source node
	assert.Equal(t, "own", d.Links()[0].Component)
}

func TestDeriveComponents(t *testing.T) {
	snap := Snapshot{
		Nodes: []RawNode{{ID: "p"}, {ID: "q"}, {ID: "r"}, {ID: "s"}},
		Links: []RawLink{{Source: "s", Target: "q"}, {Source: "p", Target: "r"}},
	}
	d, _ := loadTestDataset(t, snap)

	groups := DeriveComponents(d.nodes)
	assert.Equal(t, [][]int{{0, 2}, {1, 3}}, groups)

	p, _ := d.Node("p")
	q, _ := d.Node("q")
	assert.Equal(t, "cc-0", p.Component)
	assert.Equal(t, "cc-1", q.Component)
}

func TestNeighbourLevelsErrors(t *testing.T) {
	d, _ := loadTestDataset(t, Snapshot{Nodes: []RawNode{{ID: "solo"}}})

	_, err := d.NeighbourLevels("missing", 2, "")
	assert.Error(t, err)

	_, err = d.NeighbourLevels("solo", 0, "")
	assert.Error(t, err)

	levels, err := d.NeighbourLevels("solo", 3, "")
	require.NoError(t, err)
	assert.Empty(t, levels)
}

func TestValueMatches(t *testing.T) {
	tests := []struct {
		name     string
		resolved interface{}
		want     interface{}
		match    bool
	}{
		{"equal strings", "org", "org", true},
		{"different strings", "org", "person", false},
		{"int against string", 3, "3", true},
		{"float against int", 2.0, 2, true},
		{"list element", []string{"x", "y"}, "y", true},
		{"list without element", []string{"x"}, "y", false},
		{"interface list", []interface{}{1, "two"}, "two", true},
		{"nil resolved", nil, "x", false},
		{"non-numeric string against number", "abc", 3, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.match, valueMatches(tt.resolved, tt.want))
		})
	}
}

func TestCollectFeatureInfo(t *testing.T) {
	d, _ := loadTestDataset(t, Snapshot{Nodes: []RawNode{
		{ID: "1", Feature: "org"},
		{ID: "2", Feature: "person"},
		{ID: "3", Feature: "person"},
		{ID: "4"},
	}})
	meta := d.Meta()

	require.Len(t, meta.Features, 3)
	assert.Equal(t, "person", meta.Features[0].Feature)
	assert.Equal(t, 2, meta.Features[0].Count)
	assert.Equal(t, featurePalette[0], meta.Features[0].Color)

	color, ok := meta.FeatureColor("")
	require.True(t, ok)
	assert.Equal(t, defaultUntypedColor, color)

	_, ok = meta.FeatureColor("robot")
	assert.False(t, ok)
}
