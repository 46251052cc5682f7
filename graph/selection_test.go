package graph_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teranos/netlens/graph"
	netlenstest "github.com/teranos/netlens/internal/testing"
)

func TestComponentFullySelected(t *testing.T) {
	e := netlenstest.NewEngine(t, netlenstest.TwoComponents(), graph.Options{})
	d := e.Dataset()

	assert.Equal(t, 3, e.SelectNodes("x1", "x2", "x3"))
	x, ok := d.Component("X")
	require.True(t, ok)
	assert.True(t, x.IsSelected)
	assert.Equal(t, 3, x.SelectedNodesCount)
	assert.Equal(t, []string{"X"}, d.SelectedComponents())

	assert.True(t, e.DeselectNode("x2"))
	assert.False(t, x.IsSelected)
	assert.Equal(t, 2, x.SelectedNodesCount)
	assert.NotContains(t, d.SelectedComponents(), "X")
	netlenstest.AssertComponentCounters(t, d)
}

func TestSelectNodesKeepsOrder(t *testing.T) {
	e := netlenstest.NewEngine(t, netlenstest.TwoComponents(), graph.Options{})

	assert.Equal(t, 2, e.SelectNodes("y2", "x1", "ghost"))
	assert.Equal(t, 0, e.SelectNodes("x1"))

	var ids []string
	for _, n := range e.Dataset().SelectedNodes() {
		ids = append(ids, n.ID)
	}
	assert.Equal(t, []string{"y2", "x1"}, ids)
}

func TestToggleNodeSelection(t *testing.T) {
	e := netlenstest.NewEngine(t, netlenstest.Path(), graph.Options{})

	assert.True(t, e.ToggleNodeSelection("A", true))
	assert.True(t, e.ToggleNodeSelection("A", false))
	assert.True(t, e.Dataset().IsSelected("A"))
	assert.False(t, e.ToggleNodeSelection("A", true))
	assert.False(t, e.Dataset().IsSelected("A"))
	assert.False(t, e.ToggleNodeSelection("missing", true))
}

func TestSelectComponentToggles(t *testing.T) {
	e := netlenstest.NewEngine(t, netlenstest.TwoComponents(), graph.Options{})
	d := e.Dataset()
	e.SelectNodes("x2")

	assert.True(t, e.SelectComponent("X"))
	assert.Len(t, d.SelectedNodes(), 3)
	netlenstest.AssertComponentCounters(t, d)

	assert.False(t, e.SelectComponent("X"))
	assert.Empty(t, d.SelectedNodes())
	assert.Empty(t, d.SelectedComponents())
	netlenstest.AssertComponentCounters(t, d)

	assert.False(t, e.SelectComponent("nope"))
}

func TestDeselectClearsPin(t *testing.T) {
	e := netlenstest.NewEngine(t, netlenstest.Path(), graph.Options{})
	assert.False(t, e.SetPinned("A", true))

	e.SelectNodes("A")
	require.True(t, e.SetPinned("A", true))
	a, _ := e.Dataset().Node("A")
	assert.True(t, a.Pinned)

	e.DeselectNode("A")
	assert.False(t, a.Pinned)
}

func TestDeselectLastNodeResets(t *testing.T) {
	modes := []graph.Mode{
		graph.Union{},
		graph.Intersection{},
		graph.OnlySelected{},
		graph.SameEntry{},
		graph.Direct{Origin: "B"},
		graph.Neighbours{Origin: "B", Depth: 1},
		graph.DegreeFilter{Min: 2, Max: 2},
	}
	for _, m := range modes {
		t.Run(m.Kind().String(), func(t *testing.T) {
			e := netlenstest.NewEngine(t, netlenstest.Path(), graph.Options{})
			baseline := e.Result()
			e.SelectNodes("B")

			_, err := e.Apply(m)
			require.NoError(t, err)
			require.Equal(t, m.Kind(), e.Mode().Kind())

			e.DeselectNode("B")
			assert.Equal(t, graph.KindNone, e.Mode().Kind())
			assert.Equal(t, baseline.VisibleNodes, e.Result().VisibleNodes)
		})
	}
}

func TestDeselectOriginResets(t *testing.T) {
	e := netlenstest.NewEngine(t, netlenstest.Path(), graph.Options{})
	e.SelectNodes("C")

	_, err := e.Apply(graph.Direct{Origin: "A"})
	require.NoError(t, err)
	require.True(t, e.Dataset().IsSelected("A"))

	e.DeselectNode("C")
	assert.Equal(t, graph.KindDirect, e.Mode().Kind())

	e.DeselectNode("A")
	assert.Equal(t, graph.KindNone, e.Mode().Kind())
}

func TestSelectionDrivenModesFollowSelection(t *testing.T) {
	e := netlenstest.NewEngine(t, netlenstest.Path(), graph.Options{})
	e.SelectNodes("A")

	res, err := e.Apply(graph.OnlySelected{})
	require.NoError(t, err)
	assert.Equal(t, []string{"A"}, res.VisibleNodes)
	assert.Len(t, e.Dataset().ActiveTableData(), 1)

	e.SelectNodes("C")
	assert.Equal(t, []string{"A", "C"}, e.Result().VisibleNodes)
	assert.Len(t, e.Dataset().ActiveTableData(), 2)

	e.DeselectNode("A")
	assert.Equal(t, graph.KindOnlySelected, e.Mode().Kind())
	assert.Equal(t, []string{"C"}, e.Result().VisibleNodes)
}

func TestOnlySelectedTableProjection(t *testing.T) {
	snap := netlenstest.NewSnapshot().
		NodeWithEntries("A", "", "r1", "r2").
		NodeWithEntries("B", "", "r2", "r3").
		Link("A", "B").
		Row("r1").Row("r2").Row("r3").Row("r4").
		Build()
	e := netlenstest.NewEngine(t, snap, graph.Options{})

	entries := func() []string {
		var out []string
		for _, r := range e.Dataset().ActiveTableData() {
			out = append(out, r.Entry)
		}
		return out
	}
	assert.Equal(t, []string{"r1", "r2", "r3"}, entries())

	e.SelectNodes("A")
	_, err := e.Apply(graph.Union{})
	require.NoError(t, err)
	assert.Equal(t, []string{"r1", "r2", "r3"}, entries())

	_, err = e.Apply(graph.OnlySelected{})
	require.NoError(t, err)
	assert.Equal(t, []string{"r1", "r2"}, entries())
	assert.Len(t, e.Dataset().TableData(), 4)
}

func TestToggleComponent(t *testing.T) {
	camera := &netlenstest.RecordingCamera{}
	e := netlenstest.NewEngine(t, netlenstest.TwoComponents(), graph.Options{Camera: camera})
	e.SelectNodes("x1")

	res := e.ToggleComponent("Y")
	assert.Equal(t, []string{"y1", "y2"}, res.VisibleNodes)
	assert.Empty(t, e.Dataset().SelectedNodes())
	assert.Equal(t, []string{"Y"}, e.ActiveComponents())
	netlenstest.AssertLinkConsistency(t, e.Dataset())

	res = e.ToggleComponent("X")
	assert.Equal(t, []string{"x1", "x2", "x3", "y1", "y2"}, res.VisibleNodes)
	assert.Equal(t, []string{"X", "Y"}, e.ActiveComponents())

	res = e.ToggleComponent("Y")
	assert.Equal(t, []string{"x1", "x2", "x3"}, res.VisibleNodes)
	assert.Len(t, e.Dataset().ActiveTableData(), 3)

	res = e.ToggleComponent("X")
	assert.Empty(t, e.ActiveComponents())
	assert.Len(t, res.VisibleNodes, 5)

	require.Len(t, camera.Calls, 4)
	assert.Equal(t, []string{"y1", "y2"}, camera.Calls[0])
}

func TestToggleComponentOnlyOrphans(t *testing.T) {
	camera := &netlenstest.RecordingCamera{}
	e := netlenstest.NewEngine(t, netlenstest.TwoComponents(), graph.Options{Camera: camera})

	res := e.ToggleComponent("Z")
	assert.True(t, res.Empty())
	assert.Empty(t, camera.Calls)

	res = e.ClearComponents()
	assert.Len(t, res.VisibleNodes, 5)
	assert.Len(t, camera.Calls, 1)
}

func TestModeClearsComponentIsolation(t *testing.T) {
	e := netlenstest.NewEngine(t, netlenstest.TwoComponents(), graph.Options{})
	e.ToggleComponent("Y")

	_, err := e.Apply(graph.Direct{Origin: "x1"})
	require.NoError(t, err)
	assert.Empty(t, e.ActiveComponents())

	res := e.Reset()
	assert.Len(t, res.VisibleNodes, 5)
}

func TestAccessorSlicesAreCopies(t *testing.T) {
	e := netlenstest.NewEngine(t, netlenstest.TwoComponents(), graph.Options{})
	d := e.Dataset()
	e.SelectNodes("y1", "y2")

	nodes := d.Nodes()
	nodes[0] = nil
	require.NotNil(t, d.Nodes()[0])

	comps := d.Components()
	comps[0] = nil
	require.NotNil(t, d.Components()[0])

	selected := d.SelectedComponents()
	selected[0] = "X"
	assert.Equal(t, []string{"Y"}, d.SelectedComponents())

	rows := d.ActiveTableData()
	rows[0].Entry = "rewritten"
	assert.NotEqual(t, "rewritten", d.ActiveTableData()[0].Entry)
	netlenstest.AssertComponentCounters(t, d)
}
