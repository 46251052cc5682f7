package graph_test

import (
	"fmt"
	"testing"

	"github.com/teranos/netlens/graph"
	netlenstest "github.com/teranos/netlens/internal/testing"
	"go.uber.org/zap"
	"pgregory.net/rapid"
)

// randomSnapshot draws a small graph with random links, entries and components.
func randomSnapshot(t *rapid.T) graph.Snapshot {
	n := rapid.IntRange(1, 12).Draw(t, "nodes")
	b := netlenstest.NewSnapshot()
	for i := 0; i < n; i++ {
		entry := fmt.Sprintf("e%d", rapid.IntRange(0, 4).Draw(t, "entry"))
		b.NodeWithEntries(fmt.Sprintf("n%d", i), rapid.SampledFrom([]string{"", "a", "b"}).Draw(t, "feature"), entry)
		if rapid.Bool().Draw(t, "hasComponent") {
			b.InComponent(rapid.SampledFrom([]string{"c1", "c2"}).Draw(t, "component"))
		}
	}
	links := rapid.IntRange(0, n*2).Draw(t, "links")
	for i := 0; i < links; i++ {
		src := rapid.IntRange(0, n-1).Draw(t, "src")
		dst := rapid.IntRange(0, n-1).Draw(t, "dst")
		b.Link(fmt.Sprintf("n%d", src), fmt.Sprintf("n%d", dst))
	}
	return b.RowsForNodes().Build()
}

func drawMode(t *rapid.T, ids []string) graph.Mode {
	id := rapid.SampledFrom(ids).Draw(t, "origin")
	switch rapid.IntRange(0, 10).Draw(t, "mode") {
	case 0:
		return graph.None{}
	case 1:
		return graph.Direct{Origin: id}
	case 2:
		return graph.Union{}
	case 3:
		return graph.Intersection{Threshold: rapid.IntRange(0, 3).Draw(t, "threshold")}
	case 4:
		return graph.OriginIntersection{}
	case 5:
		return graph.OnlySelected{}
	case 6:
		return graph.SameEntry{Origin: id}
	case 7:
		return graph.SelectedComponent{Components: []string{"c1"}}
	case 8:
		return graph.ChartFilter{Property: "feature", Value: "a"}
	case 9:
		lo := rapid.IntRange(-1, 4).Draw(t, "min")
		return graph.DegreeFilter{Min: float64(lo), Max: float64(lo + rapid.IntRange(-1, 3).Draw(t, "width"))}
	default:
		return graph.Neighbours{Origin: id, Depth: rapid.IntRange(0, 4).Draw(t, "depth")}
	}
}

type ruleChecker struct {
	t *rapid.T
}

func (c ruleChecker) check(e *graph.Engine) {
	d := e.Dataset()
	for _, l := range d.Links() {
		src, dst := d.Endpoints(l)
		if l.Visible != (src.Visible && dst.Visible) {
			c.t.Fatalf("link %s-%s visible=%v with endpoints %v/%v", src.ID, dst.ID, l.Visible, src.Visible, dst.Visible)
		}
	}
	for _, comp := range d.Components() {
		if comp.IsSelected != (comp.SelectedNodesCount == len(comp.Nodes)) {
			c.t.Fatalf("component %s selected=%v with %d/%d", comp.ID, comp.IsSelected, comp.SelectedNodesCount, len(comp.Nodes))
		}
	}
	entries := make(map[string]bool)
	for _, n := range d.Nodes() {
		if n.Visible {
			for _, en := range n.Entries {
				entries[en] = true
			}
		}
	}
	for _, r := range d.ActiveTableData() {
		if !entries[r.Entry] {
			c.t.Fatalf("row %s is active but no visible node carries it", r.Entry)
		}
	}
	if len(d.SelectedNodes()) == 0 && e.Mode().Kind() != graph.KindNone {
		switch e.Mode().(type) {
		case graph.Union, graph.Intersection, graph.OriginIntersection, graph.OnlySelected:
			c.t.Fatalf("mode %s active with an empty selection", e.Mode().Kind())
		}
	}
}

func TestEngineInvariantsHold(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		snap := randomSnapshot(t)
		e := graph.NewEngine(graph.ViewOverview, graph.Options{DisableMetrics: true}, zap.NewNop().Sugar())
		e.Load(snap)
		checker := ruleChecker{t: t}
		checker.check(e)

		ids := make([]string, 0, len(snap.Nodes))
		for _, n := range snap.Nodes {
			ids = append(ids, n.ID)
		}

		steps := rapid.IntRange(1, 20).Draw(t, "steps")
		for i := 0; i < steps; i++ {
			id := rapid.SampledFrom(ids).Draw(t, "id")
			switch rapid.IntRange(0, 5).Draw(t, "op") {
			case 0:
				e.SelectNodes(id)
			case 1:
				e.DeselectNode(id)
			case 2:
				e.ToggleComponent(rapid.SampledFrom([]string{"c1", "c2"}).Draw(t, "component"))
			case 3:
				n, _ := e.Dataset().Node(id)
				e.SelectComponent(n.Component)
			default:
				_, _ = e.Apply(drawMode(t, ids))
			}
			checker.check(e)
		}
	})
}

func TestResetIsBaseline(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		snap := randomSnapshot(t)
		e := graph.NewEngine(graph.ViewOverview, graph.Options{DisableMetrics: true}, zap.NewNop().Sugar())
		e.Load(snap)
		baseline := e.Result()

		ids := e.Dataset().VisibleNodeIDs()
		if len(ids) == 0 {
			return
		}
		e.SelectNodes(rapid.SampledFrom(ids).Draw(t, "selected"))
		_, _ = e.Apply(drawMode(t, ids))

		res := e.Reset()
		if fmt.Sprint(res.VisibleNodes) != fmt.Sprint(baseline.VisibleNodes) {
			t.Fatalf("reset shows %v, baseline was %v", res.VisibleNodes, baseline.VisibleNodes)
		}
		if res.ActiveRows != baseline.ActiveRows {
			t.Fatalf("reset has %d active rows, baseline had %d", res.ActiveRows, baseline.ActiveRows)
		}
	})
}

func TestUnionContainsIntersectionForAnySelection(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		snap := randomSnapshot(t)
		e := graph.NewEngine(graph.ViewOverview, graph.Options{DisableMetrics: true}, zap.NewNop().Sugar())
		e.Load(snap)

		for _, n := range snap.Nodes {
			if rapid.Bool().Draw(t, "select") {
				e.SelectNodes(n.ID)
			}
		}
		if len(e.Dataset().SelectedNodes()) == 0 {
			return
		}

		union, err := e.Apply(graph.Union{})
		if err != nil {
			t.Fatal(err)
		}
		inter, err := e.Apply(graph.Intersection{Threshold: rapid.IntRange(0, 3).Draw(t, "threshold")})
		if err != nil {
			t.Fatal(err)
		}
		inUnion := make(map[string]bool)
		for _, id := range union.VisibleNodes {
			inUnion[id] = true
		}
		for _, id := range inter.VisibleNodes {
			if !inUnion[id] {
				t.Fatalf("%s visible in INTERSECTION but not in UNION", id)
			}
		}
	})
}

func TestDirectShowsExactlyOriginAndNeighbours(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		snap := randomSnapshot(t)
		e := graph.NewEngine(graph.ViewOverview, graph.Options{DisableMetrics: true}, zap.NewNop().Sugar())
		e.Load(snap)

		nodes := e.Dataset().Nodes()
		origin := rapid.SampledFrom(nodes).Draw(t, "origin")
		res, err := e.Apply(graph.Direct{Origin: origin.ID})
		if err != nil {
			t.Fatal(err)
		}

		want := map[string]bool{origin.ID: true}
		for _, id := range e.Dataset().NeighbourIDs(origin) {
			want[id] = true
		}
		if len(res.VisibleNodes) != len(want) {
			t.Fatalf("DIRECT shows %v, want %v", res.VisibleNodes, want)
		}
		for _, id := range res.VisibleNodes {
			if !want[id] {
				t.Fatalf("%s visible but not origin or neighbour", id)
			}
		}
	})
}

// sameEntryClosure grows start along links until no neighbour of the set
// shares an entry with it, rescanning every link each round.
func sameEntryClosure(d *graph.Dataset, start string) map[string]bool {
	in := map[string]bool{start: true}
	entries := make(map[string]bool)
	addEntries := func(id string) {
		n, _ := d.Node(id)
		for _, en := range n.Entries {
			entries[en] = true
		}
	}
	addEntries(start)

	for changed := true; changed; {
		changed = false
		for _, n := range d.Nodes() {
			if !in[n.ID] {
				continue
			}
			for _, id := range d.NeighbourIDs(n) {
				if in[id] {
					continue
				}
				m, _ := d.Node(id)
				for _, en := range m.Entries {
					if entries[en] {
						in[id] = true
						addEntries(id)
						changed = true
						break
					}
				}
			}
		}
	}
	return in
}

func TestSameEntryIsClosure(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		snap := randomSnapshot(t)
		e := graph.NewEngine(graph.ViewOverview, graph.Options{DisableMetrics: true}, zap.NewNop().Sugar())
		e.Load(snap)

		origin := rapid.SampledFrom(e.Dataset().Nodes()).Draw(t, "origin")
		res, err := e.Apply(graph.SameEntry{Origin: origin.ID})
		if err != nil {
			t.Fatal(err)
		}

		want := sameEntryClosure(e.Dataset(), origin.ID)
		if len(res.VisibleNodes) != len(want) {
			t.Fatalf("SAME_ENTRY shows %v, closure is %v", res.VisibleNodes, want)
		}
		for _, id := range res.VisibleNodes {
			if !want[id] {
				t.Fatalf("%s visible but outside the closure %v", id, want)
			}
		}
	})
}
