package testing

import (
	"fmt"
	"testing"

	"github.com/teranos/netlens/graph"
	"go.uber.org/zap"
)

// Builder assembles a graph.Snapshot for tests.
type Builder struct {
	snap graph.Snapshot
}

// NewSnapshot starts an empty snapshot.
func NewSnapshot() *Builder {
	return &Builder{}
}

// Node adds a node whose only entry is "e-<id>".
func (b *Builder) Node(id, feature string) *Builder {
	return b.NodeWithEntries(id, feature, "e-"+id)
}

// NodeWithEntries adds a node with explicit entries.
func (b *Builder) NodeWithEntries(id, feature string, entries ...string) *Builder {
	b.snap.Nodes = append(b.snap.Nodes, graph.RawNode{
		ID:      id,
		Label:   id,
		Feature: feature,
		Entries: entries,
	})
	return b
}

// Property sets a property on the most recently added node.
func (b *Builder) Property(key string, value interface{}) *Builder {
	n := &b.snap.Nodes[len(b.snap.Nodes)-1]
	if n.Properties == nil {
		n.Properties = make(map[string]interface{})
	}
	n.Properties[key] = value
	return b
}

// InComponent sets the component of the most recently added node.
func (b *Builder) InComponent(id string) *Builder {
	b.snap.Nodes[len(b.snap.Nodes)-1].Component = id
	return b
}

// Link adds an undirected link.
func (b *Builder) Link(source, target string, connections ...graph.Connection) *Builder {
	b.snap.Links = append(b.snap.Links, graph.RawLink{
		Source:      source,
		Target:      target,
		Connections: connections,
	})
	return b
}

// Row adds a table row for entry.
func (b *Builder) Row(entry string) *Builder {
	b.snap.Table = append(b.snap.Table, graph.Row{
		Entry:  entry,
		Values: map[string]interface{}{"entry": entry},
	})
	return b
}

// RowsForNodes adds one row per node entry, in node order.
func (b *Builder) RowsForNodes() *Builder {
	for _, n := range b.snap.Nodes {
		for _, e := range n.Entries {
			b.Row(e)
		}
	}
	return b
}

// Build returns the snapshot.
func (b *Builder) Build() graph.Snapshot {
	return b.snap
}

// Path returns the chain A–B–C used by the selection scenarios: A-B and B-C
// linked, A and C not linked.
func Path() graph.Snapshot {
	return NewSnapshot().
		Node("A", "person").
		Node("B", "org").
		Node("C", "person").
		Link("A", "B").
		Link("B", "C").
		RowsForNodes().
		Build()
}

// DegreeLadder returns a graph whose five "n" nodes have degrees 1 to 5.
// Helper leaves pad the degrees; all nodes live in component "ladder".
func DegreeLadder() graph.Snapshot {
	b := NewSnapshot()
	for i := 1; i <= 5; i++ {
		b.Node(fmt.Sprintf("n%d", i), "hub").InComponent("ladder")
	}
	leaf := 0
	for i := 1; i <= 5; i++ {
		for k := 0; k < i; k++ {
			id := fmt.Sprintf("leaf%d", leaf)
			leaf++
			b.Node(id, "leaf").InComponent("ladder")
			b.Link(fmt.Sprintf("n%d", i), id)
		}
	}
	return b.RowsForNodes().Build()
}

// TwoComponents returns component X (x1-x2-x3 fully linked) and component Y
// (y1-y2), plus one orphan.
func TwoComponents() graph.Snapshot {
	return NewSnapshot().
		Node("x1", "a").InComponent("X").
		Node("x2", "a").InComponent("X").
		Node("x3", "b").InComponent("X").
		Node("y1", "a").InComponent("Y").
		Node("y2", "b").InComponent("Y").
		Node("lonely", "b").InComponent("Z").
		Link("x1", "x2").
		Link("x2", "x3").
		Link("x1", "x3").
		Link("y1", "y2").
		RowsForNodes().
		Build()
}

// NewEngine returns an overview engine with snap loaded, metrics disabled and
// a no-op logger.
func NewEngine(t *testing.T, snap graph.Snapshot, opts graph.Options) *graph.Engine {
	t.Helper()
	opts.DisableMetrics = true
	e := graph.NewEngine(graph.ViewOverview, opts, zap.NewNop().Sugar())
	e.Load(snap)
	return e
}

// RecordingCamera records every Recenter call.
type RecordingCamera struct {
	Calls [][]string
}

func (c *RecordingCamera) Recenter(nodeIDs []string) {
	c.Calls = append(c.Calls, append([]string(nil), nodeIDs...))
}

// AssertLinkConsistency fails t if any link's visibility differs from the
// visibility of its endpoints.
func AssertLinkConsistency(t *testing.T, d *graph.Dataset) {
	t.Helper()
	for _, l := range d.Links() {
		src, dst := d.Endpoints(l)
		if l.Visible != (src.Visible && dst.Visible) {
			t.Errorf("link %s-%s visible=%v, endpoints %v/%v", src.ID, dst.ID, l.Visible, src.Visible, dst.Visible)
		}
	}
}

// AssertComponentCounters fails t if a component's counters disagree with
// its nodes' selection flags.
func AssertComponentCounters(t *testing.T, d *graph.Dataset) {
	t.Helper()
	for _, c := range d.Components() {
		selected := 0
		for _, i := range c.Nodes {
			if d.NodeAt(i).Selected {
				selected++
			}
		}
		if c.SelectedNodesCount != selected {
			t.Errorf("component %s: SelectedNodesCount = %d, want %d", c.ID, c.SelectedNodesCount, selected)
		}
		if c.IsSelected != (selected == len(c.Nodes)) {
			t.Errorf("component %s: IsSelected = %v with %d/%d selected", c.ID, c.IsSelected, selected, len(c.Nodes))
		}
	}
}
