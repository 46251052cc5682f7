package graph

import (
	"slices"
	"sort"
	"time"

	"github.com/google/uuid"
	grapherr "github.com/teranos/netlens/graph/error"
	"github.com/teranos/netlens/logger"
	"github.com/teranos/netlens/metrics"
	"go.uber.org/zap"
)

// Dataset is the single source of truth for one loaded network view.
//
// Nodes, links and components are stored in arenas and cross-reference each
// other by index. A Dataset is replaced wholesale by Load; between loads only
// the visibility and selection state changes, and only through Engine.
//
// Accessors return the arena's own *Node, *Link and *Component values so
// renderers can read the current state without copying. Callers must treat
// them as read-only: writing Visible, Selected, Pinned or the component
// counters directly desynchronises the selection list and the active rows.
// Use the Engine methods instead.
type Dataset struct {
	view       View
	generation uuid.UUID

	nodes      []*Node
	links      []*Link
	components []*Component

	nodeIndex      map[string]int
	componentIndex map[string]int

	selectedNodes      []int    // selection order; the first entry is the implicit origin
	selectedComponents []string // fully selected component ids, in completion order

	tableData       []Row
	activeTableData []Row

	meta           Meta
	orphansVisible bool

	logger *zap.SugaredLogger
}

// LoadReport summarises a Load. Integrity problems never fail a load; the
// offending references are dropped and listed in Issues.
type LoadReport struct {
	Generation        uuid.UUID
	Nodes             int
	Links             int
	Components        int
	Rows              int
	DroppedNodes      int
	DroppedLinks      int
	DroppedNeighbours int
	DerivedComponents int
	UnmatchedRows     int // rows kept but never active: no node carries their entry
	Issues            []*grapherr.GraphError
}

// NewDataset creates an empty dataset for view.
func NewDataset(view View, log *zap.SugaredLogger) *Dataset {
	if log == nil {
		log = logger.Logger
	}
	return &Dataset{
		view:           view,
		nodeIndex:      make(map[string]int),
		componentIndex: make(map[string]int),
		logger:         log.Named("graph.dataset"),
	}
}

// View returns the view this dataset belongs to.
func (d *Dataset) View() View { return d.view }

// Generation identifies the current load. It changes on every Load.
func (d *Dataset) Generation() uuid.UUID { return d.generation }

// OrphansVisible reports whether degree-0 nodes are part of the baseline view.
func (d *Dataset) OrphansVisible() bool { return d.orphansVisible }

// Load replaces the dataset contents with snap. Every node starts unselected
// and visible unless it is an orphan while orphans are hidden; selection is
// cleared.
func (d *Dataset) Load(snap Snapshot) LoadReport {
	d.generation = uuid.New()
	d.nodes = make([]*Node, 0, len(snap.Nodes))
	d.links = make([]*Link, 0, len(snap.Links))
	d.components = nil
	d.nodeIndex = make(map[string]int, len(snap.Nodes))
	d.componentIndex = make(map[string]int)
	d.selectedNodes = nil
	d.selectedComponents = nil

	report := LoadReport{Generation: d.generation}

	for _, raw := range snap.Nodes {
		if _, dup := d.nodeIndex[raw.ID]; dup || raw.ID == "" {
			report.DroppedNodes++
			report.Issues = append(report.Issues,
				grapherr.Integrity(grapherr.SubcategoryDuplicateNode, "node %q is empty or duplicated", raw.ID).
					WithContext(logger.FieldNodeID, raw.ID))
			continue
		}
		n := &Node{
			Index:        len(d.nodes),
			ID:           raw.ID,
			Label:        raw.Label,
			Feature:      raw.Feature,
			Entries:      slices.Clone(raw.Entries),
			Component:    raw.Component,
			Properties:   raw.Properties,
			neighbourIDs: make(map[string]struct{}, len(raw.Neighbours)),
		}
		for _, id := range raw.Neighbours {
			n.neighbourIDs[id] = struct{}{}
		}
		d.nodeIndex[n.ID] = n.Index
		d.nodes = append(d.nodes, n)
	}

	for _, raw := range snap.Links {
		src, okSrc := d.nodeIndex[raw.Source]
		dst, okDst := d.nodeIndex[raw.Target]
		if !okSrc || !okDst {
			report.DroppedLinks++
			report.Issues = append(report.Issues,
				grapherr.Integrity(grapherr.SubcategoryDanglingLink, "link %s->%s references an unknown node", raw.Source, raw.Target).
					WithContext("source", raw.Source).
					WithContext("target", raw.Target))
			continue
		}
		l := &Link{
			Index:       len(d.links),
			Source:      src,
			Target:      dst,
			Component:   raw.Component,
			Connections: slices.Clone(raw.Connections),
			Weight:      raw.Weight,
			Properties:  raw.Properties,
		}
		d.links = append(d.links, l)
		if src != dst {
			d.nodes[src].neighbourIDs[raw.Target] = struct{}{}
			d.nodes[dst].neighbourIDs[raw.Source] = struct{}{}
		}
	}

	neighbourIssues := d.ResolveNeighbourObjects()
	report.DroppedNeighbours = len(neighbourIssues)
	report.Issues = append(report.Issues, neighbourIssues...)

	derived, componentIssues := d.buildComponents(snap.Components)
	report.DerivedComponents = derived
	report.Issues = append(report.Issues, componentIssues...)

	for _, l := range d.links {
		if l.Component == "" {
			l.Component = d.nodes[l.Source].Component
		}
	}

	d.tableData = slices.Clone(snap.Table)
	rowIssues := d.unmatchedRows()
	report.UnmatchedRows = len(rowIssues)
	report.Issues = append(report.Issues, rowIssues...)

	d.meta = Meta{
		AnchorProperties: slices.Clone(snap.Meta.AnchorProperties),
		Extra:            snap.Meta.Extra,
		Features:         collectFeatureInfo(d.nodes),
		LoadedAt:         time.Now(),
	}
	for _, n := range d.nodes {
		if n.Degree() > d.meta.MaxDegree {
			d.meta.MaxDegree = n.Degree()
		}
	}

	visible := make([]bool, len(d.nodes))
	for i, n := range d.nodes {
		visible[i] = d.orphansVisible || !n.IsOrphan()
	}
	d.applyVisibility(visible, nil)
	d.projectTable(false)

	report.Nodes = len(d.nodes)
	report.Links = len(d.links)
	report.Components = len(d.components)
	report.Rows = len(d.tableData)

	for _, issue := range report.Issues {
		d.logger.Warnw("Dropped invalid reference on load", issue.ToLogFields()...)
		metrics.IntegrityIssues.WithLabelValues(issue.Subcategory).Inc()
	}
	d.logger.Infow("Dataset loaded",
		logger.FieldView, d.view,
		logger.FieldGeneration, d.generation.String(),
		logger.FieldNodes, report.Nodes,
		logger.FieldLinks, report.Links,
		logger.FieldComponents, report.Components,
		logger.FieldRows, report.Rows,
	)

	return report
}

// unmatchedRows reports table rows whose entry no node aggregates. Such rows
// stay in TableData but can never become active.
func (d *Dataset) unmatchedRows() []*grapherr.GraphError {
	known := make(map[string]struct{})
	for _, n := range d.nodes {
		for _, e := range n.Entries {
			known[e] = struct{}{}
		}
	}
	var issues []*grapherr.GraphError
	for _, row := range d.tableData {
		if _, ok := known[row.Entry]; ok {
			continue
		}
		issues = append(issues,
			grapherr.Integrity(grapherr.SubcategoryUnknownEntry, "row %q matches no node entry", row.Entry).
				WithContext("entry", row.Entry))
	}
	return issues
}

// ResolveNeighbourObjects turns every node's raw neighbour ids into sorted,
// symmetric arena indices. Ids missing from the node index are dropped and
// reported. It runs as part of Load and must be re-run after any structural
// change; visibility and selection changes never require it.
func (d *Dataset) ResolveNeighbourObjects() []*grapherr.GraphError {
	var issues []*grapherr.GraphError

	adj := make([]map[int]struct{}, len(d.nodes))
	for i := range d.nodes {
		adj[i] = make(map[int]struct{})
	}

	for _, n := range d.nodes {
		for id := range n.neighbourIDs {
			j, ok := d.nodeIndex[id]
			if !ok {
				issues = append(issues,
					grapherr.Integrity(grapherr.SubcategoryUnknownNode, "node %q lists unknown neighbour %q", n.ID, id).
						WithContext(logger.FieldNodeID, n.ID).
						WithContext("neighbour", id))
				continue
			}
			if j == n.Index {
				continue
			}
			adj[n.Index][j] = struct{}{}
			adj[j][n.Index] = struct{}{}
		}
	}

	for i, n := range d.nodes {
		n.neighbours = make([]int, 0, len(adj[i]))
		for j := range adj[i] {
			n.neighbours = append(n.neighbours, j)
		}
		sort.Ints(n.neighbours)
	}

	// Keep the raw id sets symmetric too so a later re-resolve is stable
	for _, n := range d.nodes {
		for _, j := range n.neighbours {
			d.nodes[j].neighbourIDs[n.ID] = struct{}{}
		}
	}

	return issues
}

// NeighbourObjects returns the neighbour nodes of n.
func (d *Dataset) NeighbourObjects(n *Node) []*Node {
	out := make([]*Node, 0, len(n.neighbours))
	for _, j := range n.neighbours {
		out = append(out, d.nodes[j])
	}
	return out
}

// NeighbourIDs returns the ids of n's neighbours in arena order.
func (d *Dataset) NeighbourIDs(n *Node) []string {
	out := make([]string, 0, len(n.neighbours))
	for _, j := range n.neighbours {
		out = append(out, d.nodes[j].ID)
	}
	return out
}

// Node looks up a node by id. The node is read-only for the caller.
func (d *Dataset) Node(id string) (*Node, bool) {
	i, ok := d.nodeIndex[id]
	if !ok {
		return nil, false
	}
	return d.nodes[i], true
}

// NodeAt returns the node stored at arena index i.
func (d *Dataset) NodeAt(i int) *Node { return d.nodes[i] }

// Nodes returns all nodes in arena order. The slice is a copy; the nodes are
// shared and read-only.
func (d *Dataset) Nodes() []*Node { return slices.Clone(d.nodes) }

// Links returns all links in load order. The links are shared and read-only.
func (d *Dataset) Links() []*Link { return slices.Clone(d.links) }

// Endpoints resolves a link's endpoints to nodes.
func (d *Dataset) Endpoints(l *Link) (source, target *Node) {
	return d.nodes[l.Source], d.nodes[l.Target]
}

// Components returns all components in load order. The components are
// shared and read-only; selection counters change only through Engine.
func (d *Dataset) Components() []*Component { return slices.Clone(d.components) }

// Component looks up a component by id. The component is read-only for the caller.
func (d *Dataset) Component(id string) (*Component, bool) {
	i, ok := d.componentIndex[id]
	if !ok {
		return nil, false
	}
	return d.components[i], true
}

// SelectedNodes returns the selected nodes in selection order.
func (d *Dataset) SelectedNodes() []*Node {
	out := make([]*Node, 0, len(d.selectedNodes))
	for _, i := range d.selectedNodes {
		out = append(out, d.nodes[i])
	}
	return out
}

// SelectedComponents returns the ids of fully selected components.
func (d *Dataset) SelectedComponents() []string { return slices.Clone(d.selectedComponents) }

// TableData returns the immutable row snapshot.
func (d *Dataset) TableData() []Row { return slices.Clone(d.tableData) }

// ActiveTableData returns the rows belonging to currently visible nodes.
func (d *Dataset) ActiveTableData() []Row { return slices.Clone(d.activeTableData) }

// Meta returns the dataset metadata.
func (d *Dataset) Meta() Meta { return d.meta }

// VisibleNodeIDs returns the ids of visible nodes in arena order.
func (d *Dataset) VisibleNodeIDs() []string {
	var ids []string
	for _, n := range d.nodes {
		if n.Visible {
			ids = append(ids, n.ID)
		}
	}
	return ids
}

// Stats counts the current visibility and selection state.
func (d *Dataset) Stats() Stats {
	s := Stats{
		TotalNodes:         len(d.nodes),
		TotalLinks:         len(d.links),
		Components:         len(d.components),
		SelectedNodes:      len(d.selectedNodes),
		SelectedComponents: len(d.selectedComponents),
		Rows:               len(d.tableData),
		ActiveRows:         len(d.activeTableData),
	}
	for _, n := range d.nodes {
		if n.Visible {
			s.VisibleNodes++
		}
	}
	for _, l := range d.links {
		if l.Visible {
			s.VisibleLinks++
		}
	}
	return s
}

// baselineVisible is the "show everything" visibility of a node: orphans
// only when enabled, and only nodes of active components when any are active.
func (d *Dataset) baselineVisible(n *Node, activeComponents map[string]struct{}) bool {
	if n.IsOrphan() && !d.orphansVisible {
		return false
	}
	if len(activeComponents) == 0 {
		return true
	}
	_, ok := activeComponents[n.Component]
	return ok
}

// applyVisibility writes node flags from visible and derives link flags: a
// link is visible only if both endpoints are, and, when keep is non-nil, keep
// accepts it.
func (d *Dataset) applyVisibility(visible []bool, keep func(*Link) bool) {
	for i, n := range d.nodes {
		n.Visible = visible[i]
	}
	for _, l := range d.links {
		l.Visible = visible[l.Source] && visible[l.Target] && (keep == nil || keep(l))
	}
}
