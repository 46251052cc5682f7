package graph

import (
	"math"

	grapherr "github.com/teranos/netlens/graph/error"
	"github.com/teranos/netlens/logger"
)

// plan is the outcome of evaluating a mode against the dataset. Evaluation
// never mutates; Apply commits a plan.
type plan struct {
	visible      []bool
	origin       int
	keep         func(*Link) bool // extra link rule on top of "both endpoints visible"
	onlySelected bool             // project only visible selected nodes into the table
	selectOrigin bool             // select the origin on commit
}

func (e *Engine) newPlan() *plan {
	return &plan{visible: make([]bool, len(e.ds.nodes)), origin: -1}
}

// evaluate computes the visible set of m from the unfiltered graph.
func (e *Engine) evaluate(m Mode) (*plan, error) {
	switch m := m.(type) {
	case None:
		return e.planBaseline(e.activeComponents), nil
	case Direct:
		return e.planDirect(m)
	case Union:
		return e.planUnion()
	case Intersection:
		return e.planIntersection(m)
	case OriginIntersection:
		return e.planOriginIntersection(m)
	case OnlySelected:
		return e.planOnlySelected()
	case SameEntry:
		return e.planSameEntry(m)
	case SelectedComponent:
		return e.planSelectedComponent(m), nil
	case ChartFilter:
		return e.planChart(m)
	case DegreeFilter:
		return e.planDegree(m)
	case Neighbours:
		return e.planNeighbours(m)
	default:
		return nil, grapherr.InvalidParameter(grapherr.SubcategoryUnknownMode, "unsupported mode %T", m)
	}
}

func (e *Engine) planBaseline(active map[string]struct{}) *plan {
	p := e.newPlan()
	for i, n := range e.ds.nodes {
		p.visible[i] = e.ds.baselineVisible(n, active)
	}
	return p
}

func (e *Engine) lookupOrigin(id string) (int, error) {
	i, ok := e.ds.nodeIndex[id]
	if !ok {
		return -1, grapherr.InvalidParameter(grapherr.SubcategoryMissingOrigin, "origin %q is not in the dataset", id).
			WithContext(logger.FieldOrigin, id)
	}
	return i, nil
}

func (e *Engine) requireSelection(kind ModeKind) ([]int, error) {
	if len(e.ds.selectedNodes) == 0 {
		return nil, grapherr.InvalidParameter(grapherr.SubcategoryEmptySelection, "%s requires at least one selected node", kind).
			WithContext(logger.FieldMode, kind.String())
	}
	return e.ds.selectedNodes, nil
}

// showWithNeighbours marks i and every neighbour of i visible.
func (e *Engine) showWithNeighbours(p *plan, i int) {
	p.visible[i] = true
	for _, j := range e.ds.nodes[i].neighbours {
		p.visible[j] = true
	}
}

func (e *Engine) planDirect(m Direct) (*plan, error) {
	o, err := e.lookupOrigin(m.Origin)
	if err != nil {
		return nil, err
	}
	p := e.newPlan()
	p.origin = o
	p.selectOrigin = true
	e.showWithNeighbours(p, o)
	if e.opts.EdgesTouchingSelectionOnly {
		p.keep = func(l *Link) bool { return l.Touches(o) }
	}
	return p, nil
}

func (e *Engine) planUnion() (*plan, error) {
	selected, err := e.requireSelection(KindUnion)
	if err != nil {
		return nil, err
	}
	p := e.newPlan()
	for _, s := range selected {
		e.showWithNeighbours(p, s)
	}
	if e.opts.EdgesTouchingSelectionOnly {
		nodes := e.ds.nodes
		p.keep = func(l *Link) bool { return nodes[l.Source].Selected || nodes[l.Target].Selected }
	}
	return p, nil
}

// resolveThreshold picks the mutual-neighbour threshold: the mode's own
// value, then the engine default, then "shared by every selected node".
func (e *Engine) resolveThreshold(threshold, selected int) (int, error) {
	if threshold < 0 {
		return 0, grapherr.InvalidParameter(grapherr.SubcategoryBadThreshold, "threshold must not be negative, got %d", threshold).
			WithContext("threshold", threshold)
	}
	if threshold == 0 {
		threshold = e.opts.IntersectionThreshold
	}
	if threshold == 0 {
		threshold = selected
	}
	return threshold, nil
}

// sharedCounts returns, per node, how many of the selected nodes it neighbours.
func (e *Engine) sharedCounts(selected []int) []int {
	counts := make([]int, len(e.ds.nodes))
	for _, s := range selected {
		for _, j := range e.ds.nodes[s].neighbours {
			counts[j]++
		}
	}
	return counts
}

func (e *Engine) planIntersection(m Intersection) (*plan, error) {
	selected, err := e.requireSelection(KindIntersection)
	if err != nil {
		return nil, err
	}
	threshold, err := e.resolveThreshold(m.Threshold, len(selected))
	if err != nil {
		return nil, err
	}

	p := e.newPlan()
	for _, s := range selected {
		p.visible[s] = true
	}
	for j, c := range e.sharedCounts(selected) {
		if c >= threshold {
			p.visible[j] = true
		}
	}
	return p, nil
}

func (e *Engine) planOriginIntersection(m OriginIntersection) (*plan, error) {
	selected, err := e.requireSelection(KindOriginIntersection)
	if err != nil {
		return nil, err
	}
	o := selected[0]
	if m.Origin != "" {
		if o, err = e.lookupOrigin(m.Origin); err != nil {
			return nil, err
		}
	}
	threshold, err := e.resolveThreshold(m.Threshold, len(selected))
	if err != nil {
		return nil, err
	}

	p := e.newPlan()
	p.origin = o
	p.visible[o] = true
	for _, s := range selected {
		p.visible[s] = true
	}
	origin := e.ds.nodes[o]
	for j, c := range e.sharedCounts(selected) {
		if c >= threshold && origin.HasNeighbour(j) {
			p.visible[j] = true
		}
	}
	return p, nil
}

func (e *Engine) planOnlySelected() (*plan, error) {
	selected, err := e.requireSelection(KindOnlySelected)
	if err != nil {
		return nil, err
	}
	p := e.newPlan()
	p.onlySelected = true
	for _, s := range selected {
		p.visible[s] = true
	}
	return p, nil
}

// planSameEntry grows the start set along links to neighbours that share an
// entry with any node already included, until nothing more can be added.
// A neighbour rejected early is retried once the entry set has grown.
func (e *Engine) planSameEntry(m SameEntry) (*plan, error) {
	p := e.newPlan()

	var start []int
	if m.Origin != "" {
		o, err := e.lookupOrigin(m.Origin)
		if err != nil {
			return nil, err
		}
		p.origin = o
		start = []int{o}
	} else {
		selected, err := e.requireSelection(KindSameEntry)
		if err != nil {
			return nil, err
		}
		start = selected
	}

	nodes := e.ds.nodes
	entries := make(map[string]struct{})
	var queue []int
	include := func(i int) {
		p.visible[i] = true
		for _, en := range nodes[i].Entries {
			entries[en] = struct{}{}
		}
		queue = append(queue, i)
	}
	for _, s := range start {
		if !p.visible[s] {
			include(s)
		}
	}

	// Each node sits in deferred at most once
	var deferred []int
	isDeferred := make([]bool, len(nodes))
	for {
		for len(queue) > 0 {
			i := queue[0]
			queue = queue[1:]
			for _, j := range nodes[i].neighbours {
				if p.visible[j] || isDeferred[j] {
					continue
				}
				if nodes[j].sharesEntry(entries) {
					include(j)
				} else {
					isDeferred[j] = true
					deferred = append(deferred, j)
				}
			}
		}

		retry := deferred[:0]
		for _, j := range deferred {
			if nodes[j].sharesEntry(entries) {
				isDeferred[j] = false
				include(j)
				continue
			}
			retry = append(retry, j)
		}
		deferred = retry
		if len(queue) == 0 {
			break
		}
	}

	return p, nil
}

func (e *Engine) planSelectedComponent(m SelectedComponent) *plan {
	if len(m.Components) == 0 {
		return e.planBaseline(nil)
	}
	wanted := make(map[string]struct{}, len(m.Components))
	for _, id := range m.Components {
		if _, ok := e.ds.componentIndex[id]; !ok {
			e.reportIssue(grapherr.Integrity(grapherr.SubcategoryUnknownComponent, "component %q is not in the dataset", id).
				WithContext(logger.FieldComponent, id))
			continue
		}
		wanted[id] = struct{}{}
	}
	p := e.newPlan()
	for i, n := range e.ds.nodes {
		_, p.visible[i] = wanted[n.Component]
	}
	return p
}

func (e *Engine) planChart(m ChartFilter) (*plan, error) {
	if m.Property == "" {
		return nil, grapherr.InvalidParameter(grapherr.SubcategoryMissingProperty, "chart filter needs a property")
	}
	r := resolverOrDefault(m.Resolver)
	p := e.newPlan()

	switch m.Target {
	case TargetEdges:
		for _, l := range e.ds.links {
			if v, ok := r.LinkValue(e.ds, l, m.Property); ok && valueMatches(v, m.Value) {
				p.visible[l.Source] = true
				p.visible[l.Target] = true
			}
		}
	default:
		for i, n := range e.ds.nodes {
			if n.IsOrphan() && !e.ds.orphansVisible {
				continue
			}
			if v, ok := r.NodeValue(e.ds, n, m.Property); ok && valueMatches(v, m.Value) {
				p.visible[i] = true
			}
		}
	}
	return p, nil
}

func (e *Engine) planDegree(m DegreeFilter) (*plan, error) {
	if math.IsNaN(m.Min) || math.IsNaN(m.Max) || m.Min > m.Max {
		return nil, grapherr.InvalidParameter(grapherr.SubcategoryRangeInverted, "range [%v, %v] is empty", m.Min, m.Max).
			WithContext("min", m.Min).
			WithContext("max", m.Max)
	}
	property := m.Property
	if property == "" {
		property = "degree"
	}
	r := resolverOrDefault(m.Resolver)

	p := e.newPlan()
	for i, n := range e.ds.nodes {
		if n.IsOrphan() && !e.ds.orphansVisible {
			continue
		}
		v, ok := r.NodeValue(e.ds, n, property)
		if !ok {
			continue
		}
		if f, ok := numericValue(v); ok && f >= m.Min && f <= m.Max {
			p.visible[i] = true
		}
	}
	return p, nil
}

func (e *Engine) planNeighbours(m Neighbours) (*plan, error) {
	if m.Depth <= 0 {
		return nil, grapherr.InvalidParameter(grapherr.SubcategoryNonPositiveDepth, "depth must be positive, got %d", m.Depth).
			WithContext("depth", m.Depth)
	}
	if m.Depth > e.opts.NeighboursMaxDepth {
		return nil, grapherr.InvalidParameter(grapherr.SubcategoryDepthTooLarge, "depth %d exceeds the limit of %d", m.Depth, e.opts.NeighboursMaxDepth).
			WithContext("depth", m.Depth)
	}
	o, err := e.lookupOrigin(m.Origin)
	if err != nil {
		return nil, err
	}

	levels := m.Levels
	if levels == nil {
		if levels, err = e.ds.NeighbourLevels(m.Origin, m.Depth, m.Feature); err != nil {
			return nil, err
		}
	}

	p := e.newPlan()
	p.origin = o
	p.visible[o] = true
	for depth := 0; depth < m.Depth && depth < len(levels); depth++ {
		for _, id := range levels[depth] {
			i, ok := e.ds.nodeIndex[id]
			if !ok {
				e.reportIssue(grapherr.Integrity(grapherr.SubcategoryUnknownNode, "neighbour level lists unknown node %q", id).
					WithContext(logger.FieldNodeID, id).
					WithContext("depth", depth+1))
				continue
			}
			if m.Feature != "" && e.ds.nodes[i].Feature != m.Feature {
				continue
			}
			p.visible[i] = true
		}
	}
	return p, nil
}
