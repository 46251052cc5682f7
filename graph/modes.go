package graph

// ModeKind enumerates the self-centric visibility modes.
type ModeKind int

const (
	KindNone ModeKind = iota
	KindDirect
	KindUnion
	KindIntersection
	KindOriginIntersection
	KindOnlySelected
	KindSameEntry
	KindSelectedComponent
	KindChartFilter
	KindDegreeFilter
	KindNeighbours
)

var modeNames = [...]string{
	KindNone:               "none",
	KindDirect:             "DIRECT",
	KindUnion:              "UNION",
	KindIntersection:       "INTERSECTION",
	KindOriginIntersection: "ORIGIN_INTERSECTION",
	KindOnlySelected:       "ONLY_SELECTED",
	KindSameEntry:          "SAME_ENTRY",
	KindSelectedComponent:  "SELECTED_COMPONENT",
	KindChartFilter:        "CHART_FILTER",
	KindDegreeFilter:       "DEGREE_FILTER",
	KindNeighbours:         "NEIGHBOURS",
}

func (k ModeKind) String() string {
	if k < 0 || int(k) >= len(modeNames) {
		return "unknown"
	}
	return modeNames[k]
}

// ParseModeKind maps a mode name (as printed by String) back to its kind.
func ParseModeKind(name string) (ModeKind, bool) {
	for k, n := range modeNames {
		if n == name {
			return ModeKind(k), true
		}
	}
	return KindNone, false
}

// Mode is one visibility mode together with the parameters its algorithm
// needs. The set of modes is closed: only the types in this file implement it.
type Mode interface {
	Kind() ModeKind
	isMode()
}

// None is the unfiltered baseline.
type None struct{}

// Direct shows Origin and its neighbours. Origin is selected if it is not already.
type Direct struct {
	Origin string
}

// Union shows the selected nodes and every neighbour of any of them.
type Union struct{}

// Intersection shows the selected nodes and the neighbours shared by at
// least Threshold selected nodes. Threshold 0 falls back to the engine
// default, and when that is 0 too, to the number of selected nodes.
type Intersection struct {
	Threshold int
}

// OriginIntersection is Intersection restricted to neighbours of Origin.
// An empty Origin means the first selected node.
type OriginIntersection struct {
	Origin    string
	Threshold int
}

// OnlySelected shows exactly the selected nodes.
type OnlySelected struct{}

// SameEntry grows a set of nodes along links whose endpoints share an entry.
// An empty Origin starts from the selection.
type SameEntry struct {
	Origin string
}

// SelectedComponent shows whole components. An empty list shows everything.
type SelectedComponent struct {
	Components []string
}

// ChartTarget chooses whether a chart filter matches nodes or links.
type ChartTarget int

const (
	TargetNodes ChartTarget = iota
	TargetEdges
)

func (t ChartTarget) String() string {
	if t == TargetEdges {
		return "edges"
	}
	return "nodes"
}

// ChartFilter shows nodes whose Property resolves to Value, or, for
// TargetEdges, the endpoints of links whose Property resolves to Value.
// A nil Resolver means BasicResolver.
type ChartFilter struct {
	Target   ChartTarget
	Property string
	Value    interface{}
	Resolver Resolver
}

// DegreeFilter shows nodes whose numeric Property lies in [Min, Max].
// An empty Property filters on degree.
type DegreeFilter struct {
	Min, Max float64
	Property string
	Resolver Resolver
}

// Neighbours shows Origin and every node within Depth hops of it. Levels
// holds the precomputed per-hop node ids (Levels[0] are the direct
// neighbours); when nil they are computed from the dataset. A non-empty
// Feature keeps only nodes of that feature.
type Neighbours struct {
	Origin  string
	Depth   int
	Feature string
	Levels  [][]string
}

func (None) Kind() ModeKind               { return KindNone }
func (Direct) Kind() ModeKind             { return KindDirect }
func (Union) Kind() ModeKind              { return KindUnion }
func (Intersection) Kind() ModeKind       { return KindIntersection }
func (OriginIntersection) Kind() ModeKind { return KindOriginIntersection }
func (OnlySelected) Kind() ModeKind       { return KindOnlySelected }
func (SameEntry) Kind() ModeKind          { return KindSameEntry }
func (SelectedComponent) Kind() ModeKind  { return KindSelectedComponent }
func (ChartFilter) Kind() ModeKind        { return KindChartFilter }
func (DegreeFilter) Kind() ModeKind       { return KindDegreeFilter }
func (Neighbours) Kind() ModeKind         { return KindNeighbours }

func (None) isMode()               {}
func (Direct) isMode()             {}
func (Union) isMode()              {}
func (Intersection) isMode()       {}
func (OriginIntersection) isMode() {}
func (OnlySelected) isMode()       {}
func (SameEntry) isMode()          {}
func (SelectedComponent) isMode()  {}
func (ChartFilter) isMode()        {}
func (DegreeFilter) isMode()       {}
func (Neighbours) isMode()         {}

// selectionDriven reports whether the mode's visible set is a function of
// the current selection, so it must be recomputed when the selection changes.
func selectionDriven(m Mode) bool {
	switch m := m.(type) {
	case Union, Intersection, OriginIntersection, OnlySelected:
		return true
	case SameEntry:
		return m.Origin == ""
	default:
		return false
	}
}
