package commands

import (
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/teranos/netlens/am"
	"github.com/teranos/netlens/errors"
	"github.com/teranos/netlens/graph"
	grapherr "github.com/teranos/netlens/graph/error"
	"github.com/teranos/netlens/logger"
	"github.com/teranos/netlens/snapshot"
)

// engineOptions maps the am configuration onto engine options.
func engineOptions(cfg *am.Config) graph.Options {
	return graph.Options{
		OrphansVisible:             cfg.Graph.OrphansVisible,
		IntersectionThreshold:      cfg.Graph.IntersectionThreshold,
		EdgesTouchingSelectionOnly: cfg.Graph.EdgesTouchingSelectionOnly,
		NeighboursMaxDepth:         cfg.GetNeighboursMaxDepth(),
		AnchorProperties:           cfg.Graph.AnchorProperties,
		DisableMetrics:             !cfg.Metrics.Enabled,
	}
}

// openSession loads configuration and the snapshot at path into the given
// view of a fresh session.
func openSession(path, view string) (*graph.Session, *graph.Engine, graph.LoadReport, error) {
	cfg, err := am.Load()
	if err != nil {
		return nil, nil, graph.LoadReport{}, errors.Wrap(err, "failed to load config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, graph.LoadReport{}, errors.Wrap(err, "invalid configuration")
	}

	snap, err := snapshot.ReadFile(path)
	if err != nil {
		return nil, nil, graph.LoadReport{}, err
	}

	session := graph.NewSession(engineOptions(cfg), logger.Logger)
	report, err := session.Load(graph.View(view), *snap)
	if err != nil {
		return nil, nil, graph.LoadReport{}, err
	}
	engine, _ := session.Engine(graph.View(view))
	return session, engine, report, nil
}

// modeFlags holds the flags shared by filter and watch.
type modeFlags struct {
	view       string
	mode       string
	origin     string
	selected   []string
	threshold  int
	min, max   float64
	property   string
	depth      int
	feature    string
	components []string
	value      string
	target     string
	advanced   bool
	jsonOutput bool
}

func (f *modeFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVar(&f.view, "view", string(graph.ViewOverview), "View to load the snapshot into (overview, detail)")
	flags.StringVarP(&f.mode, "mode", "m", "none", "Visibility mode (DIRECT, UNION, INTERSECTION, ORIGIN_INTERSECTION, ONLY_SELECTED, SAME_ENTRY, SELECTED_COMPONENT, CHART_FILTER, DEGREE_FILTER, NEIGHBOURS)")
	flags.StringVarP(&f.origin, "origin", "o", "", "Origin node id")
	flags.StringSliceVarP(&f.selected, "select", "s", nil, "Node ids to select before applying the mode")
	flags.IntVar(&f.threshold, "threshold", 0, "Shared-neighbour threshold for INTERSECTION modes")
	flags.Float64Var(&f.min, "min", 0, "Lower bound for DEGREE_FILTER")
	flags.Float64Var(&f.max, "max", 0, "Upper bound for DEGREE_FILTER")
	flags.StringVar(&f.property, "property", "", "Property for CHART_FILTER and DEGREE_FILTER")
	flags.IntVar(&f.depth, "depth", 1, "Hop count for NEIGHBOURS")
	flags.StringVar(&f.feature, "feature", "", "Keep only this feature in NEIGHBOURS")
	flags.StringSliceVar(&f.components, "components", nil, "Component ids for SELECTED_COMPONENT")
	flags.StringVar(&f.value, "value", "", "Value CHART_FILTER matches against")
	flags.StringVar(&f.target, "target", "nodes", "CHART_FILTER target (nodes, edges)")
	flags.BoolVar(&f.advanced, "advanced", false, "Resolve CHART_FILTER properties from the property bags")
	flags.BoolVarP(&f.jsonOutput, "json", "j", false, "Output the result as JSON")
}

// build turns the flags into a graph.Mode.
func (f *modeFlags) build() (graph.Mode, error) {
	name := strings.ToUpper(strings.TrimSpace(f.mode))
	if name == "" || name == "NONE" {
		return graph.None{}, nil
	}
	kind, ok := graph.ParseModeKind(name)
	if !ok {
		return nil, errors.NewInvalidRequestError("unknown mode %q", f.mode)
	}

	var resolver graph.Resolver = graph.BasicResolver{}
	if f.advanced {
		resolver = graph.AdvancedResolver{}
	}

	switch kind {
	case graph.KindDirect:
		return graph.Direct{Origin: f.origin}, nil
	case graph.KindUnion:
		return graph.Union{}, nil
	case graph.KindIntersection:
		return graph.Intersection{Threshold: f.threshold}, nil
	case graph.KindOriginIntersection:
		return graph.OriginIntersection{Origin: f.origin, Threshold: f.threshold}, nil
	case graph.KindOnlySelected:
		return graph.OnlySelected{}, nil
	case graph.KindSameEntry:
		return graph.SameEntry{Origin: f.origin}, nil
	case graph.KindSelectedComponent:
		return graph.SelectedComponent{Components: f.components}, nil
	case graph.KindChartFilter:
		target := graph.TargetNodes
		switch strings.ToLower(f.target) {
		case "nodes", "":
		case "edges", "links":
			target = graph.TargetEdges
		default:
			return nil, errors.NewInvalidRequestError("unknown chart target %q", f.target)
		}
		if f.property == "" {
			return nil, errors.NewInvalidRequestError("CHART_FILTER requires --property")
		}
		return graph.ChartFilter{Target: target, Property: f.property, Value: f.value, Resolver: resolver}, nil
	case graph.KindDegreeFilter:
		return graph.DegreeFilter{Min: f.min, Max: f.max, Property: f.property, Resolver: resolver}, nil
	case graph.KindNeighbours:
		return graph.Neighbours{Origin: f.origin, Depth: f.depth, Feature: f.feature}, nil
	}
	return graph.None{}, nil
}

// applyFlags selects the requested nodes and applies the mode.
func (f *modeFlags) apply(e *graph.Engine) (graph.Result, error) {
	m, err := f.build()
	if err != nil {
		return graph.Result{}, err
	}
	if len(f.selected) > 0 {
		e.DeselectAll()
		e.SelectNodes(f.selected...)
	}
	return e.Apply(m)
}

// printGraphError shows the category of a graph error alongside its message.
func printGraphError(err error) {
	var ge *grapherr.GraphError
	if errors.As(err, &ge) {
		pterm.Error.Println(ge.ToUIMessage())
		pterm.Debug.Printfln("%s/%s: %v", ge.Category, ge.Subcategory, ge)
		return
	}
	pterm.Error.Println(err)
}
