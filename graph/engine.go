package graph

import (
	"slices"
	"sort"
	"time"

	grapherr "github.com/teranos/netlens/graph/error"
	"github.com/teranos/netlens/logger"
	"github.com/teranos/netlens/metrics"
	"go.uber.org/zap"
)

// Camera is the renderer hook used to frame a set of nodes after the
// component view changes.
type Camera interface {
	Recenter(nodeIDs []string)
}

// Options configures an Engine.
type Options struct {
	// OrphansVisible includes degree-0 nodes in the baseline view.
	OrphansVisible bool

	// IntersectionThreshold is used by INTERSECTION modes that leave their
	// own threshold at 0. Zero here means "every selected node".
	IntersectionThreshold int

	// EdgesTouchingSelectionOnly additionally hides, in DIRECT and UNION,
	// links that do not touch the origin or a selected node.
	EdgesTouchingSelectionOnly bool

	// NeighboursMaxDepth bounds NEIGHBOURS depth; 0 means the package default.
	NeighboursMaxDepth int

	// AnchorProperties are merged into every loaded dataset's meta.
	AnchorProperties []string

	// DisableMetrics skips prometheus observations.
	DisableMetrics bool

	// Camera, when set, is recentered after component toggles.
	Camera Camera
}

// Engine owns one Dataset and is the only writer of its visibility and
// selection state. It implements selection management, the self-centric
// visibility modes and component isolation; every mutating call finishes by
// re-projecting the table so graph, selection and rows never disagree.
//
// Engine is not safe for concurrent use.
type Engine struct {
	ds   *Dataset
	opts Options

	mode             Mode
	origin           int // arena index of the mode's anchor, -1 when the mode has none
	activeComponents map[string]struct{}

	logger *zap.SugaredLogger
}

// Result describes the visible state after a transition.
type Result struct {
	View         View
	Mode         ModeKind
	VisibleNodes []string
	VisibleLinks int
	ActiveRows   int
}

// Empty reports whether no node is visible. This is a valid state that the
// UI renders as "no data".
func (r Result) Empty() bool {
	return len(r.VisibleNodes) == 0
}

// Err returns an ErrEmptyResult-wrapping error when the result is empty.
func (r Result) Err() error {
	if r.Empty() {
		return grapherr.EmptyResult(r.Mode.String()).WithContext(logger.FieldView, string(r.View))
	}
	return nil
}

// NewEngine creates an engine with an empty dataset for view.
func NewEngine(view View, opts Options, log *zap.SugaredLogger) *Engine {
	if log == nil {
		log = logger.Logger
	}
	if opts.NeighboursMaxDepth <= 0 {
		opts.NeighboursMaxDepth = defaultNeighboursMaxDepth
	}
	ds := NewDataset(view, log)
	ds.orphansVisible = opts.OrphansVisible
	return &Engine{
		ds:     ds,
		opts:   opts,
		mode:   None{},
		origin: -1,
		logger: log.Named("graph.engine"),
	}
}

// Dataset returns the engine's dataset for read access.
func (e *Engine) Dataset() *Dataset { return e.ds }

// Mode returns the current visibility mode.
func (e *Engine) Mode() Mode { return e.mode }

// Origin returns the anchor node of the current mode, if it has one.
func (e *Engine) Origin() (*Node, bool) {
	if e.origin < 0 {
		return nil, false
	}
	return e.ds.nodes[e.origin], true
}

// Load replaces the dataset with snap and returns the engine to the
// baseline mode with no selection and no isolated components.
func (e *Engine) Load(snap Snapshot) LoadReport {
	e.mode = None{}
	e.origin = -1
	e.activeComponents = nil

	report := e.ds.Load(snap)
	e.ds.meta.AnchorProperties = mergeUnique(e.ds.meta.AnchorProperties, e.opts.AnchorProperties)

	if !e.opts.DisableMetrics {
		metrics.VisibleNodes.WithLabelValues(string(e.ds.view)).Set(float64(e.ds.Stats().VisibleNodes))
	}
	return report
}

// Apply enters mode m, recomputing visibility from the complete graph. On
// error nothing has been mutated and the previous state stays in place.
func (e *Engine) Apply(m Mode) (Result, error) {
	if m == nil {
		m = None{}
	}
	start := time.Now()

	p, err := e.evaluate(m)
	if err != nil {
		e.reject(m, err)
		return e.result(), err
	}

	if p.selectOrigin && !e.ds.nodes[p.origin].Selected {
		e.ds.selectIndex(p.origin)
	}
	if m.Kind() != KindNone {
		e.activeComponents = nil
	}

	e.mode = m
	e.origin = p.origin
	e.ds.applyVisibility(p.visible, p.keep)
	e.ds.projectTable(p.onlySelected)

	res := e.result()
	e.observe(res, time.Since(start))
	return res, nil
}

// Reset returns to the baseline view: every node visible except orphans
// (unless enabled) and nodes outside isolated components.
func (e *Engine) Reset() Result {
	res, err := e.Apply(None{})
	if err != nil {
		// The baseline has no parameters to reject
		e.logger.Errorw("Baseline evaluation failed", logger.FieldError, err)
	}
	return res
}

// SetOrphansVisible toggles orphan visibility and recomputes the current mode.
func (e *Engine) SetOrphansVisible(visible bool) Result {
	if e.ds.orphansVisible == visible {
		return e.result()
	}
	e.ds.orphansVisible = visible
	return e.reapply()
}

// Result reports the current visible state without recomputing it.
func (e *Engine) Result() Result {
	return e.result()
}

// reapply recomputes the current mode, falling back to the baseline when
// the mode is no longer valid (for example its origin was deselected).
func (e *Engine) reapply() Result {
	res, err := e.Apply(e.mode)
	if err != nil {
		e.logger.Debugw("Current mode no longer valid, resetting",
			logger.FieldMode, e.mode.Kind().String(),
			logger.FieldError, err,
		)
		return e.Reset()
	}
	return res
}

func (e *Engine) result() Result {
	stats := e.ds.Stats()
	return Result{
		View:         e.ds.view,
		Mode:         e.mode.Kind(),
		VisibleNodes: e.ds.VisibleNodeIDs(),
		VisibleLinks: stats.VisibleLinks,
		ActiveRows:   stats.ActiveRows,
	}
}

func (e *Engine) observe(res Result, took time.Duration) {
	outcome := metrics.OutcomeOK
	if res.Empty() {
		outcome = metrics.OutcomeEmpty
	}
	if !e.opts.DisableMetrics {
		metrics.ObserveTransition(string(res.View), res.Mode.String(), outcome, took, len(res.VisibleNodes))
	}

	e.logger.Debugw("Visibility recomputed",
		logger.FieldView, res.View,
		logger.FieldMode, res.Mode.String(),
		logger.FieldVisibleNodes, len(res.VisibleNodes),
		logger.FieldVisibleLinks, res.VisibleLinks,
		logger.FieldActiveRows, res.ActiveRows,
		logger.FieldDurationMS, took.Milliseconds(),
	)
	if res.Empty() {
		if gerr, ok := res.Err().(*grapherr.GraphError); ok {
			e.logger.Infow("Filter left no visible nodes", gerr.ToLogFields()...)
		}
	}
}

func (e *Engine) reject(m Mode, err error) {
	if !e.opts.DisableMetrics {
		metrics.ObserveRejection(string(e.ds.view), m.Kind().String())
	}
	fields := []interface{}{logger.FieldView, e.ds.view, logger.FieldMode, m.Kind().String()}
	if gerr, ok := err.(*grapherr.GraphError); ok {
		fields = append(fields, gerr.ToLogFields()...)
	} else {
		fields = append(fields, logger.FieldError, err)
	}
	e.logger.Warnw("Filter rejected", fields...)
}

// reportIssue logs and counts an integrity problem found during a transition.
func (e *Engine) reportIssue(issue *grapherr.GraphError) {
	if !e.opts.DisableMetrics {
		metrics.IntegrityIssues.WithLabelValues(issue.Subcategory).Inc()
	}
	e.logger.Warnw("Ignored invalid reference", issue.ToLogFields()...)
}

// ActiveComponents returns the isolated component ids, sorted.
func (e *Engine) ActiveComponents() []string {
	out := make([]string, 0, len(e.activeComponents))
	for id := range e.activeComponents {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

func mergeUnique(a, b []string) []string {
	out := slices.Clone(a)
	for _, s := range b {
		if !slices.Contains(out, s) {
			out = append(out, s)
		}
	}
	return out
}
