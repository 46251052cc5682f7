package graph

import (
	grapherr "github.com/teranos/netlens/graph/error"
	"github.com/teranos/netlens/logger"
)

// ToggleComponent isolates or reveals component id. The selection is
// cleared first; with no active component every component is shown again.
// The camera, when configured, is recentered on what remains visible.
func (e *Engine) ToggleComponent(id string) Result {
	if _, ok := e.ds.Component(id); !ok {
		e.reportIssue(grapherr.Integrity(grapherr.SubcategoryUnknownComponent, "cannot toggle unknown component %q", id).
			WithContext(logger.FieldComponent, id))
		return e.result()
	}

	e.DeselectAll()

	active := make(map[string]struct{}, len(e.activeComponents)+1)
	for c := range e.activeComponents {
		active[c] = struct{}{}
	}
	if _, on := active[id]; on {
		delete(active, id)
	} else {
		active[id] = struct{}{}
	}

	return e.showComponents(active)
}

// ClearComponents shows every component again.
func (e *Engine) ClearComponents() Result {
	if len(e.activeComponents) == 0 {
		return e.result()
	}
	return e.showComponents(nil)
}

func (e *Engine) showComponents(active map[string]struct{}) Result {
	if len(active) == 0 {
		active = nil
	}
	e.activeComponents = active

	res := e.Reset()
	e.logger.Debugw("Component isolation changed",
		logger.FieldView, e.ds.view,
		logger.FieldComponents, e.ActiveComponents(),
		logger.FieldVisibleNodes, len(res.VisibleNodes),
	)
	if e.opts.Camera != nil && len(res.VisibleNodes) > 0 {
		e.opts.Camera.Recenter(res.VisibleNodes)
	}
	return res
}
