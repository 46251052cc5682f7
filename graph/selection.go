package graph

import (
	"slices"

	grapherr "github.com/teranos/netlens/graph/error"
	"github.com/teranos/netlens/logger"
)

// selectIndex marks node i selected and updates its component counter.
// It returns false if the node was already selected.
func (d *Dataset) selectIndex(i int) bool {
	n := d.nodes[i]
	if n.Selected {
		return false
	}
	n.Selected = true
	d.selectedNodes = append(d.selectedNodes, i)

	c, ok := d.Component(n.Component)
	if !ok {
		return true
	}
	if c.SelectedNodesCount < len(c.Nodes) {
		c.SelectedNodesCount++
	}
	if c.SelectedNodesCount == len(c.Nodes) && !c.IsSelected {
		c.IsSelected = true
		d.selectedComponents = append(d.selectedComponents, c.ID)
	}
	return true
}

// deselectIndex clears the selection of node i. A component stops being
// selected as soon as one of its nodes is deselected.
func (d *Dataset) deselectIndex(i int) bool {
	n := d.nodes[i]
	if !n.Selected {
		return false
	}
	n.Selected = false
	n.Pinned = false
	if k := slices.Index(d.selectedNodes, i); k >= 0 {
		d.selectedNodes = slices.Delete(d.selectedNodes, k, k+1)
	}

	c, ok := d.Component(n.Component)
	if !ok {
		return true
	}
	if c.SelectedNodesCount > 0 {
		c.SelectedNodesCount--
	}
	if c.IsSelected {
		c.IsSelected = false
		if k := slices.Index(d.selectedComponents, c.ID); k >= 0 {
			d.selectedComponents = slices.Delete(d.selectedComponents, k, k+1)
		}
	}
	return true
}

// IsSelected reports whether the node with id is selected.
func (d *Dataset) IsSelected(id string) bool {
	n, ok := d.Node(id)
	return ok && n.Selected
}

// SetPinned records that the renderer fixed the position of a selected node.
// Pinning is cleared whenever the node is deselected.
func (e *Engine) SetPinned(id string, pinned bool) bool {
	n, ok := e.ds.Node(id)
	if !ok || (pinned && !n.Selected) {
		return false
	}
	n.Pinned = pinned
	return true
}

// SelectNodes appends the given nodes to the selection in order. Unknown ids
// are logged and skipped; already selected nodes keep their position. It
// returns the number of newly selected nodes.
func (e *Engine) SelectNodes(ids ...string) int {
	added := 0
	for _, id := range ids {
		i, ok := e.ds.nodeIndex[id]
		if !ok {
			e.reportIssue(grapherr.Integrity(grapherr.SubcategoryUnknownNode, "cannot select unknown node %q", id).
				WithContext(logger.FieldNodeID, id))
			continue
		}
		if e.ds.selectIndex(i) {
			added++
		}
	}
	if added > 0 {
		e.logger.Debugw("Nodes selected",
			logger.FieldView, e.ds.view,
			logger.FieldCount, added,
			logger.FieldSelected, len(e.ds.selectedNodes),
		)
		e.selectionChanged(nil)
	}
	return added
}

// DeselectNode removes id from the selection. If that empties the selection
// or removes the origin of the current mode, the engine resets to the
// baseline.
func (e *Engine) DeselectNode(id string) bool {
	i, ok := e.ds.nodeIndex[id]
	if !ok {
		e.reportIssue(grapherr.Integrity(grapherr.SubcategoryUnknownNode, "cannot deselect unknown node %q", id).
			WithContext(logger.FieldNodeID, id))
		return false
	}
	if !e.ds.deselectIndex(i) {
		return false
	}
	e.selectionChanged([]int{i})
	return true
}

// DeselectAll clears the whole selection.
func (e *Engine) DeselectAll() {
	removed := slices.Clone(e.ds.selectedNodes)
	if len(removed) == 0 {
		return
	}
	for _, i := range removed {
		e.ds.deselectIndex(i)
	}
	e.selectionChanged(removed)
}

// ToggleNodeSelection selects id if it is unselected, and deselects it when
// it is selected and removeIfSelected is set. It reports whether the node is
// selected afterwards.
func (e *Engine) ToggleNodeSelection(id string, removeIfSelected bool) bool {
	n, ok := e.ds.Node(id)
	if !ok {
		e.reportIssue(grapherr.Integrity(grapherr.SubcategoryUnknownNode, "cannot toggle unknown node %q", id).
			WithContext(logger.FieldNodeID, id))
		return false
	}
	if !n.Selected {
		e.SelectNodes(id)
		return true
	}
	if removeIfSelected {
		e.DeselectNode(id)
		return false
	}
	return true
}

// SelectComponent selects every node of component id, or, when it is
// already fully selected, deselects its nodes. It reports whether the
// component is fully selected afterwards.
func (e *Engine) SelectComponent(id string) bool {
	c, ok := e.ds.Component(id)
	if !ok {
		e.reportIssue(grapherr.Integrity(grapherr.SubcategoryUnknownComponent, "cannot select unknown component %q", id).
			WithContext(logger.FieldComponent, id))
		return false
	}

	if c.IsSelected {
		var removed []int
		for _, i := range c.Nodes {
			if e.ds.deselectIndex(i) {
				removed = append(removed, i)
			}
		}
		e.selectionChanged(removed)
		return false
	}

	added := 0
	for _, i := range c.Nodes {
		if e.ds.selectIndex(i) {
			added++
		}
	}
	if added > 0 {
		e.selectionChanged(nil)
	}
	return c.IsSelected
}

// selectionChanged keeps the visibility mode consistent with the selection.
// removed lists the arena indices that were just deselected.
func (e *Engine) selectionChanged(removed []int) {
	if _, isNone := e.mode.(None); isNone {
		e.ds.projectTable(false)
		return
	}

	if len(e.ds.selectedNodes) == 0 && len(removed) > 0 {
		e.logger.Debugw("Selection emptied, resetting view", logger.FieldMode, e.mode.Kind().String())
		e.Reset()
		return
	}
	if e.origin >= 0 && slices.Contains(removed, e.origin) {
		e.logger.Debugw("Origin deselected, resetting view",
			logger.FieldMode, e.mode.Kind().String(),
			logger.FieldOrigin, e.ds.nodes[e.origin].ID,
		)
		e.Reset()
		return
	}
	if selectionDriven(e.mode) {
		e.reapply()
		return
	}
	_, onlySelected := e.mode.(OnlySelected)
	e.ds.projectTable(onlySelected)
}
