package graph

// projectTable recomputes activeTableData: the rows whose entry belongs to a
// visible node (a visible selected node when onlySelected is set). Rows keep
// their original order.
func (d *Dataset) projectTable(onlySelected bool) {
	entries := make(map[string]struct{})
	for _, n := range d.nodes {
		if !n.Visible || (onlySelected && !n.Selected) {
			continue
		}
		for _, e := range n.Entries {
			entries[e] = struct{}{}
		}
	}

	active := make([]Row, 0, len(entries))
	for _, row := range d.tableData {
		if _, ok := entries[row.Entry]; ok {
			active = append(active, row)
		}
	}
	d.activeTableData = active
}
