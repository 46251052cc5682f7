package graph

import (
	"fmt"

	grapherr "github.com/teranos/netlens/graph/error"
	"github.com/teranos/netlens/logger"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

// buildComponents attaches every node to a component. Component ids come
// from the node itself, then from the snapshot component lists; nodes still
// without one are grouped by connected component. Returns how many
// components had to be derived.
func (d *Dataset) buildComponents(raw []RawComponent) (int, []*grapherr.GraphError) {
	var issues []*grapherr.GraphError
	entries := make(map[string][]string)
	order := make([]string, 0, len(raw))
	seen := make(map[string]bool)

	register := func(id string) {
		if !seen[id] {
			seen[id] = true
			order = append(order, id)
		}
	}

	for _, rc := range raw {
		if rc.ID == "" {
			continue
		}
		register(rc.ID)
		if len(rc.Entries) > 0 {
			entries[rc.ID] = rc.Entries
		}
		for _, id := range rc.Nodes {
			i, ok := d.nodeIndex[id]
			if !ok {
				issues = append(issues,
					grapherr.Integrity(grapherr.SubcategoryUnknownNode, "component %q lists unknown node %q", rc.ID, id).
						WithContext(logger.FieldComponent, rc.ID).
						WithContext(logger.FieldNodeID, id))
				continue
			}
			if d.nodes[i].Component == "" {
				d.nodes[i].Component = rc.ID
			}
		}
	}

	for _, n := range d.nodes {
		if n.Component != "" {
			register(n.Component)
		}
	}

	next := 0
	newID := func() string {
		for {
			id := fmt.Sprintf("%s%d", derivedComponentPrefix, next)
			next++
			if !seen[id] {
				return id
			}
		}
	}

	derived := 0
	for _, members := range DeriveComponents(d.nodes) {
		var id string
		for _, i := range members {
			if d.nodes[i].Component != "" {
				continue
			}
			if id == "" {
				id = newID()
				register(id)
				derived++
			}
			d.nodes[i].Component = id
		}
	}

	members := make(map[string][]int, len(order))
	for _, n := range d.nodes {
		members[n.Component] = append(members[n.Component], n.Index)
	}

	d.components = make([]*Component, 0, len(order))
	for _, id := range order {
		nodes := members[id]
		if len(nodes) == 0 {
			// A component without nodes would count as fully selected
			continue
		}
		c := &Component{ID: id, Nodes: nodes, Entries: entries[id]}
		if c.Entries == nil {
			c.Entries = unionEntries(d.nodes, nodes)
		}
		d.componentIndex[id] = len(d.components)
		d.components = append(d.components, c)
	}

	return derived, issues
}

// DeriveComponents groups nodes into connected components over their
// resolved neighbours. Each group lists arena indices in ascending order and
// groups are ordered by their smallest index.
func DeriveComponents(nodes []*Node) [][]int {
	g := simple.NewUndirectedGraph()
	for _, n := range nodes {
		g.AddNode(simple.Node(int64(n.Index)))
	}
	for _, n := range nodes {
		for _, j := range n.neighbours {
			if j > n.Index {
				g.SetEdge(g.NewEdge(simple.Node(int64(n.Index)), simple.Node(int64(j))))
			}
		}
	}

	owner := make([]int, len(nodes))
	for ci, cc := range topo.ConnectedComponents(g) {
		for _, gn := range cc {
			owner[gn.ID()] = ci
		}
	}

	// Re-number by first appearance in arena order for a stable result
	renumber := make(map[int]int)
	var groups [][]int
	for i := range nodes {
		k, ok := renumber[owner[i]]
		if !ok {
			k = len(groups)
			renumber[owner[i]] = k
			groups = append(groups, nil)
		}
		groups[k] = append(groups[k], i)
	}
	return groups
}

// unionEntries collects the distinct entries of the given nodes, first-seen order.
func unionEntries(nodes []*Node, members []int) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, i := range members {
		for _, e := range nodes[i].Entries {
			if _, ok := seen[e]; ok {
				continue
			}
			seen[e] = struct{}{}
			out = append(out, e)
		}
	}
	return out
}
