package graph

import (
	"slices"
	"time"
)

// View identifies one of the independent network views of a session.
type View string

const (
	ViewOverview View = "overview"
	ViewDetail   View = "detail"
)

// Node is one vertex of a loaded network. Nodes live in the dataset arena and
// are addressed by Index; neighbours are stored as arena indices.
type Node struct {
	Index      int                    `json:"-"`
	ID         string                 `json:"id"`
	Label      string                 `json:"label"`
	Feature    string                 `json:"feature"`           // Category used for coloring and chart grouping
	Entries    []string               `json:"entries"`           // Source-record ids aggregated by this node
	Component  string                 `json:"component"`         // Connected component id
	Properties map[string]interface{} `json:"properties,omitempty"`
	Selected   bool                   `json:"selected"`
	Visible    bool                   `json:"visible"`
	Pinned     bool                   `json:"pinned,omitempty"` // Renderer fixed its position; cleared on deselect

	neighbourIDs map[string]struct{} // raw ids as loaded, resolved by ResolveNeighbourObjects
	neighbours   []int               // sorted arena indices, symmetric
}

// Degree is the number of distinct neighbours.
func (n *Node) Degree() int {
	return len(n.neighbours)
}

// IsOrphan reports whether the node has no neighbours.
func (n *Node) IsOrphan() bool {
	return len(n.neighbours) == 0
}

// Neighbours returns the sorted arena indices of the node's neighbours.
// The slice is owned by the dataset and must not be modified.
func (n *Node) Neighbours() []int {
	return n.neighbours
}

// HasNeighbour reports whether the node at arena index idx is a neighbour.
func (n *Node) HasNeighbour(idx int) bool {
	_, found := slices.BinarySearch(n.neighbours, idx)
	return found
}

// sharesEntry reports whether any entry of n is in entries.
func (n *Node) sharesEntry(entries map[string]struct{}) bool {
	for _, e := range n.Entries {
		if _, ok := entries[e]; ok {
			return true
		}
	}
	return false
}

// Connection annotates why two nodes are linked.
type Connection struct {
	Feature string `json:"feature"`
	Value   string `json:"value"`
	Count   int    `json:"count"`
}

// Link is an undirected edge between two arena nodes.
type Link struct {
	Index       int                    `json:"-"`
	Source      int                    `json:"source"` // arena index
	Target      int                    `json:"target"` // arena index
	Component   string                 `json:"component"`
	Connections []Connection           `json:"connections,omitempty"`
	Weight      float64                `json:"weight"`
	Properties  map[string]interface{} `json:"properties,omitempty"`
	Visible     bool                   `json:"visible"`
}

// Touches reports whether the link has idx as one of its endpoints.
func (l *Link) Touches(idx int) bool {
	return l.Source == idx || l.Target == idx
}

// Component is a connected subgraph supplied with the snapshot (or derived on load).
type Component struct {
	ID                 string   `json:"id"`
	Nodes              []int    `json:"nodes"` // arena indices
	Entries            []string `json:"entries"`
	SelectedNodesCount int      `json:"selected_nodes_count"`
	IsSelected         bool     `json:"is_selected"` // true iff every node of the component is selected
}

// Row is one record of the tabular projection, keyed by entry id.
type Row struct {
	Entry  string                 `json:"entry"`
	Values map[string]interface{} `json:"values,omitempty"`
}

// FeatureInfo describes one feature present in the dataset and its color.
type FeatureInfo struct {
	Feature string `json:"feature"`
	Label   string `json:"label"`
	Color   string `json:"color"`
	Count   int    `json:"count"`
}

// Meta holds dataset-wide metadata computed on load.
type Meta struct {
	MaxDegree        int                    `json:"max_degree"`
	AnchorProperties []string               `json:"anchor_properties,omitempty"`
	Features         []FeatureInfo          `json:"features"`
	Extra            map[string]interface{} `json:"extra,omitempty"`
	LoadedAt         time.Time              `json:"loaded_at"`
}

// Stats summarises the current visibility and selection state.
type Stats struct {
	TotalNodes         int `json:"total_nodes"`
	VisibleNodes       int `json:"visible_nodes"`
	TotalLinks         int `json:"total_links"`
	VisibleLinks       int `json:"visible_links"`
	Components         int `json:"components"`
	SelectedNodes      int `json:"selected_nodes"`
	SelectedComponents int `json:"selected_components"`
	Rows               int `json:"rows"`
	ActiveRows         int `json:"active_rows"`
}
