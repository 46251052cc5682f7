package graph

// Snapshot is one network as delivered by the data layer. The engine treats
// it as opaque input to Load and never keeps a reference to it.
type Snapshot struct {
	Nodes      []RawNode      `json:"nodes"`
	Links      []RawLink      `json:"links"`
	Components []RawComponent `json:"components"`
	Table      []Row          `json:"table"`
	Meta       RawMeta        `json:"meta"`
}

// RawNode is a node as it arrives from the data layer.
type RawNode struct {
	ID         string                 `json:"id"`
	Label      string                 `json:"label"`
	Feature    string                 `json:"feature"`
	Entries    []string               `json:"entries"`
	Neighbours []string               `json:"neighbours"`
	Component  string                 `json:"component"`
	Properties map[string]interface{} `json:"properties,omitempty"`
}

// RawLink references its endpoints by node id.
type RawLink struct {
	Source      string                 `json:"source"`
	Target      string                 `json:"target"`
	Component   string                 `json:"component"`
	Connections []Connection           `json:"connections,omitempty"`
	Weight      float64                `json:"weight,omitempty"`
	Properties  map[string]interface{} `json:"properties,omitempty"`
}

// RawComponent lists the member node ids of a precomputed component.
type RawComponent struct {
	ID      string   `json:"id"`
	Nodes   []string `json:"nodes"`
	Entries []string `json:"entries,omitempty"`
}

// RawMeta carries the dataset configuration shipped with a snapshot.
type RawMeta struct {
	AnchorProperties []string               `json:"anchor_properties,omitempty"`
	Extra            map[string]interface{} `json:"extra,omitempty"`
}
