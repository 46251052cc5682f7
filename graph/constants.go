package graph

const (
	// Color/label for nodes without a feature
	defaultUntypedColor = "rgba(149, 165, 166, 0.3)" // Transparent gray
	defaultUntypedLabel = "Untyped"

	// defaultNeighboursMaxDepth bounds NEIGHBOURS traversal when Options leave it unset
	defaultNeighboursMaxDepth = 6

	// derivedComponentPrefix names components computed on load
	derivedComponentPrefix = "cc-"
)

// featurePalette is cycled through in feature order (most frequent first).
var featurePalette = []string{
	"#e74c3c", "#3498db", "#2ecc71", "#f39c12", "#9b59b6",
	"#1abc9c", "#e67e22", "#34495e", "#16a085", "#c0392b",
	"#2980b9", "#8e44ad",
}
