package graph

import (
	grapherr "github.com/teranos/netlens/graph/error"
)

// NeighbourLevels walks outward from origin and returns, per hop, the ids of
// the nodes first reached at that hop: levels[0] are the direct neighbours,
// levels[1] the nodes two hops away, and so on up to maxDepth. Every node
// appears at most once, at its shortest distance.
//
// A non-empty feature keeps only nodes of that feature in the levels; the
// walk itself still passes through nodes of any feature so that hop
// distances stay the same as in the unfiltered graph. Walking stops early
// once no new node is reachable.
func (d *Dataset) NeighbourLevels(origin string, maxDepth int, feature string) ([][]string, error) {
	start, ok := d.nodeIndex[origin]
	if !ok {
		return nil, grapherr.InvalidParameter(grapherr.SubcategoryMissingOrigin, "origin %q is not in the dataset", origin).
			WithContext("origin", origin)
	}
	if maxDepth <= 0 {
		return nil, grapherr.InvalidParameter(grapherr.SubcategoryNonPositiveDepth, "depth must be positive, got %d", maxDepth).
			WithContext("depth", maxDepth)
	}

	visited := make([]bool, len(d.nodes))
	visited[start] = true
	frontier := []int{start}

	var levels [][]string
	for depth := 1; depth <= maxDepth && len(frontier) > 0; depth++ {
		var next []int
		level := []string{}
		for _, i := range frontier {
			for _, j := range d.nodes[i].neighbours {
				if visited[j] {
					continue
				}
				visited[j] = true
				next = append(next, j)
				if feature == "" || d.nodes[j].Feature == feature {
					level = append(level, d.nodes[j].ID)
				}
			}
		}
		if len(next) == 0 {
			break
		}
		levels = append(levels, level)
		frontier = next
	}

	return levels, nil
}
