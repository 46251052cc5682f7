package graph

// The query functions below enter a filter mode and return the ids of the
// nodes left visible, in arena order. Renderers use the ids to frame the
// camera. A rejected parameter leaves the state unchanged and returns nil.

// FilterNodesWithValue shows the nodes whose property equals value.
func (e *Engine) FilterNodesWithValue(property string, value interface{}, r Resolver) ([]string, error) {
	res, err := e.Apply(ChartFilter{Target: TargetNodes, Property: property, Value: value, Resolver: r})
	if err != nil {
		return nil, err
	}
	return res.VisibleNodes, nil
}

// FilterEdgesWithValue shows the endpoints of the links whose property equals value.
func (e *Engine) FilterEdgesWithValue(property string, value interface{}, r Resolver) ([]string, error) {
	res, err := e.Apply(ChartFilter{Target: TargetEdges, Property: property, Value: value, Resolver: r})
	if err != nil {
		return nil, err
	}
	return res.VisibleNodes, nil
}

// FilterNodesByNumericProp shows the nodes whose numeric property lies in
// [min, max]. Property-bag fields need AdvancedResolver; a nil r reads the
// structural fields, so only "degree" is numeric there.
func (e *Engine) FilterNodesByNumericProp(min, max float64, property string, r Resolver) ([]string, error) {
	res, err := e.Apply(DegreeFilter{Min: min, Max: max, Property: property, Resolver: r})
	if err != nil {
		return nil, err
	}
	return res.VisibleNodes, nil
}

// FilterNodesByID shows origin and its neighbours up to depth hops. levels
// may be nil, in which case they are computed from the graph.
func (e *Engine) FilterNodesByID(origin string, levels [][]string, depth int, feature string) ([]string, error) {
	res, err := e.Apply(Neighbours{Origin: origin, Depth: depth, Feature: feature, Levels: levels})
	if err != nil {
		return nil, err
	}
	return res.VisibleNodes, nil
}
