package am

import "github.com/teranos/netlens/errors"

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	// Threshold: 0 = every selected node, negative = invalid
	if c.Graph.IntersectionThreshold < 0 {
		return errors.Newf("graph.intersection_threshold must be >= 0, got %d", c.Graph.IntersectionThreshold)
	}

	if c.Graph.NeighboursMaxDepth <= 0 {
		return errors.Newf("graph.neighbours_max_depth must be > 0, got %d", c.Graph.NeighboursMaxDepth)
	}

	for i, p := range c.Graph.AnchorProperties {
		if p == "" {
			return errors.Newf("graph.anchor_properties[%d] cannot be empty", i)
		}
	}

	if c.Log.Verbosity < 0 {
		return errors.Newf("log.verbosity must be >= 0, got %d", c.Log.Verbosity)
	}

	return nil
}
