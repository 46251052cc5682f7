package am

import (
	"fmt"

	"github.com/spf13/viper"
)

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	// Graph engine defaults
	v.SetDefault("graph.orphans_visible", false)
	v.SetDefault("graph.intersection_threshold", 0)
	v.SetDefault("graph.edges_touching_selection_only", false)
	v.SetDefault("graph.neighbours_max_depth", DefaultNeighboursMaxDepth)
	v.SetDefault("graph.anchor_properties", []string{})

	// Logging defaults
	v.SetDefault("log.json", false)
	v.SetDefault("log.verbosity", 0)

	v.SetDefault("metrics.enabled", true)
}

// BindEnvVars explicitly binds keys whose env names are not derivable from
// the key replacer alone
func BindEnvVars(v *viper.Viper) {
	v.BindEnv("log.verbosity", "NETLENS_LOG_VERBOSITY", "NETLENS_VERBOSITY")
	v.BindEnv("log.json", "NETLENS_LOG_JSON")
}

// GetNeighboursMaxDepth returns the NEIGHBOURS depth bound, falling back to
// the default for unset or invalid values
func (c *Config) GetNeighboursMaxDepth() int {
	if c.Graph.NeighboursMaxDepth <= 0 {
		return DefaultNeighboursMaxDepth
	}
	return c.Graph.NeighboursMaxDepth
}

// String returns a string representation of the config
func (c *Config) String() string {
	return fmt.Sprintf("Config{Graph: {OrphansVisible: %t, IntersectionThreshold: %d, MaxDepth: %d}, Log: {JSON: %t, Verbosity: %d}, Metrics: %t}",
		c.Graph.OrphansVisible, c.Graph.IntersectionThreshold, c.GetNeighboursMaxDepth(),
		c.Log.JSON, c.Log.Verbosity, c.Metrics.Enabled)
}
