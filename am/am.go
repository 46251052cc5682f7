package am

// Config represents the netlens configuration
type Config struct {
	Graph   GraphConfig   `mapstructure:"graph" toml:"graph"`
	Log     LogConfig     `mapstructure:"log" toml:"log"`
	Metrics MetricsConfig `mapstructure:"metrics" toml:"metrics"`
}

// GraphConfig configures the visibility engine
type GraphConfig struct {
	OrphansVisible             bool     `mapstructure:"orphans_visible" toml:"orphans_visible"`                               // Show degree-0 nodes in the baseline view
	IntersectionThreshold      int      `mapstructure:"intersection_threshold" toml:"intersection_threshold"`                 // 0 = shared by every selected node
	EdgesTouchingSelectionOnly bool     `mapstructure:"edges_touching_selection_only" toml:"edges_touching_selection_only"` // DIRECT/UNION hide links away from the selection
	NeighboursMaxDepth         int      `mapstructure:"neighbours_max_depth" toml:"neighbours_max_depth"`                     // Upper bound for NEIGHBOURS depth
	AnchorProperties           []string `mapstructure:"anchor_properties" toml:"anchor_properties"`
}

// LogConfig configures the global logger
type LogConfig struct {
	JSON      bool `mapstructure:"json" toml:"json"`           // Production JSON encoder instead of console
	Verbosity int  `mapstructure:"verbosity" toml:"verbosity"` // 0 = user, 1 = info, 2 = debug, 3 = trace, 4+ = all
}

// MetricsConfig configures prometheus instrumentation
type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled" toml:"enabled"`
}

// Graph defaults
const (
	DefaultNeighboursMaxDepth = 6
)

// File system constants
const (
	DefaultDirPermissions  = 0755 // Standard directory permissions (rwxr-xr-x)
	DefaultFilePermissions = 0644 // Standard file permissions (rw-r--r--)
)
