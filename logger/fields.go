package logger

// Standard field names for structured logging. Use these constants instead
// of raw strings so log queries stay stable.
const (
	// Dataset
	FieldView       = "view"
	FieldGeneration = "generation"
	FieldNodes      = "nodes"
	FieldLinks      = "links"
	FieldComponents = "components"
	FieldRows       = "rows"

	// Engine
	FieldMode         = "mode"
	FieldOrigin       = "origin"
	FieldSelected     = "selected"
	FieldVisibleNodes = "visible_nodes"
	FieldVisibleLinks = "visible_links"
	FieldActiveRows   = "active_rows"
	FieldComponent    = "component"
	FieldNodeID       = "node_id"

	// Generic
	FieldCount      = "count"
	FieldDurationMS = "duration_ms"
	FieldError      = "error"
	FieldPath       = "path"
	FieldOperation  = "operation"
)
