package grapherror

// Category represents the main error category for graph engine operations
type Category string

const (
	// CategoryIntegrity indicates a reference to an id missing from the dataset.
	// The offending entity is dropped and the operation continues.
	CategoryIntegrity Category = "integrity"

	// CategoryEmptyResult indicates a filter left no visible nodes (not a failure)
	CategoryEmptyResult Category = "empty_result"

	// CategoryInvalidParameter indicates a filter mode rejected before mutation
	CategoryInvalidParameter Category = "invalid_parameter"

	// CategoryInternal indicates a broken engine invariant
	CategoryInternal Category = "internal"
)

// String returns the string representation of the category
func (c Category) String() string {
	return string(c)
}

// Integrity subcategories
const (
	SubcategoryDanglingLink     = "dangling_link"
	SubcategoryUnknownNode      = "unknown_node"
	SubcategoryUnknownComponent = "unknown_component"
	SubcategoryDuplicateNode    = "duplicate_node"
	SubcategoryUnknownEntry     = "unknown_entry"
)

// Invalid parameter subcategories
const (
	SubcategoryRangeInverted    = "range_inverted"
	SubcategoryNonPositiveDepth = "non_positive_depth"
	SubcategoryDepthTooLarge    = "depth_too_large"
	SubcategoryMissingOrigin    = "missing_origin"
	SubcategoryEmptySelection   = "empty_selection"
	SubcategoryBadThreshold     = "bad_threshold"
	SubcategoryMissingProperty  = "missing_property"
	SubcategoryUnknownMode      = "unknown_mode"
)
