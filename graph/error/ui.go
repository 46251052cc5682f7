package grapherror

import (
	"fmt"
	"sort"
)

// defaultMessages are shown by the UI when a GraphError carries no custom message
var defaultMessages = map[Category]string{
	CategoryIntegrity:        "Some graph elements reference missing nodes and were skipped",
	CategoryEmptyResult:      "No data matches the current filter",
	CategoryInvalidParameter: "The filter settings are invalid",
	CategoryInternal:         "An internal error occurred - please reload the network",
}

// subcategoryMessages explain rejected filters in terms of what to change
var subcategoryMessages = map[string]string{
	SubcategoryEmptySelection:   "Select at least one node before using this filter",
	SubcategoryMissingOrigin:    "The chosen origin node is not in this network",
	SubcategoryNonPositiveDepth: "Neighbour depth must be at least 1",
	SubcategoryDepthTooLarge:    "Neighbour depth is above the configured limit",
	SubcategoryRangeInverted:    "The lower bound is above the upper bound",
	SubcategoryBadThreshold:     "The shared-neighbour threshold must not be negative",
	SubcategoryMissingProperty:  "Pick a property to filter on",
}

// ToUIMessage converts the error to a user-friendly message suitable for UI
// display. A custom message wins, then the subcategory, then the category.
func (e *GraphError) ToUIMessage() string {
	if e.UserMessage != "" {
		return e.UserMessage
	}
	if msg, ok := subcategoryMessages[e.Subcategory]; ok {
		return msg
	}
	if msg, ok := defaultMessages[e.Category]; ok {
		return msg
	}
	return "An error occurred"
}

// ToMeta formats the error as flat string metadata for collaborators
func (e *GraphError) ToMeta() map[string]string {
	meta := map[string]string{
		"error":       e.Error(),
		"category":    string(e.Category),
		"description": e.ToUIMessage(),
		"timestamp":   e.Timestamp.Format("2006-01-02T15:04:05Z07:00"),
	}

	if e.Subcategory != "" {
		meta["subcategory"] = e.Subcategory
	}

	if len(e.Context) > 0 {
		meta["context"] = fmt.Sprintf("%v", e.Context)
	}

	return meta
}

// ToLogFields converts error to structured log fields for Warnw/Errorw.
// Context keys are emitted in sorted order.
func (e *GraphError) ToLogFields() []interface{} {
	fields := []interface{}{
		"error_category", e.Category,
		"error_message", e.Error(),
	}

	if e.Subcategory != "" {
		fields = append(fields, "error_subcategory", e.Subcategory)
	}

	keys := make([]string, 0, len(e.Context))
	for k := range e.Context {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fields = append(fields, k, e.Context[k])
	}

	return fields
}

// IsCategory checks if the error matches a specific category
func (e *GraphError) IsCategory(cat Category) bool {
	return e.Category == cat
}

// IsSubcategory checks if the error matches a specific subcategory
func (e *GraphError) IsSubcategory(sub string) bool {
	return e.Subcategory == sub
}
