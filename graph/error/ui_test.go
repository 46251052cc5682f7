package grapherror

import (
	"testing"
)

func TestToUIMessage(t *testing.T) {
	tests := []struct {
		name string
		err  *GraphError
		want string
	}{
		{
			name: "custom message wins",
			err:  EmptyResult("UNION").WithUserMessage("Nothing selected"),
			want: "Nothing selected",
		},
		{
			name: "empty result default",
			err:  EmptyResult("UNION"),
			want: "No data matches the current filter",
		},
		{
			name: "subcategory message",
			err:  InvalidParameter(SubcategoryNonPositiveDepth, "depth 0"),
			want: "Neighbour depth must be at least 1",
		},
		{
			name: "invalid parameter default",
			err:  InvalidParameter(SubcategoryUnknownMode, "mode 42"),
			want: "The filter settings are invalid",
		},
		{
			name: "unknown category",
			err:  &GraphError{Category: "mystery"},
			want: "An error occurred",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.ToUIMessage(); got != tt.want {
				t.Errorf("ToUIMessage() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestToMeta(t *testing.T) {
	err := InvalidParameter(SubcategoryRangeInverted, "min 5 > max 1").WithContext("min", 5)
	meta := err.ToMeta()

	if meta["category"] != "invalid_parameter" {
		t.Errorf("meta[category] = %q", meta["category"])
	}
	if meta["subcategory"] != SubcategoryRangeInverted {
		t.Errorf("meta[subcategory] = %q", meta["subcategory"])
	}
	if meta["context"] == "" {
		t.Error("meta[context] missing")
	}
	if meta["error"] != err.Error() {
		t.Errorf("meta[error] = %q, want %q", meta["error"], err.Error())
	}
}

func TestToLogFields(t *testing.T) {
	err := Integrity(SubcategoryDanglingLink, "link a->zz").
		WithContext("target", "zz").
		WithContext("source", "a")

	fields := err.ToLogFields()
	// category, message, subcategory, then sorted context keys
	want := []interface{}{
		"error_category", CategoryIntegrity,
		"error_message", err.Error(),
		"error_subcategory", SubcategoryDanglingLink,
		"source", "a",
		"target", "zz",
	}
	if len(fields) != len(want) {
		t.Fatalf("len(fields) = %d, want %d: %v", len(fields), len(want), fields)
	}
	for i := range want {
		if fields[i] != want[i] {
			t.Errorf("fields[%d] = %v, want %v", i, fields[i], want[i])
		}
	}
}
