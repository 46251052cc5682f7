package graph

import (
	"reflect"

	"github.com/spf13/cast"
)

// Resolver reads a named property off a node or a link. Chart and numeric
// filters use it to decide membership.
type Resolver interface {
	NodeValue(d *Dataset, n *Node, property string) (interface{}, bool)
	LinkValue(d *Dataset, l *Link, property string) (interface{}, bool)
}

// BasicResolver reads the structural fields every dataset has.
//
// Node properties: id, label, feature, component, degree, entries.
// Link properties: source, target, component, weight, feature and value
// (the features/values of its connections) and count (total connection count).
type BasicResolver struct{}

// AdvancedResolver reads the dataset-specific property bags. For links a
// property also matches connection annotations whose feature has that name.
type AdvancedResolver struct{}

func (BasicResolver) NodeValue(d *Dataset, n *Node, property string) (interface{}, bool) {
	switch property {
	case "id":
		return n.ID, true
	case "label":
		return n.Label, true
	case "feature":
		return n.Feature, true
	case "component":
		return n.Component, true
	case "degree":
		return n.Degree(), true
	case "entries":
		return n.Entries, true
	}
	return nil, false
}

func (BasicResolver) LinkValue(d *Dataset, l *Link, property string) (interface{}, bool) {
	switch property {
	case "source":
		return d.nodes[l.Source].ID, true
	case "target":
		return d.nodes[l.Target].ID, true
	case "component":
		return l.Component, true
	case "weight":
		return l.Weight, true
	case "feature":
		out := make([]string, 0, len(l.Connections))
		for _, c := range l.Connections {
			out = append(out, c.Feature)
		}
		return out, true
	case "value":
		out := make([]string, 0, len(l.Connections))
		for _, c := range l.Connections {
			out = append(out, c.Value)
		}
		return out, true
	case "count":
		total := 0
		for _, c := range l.Connections {
			total += c.Count
		}
		return total, true
	}
	return nil, false
}

func (AdvancedResolver) NodeValue(d *Dataset, n *Node, property string) (interface{}, bool) {
	v, ok := n.Properties[property]
	return v, ok
}

func (AdvancedResolver) LinkValue(d *Dataset, l *Link, property string) (interface{}, bool) {
	if v, ok := l.Properties[property]; ok {
		return v, true
	}
	var values []string
	for _, c := range l.Connections {
		if c.Feature == property {
			values = append(values, c.Value)
		}
	}
	if values == nil {
		return nil, false
	}
	return values, true
}

// resolverOrDefault returns r, or BasicResolver when r is nil.
func resolverOrDefault(r Resolver) Resolver {
	if r == nil {
		return BasicResolver{}
	}
	return r
}

// valueMatches reports whether a resolved value equals want. List values
// match when any element does. Numbers compare numerically, so a chart bar
// labelled "3" matches degree 3.
func valueMatches(resolved, want interface{}) bool {
	if resolved == nil {
		return want == nil
	}
	rv := reflect.ValueOf(resolved)
	if rv.Kind() == reflect.Slice && rv.Type().Elem().Kind() != reflect.Uint8 {
		for i := 0; i < rv.Len(); i++ {
			if valueMatches(rv.Index(i).Interface(), want) {
				return true
			}
		}
		return false
	}
	return scalarEqual(resolved, want)
}

func scalarEqual(a, b interface{}) bool {
	if isNumeric(a) || isNumeric(b) {
		fa, errA := cast.ToFloat64E(a)
		fb, errB := cast.ToFloat64E(b)
		if errA == nil && errB == nil {
			return fa == fb
		}
	}
	sa, errA := cast.ToStringE(a)
	sb, errB := cast.ToStringE(b)
	return errA == nil && errB == nil && sa == sb
}

func isNumeric(v interface{}) bool {
	switch v.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return true
	}
	return false
}

// numericValue coerces a resolved value to float64 for range filters.
func numericValue(v interface{}) (float64, bool) {
	if v == nil {
		return 0, false
	}
	f, err := cast.ToFloat64E(v)
	if err != nil {
		return 0, false
	}
	return f, true
}
