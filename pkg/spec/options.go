package spec

import (
	"encoding/json"
	"math"
	"slices"
)

// Options is an open map of primitive values passed through to the drawing
// surface. Decoded documents only hold string, float64 and bool values.
type Options map[string]any

// Keys returns the option names in sorted order.
func (o Options) Keys() []string {
	keys := make([]string, 0, len(o))
	for k := range o {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Lookup returns the value of the first key present.
func (o Options) Lookup(keys ...string) (any, string, bool) {
	for _, k := range keys {
		if v, ok := o[k]; ok {
			return v, k, true
		}
	}
	return nil, "", false
}

// Clone returns a shallow copy of o.
func (o Options) Clone() Options {
	if o == nil {
		return nil
	}
	c := make(Options, len(o))
	for k, v := range o {
		c[k] = v
	}
	return c
}

// AsFloat converts numeric values to float64.
func AsFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}

// AsInt converts integral numeric values to int.
func AsInt(v any) (int, bool) {
	f, ok := AsFloat(v)
	if !ok || f != math.Trunc(f) {
		return 0, false
	}
	return int(f), true
}

// AsString returns v if it is a string.
func AsString(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

// AsBool returns v if it is a bool.
func AsBool(v any) (bool, bool) {
	b, ok := v.(bool)
	return b, ok
}

// normalizeOption converts a decoded scalar into one of the primitive types
// Options holds.
func normalizeOption(v any) (any, bool) {
	switch x := v.(type) {
	case string, bool:
		return x, true
	case nil:
		return nil, true
	}
	if f, ok := AsFloat(v); ok {
		return f, true
	}
	return nil, false
}
