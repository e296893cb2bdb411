// Package config holds the flat key model shared by the ConfigStore
// adapters. Keys use dot notation and map one-to-one onto TOML tables:
// "precompute.workers" is the workers key of the [precompute] table.
package config

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// Values is a flat configuration keyed by dotted names.
// It is not safe for concurrent use; stores guard it with their own lock.
type Values map[string]any

// String returns the value of key if it is a string.
func (v Values) String(key string) string {
	s, _ := v[key].(string)
	return s
}

// Int returns the value of key as an int. TOML decodes integers as
// int64 and JSON as float64, so every width is accepted.
func (v Values) Int(key string) int {
	switch n := v[key].(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	default:
		return 0
	}
}

// Bool returns the value of key if it is a bool.
func (v Values) Bool(key string) bool {
	b, _ := v[key].(bool)
	return b
}

// Strings returns the value of key as a string list. Decoded TOML
// arrays arrive as []any; non-string items are dropped.
func (v Values) Strings(key string) []string {
	switch list := v[key].(type) {
	case []string:
		return slices.Clone(list)
	case []any:
		out := make([]string, 0, len(list))
		for _, item := range list {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

// Keys returns every key in sorted order.
func (v Values) Keys() []string {
	return slices.Sorted(maps.Keys(v))
}

// Flatten turns nested tables into dotted keys.
func Flatten(nested map[string]any) Values {
	out := make(Values)
	flattenInto(out, nested, "")
	return out
}

func flattenInto(out Values, m map[string]any, prefix string) {
	for key, value := range m {
		if prefix != "" {
			key = prefix + "." + key
		}
		if table, ok := value.(map[string]any); ok {
			flattenInto(out, table, key)
			continue
		}
		out[key] = value
	}
}

// Nest is the inverse of Flatten. A key that is both a value and the
// prefix of another key cannot be written as TOML and is an error.
// Keys are visited in sorted order, so a prefix is always seen first.
func (v Values) Nest() (map[string]any, error) {
	root := make(map[string]any)
	for _, key := range v.Keys() {
		parts := strings.Split(key, ".")
		table := root
		for _, part := range parts[:len(parts)-1] {
			switch child := table[part].(type) {
			case nil:
				next := make(map[string]any)
				table[part] = next
				table = next
			case map[string]any:
				table = child
			default:
				return nil, fmt.Errorf("config key %q conflicts with value at %q", key, part)
			}
		}
		table[parts[len(parts)-1]] = v[key]
	}
	return root, nil
}
