package config

import "strings"

// The value tree is the generic structure produced by parsing a source:
// tables are map[string]any, arrays are []any, and leaves are string, int64,
// float64 or bool (what the TOML parser emits). Trees are treated as
// immutable once built; every transformation returns a new tree and leaves
// its inputs untouched.

// deepCopyTable returns an independent copy of a table, recursing into
// nested tables and arrays.
func deepCopyTable(table map[string]any) map[string]any {
	out := make(map[string]any, len(table))
	for key, value := range table {
		out[key] = deepCopyValue(value)
	}
	return out
}

func deepCopyValue(value any) any {
	switch v := value.(type) {
	case map[string]any:
		return deepCopyTable(v)
	case []any:
		out := make([]any, len(v))
		for i, elem := range v {
			out[i] = deepCopyValue(elem)
		}
		return out
	default:
		// Scalar leaves are immutable by construction.
		return v
	}
}

// navigateToPath traverses a nested table to the value at a dot-separated
// path. The second return reports whether the full path exists.
func navigateToPath(table map[string]any, path string) (any, bool) {
	path = strings.TrimSuffix(path, ".")
	if path == "" {
		return table, true
	}

	segments := strings.Split(path, ".")
	current := any(table)

	for _, segment := range segments {
		currentMap, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}

		value, exists := currentMap[segment]
		if !exists {
			return nil, false
		}
		current = value
	}

	return current, true
}

// joinPath builds the dot-separated leaf path used in diagnostics.
func joinPath(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}
