package config

// mergeTables deep-merges override into base and returns the result without
// modifying either input. Tables merge key-by-key; for any other pairing of
// node kinds the override value wins wholesale. Arrays are never merged
// element-wise: a later source replaces an earlier array entirely.
func mergeTables(base, override map[string]any) map[string]any {
	merged := make(map[string]any, len(base)+len(override))
	for key, value := range base {
		merged[key] = value
	}

	for key, value := range override {
		baseTable, baseIsTable := merged[key].(map[string]any)
		overrideTable, overrideIsTable := value.(map[string]any)

		if baseIsTable && overrideIsTable {
			merged[key] = mergeTables(baseTable, overrideTable)
			continue
		}
		merged[key] = value
	}

	return merged
}
