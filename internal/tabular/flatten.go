// Package tabular reshapes nested JSON records into flat, rectangular output.
package tabular

// Flatten collapses a nested JSON object into a single-level mapping keyed by
// dot-joined paths, e.g. {"a": {"b": 1}} becomes {"a.b": 1}. Only object
// nodes are descended; arrays and every other value are stored verbatim as
// leaves. Total over any well-formed JSON object: paths are unique by
// construction, so keys never collide.
func Flatten(obj map[string]any) map[string]any {
	flattened := make(map[string]any, len(obj))
	flattenInto(flattened, "", obj)
	return flattened
}

func flattenInto(dst map[string]any, prefix string, obj map[string]any) {
	for key, value := range obj {
		newKey := key
		if prefix != "" {
			newKey = prefix + "." + key
		}
		if nested, ok := value.(map[string]any); ok {
			flattenInto(dst, newKey, nested)
		} else {
			dst[newKey] = value
		}
	}
}
