package dataplist

// MergeData composes collapsed trees ordered from strongest to weakest,
// returning a new tree that keeps explicit entries from stronger layers while
// filling missing dictionary entries from weaker ones. Arrays and scalars are
// taken whole from the strongest layer that sets them; a nil strong entry
// defers to the weaker layer. Inputs are never mutated.
func MergeData(layers ...any) any {
	if len(layers) == 0 {
		return nil
	}
	merged := cloneData(layers[len(layers)-1])
	for i := len(layers) - 2; i >= 0; i-- {
		merged = mergeData(layers[i], merged)
	}
	return merged
}

func mergeData(strong, weak any) any {
	if strong == nil {
		return cloneData(weak)
	}
	strongMap, ok := strong.(map[string]any)
	if !ok {
		return cloneData(strong)
	}
	weakMap, ok := weak.(map[string]any)
	if !ok {
		return cloneData(strong)
	}
	out := make(map[string]any, len(strongMap)+len(weakMap))
	for key, value := range weakMap {
		out[key] = cloneData(value)
	}
	for key, value := range strongMap {
		if existing, ok := out[key]; ok {
			out[key] = mergeData(value, existing)
			continue
		}
		out[key] = cloneData(value)
	}
	return out
}

func cloneData(v any) any {
	switch node := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(node))
		for key, value := range node {
			out[key] = cloneData(value)
		}
		return out
	case []any:
		out := make([]any, len(node))
		for i, value := range node {
			out[i] = cloneData(value)
		}
		return out
	case []byte:
		return append([]byte(nil), node...)
	default:
		return v
	}
}
