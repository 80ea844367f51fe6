package metadata

// Tree is a nested mapping of archival-file metadata. Values are scalars,
// lists, or nested mappings.
type Tree = map[string]any

// DeepUpdate merges override into base and returns the result as a new
// tree. Neither input is mutated.
//
// At each key: if both sides are mappings the merge recurses; otherwise
// the override value wins. Lists are replaced wholesale, never
// concatenated.
func DeepUpdate(base, override Tree) Tree {
	merged := Copy(base)
	for key, overrideValue := range override {
		baseValue, exists := merged[key]
		if exists {
			baseTree, baseIsTree := asTree(baseValue)
			overrideTree, overrideIsTree := asTree(overrideValue)
			if baseIsTree && overrideIsTree {
				merged[key] = DeepUpdate(baseTree, overrideTree)
				continue
			}
		}
		merged[key] = copyValue(overrideValue)
	}
	return merged
}

// Chain applies DeepUpdate across sources in increasing precedence:
// Chain(a, b, c) merges b over a, then c over the result.
func Chain(sources ...Tree) Tree {
	merged := Tree{}
	for _, source := range sources {
		merged = DeepUpdate(merged, source)
	}
	return merged
}

// Copy returns a deep copy of the tree.
func Copy(t Tree) Tree {
	out := make(Tree, len(t))
	for key, value := range t {
		out[key] = copyValue(value)
	}
	return out
}

// GetString walks a key path through nested mappings and returns the
// string found at the end, or "" if any step is missing or not a string.
func GetString(t Tree, path ...string) string {
	current := any(t)
	for _, key := range path {
		tree, ok := asTree(current)
		if !ok {
			return ""
		}
		current, ok = tree[key]
		if !ok {
			return ""
		}
	}
	s, _ := current.(string)
	return s
}

func asTree(v any) (Tree, bool) {
	t, ok := v.(map[string]any)
	return t, ok
}

func copyValue(v any) any {
	switch value := v.(type) {
	case map[string]any:
		return Copy(value)
	case []any:
		out := make([]any, len(value))
		for i, element := range value {
			out[i] = copyValue(element)
		}
		return out
	default:
		return v
	}
}
