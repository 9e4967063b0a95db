package layer

import (
	"reflect"
	"sort"
	"strings"
)

// DeepMerge merges src into dst and returns dst. Nested maps merge key
// by key; any other src value replaces the dst value with a copy.
func DeepMerge(dst, src map[string]any) map[string]any {
	if dst == nil {
		dst = make(map[string]any, len(src))
	}

	for k, v := range src {
		srcMap, ok := v.(map[string]any)
		if !ok {
			dst[k] = cloneValue(v)
			continue
		}
		if dstMap, ok := dst[k].(map[string]any); ok {
			dst[k] = DeepMerge(dstMap, srcMap)
		} else {
			dst[k] = cloneMap(srcMap)
		}
	}

	return dst
}

func cloneValue(val any) any {
	switch v := val.(type) {
	case map[string]any:
		return cloneMap(v)
	case []any:
		return cloneSlice(v)
	default:
		return val
	}
}

// GetByPath looks up a dotted path such as "input.platform".
func GetByPath(data map[string]any, path string) (any, bool) {
	if path == "" {
		return nil, false
	}

	parts := strings.Split(path, ".")
	m := data
	for _, part := range parts[:len(parts)-1] {
		next, ok := m[part].(map[string]any)
		if !ok {
			return nil, false
		}
		m = next
	}

	val, ok := m[parts[len(parts)-1]]
	return val, ok
}

// SetByPath stores value at a dotted path. Missing or non-map
// intermediate entries are replaced with maps.
func SetByPath(data map[string]any, path string, value any) {
	if data == nil || path == "" {
		return
	}

	parts := strings.Split(path, ".")
	m := data
	for _, part := range parts[:len(parts)-1] {
		next, ok := m[part].(map[string]any)
		if !ok {
			next = make(map[string]any)
			m[part] = next
		}
		m = next
	}
	m[parts[len(parts)-1]] = value
}

// ChangedPaths returns the sorted leaf paths whose values differ between
// old and new, including paths present in only one of them.
func ChangedPaths(old, new map[string]any) []string {
	oldLeaves := make(map[string]any)
	newLeaves := make(map[string]any)
	collectLeaves(old, "", oldLeaves)
	collectLeaves(new, "", newLeaves)

	var changed []string
	for p, nv := range newLeaves {
		if ov, ok := oldLeaves[p]; !ok || !reflect.DeepEqual(ov, nv) {
			changed = append(changed, p)
		}
	}
	for p := range oldLeaves {
		if _, ok := newLeaves[p]; !ok {
			changed = append(changed, p)
		}
	}

	sort.Strings(changed)
	return changed
}

func collectLeaves(data map[string]any, prefix string, out map[string]any) {
	for k, v := range data {
		p := k
		if prefix != "" {
			p = prefix + "." + k
		}
		if m, ok := v.(map[string]any); ok {
			collectLeaves(m, p, out)
			continue
		}
		out[p] = v
	}
}
