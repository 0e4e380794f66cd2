// Package normalize converts raw backend JSON payloads into the stable
// domain shapes in internal/model. The backend has shipped several schema
// generations, so every field is resolved through an ordered list of
// candidate paths rather than a single key. Parsers never fail: unparseable
// input yields nil, missing fields yield defaults.
package normalize

import (
	"strings"

	"github.com/ibnfzy/gizichain/internal/coerce"
)

// AsMap returns the value as a JSON object, or nil when it is anything else.
func AsMap(v any) map[string]any {
	m, _ := v.(map[string]any)
	return m
}

// lookupPath walks a dotted path ("output.requirements.energy") through
// nested JSON objects.
func lookupPath(m map[string]any, path string) (any, bool) {
	if m == nil || path == "" {
		return nil, false
	}
	parts := strings.Split(path, ".")
	cur := m
	for i, part := range parts {
		v, ok := cur[part]
		if !ok {
			return nil, false
		}
		if i == len(parts)-1 {
			return v, true
		}
		cur = AsMap(v)
		if cur == nil {
			return nil, false
		}
	}
	return nil, false
}

// firstString resolves the first path whose value is a non-empty string.
func firstString(m map[string]any, paths ...string) string {
	for _, p := range paths {
		if v, ok := lookupPath(m, p); ok {
			if s := coerce.String(v, ""); s != "" {
				return s
			}
		}
	}
	return ""
}

// firstFloat resolves the first path whose value parses as a finite number.
// Present-but-unparsable values do not shadow later sources.
func firstFloat(m map[string]any, paths ...string) (float64, bool) {
	for _, p := range paths {
		if v, ok := lookupPath(m, p); ok && v != nil {
			if f, ok := coerce.Float(v); ok {
				return f, true
			}
		}
	}
	return 0, false
}

// firstID resolves the first path carrying a usable identifier.
func firstID(m map[string]any, paths ...string) string {
	for _, p := range paths {
		if v, ok := lookupPath(m, p); ok {
			if id := coerce.ID(v); id != "" {
				return id
			}
		}
	}
	return ""
}
