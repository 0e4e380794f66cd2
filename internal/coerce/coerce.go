// Package coerce holds total conversion helpers for loosely-typed backend
// JSON. Every function accepts any value and falls back instead of failing.
package coerce

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Float converts numbers and numeric strings to float64, reporting whether
// the input was a finite numeric value. Strings may use a comma decimal
// separator ("65,5").
func Float(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return 0, false
		}
		return t, true
	case float32:
		return Float(float64(t))
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case json.Number:
		if f, err := t.Float64(); err == nil {
			return Float(f)
		}
		return 0, false
	case string:
		s := strings.ReplaceAll(strings.TrimSpace(t), ",", ".")
		if s == "" {
			return 0, false
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return Float(f)
		}
		return 0, false
	default:
		return 0, false
	}
}

// Number is Float with a fallback for absent or unparsable input.
func Number(v any, fallback float64) float64 {
	if f, ok := Float(v); ok {
		return f
	}
	return fallback
}

// String returns the trimmed value when it is a non-empty string, else
// fallback.
func String(v any, fallback string) string {
	if s, ok := v.(string); ok {
		if trimmed := strings.TrimSpace(s); trimmed != "" {
			return trimmed
		}
	}
	return fallback
}

// StringList accepts either a backend array or a comma-separated string and
// returns trimmed, non-empty entries. Anything else yields an empty list.
func StringList(v any) []string {
	switch t := v.(type) {
	case []any:
		out := make([]string, 0, len(t))
		for _, item := range t {
			var s string
			switch iv := item.(type) {
			case string:
				s = iv
			case float64, int, int64, bool, json.Number:
				s = fmt.Sprintf("%v", iv)
			default:
				continue
			}
			if trimmed := strings.TrimSpace(s); trimmed != "" {
				out = append(out, trimmed)
			}
		}
		return out
	case []string:
		out := make([]string, 0, len(t))
		for _, s := range t {
			if trimmed := strings.TrimSpace(s); trimmed != "" {
				out = append(out, trimmed)
			}
		}
		return out
	case string:
		parts := strings.Split(t, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				out = append(out, trimmed)
			}
		}
		return out
	default:
		return []string{}
	}
}

// ID normalizes backend identifiers, which arrive as JSON strings or numbers,
// to their string form. Integral floats drop the fractional part.
func ID(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		if t == math.Trunc(t) && !math.IsInf(t, 0) {
			return strconv.FormatInt(int64(t), 10)
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case json.Number:
		return t.String()
	default:
		return ""
	}
}
