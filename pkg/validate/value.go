// Package validate checks raw practice catalog data for structural and
// referential integrity. Validators accept untyped values as decoded from
// JSON and are the only conversion path into the typed model; they never
// panic on malformed input and never modify their arguments.
package validate

import (
	"strings"

	"github.com/ritzau/practice-graph/pkg/model"
)

// asObject interprets a candidate as a JSON object.
func asObject(v any) (map[string]any, bool) {
	m, ok := v.(map[string]any)
	return m, ok
}

// asArray interprets a candidate as a JSON array.
func asArray(v any) ([]any, bool) {
	a, ok := v.([]any)
	return a, ok
}

// isBlank reports whether a string is empty after trimming whitespace.
func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// stringSlice interprets a candidate as a list of strings. It accepts both
// the []any shape produced by encoding/json and a plain []string. Elements
// of any other type make the whole conversion fail.
func stringSlice(v any) ([]string, bool) {
	switch list := v.(type) {
	case []string:
		out := make([]string, len(list))
		copy(out, list)
		return out, true
	case []any:
		out := make([]string, 0, len(list))
		for _, elem := range list {
			s, ok := elem.(string)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	default:
		return nil, false
	}
}

// requireString validates a required string field, recording an error in
// errs under the field name for a missing, non-string, or blank value.
// Returns the value and whether it passed.
func requireString(obj map[string]any, field string, errs model.FieldErrors) (string, bool) {
	raw, present := obj[field]
	if !present {
		errs[field] = "is required and must be a non-empty string"
		return "", false
	}
	s, ok := raw.(string)
	if !ok {
		errs[field] = "must be a string"
		return "", false
	}
	if isBlank(s) {
		errs[field] = "must not be empty or whitespace-only"
		return "", false
	}
	return s, true
}
