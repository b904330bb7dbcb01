// Package mapper resolves declarative field mappings against arbitrary
// nested source records. Institution configs describe where a canonical
// field lives in a raw feed (a dot-separated path) and optionally how to
// remap its raw vocabulary; this package is the small interpreter that
// evaluates those descriptors.
//
// Source records are generic JSON trees (map[string]any). Configs are
// externally authored and genuinely open-ended, so no attempt is made to
// type them statically.
package mapper

import (
	"fmt"
	"regexp"
	"strings"
)

var placeholderRe = regexp.MustCompile(`\{\{(\w+)\}\}`)

// GetNestedValue traverses source along a dot-separated path and returns
// the value at the terminal key. It returns nil if the path is empty, any
// intermediate key is absent, or an intermediate value is not itself a
// map. Missing paths never cause an error.
func GetNestedValue(source map[string]any, path string) any {
	if path == "" {
		return nil
	}

	var value any = source
	for _, key := range strings.Split(path, ".") {
		m, ok := value.(map[string]any)
		if !ok {
			return nil
		}
		value, ok = m[key]
		if !ok {
			return nil
		}
	}
	return value
}

// MapField evaluates a field mapping against a source record. The mapping
// is either a bare path string (direct lookup) or a descriptor of the form
//
//	{"field": "path.to.value", "mapping": {"RAW": "Canonical", ...}}
//
// where the optional remap table substitutes the looked-up value. Raw
// values absent from the table pass through unchanged: invalid source
// vocabulary is deliberately tolerated here and caught later by strict
// schema validation. A nil field or unknown mapping shape yields nil.
func MapField(source map[string]any, mapping any) any {
	switch m := mapping.(type) {
	case string:
		return GetNestedValue(source, m)
	case map[string]any:
		path, _ := m["field"].(string)
		if path == "" {
			return nil
		}
		value := GetNestedValue(source, path)

		if table, ok := m["mapping"].(map[string]any); ok && value != nil {
			if key, ok := value.(string); ok {
				if mapped, ok := table[key]; ok {
					return mapped
				}
			}
		}
		return value
	}
	return nil
}

// ApplyTemplate substitutes {{token}} placeholders in template with
// stringified values from data. Missing keys become the empty string.
func ApplyTemplate(template string, data map[string]any) string {
	return placeholderRe.ReplaceAllStringFunc(template, func(match string) string {
		key := placeholderRe.FindStringSubmatch(match)[1]
		value, ok := data[key]
		if !ok || value == nil {
			return ""
		}
		return Stringify(value)
	})
}

// Stringify renders a mapped value as a string the way JSON-sourced data
// reads naturally: integral floats lose the trailing ".0" that
// encoding/json decoding would otherwise print as scientific noise.
func Stringify(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		if v == float64(int64(v)) {
			return fmt.Sprintf("%d", int64(v))
		}
		return fmt.Sprintf("%g", v)
	default:
		return fmt.Sprintf("%v", v)
	}
}
