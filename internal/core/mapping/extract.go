// Package mapping is the carrier-agnostic normalization engine. It turns
// the raw legs, activities, and summary fields produced by a source
// adapter into the canonical shipment-tracking document.
//
// Everything here is pure and stateless: no I/O, no shared mutable state.
// Missing or malformed input resolves to null output, never to an error —
// scraped pages are unreliable by nature and the engine degrades instead
// of failing.
package mapping

import (
	"strconv"
	"strings"
)

// Extract tries each candidate key against node and returns the first
// present, non-empty value. For every candidate it also tries the common
// naming-convention variants (portNameFrom / PortNameFrom / PORTNAMEFROM
// all address the same logical field) and finally a case-insensitive scan.
// Returns nil when nothing matches.
//
// Carrier API revisions rename fields without notice; this lookup isolates
// that churn from the deriving logic.
func Extract(node map[string]any, candidates ...string) any {
	if node == nil {
		return nil
	}
	for _, key := range candidates {
		if v, ok := node[key]; ok && nonEmpty(v) {
			return v
		}
		for _, variant := range caseVariants(key) {
			if v, ok := node[variant]; ok && nonEmpty(v) {
				return v
			}
		}
		lower := strings.ToLower(key)
		for k, v := range node {
			if strings.ToLower(k) == lower && nonEmpty(v) {
				return v
			}
		}
	}
	return nil
}

// ExtractString is Extract narrowed to trimmed string values. Anything
// that is not a string yields "".
func ExtractString(node map[string]any, candidates ...string) string {
	v := Extract(node, candidates...)
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s)
	}
	return ""
}

// ExtractScalar is Extract rendered as a string: strings are trimmed and
// JSON numbers are formatted without an exponent, so a container number
// that arrives as 1234567 instead of "1234567" survives intact. Anything
// else yields "".
func ExtractScalar(node map[string]any, candidates ...string) string {
	switch v := Extract(node, candidates...).(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return ""
	}
}

// ExtractMap is Extract narrowed to object values.
func ExtractMap(node map[string]any, candidates ...string) map[string]any {
	if m, ok := Extract(node, candidates...).(map[string]any); ok {
		return m
	}
	return nil
}

// ExtractSlice is Extract narrowed to array values.
func ExtractSlice(node map[string]any, candidates ...string) []any {
	if s, ok := Extract(node, candidates...).([]any); ok {
		return s
	}
	return nil
}

// ObjectAt returns element i of raw as an object, or nil when the element
// is absent or not an object.
func ObjectAt(raw []any, i int) map[string]any {
	if i < 0 || i >= len(raw) {
		return nil
	}
	m, _ := raw[i].(map[string]any)
	return m
}

func caseVariants(key string) []string {
	if key == "" {
		return nil
	}
	return []string{
		strings.ToLower(key),
		strings.ToUpper(key),
		strings.ToLower(key[:1]) + key[1:],
		strings.ToUpper(key[:1]) + key[1:],
	}
}

func nonEmpty(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case string:
		return strings.TrimSpace(t) != ""
	case []any:
		return len(t) > 0
	case map[string]any:
		return len(t) > 0
	default:
		return true
	}
}
