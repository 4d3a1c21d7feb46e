package guard

import (
	"fmt"
	"strconv"

	json "github.com/goccy/go-json"
)

// absence is the distinguished "no value" token yielded when an Object field
// name resolves to nothing. It is distinct from JSON null.
type absence struct{}

// Absent is the absence marker. Helpers built with Optional accept it; the
// Undefined helper accepts nothing else.
var Absent any = absence{}

// IsAbsent reports whether v is the absence marker.
func IsAbsent(v any) bool {
	_, ok := v.(absence)
	return ok
}

// jsonText renders a value as canonical JSON for use inside diagnostics.
// The absence marker renders as "undefined" to keep messages like
// "Expected number, got undefined" readable.
func jsonText(v any) string {
	if IsAbsent(v) {
		return "undefined"
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(b)
}

// lookupKey resolves a declared field name against a keyed container.
// Objects resolve by key; arrays also qualify as keyed containers, resolving
// numeric field names as indices. A miss yields the absence marker.
func lookupKey(v any, name string) any {
	switch c := v.(type) {
	case map[string]any:
		val, ok := c[name]
		if !ok {
			return Absent
		}
		return val
	case []any:
		idx, err := strconv.Atoi(name)
		if err != nil || idx < 0 || idx >= len(c) {
			return Absent
		}
		return c[idx]
	default:
		return Absent
	}
}

// isKeyedContainer reports whether v can serve as Object input.
func isKeyedContainer(v any) bool {
	switch v.(type) {
	case map[string]any, []any:
		return true
	default:
		return false
	}
}
