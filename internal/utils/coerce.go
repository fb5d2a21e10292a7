package utils

import (
	"strconv"
	"strings"
)

// ToBool interprets the loose boolean forms the JSON input surface
// accepts: native bools, numbers, and checkbox-style strings.
func ToBool(v any, def bool) bool {
	switch val := v.(type) {
	case bool:
		return val
	case float64:
		return val != 0
	case int:
		return val != 0
	case string:
		switch strings.ToLower(strings.TrimSpace(val)) {
		case "true", "1", "yes", "on", "checked":
			return true
		case "false", "0", "no", "off", "":
			return false
		}
	}
	return def
}

// ToInt interprets loose numeric input and clamps the result to
// [min, max]. Unparseable input falls back to def before clamping.
func ToInt(v any, def, min, max int) int {
	n := def
	switch val := v.(type) {
	case float64:
		n = int(val)
	case int:
		n = val
	case string:
		if parsed, err := strconv.Atoi(strings.TrimSpace(val)); err == nil {
			n = parsed
		}
	}
	if n < min {
		n = min
	}
	if n > max {
		n = max
	}
	return n
}

// ToString returns the string form of v, or def when v is absent or
// not a string.
func ToString(v any, def string) string {
	if s, ok := v.(string); ok {
		return s
	}
	return def
}
