package utils

import (
	"strconv"
	"strings"
)

// ToInt64 parses an integer attribute. Empty or unparsable input yields 0.
func ToInt64(val string) int64 {
	i, err := strconv.ParseInt(strings.TrimSpace(val), 10, 64)
	if err != nil {
		return 0
	}
	return i
}

// ToBool parses a boolean-ish attribute ("yes", "no", "1", "0", "true", "false").
// Empty or unknown values yield def.
func ToBool(val string, def bool) bool {
	switch strings.ToLower(strings.TrimSpace(val)) {
	case "yes", "1", "true":
		return true
	case "no", "0", "false":
		return false
	default:
		return def
	}
}

// FirstNonEmpty returns the first non-empty value.
func FirstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
