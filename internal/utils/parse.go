package utils

import (
	"regexp"
	"strconv"
	"strings"
)

// ParseInt converts s to an int and falls back to def when s is empty,
// missing or not numeric. Request parameters arrive as strings and the
// store expects typed values, so every coercion goes through here.
func ParseInt(s string, def int) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

// ParseInt64 is ParseInt for identifier-sized values.
func ParseInt64(s string, def int64) int64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return def
	}
	return n
}

// ParseFloat converts s to a float64 or returns def.
func ParseFloat(s string, def float64) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return def
	}
	return f
}

// ParseBool accepts the usual truthy spellings; anything else is false.
func ParseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}

// AnyInt coerces a recordset value to an int. Drivers hand numeric
// columns back under several Go types, and flag checks should not care
// which one arrived.
func AnyInt(v any, def int) int {
	switch t := v.(type) {
	case int:
		return t
	case int32:
		return int(t)
	case int64:
		return int(t)
	case float64:
		return int(t)
	case bool:
		if t {
			return 1
		}
		return 0
	case string:
		return ParseInt(t, def)
	case []byte:
		return ParseInt(string(t), def)
	}
	return def
}

var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// ValidEmail reports whether s looks like an e-mail address. Login input
// is a single field that may hold either an e-mail or a user name.
func ValidEmail(s string) bool {
	return emailRe.MatchString(strings.TrimSpace(s))
}

// GroupBy partitions rows by the string form of the value under key.
// Rows missing the key are grouped under the empty string. Used to group
// chat messages by day before rendering.
func GroupBy(rows []map[string]any, key string) map[string][]map[string]any {
	out := make(map[string][]map[string]any)
	for _, row := range rows {
		k := ""
		if v, ok := row[key]; ok && v != nil {
			k = toString(v)
		}
		out[k] = append(out[k], row)
	}
	return out
}

func toString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case []byte:
		return string(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return ""
	}
}
