package record

import (
	"strconv"
	"strings"

	"apexlog/internal/tree"
)

// ParseTimestamp extracts the nanosecond timestamp from field 0, the
// "HH:MM:SS.mmm (nanos)" wall-clock prefix. The parenthesised value counts
// from log start and is the only part the tree cares about.
func ParseTimestamp(field string) (int64, bool) {
	open := strings.LastIndexByte(field, '(')
	end := strings.LastIndexByte(field, ')')
	if open < 0 || end <= open+1 {
		return 0, false
	}
	ns, err := strconv.ParseInt(field[open+1:end], 10, 64)
	if err != nil {
		return 0, false
	}
	return ns, true
}

// parseLineRef reads a "[12]" or "[EXTERNAL]" source reference.
func parseLineRef(field string) int {
	if len(field) < 3 || field[0] != '[' || field[len(field)-1] != ']' {
		return tree.NoLine
	}
	body := field[1 : len(field)-1]
	if body == "EXTERNAL" {
		return tree.ExternalLine
	}
	n, err := strconv.Atoi(body)
	if err != nil || n < 0 {
		return tree.NoLine
	}
	return n
}

// keyedValue reads the value of a "Key:value" field, "" when the key differs.
func keyedValue(field, key string) string {
	k, v, ok := strings.Cut(field, ":")
	if !ok || k != key {
		return ""
	}
	return v
}

// rowCount finds the first "Rows:n" field and returns n.
func rowCount(fields []string) int64 {
	for _, f := range fields {
		v := keyedValue(f, "Rows")
		if v == "" {
			continue
		}
		n, err := strconv.ParseInt(v, 10, 64)
		if err == nil {
			return n
		}
	}
	return 0
}

// tail returns the last field, "" for header-only lines.
func tail(fields []string) string {
	if len(fields) < 3 {
		return ""
	}
	return fields[len(fields)-1]
}

func fieldAt(fields []string, i int) string {
	if i < 0 || i >= len(fields) {
		return ""
	}
	return fields[i]
}
