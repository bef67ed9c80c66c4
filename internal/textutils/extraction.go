// Package textutils provides line handling helpers for extracted statement text.
package textutils

import (
	"regexp"
	"strings"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// SplitLines splits statement text into trimmed, non-blank lines, keeping order.
// Both \n and \r\n line endings are accepted.
func SplitLines(text string) []string {
	raw := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

// CollapseSpaces trims s and replaces every whitespace run with a single space.
func CollapseSpaces(s string) string {
	return whitespaceRun.ReplaceAllString(strings.TrimSpace(s), " ")
}

// FieldCount returns the number of whitespace-separated tokens in s.
func FieldCount(s string) int {
	return len(strings.Fields(s))
}

// HasPrefixFold reports whether s begins with prefix, ignoring case.
func HasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}

// ContainsFold reports whether substr is within s, ignoring case.
func ContainsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// ValueAfterColon returns the trimmed text following the first colon in s,
// or an empty string when s has no colon.
func ValueAfterColon(s string) string {
	_, value, found := strings.Cut(s, ":")
	if !found {
		return ""
	}
	return strings.TrimSpace(value)
}
