package utils

import "strings"

// NormalizeSpace collapses repeated whitespace into a single space.
func NormalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// TextAreaToList splits textarea input into trimmed non-empty lines.
// Used for inclusion/exclusion lists.
func TextAreaToList(text string) []string {
	out := []string{}
	for _, line := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		out = append(out, line)
	}
	return out
}

// JoinLines is the inverse of TextAreaToList for persistence.
func JoinLines(lines []string) string {
	return strings.Join(lines, "\n")
}
