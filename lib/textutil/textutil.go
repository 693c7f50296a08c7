package textutil

import (
	"regexp"
	"strings"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)

// Collapse trims leading/trailing whitespace and replaces every inner run
// of whitespace (element text is full of newlines and indentation) with a
// single space.
func Collapse(s string) string {
	s = strings.Trim(s, " \n\t")
	return whitespaceRegex.ReplaceAllString(s, " ")
}

// NormalizeSummary is the canonical form summary text is stored and
// compared in: collapsed whitespace, lowercased.
func NormalizeSummary(s string) string {
	return strings.ToLower(Collapse(s))
}

// FirstField returns the first whitespace-separated token of s, or ""
// if there is none.
func FirstField(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
