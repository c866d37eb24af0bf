package main

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

func normalize(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Join(strings.Fields(s), " ")
	return norm.NFKC.String(s)
}

// parseInputNames splits pasted text into one species name per line,
// dropping blanks.
func parseInputNames(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		line = normalize(line)
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}
