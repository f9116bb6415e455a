package parse

import (
	"regexp"
	"strings"
)

// wideGap matches the field separator used by wide-gap formats.
var wideGap = regexp.MustCompile(` {2,}`)

// splitLines trims the text and splits it into lines, dropping the carriage
// returns some mirrors send.
func splitLines(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

// splitBlock splits text into lines like splitLines but keeps the
// indentation of the first line. Only blank lines around the text are
// dropped, since indentation is significant in flat files.
func splitBlock(text string) []string {
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	for len(lines) > 0 && strings.TrimSpace(lines[0]) == "" {
		lines = lines[1:]
	}
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	if len(lines) == 0 {
		return nil
	}
	return lines
}

func isIndented(line string) bool {
	return strings.HasPrefix(line, " ") || strings.HasPrefix(line, "\t")
}
