// Package parse reads and writes the plain-text track and inbox formats.
// Parsing never fails: unrecognized content is kept as literal lines in
// tracks and reported as dropped lines in the inbox. Every parsed task and
// inbox item records its own verbatim source lines so unedited content
// re-serializes byte for byte.
package parse

import "strings"

// splitLines splits source text on newlines. A trailing newline yields a
// final empty element, which flows into trailing/literal buffers and is
// restored by the join on serialization.
func splitLines(src string) []string {
	return strings.Split(src, "\n")
}

func countIndent(line string) int {
	return len(line) - len(strings.TrimLeft(line, " "))
}

func isBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}

// hasContinuationAtIndent reports whether content continues at or beyond
// minIndent after a run of blank lines. Both the note parser and the inbox
// body parser use it to decide whether a blank line separates paragraphs or
// ends the block.
func hasContinuationAtIndent(lines []string, afterBlank, minIndent int) bool {
	for _, line := range lines[afterBlank:] {
		if isBlank(line) {
			continue
		}
		return countIndent(line) >= minIndent
	}
	return false
}
