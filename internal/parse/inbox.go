package parse

import (
	"strings"

	"trail-cli/internal/model"
)

// Inbox parses an inbox file. The header is everything before the first
// `- ` item. Each item takes its title and trailing tags from the first
// line, folds immediately following tag-only lines into the tags, then
// collects an indented fence-aware body. Non-item, non-blank lines between
// items are recorded as dropped, not silently lost.
func Inbox(src string) *model.Inbox {
	lines := splitLines(src)

	inbox := &model.Inbox{SourceLines: lines}

	idx := 0
	for idx < len(lines) {
		if strings.HasPrefix(strings.TrimSpace(lines[idx]), "- ") {
			break
		}
		inbox.Header = append(inbox.Header, lines[idx])
		idx++
	}

	for idx < len(lines) {
		line := lines[idx]
		trimmed := strings.TrimSpace(line)

		titleContent, ok := strings.CutPrefix(trimmed, "- ")
		if !ok {
			if trimmed == "" {
				idx++
				continue
			}
			inbox.Dropped = append(inbox.Dropped, model.DroppedLine{Line: idx + 1, Text: line})
			idx++
			continue
		}

		itemStart := idx
		title, tags := TitleAndTags(titleContent)
		idx++

		// Tag-only continuation lines belong to the tags, not the body.
		for idx < len(lines) {
			cont := lines[idx]
			contTrimmed := strings.TrimSpace(cont)
			if contTrimmed == "" || (!strings.HasPrefix(cont, " ") && strings.HasPrefix(contTrimmed, "- ")) {
				break
			}
			if !isTagOnlyLine(contTrimmed) {
				break
			}
			for _, word := range strings.Fields(contTrimmed) {
				if tag, ok := strings.CutPrefix(word, "#"); ok && tag != "" {
					tags = append(tags, tag)
				}
			}
			idx++
		}

		// Body: indented lines until a separator blank or the next
		// top-level item. Blank lines inside a code fence never end the
		// body.
		var bodyLines []string
		inFence := false
		for idx < len(lines) {
			bodyLine := lines[idx]
			bodyTrimmed := strings.TrimSpace(bodyLine)

			if strings.HasPrefix(bodyTrimmed, "```") {
				inFence = !inFence
			}

			if !inFence {
				if bodyTrimmed == "" {
					if hasContinuationAtIndent(lines, idx+1, 1) {
						bodyLines = append(bodyLines, "")
						idx++
						continue
					}
					break
				}
				if strings.HasPrefix(bodyTrimmed, "- ") && !strings.HasPrefix(bodyLine, " ") {
					break
				}
			}

			bodyLines = append(bodyLines, strings.TrimPrefix(bodyLine, "  "))
			idx++
		}

		// Blank lines after the item stay in its source text.
		for idx < len(lines) && isBlank(lines[idx]) {
			idx++
		}

		inbox.Items = append(inbox.Items, &model.InboxItem{
			Title:      title,
			Tags:       tags,
			Body:       strings.Join(bodyLines, "\n"),
			SourceText: append([]string(nil), lines[itemStart:idx]...),
		})
	}

	return inbox
}

// isTagOnlyLine reports whether every word on the line is a #tag.
func isTagOnlyLine(trimmed string) bool {
	if trimmed == "" {
		return false
	}
	for _, word := range strings.Fields(trimmed) {
		if !strings.HasPrefix(word, "#") || len(word) < 2 {
			return false
		}
	}
	return true
}
