package parse

import (
	"slices"
	"strings"
	"unicode"

	"trail-cli/internal/model"
)

// maxDepth is the nesting cap: top-level, subtask, sub-subtask.
const maxDepth = 3

// Tasks parses task lines starting at start, expecting tasks at the given
// indent and depth. It returns the parsed tasks and the line index where
// parsing stopped.
func Tasks(lines []string, start, indent, depth int) ([]*model.Task, int) {
	var tasks []*model.Task
	idx := start

	for idx < len(lines) {
		line := lines[idx]

		if ti, ok := taskIndent(line); ok {
			switch {
			case ti == indent:
				task, next := parseSingleTask(lines, idx, indent, depth)
				tasks = append(tasks, task)
				idx = next
			case ti < indent:
				// Dedented, this nesting level is finished.
				return tasks, idx
			default:
				// Deeper than expected but not under a task above.
				idx++
			}
			continue
		}

		// Not a task line. Blank lines and orphaned deeper content can sit
		// between tasks (multi-line notes with trailing blanks, leftovers
		// from hand edits). Skip them only when another task at this indent
		// follows; otherwise stop and leave the line to the caller.
		if (isBlank(line) || countIndent(line) > indent) && hasMoreTasksAtIndent(lines, idx+1, indent) {
			idx++
			continue
		}
		break
	}

	return tasks, idx
}

// parseSingleTask parses one task with its metadata and subtasks.
func parseSingleTask(lines []string, start, indent, depth int) (*model.Task, int) {
	state, id, title, tags := parseTaskLine(lines[start], indent)

	task := &model.Task{
		State: state,
		ID:    id,
		Title: title,
		Tags:  tags,
		Depth: depth,
	}

	idx := start + 1
	metaIndent := indent + 2

	// Metadata lines come before subtasks.
	for idx < len(lines) {
		line := lines[idx]

		// A task line at or above the metadata indent ends the metadata.
		if ti, ok := taskIndent(line); ok && ti <= metaIndent {
			break
		}

		if isMetadataLine(line, metaIndent) {
			meta, next := parseMetadata(lines, idx, metaIndent)
			task.Metadata = append(task.Metadata, meta)
			idx = next
			continue
		}

		if countIndent(line) > indent && !isBlank(line) {
			idx++
			continue
		}

		// Blank line: keep going when more metadata or a subtask follows,
		// so multi-line notes with trailing blanks and empty notes do not
		// cut the task short.
		if isBlank(line) {
			peek := idx + 1
			for peek < len(lines) && isBlank(lines[peek]) {
				peek++
			}
			if peek < len(lines) {
				if ti, ok := taskIndent(lines[peek]); isMetadataLine(lines[peek], metaIndent) || (ok && ti == metaIndent) {
					idx++
					continue
				}
			}
		}

		break
	}

	// The task's own source text covers the task line and its metadata,
	// never subtask lines. Editing a subtask then rewrites only that
	// subtask.
	task.SourceStart = start
	task.SourceText = append([]string(nil), lines[start:idx]...)

	if idx < len(lines) {
		if ti, ok := taskIndent(lines[idx]); ok && ti == metaIndent && depth+1 < maxDepth {
			task.Subtasks, idx = Tasks(lines, idx, metaIndent, depth+1)
		}
	}

	task.SourceEnd = idx
	return task, idx
}

// parseTaskLine splits a task line into state, optional backtick ID, title,
// and trailing tags. The caller guarantees the line matched taskIndent.
func parseTaskLine(line string, indent int) (model.State, string, string, []string) {
	content := line[indent:]

	state, _ := model.StateForChar(content[3])

	afterCheckbox := content[5:]
	afterCheckbox = strings.TrimPrefix(afterCheckbox, " ")

	id := ""
	rest := afterCheckbox
	if after, ok := strings.CutPrefix(afterCheckbox, "`"); ok {
		if end := strings.IndexByte(after, '`'); end >= 0 {
			id = after[:end]
			rest = strings.TrimPrefix(after[end+1:], " ")
		}
	}

	title, tags := TitleAndTags(rest)
	return state, id, title, tags
}

// TitleAndTags splits text into a title and the trailing run of #tags.
// A #token in the middle of the text stays in the title.
func TitleAndTags(s string) (string, []string) {
	s = strings.TrimRightFunc(s, unicode.IsSpace)
	if s == "" {
		return "", nil
	}

	var tags []string
	remaining := s

	for {
		trimmed := strings.TrimRightFunc(remaining, unicode.IsSpace)
		if trimmed == "" {
			break
		}

		if i := strings.LastIndexByte(trimmed, ' '); i >= 0 {
			if tag, ok := cutTag(trimmed[i+1:]); ok {
				tags = append(tags, tag)
				remaining = trimmed[:i]
				continue
			}
		} else if tag, ok := cutTag(trimmed); ok {
			tags = append(tags, tag)
			remaining = ""
			continue
		}
		break
	}

	slices.Reverse(tags)
	return strings.TrimRightFunc(remaining, unicode.IsSpace), tags
}

// cutTag strips '#' from a word-final tag token. The word must be non-empty
// after the '#' and contain no further '#'.
func cutTag(word string) (string, bool) {
	tag, ok := strings.CutPrefix(word, "#")
	if !ok || tag == "" || strings.Contains(tag, "#") {
		return "", false
	}
	return tag, true
}

// taskIndent reports whether the line is a task line (`- [c] ...`) and at
// which indent.
func taskIndent(line string) (int, bool) {
	indent := countIndent(line)
	content := line[indent:]
	if strings.HasPrefix(content, "- [") && len(content) >= 5 && content[4] == ']' {
		return indent, true
	}
	return 0, false
}

// hasMoreTasksAtIndent looks past blank lines and deeper-indented content
// for another task at exactly the given indent. The scan stops at the first
// line at or below the indent.
func hasMoreTasksAtIndent(lines []string, start, indent int) bool {
	for _, line := range lines[start:] {
		if isBlank(line) {
			continue
		}
		if countIndent(line) > indent {
			continue
		}
		ti, ok := taskIndent(line)
		return ok && ti == indent
	}
	return false
}

// isMetadataLine reports whether the line is `- key: ...` at exactly the
// given indent with a recognized key.
func isMetadataLine(line string, indent int) bool {
	if countIndent(line) != indent {
		return false
	}
	content := strings.TrimLeftFunc(line[indent:], unicode.IsSpace)
	if !strings.HasPrefix(content, "- ") {
		return false
	}
	key, _, ok := strings.Cut(content[2:], ":")
	if !ok {
		return false
	}
	switch strings.TrimSpace(key) {
	case "dep", "ref", "spec", "note", "added", "resolved":
		return true
	}
	return false
}

// parseMetadata parses the metadata entry at idx and returns it with the
// next line index.
func parseMetadata(lines []string, idx, indent int) (model.Metadata, int) {
	content := strings.TrimLeftFunc(lines[idx][indent:], unicode.IsSpace)
	key, valuePart, _ := strings.Cut(content[2:], ":")
	key = strings.TrimSpace(key)
	value := strings.TrimSpace(valuePart)

	switch key {
	case "dep":
		return model.Dep(splitList(value)...), idx + 1
	case "ref":
		return model.Ref(splitList(value)...), idx + 1
	case "spec":
		return model.Spec(value), idx + 1
	case "added":
		return model.Added(value), idx + 1
	case "resolved":
		return model.Resolved(value), idx + 1
	}

	// note: a single-line value, or an empty value opening an indented block.
	if value != "" {
		return model.Note(value), idx + 1
	}
	text, next := parseNoteBlock(lines, idx+1, indent+2)
	return model.Note(text), next
}

// splitList splits a comma-separated value, trimming entries and dropping
// empties.
func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// parseNoteBlock collects an indented note block, fence-aware: blank lines
// inside a ``` fence never end the note. Interior blanks are kept when
// indented content follows; trailing blanks are trimmed.
func parseNoteBlock(lines []string, start, blockIndent int) (string, int) {
	var noteLines []string
	idx := start
	inFence := false

	for idx < len(lines) {
		line := lines[idx]
		lineIndent := countIndent(line)

		if inFence {
			noteLines = append(noteLines, stripBlockIndent(line, blockIndent))
			if strings.HasPrefix(strings.TrimSpace(line), "```") && idx != start {
				if lineIndent >= blockIndent && strings.HasPrefix(strings.TrimLeftFunc(line[blockIndent:], unicode.IsSpace), "```") {
					inFence = false
				}
			}
			idx++
			continue
		}

		if isBlank(line) {
			if hasContinuationAtIndent(lines, idx+1, blockIndent) {
				noteLines = append(noteLines, "")
				idx++
				continue
			}
			break
		}

		if lineIndent < blockIndent {
			break
		}

		stripped := stripBlockIndent(line, blockIndent)
		if strings.HasPrefix(strings.TrimLeftFunc(stripped, unicode.IsSpace), "```") {
			inFence = true
		}
		noteLines = append(noteLines, stripped)
		idx++
	}

	for len(noteLines) > 0 && noteLines[len(noteLines)-1] == "" {
		noteLines = noteLines[:len(noteLines)-1]
	}

	return strings.Join(noteLines, "\n"), idx
}

// stripBlockIndent removes the block indent, preserving deeper relative
// indentation.
func stripBlockIndent(line string, blockIndent int) string {
	switch {
	case len(line) >= blockIndent:
		return line[blockIndent:]
	case isBlank(line):
		return ""
	default:
		return strings.TrimLeftFunc(line, unicode.IsSpace)
	}
}
