package parse

import (
	"strings"

	"trail-cli/internal/model"
)

// Track parses a track file. `# Title` sets the title and `> text` the
// description; both also stay in the literal stream so round-trips are
// exact. `## Backlog`, `## Parked`, and `## Done` (case-insensitive) open
// task sections; any other heading or line is literal.
func Track(src string) *model.Track {
	lines := splitLines(src)

	track := &model.Track{SourceLines: lines}
	var literal []string

	flush := func() {
		if len(literal) > 0 {
			track.Nodes = append(track.Nodes, &model.Node{Literal: literal})
			literal = nil
		}
	}

	idx := 0
	for idx < len(lines) {
		line := lines[idx]
		trimmed := strings.TrimSpace(line)

		if strings.HasPrefix(trimmed, "# ") && !strings.HasPrefix(trimmed, "## ") {
			flush()
			track.Title = trimmed[2:]
			literal = append(literal, line)
			idx++
			continue
		}

		if desc, ok := strings.CutPrefix(trimmed, "> "); ok {
			flush()
			track.Description = desc
			literal = append(literal, line)
			idx++
			continue
		}

		if name, ok := strings.CutPrefix(trimmed, "## "); ok {
			if kind, ok := sectionKind(strings.TrimSpace(name)); ok {
				flush()

				header := []string{line}
				idx++
				for idx < len(lines) && isBlank(lines[idx]) {
					header = append(header, lines[idx])
					idx++
				}

				var tasks []*model.Task
				tasks, idx = Tasks(lines, idx, 0, 0)

				var trailing []string
				for idx < len(lines) && isBlank(lines[idx]) {
					trailing = append(trailing, lines[idx])
					idx++
				}

				track.Nodes = append(track.Nodes, &model.Node{Section: &model.Section{
					Kind:     kind,
					Header:   header,
					Tasks:    tasks,
					Trailing: trailing,
				}})
				continue
			}
		}

		literal = append(literal, line)
		idx++
	}

	flush()
	return track
}

func sectionKind(name string) (model.SectionKind, bool) {
	switch strings.ToLower(name) {
	case "backlog":
		return model.SectionBacklog, true
	case "parked":
		return model.SectionParked, true
	case "done":
		return model.SectionDone, true
	}
	return "", false
}
