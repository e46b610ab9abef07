// Package publish renders generated project documents.
package publish

import (
	"strings"

	"trail-cli/internal/model"
)

// ActiveSummary renders the ACTIVE.md content: one section per active
// track with its top-level backlog snapshot. Shelved and archived tracks
// are skipped.
func ActiveSummary(project *model.Project) string {
	var lines []string
	lines = append(lines, "# "+project.Config.Project.Name+" — Active Tasks")
	lines = append(lines, "")
	lines = append(lines, "> Auto-generated by `trail clean`. Do not edit.")
	lines = append(lines, "")

	for _, tc := range project.Config.Tracks {
		if tc.State != model.TrackStateActive {
			continue
		}
		track, ok := project.Track(tc.ID)
		if !ok {
			continue
		}

		lines = append(lines, "## "+track.Title)
		lines = append(lines, "")

		backlog := track.Backlog()
		if len(backlog) == 0 {
			lines = append(lines, "(empty backlog)")
		} else {
			for _, task := range backlog {
				lines = append(lines, taskLine(task))
			}
		}
		lines = append(lines, "")
	}

	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return strings.Join(lines, "\n")
}

func taskLine(task *model.Task) string {
	var b strings.Builder
	b.WriteString("- [")
	b.WriteByte(task.State.Char())
	b.WriteString("] ")
	if task.ID != "" {
		b.WriteString("`")
		b.WriteString(task.ID)
		b.WriteString("` ")
	}
	b.WriteString(task.Title)
	for _, tag := range task.Tags {
		b.WriteString(" #")
		b.WriteString(tag)
	}
	return b.String()
}
