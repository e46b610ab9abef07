// Package check validates a whole project and reports problems without
// mutating or failing.
package check

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"trail-cli/internal/model"
)

// Issue is one finding. Errors and warnings share the shape; Tracks is only
// set for duplicate IDs and lists every track the ID occurs in, repeats
// included.
type Issue struct {
	Kind    string   `json:"kind"`
	TrackID string   `json:"trackId,omitempty"`
	TaskID  string   `json:"taskId,omitempty"`
	Detail  string   `json:"detail,omitempty"`
	Tracks  []string `json:"tracks,omitempty"`
}

// Report is the validator's result. Valid is true exactly when there are no
// errors; warnings never block.
type Report struct {
	Valid    bool    `json:"valid"`
	Errors   []Issue `json:"errors"`
	Warnings []Issue `json:"warnings"`
}

// CheckProject walks every track and reports dangling deps, broken ref and
// spec paths, duplicate IDs, and the non-blocking hygiene warnings,
// including inbox lines the parser had to drop. Spec fragments are stripped
// before the existence check but reported with the fragment intact. Paths
// with a scheme are not checked.
func CheckProject(project *model.Project) Report {
	var report Report

	// First pass: every ID and where it lives, in document order.
	var seen []string
	occurrences := make(map[string][]string)
	for _, entry := range project.Tracks {
		entry.Track.WalkTasks(func(task *model.Task) {
			if task.ID == "" {
				return
			}
			if _, ok := occurrences[task.ID]; !ok {
				seen = append(seen, task.ID)
			}
			occurrences[task.ID] = append(occurrences[task.ID], entry.ID)
		})
	}

	for _, entry := range project.Tracks {
		trackID := entry.ID
		entry.Track.WalkTasks(func(task *model.Task) {
			for _, dep := range task.Deps() {
				if len(occurrences[dep]) == 0 {
					report.Errors = append(report.Errors, Issue{
						Kind:    "dangling_dep",
						TrackID: trackID,
						TaskID:  task.ID,
						Detail:  dep,
					})
				}
			}
			for _, ref := range task.Refs() {
				if !pathExists(project.Root, ref) {
					report.Errors = append(report.Errors, Issue{
						Kind:    "broken_ref",
						TrackID: trackID,
						TaskID:  task.ID,
						Detail:  ref,
					})
				}
			}
			if spec, ok := task.Spec(); ok {
				path, _, _ := strings.Cut(spec, "#")
				if !pathExists(project.Root, path) {
					report.Errors = append(report.Errors, Issue{
						Kind:    "broken_spec",
						TrackID: trackID,
						TaskID:  task.ID,
						Detail:  spec,
					})
				}
			}

			if task.ID == "" {
				report.Warnings = append(report.Warnings, Issue{
					Kind:    "missing_id",
					TrackID: trackID,
					Detail:  task.Title,
				})
			} else if _, ok := task.AddedDate(); !ok {
				report.Warnings = append(report.Warnings, Issue{
					Kind:    "missing_added",
					TrackID: trackID,
					TaskID:  task.ID,
				})
			}
			if task.State == model.StateDone {
				if _, ok := task.ResolvedDate(); !ok {
					report.Warnings = append(report.Warnings, Issue{
						Kind:    "missing_resolved",
						TrackID: trackID,
						TaskID:  task.ID,
					})
				}
			}
		})

		if backlog := entry.Track.Section(model.SectionBacklog); backlog != nil {
			for _, task := range backlog.Tasks {
				if task.State == model.StateDone {
					report.Warnings = append(report.Warnings, Issue{
						Kind:    "done_in_backlog",
						TrackID: trackID,
						TaskID:  task.ID,
					})
				}
			}
		}
	}

	if project.Inbox != nil {
		for _, dropped := range project.Inbox.Dropped {
			report.Warnings = append(report.Warnings, Issue{
				Kind:   "inbox_dropped",
				Detail: fmt.Sprintf("line %d: %s", dropped.Line, dropped.Text),
			})
		}
	}

	for _, id := range seen {
		if tracks := occurrences[id]; len(tracks) > 1 {
			report.Errors = append(report.Errors, Issue{
				Kind:   "duplicate_id",
				TaskID: id,
				Tracks: tracks,
			})
		}
	}

	report.Valid = len(report.Errors) == 0
	return report
}

func pathExists(root, path string) bool {
	if path == "" {
		return false
	}
	if strings.Contains(path, "://") {
		return true
	}
	_, err := os.Stat(filepath.Join(root, path))
	return err == nil
}
