package mutate

import (
	"fmt"
	"time"

	"trail-cli/internal/check"
	"trail-cli/internal/model"
)

// CleanReport describes everything a clean pass did to the in-memory
// project. Callers decide whether to persist; a dry run is a Clean whose
// result is discarded.
type CleanReport struct {
	AssignedIDs   []string       `json:"assignedIds,omitempty"`
	AssignedDates []string       `json:"assignedDates,omitempty"`
	Duplicates    []DuplicateFix `json:"duplicates,omitempty"`
	Suggestions   []string       `json:"suggestions,omitempty"`
	// Archived holds the Done-section overflow cut from each track, oldest
	// first, for the caller to append to that track's archive file.
	Archived map[string][]*model.Task `json:"-"`
	// ArchivedCounts mirrors Archived for serialized output.
	ArchivedCounts map[string]int `json:"archived,omitempty"`
	// Touched names the tracks whose files need rewriting.
	Touched map[string]bool `json:"-"`
	Check   check.Report    `json:"check"`
}

// Changed reports whether the pass altered anything.
func (r CleanReport) Changed() bool {
	return len(r.AssignedIDs) > 0 || len(r.AssignedDates) > 0 ||
		len(r.Duplicates) > 0 || len(r.Archived) > 0
}

// DuplicateFix records one duplicate-ID reassignment.
type DuplicateFix struct {
	TrackID string `json:"trackId"`
	OldID   string `json:"oldId"`
	NewID   string `json:"newId"`
}

// Clean runs the hygiene pipeline over the loaded project: assign missing
// IDs, assign missing added dates, reassign duplicate IDs (the first
// occurrence in config order keeps the ID; dep references are left alone,
// the validator surfaces any that dangle), run the validator, suggest
// closing parents whose subtasks are all done, and cut Done-section
// overflow for archiving. Summary regeneration and all file writes are the
// caller's job.
func Clean(project *model.Project, now time.Time) CleanReport {
	report := CleanReport{
		Archived: map[string][]*model.Task{},
		Touched:  map[string]bool{},
	}

	assignMissingIDs(project, &report)
	assignMissingDates(project, now, &report)
	resolveDuplicates(project, &report)
	report.Check = check.CheckProject(project)
	collectSuggestions(project, &report)
	archiveOverflow(project, &report)

	if len(report.Archived) > 0 {
		report.ArchivedCounts = map[string]int{}
		for id, tasks := range report.Archived {
			report.ArchivedCounts[id] = len(tasks)
		}
	}
	return report
}

// assignMissingIDs mints IDs for top-level tasks and derives ordinals for
// subtasks. Tracks with no configured prefix are skipped; the validator
// reports their tasks as missing IDs.
func assignMissingIDs(project *model.Project, report *CleanReport) {
	for _, entry := range project.Tracks {
		prefix, ok := project.Config.Prefix(entry.ID)
		if !ok {
			continue
		}
		for _, section := range entry.Track.Sections() {
			for _, task := range section.Tasks {
				if task.ID == "" {
					task.ID = mintID(project, prefix)
					task.MarkDirty()
					report.AssignedIDs = append(report.AssignedIDs, task.ID)
					report.Touched[entry.ID] = true
				}
			}
		}
		entry.Track.WalkTasks(func(parent *model.Task) {
			if parent.ID == "" {
				return
			}
			for _, sub := range parent.Subtasks {
				if sub.ID == "" {
					sub.ID = fmt.Sprintf("%s.%d", parent.ID, nextChildOrdinal(parent))
					sub.MarkDirty()
					report.AssignedIDs = append(report.AssignedIDs, sub.ID)
					report.Touched[entry.ID] = true
				}
			}
		})
	}
}

func assignMissingDates(project *model.Project, now time.Time, report *CleanReport) {
	today := now.Format(dateLayout)
	for _, entry := range project.Tracks {
		entry.Track.WalkTasks(func(task *model.Task) {
			if task.ID == "" || task.HasMeta(model.MetaAdded) {
				return
			}
			task.Metadata = append(task.Metadata, model.Added(today))
			task.MarkDirty()
			report.AssignedDates = append(report.AssignedDates, task.ID)
			report.Touched[entry.ID] = true
		})
	}
}

// resolveDuplicates walks the project in config order; the first holder of
// an ID keeps it, later ones get a fresh ID and a renumbered subtree.
func resolveDuplicates(project *model.Project, report *CleanReport) {
	seen := map[string]bool{}
	for _, entry := range project.Tracks {
		prefix, hasPrefix := project.Config.Prefix(entry.ID)
		for _, section := range entry.Track.Sections() {
			for _, task := range section.Tasks {
				fixDuplicates(project, entry.ID, nil, task, prefix, hasPrefix, seen, report)
			}
		}
	}
}

func fixDuplicates(project *model.Project, trackID string, parent, task *model.Task, prefix string, hasPrefix bool, seen map[string]bool, report *CleanReport) {
	if task.ID != "" {
		if seen[task.ID] {
			old := task.ID
			switch {
			case parent != nil && parent.ID != "":
				task.ID = fmt.Sprintf("%s.%d", parent.ID, nextChildOrdinal(parent))
			case parent == nil && hasPrefix:
				task.ID = mintID(project, prefix)
			}
			if task.ID != old {
				task.MarkDirty()
				renumberSubtasks(task, map[string]string{})
				report.Duplicates = append(report.Duplicates, DuplicateFix{TrackID: trackID, OldID: old, NewID: task.ID})
				report.Touched[trackID] = true
			}
		}
		seen[task.ID] = true
	}
	for _, sub := range task.Subtasks {
		fixDuplicates(project, trackID, task, sub, prefix, hasPrefix, seen, report)
	}
}

// collectSuggestions finds open parents whose whole subtree is done.
func collectSuggestions(project *model.Project, report *CleanReport) {
	for _, entry := range project.Tracks {
		entry.Track.WalkTasks(func(task *model.Task) {
			if task.State == model.StateDone || len(task.Subtasks) == 0 {
				return
			}
			if allDone(task.Subtasks) {
				report.Suggestions = append(report.Suggestions, task.ID)
			}
		})
	}
}

func allDone(tasks []*model.Task) bool {
	for _, task := range tasks {
		if task.State != model.StateDone || !allDone(task.Subtasks) {
			return false
		}
	}
	return true
}

// archiveOverflow cuts the oldest Done tasks once a track's Done section
// outgrows the threshold, leaving the newest done_retain in place.
func archiveOverflow(project *model.Project, report *CleanReport) {
	threshold := project.Config.Clean.DoneThreshold
	retain := project.Config.Clean.DoneRetain
	if threshold <= 0 {
		return
	}
	if retain < 0 {
		retain = 0
	}
	for _, entry := range project.Tracks {
		done := entry.Track.Section(model.SectionDone)
		if done == nil || len(done.Tasks) <= threshold {
			continue
		}
		cut := len(done.Tasks) - retain
		if cut <= 0 {
			continue
		}
		report.Archived[entry.ID] = done.Tasks[:cut]
		done.Tasks = append([]*model.Task{}, done.Tasks[cut:]...)
		report.Touched[entry.ID] = true
	}
}
