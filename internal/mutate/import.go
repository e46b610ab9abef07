package mutate

import (
	"fmt"
	"strings"
	"time"

	"trail-cli/internal/model"
	"trail-cli/internal/parse"
)

// ImportResult reports what an import added, top-level and nested IDs both
// in assignment order.
type ImportResult struct {
	TrackID string   `json:"trackId"`
	IDs     []string `json:"ids"`
}

// ImportMarkdown pulls task lines out of arbitrary markdown and inserts
// them into a track's Backlog. Headers, prose, and bare bullets are
// skipped, so tasks separated by such lines still import as one batch.
// Every imported task gets a fresh ID continuing from the project's max
// under the track's prefix; added dates already present in the source are
// preserved, everything else gets today's.
func ImportMarkdown(project *model.Project, trackID, src string, pos Position, now time.Time) (ImportResult, error) {
	track, ok := project.Track(trackID)
	if !ok {
		return ImportResult{}, NotFoundError{Kind: "track", ID: trackID}
	}
	prefix, ok := project.Config.Prefix(trackID)
	if !ok {
		return ImportResult{}, NoPrefixError{TrackID: trackID}
	}

	lines := taskLinesOnly(src)
	tasks, _ := parse.Tasks(lines, 0, 0, 0)
	res := ImportResult{TrackID: trackID}
	if len(tasks) == 0 {
		return res, nil
	}

	backlog := track.EnsureSection(model.SectionBacklog)
	if err := siblingPresent(backlog.Tasks, pos); err != nil {
		return ImportResult{}, err
	}

	n := nextNumber(project, prefix)
	for _, task := range tasks {
		assignImportedIDs(task, formatID(prefix, n), now, &res.IDs)
		n++
	}

	switch pos.kind {
	case positionTop:
		backlog.Tasks = append(append([]*model.Task{}, tasks...), backlog.Tasks...)
	case positionAfter:
		for i, sibling := range backlog.Tasks {
			if sibling.ID == pos.after {
				out := make([]*model.Task, 0, len(backlog.Tasks)+len(tasks))
				out = append(out, backlog.Tasks[:i+1]...)
				out = append(out, tasks...)
				out = append(out, backlog.Tasks[i+1:]...)
				backlog.Tasks = out
				break
			}
		}
	default:
		backlog.Tasks = append(backlog.Tasks, tasks...)
	}
	return res, nil
}

// taskLinesOnly keeps checkbox task lines and metadata list lines, dropping
// everything else so foreign markdown structure cannot end the task scan.
func taskLinesOnly(src string) []string {
	var out []string
	for _, line := range strings.Split(src, "\n") {
		trimmed := strings.TrimSpace(line)
		if isTaskShaped(trimmed) || isMetadataShaped(trimmed) {
			out = append(out, line)
		}
	}
	return out
}

func isTaskShaped(trimmed string) bool {
	return len(trimmed) >= 5 && strings.HasPrefix(trimmed, "- [") && trimmed[4] == ']'
}

func isMetadataShaped(trimmed string) bool {
	rest, ok := strings.CutPrefix(trimmed, "- ")
	if !ok {
		return false
	}
	key, _, ok := strings.Cut(rest, ":")
	if !ok {
		return false
	}
	switch key {
	case "dep", "ref", "spec", "note", "added", "resolved":
		return true
	}
	return false
}

func assignImportedIDs(task *model.Task, id string, now time.Time, ids *[]string) {
	task.ID = id
	task.MarkDirty()
	*ids = append(*ids, id)
	if !task.HasMeta(model.MetaAdded) {
		task.Metadata = append(task.Metadata, model.Added(now.Format(dateLayout)))
	}
	for i, sub := range task.Subtasks {
		assignImportedIDs(sub, fmt.Sprintf("%s.%d", id, i+1), now, ids)
	}
}
