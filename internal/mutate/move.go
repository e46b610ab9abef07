package mutate

import "trail-cli/internal/model"

// MoveResult reports a repositioning within a Backlog.
type MoveResult struct {
	TrackID  string `json:"trackId"`
	OldIndex int    `json:"oldIndex"`
	NewIndex int    `json:"newIndex"`
	Changed  bool   `json:"changed"`
}

// MoveTask repositions a top-level Backlog task. Tasks in other sections
// and subtasks are reported as not found; use MoveTaskBetweenSections or
// Reparent for those.
func MoveTask(project *model.Project, id string, pos Position) (MoveResult, error) {
	if id == "" {
		return MoveResult{}, NotFoundError{Kind: "task", ID: id}
	}
	for _, entry := range project.Tracks {
		backlog := entry.Track.Section(model.SectionBacklog)
		if backlog == nil {
			continue
		}
		for i, task := range backlog.Tasks {
			if task.ID != id {
				continue
			}
			rest := removeAt(backlog.Tasks, i)
			list, idx, err := insertTask(rest, task, pos)
			if err != nil {
				return MoveResult{}, err
			}
			backlog.Tasks = list
			return MoveResult{TrackID: entry.ID, OldIndex: i, NewIndex: idx, Changed: idx != i}, nil
		}
	}
	return MoveResult{}, NotFoundError{Kind: "task", ID: id}
}

// MoveTaskToIndex repositions a top-level Backlog task to an exact index,
// clamped to the list. Undo paths use it to restore recorded positions.
func MoveTaskToIndex(project *model.Project, id string, index int) (MoveResult, error) {
	if id == "" {
		return MoveResult{}, NotFoundError{Kind: "task", ID: id}
	}
	for _, entry := range project.Tracks {
		backlog := entry.Track.Section(model.SectionBacklog)
		if backlog == nil {
			continue
		}
		for i, task := range backlog.Tasks {
			if task.ID != id {
				continue
			}
			rest := removeAt(backlog.Tasks, i)
			if index > len(rest) {
				index = len(rest)
			}
			if index < 0 {
				index = 0
			}
			backlog.Tasks = insertAt(rest, task, index)
			return MoveResult{TrackID: entry.ID, OldIndex: i, NewIndex: index, Changed: index != i}, nil
		}
	}
	return MoveResult{}, NotFoundError{Kind: "task", ID: id}
}

// SectionMoveResult reports moving a subtree between sections.
type SectionMoveResult struct {
	TrackID string            `json:"trackId"`
	From    model.SectionKind `json:"from"`
	To      model.SectionKind `json:"to"`
	Index   int               `json:"index"`
	Changed bool              `json:"changed"`
}

// MoveTaskBetweenSections relocates a top-level task and its whole subtree
// to the end of another section of the same track. A nested ID is reported
// as not found; subtasks never move independently of their parent.
func MoveTaskBetweenSections(project *model.Project, id string, to model.SectionKind) (SectionMoveResult, error) {
	for _, entry := range project.Tracks {
		section, i, ok := topLevelLocation(entry.Track, id)
		if !ok {
			continue
		}
		res := SectionMoveResult{TrackID: entry.ID, From: section.Kind, To: to, Index: i}
		if section.Kind == to {
			return res, nil
		}
		task := section.Tasks[i]
		section.Tasks = removeAt(section.Tasks, i)
		dest := entry.Track.EnsureSection(to)
		dest.Tasks = append(dest.Tasks, task)
		res.Index = len(dest.Tasks) - 1
		res.Changed = true
		return res, nil
	}
	return SectionMoveResult{}, NotFoundError{Kind: "task", ID: id}
}

// MoveTaskToSectionIndex relocates a top-level task into a section at an
// exact index, clamped to the list. Undo paths use it to restore recorded
// positions.
func MoveTaskToSectionIndex(project *model.Project, id string, to model.SectionKind, index int) (SectionMoveResult, error) {
	for _, entry := range project.Tracks {
		section, i, ok := topLevelLocation(entry.Track, id)
		if !ok {
			continue
		}
		res := SectionMoveResult{TrackID: entry.ID, From: section.Kind, To: to}
		task := section.Tasks[i]
		section.Tasks = removeAt(section.Tasks, i)
		dest := entry.Track.EnsureSection(to)
		if index > len(dest.Tasks) {
			index = len(dest.Tasks)
		}
		if index < 0 {
			index = 0
		}
		dest.Tasks = insertAt(dest.Tasks, task, index)
		res.Index = index
		res.Changed = section.Kind != to || index != i
		return res, nil
	}
	return SectionMoveResult{}, NotFoundError{Kind: "task", ID: id}
}

// TrackMoveResult reports a cross-track move: the new ID, every subtask
// rename, and how many dep references were rewritten project-wide.
type TrackMoveResult struct {
	Task        *model.Task       `json:"task"`
	OldID       string            `json:"oldId"`
	NewID       string            `json:"newId"`
	FromTrack   string            `json:"fromTrack"`
	ToTrack     string            `json:"toTrack"`
	Renames     map[string]string `json:"renames,omitempty"`
	DepRewrites int               `json:"depRewrites"`
}

// MoveTaskToTrack pulls a top-level Backlog task out of its track, mints a
// fresh ID under the destination prefix, renumbers the subtree, inserts it
// into the destination Backlog, and rewrites every dep reference to a
// renamed ID in every track.
func MoveTaskToTrack(project *model.Project, id, destTrackID string, pos Position) (TrackMoveResult, error) {
	destTrack, ok := project.Track(destTrackID)
	if !ok {
		return TrackMoveResult{}, NotFoundError{Kind: "track", ID: destTrackID}
	}
	prefix, ok := project.Config.Prefix(destTrackID)
	if !ok {
		return TrackMoveResult{}, NoPrefixError{TrackID: destTrackID}
	}
	if id == "" {
		return TrackMoveResult{}, NotFoundError{Kind: "task", ID: id}
	}

	for _, entry := range project.Tracks {
		backlog := entry.Track.Section(model.SectionBacklog)
		if backlog == nil {
			continue
		}
		for i, task := range backlog.Tasks {
			if task.ID != id {
				continue
			}
			// The moved task cannot anchor its own insertion.
			if pos.kind == positionAfter && pos.after == id {
				return TrackMoveResult{}, NotFoundError{Kind: "task", ID: pos.after}
			}
			destBacklog := destTrack.EnsureSection(model.SectionBacklog)
			if err := siblingPresent(destBacklog.Tasks, pos); err != nil {
				return TrackMoveResult{}, err
			}

			newID := mintID(project, prefix)
			renames := map[string]string{id: newID}
			task.ID = newID
			task.MarkDirty()
			renumberSubtasks(task, renames)

			backlog.Tasks = removeAt(backlog.Tasks, i)
			list, _, err := insertTask(destBacklog.Tasks, task, pos)
			if err != nil {
				return TrackMoveResult{}, err
			}
			destBacklog.Tasks = list

			return TrackMoveResult{
				Task:        task,
				OldID:       id,
				NewID:       newID,
				FromTrack:   entry.ID,
				ToTrack:     destTrackID,
				Renames:     renames,
				DepRewrites: rewriteDeps(project, renames),
			}, nil
		}
	}
	return TrackMoveResult{}, NotFoundError{Kind: "task", ID: id}
}
