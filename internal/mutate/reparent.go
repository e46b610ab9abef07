package mutate

import (
	"fmt"

	"trail-cli/internal/model"
)

// ReparentResult reports moving a task under a new parent.
type ReparentResult struct {
	Task        *model.Task       `json:"task"`
	TrackID     string            `json:"trackId"`
	OldID       string            `json:"oldId"`
	NewID       string            `json:"newId"`
	OldParentID string            `json:"oldParentId,omitempty"`
	NewParentID string            `json:"newParentId,omitempty"`
	Renames     map[string]string `json:"renames,omitempty"`
	DepRewrites int               `json:"depRewrites"`
	Changed     bool              `json:"changed"`
}

// Reparent moves a task and its subtree under a new parent in the same
// track, re-keying the subtree and rewriting dep references everywhere. An
// empty newParentID moves the task to the top level of the Backlog, minting
// a fresh top-level ID.
func Reparent(project *model.Project, id, newParentID string) (ReparentResult, error) {
	task, trackID, err := findTask(project, id)
	if err != nil {
		return ReparentResult{}, err
	}
	track, _ := project.Track(trackID)

	res := ReparentResult{Task: task, TrackID: trackID, OldID: id, NewID: id, NewParentID: newParentID}
	oldParent, oldIdx, nested := parentOf(track, id)
	if nested {
		res.OldParentID = oldParent.ID
	}

	var newParent *model.Task
	if newParentID != "" {
		newParent, _ = track.FindTask(newParentID)
		if newParent == nil {
			return ReparentResult{}, NotFoundError{Kind: "task", ID: newParentID}
		}
		if isWithin(task, newParentID) {
			return ReparentResult{}, ErrCycle
		}
		if newParent.Depth+1+subtreeHeight(task) > 2 {
			return ReparentResult{}, ErrDepthExceeded
		}
		if nested && oldParent == newParent {
			return res, nil
		}
	} else if !nested {
		return res, nil
	}

	var prefix string
	if newParentID == "" {
		var ok bool
		prefix, ok = project.Config.Prefix(trackID)
		if !ok {
			return ReparentResult{}, NoPrefixError{TrackID: trackID}
		}
	}

	// Detach.
	if nested {
		oldParent.Subtasks = removeAt(oldParent.Subtasks, oldIdx)
	} else {
		section, i, ok := topLevelLocation(track, id)
		if !ok {
			return ReparentResult{}, NotFoundError{Kind: "task", ID: id}
		}
		section.Tasks = removeAt(section.Tasks, i)
	}

	// Re-key and attach.
	renames := map[string]string{}
	if newParent != nil {
		if newParent.ID != "" && task.ID != "" {
			newID := fmt.Sprintf("%s.%d", newParent.ID, nextChildOrdinal(newParent))
			renames[task.ID] = newID
			task.ID = newID
		}
		setDepths(task, newParent.Depth+1)
		newParent.Subtasks = append(newParent.Subtasks, task)
	} else {
		newID := mintID(project, prefix)
		if task.ID != "" {
			renames[task.ID] = newID
		}
		task.ID = newID
		setDepths(task, 0)
		backlog := track.EnsureSection(model.SectionBacklog)
		backlog.Tasks = append(backlog.Tasks, task)
	}
	task.MarkDirty()
	renumberSubtasks(task, renames)

	res.NewID = task.ID
	res.Renames = renames
	res.DepRewrites = rewriteDeps(project, renames)
	res.Changed = true
	return res, nil
}
