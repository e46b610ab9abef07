package mutate

import "trail-cli/internal/model"

// DeletedTask records a physical removal with everything Reinsert needs to
// put the subtree back.
type DeletedTask struct {
	TrackID  string            `json:"trackId"`
	Section  model.SectionKind `json:"section,omitempty"`
	ParentID string            `json:"parentId,omitempty"`
	Index    int               `json:"index"`
	Task     *model.Task       `json:"task"`
}

// HardDelete physically removes a task and its subtree from its track.
func HardDelete(project *model.Project, id string) (DeletedTask, error) {
	task, trackID, err := findTask(project, id)
	if err != nil {
		return DeletedTask{}, err
	}
	track, _ := project.Track(trackID)

	if parent, i, ok := parentOf(track, id); ok {
		parent.Subtasks = removeAt(parent.Subtasks, i)
		return DeletedTask{TrackID: trackID, ParentID: parent.ID, Index: i, Task: task}, nil
	}
	section, i, ok := topLevelLocation(track, id)
	if !ok {
		return DeletedTask{}, NotFoundError{Kind: "task", ID: id}
	}
	section.Tasks = removeAt(section.Tasks, i)
	return DeletedTask{TrackID: trackID, Section: section.Kind, Index: i, Task: task}, nil
}

// Reinsert restores a hard-deleted subtree to where it was. When the list
// has shrunk since, the task lands at the end.
func Reinsert(project *model.Project, del DeletedTask) error {
	track, ok := project.Track(del.TrackID)
	if !ok {
		return NotFoundError{Kind: "track", ID: del.TrackID}
	}

	if del.ParentID != "" {
		parent, ok := track.FindTask(del.ParentID)
		if !ok {
			return NotFoundError{Kind: "task", ID: del.ParentID}
		}
		parent.Subtasks = insertAt(parent.Subtasks, del.Task, del.Index)
		return nil
	}
	section := track.EnsureSection(del.Section)
	section.Tasks = insertAt(section.Tasks, del.Task, del.Index)
	return nil
}

func insertAt(list []*model.Task, task *model.Task, i int) []*model.Task {
	if i > len(list) {
		i = len(list)
	}
	out := make([]*model.Task, 0, len(list)+1)
	out = append(out, list[:i]...)
	out = append(out, task)
	return append(out, list[i:]...)
}
