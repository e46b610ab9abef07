package mutate

import (
	"fmt"
	"time"

	"trail-cli/internal/model"
	"trail-cli/internal/parse"
)

// AddResult reports a created task and where it landed.
type AddResult struct {
	Task    *model.Task `json:"task"`
	TrackID string      `json:"trackId"`
	Index   int         `json:"index"`
}

// AddTask mints the next ID under the track's prefix and inserts a new todo
// task into the Backlog. Title and tags are split out of text, and the task
// gets today's added date.
func AddTask(project *model.Project, trackID, text string, pos Position, now time.Time) (AddResult, error) {
	track, ok := project.Track(trackID)
	if !ok {
		return AddResult{}, NotFoundError{Kind: "track", ID: trackID}
	}
	prefix, ok := project.Config.Prefix(trackID)
	if !ok {
		return AddResult{}, NoPrefixError{TrackID: trackID}
	}

	title, tags := parse.TitleAndTags(text)
	task := model.NewTask(model.StateTodo, mintID(project, prefix), title)
	task.Tags = tags
	task.Metadata = []model.Metadata{model.Added(now.Format(dateLayout))}

	backlog := track.EnsureSection(model.SectionBacklog)
	list, idx, err := insertTask(backlog.Tasks, task, pos)
	if err != nil {
		return AddResult{}, err
	}
	backlog.Tasks = list
	return AddResult{Task: task, TrackID: trackID, Index: idx}, nil
}

// AddSubtask creates a child under parentID, failing when the parent is
// already at the deepest allowed level. The child ID extends the parent's
// with the next free ordinal.
func AddSubtask(project *model.Project, parentID, text string, pos Position, now time.Time) (AddResult, error) {
	parent, trackID, err := findTask(project, parentID)
	if err != nil {
		return AddResult{}, err
	}
	if parent.Depth >= 2 {
		return AddResult{}, ErrMaxDepth
	}

	title, tags := parse.TitleAndTags(text)
	id := ""
	if parent.ID != "" {
		id = fmt.Sprintf("%s.%d", parent.ID, nextChildOrdinal(parent))
	}
	task := model.NewTask(model.StateTodo, id, title)
	task.Tags = tags
	task.Depth = parent.Depth + 1
	task.Metadata = []model.Metadata{model.Added(now.Format(dateLayout))}

	list, idx, err := insertTask(parent.Subtasks, task, pos)
	if err != nil {
		return AddResult{}, err
	}
	parent.Subtasks = list
	return AddResult{Task: task, TrackID: trackID, Index: idx}, nil
}
