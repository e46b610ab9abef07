package mutate

import (
	"strings"

	"trail-cli/internal/model"
	"trail-cli/internal/parse"
)

// EditResult reports a field edit with the prior values an undo needs.
type EditResult struct {
	Task     *model.Task `json:"task"`
	TrackID  string      `json:"trackId"`
	Changed  bool        `json:"changed"`
	OldTitle string      `json:"oldTitle,omitempty"`
	OldTags  []string    `json:"oldTags,omitempty"`
	OldText  string      `json:"oldText,omitempty"`
}

// EditTitle replaces the title with the one parsed from text. Tags found in
// text are unioned into the task's tags; tags absent from text are kept.
func EditTitle(project *model.Project, id, text string) (EditResult, error) {
	task, trackID, err := findTask(project, id)
	if err != nil {
		return EditResult{}, err
	}
	res := EditResult{
		Task:     task,
		TrackID:  trackID,
		OldTitle: task.Title,
		OldTags:  append([]string(nil), task.Tags...),
	}

	title, tags := parse.TitleAndTags(text)
	if title != task.Title {
		task.Title = title
		res.Changed = true
	}
	for _, tag := range tags {
		if !task.HasTag(tag) {
			task.Tags = append(task.Tags, tag)
			res.Changed = true
		}
	}
	if res.Changed {
		task.MarkDirty()
	}
	return res, nil
}

// AddTag appends a tag, accepting it with or without the leading '#'.
// Adding a tag the task already has is a no-op.
func AddTag(project *model.Project, id, tag string) (EditResult, error) {
	task, trackID, err := findTask(project, id)
	if err != nil {
		return EditResult{}, err
	}
	tag = strings.TrimPrefix(tag, "#")
	res := EditResult{Task: task, TrackID: trackID}
	if tag == "" || task.HasTag(tag) {
		return res, nil
	}
	task.Tags = append(task.Tags, tag)
	task.MarkDirty()
	res.Changed = true
	return res, nil
}

// RemoveTag drops a tag. Removing a tag the task does not have is a no-op.
func RemoveTag(project *model.Project, id, tag string) (EditResult, error) {
	task, trackID, err := findTask(project, id)
	if err != nil {
		return EditResult{}, err
	}
	tag = strings.TrimPrefix(tag, "#")
	res := EditResult{Task: task, TrackID: trackID}
	kept := task.Tags[:0]
	for _, x := range task.Tags {
		if x == tag {
			res.Changed = true
			continue
		}
		kept = append(kept, x)
	}
	if res.Changed {
		task.Tags = kept
		task.MarkDirty()
	}
	return res, nil
}
