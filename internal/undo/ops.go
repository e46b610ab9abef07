package undo

import (
	"trail-cli/internal/model"
	"trail-cli/internal/mutate"
)

func find(project *model.Project, id string) (*model.Task, error) {
	task, _, ok := project.FindTask(id)
	if !ok {
		return nil, mutate.NotFoundError{Kind: "task", ID: id}
	}
	return task, nil
}

// StateOp reverses a state change, restoring the resolved date either way.
type StateOp struct {
	TaskID      string
	From, To    model.State
	OldResolved string
	NewResolved string
}

// FromChange builds a StateOp out of a mutate result.
func FromChange(c mutate.StateChange) StateOp {
	return StateOp{
		TaskID:      c.Task.ID,
		From:        c.From,
		To:          c.To,
		OldResolved: c.OldResolved,
		NewResolved: c.NewResolved,
	}
}

func (o StateOp) Undo(project *model.Project) error {
	return o.apply(project, o.From, o.OldResolved)
}

func (o StateOp) Redo(project *model.Project) error {
	return o.apply(project, o.To, o.NewResolved)
}

func (o StateOp) apply(project *model.Project, state model.State, resolved string) error {
	task, err := find(project, o.TaskID)
	if err != nil {
		return err
	}
	task.State = state
	task.RemoveMeta(model.MetaResolved)
	if resolved != "" {
		task.Metadata = append(task.Metadata, model.Resolved(resolved))
	}
	task.MarkDirty()
	return nil
}

// TitleOp reverses a title edit, tags included.
type TitleOp struct {
	TaskID   string
	OldTitle string
	NewTitle string
	OldTags  []string
	NewTags  []string
}

func (o TitleOp) Undo(project *model.Project) error {
	return o.apply(project, o.OldTitle, o.OldTags)
}

func (o TitleOp) Redo(project *model.Project) error {
	return o.apply(project, o.NewTitle, o.NewTags)
}

func (o TitleOp) apply(project *model.Project, title string, tags []string) error {
	task, err := find(project, o.TaskID)
	if err != nil {
		return err
	}
	task.Title = title
	task.Tags = append([]string(nil), tags...)
	task.MarkDirty()
	return nil
}

// TagOp reverses a single tag addition or removal.
type TagOp struct {
	TaskID string
	Tag    string
	Added  bool
}

func (o TagOp) Undo(project *model.Project) error {
	if o.Added {
		return o.remove(project)
	}
	return o.add(project)
}

func (o TagOp) Redo(project *model.Project) error {
	if o.Added {
		return o.add(project)
	}
	return o.remove(project)
}

func (o TagOp) add(project *model.Project) error {
	_, err := mutate.AddTag(project, o.TaskID, o.Tag)
	return err
}

func (o TagOp) remove(project *model.Project) error {
	_, err := mutate.RemoveTag(project, o.TaskID, o.Tag)
	return err
}

// DepOp reverses a dependency addition or removal.
type DepOp struct {
	TaskID string
	DepID  string
	Added  bool
}

func (o DepOp) Undo(project *model.Project) error {
	if o.Added {
		_, err := mutate.RemoveDep(project, o.TaskID, o.DepID)
		return err
	}
	_, err := mutate.AddDep(project, o.TaskID, o.DepID)
	return err
}

func (o DepOp) Redo(project *model.Project) error {
	if o.Added {
		_, err := mutate.AddDep(project, o.TaskID, o.DepID)
		return err
	}
	_, err := mutate.RemoveDep(project, o.TaskID, o.DepID)
	return err
}

// RefOp reverses a reference addition or removal.
type RefOp struct {
	TaskID string
	Path   string
	Added  bool
}

func (o RefOp) Undo(project *model.Project) error {
	if o.Added {
		_, err := mutate.RemoveRef(project, o.TaskID, o.Path)
		return err
	}
	_, err := mutate.AddRef(project, o.TaskID, o.Path)
	return err
}

func (o RefOp) Redo(project *model.Project) error {
	if o.Added {
		_, err := mutate.AddRef(project, o.TaskID, o.Path)
		return err
	}
	_, err := mutate.RemoveRef(project, o.TaskID, o.Path)
	return err
}

// TextOp reverses a spec or note edit. An empty value means absent.
type TextOp struct {
	TaskID  string
	Kind    model.MetaKind
	OldText string
	NewText string
}

func (o TextOp) Undo(project *model.Project) error {
	return o.apply(project, o.OldText)
}

func (o TextOp) Redo(project *model.Project) error {
	return o.apply(project, o.NewText)
}

func (o TextOp) apply(project *model.Project, text string) error {
	var err error
	if o.Kind == model.MetaSpec {
		_, err = mutate.SetSpec(project, o.TaskID, text)
	} else {
		_, err = mutate.SetNote(project, o.TaskID, text)
	}
	return err
}

// AddOp reverses a task or subtask creation: undo deletes the subtree and
// keeps the removal record so redo can put it back exactly.
type AddOp struct {
	TaskID  string
	deleted *mutate.DeletedTask
}

func NewAddOp(taskID string) *AddOp {
	return &AddOp{TaskID: taskID}
}

func (o *AddOp) Undo(project *model.Project) error {
	del, err := mutate.HardDelete(project, o.TaskID)
	if err != nil {
		return err
	}
	o.deleted = &del
	return nil
}

func (o *AddOp) Redo(project *model.Project) error {
	if o.deleted == nil {
		return mutate.NotFoundError{Kind: "task", ID: o.TaskID}
	}
	return mutate.Reinsert(project, *o.deleted)
}

// MoveOp reverses a Backlog repositioning.
type MoveOp struct {
	TaskID   string
	OldIndex int
	NewIndex int
}

func (o MoveOp) Undo(project *model.Project) error {
	_, err := mutate.MoveTaskToIndex(project, o.TaskID, o.OldIndex)
	return err
}

func (o MoveOp) Redo(project *model.Project) error {
	_, err := mutate.MoveTaskToIndex(project, o.TaskID, o.NewIndex)
	return err
}

// SectionMoveOp reverses a move between sections, restoring the source
// index on undo.
type SectionMoveOp struct {
	TaskID    string
	From      model.SectionKind
	To        model.SectionKind
	FromIndex int
	ToIndex   int
}

func (o SectionMoveOp) Undo(project *model.Project) error {
	_, err := mutate.MoveTaskToSectionIndex(project, o.TaskID, o.From, o.FromIndex)
	return err
}

func (o SectionMoveOp) Redo(project *model.Project) error {
	_, err := mutate.MoveTaskToSectionIndex(project, o.TaskID, o.To, o.ToIndex)
	return err
}

// InboxAddOp reverses an inbox capture.
type InboxAddOp struct {
	Item *model.InboxItem
	Pos  int
}

func (o InboxAddOp) Undo(project *model.Project) error {
	_, err := mutate.RemoveInboxItem(project, o.Pos)
	return err
}

func (o InboxAddOp) Redo(project *model.Project) error {
	mutate.ReinsertInboxItem(project, o.Item, o.Pos)
	return nil
}

// InboxDeleteOp reverses an inbox removal.
type InboxDeleteOp struct {
	Item *model.InboxItem
	Pos  int
}

func (o InboxDeleteOp) Undo(project *model.Project) error {
	mutate.ReinsertInboxItem(project, o.Item, o.Pos)
	return nil
}

func (o InboxDeleteOp) Redo(project *model.Project) error {
	_, err := mutate.RemoveInboxItem(project, o.Pos)
	return err
}

// TriageOp reverses turning an inbox item into a task.
type TriageOp struct {
	TaskID  string
	Item    *model.InboxItem
	ItemPos int
	deleted *mutate.DeletedTask
}

func NewTriageOp(res mutate.TriageResult) *TriageOp {
	return &TriageOp{TaskID: res.Task.ID, Item: res.Item, ItemPos: res.ItemPos}
}

func (o *TriageOp) Undo(project *model.Project) error {
	del, err := mutate.HardDelete(project, o.TaskID)
	if err != nil {
		return err
	}
	o.deleted = &del
	mutate.ReinsertInboxItem(project, o.Item, o.ItemPos)
	return nil
}

func (o *TriageOp) Redo(project *model.Project) error {
	if o.deleted == nil {
		return mutate.NotFoundError{Kind: "task", ID: o.TaskID}
	}
	if _, err := mutate.RemoveInboxItem(project, o.ItemPos); err != nil {
		return err
	}
	return mutate.Reinsert(project, *o.deleted)
}
