package mutate

import "trail-cli/internal/model"

// AddDep records a dependency on depID after checking the target exists
// somewhere in the project. Adding a dep the task already has is a no-op.
func AddDep(project *model.Project, id, depID string) (EditResult, error) {
	task, trackID, err := findTask(project, id)
	if err != nil {
		return EditResult{}, err
	}
	if _, _, ok := project.FindTask(depID); !ok {
		return EditResult{}, NotFoundError{Kind: "dep target", ID: depID}
	}
	res := EditResult{Task: task, TrackID: trackID}
	for _, dep := range task.Deps() {
		if dep == depID {
			return res, nil
		}
	}
	appendToList(task, model.MetaDep, depID)
	task.MarkDirty()
	res.Changed = true
	return res, nil
}

// RemoveDep drops depID from the task's dep lists. Entries left empty are
// removed entirely. Removing an absent dep is a no-op.
func RemoveDep(project *model.Project, id, depID string) (EditResult, error) {
	task, trackID, err := findTask(project, id)
	if err != nil {
		return EditResult{}, err
	}
	res := EditResult{Task: task, TrackID: trackID}
	removeFromList(task, model.MetaDep, depID, &res.Changed)
	if res.Changed {
		task.MarkDirty()
	}
	return res, nil
}

// AddRef records a file or URL reference. Paths are not checked here; the
// validator reports broken ones. Duplicates are no-ops.
func AddRef(project *model.Project, id, path string) (EditResult, error) {
	task, trackID, err := findTask(project, id)
	if err != nil {
		return EditResult{}, err
	}
	res := EditResult{Task: task, TrackID: trackID}
	for _, ref := range task.Refs() {
		if ref == path {
			return res, nil
		}
	}
	appendToList(task, model.MetaRef, path)
	task.MarkDirty()
	res.Changed = true
	return res, nil
}

// RemoveRef drops a reference, removing entries left empty.
func RemoveRef(project *model.Project, id, path string) (EditResult, error) {
	task, trackID, err := findTask(project, id)
	if err != nil {
		return EditResult{}, err
	}
	res := EditResult{Task: task, TrackID: trackID}
	removeFromList(task, model.MetaRef, path, &res.Changed)
	if res.Changed {
		task.MarkDirty()
	}
	return res, nil
}

// SetSpec points the task at a spec document, replacing any existing
// pointer. An empty path removes it.
func SetSpec(project *model.Project, id, path string) (EditResult, error) {
	return setText(project, id, model.MetaSpec, path)
}

// SetNote replaces the task's note. An empty text removes it.
func SetNote(project *model.Project, id, text string) (EditResult, error) {
	return setText(project, id, model.MetaNote, text)
}

// AppendNote adds a paragraph to the task's note, creating the note when
// absent.
func AppendNote(project *model.Project, id, text string) (EditResult, error) {
	task, trackID, err := findTask(project, id)
	if err != nil {
		return EditResult{}, err
	}
	res := EditResult{Task: task, TrackID: trackID}
	if text == "" {
		return res, nil
	}
	for mi := range task.Metadata {
		m := &task.Metadata[mi]
		if m.Kind != model.MetaNote {
			continue
		}
		res.OldText = m.Text
		if m.Text == "" {
			m.Text = text
		} else {
			m.Text += "\n\n" + text
		}
		task.MarkDirty()
		res.Changed = true
		return res, nil
	}
	task.Metadata = append(task.Metadata, model.Note(text))
	task.MarkDirty()
	res.Changed = true
	return res, nil
}

func setText(project *model.Project, id string, kind model.MetaKind, text string) (EditResult, error) {
	task, trackID, err := findTask(project, id)
	if err != nil {
		return EditResult{}, err
	}
	res := EditResult{Task: task, TrackID: trackID}
	for _, m := range task.Metadata {
		if m.Kind == kind {
			res.OldText = m.Text
			break
		}
	}

	if text == "" {
		if !task.HasMeta(kind) {
			return res, nil
		}
		task.RemoveMeta(kind)
		task.MarkDirty()
		res.Changed = true
		return res, nil
	}

	for mi := range task.Metadata {
		m := &task.Metadata[mi]
		if m.Kind == kind {
			if m.Text == text {
				return res, nil
			}
			m.Text = text
			task.MarkDirty()
			res.Changed = true
			return res, nil
		}
	}
	task.Metadata = append(task.Metadata, model.Metadata{Kind: kind, Text: text})
	task.MarkDirty()
	res.Changed = true
	return res, nil
}

// appendToList grows the last entry of the kind, or starts one.
func appendToList(task *model.Task, kind model.MetaKind, value string) {
	for mi := len(task.Metadata) - 1; mi >= 0; mi-- {
		if task.Metadata[mi].Kind == kind {
			task.Metadata[mi].List = append(task.Metadata[mi].List, value)
			return
		}
	}
	task.Metadata = append(task.Metadata, model.Metadata{Kind: kind, List: []string{value}})
}

// removeFromList drops value from every entry of the kind and removes
// entries left empty.
func removeFromList(task *model.Task, kind model.MetaKind, value string, changed *bool) {
	kept := task.Metadata[:0]
	for _, m := range task.Metadata {
		if m.Kind == kind {
			list := m.List[:0]
			for _, x := range m.List {
				if x == value {
					*changed = true
					continue
				}
				list = append(list, x)
			}
			m.List = list
			if len(m.List) == 0 {
				continue
			}
		}
		kept = append(kept, m)
	}
	task.Metadata = kept
}
