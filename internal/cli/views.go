package cli

import (
	"fmt"
	"strings"

	"trail-cli/internal/model"
)

// taskView is the task shape commands emit: metadata flattened into named
// fields instead of the document-order entry list.
type taskView struct {
	ID       string     `json:"id,omitempty"`
	Title    string     `json:"title"`
	State    string     `json:"state"`
	Tags     []string   `json:"tags,omitempty"`
	Deps     []string   `json:"deps,omitempty"`
	Refs     []string   `json:"refs,omitempty"`
	Spec     string     `json:"spec,omitempty"`
	Note     string     `json:"note,omitempty"`
	Added    string     `json:"added,omitempty"`
	Resolved string     `json:"resolved,omitempty"`
	Subtasks []taskView `json:"subtasks,omitempty"`
}

func viewOf(task *model.Task) taskView {
	v := taskView{
		ID:    task.ID,
		Title: task.Title,
		State: string(task.State),
		Tags:  task.Tags,
		Deps:  task.Deps(),
		Refs:  task.Refs(),
	}
	v.Spec, _ = task.Spec()
	v.Note, _ = task.Note()
	v.Added, _ = task.AddedDate()
	v.Resolved, _ = task.ResolvedDate()
	for _, sub := range task.Subtasks {
		v.Subtasks = append(v.Subtasks, viewOf(sub))
	}
	return v
}

// formatTaskLine renders the one-line summary: [x] EFF-001 Title #tag.
func formatTaskLine(task *model.Task) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%c] ", task.State.Char())
	if task.ID != "" {
		b.WriteString(task.ID)
		b.WriteByte(' ')
	}
	b.WriteString(task.Title)
	for _, tag := range task.Tags {
		b.WriteString(" #")
		b.WriteString(tag)
	}
	return b.String()
}

// formatViewLine renders a filtered view's summary line.
func formatViewLine(v taskView) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%c] ", model.State(v.State).Char())
	if v.ID != "" {
		b.WriteString(v.ID)
		b.WriteByte(' ')
	}
	b.WriteString(v.Title)
	for _, tag := range v.Tags {
		b.WriteString(" #")
		b.WriteString(tag)
	}
	return b.String()
}

// formatViewTree renders a view and its subtasks, newline-terminated, two
// spaces of indent per level.
func formatViewTree(v taskView, indent int) string {
	var b strings.Builder
	b.WriteString(strings.Repeat("  ", indent))
	b.WriteString(formatViewLine(v))
	b.WriteByte('\n')
	for _, sub := range v.Subtasks {
		b.WriteString(formatViewTree(sub, indent+1))
	}
	return b.String()
}

// formatTaskTree renders a task and its subtasks, indented two spaces per
// level.
func formatTaskTree(task *model.Task, indent int) []string {
	lines := []string{strings.Repeat("  ", indent) + formatTaskLine(task)}
	for _, sub := range task.Subtasks {
		lines = append(lines, formatTaskTree(sub, indent+1)...)
	}
	return lines
}

// formatTaskDetail renders the full task view: summary line, tags, metadata
// in document order, then the subtask tree.
func formatTaskDetail(task *model.Task) []string {
	lines := []string{formatTaskLineNoTags(task)}

	if len(task.Tags) > 0 {
		tagged := make([]string, len(task.Tags))
		for i, tag := range task.Tags {
			tagged[i] = "#" + tag
		}
		lines = append(lines, "tags: "+strings.Join(tagged, " "))
	}

	for _, m := range task.Metadata {
		switch m.Kind {
		case model.MetaAdded, model.MetaResolved, model.MetaSpec:
			lines = append(lines, fmt.Sprintf("%s: %s", m.Kind, m.Text))
		case model.MetaDep:
			lines = append(lines, "dep: "+strings.Join(m.List, ", "))
		case model.MetaRef:
			for _, r := range m.List {
				lines = append(lines, "ref: "+r)
			}
		case model.MetaNote:
			lines = append(lines, "note:")
			for _, l := range strings.Split(m.Text, "\n") {
				lines = append(lines, "  "+l)
			}
		}
	}

	if len(task.Subtasks) > 0 {
		lines = append(lines, "", "subtasks:")
		for _, sub := range task.Subtasks {
			lines = append(lines, formatTaskTree(sub, 1)...)
		}
	}
	return lines
}

func formatTaskLineNoTags(task *model.Task) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%c] ", task.State.Char())
	if task.ID != "" {
		b.WriteString(task.ID)
		b.WriteByte(' ')
	}
	b.WriteString(task.Title)
	return b.String()
}
