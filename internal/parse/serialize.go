package parse

import (
	"strings"

	"trail-cli/internal/model"
)

// SerializeTrack writes a track back to its file text. Literal nodes emit
// verbatim; sections emit their header, tasks, and trailing lines.
func SerializeTrack(track *model.Track) string {
	var lines []string
	for _, node := range track.Nodes {
		switch {
		case node.Literal != nil:
			lines = append(lines, node.Literal...)
		case node.Section != nil:
			lines = append(lines, node.Section.Header...)
			lines = appendTasks(lines, node.Section.Tasks, 0)
			lines = append(lines, node.Section.Trailing...)
		}
	}
	return strings.Join(lines, "\n")
}

// SerializeTasks renders tasks as markdown lines at the given indent.
func SerializeTasks(tasks []*model.Task, indent int) []string {
	return appendTasks(nil, tasks, indent)
}

func appendTasks(lines []string, tasks []*model.Task, indent int) []string {
	for _, task := range tasks {
		lines = appendTask(lines, task, indent)
	}
	return lines
}

// appendTask emits one task. A clean task with source text emits its own
// lines verbatim; a dirty task emits canonical format. Subtasks always
// recurse independently so editing one subtask never reformats the parent
// or its siblings.
func appendTask(lines []string, task *model.Task, indent int) []string {
	if !task.Dirty && task.SourceText != nil {
		lines = append(lines, task.SourceText...)
		for _, sub := range task.Subtasks {
			lines = appendTask(lines, sub, indent+2)
		}
		return lines
	}

	pad := strings.Repeat(" ", indent)

	var b strings.Builder
	b.WriteString(pad)
	b.WriteString("- [")
	b.WriteByte(task.State.Char())
	b.WriteByte(']')
	if task.ID != "" {
		b.WriteString(" `")
		b.WriteString(task.ID)
		b.WriteByte('`')
	}
	b.WriteByte(' ')
	b.WriteString(task.Title)
	for _, tag := range task.Tags {
		b.WriteString(" #")
		b.WriteString(tag)
	}
	lines = append(lines, b.String())

	metaPad := strings.Repeat(" ", indent+2)
	for _, m := range task.Metadata {
		switch m.Kind {
		case model.MetaDep:
			lines = append(lines, metaPad+"- dep: "+strings.Join(m.List, ", "))
		case model.MetaRef:
			lines = append(lines, metaPad+"- ref: "+strings.Join(m.List, ", "))
		case model.MetaSpec:
			lines = append(lines, metaPad+"- spec: "+m.Text)
		case model.MetaAdded:
			lines = append(lines, metaPad+"- added: "+m.Text)
		case model.MetaResolved:
			lines = append(lines, metaPad+"- resolved: "+m.Text)
		case model.MetaNote:
			if strings.Contains(m.Text, "\n") {
				lines = append(lines, metaPad+"- note:")
				blockPad := strings.Repeat(" ", indent+4)
				for _, noteLine := range strings.Split(m.Text, "\n") {
					if noteLine == "" {
						lines = append(lines, "")
					} else {
						lines = append(lines, blockPad+noteLine)
					}
				}
			} else {
				lines = append(lines, metaPad+"- note: "+m.Text)
			}
		}
	}

	for _, sub := range task.Subtasks {
		lines = appendTask(lines, sub, indent+2)
	}
	return lines
}

// SerializeInbox writes the inbox back to its file text. Clean items emit
// verbatim source; dirty items emit canonical format with a blank separator
// before the next item.
func SerializeInbox(inbox *model.Inbox) string {
	var lines []string
	lines = append(lines, inbox.Header...)

	for i, item := range inbox.Items {
		if !item.Dirty && item.SourceText != nil {
			lines = append(lines, item.SourceText...)
			continue
		}

		titleLine := "- " + item.Title
		for _, tag := range item.Tags {
			titleLine += " #" + tag
		}
		lines = append(lines, titleLine)

		if item.Body != "" {
			for _, bodyLine := range strings.Split(item.Body, "\n") {
				if bodyLine == "" {
					lines = append(lines, "")
				} else {
					lines = append(lines, "  "+bodyLine)
				}
			}
		}

		if i < len(inbox.Items)-1 {
			lines = append(lines, "")
		}
	}

	return strings.Join(lines, "\n")
}
