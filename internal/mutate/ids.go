package mutate

import (
	"fmt"
	"strconv"
	"strings"

	"trail-cli/internal/model"
)

const dateLayout = "2006-01-02"

// nextNumber scans every ID under the prefix across the whole project,
// nested ones included, and returns max+1. The numeric component is the
// part of the prefix-stripped ID before the first dot, so numbering only
// ever moves forward, even after deletions.
func nextNumber(project *model.Project, prefix string) int {
	max := 0
	for _, entry := range project.Tracks {
		entry.Track.WalkTasks(func(task *model.Task) {
			rest, ok := strings.CutPrefix(task.ID, prefix+"-")
			if !ok {
				return
			}
			numPart, _, _ := strings.Cut(rest, ".")
			if n, err := strconv.Atoi(numPart); err == nil && n > max {
				max = n
			}
		})
	}
	return max + 1
}

func mintID(project *model.Project, prefix string) string {
	return formatID(prefix, nextNumber(project, prefix))
}

// formatID pads the number to three digits; wider numbers keep their width.
func formatID(prefix string, n int) string {
	return fmt.Sprintf("%s-%03d", prefix, n)
}

// nextChildOrdinal returns one past the highest immediate-child ordinal of
// parent. An immediate child ID is parent.ID, a dot, and a bare number.
func nextChildOrdinal(parent *model.Task) int {
	max := 0
	for _, sub := range parent.Subtasks {
		rest, ok := strings.CutPrefix(sub.ID, parent.ID+".")
		if !ok || strings.Contains(rest, ".") {
			continue
		}
		if n, err := strconv.Atoi(rest); err == nil && n > max {
			max = n
		}
	}
	return max + 1
}

// renumberSubtasks re-keys every descendant of task by sibling position
// (1-based) and records each old ID in renames. Descendants without IDs
// stay without IDs.
func renumberSubtasks(task *model.Task, renames map[string]string) {
	for i, sub := range task.Subtasks {
		if sub.ID != "" {
			newID := fmt.Sprintf("%s.%d", task.ID, i+1)
			if sub.ID != newID {
				renames[sub.ID] = newID
				sub.ID = newID
				sub.MarkDirty()
			}
		}
		renumberSubtasks(sub, renames)
	}
}

// setDepths fixes the Depth fields of a subtree after it moves.
func setDepths(task *model.Task, depth int) {
	task.Depth = depth
	for _, sub := range task.Subtasks {
		setDepths(sub, depth+1)
	}
}

// subtreeHeight is 0 for a leaf, 1 for a task with children, and so on.
func subtreeHeight(task *model.Task) int {
	h := 0
	for _, sub := range task.Subtasks {
		if sh := subtreeHeight(sub) + 1; sh > h {
			h = sh
		}
	}
	return h
}

// rewriteDeps applies a rename map to every dep list in every track and
// returns how many references changed.
func rewriteDeps(project *model.Project, renames map[string]string) int {
	if len(renames) == 0 {
		return 0
	}
	count := 0
	for _, entry := range project.Tracks {
		entry.Track.WalkTasks(func(task *model.Task) {
			changed := false
			for mi := range task.Metadata {
				m := &task.Metadata[mi]
				if m.Kind != model.MetaDep {
					continue
				}
				for li, dep := range m.List {
					if newID, ok := renames[dep]; ok {
						m.List[li] = newID
						count++
						changed = true
					}
				}
			}
			if changed {
				task.MarkDirty()
			}
		})
	}
	return count
}

// findTask resolves an ID anywhere in the project.
func findTask(project *model.Project, id string) (*model.Task, string, error) {
	task, trackID, ok := project.FindTask(id)
	if !ok {
		return nil, "", NotFoundError{Kind: "task", ID: id}
	}
	return task, trackID, nil
}

// topLevelLocation finds the section holding id as a direct member.
func topLevelLocation(track *model.Track, id string) (*model.Section, int, bool) {
	if id == "" {
		return nil, 0, false
	}
	for _, section := range track.Sections() {
		for i, task := range section.Tasks {
			if task.ID == id {
				return section, i, true
			}
		}
	}
	return nil, 0, false
}

// parentOf finds the task owning id as an immediate subtask.
func parentOf(track *model.Track, id string) (*model.Task, int, bool) {
	if id == "" {
		return nil, 0, false
	}
	var parent *model.Task
	idx := 0
	found := false
	track.WalkTasks(func(task *model.Task) {
		if found {
			return
		}
		for i, sub := range task.Subtasks {
			if sub.ID == id {
				parent, idx, found = task, i, true
				return
			}
		}
	})
	return parent, idx, found
}

// isWithin reports whether id names root or any of its descendants.
func isWithin(root *model.Task, id string) bool {
	if id == "" {
		return false
	}
	within := false
	root.Walk(func(task *model.Task) {
		if task.ID == id {
			within = true
		}
	})
	return within
}

// removeAt returns list without the element at i, never aliasing the input.
func removeAt(list []*model.Task, i int) []*model.Task {
	out := make([]*model.Task, 0, len(list)-1)
	out = append(out, list[:i]...)
	return append(out, list[i+1:]...)
}
