package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"

	"trail-cli/internal/model"
	"trail-cli/internal/mutate"
	"trail-cli/internal/statusutil"
)

type trackItem struct {
	cfg   model.TrackConfig
	stats mutate.TrackStats
}

func (i trackItem) FilterValue() string { return i.cfg.Name }

func (i trackItem) Title() string { return i.cfg.Name }

func (i trackItem) Description() string {
	s := i.stats
	return fmt.Sprintf("%s  %d active, %d todo, %d blocked, %d parked, %d done",
		i.cfg.ID, s.Active, s.Todo, s.Blocked, s.Parked, s.Done)
}

// taskRow is one line of the flattened task pane: a task plus its depth.
type taskRow struct {
	task  *model.Task
	depth int
}

// flattenTasks turns a section's task trees into display rows,
// depth-first, matching file order.
func flattenTasks(tasks []*model.Task) []taskRow {
	var rows []taskRow
	var walk func(task *model.Task, depth int)
	walk = func(task *model.Task, depth int) {
		rows = append(rows, taskRow{task: task, depth: depth})
		for _, sub := range task.Subtasks {
			walk(sub, depth+1)
		}
	}
	for _, task := range tasks {
		walk(task, 0)
	}
	return rows
}

type taskRowItem struct {
	row taskRow
}

func (i taskRowItem) FilterValue() string { return i.row.task.Title }

func (i taskRowItem) Title() string {
	task := i.row.task
	var b strings.Builder
	b.WriteString(strings.Repeat("  ", i.row.depth))
	b.WriteString(stateStyle(task.State).Render(fmt.Sprintf("[%c]", task.State.Char())))
	b.WriteByte(' ')
	if task.ID != "" {
		b.WriteString(styleMuted().Render(task.ID))
		b.WriteByte(' ')
	}
	b.WriteString(task.Title)
	for _, tag := range task.Tags {
		b.WriteByte(' ')
		b.WriteString(styleMuted().Render("#" + tag))
	}
	return b.String()
}

func (i taskRowItem) Description() string {
	task := i.row.task
	parts := []string{strings.Repeat("  ", i.row.depth) + statusutil.Name(task.State)}
	if deps := task.Deps(); len(deps) > 0 {
		parts = append(parts, "dep "+strings.Join(deps, ", "))
	}
	if _, ok := task.Note(); ok {
		parts = append(parts, "note")
	}
	if len(task.Subtasks) > 0 {
		parts = append(parts, fmt.Sprintf("%d subtasks", len(task.Subtasks)))
	}
	if added, ok := task.AddedDate(); ok {
		parts = append(parts, "added "+added)
	}
	return strings.Join(parts, "  ·  ")
}

// newList builds a bubbles list with the chrome we render ourselves turned
// off. ESC is back/cancel in trail, so the list must not quit on it.
func newList(items []list.Item) list.Model {
	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetShowPagination(false)
	l.SetFilteringEnabled(true)
	l.KeyMap.Quit.SetKeys("q")

	cursorUp := append([]string{}, l.KeyMap.CursorUp.Keys()...)
	l.KeyMap.CursorUp.SetKeys(append(cursorUp, "ctrl+p")...)
	cursorDown := append([]string{}, l.KeyMap.CursorDown.Keys()...)
	l.KeyMap.CursorDown.SetKeys(append(cursorDown, "ctrl+n")...)
	return l
}
